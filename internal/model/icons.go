package model

// Status icons shown next to each path entry in the report and the TUI.
// All are single-width so list columns stay aligned.
const (
	IconOK        = " " // Space (kept - no icon to reduce noise)
	IconDuplicate = "≈" // Almost equal (duplicate)
	IconMissing   = "✗" // Thin X (missing)
	IconExcluded  = "⊘" // Excluded by pattern
	IconEmpty     = "∅" // Empty segment
	IconNotDir    = "•" // Exists but is a file
	IconLocked    = "▣" // Directory without execute permission
)

// Icon returns the status icon for a segment decision.
func (r Reason) Icon() string {
	switch r {
	case ReasonDuplicate:
		return IconDuplicate
	case ReasonMissing:
		return IconMissing
	case ReasonExcluded:
		return IconExcluded
	case ReasonEmpty:
		return IconEmpty
	case ReasonNotDirectory:
		return IconNotDir
	case ReasonNotUsable:
		return IconLocked
	}
	return IconOK
}
