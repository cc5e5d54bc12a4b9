package model

import "fmt"

// Reason explains what happened to a path segment.
type Reason int

const (
	ReasonKept Reason = iota
	ReasonEmpty
	ReasonExcluded
	ReasonDuplicate
	ReasonMissing
	ReasonNotDirectory
	ReasonNotUsable
)

var reasonNames = map[Reason]string{
	ReasonKept:         "kept",
	ReasonEmpty:        "empty",
	ReasonExcluded:     "excluded",
	ReasonDuplicate:    "duplicate",
	ReasonMissing:      "missing",
	ReasonNotDirectory: "not-directory",
	ReasonNotUsable:    "not-usable",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// MarshalText renders the reason by name in JSON output.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a reason name.
func (r *Reason) UnmarshalText(b []byte) error {
	for k, v := range reasonNames {
		if v == string(b) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown reason %q", string(b))
}

// Describe returns a short human sentence for logs and reports.
func (e PathEntry) Describe() string {
	switch e.Reason {
	case ReasonKept:
		return "kept"
	case ReasonEmpty:
		return "empty segment"
	case ReasonExcluded:
		return fmt.Sprintf("matched exclude pattern %q", e.Pattern)
	case ReasonDuplicate:
		return fmt.Sprintf("duplicate of entry %d", e.DuplicateOf+1)
	case ReasonMissing:
		return "does not exist"
	case ReasonNotDirectory:
		return "not a directory"
	case ReasonNotUsable:
		return "directory is not usable (no execute permission)"
	}
	return e.Reason.String()
}
