package model

// Version is the release version reported by --version and --update.
const Version = "0.3.0"

// DefaultDelimiter separates entries in PATH-style variables.
const DefaultDelimiter = ':'

// FilterConfig controls which path segments survive normalization.
// It is built once from flags and config and never mutated afterwards.
type FilterConfig struct {
	Delimiter          byte     // Segment separator (default ':')
	DiscardEmpty       bool     // Drop segments that are empty after slash stripping
	RemoveDupes        bool     // Keep only the first occurrence of each segment
	CheckExists        bool     // Drop segments that cannot be stat'ed
	OnlyExecutableDirs bool     // Drop directories the process cannot execute into
	DirsOnly           bool     // Drop existing entries that are not directories
	Exclude            []string // Substring patterns, checked in order
}

// DefaultFilterConfig returns the out-of-the-box behaviour: keep the first
// occurrence of each existing, usable directory.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Delimiter:          DefaultDelimiter,
		DiscardEmpty:       true,
		RemoveDupes:        true,
		CheckExists:        true,
		OnlyExecutableDirs: true,
	}
}

// NeedsStat reports whether segments must be looked up on the filesystem.
func (c FilterConfig) NeedsStat() bool {
	return c.CheckExists || c.OnlyExecutableDirs
}

// PathEntry is the decision taken for one input segment.
type PathEntry struct {
	Index       int    // Position in the input list
	Raw         string // Segment as it appeared in the input
	Value       string // Segment with trailing slashes removed
	Hash        uint   // DJB2 hash of Value
	Kept        bool   // True if the segment is part of the output
	Reason      Reason // Why it was kept or dropped
	Pattern     string // Exclude pattern that matched, if any
	DuplicateOf int    // Index of the first occurrence if Reason is ReasonDuplicate, else -1
}

// AnalysisResult contains the outcome of cleaning one variable.
type AnalysisResult struct {
	Name        string
	Original    string
	Cleaned     string
	WasUnset    bool
	PathEntries []PathEntry
	Diagnostics []string
}

// Changed reports whether cleaning altered the value.
func (r AnalysisResult) Changed() bool {
	return r.Original != r.Cleaned
}

// Dropped returns the number of segments removed from the input.
func (r AnalysisResult) Dropped() int {
	n := 0
	for _, e := range r.PathEntries {
		if !e.Kept {
			n++
		}
	}
	return n
}
