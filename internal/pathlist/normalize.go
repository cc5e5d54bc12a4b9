// Package pathlist cleans delimited path lists such as PATH or MANPATH.
//
// A single left-to-right pass strips trailing slashes, drops empty, excluded,
// duplicate, missing and unusable entries, and keeps the survivors in their
// original order.
package pathlist

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"cleanpath/internal/model"
)

// Normalizer applies a FilterConfig to path lists.
type Normalizer struct {
	cfg model.FilterConfig
	fs  afero.Fs
	id  Identity
	log zerolog.Logger
}

// Option customizes a Normalizer.
type Option func(*Normalizer)

// WithFs sets the filesystem used for existence and permission checks.
func WithFs(fs afero.Fs) Option {
	return func(n *Normalizer) { n.fs = fs }
}

// WithIdentity overrides the process identity for the usable-directory rule.
func WithIdentity(id Identity) Option {
	return func(n *Normalizer) { n.id = id }
}

// WithLogger sets the logger used for per-segment decisions.
func WithLogger(l zerolog.Logger) Option {
	return func(n *Normalizer) { n.log = l }
}

// New returns a Normalizer for cfg. Without options it uses the OS
// filesystem, the current process identity and a disabled logger.
func New(cfg model.FilterConfig, opts ...Option) *Normalizer {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = model.DefaultDelimiter
	}
	cfg.Exclude = append([]string(nil), cfg.Exclude...)
	n := &Normalizer{
		cfg: cfg,
		fs:  afero.NewOsFs(),
		id:  CurrentIdentity(),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize cleans raw and returns the cleaned list with one entry per input
// segment.
func (n *Normalizer) Normalize(raw string) model.AnalysisResult {
	return n.NormalizeVar("", raw, true)
}

// NormalizeVar cleans the value of the environment variable name. If set is
// false the variable does not exist: the result is empty and marked WasUnset.
func (n *Normalizer) NormalizeVar(name, value string, set bool) model.AnalysisResult {
	res := model.AnalysisResult{Name: name, Original: value}
	if !set {
		res.WasUnset = true
		n.log.Trace().Str("var", name).Msg("OLD value was unset")
		return res
	}
	n.log.Trace().Str("var", name).Str("value", value).Msg("OLD")

	seen := NewSeenSet()
	kept := make([]string, 0, strings.Count(value, string(n.cfg.Delimiter))+1)
	for i, seg := range Split(value, n.cfg.Delimiter) {
		entry := n.decide(i, seg, seen)
		if entry.Kept {
			kept = append(kept, entry.Value)
			n.log.Debug().Str("var", name).Str("path", entry.Value).Msg("Keeping")
		} else {
			n.log.Debug().Str("var", name).Str("path", entry.Value).Str("reason", entry.Reason.String()).Msg("Ignoring " + entry.Describe())
		}
		res.PathEntries = append(res.PathEntries, entry)
	}
	res.Cleaned = strings.Join(kept, string(n.cfg.Delimiter))
	res.Diagnostics = diagnose(res)

	n.log.Trace().Str("var", name).Str("value", res.Cleaned).Msg("NEW")
	return res
}

// Clean is a convenience wrapper returning only the cleaned string.
func (n *Normalizer) Clean(raw string) string {
	return n.Normalize(raw).Cleaned
}

func (n *Normalizer) decide(index int, seg Segment, seen *SeenSet) model.PathEntry {
	e := model.PathEntry{
		Index:       index,
		Raw:         seg.Raw,
		Value:       seg.Value,
		Hash:        seg.Hash,
		Reason:      model.ReasonKept,
		DuplicateOf: -1,
	}
	drop := func(r model.Reason) model.PathEntry {
		e.Reason = r
		return e
	}

	if n.cfg.DiscardEmpty && e.Value == "" {
		return drop(model.ReasonEmpty)
	}
	for _, pat := range n.cfg.Exclude {
		if strings.Contains(e.Value, pat) {
			e.Pattern = pat
			return drop(model.ReasonExcluded)
		}
	}
	if n.cfg.RemoveDupes {
		if first, dup := seen.Insert(e.Value, e.Hash, index); dup {
			e.DuplicateOf = first
			return drop(model.ReasonDuplicate)
		}
	}
	if n.cfg.NeedsStat() {
		// An empty name never exists, whatever the filesystem maps it to.
		if e.Value == "" {
			return drop(model.ReasonMissing)
		}
		info, err := n.fs.Stat(e.Value)
		if err != nil {
			return drop(model.ReasonMissing)
		}
		if n.cfg.DirsOnly && !info.IsDir() {
			return drop(model.ReasonNotDirectory)
		}
		if n.cfg.OnlyExecutableDirs && info.IsDir() &&
			!IsUsableDir(info.Mode(), ownerOf(info, n.id), n.id) {
			return drop(model.ReasonNotUsable)
		}
	}
	e.Kept = true
	return e
}

func diagnose(res model.AnalysisResult) []string {
	var out []string
	for _, e := range res.PathEntries {
		if e.Kept {
			continue
		}
		label := e.Value
		if label == "" {
			label = "(empty)"
		}
		out = append(out, label+": "+e.Describe())
	}
	return out
}
