package pathlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanpath/internal/model"
)

// newTestFs builds an in-memory tree:
//
//	/usr/bin, /bin, /opt/tool/bin   usable directories
//	/locked                         directory without execute bits
//	/usr/bin/ls                     regular file
func newTestFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/usr/bin", 0o755))
	require.NoError(t, fs.MkdirAll("/bin", 0o755))
	require.NoError(t, fs.MkdirAll("/opt/tool/bin", 0o755))
	require.NoError(t, fs.MkdirAll("/locked", 0o600))
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/ls", []byte("#!"), 0o755))
	return fs
}

func newTestNormalizer(t *testing.T, cfg model.FilterConfig) *Normalizer {
	return New(cfg, WithFs(newTestFs(t)), WithIdentity(Identity{UID: 1000, GID: 1000}))
}

func noChecks() model.FilterConfig {
	return model.FilterConfig{Delimiter: ':', DiscardEmpty: true, RemoveDupes: true}
}

func TestNormalize_Scenario(t *testing.T) {
	cfg := model.FilterConfig{Delimiter: ':', RemoveDupes: true, CheckExists: true}
	n := newTestNormalizer(t, cfg)

	got := n.Clean("/usr/bin:/usr/bin:/nonexistent:/usr/bin")
	assert.Equal(t, "/usr/bin", got)
}

func TestNormalize_Defaults(t *testing.T) {
	n := newTestNormalizer(t, model.DefaultFilterConfig())

	res := n.Normalize("/usr/bin:/locked::/bin/:/nope:/usr/bin:/usr/bin/ls")
	assert.Equal(t, "/usr/bin:/bin:/usr/bin/ls", res.Cleaned)
	assert.True(t, res.Changed())
	assert.Equal(t, 4, res.Dropped())

	reasons := make([]model.Reason, len(res.PathEntries))
	for i, e := range res.PathEntries {
		reasons[i] = e.Reason
	}
	assert.Equal(t, []model.Reason{
		model.ReasonKept,
		model.ReasonNotUsable,
		model.ReasonEmpty,
		model.ReasonKept,
		model.ReasonMissing,
		model.ReasonDuplicate,
		model.ReasonKept,
	}, reasons)
	assert.Equal(t, 0, res.PathEntries[5].DuplicateOf)
	assert.Len(t, res.Diagnostics, 4)
}

func TestNormalize_EmptySegments(t *testing.T) {
	cfg := noChecks()
	n := newTestNormalizer(t, cfg)
	assert.Equal(t, "a:b", n.Clean("a::b"))

	cfg.DiscardEmpty = false
	n = newTestNormalizer(t, cfg)
	// The second empty segment is a duplicate of the first.
	assert.Equal(t, "a::b", n.Clean("a::b::"))

	cfg.RemoveDupes = false
	n = newTestNormalizer(t, cfg)
	assert.Equal(t, ":a::b:", n.Clean(":a::b:"))

	cfg.CheckExists = true
	n = newTestNormalizer(t, cfg)
	assert.Equal(t, "/bin", n.Clean("::/bin:"), "an empty path never exists")
}

func TestNormalize_TrailingSlashCollapse(t *testing.T) {
	n := newTestNormalizer(t, model.DefaultFilterConfig())
	assert.Equal(t, "/usr/bin", n.Clean("/usr/bin///"))
	assert.Equal(t, "/usr/bin", n.Clean("/usr/bin:/usr/bin/:/usr/bin//"))
	assert.Equal(t, "", n.Clean("///"))
}

func TestNormalize_Exclude(t *testing.T) {
	cfg := noChecks()
	cfg.Exclude = []string{"tool", "bin"}
	n := newTestNormalizer(t, cfg)

	res := n.Normalize("/opt/tool/bin:/usr/bin:/usr/local")
	assert.Equal(t, "/usr/local", res.Cleaned)
	assert.Equal(t, "tool", res.PathEntries[0].Pattern, "first matching pattern wins")
	assert.Equal(t, "bin", res.PathEntries[1].Pattern)
}

func TestNormalize_ExcludedEntriesDoNotCountAsSeen(t *testing.T) {
	cfg := noChecks()
	cfg.Exclude = []string{"x"}
	n := newTestNormalizer(t, cfg)
	assert.Equal(t, "a", n.Clean("x:a:x:a"))
}

func TestNormalize_DirsOnly(t *testing.T) {
	cfg := model.DefaultFilterConfig()
	cfg.DirsOnly = true
	n := newTestNormalizer(t, cfg)

	res := n.Normalize("/usr/bin/ls:/usr/bin")
	assert.Equal(t, "/usr/bin", res.Cleaned)
	assert.Equal(t, model.ReasonNotDirectory, res.PathEntries[0].Reason)
}

func TestNormalize_UsableCheckImpliesStat(t *testing.T) {
	cfg := model.FilterConfig{Delimiter: ':', OnlyExecutableDirs: true}
	n := newTestNormalizer(t, cfg)
	assert.Equal(t, "/bin:/usr/bin/ls", n.Clean("/nope:/bin:/locked:/usr/bin/ls"),
		"files are never rejected by the usable rule")
}

func TestNormalize_NoChecksKeepsEverything(t *testing.T) {
	cfg := model.FilterConfig{Delimiter: ':'}
	n := newTestNormalizer(t, cfg)
	assert.Equal(t, "/nope:/nope::/x", n.Clean("/nope:/nope/::/x"))
}

func TestNormalize_Delimiter(t *testing.T) {
	cfg := noChecks()
	cfg.Delimiter = ';'
	n := newTestNormalizer(t, cfg)
	assert.Equal(t, "a;b", n.Clean("a;b;a"))
	assert.Equal(t, "a:b", n.Clean("a:b"), "colon is not special with another delimiter")
}

func TestNormalize_ZeroDelimiterDefaults(t *testing.T) {
	n := New(model.FilterConfig{RemoveDupes: true}, WithFs(afero.NewMemMapFs()))
	assert.Equal(t, "a:b", n.Clean("a:b:a"))
	assert.Equal(t, "a;b", n.Clean("a;b"), "only ':' splits")
}

func TestNormalizeVar_Unset(t *testing.T) {
	n := newTestNormalizer(t, model.DefaultFilterConfig())
	res := n.NormalizeVar("MANPATH", "", false)
	assert.True(t, res.WasUnset)
	assert.Equal(t, "", res.Cleaned)
	assert.Empty(t, res.PathEntries)
	assert.Equal(t, "MANPATH", res.Name)
}

func TestNormalize_Properties(t *testing.T) {
	inputs := []string{
		"",
		"/usr/bin",
		"/usr/bin:/bin:/usr/bin",
		"::/bin//::/usr/bin/:/locked:/nope:/bin",
		"/opt/tool/bin:/opt/tool/bin/:/usr/bin/ls:/usr/bin/ls",
	}
	configs := []model.FilterConfig{
		model.DefaultFilterConfig(),
		noChecks(),
		{Delimiter: ':'},
		{Delimiter: ':', RemoveDupes: true, DirsOnly: true, CheckExists: true},
	}

	for _, cfg := range configs {
		n := newTestNormalizer(t, cfg)
		for _, in := range inputs {
			once := n.Normalize(in)

			// idempotence
			assert.Equal(t, once.Cleaned, n.Clean(once.Cleaned), "input %q cfg %+v", in, cfg)

			// order preservation: kept entries appear with increasing index
			last := -1
			var kept []string
			for _, e := range once.PathEntries {
				if e.Kept {
					assert.Greater(t, e.Index, last)
					last = e.Index
					kept = append(kept, e.Value)
				}
			}
			assert.Equal(t, strings.Join(kept, ":"), once.Cleaned)

			// dedup correctness
			if cfg.RemoveDupes {
				seen := map[string]bool{}
				for _, k := range kept {
					assert.False(t, seen[k], "duplicate %q kept", k)
					seen[k] = true
				}
			}
		}
	}
}

func TestNormalize_RealFilesystem(t *testing.T) {
	dir := t.TempDir()
	usable := filepath.Join(dir, "usable")
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(usable, 0o755))
	require.NoError(t, os.Mkdir(locked, 0o700))
	require.NoError(t, os.Chmod(locked, 0o600))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	n := New(model.DefaultFilterConfig())
	raw := strings.Join([]string{usable, locked, filepath.Join(dir, "missing"), usable + "/"}, ":")
	assert.Equal(t, usable, n.Clean(raw))
}
