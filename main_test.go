package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanpath/internal/config"
	"cleanpath/internal/model"
)

func defaults(string) (*config.File, error) {
	return &config.File{
		Delimiter:          ":",
		DiscardEmpty:       true,
		RemoveDupes:        true,
		CheckExists:        true,
		OnlyExecutableDirs: true,
		Shell:              "bash",
	}, nil
}

type fixture struct {
	a, b    string
	missing string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		a:       filepath.Join(root, "a"),
		b:       filepath.Join(root, "b"),
		missing: filepath.Join(root, "missing"),
	}
	require.NoError(t, os.Mkdir(f.a, 0o755))
	require.NoError(t, os.Mkdir(f.b, 0o755))
	return f
}

func runCmd(t *testing.T, args []string, environ ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run("cleanpath", args, environ, &stdout, &stderr, defaults)
	return code, stdout.String(), stderr.String()
}

func TestRun_CleansPath(t *testing.T) {
	f := newFixture(t)
	path := strings.Join([]string{f.a, f.a, f.missing, "", f.b}, ":")

	code, out, _ := runCmd(t, nil, "PATH="+path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "export PATH="+f.a+":"+f.b+"\n", out)
}

func TestRun_CshSyntax(t *testing.T) {
	f := newFixture(t)
	code, out, _ := runCmd(t, []string{"-c"}, "PATH="+f.a+":"+f.a)
	assert.Equal(t, 0, code)
	assert.Equal(t, "setenv PATH \""+f.a+"\";\n", out)
}

func TestRun_UnchangedIsSilent(t *testing.T) {
	f := newFixture(t)

	_, out, _ := runCmd(t, nil, "PATH="+f.a)
	assert.Empty(t, out)

	_, out, _ = runCmd(t, []string{"-I", "-n"}, "PATH="+f.a)
	assert.Equal(t, "PATH="+f.a+"\n", out)
}

func TestRun_NamedAndUnsetVariables(t *testing.T) {
	f := newFixture(t)
	code, out, _ := runCmd(t, []string{"MANPATH", "NOT_SET"},
		"PATH="+f.a+":"+f.a,
		"MANPATH="+f.b+"::"+f.b,
	)
	assert.Equal(t, 0, code)
	assert.Equal(t, "export MANPATH="+f.b+"\n", out, "PATH is only the default target")
}

func TestRun_AllPathVariables(t *testing.T) {
	f := newFixture(t)
	_, out, _ := runCmd(t, []string{"-A"},
		"PATH="+f.a+":"+f.a,
		"TOOL_PATH="+f.b+":"+f.missing,
		"OTHER="+f.a+":"+f.a,
	)
	assert.Equal(t, "export PATH="+f.a+"\nexport TOOL_PATH="+f.b+"\n", out)
}

func TestRun_CommonPaths(t *testing.T) {
	f := newFixture(t)
	code, out, _ := runCmd(t, []string{"-C", "-n"},
		"CLASSPATH="+f.a+":"+f.missing,
		"OTHER_PATH="+f.a+":"+f.a,
		"MANPATH="+f.b+":"+f.b,
		"PATH="+f.a+"::"+f.b,
	)
	assert.Equal(t, 0, code)
	assert.Equal(t, strings.Join([]string{
		"PATH=" + f.a + ":" + f.b,
		"MANPATH=" + f.b,
		"CLASSPATH=" + f.a,
	}, "\n")+"\n", out, "common list order, unset members skipped, OTHER_PATH untouched")
}

func TestRun_AllThenCommonThenNamed(t *testing.T) {
	f := newFixture(t)
	_, out, _ := runCmd(t, []string{"-A", "-C", "-n", "EXTRA"},
		"TOOL_PATH="+f.b+":"+f.b,
		"PATH="+f.a+":"+f.a,
		"EXTRA="+f.a+":"+f.b+":"+f.a,
		"MANPATH="+f.b+":"+f.missing,
	)
	assert.Equal(t, strings.Join([]string{
		"TOOL_PATH=" + f.b,
		"PATH=" + f.a,
		"MANPATH=" + f.b,
		"PATH=" + f.a,
		"MANPATH=" + f.b,
		"EXTRA=" + f.a + ":" + f.b,
	}, "\n")+"\n", out)
}

func TestRun_ToggledChecks(t *testing.T) {
	f := newFixture(t)
	_, out, _ := runCmd(t, []string{"-e", "-u", "-n"}, "PATH="+f.a+":"+f.missing+":"+f.a)
	assert.Equal(t, "PATH="+f.a+":"+f.missing+"\n", out)
}

func TestRun_Delimiter(t *testing.T) {
	f := newFixture(t)
	_, out, _ := runCmd(t, []string{"-d;", "-n"}, "PATH="+f.a+";"+f.a+";"+f.b)
	assert.Equal(t, "PATH="+f.a+";"+f.b+"\n", out)
}

func TestRun_IncludeVerboseWritesComments(t *testing.T) {
	f := newFixture(t)
	_, out, _ := runCmd(t, []string{"-V", "-vv"}, "PATH="+f.a+":"+f.a)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "export PATH="+f.a, lines[len(lines)-1])
	for _, l := range lines[:len(lines)-1] {
		assert.True(t, strings.HasPrefix(l, "# "), "diagnostic line %q is not a comment", l)
	}
}

func TestRun_JSON(t *testing.T) {
	f := newFixture(t)
	code, out, _ := runCmd(t, []string{"--json"}, "PATH="+f.a+":"+f.missing)
	require.Equal(t, 0, code)

	var results []model.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, f.a, results[0].Cleaned)
	require.Len(t, results[0].PathEntries, 2)
	assert.Equal(t, model.ReasonMissing, results[0].PathEntries[1].Reason)
}

func TestRun_ReportToFile(t *testing.T) {
	f := newFixture(t)
	dest := filepath.Join(t.TempDir(), "report.txt")

	code, out, _ := runCmd(t, []string{"--report", "-o", dest}, "PATH="+f.a+":"+f.missing)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Report saved to "+dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "does not exist")
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCmd(t, []string{"--version"})
	assert.Equal(t, 0, code)
	assert.Equal(t, "cleanpath version "+model.Version+"\n", out)
}

func TestRun_Help(t *testing.T) {
	for _, arg := range []string{"-h", "-?"} {
		code, out, errOut := runCmd(t, []string{arg})
		assert.Equal(t, 0, code, arg)
		assert.Empty(t, out, arg)
		assert.Contains(t, errOut, "Usage: cleanpath", arg)
	}
}

func TestRun_FatalErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-z"}},
		{"missing delimiter", []string{"-d"}},
		{"long delimiter", []string{"-d", "::"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCmd(t, tt.args, "PATH=/usr/bin")
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, "[cleanpath] FATAL ERROR:")
		})
	}
}
