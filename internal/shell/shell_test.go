package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntaxOutput(t *testing.T) {
	tests := []struct {
		syntax     Syntax
		wantAssign string
		wantUnset  string
	}{
		{&BashShell{}, "export PATH=/usr/bin:/bin", "unset PATH"},
		{&CshShell{}, `setenv PATH "/usr/bin:/bin";`, "unsetenv PATH;"},
		{&PlainShell{}, "PATH=/usr/bin:/bin", "PATH="},
	}

	for _, tt := range tests {
		t.Run(tt.syntax.Name(), func(t *testing.T) {
			assert.Equal(t, tt.wantAssign, tt.syntax.Assign("PATH", "/usr/bin:/bin"))
			assert.Equal(t, tt.wantUnset, tt.syntax.Unset("PATH"))
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "/usr/bin:/opt/a-b_c.d", Quote("/usr/bin:/opt/a-b_c.d"))
	assert.Equal(t, "''", Quote(""))
	assert.Equal(t, "'/My Apps/bin'", Quote("/My Apps/bin"))
	assert.Equal(t, "'a;b'", Quote("a;b"))
	assert.Equal(t, `'it'\''s'`, Quote("it's"))
	assert.Equal(t, "'$HOME/bin'", Quote("$HOME/bin"))
}

func TestParse(t *testing.T) {
	for name, want := range map[string]string{
		"":      "bash",
		"bash":  "bash",
		"CSH":   "csh",
		"tcsh":  "csh",
		"plain": "plain",
		"none":  "plain",
	} {
		s, err := Parse(name, "")
		require.NoError(t, err, name)
		assert.Equal(t, want, s.Name(), name)
	}

	s, err := Parse("auto", "/bin/tcsh")
	require.NoError(t, err)
	assert.Equal(t, "csh", s.Name())

	_, err = Parse("fish", "")
	assert.Error(t, err)
}

func TestDetectShell(t *testing.T) {
	assert.Equal(t, "bash", DetectShell("/usr/local/bin/bash").Name())
	assert.Equal(t, "bash", DetectShell("/bin/zsh").Name())
	assert.Equal(t, "bash", DetectShell("").Name())
	assert.Equal(t, "csh", DetectShell("/bin/csh").Name())
}

func TestCommentStyles(t *testing.T) {
	assert.Equal(t, ShComments, (&BashShell{}).Comment())
	assert.Equal(t, ShComments, (&CshShell{}).Comment())
	assert.Equal(t, NoComments, (&PlainShell{}).Comment())
}
