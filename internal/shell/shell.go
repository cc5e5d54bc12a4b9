package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Syntax renders environment changes for one family of shells.
type Syntax interface {
	Name() string
	// Assign sets name to value.
	Assign(name, value string) string
	// Unset removes name from the environment.
	Unset(name string) string
	// Comment is the comment style safe to mix with Assign/Unset output.
	Comment() CommentStyle
}

// CommentStyle wraps a line so the shell ignores it.
type CommentStyle struct {
	Start string
	End   string
}

var (
	NoComments = CommentStyle{}
	ShComments = CommentStyle{Start: "# "}
)

// BashShell implements Syntax for bash, sh, dash and zsh.
type BashShell struct{}

func (s *BashShell) Name() string {
	return "bash"
}

func (s *BashShell) Assign(name, value string) string {
	return fmt.Sprintf("export %s=%s", name, Quote(value))
}

func (s *BashShell) Unset(name string) string {
	return "unset " + name
}

func (s *BashShell) Comment() CommentStyle {
	return ShComments
}

// CshShell implements Syntax for csh and tcsh.
type CshShell struct{}

func (s *CshShell) Name() string {
	return "csh"
}

func (s *CshShell) Assign(name, value string) string {
	return fmt.Sprintf("setenv %s \"%s\";", name, value)
}

func (s *CshShell) Unset(name string) string {
	return "unsetenv " + name + ";"
}

func (s *CshShell) Comment() CommentStyle {
	return ShComments
}

// PlainShell prints NAME=value lines, e.g. for env(1) or .env files.
type PlainShell struct{}

func (s *PlainShell) Name() string {
	return "plain"
}

func (s *PlainShell) Assign(name, value string) string {
	return name + "=" + value
}

func (s *PlainShell) Unset(name string) string {
	return name + "="
}

func (s *PlainShell) Comment() CommentStyle {
	return NoComments
}

// Parse maps a syntax name to its implementation. "auto" detects the syntax
// from shellPath (normally $SHELL).
func Parse(name, shellPath string) (Syntax, error) {
	switch strings.ToLower(name) {
	case "", "bash", "sh", "zsh", "b":
		return &BashShell{}, nil
	case "csh", "tcsh", "c":
		return &CshShell{}, nil
	case "plain", "none", "n":
		return &PlainShell{}, nil
	case "auto":
		return DetectShell(shellPath), nil
	}
	return nil, fmt.Errorf("unknown shell syntax %q (want bash, csh, plain or auto)", name)
}

// DetectShell attempts to identify the user's shell or defaults to bash.
func DetectShell(shellPath string) Syntax {
	base := filepath.Base(shellPath)
	if base == "csh" || base == "tcsh" {
		return &CshShell{}
	}
	return &BashShell{}
}

// Quote single-quotes value when the shell would otherwise split or expand
// it. Plain path lists are returned unchanged.
func Quote(value string) string {
	if value == "" {
		return "''"
	}
	if strings.IndexFunc(value, needsQuote) < 0 {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("/:._-+,=@%^", r)
}
