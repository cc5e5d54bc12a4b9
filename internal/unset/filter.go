// Package unset decides which environment variables to remove based on
// substring predicates over their names and values.
package unset

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"cleanpath/internal/shell"
)

// Kind identifies one predicate list.
type Kind int

const (
	NameMatches Kind = iota
	NameStarts
	NameEnds
	ValueMatches
	ValueStarts
	ValueEnds
)

func (k Kind) String() string {
	switch k {
	case NameMatches:
		return "name matches"
	case NameStarts:
		return "name starts with"
	case NameEnds:
		return "name ends with"
	case ValueMatches:
		return "value matches"
	case ValueStarts:
		return "value starts with"
	case ValueEnds:
		return "value ends with"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Predicates holds the six pattern lists. Each list is checked in order.
type Predicates struct {
	NameMatch   []string
	NameStarts  []string
	NameEnds    []string
	ValueMatch  []string
	ValueStarts []string
	ValueEnds   []string
}

// Match describes the predicate that fired.
type Match struct {
	Kind    Kind
	Pattern string
}

func (m Match) String() string {
	return fmt.Sprintf("%s %q", m.Kind, m.Pattern)
}

// Empty reports whether no predicate is configured.
func (p Predicates) Empty() bool {
	return !p.checksName() && !p.checksValue()
}

func (p Predicates) checksName() bool {
	return len(p.NameMatch) > 0 || len(p.NameStarts) > 0 || len(p.NameEnds) > 0
}

func (p Predicates) checksValue() bool {
	return len(p.ValueMatch) > 0 || len(p.ValueStarts) > 0 || len(p.ValueEnds) > 0
}

// Check evaluates name predicates, then value predicates. The first hit wins.
func (p Predicates) Check(name, value string) (Match, bool) {
	if p.checksName() {
		if m, ok := check(name, p.NameMatch, p.NameStarts, p.NameEnds, NameMatches); ok {
			return m, true
		}
	}
	if p.checksValue() {
		if m, ok := check(value, p.ValueMatch, p.ValueStarts, p.ValueEnds, ValueMatches); ok {
			return m, true
		}
	}
	return Match{}, false
}

// check runs the match/starts/ends lists against subject. base is the
// "matches" kind of the family; starts and ends follow it.
func check(subject string, match, starts, ends []string, base Kind) (Match, bool) {
	for _, pat := range match {
		if strings.Contains(subject, pat) {
			return Match{Kind: base, Pattern: pat}, true
		}
	}
	for _, pat := range starts {
		if strings.Index(subject, pat) == 0 {
			return Match{Kind: base + 1, Pattern: pat}, true
		}
	}
	for _, pat := range ends {
		if endsWith(subject, pat) {
			return Match{Kind: base + 2, Pattern: pat}, true
		}
	}
	return Match{}, false
}

func endsWith(subject, pat string) bool {
	if len(pat) > len(subject) {
		return false
	}
	return subject[len(subject)-len(pat):] == pat
}

// Unsetter writes shell commands for variables matching its predicates.
type Unsetter struct {
	Predicates      Predicates
	Syntax          shell.Syntax
	OutputUnchanged bool
	Out             io.Writer
	Log             zerolog.Logger
}

// Process decides for one variable and writes the resulting command, if any.
// It reports whether the variable was unset.
func (u *Unsetter) Process(name, value string) (bool, error) {
	u.Log.Trace().Str("var", name).Str("value", value).Msg("Checking")
	if m, ok := u.Predicates.Check(name, value); ok {
		u.Log.Info().Str("var", name).Msgf("%s's %s", name, m)
		_, err := fmt.Fprintln(u.Out, u.Syntax.Unset(name))
		return true, err
	}
	if u.OutputUnchanged {
		_, err := fmt.Fprintln(u.Out, u.Syntax.Assign(name, value))
		return false, err
	}
	return false, nil
}
