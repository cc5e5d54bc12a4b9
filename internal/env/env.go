// Package env enumerates the environment variables the tools work on.
package env

import "strings"

// CommonPaths are the well-known path-list variables selected by -C.
var CommonPaths = []string{
	"PATH",
	"MANPATH",
	"LD_LIBRARY_PATH",
	"PERL5LIB",
	"PYTHONPATH",
	"RUBYLIB",
	"DLN_LIBRARY_PATH",
	"RUBYLIB_PREFIX",
	"CLASSPATH",
}

// Var is one NAME=value pair from the environment.
type Var struct {
	Name  string
	Value string
}

// Environment is a snapshot of the process environment, in process order.
type Environment struct {
	vars []Var
}

// Parse builds an Environment from NAME=value strings. Entries without '='
// are ignored. Later duplicates shadow earlier ones on Lookup.
func Parse(environ []string) *Environment {
	e := &Environment{vars: make([]Var, 0, len(environ))}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		e.vars = append(e.vars, Var{Name: name, Value: value})
	}
	return e
}

// Vars returns every variable in environment order.
func (e *Environment) Vars() []Var {
	return e.vars
}

// Lookup returns the value of name and whether it is set.
func (e *Environment) Lookup(name string) (string, bool) {
	for i := len(e.vars) - 1; i >= 0; i-- {
		if e.vars[i].Name == name {
			return e.vars[i].Value, true
		}
	}
	return "", false
}

// PathVars returns the names of all variables ending in "PATH", in
// environment order.
func (e *Environment) PathVars() []string {
	var names []string
	for _, v := range e.vars {
		if strings.HasSuffix(v.Name, "PATH") {
			names = append(names, v.Name)
		}
	}
	return names
}
