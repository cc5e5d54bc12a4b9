// Package config turns the defaults file and command-line flags into the
// immutable options both tools run with.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// ErrHelp is returned by the parsers when -h or -? was given.
var ErrHelp = pflag.ErrHelp

// toggleValue is a flag that flips a default each time it is given, like
// "-e" or "-r". The long form also accepts an explicit --name=true|false.
type toggleValue struct {
	flips    int
	explicit *bool
}

func newToggle(fs *pflag.FlagSet, name, short, usage string) *toggleValue {
	v := &toggleValue{}
	f := fs.VarPF(v, name, short, usage)
	f.NoOptDefVal = "toggle"
	return v
}

func (v *toggleValue) Set(s string) error {
	if s == "toggle" {
		v.flips++
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	v.explicit = &b
	return nil
}

func (v *toggleValue) String() string {
	return strconv.FormatBool(v.flips%2 == 1)
}

func (v *toggleValue) Type() string {
	return "bool"
}

// Resolve applies the flag to def.
func (v *toggleValue) Resolve(def bool) bool {
	if v.explicit != nil {
		return *v.explicit
	}
	if v.flips%2 == 1 {
		return !def
	}
	return def
}

// counterValue adds step to target each time the flag is given (-v / -q).
type counterValue struct {
	target *int
	step   int
}

func newCounter(fs *pflag.FlagSet, target *int, step int, name, short, usage string) {
	f := fs.VarPF(&counterValue{target: target, step: step}, name, short, usage)
	f.NoOptDefVal = "+1"
}

func (v *counterValue) Set(s string) error {
	if s == "+1" {
		*v.target += v.step
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*v.target += v.step * n
	return nil
}

func (v *counterValue) String() string {
	if v.target == nil {
		return "0"
	}
	return strconv.Itoa(*v.target)
}

func (v *counterValue) Type() string {
	return "count"
}

// syntaxValue lets -b, -c and -n share one destination; the last one given
// wins.
type syntaxValue struct {
	target *string
	name   string
}

func newSyntaxFlag(fs *pflag.FlagSet, target *string, syntax, name, short, usage string) {
	f := fs.VarPF(&syntaxValue{target: target, name: syntax}, name, short, usage)
	f.NoOptDefVal = "true"
}

func (v *syntaxValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if b {
		*v.target = v.name
	}
	return nil
}

func (v *syntaxValue) String() string {
	return "false"
}

func (v *syntaxValue) Type() string {
	return "bool"
}

// common holds the flags both tools share.
type common struct {
	configFile     string
	verbosity      int
	debug          *toggleValue
	includeVerbose *toggleValue
	unchanged      *toggleValue
	shell          string
	help           bool
	usageAlias     bool
}

func (c *common) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "Read defaults from this file (default "+DefaultConfigPath()+")")
	newCounter(fs, &c.verbosity, 1, "verbose", "v", "Increase verbosity by 1. Can be used multiple times")
	newCounter(fs, &c.verbosity, -1, "quiet", "q", "Decrease verbosity by 1. Can be used multiple times")
	c.debug = newToggle(fs, "debug", "D", "Toggle debugging output (caller information)")
	c.includeVerbose = newToggle(fs, "include-verbose", "V", "Toggle printing verbose output to stdout as shell comments")
	c.unchanged = newToggle(fs, "output-unchanged", "I", "Toggle outputting unchanged variables")
	newSyntaxFlag(fs, &c.shell, "bash", "bash", "b", `Print bash/sh compatible "export FOO=bar" definitions (default)`)
	newSyntaxFlag(fs, &c.shell, "csh", "csh", "c", `Print tcsh/csh compatible "setenv FOO "bar";" definitions`)
	newSyntaxFlag(fs, &c.shell, "plain", "plain", "n", `Print non-shell "FOO=bar" definitions`)
	fs.BoolVarP(&c.help, "help", "h", false, "Print this help message")
	fs.BoolVarP(&c.usageAlias, "usage", "?", false, "Print this help message")
	_ = fs.MarkHidden("usage")
}

// Shared is the resolved form of the common flags.
type Shared struct {
	Verbosity       int
	Debug           bool
	IncludeVerbose  bool
	OutputUnchanged bool
	Shell           string // bash, csh, plain or auto
	File            *File
}

func (c *common) resolve(load func(string) (*File, error)) (Shared, error) {
	f, err := load(c.configFile)
	if err != nil {
		return Shared{}, err
	}
	s := Shared{
		Verbosity:       f.Verbosity + c.verbosity,
		Debug:           c.debug.Resolve(false),
		IncludeVerbose:  c.includeVerbose.Resolve(false),
		OutputUnchanged: c.unchanged.Resolve(f.OutputUnchanged),
		Shell:           f.Shell,
		File:            f,
	}
	if c.shell != "" {
		s.Shell = c.shell
	}
	return s, nil
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := checkDetachedValues(fs, args); err != nil {
		return err
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ErrHelp
		}
		return fmt.Errorf("%w; try -h for help", err)
	}
	return nil
}

// checkDetachedValues rejects a value flag whose separate argument looks like
// another flag, as in "-E -v". Attached forms (-E-v, --exclude=-v) pass.
func checkDetachedValues(fs *pflag.FlagSet, args []string) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return nil
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}

		var f *pflag.Flag
		var given string
		if strings.HasPrefix(arg, "--") {
			if strings.Contains(arg, "=") {
				continue
			}
			f = fs.Lookup(arg[2:])
			given = arg
		} else {
			for j := 1; j < len(arg); j++ {
				sf := fs.ShorthandLookup(arg[j : j+1])
				if sf == nil {
					break
				}
				if sf.NoOptDefVal != "" {
					continue
				}
				if j == len(arg)-1 {
					f = sf
					given = "-" + sf.Shorthand
				}
				break
			}
		}
		if f == nil || f.NoOptDefVal != "" || i+1 >= len(args) {
			continue
		}

		i++
		if next := args[i]; strings.HasPrefix(next, "-") {
			return fmt.Errorf("no argument provided for %s; if %q is the argument, attach it as %s%s; try -h for help",
				given, next, attachForm(given), next)
		}
	}
	return nil
}

func attachForm(given string) string {
	if strings.HasPrefix(given, "--") {
		return given + "="
	}
	return given
}
