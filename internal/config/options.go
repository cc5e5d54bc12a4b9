package config

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"cleanpath/internal/model"
	"cleanpath/internal/unset"
)

// Loader reads the defaults file. Load is the production implementation.
type Loader func(cfgFile string) (*File, error)

// CleanpathOptions is everything cleanpath needs to run.
type CleanpathOptions struct {
	Shared
	Filter      model.FilterConfig
	Names       []string
	AllPaths    bool
	CommonPaths bool

	Report  bool
	JSON    bool
	TUI     bool
	Output  string
	Version bool
	Update  bool
}

// DefaultTarget reports whether PATH should be cleaned because nothing else
// was selected.
func (o *CleanpathOptions) DefaultTarget() bool {
	return len(o.Names) == 0 && !o.AllPaths && !o.CommonPaths
}

// NewCleanpathFlags builds the cleanpath flag set. The returned parse
// function resolves the flags against the defaults file.
func NewCleanpathFlags(prog string, stderr io.Writer) (*pflag.FlagSet, func(args []string, load Loader) (*CleanpathOptions, error)) {
	fs := pflag.NewFlagSet(prog, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	var c common
	allPaths := newToggle(fs, "all", "A", `Toggle working on all environment variables whose name ends in "PATH"`)
	commonPaths := newToggle(fs, "common", "C", "Toggle working on common variables (PATH, MANPATH, LD_LIBRARY_PATH, ...)")
	delim := fs.StringP("delimiter", "d", "", "Set the path delimiter (default ':')")
	exists := newToggle(fs, "exists", "e", "Toggle including only existing entries (default on)")
	usable := newToggle(fs, "usable", "u", `Toggle including only "usable" (executable) directories (default on)`)
	dupes := newToggle(fs, "remove-dupes", "r", "Toggle removing duplicate entries (default on)")
	dirsOnly := newToggle(fs, "dirs-only", "x", "Toggle allowing only directories, no files (default off)")
	empty := newToggle(fs, "discard-empty", "", "Toggle discarding empty entries (default on)")
	exclude := fs.StringArrayP("exclude", "E", nil, "Remove entries containing this substring (repeatable)")
	c.register(fs)

	report := fs.Bool("report", false, "Print a per-entry diagnostic report instead of shell code")
	jsonOut := fs.Bool("json", false, "Output the analysis as JSON")
	tui := fs.Bool("tui", false, "Inspect the result interactively")
	output := fs.StringP("output", "o", "", "Save the report to this file (with --report)")
	version := fs.Bool("version", false, "Print version information")
	update := fs.Bool("update", false, "Check for a newer release")

	parse := func(args []string, load Loader) (*CleanpathOptions, error) {
		if err := parseFlags(fs, args); err != nil {
			return nil, err
		}
		if c.help || c.usageAlias {
			return nil, ErrHelp
		}
		shared, err := c.resolve(load)
		if err != nil {
			return nil, err
		}
		base, err := shared.File.FilterConfig()
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}

		filter := model.FilterConfig{
			Delimiter:          base.Delimiter,
			DiscardEmpty:       empty.Resolve(base.DiscardEmpty),
			RemoveDupes:        dupes.Resolve(base.RemoveDupes),
			CheckExists:        exists.Resolve(base.CheckExists),
			OnlyExecutableDirs: usable.Resolve(base.OnlyExecutableDirs),
			DirsOnly:           dirsOnly.Resolve(base.DirsOnly),
			Exclude:            append(base.Exclude, (*exclude)...),
		}
		if fs.Changed("delimiter") {
			d, err := parseDelimiter(*delim)
			if err != nil {
				return nil, fmt.Errorf("-d: %w", err)
			}
			filter.Delimiter = d
		}

		return &CleanpathOptions{
			Shared:      shared,
			Filter:      filter,
			Names:       fs.Args(),
			AllPaths:    allPaths.Resolve(false),
			CommonPaths: commonPaths.Resolve(false),
			Report:      *report,
			JSON:        *jsonOut,
			TUI:         *tui,
			Output:      *output,
			Version:     *version,
			Update:      *update,
		}, nil
	}
	return fs, parse
}

// UnsetenvsOptions is everything unsetenvs needs to run.
type UnsetenvsOptions struct {
	Shared
	Predicates unset.Predicates
}

// NewUnsetenvsFlags builds the unsetenvs flag set.
func NewUnsetenvsFlags(prog string, stderr io.Writer) (*pflag.FlagSet, func(args []string, load Loader) (*UnsetenvsOptions, error)) {
	fs := pflag.NewFlagSet(prog, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	var c common
	var p unset.Predicates
	fs.StringArrayVarP(&p.NameMatch, "name-matches", "m", nil, "Unset variables whose name contains this string")
	fs.StringArrayVarP(&p.NameStarts, "name-starts", "s", nil, "Unset variables whose name starts with this string")
	fs.StringArrayVarP(&p.NameEnds, "name-ends", "e", nil, "Unset variables whose name ends with this string")
	fs.StringArrayVarP(&p.ValueMatch, "value-matches", "M", nil, "Unset variables whose value contains this string")
	fs.StringArrayVarP(&p.ValueStarts, "value-starts", "S", nil, "Unset variables whose value starts with this string")
	fs.StringArrayVarP(&p.ValueEnds, "value-ends", "E", nil, "Unset variables whose value ends with this string")
	c.register(fs)

	parse := func(args []string, load Loader) (*UnsetenvsOptions, error) {
		if err := parseFlags(fs, args); err != nil {
			return nil, err
		}
		if c.help || c.usageAlias {
			return nil, ErrHelp
		}
		if fs.NArg() > 0 {
			return nil, fmt.Errorf("unexpected argument %q; try -h for help", fs.Arg(0))
		}
		shared, err := c.resolve(load)
		if err != nil {
			return nil, err
		}
		return &UnsetenvsOptions{Shared: shared, Predicates: p}, nil
	}
	return fs, parse
}
