package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cleanpath/internal/config"
	"cleanpath/internal/env"
	"cleanpath/internal/logging"
	"cleanpath/internal/model"
	"cleanpath/internal/pathlist"
	"cleanpath/internal/report"
	"cleanpath/internal/shell"
	"cleanpath/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func main() {
	prog := filepath.Base(os.Args[0])
	os.Exit(run(prog, os.Args[1:], os.Environ(), os.Stdout, os.Stderr, config.Load))
}

// app carries everything one invocation of cleanpath needs.
type app struct {
	prog   string
	opts   *config.CleanpathOptions
	env    *env.Environment
	syntax shell.Syntax
	stdout io.Writer
	log    zerolog.Logger
}

func run(prog string, args, environ []string, stdout, stderr io.Writer, load config.Loader) int {
	log := logging.SetupLogger(logging.Options{Out: stderr})

	fs, parse := config.NewCleanpathFlags(prog, stderr)
	fs.Usage = func() { usage(prog, fs, stderr) }

	opts, err := parse(args, load)
	if errors.Is(err, config.ErrHelp) {
		fs.Usage()
		return 0
	}
	if err != nil {
		return fatal(log, prog, err)
	}

	e := env.Parse(environ)
	shellPath, _ := e.Lookup("SHELL")
	syntax, err := shell.Parse(opts.Shell, shellPath)
	if err != nil {
		return fatal(log, prog, err)
	}

	logOpts := logging.Options{Verbosity: opts.Verbosity, Debug: opts.Debug, Out: stderr}
	if opts.IncludeVerbose {
		logOpts.Out = stdout
		logOpts.Comments = syntax.Comment()
	}
	log = logging.SetupLogger(logOpts)

	a := &app{prog: prog, opts: opts, env: e, syntax: syntax, stdout: stdout, log: log}

	switch {
	case opts.Version:
		fmt.Fprintf(stdout, "%s version %s\n", prog, model.Version)
		return 0
	case opts.Update:
		a.checkUpdate()
		return 0
	case opts.Report:
		err = a.runReport()
	case opts.JSON:
		err = a.runJSON()
	case opts.TUI:
		err = a.runTUI()
	default:
		err = a.runClean()
	}
	if err != nil {
		return fatal(log, prog, err)
	}
	return 0
}

func fatal(log zerolog.Logger, prog string, err error) int {
	log.Error().Msgf("[%s] FATAL ERROR: %v", prog, err)
	return 1
}

func usage(prog string, fs *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [options] [VARIABLE ...]\n\n", prog)
	fmt.Fprintf(w, "%s removes empty, duplicate, missing and unusable entries from\n", prog)
	fmt.Fprintf(w, "PATH-like environment variables and prints shell code to apply the result.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  eval \"$(%s)\"              # Clean PATH in the current bash shell\n", prog)
	fmt.Fprintf(w, "  eval `%s -c -C`            # Clean the common variables in tcsh\n", prog)
	fmt.Fprintf(w, "  %s -e -u MANPATH           # Only drop duplicates and empty entries\n", prog)
	fmt.Fprintf(w, "  %s --report -o r.txt       # Save a per-entry report to a file\n", prog)
	fmt.Fprintf(w, "  %s --tui -A                # Inspect every *PATH variable interactively\n", prog)
}

// targets lists the variables to process: every *PATH variable with -A, the
// common list with -C, then the named ones. PATH when nothing was selected.
func (a *app) targets() []string {
	var names []string
	if a.opts.AllPaths {
		a.log.Debug().Msg("Looking for all PATH environment variables")
		names = append(names, a.env.PathVars()...)
	}
	if a.opts.CommonPaths {
		names = append(names, env.CommonPaths...)
	}
	names = append(names, a.opts.Names...)
	if a.opts.DefaultTarget() {
		names = append(names, "PATH")
	}
	return names
}

func (a *app) analyze() []model.AnalysisResult {
	n := pathlist.New(a.opts.Filter, pathlist.WithLogger(logging.GetLogger("pathlist")))

	names := a.targets()
	results := make([]model.AnalysisResult, 0, len(names))
	for _, name := range names {
		value, set := a.env.Lookup(name)
		results = append(results, n.NormalizeVar(name, value, set))
	}
	return results
}

func (a *app) runClean() error {
	for _, res := range a.analyze() {
		if res.WasUnset {
			a.log.Info().Str("var", res.Name).Msg("Not set, skipping")
			continue
		}
		if !res.Changed() && !a.opts.OutputUnchanged {
			continue
		}
		if _, err := fmt.Fprintln(a.stdout, a.syntax.Assign(res.Name, res.Cleaned)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

func (a *app) runReport() error {
	styles := report.PlainStyles()
	if a.opts.Output == "" && logging.IsTerminal(a.stdout) {
		styles = report.DefaultStyles()
	}
	out := report.GenerateReport(a.analyze(), a.opts.Verbosity > 0, styles)

	if a.opts.Output != "" {
		if err := os.WriteFile(a.opts.Output, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing report to %s: %w", a.opts.Output, err)
		}
		fmt.Fprintf(a.stdout, "Report saved to %s\n", a.opts.Output)
		return nil
	}
	_, err := fmt.Fprint(a.stdout, out)
	return err
}

func (a *app) runJSON() error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a.analyze()); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

func (a *app) runTUI() error {
	// The TUI owns the terminal; diagnostics would corrupt the screen.
	zerolog.SetGlobalLevel(zerolog.Disabled)

	m := tui.InitialModel(func() ([]model.AnalysisResult, error) {
		return a.analyze(), nil
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func (a *app) checkUpdate() {
	upd := a.opts.File.Update
	if upd.Owner == "" || upd.Repository == "" {
		a.log.Warn().Msg("No release repository configured; set update.owner and update.repository in " + config.DefaultConfigPath())
		return
	}

	githubTag := &latest.GithubTag{
		Owner:      upd.Owner,
		Repository: upd.Repository,
	}

	res, err := latest.Check(githubTag, model.Version)
	if err != nil {
		a.log.Warn().Err(err).Msg("Update check failed")
		return
	}

	if res.Outdated {
		fmt.Fprintf(a.stdout, "A new version is available: %s (you have %s)\n", res.Current, model.Version)
		fmt.Fprintf(a.stdout, "Download it from https://github.com/%s/%s/releases\n", upd.Owner, upd.Repository)
	} else {
		fmt.Fprintf(a.stdout, "You are using the latest version: %s\n", model.Version)
	}
}
