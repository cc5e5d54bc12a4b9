package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"cleanpath/internal/config"
	"cleanpath/internal/env"
	"cleanpath/internal/logging"
	"cleanpath/internal/shell"
	"cleanpath/internal/unset"
)

func main() {
	prog := filepath.Base(os.Args[0])
	os.Exit(run(prog, os.Args[1:], os.Environ(), os.Stdout, os.Stderr, config.Load))
}

func run(prog string, args, environ []string, stdout, stderr io.Writer, load config.Loader) int {
	log := logging.SetupLogger(logging.Options{Out: stderr})

	fs, parse := config.NewUnsetenvsFlags(prog, stderr)
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

	if opts.Predicates.Empty() && !opts.OutputUnchanged {
		log.Warn().Msg("No name or value patterns given; nothing will be unset")
	}

	u := &unset.Unsetter{
		Predicates:      opts.Predicates,
		Syntax:          syntax,
		OutputUnchanged: opts.OutputUnchanged,
		Out:             stdout,
		Log:             logging.GetLogger("unset"),
	}

	removed := 0
	for _, v := range e.Vars() {
		ok, err := u.Process(v.Name, v.Value)
		if err != nil {
			return fatal(log, prog, fmt.Errorf("writing output: %w", err))
		}
		if ok {
			removed++
		}
	}
	log.Debug().Int("unset", removed).Int("checked", len(e.Vars())).Msg("Done")
	return 0
}

func fatal(log zerolog.Logger, prog string, err error) int {
	log.Error().Msgf("[%s] FATAL ERROR: %v", prog, err)
	return 1
}

func usage(prog string, fs *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [options]\n\n", prog)
	fmt.Fprintf(w, "%s prints shell code that unsets every environment variable whose\n", prog)
	fmt.Fprintf(w, "name or value matches one of the given patterns.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  eval \"$(%s -s LD_)\"        # Unset every variable starting with LD_\n", prog)
	fmt.Fprintf(w, "  eval `%s -c -M /opt/old`   # Unset variables pointing into /opt/old in tcsh\n", prog)
}
