package logging

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cleanpath/internal/shell"
)

// Options controls where and how diagnostics are written.
type Options struct {
	Verbosity int
	Debug     bool
	Out       io.Writer          // defaults to os.Stderr
	Comments  shell.CommentStyle // wraps each line, e.g. "# " when mixed into eval output
}

// LevelFor maps the -v/-q count to a zerolog level.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity < 0:
		return zerolog.ErrorLevel
	case verbosity == 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger and returns it.
func SetupLogger(opts Options) zerolog.Logger {
	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:          &CommentWriter{Out: out, Style: opts.Comments},
		NoColor:      !IsTerminal(out),
		PartsExclude: []string{zerolog.TimestampFieldName},
	}

	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()
	if opts.Debug {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger

	log.Debug().Int("verbosity", opts.Verbosity).Bool("debug", opts.Debug).Msg("Logger initialized")
	return logger
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// CommentWriter wraps every complete line written to it in Style.
type CommentWriter struct {
	Out   io.Writer
	Style shell.CommentStyle

	mu  sync.Mutex
	buf []byte
}

func (w *CommentWriter) Write(p []byte) (int, error) {
	if w.Style == shell.NoComments {
		return w.Out.Write(p)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		line := w.buf[:i]
		var out []byte
		out = append(out, w.Style.Start...)
		out = append(out, line...)
		out = append(out, w.Style.End...)
		out = append(out, '\n')
		if _, err := w.Out.Write(out); err != nil {
			return 0, err
		}
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
