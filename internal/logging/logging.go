// Package logging builds the application logger. Log output goes to a
// rotating file so the TUI never has to share the terminal with log lines.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger.
type Options struct {
	// Path is the log file. Empty disables file output and returns a
	// no-op logger.
	Path string

	// Level is a zerolog level name ("debug", "info", ...). Unknown
	// values fall back to info.
	Level string

	// Console mirrors log output to stderr. Meant for non-TUI commands
	// run with a verbose flag.
	Console bool
}

// New creates a logger writing to a rotating file. The returned closer
// releases the file writer; it is nil-safe to ignore for no-op loggers.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if opts.Path == "" {
		if opts.Console {
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
			return logger, nil, nil
		}
		return zerolog.Nop(), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var w io.Writer = fileWriter
	if opts.Console {
		w = io.MultiWriter(fileWriter, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger, fileWriter, nil
}
