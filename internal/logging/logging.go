// Package logging configures the zerolog logger used by gowol-homelab.
package logging

import (
	"io"
	"strings"

	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls console output and level.
type Options struct {
	JSON    bool
	Verbose bool
	Quiet   bool
}

// New builds a logger writing to out and, when cfg.File is set, to a
// rotating log file. The returned closer releases the log file.
func New(out io.Writer, opts Options, cfg models.LogConfig) (zerolog.Logger, io.Closer) {
	var console io.Writer = out
	if !opts.JSON {
		cw := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
		cw.FormatLevel = func(i interface{}) string {
			if s, ok := i.(string); ok {
				return strings.ToUpper(s)
			}
			return ""
		}
		console = cw
	}

	var closer io.Closer = nopCloser{}
	writer := console
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,  // megabytes
			MaxBackups: cfg.MaxBackups, // number of backups
			MaxAge:     cfg.MaxAgeDays, // days
			Compress:   cfg.Compress,
		}
		// The file always gets JSON lines regardless of the console format.
		writer = zerolog.MultiLevelWriter(console, file)
		closer = file
	}

	return zerolog.New(writer).Level(Level(opts)).With().Timestamp().Logger(), closer
}

// Level maps the verbosity flags to a zerolog level.
func Level(opts Options) zerolog.Level {
	switch {
	case opts.Quiet:
		return zerolog.ErrorLevel
	case opts.Verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
