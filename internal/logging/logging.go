// Package logging builds the structured logger the conversion core
// reports to. The legacy tool knew six severities (fatal, error, warn,
// info, debug, trace); go-kit carries four, so trace rides on debug and
// fatal on error, each tagged so the original severity stays visible.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dbfconv/dbfconv/internal/config"
)

// New builds a logfmt logger from cfg, writing to stderr and/or a
// rotating file. The returned func closes the file sink, if any.
func New(cfg config.LogConfig) (log.Logger, func(), error) {
	opt, err := allow(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var sinks []io.Writer
	closeSink := func() {}
	if cfg.Console {
		sinks = append(sinks, os.Stderr)
	}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		sinks = append(sinks, lj)
		closeSink = func() { _ = lj.Close() }
	}
	if len(sinks) == 0 {
		sinks = append(sinks, io.Discard)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(io.MultiWriter(sinks...)))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, opt), closeSink, nil
}

// allow maps the six legacy severities onto go-kit's four filter levels.
func allow(lvl string) (level.Option, error) {
	switch lvl {
	case "trace", "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error", "fatal":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
}

// Trace returns a debug-level logger tagged as trace output.
func Trace(logger log.Logger) log.Logger {
	return log.With(level.Debug(logger), "trace", true)
}

// Fatal returns an error-level logger tagged for the outermost abort
// path. The caller exits non-zero afterwards.
func Fatal(logger log.Logger) log.Logger {
	return log.With(level.Error(logger), "fatal", true)
}
