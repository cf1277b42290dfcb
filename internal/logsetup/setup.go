// Package logsetup wires the process-wide slog default: console output goes
// through a logrus handler, with an optional plain-text file sink fanned out
// next to it.
package logsetup

import (
	"fmt"
	"log/slog"
	"os"

	sloglogrus "github.com/samber/slog-logrus/v2"
	slogmulti "github.com/samber/slog-multi"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Level slog.Level
	// LogFile duplicates the log stream to a file when set.
	LogFile string
}

// Setup installs the default slog logger. The returned closer flushes the
// optional file sink.
func Setup(cfg Config) (closer func() error, err error) {
	logrusLogger := logrus.New()
	logrusLogger.SetOutput(os.Stderr)
	logrusLogger.SetLevel(logrus.TraceLevel) // level filtering happens in the slog handler

	handlers := []slog.Handler{
		sloglogrus.Option{Level: cfg.Level, Logger: logrusLogger}.NewLogrusHandler(),
	}

	closer = func() error { return nil }
	if cfg.LogFile != "" {
		file, ferr := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if ferr != nil {
			return nil, fmt.Errorf("error opening log file: %w", ferr)
		}
		handlers = append(handlers,
			slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = file.Close
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))

	return closer, nil
}
