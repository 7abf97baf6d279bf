package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/quantfra/stockhub/internal/config"
)

// New builds the application logger from the logging config. An
// unparseable level falls back to info; an unwritable file path falls
// back to stdout with a warning.
func New(cfg config.LoggingConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	}

	log.SetOutput(resolveOutput(log, cfg.FilePath))

	if err != nil {
		log.WithField("configured_level", cfg.Level).Warn("unknown log level, using info")
	}
	return log
}

func resolveOutput(log *logrus.Logger, path string) io.Writer {
	if path == "" {
		return os.Stdout
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("cannot open log file, using stdout")
		return os.Stdout
	}
	return f
}

// WithComponent tags an entry with the component it belongs to.
func WithComponent(log *logrus.Logger, component string) *logrus.Entry {
	return log.WithField("component", component)
}
