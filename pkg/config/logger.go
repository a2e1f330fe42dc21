package config

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// ParseLevel maps a configured log level to a logrus level
func ParseLevel(level string) (logrus.Level, error) {
	switch level {
	case "silent":
		return logrus.PanicLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	case "warn":
		return logrus.WarnLevel, nil
	case "info", "":
		return logrus.InfoLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q (must be silent, error, warn, info or debug)", level)
	}
}

// NewLogger creates a text logger writing to w at the given level.
// A nil writer logs to stderr.
func NewLogger(level string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger, nil
}

// Logger creates the logger described by the configuration, writing to w
func (c *Config) Logger(w io.Writer) (*logrus.Logger, error) {
	return NewLogger(c.Logging.Level, w)
}
