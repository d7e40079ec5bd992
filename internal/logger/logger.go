// Package logger builds the application's logrus logger.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to stderr when verbose and discarding everything otherwise.
func New(verbose bool, level string) *logrus.Logger {
	return NewWithOutput(os.Stderr, verbose, level)
}

// NewWithOutput is New with an explicit destination for verbose output.
// Verbose logging defaults to debug level unless level names another one.
func NewWithOutput(w io.Writer, verbose bool, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetLevel(logrus.InfoLevel)
	if !verbose {
		return log
	}

	log.SetOutput(w)
	log.SetLevel(logrus.DebugLevel)
	if level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			log.SetLevel(lvl)
		} else {
			log.WithField("level", level).Warn("Unknown log level, using debug")
		}
	}
	return log
}
