// Package logger builds the logrus loggers shared by the controllers, the
// dispatcher and the front ends.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a text logger at the given level. Unknown levels fall back to
// info.
func New(level string) *logrus.Logger {
	return NewWithOutput(level, os.Stderr)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetOutput(out)

	return log
}

// Discard returns a logger that drops everything. Used as the default when a
// component is built without one.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

// WithFields creates a logger entry with the specified fields.
func WithFields(log logrus.FieldLogger, fields logrus.Fields) logrus.FieldLogger {
	if log == nil {
		log = Discard()
	}
	return log.WithFields(fields)
}
