// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds a JSON-formatted logrus entry tagged with the component name.
// Level resolution: debug flag, then LOG_LEVEL, then info. Output goes to
// stderr so command output on stdout stays machine-readable.
func New(component string, debug bool) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	switch {
	case debug:
		log.SetLevel(logrus.DebugLevel)
	case os.Getenv("LOG_LEVEL") != "":
		if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
			log.SetLevel(lvl)
		}
	default:
		log.SetLevel(logrus.WarnLevel)
	}

	return log.WithField("component", component)
}

// Discard returns an entry that drops everything. Used by tests.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
