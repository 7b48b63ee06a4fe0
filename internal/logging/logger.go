package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewLogger returns a logger writing to out (stderr if nil).
// Unknown levels fall back to info, unknown formats to text.
func NewLogger(level, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	switch strings.ToLower(format) {
	case FormatJSON:
		log.Formatter = new(logrus.JSONFormatter)
	default:
		log.Formatter = &logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		}
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.Level = lvl

	if out == nil {
		out = os.Stderr
	}
	log.Out = out

	return log
}
