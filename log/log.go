package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to out. In prod, it writes JSON at info level, else text at debug level.
// A non-empty level overrides the default level.
func New(env string, level string, out io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	l.Out = out

	if env == "prod" {
		l.Formatter = &logrus.JSONFormatter{}
		l.Level = logrus.InfoLevel
	} else {
		l.Formatter = &logrus.TextFormatter{}
		l.Level = logrus.DebugLevel
	}

	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		l.Level = lvl
	}

	return l, nil
}
