package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger, which the services log
// through, and returns it.
func Setup(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var formatter logrus.Formatter
	switch format {
	case "json":
		formatter = &logrus.JSONFormatter{}
	case "text", "":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	log := logrus.StandardLogger()
	log.SetLevel(lvl)
	log.SetOutput(out)
	log.SetFormatter(formatter)
	return log, nil
}
