package logging

import (
	"fmt"
	"io"

	"github.com/aws/smithy-go/logging"
	"github.com/sirupsen/logrus"
)

// Setup creates a logrus logger writing text entries to w at the given level
func Setup(level string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log, nil
}

// SmithyLogger routes AWS SDK client logs to log
func SmithyLogger(log logrus.FieldLogger) logging.Logger {
	return logging.LoggerFunc(func(classification logging.Classification, format string, v ...interface{}) {
		entry := log.WithField("source", "aws-sdk")
		switch classification {
		case logging.Warn:
			entry.Warnf(format, v...)
		default:
			entry.Debugf(format, v...)
		}
	})
}
