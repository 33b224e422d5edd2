package libemit

import (
	"github.com/sirupsen/logrus"
)

type logrusLogger struct {
	*logrus.Entry
}

// NewLogrusLogger adapts a logrus entry to the logger used by EventEmitter.
func NewLogrusLogger(entry *logrus.Entry) Logger {
	return logrusLogger{Entry: entry}
}

func (l logrusLogger) WithField(key string, value any) Logger {
	return logrusLogger{Entry: l.Entry.WithField(key, value)}
}
