package libemit

import (
	"go.uber.org/zap"
)

type zapLogger struct {
	*zap.SugaredLogger
}

// NewZapLogger adapts a sugared zap logger to the logger used by EventEmitter.
func NewZapLogger(l *zap.SugaredLogger) Logger {
	return zapLogger{SugaredLogger: l}
}

func (l zapLogger) WithField(key string, value any) Logger {
	return zapLogger{SugaredLogger: l.SugaredLogger.With(key, value)}
}
