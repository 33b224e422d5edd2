package libemit

// Logger is the logging surface EventEmitter writes to. NewWriterLogger,
// NewLogrusLogger and NewZapLogger provide implementations.
type Logger interface {
	WithField(key string, value any) Logger
	Debug(args ...any)
	Debugf(format string, args ...any)
	Debugln(args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Infoln(args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Warnln(args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Errorln(args ...any)
}

var (
	_ Logger = noopLogger{}
	_ Logger = (*writerLogger)(nil)
	_ Logger = logrusLogger{}
	_ Logger = zapLogger{}
)
