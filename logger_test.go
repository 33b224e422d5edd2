package libemit

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriterLoggerFormat(t *testing.T) {
	buf := &bytes.Buffer{}

	l := NewWriterLogger(buf).(*writerLogger)
	l.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }

	l.Infoln("plain")
	l.WithField("event", "save").WithField("attempt", 2).Warnf("failed %d times", 2)

	assert.Equal(t,
		"[2024-03-01 12:30:00] INFO: plain\n"+
			"[2024-03-01 12:30:00] WARN [attempt=2, event=save]: failed 2 times\n",
		buf.String())
}

func TestWriterLoggerWithFieldDoesNotLeak(t *testing.T) {
	buf := &bytes.Buffer{}
	base := NewWriterLogger(buf)

	base.WithField("event", "save")
	base.Error("boom")

	assert.NotContains(t, buf.String(), "event=save")
	assert.Contains(t, buf.String(), "ERROR: boom")
}

func TestLogrusLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	base := logrus.New()
	base.SetOutput(buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	e := NewEventEmitter(WithLogger(NewLogrusLogger(logrus.NewEntry(base))))
	e.On("save", func(*Event, ...any) error { return errors.New("boom") })
	e.Emit("save")

	out := buf.String()
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, "emitting to 1 observers")
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "event=save")
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	e := NewEventEmitter(
		WithLogger(NewZapLogger(zap.New(core).Sugar())),
		WithIDGenerator(func() string { return "evt-1" }),
	)
	e.On("save", func(*Event, ...any) error { return ErrStopPropagation })
	e.Emit("save")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "emitting to 1 observers", entries[0].Message)
	assert.Equal(t, map[string]any{"event": "save", "event_id": "evt-1"}, entries[0].ContextMap())

	assert.Contains(t, entries[1].Message, "propagation stopped by")
}

// recordingLogger is a Logger written outside the provided adapters.
type recordingLogger struct {
	noopLogger
	fields map[string]any
	warns  *[]string
}

func (l recordingLogger) WithField(key string, value any) Logger {
	fields := map[string]any{key: value}
	for k, v := range l.fields {
		fields[k] = v
	}
	return recordingLogger{fields: fields, warns: l.warns}
}

func (l recordingLogger) Warnf(format string, args ...any) {
	*l.warns = append(*l.warns, fmt.Sprintf("%v: "+format, append([]any{l.fields["event"]}, args...)...))
}

func TestCustomLogger(t *testing.T) {
	var warns []string
	e := NewEventEmitter(WithLogger(recordingLogger{warns: &warns}))

	e.On("save", func(*Event, ...any) error { return errors.New("boom") })
	e.Emit("save")

	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "save: observer ")
	assert.Contains(t, warns[0], "boom")
}
