package libemit

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidEmitter    = errors.New("emitter must not be nil")
	ErrInvalidObserver   = errors.New("observer must be a non-nil callback")
	ErrStopPropagation   = errors.New("stop propagation")
	ErrUnknownHandler    = errors.New("unknown handler")
	ErrInvalidBinding    = errors.New("invalid binding")
	ErrUnsupportedFormat = errors.New("unsupported bindings format")
)

// ObserverError is recorded on an Event when an observer fails.
type ObserverError struct {
	err    error
	event  string
	caller string
}

func (e ObserverError) Error() string {
	return fmt.Sprintf("observer %s failed on event %q: %s", e.caller, e.event, e.err)
}

func (e ObserverError) Unwrap() error { return e.err }

func (e ObserverError) Cause() error { return e.err }

// Event returns the event key the observer was notified for.
func (e ObserverError) Event() string { return e.event }

// Caller returns the name of the failing callback.
func (e ObserverError) Caller() string { return e.caller }

func wrapObserverError(err error, event, caller string) *ObserverError {
	if err == nil {
		return nil
	}
	return &ObserverError{
		err:    err,
		event:  event,
		caller: caller,
	}
}
