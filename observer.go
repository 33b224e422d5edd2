package libemit

import (
	"reflect"
	"runtime"
	"sync/atomic"
	"unsafe"
)

// Callback is notified when an event it observes is emitted. Returning
// ErrStopPropagation halts the remaining observers without failing the event;
// any other non-nil error halts them and is recorded on the event.
type Callback func(evt *Event, params ...any) error

// Observer is a single callback registered on an emitter.
type Observer struct {
	callback Callback
	id       unsafe.Pointer
	priority int
	once     bool
	owner    Listener
	executed atomic.Bool
}

func newObserver(callback Callback, priority int, once bool, owner Listener) *Observer {
	return &Observer{
		callback: callback,
		id:       callbackID(callback),
		priority: priority,
		once:     once,
		owner:    owner,
	}
}

// callbackID identifies a callback by its function value. Every closure and
// every method value is a distinct value, so evaluating alice.onDelete twice
// yields two identities: keep the value in a variable to remove it later.
func callbackID(callback Callback) unsafe.Pointer {
	if callback == nil {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Pointer(&callback))
}

func (o *Observer) Callback() Callback {
	return o.callback
}

// Caller returns the fully qualified name of the callback function.
func (o *Observer) Caller() string {
	if fn := runtime.FuncForPC(reflect.ValueOf(o.callback).Pointer()); fn != nil {
		return fn.Name()
	}
	return "{unknown}"
}

func (o *Observer) Priority() int {
	return o.priority
}

func (o *Observer) IsOnce() bool {
	return o.once
}

// HasExecuted reports whether the callback has been invoked at least once.
func (o *Observer) HasExecuted() bool {
	return o.executed.Load()
}

// execute runs the callback. A once observer runs for the first caller only,
// the rest get ran == false.
func (o *Observer) execute(evt *Event, params []any) (ran bool, err error) {
	if o.once {
		if !o.executed.CompareAndSwap(false, true) {
			return false, nil
		}
	} else {
		o.executed.Store(true)
	}

	return true, o.callback(evt, params...)
}
