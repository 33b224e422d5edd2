package libemit

import (
	"time"

	"github.com/google/uuid"
)

type (
	// CallStackEntry describes one observer in the order it was scheduled.
	CallStackEntry struct {
		Caller   string
		Priority int
		Once     bool
	}

	// EventMap holds the result of emitting several events at once, keyed by
	// event name.
	EventMap map[string]*Event
)

// Event is the object handed to every observer of a single emission and
// returned to the emitter's caller. Observers run one after another, so an
// Event is not guarded for concurrent use. Create events with NewEvent.
type Event struct {
	key     string
	id      string
	time    time.Time
	index   int
	stopped bool
	state   any
	err     error
	data    map[string]any
	stack   []CallStackEntry
}

// NewEvent creates an event for key with a random ID, stamped now.
func NewEvent(key string) *Event {
	return newEvent(key, uuid.NewString(), time.Now(), nil)
}

func newEvent(key, id string, at time.Time, stack []CallStackEntry) *Event {
	return &Event{
		key:   key,
		id:    id,
		time:  at,
		data:  make(map[string]any),
		stack: stack,
	}
}

func (e *Event) Key() string {
	return e.key
}

func (e *Event) ID() string {
	return e.id
}

// Time returns when the emission started.
func (e *Event) Time() time.Time {
	return e.time
}

// Index returns how many observers have been notified without stopping.
func (e *Event) Index() int {
	return e.index
}

func (e *Event) IsStopped() bool {
	return e.stopped
}

// Stop cancels the observers scheduled after the current one.
func (e *Event) Stop() *Event {
	e.stopped = true
	return e
}

func (e *Event) State() any {
	return e.state
}

// SetState stores a value for the emitter's caller to inspect.
func (e *Event) SetState(state any) *Event {
	e.state = state
	return e
}

// Data returns a value stored by an earlier observer.
func (e *Event) Data(key string) (any, bool) {
	v, ok := e.data[key]
	return v, ok
}

// AllData returns a copy of every stored value.
func (e *Event) AllData() map[string]any {
	data := make(map[string]any, len(e.data))
	for k, v := range e.data {
		data[k] = v
	}
	return data
}

// SetData stores a value for the observers that follow.
func (e *Event) SetData(key string, value any) *Event {
	if e.data == nil {
		e.data = make(map[string]any)
	}
	e.data[key] = value
	return e
}

// CallStack returns the observers scheduled for this emission, in order.
func (e *Event) CallStack() []CallStackEntry {
	return e.stack
}

func (e *Event) SetCallStack(stack []CallStackEntry) *Event {
	e.stack = stack
	return e
}

// Err returns the failure recorded when an observer returned an error other
// than ErrStopPropagation.
func (e *Event) Err() error {
	return e.err
}

func (e *Event) fail(err error) {
	e.stopped = true
	e.err = err
}

func (e *Event) next() {
	if !e.stopped {
		e.index++
	}
}
