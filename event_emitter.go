package libemit

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type EmitterOption func(*EventEmitter)

// WithLogger sets the logger used to report emissions and observer failures.
func WithLogger(l Logger) EmitterOption {
	return func(e *EventEmitter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDefaultPriority changes the base used to resolve AutoPriority.
func WithDefaultPriority(priority int) EmitterOption {
	return func(e *EventEmitter) {
		e.defaultPriority = priority
	}
}

// WithIDGenerator replaces the UUID generator used for event IDs.
func WithIDGenerator(fn func() string) EmitterOption {
	return func(e *EventEmitter) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// EventEmitter is the default Emitter. Observers of an event run ordered by
// priority, lowest first, with ties kept in registration order. Callbacks are
// invoked without holding the lock, so they may register or remove observers.
//
// The zero value is not ready for use; create emitters with NewEventEmitter.
type EventEmitter struct {
	observers map[string][]*Observer
	lock      sync.RWMutex

	logger          Logger
	defaultPriority int
	newID           func() string
	now             func() time.Time
}

// NewEventEmitter creates a new EventEmitter and returns a pointer to it.
func NewEventEmitter(opts ...EmitterOption) *EventEmitter {
	e := &EventEmitter{
		observers:       make(map[string][]*Observer),
		logger:          noopLogger{},
		defaultPriority: DefaultPriority,
		newID:           uuid.NewString,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// On registers a callback for the given event. It panics if callback is nil.
func (e *EventEmitter) On(event string, callback Callback, opts ...Option) {
	e.register(event, callback, ResolveOptions(opts...), nil)
}

// Once registers a callback that runs on the next emission only.
func (e *EventEmitter) Once(event string, callback Callback, opts ...Option) {
	cfg := ResolveOptions(opts...)
	cfg.Once = true
	e.register(event, callback, cfg, nil)
}

// Off removes every observer of event registered with the same function value
// as callback. A method value or closure must be kept in a variable to be
// removed, since evaluating it again produces a new value.
func (e *EventEmitter) Off(event string, callback Callback) {
	if callback == nil {
		return
	}
	id := callbackID(callback)

	e.lock.Lock()
	defer e.lock.Unlock()

	e.removeLocked(event, func(o *Observer) bool {
		return o.id == id
	})
}

// Listen registers every binding declared by listener. Listener must be a
// comparable value, typically a pointer, so that Unlisten can find it again.
func (e *EventEmitter) Listen(listener Listener) {
	if listener == nil {
		panic(errors.Wrap(ErrInvalidObserver, "nil listener"))
	}
	if !reflect.TypeOf(listener).Comparable() {
		panic(errors.Wrapf(ErrInvalidObserver, "listener of type %T is not comparable", listener))
	}

	for event, bindings := range listener.RegisterEvents() {
		for _, b := range bindings {
			e.register(event, b.Callback, ObserverConfig{Priority: b.Priority, Once: b.Once}, listener)
		}
	}
}

// Unlisten removes the observers registered through Listen(listener).
func (e *EventEmitter) Unlisten(listener Listener) {
	if listener == nil {
		return
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	for event := range e.observers {
		e.removeLocked(event, func(o *Observer) bool {
			return o.owner != nil && o.owner == listener
		})
	}
}

// Emit notifies the observers of event in priority order, passing params to
// each one, and returns the Event describing the outcome.
func (e *EventEmitter) Emit(event string, params ...any) *Event {
	e.lock.RLock()
	observers := e.sortedLocked(event)
	e.lock.RUnlock()

	evt := newEvent(event, e.newID(), e.now(), callStack(observers))
	log := e.logger.WithField("event", event).WithField("event_id", evt.ID())
	log.Debugf("emitting to %d observers", len(observers))

	var fired []*Observer
	defer func() {
		if len(fired) > 0 {
			e.removeObservers(event, fired)
		}
	}()

	for _, o := range observers {
		// once observers are scheduled for removal before they run, so a
		// panicking callback does not linger
		if o.once {
			fired = append(fired, o)
		}

		ran, err := o.execute(evt, params)
		if !ran {
			continue
		}

		if err != nil {
			evt.SetState(err)
			if errors.Is(err, ErrStopPropagation) {
				evt.Stop()
			} else {
				log.Warnf("observer %s failed: %s", o.Caller(), err)
				evt.fail(wrapObserverError(err, event, o.Caller()))
			}
		}

		if evt.IsStopped() {
			log.Debugf("propagation stopped by %s after %d observers", o.Caller(), evt.Index())
			break
		}

		evt.next()
	}

	return evt
}

// EmitMany emits every event named in events. Names are separated by
// whitespace; a name containing * matches registered events case
// insensitively, each * standing for one or more word characters or dashes.
func (e *EventEmitter) EmitMany(events string, params ...any) EventMap {
	names := e.resolveEvents(events)
	result := make(EventMap, len(names))

	for _, name := range names {
		result[name] = e.Emit(name, params...)
	}

	return result
}

// Flush removes the observers of event, or of every event when event is empty.
func (e *EventEmitter) Flush(event string) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if event == "" {
		e.observers = make(map[string][]*Observer)
		return
	}

	delete(e.observers, event)
}

// Close removes all observers to prevent memory leaks.
func (e *EventEmitter) Close() {
	e.Flush("")
}

// EventKeys returns the names of the events that have observers, sorted.
func (e *EventEmitter) EventKeys() []string {
	e.lock.RLock()
	defer e.lock.RUnlock()

	keys := make([]string, 0, len(e.observers))
	for k := range e.observers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func (e *EventEmitter) HasObservers(event string) bool {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return len(e.observers[event]) > 0
}

// Observers returns the observers of event in registration order.
func (e *EventEmitter) Observers(event string) []*Observer {
	e.lock.RLock()
	defer e.lock.RUnlock()

	observers := make([]*Observer, len(e.observers[event]))
	copy(observers, e.observers[event])

	return observers
}

// SortedObservers returns the observers of event in the order Emit runs them.
func (e *EventEmitter) SortedObservers(event string) []*Observer {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.sortedLocked(event)
}

// CallStack describes the observers Emit would run for event right now.
func (e *EventEmitter) CallStack(event string) []CallStackEntry {
	return callStack(e.SortedObservers(event))
}

func (e *EventEmitter) register(event string, callback Callback, cfg ObserverConfig, owner Listener) {
	if callback == nil {
		panic(errors.Wrapf(ErrInvalidObserver, "event %q", event))
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	observers := e.observers[event]

	priority := cfg.Priority
	if priority == AutoPriority {
		priority = len(observers) + e.defaultPriority
	}

	e.observers[event] = append(observers, newObserver(callback, priority, cfg.Once, owner))
}

func (e *EventEmitter) removeObservers(event string, targets []*Observer) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.removeLocked(event, func(o *Observer) bool {
		for _, t := range targets {
			if o == t {
				return true
			}
		}
		return false
	})
}

// removeLocked drops the observers of event matching fn. It builds a new
// slice so snapshots taken by Emit stay intact.
func (e *EventEmitter) removeLocked(event string, fn func(*Observer) bool) {
	observers, found := e.observers[event]
	if !found {
		return
	}

	kept := make([]*Observer, 0, len(observers))
	for _, o := range observers {
		if !fn(o) {
			kept = append(kept, o)
		}
	}

	if len(kept) == 0 {
		delete(e.observers, event)
		return
	}

	e.observers[event] = kept
}

func (e *EventEmitter) sortedLocked(event string) []*Observer {
	observers := make([]*Observer, len(e.observers[event]))
	copy(observers, e.observers[event])

	sort.SliceStable(observers, func(i, j int) bool {
		return observers[i].priority < observers[j].priority
	})

	return observers
}

func (e *EventEmitter) resolveEvents(events string) []string {
	var (
		found []string
		seen  = make(map[string]struct{})
	)

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		found = append(found, name)
	}

	for _, name := range strings.Fields(events) {
		if !strings.Contains(name, "*") {
			add(name)
			continue
		}

		pattern := wildcardPattern(name)
		for _, key := range e.EventKeys() {
			if pattern.MatchString(key) {
				add(key)
			}
		}
	}

	return found
}

func wildcardPattern(name string) *regexp.Regexp {
	quoted := strings.ReplaceAll(regexp.QuoteMeta(name), `\*`, `[-\w]+`)
	return regexp.MustCompile(`(?i)^` + quoted + `$`)
}

func callStack(observers []*Observer) []CallStackEntry {
	stack := make([]CallStackEntry, 0, len(observers))
	for _, o := range observers {
		stack = append(stack, CallStackEntry{
			Caller:   o.Caller(),
			Priority: o.priority,
			Once:     o.once,
		})
	}
	return stack
}
