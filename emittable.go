package libemit

import (
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Emittable gives event capability to the type embedding it by forwarding to
// an Emitter. The emitter is created with NewEventEmitter the first time it is
// needed, unless one was provided with SetEmitter.
//
//	type Document struct {
//		libemit.Emittable
//		// ...
//	}
//
//	doc := &Document{}
//	doc.On("save", onSave).On("save", audit)
//	doc.Emit("save", doc)
//
// The zero value is ready to use. An Emittable must not be copied after first
// use.
type Emittable struct {
	mu      sync.Mutex
	emitter Emitter

	// bindings registered through the fallback path of Listen, so Unlisten
	// removes the same callback values
	listened map[Listener]ListenerMap
}

// Emitter returns the emitter in use, creating a default one if none is set.
func (e *Emittable) Emitter() Emitter {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.emitter == nil {
		e.emitter = NewEventEmitter()
	}

	return e.emitter
}

// SetEmitter replaces the emitter in use. It panics with ErrInvalidEmitter
// when emitter is nil.
func (e *Emittable) SetEmitter(emitter Emitter) *Emittable {
	if isNilEmitter(emitter) {
		panic(errors.WithStack(ErrInvalidEmitter))
	}

	e.mu.Lock()
	e.emitter = emitter
	e.mu.Unlock()

	return e
}

// On forwards to Emitter().On.
func (e *Emittable) On(event string, callback Callback, opts ...Option) *Emittable {
	e.Emitter().On(event, callback, opts...)

	return e
}

// Once forwards to Emitter().Once.
func (e *Emittable) Once(event string, callback Callback, opts ...Option) *Emittable {
	e.Emitter().Once(event, callback, opts...)

	return e
}

// Off forwards to Emitter().Off.
func (e *Emittable) Off(event string, callback Callback) *Emittable {
	e.Emitter().Off(event, callback)

	return e
}

// Emit forwards to Emitter().Emit and returns its result untouched.
func (e *Emittable) Emit(event string, params ...any) *Event {
	return e.Emitter().Emit(event, params...)
}

// EmitMany forwards to the emitter when it is a BatchEmitter. Otherwise every
// whitespace separated name is emitted in turn, without wildcard support.
func (e *Emittable) EmitMany(events string, params ...any) EventMap {
	emitter := e.Emitter()

	if batch, ok := emitter.(BatchEmitter); ok {
		return batch.EmitMany(events, params...)
	}

	result := make(EventMap)
	for _, name := range strings.Fields(events) {
		if _, done := result[name]; done {
			continue
		}
		result[name] = emitter.Emit(name, params...)
	}

	return result
}

// Listen registers the bindings of listener, through the emitter's
// ListenerRegistry when it has one.
func (e *Emittable) Listen(listener Listener) *Emittable {
	emitter := e.Emitter()

	if registry, ok := emitter.(ListenerRegistry); ok {
		registry.Listen(listener)
		return e
	}

	events := listener.RegisterEvents()
	if reflect.TypeOf(listener).Comparable() {
		e.mu.Lock()
		if e.listened == nil {
			e.listened = make(map[Listener]ListenerMap)
		}
		e.listened[listener] = events
		e.mu.Unlock()
	}

	for event, bindings := range events {
		for _, b := range bindings {
			cfg := ObserverConfig{Priority: b.Priority, Once: b.Once}
			if b.Once {
				emitter.Once(event, b.Callback, cfg)
			} else {
				emitter.On(event, b.Callback, cfg)
			}
		}
	}

	return e
}

// Unlisten removes the bindings of listener.
func (e *Emittable) Unlisten(listener Listener) *Emittable {
	emitter := e.Emitter()

	if registry, ok := emitter.(ListenerRegistry); ok {
		registry.Unlisten(listener)
		return e
	}

	if listener == nil {
		return e
	}

	events, ok := e.forget(listener)
	if !ok {
		events = listener.RegisterEvents()
	}

	for event, bindings := range events {
		for _, b := range bindings {
			emitter.Off(event, b.Callback)
		}
	}

	return e
}

func (e *Emittable) forget(listener Listener) (ListenerMap, bool) {
	if !reflect.TypeOf(listener).Comparable() {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	events, ok := e.listened[listener]
	delete(e.listened, listener)
	return events, ok
}

func isNilEmitter(emitter Emitter) bool {
	if emitter == nil {
		return true
	}

	v := reflect.ValueOf(emitter)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}

	return false
}
