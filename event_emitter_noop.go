package libemit

import "strings"

// NoopEmitter drops every registration. Emit returns a fresh Event that no
// observer has seen, which makes it handy to silence a host.
type NoopEmitter struct{}

var (
	_ Emitter          = NoopEmitter{}
	_ BatchEmitter     = NoopEmitter{}
	_ ListenerRegistry = NoopEmitter{}
	_ Emitter          = (*EventEmitter)(nil)
	_ BatchEmitter     = (*EventEmitter)(nil)
	_ ListenerRegistry = (*EventEmitter)(nil)
)

func (NoopEmitter) On(string, Callback, ...Option) {}

func (NoopEmitter) Once(string, Callback, ...Option) {}

func (NoopEmitter) Off(string, Callback) {}

func (NoopEmitter) Emit(event string, _ ...any) *Event {
	return NewEvent(event)
}

func (n NoopEmitter) EmitMany(events string, params ...any) EventMap {
	result := make(EventMap)
	for _, name := range strings.Fields(events) {
		result[name] = n.Emit(name, params...)
	}
	return result
}

func (NoopEmitter) Listen(Listener) {}

func (NoopEmitter) Unlisten(Listener) {}
