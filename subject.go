package libemit

// Subject is the surface a type gains by embedding Emittable.
type Subject interface {
	Emitter() Emitter
	SetEmitter(emitter Emitter) *Emittable
	On(event string, callback Callback, opts ...Option) *Emittable
	Once(event string, callback Callback, opts ...Option) *Emittable
	Off(event string, callback Callback) *Emittable
	Emit(event string, params ...any) *Event
	EmitMany(events string, params ...any) EventMap
	Listen(listener Listener) *Emittable
	Unlisten(listener Listener) *Emittable
}

var _ Subject = (*Emittable)(nil)
