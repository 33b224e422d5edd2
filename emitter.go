package libemit

type (
	// Emitter stores observers per event name and dispatches events to them.
	// Emittable forwards to any Emitter and makes no assumption about how
	// ordering, once semantics or stopping are implemented.
	Emitter interface {
		// On registers a callback for the given event.
		On(event string, callback Callback, opts ...Option)

		// Once registers a callback that is removed after its first run.
		Once(event string, callback Callback, opts ...Option)

		// Off removes the callback from the given event.
		Off(event string, callback Callback)

		// Emit notifies the observers of the given event synchronously and
		// returns the resulting Event.
		Emit(event string, params ...any) *Event
	}

	// BatchEmitter is implemented by emitters that can resolve several event
	// names, or wildcards, in a single call.
	BatchEmitter interface {
		EmitMany(events string, params ...any) EventMap
	}

	// ListenerRegistry is implemented by emitters that can register and
	// remove every binding of a Listener as a unit.
	ListenerRegistry interface {
		Listen(listener Listener)
		Unlisten(listener Listener)
	}
)
