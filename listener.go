package libemit

type (
	// Listener declares a group of callbacks to register together. Emitters
	// identify a listener by comparing it with ==, so implementations are
	// usually pointers.
	Listener interface {
		RegisterEvents() ListenerMap
	}

	// ListenerMap maps event names to the bindings registered for them.
	ListenerMap map[string][]Binding

	// Binding is one registration of a Listener. A zero Priority means
	// AutoPriority.
	Binding struct {
		Callback Callback
		Priority int
		Once     bool
	}
)
