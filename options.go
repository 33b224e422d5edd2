package libemit

const (
	// AutoPriority asks the emitter to place the observer after the ones
	// already registered for the event.
	AutoPriority = 0
	// DefaultPriority is the base an emitter adds to the observer count when
	// resolving AutoPriority.
	DefaultPriority = 100
)

// Option is what On and Once accept to tune a registration. It is either a
// bare Priority or a full ObserverConfig. Emittable passes options through to
// the emitter without looking at them.
type Option interface {
	apply(cfg *ObserverConfig)
}

// Priority orders observers of one event; lower runs first.
type Priority int

func (p Priority) apply(cfg *ObserverConfig) {
	cfg.Priority = int(p)
}

// ObserverConfig is the structured form of Option.
type ObserverConfig struct {
	Priority int
	Once     bool
}

func (c ObserverConfig) apply(cfg *ObserverConfig) {
	*cfg = c
}

// ResolveOptions folds opts left to right. Emitters outside this package use
// it to interpret the options they receive.
func ResolveOptions(opts ...Option) ObserverConfig {
	cfg := ObserverConfig{Priority: AutoPriority}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}
