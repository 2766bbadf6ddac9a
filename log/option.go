package log

// Option configures a [Logger].
type Option func(config) config

// apply applies opts in order.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}
