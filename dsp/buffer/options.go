package buffer

// Option configures a Ring at construction.
type Option func(*config)

type config struct {
	overwrite bool
}

func defaultConfig() config {
	return config{overwrite: true}
}

// WithOverwrite selects what happens when a full ring receives more data.
// With allow set (the default) the oldest elements are dropped; otherwise the
// mutation fails with ErrOverflow and leaves the ring untouched.
func WithOverwrite(allow bool) Option {
	return func(c *config) {
		c.overwrite = allow
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
