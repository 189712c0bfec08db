package provider

import "log/slog"

type options struct {
	log *slog.Logger
}

// Option configures a provider.
type Option func(*options)

// WithLogger sets the logger used for scan diagnostics, most notably the
// debug entries emitted when a method is skipped for its signature.
// Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
