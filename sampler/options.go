package sampler

import "log/slog"

type options struct {
	logger *slog.Logger
}

type Option interface {
	apply(*options)
}

type loggerOption struct{ l *slog.Logger }

func (o loggerOption) apply(opts *options) {
	opts.logger = o.l
}

// Default: slog.Default
func WithLogger(l *slog.Logger) Option {
	return loggerOption{l: l}
}

func loadOptions(opts ...Option) options {
	options := options{
		logger: slog.Default(),
	}
	for _, o := range opts {
		o.apply(&options)
	}
	return options
}
