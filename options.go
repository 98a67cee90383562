package multimethod

import "log/slog"

// MissHandler observes dispatch misses. It cannot change the result of Invoke.
type MissHandler func(err error)
type Option func(*Options)

type Options struct {
	Logger *slog.Logger
	OnMiss MissHandler
}

func defaultOptions() Options {
	return Options{
		Logger: slog.Default(),
		OnMiss: func(err error) {},
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

func WithOnMiss(handler MissHandler) Option {
	return func(o *Options) {
		if handler != nil {
			o.OnMiss = handler
		}
	}
}
