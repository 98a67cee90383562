package cnc

import (
	"context"
	"log/slog"
)

// ErrorHandler is a user-provided callback for command execution errors
type ErrorHandler func(ctx context.Context, cmd Command, err error)
type Option func(*Options)

type Options struct {
	MsgBufferSize int
	OnError       ErrorHandler
	Logger        *slog.Logger
	Metrics       *Metrics
}

func defaultOptions() Options {
	return Options{
		MsgBufferSize: 100,
		OnError: func(ctx context.Context, cmd Command, err error) {
			// Default: no-op
		},
		Logger: slog.Default(),
	}
}

func buildOptions(opts []Option) Options {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func WithMsgBufferSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.MsgBufferSize = size
		}
	}
}

func WithOnError(handler ErrorHandler) Option {
	return func(o *Options) {
		if handler != nil {
			o.OnError = handler
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithMetrics records command outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}
