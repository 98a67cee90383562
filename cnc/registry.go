package cnc

import (
	"context"
	"fmt"

	multimethod "github.com/TheAlpha16/multimethod-go"
)

type Registry interface {
	Register(name CommandName, h Handler) error
	Execute(ctx context.Context, cmd Command) error
}

// call carries the per-execution context alongside the command so a handler
// can be stored as a single-argument method.
type call struct {
	ctx context.Context
	cmd Command
}

type registryImpl struct {
	methods *multimethod.MultiMethod[call, error, CommandName]
	options Options
}

// Register sets the handler for a command name. A later registration for the
// same name replaces the earlier one; the replacement is logged at debug level.
func (r *registryImpl) Register(name CommandName, h Handler) error {
	if name == "" || h == nil {
		return ErrInvalidHandler
	}

	return r.methods.Register(name, func(c call) error {
		return h(c.ctx, c.cmd)
	})
}

// Execute runs the handler registered for cmd.Name and returns its error.
func (r *registryImpl) Execute(ctx context.Context, cmd Command) error {
	result, err := r.methods.Invoke(call{ctx: ctx, cmd: cmd})
	if err != nil {
		r.options.Metrics.observe(cmd.Name, statusUnhandled)
		return fmt.Errorf("%w: %w", ErrHandlerNotFound, err)
	}

	if result != nil {
		r.options.Metrics.observe(cmd.Name, statusError)
		return result
	}

	r.options.Metrics.observe(cmd.Name, statusOK)
	return nil
}

func NewRegistry(opts ...Option) Registry {
	options := buildOptions(opts)
	return &registryImpl{
		methods: multimethod.MustNew[call, error](
			func(c call) CommandName { return c.cmd.Name },
			multimethod.WithLogger(options.Logger),
		),
		options: options,
	}
}
