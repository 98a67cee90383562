// Package cnc is a distributed command-and-control layer. Commands travel over
// a Transport and are dispatched on their name to registered handlers.
package cnc

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// CNC is the main interface for command and control
type CNC interface {
	RegisterHandler(commandName CommandName, handler Handler) error
	TriggerCommand(ctx context.Context, command Command) error
	Start(ctx context.Context) error
	Shutdown() error
	IsRunning() bool
}

type cncImpl struct {
	registry  Registry
	transport Transport
	options   Options
	cancel    context.CancelFunc
	wg        *sync.WaitGroup
	started   bool
	mu        sync.RWMutex
}

// RegisterHandler registers a command handler with the registry
func (c *cncImpl) RegisterHandler(commandName CommandName, handler Handler) error {
	return c.registry.Register(commandName, handler)
}

// TriggerCommand publishes a command through the transport. Commands without
// an ID are given a random one.
func (c *cncImpl) TriggerCommand(ctx context.Context, command Command) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return ErrCNCNotStarted
	}

	if command.ID == "" {
		command.ID = uuid.NewString()
	}

	return c.transport.Publish(ctx, command)
}

// Start begins listening for commands from the transport. A CNC that was shut
// down can be started again if its transport is still connected.
func (c *cncImpl) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return ErrCNCAlreadyStarted
	}

	if !c.transport.IsConnected() {
		return ErrTransportNotConnected
	}

	if err := c.transport.Subscribe(ctx); err != nil {
		return err
	}

	// Each run gets its own context and WaitGroup so a restart never reuses
	// ones a previous Shutdown may still be waiting on.
	runCtx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	c.cancel = cancel
	c.wg = wg

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.processMessages(runCtx, wg)
	}()

	c.started = true
	return nil
}

// processMessages runs each received command in its own goroutine until the
// message channel closes or ctx is cancelled.
func (c *cncImpl) processMessages(ctx context.Context, wg *sync.WaitGroup) {
	msgChan := c.transport.Messages()

	for {
		select {
		case command, ok := <-msgChan:
			if !ok {
				return
			}

			wg.Add(1)
			go func(cmd Command) {
				defer wg.Done()
				c.execute(ctx, cmd)
			}(command)

		case <-ctx.Done():
			return
		}
	}
}

func (c *cncImpl) execute(ctx context.Context, cmd Command) {
	err := c.registry.Execute(ctx, cmd)
	if err == nil {
		return
	}

	c.options.Logger.Error("Command failed.", "command", cmd.Name, "id", cmd.ID, "error", err)
	c.options.OnError(ctx, cmd, err)
}

// IsRunning returns true if the CNC instance is currently running
func (c *cncImpl) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.started
}

// Shutdown stops message processing, closes the transport and waits for
// running handlers to return. Handlers still running may call the CNC; they
// see it as stopped. A handler must not start the shutdown itself, since
// Shutdown would wait for that handler to return.
func (c *cncImpl) Shutdown() error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return nil
	}

	c.started = false
	c.cancel()
	wg := c.wg
	err := c.transport.Close()
	c.mu.Unlock()

	wg.Wait()
	return err
}

// NewCNC creates a new CNC instance with the provided transport
func NewCNC(transport Transport, opts ...Option) CNC {
	return &cncImpl{
		registry:  NewRegistry(opts...),
		transport: transport,
		options:   buildOptions(opts),
	}
}

// NewCNCWithValkey creates a new CNC instance with a Valkey transport
func NewCNCWithValkey(client valkey.Client, channel string, opts ...Option) CNC {
	return NewCNC(NewValkeyTransport(client, channel, opts...), opts...)
}

// NewCNCWithValkeyAddress creates a new CNC instance with a Valkey transport using an address
func NewCNCWithValkeyAddress(address, channel string, options ...valkey.ClientOption) (CNC, error) {
	client, err := NewValkeyClient(address, options...)
	if err != nil {
		return nil, err
	}

	return NewCNCWithValkey(client, channel), nil
}

// NewCNCFromConfig connects to the Valkey server named in cfg.
func NewCNCFromConfig(cfg Config, opts ...Option) (CNC, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := NewValkeyClient(cfg.Address, valkey.ClientOption{
		InitAddress: []string{cfg.Address},
		Username:    cfg.Username,
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithMsgBufferSize(cfg.MsgBufferSize)}, opts...)
	return NewCNCWithValkey(client, cfg.Channel, opts...), nil
}
