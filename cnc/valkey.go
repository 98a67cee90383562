package cnc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	initialRetryDelay = 100 * time.Millisecond
	maxRetryDelay     = 30 * time.Second
)

type ValkeyTransport struct {
	client       valkey.Client
	channel      string
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	isSubscribed bool
	connected    bool
	msgChan      chan Command
	closedChan   chan struct{}
	once         sync.Once
	options      Options
}

// Publish publishes a command to the valkey channel
func (v *ValkeyTransport) Publish(ctx context.Context, command Command) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if !v.connected {
		return ErrTransportNotConnected
	}

	data, err := encodeCommand(command)
	if err != nil {
		return err
	}

	cmd := v.client.B().Publish().Channel(v.channel).Message(string(data)).Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// Subscribe starts subscribing to the valkey channel
func (v *ValkeyTransport) Subscribe(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.isSubscribed {
		return nil
	}

	if !v.connected {
		return ErrTransportNotConnected
	}

	go v.subscriptionLoop()

	v.isSubscribed = true
	return nil
}

// subscriptionLoop keeps a subscription open until the transport is closed,
// reconnecting with exponential backoff.
func (v *ValkeyTransport) subscriptionLoop() {
	defer func() {
		v.mu.Lock()
		v.isSubscribed = false
		close(v.msgChan)
		v.mu.Unlock()
	}()

	retryDelay := initialRetryDelay
	subscriber := v.client.B().Subscribe().Channel(v.channel).Build()

	for {
		if v.shouldStop() {
			return
		}

		// Blocks until an error occurs or the context is cancelled.
		err := v.client.Receive(v.ctx, subscriber, v.handleMessage)

		if v.shouldStop() {
			return
		}

		if err != nil {
			v.options.Logger.Warn("Subscription interrupted, retrying.",
				"channel", v.channel, "retry_in", retryDelay, "error", err)
			v.sleep(retryDelay)
			retryDelay = nextRetryDelay(retryDelay)
			continue
		}

		retryDelay = initialRetryDelay
		v.sleep(initialRetryDelay)
	}
}

// handleMessage processes individual messages from the subscription
func (v *ValkeyTransport) handleMessage(msg valkey.PubSubMessage) {
	if msg.Channel != v.channel {
		return
	}

	command, err := decodeCommand([]byte(msg.Message))
	if err != nil {
		v.options.Logger.Warn("Discarding malformed command.", "channel", v.channel, "error", err)
		v.options.OnError(v.ctx, Command{}, err)
		return
	}

	// Non-blocking so a slow consumer cannot stall the subscription.
	select {
	case v.msgChan <- command:
	case <-v.closedChan:
	case <-v.ctx.Done():
	default:
		v.options.Logger.Warn("Message buffer full, dropping command.",
			"channel", v.channel, "command", command.Name, "id", command.ID)
	}
}

// Messages returns a channel that receives commands from the transport
func (v *ValkeyTransport) Messages() <-chan Command {
	return v.msgChan
}

// Close shuts down the valkey transport and cleans up resources
func (v *ValkeyTransport) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.connected {
		return nil
	}

	v.once.Do(func() {
		close(v.closedChan)
		v.cancel()
		v.client.Close()
		v.connected = false
	})

	return nil
}

// IsConnected returns true if the transport is connected and ready
func (v *ValkeyTransport) IsConnected() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.connected
}

func (v *ValkeyTransport) shouldStop() bool {
	select {
	case <-v.closedChan:
		return true
	case <-v.ctx.Done():
		return true
	default:
		return false
	}
}

func (v *ValkeyTransport) sleep(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-v.closedChan:
	case <-v.ctx.Done():
	}
}

func nextRetryDelay(d time.Duration) time.Duration {
	d *= 2
	if d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

func encodeCommand(command Command) ([]byte, error) {
	if command.Name == "" {
		return nil, ErrInvalidCommand
	}
	data, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	return data, nil
}

func decodeCommand(data []byte) (Command, error) {
	var command Command
	if err := json.Unmarshal(data, &command); err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	if command.Name == "" {
		return Command{}, fmt.Errorf("%w: missing type", ErrInvalidCommand)
	}
	return command, nil
}

// NewValkeyClient creates a new valkey client with common configuration
func NewValkeyClient(address string, options ...valkey.ClientOption) (valkey.Client, error) {
	var clientOption valkey.ClientOption
	if len(options) > 0 {
		clientOption = options[0]
	}
	if len(clientOption.InitAddress) == 0 {
		clientOption.InitAddress = []string{address}
	}

	return valkey.NewClient(clientOption)
}

// NewValkeyTransport creates a new valkey transport instance
func NewValkeyTransport(client valkey.Client, channel string, opts ...Option) Transport {
	ctx, cancel := context.WithCancel(context.Background())
	options := buildOptions(opts)

	return &ValkeyTransport{
		client:     client,
		channel:    channel,
		ctx:        ctx,
		cancel:     cancel,
		connected:  true,
		msgChan:    make(chan Command, options.MsgBufferSize),
		closedChan: make(chan struct{}),
		options:    options,
	}
}
