package cnc

import "context"

// Transport carries commands between CNC instances. It only moves messages;
// dispatch to handlers happens in the Registry.
type Transport interface {
	// Publish sends a command to the transport layer
	Publish(ctx context.Context, command Command) error

	// Subscribe starts listening for messages on the transport
	Subscribe(ctx context.Context) error

	// Messages returns a channel that receives commands from the transport.
	// It is closed when the transport is closed.
	Messages() <-chan Command

	// Close shuts down the transport and releases resources
	Close() error

	// IsConnected returns true if the transport is connected and ready
	IsConnected() bool
}
