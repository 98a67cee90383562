package cnc

import "context"

type CommandName string

// Command represents a distributed command. Name is the dispatch value used to
// select its handler.
type Command struct {
	ID         string         `json:"id,omitempty"`
	Name       CommandName    `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Handler defines the function signature for processing a command
type Handler func(ctx context.Context, command Command) error
