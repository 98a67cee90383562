package cnc

import "errors"

var (
	ErrInvalidCommand        = errors.New("invalid command")
	ErrInvalidHandler        = errors.New("invalid handler")
	ErrHandlerNotFound       = errors.New("handler not found")
	ErrPublishFailed         = errors.New("failed to publish command")
	ErrSubscribeFailed       = errors.New("failed to subscribe to channel")
	ErrTransportNotConnected = errors.New("transport not connected")
	ErrCNCNotStarted         = errors.New("cnc not started")
	ErrCNCAlreadyStarted     = errors.New("cnc already started")
	ErrInvalidConfig         = errors.New("invalid config")
)
