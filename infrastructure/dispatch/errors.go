package dispatch

import "errors"

// Errors for effect delivery.
var (
	// ErrServiceUnavailable indicates the downstream service is not reachable.
	ErrServiceUnavailable = errors.New("downstream service unavailable")

	// ErrServiceRejected indicates the service rejected the call (4xx).
	ErrServiceRejected = errors.New("downstream service rejected call")

	// ErrDispatcherClosed indicates the dispatcher has been closed.
	ErrDispatcherClosed = errors.New("dispatcher is closed")

	// ErrInvalidEndpoint indicates the endpoint configuration is invalid.
	ErrInvalidEndpoint = errors.New("invalid endpoint configuration")

	// ErrUnroutableEffect indicates no target service handles the effect kind.
	ErrUnroutableEffect = errors.New("no target service for effect kind")
)
