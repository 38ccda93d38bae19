package effect

import "context"

// Dispatcher executes effects outside the transaction that produced them.
//
// Implementations must isolate failures: a failed or timed-out delivery is
// logged and never raised back into the operation that emitted the effect.
// Dispatch therefore returns nothing.
type Dispatcher interface {
	// Dispatch schedules each effect for independent delivery and returns
	// without waiting for the deliveries to finish.
	Dispatch(ctx context.Context, effects ...Effect)

	// Close waits for in-flight deliveries to drain and releases resources.
	Close() error
}
