package dispatch

import (
	"context"
	"sync"
)

// IdempotencyRegistry remembers which exactly-once effects have already been
// delivered, so a replayed transition or duplicate submission cannot award
// XP or grant a role twice.
type IdempotencyRegistry interface {
	// Register records the key and reports whether this was its first
	// registration.
	Register(ctx context.Context, key string) (bool, error)
}

// MemoryRegistry is an in-process IdempotencyRegistry. Suitable for a single
// instance; multi-instance deployments use the Redis-backed registry.
type MemoryRegistry struct {
	seen map[string]struct{}
	mu   sync.Mutex
}

// NewMemoryRegistry creates an empty in-process registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{seen: make(map[string]struct{})}
}

// Register records the key and reports whether it was new.
func (r *MemoryRegistry) Register(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[key]; ok {
		return false, nil
	}
	r.seen[key] = struct{}{}
	return true, nil
}
