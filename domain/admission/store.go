package admission

import "context"

// Store defines the interface for application persistence.
// Implementations may be in-memory, MongoDB, PostgreSQL, or any other
// backend that offers atomic single-document read-modify-write.
type Store interface {
	// Save persists a new application. It fails with ErrAlreadyApplied if
	// the user already has a non-withdrawn application.
	Save(ctx context.Context, app *Application) error

	// Get retrieves an application by ID.
	Get(ctx context.Context, id string) (*Application, error)

	// GetByUser retrieves the user's current non-withdrawn application.
	GetByUser(ctx context.Context, userID string) (*Application, error)

	// Update persists a mutated application. The write succeeds only if the
	// stored version is exactly app.Version-1; otherwise it fails with
	// ErrVersionConflict and the store is left unchanged.
	Update(ctx context.Context, app *Application) error

	// List returns applications matching the filter.
	List(ctx context.Context, filter ListFilter) ([]*Application, error)
}

// ListFilter specifies criteria for listing applications.
type ListFilter struct {
	// Statuses filters by status (empty means all).
	Statuses []Status

	// ReviewedBy filters by the last reviewer (empty means all).
	ReviewedBy string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip for pagination.
	Offset int
}
