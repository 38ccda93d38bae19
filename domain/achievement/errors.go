package achievement

import "errors"

// Domain errors for achievement progress.
var (
	// ErrNotFound indicates no record exists for the user/achievement pair.
	ErrNotFound = errors.New("user achievement not found")

	// ErrInvalidProgress indicates a progress value outside [0, 100].
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")

	// ErrInvalidID indicates an empty user or achievement ID.
	ErrInvalidID = errors.New("invalid user or achievement id")

	// ErrVersionConflict indicates a concurrent update won.
	ErrVersionConflict = errors.New("user achievement was modified concurrently")
)
