package course

import "context"

// Store defines the interface for enrollment persistence.
type Store interface {
	// Save persists a new enrollment.
	Save(ctx context.Context, e *Enrollment) error

	// Get retrieves an enrollment by ID.
	Get(ctx context.Context, id string) (*Enrollment, error)

	// GetByUserAndCourse retrieves a user's enrollment in a course.
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*Enrollment, error)

	// Update persists a mutated enrollment with a version compare-and-swap.
	Update(ctx context.Context, e *Enrollment) error
}
