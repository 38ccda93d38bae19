package course

import "errors"

// Domain errors for course enrollments.
var (
	// ErrNotFound indicates the enrollment does not exist.
	ErrNotFound = errors.New("enrollment not found")

	// ErrLessonOutOfRange indicates the lesson index is outside the course.
	ErrLessonOutOfRange = errors.New("lesson index out of range")

	// ErrInvalidID indicates an empty or malformed enrollment ID.
	ErrInvalidID = errors.New("invalid enrollment id")

	// ErrVersionConflict indicates a concurrent update won.
	ErrVersionConflict = errors.New("enrollment was modified concurrently")
)
