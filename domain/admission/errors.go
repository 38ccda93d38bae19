package admission

import "errors"

// Domain errors for the application lifecycle.
var (
	// ErrInvalidStatus indicates the status is not a recognized canonical status.
	ErrInvalidStatus = errors.New("invalid application status")

	// ErrInvalidTransition indicates an attempted status transition is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotesRequired indicates the transition requires non-empty review notes.
	ErrNotesRequired = errors.New("review notes are required for this status")

	// ErrNotFound indicates the application does not exist.
	ErrNotFound = errors.New("application not found")

	// ErrAlreadyApplied indicates the user already has a non-withdrawn application.
	ErrAlreadyApplied = errors.New("user already has an active application")

	// ErrInvalidID indicates an empty or malformed application ID.
	ErrInvalidID = errors.New("invalid application id")

	// ErrVersionConflict indicates a concurrent update won; the caller holds
	// a stale copy and must re-read before retrying.
	ErrVersionConflict = errors.New("application was modified concurrently")
)
