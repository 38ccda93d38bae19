package project

import "errors"

// Domain errors for projects and milestones.
var (
	// ErrInvalidStatus indicates an unrecognized milestone status.
	ErrInvalidStatus = errors.New("invalid milestone status")

	// ErrInvalidTransition indicates an attempted milestone transition is not allowed.
	ErrInvalidTransition = errors.New("invalid milestone transition")

	// ErrNotFound indicates the project does not exist.
	ErrNotFound = errors.New("project not found")

	// ErrMilestoneNotFound indicates the milestone does not exist on the project.
	ErrMilestoneNotFound = errors.New("milestone not found")

	// ErrInvalidID indicates an empty or malformed project ID.
	ErrInvalidID = errors.New("invalid project id")

	// ErrVersionConflict indicates a concurrent update won.
	ErrVersionConflict = errors.New("project was modified concurrently")
)
