// Package ticket provides the support-ticket status vocabulary. Only the
// lifecycle graph lives in the core; ticket content is handled elsewhere.
package ticket

import "errors"

// Status represents the lifecycle state of a support ticket.
type Status string

// Canonical ticket statuses.
const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// ErrInvalidStatus indicates an unrecognized ticket status.
var ErrInvalidStatus = errors.New("invalid ticket status")

// IsValid returns true if the status is a recognized canonical status.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for closed.
func (s Status) IsTerminal() bool {
	return s == StatusClosed
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a raw string, rejecting unknown values.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// CanTransition reports whether the ticket graph contains from -> to:
// open -> in_progress -> resolved -> closed, with a reopen edge from
// resolved back to in_progress.
func CanTransition(from, to Status) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	switch from {
	case StatusOpen:
		return to == StatusInProgress
	case StatusInProgress:
		return to == StatusResolved
	case StatusResolved:
		return to == StatusClosed || to == StatusInProgress
	default:
		return false
	}
}
