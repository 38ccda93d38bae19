// Package project provides the project and milestone domain model.
// A project owns an ordered list of milestones; its progress percentage is
// derived from them and never edited directly.
package project

import "time"

// MilestoneStatus represents the lifecycle state of a milestone.
// Lessons and tasks share this vocabulary.
type MilestoneStatus string

// Canonical milestone statuses.
const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneCancelled  MilestoneStatus = "cancelled"
)

// IsValid returns true if the status is a recognized canonical status.
func (s MilestoneStatus) IsValid() bool {
	switch s {
	case MilestonePending, MilestoneInProgress, MilestoneCompleted, MilestoneCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for completed and cancelled.
func (s MilestoneStatus) IsTerminal() bool {
	return s == MilestoneCompleted || s == MilestoneCancelled
}

// String returns the string representation of the status.
func (s MilestoneStatus) String() string {
	return string(s)
}

// ParseMilestoneStatus converts a raw string, rejecting unknown values.
func ParseMilestoneStatus(raw string) (MilestoneStatus, error) {
	s := MilestoneStatus(raw)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// CanTransition reports whether the milestone graph contains from -> to:
// pending -> in_progress -> completed, plus cancellation from any
// non-terminal state.
func CanTransition(from, to MilestoneStatus) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	switch {
	case to == MilestoneCancelled:
		return !from.IsTerminal()
	case from == MilestonePending:
		return to == MilestoneInProgress
	case from == MilestoneInProgress:
		return to == MilestoneCompleted
	default:
		return false
	}
}

// Milestone is one step of a project.
type Milestone struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Status      MilestoneStatus `json:"status"`
	CompletedAt time.Time       `json:"completed_at,omitempty"`
	Order       int             `json:"order"`
}
