// Package admission provides the core domain model for program applications:
// the status vocabulary, the legal transition graph, and the application
// aggregate with its audit trail.
package admission

import "github.com/felixgeelhaar/launchpad/domain/identity"

// Status represents the lifecycle state of an application.
// Statuses are identified by stable strings shared across services.
type Status string

// Canonical application statuses. Draft states before submission are not
// stored; submitted is the initial persisted status.
const (
	StatusSubmitted          Status = "submitted"
	StatusUnderReview        Status = "under_review"
	StatusApproved           Status = "approved"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusAccepted           Status = "accepted"
	StatusRejected           Status = "rejected"
	StatusWithdrawn          Status = "withdrawn"
)

// transitions is the normal (non-privileged) edge set. Withdrawn edges are
// added dynamically for every non-terminal state.
var transitions = map[Status][]Status{
	StatusSubmitted:          {StatusUnderReview},
	StatusUnderReview:        {StatusApproved, StatusRejected},
	StatusApproved:           {StatusInterviewScheduled},
	StatusInterviewScheduled: {StatusAccepted, StatusRejected},
}

// IsValid returns true if the status is a recognized canonical status.
func (s Status) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusApproved,
		StatusInterviewScheduled, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for states with no outgoing normal edges.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWithdrawn
}

// IsMembershipGrant returns true for statuses that confer club membership.
func (s Status) IsMembershipGrant() bool {
	return s == StatusApproved || s == StatusAccepted
}

// RequiresNotes returns true for statuses whose transition must be justified.
func (s Status) RequiresNotes() bool {
	return s == StatusApproved || s == StatusRejected
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a raw string to a Status, rejecting unknown values.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// AllStatuses returns all canonical statuses.
func AllStatuses() []Status {
	return []Status{
		StatusSubmitted,
		StatusUnderReview,
		StatusApproved,
		StatusInterviewScheduled,
		StatusAccepted,
		StatusRejected,
		StatusWithdrawn,
	}
}

// CanTransition reports whether the normal graph contains the edge from -> to.
// Any non-terminal state may move to withdrawn.
func CanTransition(from, to Status) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	if to == StatusWithdrawn {
		return !from.IsTerminal()
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal targets from the given status along the
// normal graph.
func NextStatuses(from Status) []Status {
	next := append([]Status(nil), transitions[from]...)
	if !from.IsTerminal() && from.IsValid() {
		next = append(next, StatusWithdrawn)
	}
	return next
}

// AllowedFor reports whether the principal may move the application along
// the edge from -> to. Reviewers and directors act on any application;
// applicants and members may only withdraw their own.
func AllowedFor(p identity.Principal, ownerID string, from, to Status) bool {
	if p.CanForceStatus() {
		return from.IsValid() && to.IsValid() && from != to
	}
	if p.CanReview() {
		return CanTransition(from, to)
	}
	return p.UserID == ownerID && to == StatusWithdrawn && CanTransition(from, to)
}

// LegalFor reports whether the actor role may move an application along the
// edge from -> to. Directors own a privileged edge set that bypasses the
// normal graph; everyone else is bound to it. Applicants may only withdraw.
// A same-state request is not an edge and is never legal here; callers
// treat it as a no-op before consulting the graph.
func LegalFor(role identity.Role, from, to Status) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	switch role {
	case identity.RoleDirector:
		return true
	case identity.RoleReviewer:
		return CanTransition(from, to)
	case identity.RoleApplicant, identity.RoleClubMember:
		return to == StatusWithdrawn && CanTransition(from, to)
	default:
		return false
	}
}
