// Package lifecycle unifies the per-entity status vocabularies behind one
// transition validator, so call sites never string-match statuses ad hoc.
package lifecycle

import (
	"github.com/felixgeelhaar/launchpad/domain/admission"
	"github.com/felixgeelhaar/launchpad/domain/identity"
	"github.com/felixgeelhaar/launchpad/domain/project"
	"github.com/felixgeelhaar/launchpad/domain/ticket"
)

// EntityKind identifies which status vocabulary applies.
type EntityKind string

// Entity kinds with a lifecycle graph.
const (
	KindApplication EntityKind = "application"
	KindMilestone   EntityKind = "milestone"
	KindEnrollment  EntityKind = "course_enrollment"
	KindTicket      EntityKind = "support_ticket"
)

// IsValid returns true if the kind is recognized.
func (k EntityKind) IsValid() bool {
	switch k {
	case KindApplication, KindMilestone, KindEnrollment, KindTicket:
		return true
	default:
		return false
	}
}

// Legal reports whether the actor role may move an entity of the given kind
// along the edge from -> to. It is pure: no I/O, no mutation. Unknown kinds
// and unknown statuses are rejected, never defaulted. A request equal to the
// current state is not an edge; callers treat it as a no-op before asking.
//
// Roles gate only application edges. Milestone, enrollment, and ticket edges
// are available to any recognized role; ownership checks happen in the
// services that load the entity.
func Legal(kind EntityKind, from, to string, role identity.Role) bool {
	if !role.IsValid() {
		return false
	}
	switch kind {
	case KindApplication:
		f, err := admission.ParseStatus(from)
		if err != nil {
			return false
		}
		t, err := admission.ParseStatus(to)
		if err != nil {
			return false
		}
		return admission.LegalFor(role, f, t)
	case KindMilestone, KindEnrollment:
		f, err := project.ParseMilestoneStatus(from)
		if err != nil {
			return false
		}
		t, err := project.ParseMilestoneStatus(to)
		if err != nil {
			return false
		}
		return project.CanTransition(f, t)
	case KindTicket:
		f, err := ticket.ParseStatus(from)
		if err != nil {
			return false
		}
		t, err := ticket.ParseStatus(to)
		if err != nil {
			return false
		}
		return ticket.CanTransition(f, t)
	default:
		return false
	}
}
