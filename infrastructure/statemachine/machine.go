// Package statemachine provides the statekit statecharts backing the
// lifecycle transition validators.
package statemachine

import (
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/launchpad/domain/admission"
	"github.com/felixgeelhaar/launchpad/domain/identity"
)

// ReviewContext carries the application under review through the machine.
type ReviewContext struct {
	Application *admission.Application
	Actor       identity.Principal
}

// TransitionPayload carries the requested transition with an event.
type TransitionPayload struct {
	To    admission.Status
	Actor identity.Principal
	Notes string
	At    time.Time
}

// State IDs as StateID type for statekit.
const (
	stateSubmitted          statekit.StateID = statekit.StateID(admission.StatusSubmitted)
	stateUnderReview        statekit.StateID = statekit.StateID(admission.StatusUnderReview)
	stateApproved           statekit.StateID = statekit.StateID(admission.StatusApproved)
	stateInterviewScheduled statekit.StateID = statekit.StateID(admission.StatusInterviewScheduled)
	stateAccepted           statekit.StateID = statekit.StateID(admission.StatusAccepted)
	stateRejected           statekit.StateID = statekit.StateID(admission.StatusRejected)
	stateWithdrawn          statekit.StateID = statekit.StateID(admission.StatusWithdrawn)
)

// NewReviewMachine creates the canonical application statechart. Every edge
// is guarded by the role policy and records the transition on the aggregate,
// so a chart-driven move and an audit entry can never diverge.
func NewReviewMachine() (*statekit.MachineConfig[*ReviewContext], error) {
	return statekit.NewMachine[*ReviewContext]("application").
		WithInitial(stateSubmitted).
		WithContext(&ReviewContext{}).
		WithAction("recordTransition", recordTransition).
		WithGuard("allowedEdge", guardAllowedEdge).
		State(stateSubmitted).
			On("REVIEW").Target(stateUnderReview).Guard("allowedEdge").Do("recordTransition").
			On("WITHDRAW").Target(stateWithdrawn).Guard("allowedEdge").Do("recordTransition").
			Done().
		State(stateUnderReview).
			On("APPROVE").Target(stateApproved).Guard("allowedEdge").Do("recordTransition").
			On("REJECT").Target(stateRejected).Guard("allowedEdge").Do("recordTransition").
			On("WITHDRAW").Target(stateWithdrawn).Guard("allowedEdge").Do("recordTransition").
			Done().
		State(stateApproved).
			On("SCHEDULE_INTERVIEW").Target(stateInterviewScheduled).Guard("allowedEdge").Do("recordTransition").
			On("WITHDRAW").Target(stateWithdrawn).Guard("allowedEdge").Do("recordTransition").
			Done().
		State(stateInterviewScheduled).
			On("ACCEPT").Target(stateAccepted).Guard("allowedEdge").Do("recordTransition").
			On("REJECT").Target(stateRejected).Guard("allowedEdge").Do("recordTransition").
			On("WITHDRAW").Target(stateWithdrawn).Guard("allowedEdge").Do("recordTransition").
			Done().
		State(stateAccepted).
			Final().
			Done().
		State(stateRejected).
			Final().
			Done().
		State(stateWithdrawn).
			Final().
			Done().
		Build()
}

// EventForStatus returns the event type that targets the given status.
func EventForStatus(to admission.Status) statekit.EventType {
	switch to {
	case admission.StatusUnderReview:
		return "REVIEW"
	case admission.StatusApproved:
		return "APPROVE"
	case admission.StatusRejected:
		return "REJECT"
	case admission.StatusInterviewScheduled:
		return "SCHEDULE_INTERVIEW"
	case admission.StatusAccepted:
		return "ACCEPT"
	case admission.StatusWithdrawn:
		return "WITHDRAW"
	default:
		return statekit.EventType(to)
	}
}
