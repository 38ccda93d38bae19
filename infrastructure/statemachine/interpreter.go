package statemachine

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/launchpad/domain/admission"
	"github.com/felixgeelhaar/launchpad/domain/identity"
)

// ReviewInterpreter wraps the statekit interpreter for one application.
type ReviewInterpreter struct {
	interp *statekit.Interpreter[*ReviewContext]
	ctx    *ReviewContext
}

// NewReviewInterpreter creates an interpreter positioned at the
// application's current status.
func NewReviewInterpreter(machine *statekit.MachineConfig[*ReviewContext], app *admission.Application) (*ReviewInterpreter, error) {
	ctx := &ReviewContext{Application: app}
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **ReviewContext) {
		*c = ctx
	})

	snapshot := statekit.Snapshot[*ReviewContext]{
		MachineID:    "application",
		CurrentState: statekit.StateID(string(app.Status)),
		Context:      ctx,
		CreatedAt:    time.Now(),
	}
	if err := interp.Restore(snapshot); err != nil {
		return nil, fmt.Errorf("restore application state: %w", err)
	}

	return &ReviewInterpreter{interp: interp, ctx: ctx}, nil
}

// Status returns the current machine status.
func (i *ReviewInterpreter) Status() admission.Status {
	return admission.Status(i.interp.State().Value)
}

// Transition attempts to move the application to the target status as the
// given actor, recording the transition on success. The edge is validated
// against the role policy before the event is sent; statekit panics on
// events a state does not define, so the precheck is mandatory.
func (i *ReviewInterpreter) Transition(to admission.Status, actor identity.Principal, notes string, at time.Time) error {
	app := i.ctx.Application
	if !admission.AllowedFor(actor, app.UserID, app.Status, to) {
		if admission.CanTransition(app.Status, to) {
			return identity.ErrForbidden
		}
		return admission.ErrInvalidTransition
	}

	// Privileged director edges exist outside the chart; apply them
	// directly. They carry the same audit obligations as normal edges.
	if !admission.CanTransition(app.Status, to) {
		app.ApplyTransition(to, actor.UserID, notes, at)
		return nil
	}

	i.interp.Send(statekit.Event{
		Type: EventForStatus(to),
		Payload: TransitionPayload{
			To:    to,
			Actor: actor,
			Notes: notes,
			At:    at,
		},
	})

	if got := i.Status(); got != to {
		return fmt.Errorf("%w: %s -> %s", admission.ErrInvalidTransition, app.Status, to)
	}
	return nil
}

// IsTerminal returns true if the machine reached a final state.
func (i *ReviewInterpreter) IsTerminal() bool {
	return i.interp.Done()
}
