package statemachine

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/launchpad/domain/project"
)

// MilestoneContext carries the milestone through the machine.
type MilestoneContext struct {
	Milestone *project.Milestone
}

// MilestonePayload carries the requested milestone transition.
type MilestonePayload struct {
	To project.MilestoneStatus
	At time.Time
}

const (
	statePending    statekit.StateID = statekit.StateID(project.MilestonePending)
	stateInProgress statekit.StateID = statekit.StateID(project.MilestoneInProgress)
	stateCompleted  statekit.StateID = statekit.StateID(project.MilestoneCompleted)
	stateCancelled  statekit.StateID = statekit.StateID(project.MilestoneCancelled)
)

// NewMilestoneMachine creates the milestone statechart. Lessons and tasks
// share the same chart.
func NewMilestoneMachine() (*statekit.MachineConfig[*MilestoneContext], error) {
	return statekit.NewMachine[*MilestoneContext]("milestone").
		WithInitial(statePending).
		WithContext(&MilestoneContext{}).
		WithAction("applyStatus", applyMilestoneStatus).
		State(statePending).
			On("START").Target(stateInProgress).Do("applyStatus").
			On("CANCEL").Target(stateCancelled).Do("applyStatus").
			Done().
		State(stateInProgress).
			On("COMPLETE").Target(stateCompleted).Do("applyStatus").
			On("CANCEL").Target(stateCancelled).Do("applyStatus").
			Done().
		State(stateCompleted).
			Final().
			Done().
		State(stateCancelled).
			Final().
			Done().
		Build()
}

// applyMilestoneStatus moves the milestone and stamps CompletedAt on the
// first transition into completed.
func applyMilestoneStatus(ctx **MilestoneContext, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Milestone == nil {
		return
	}

	payload, ok := event.Payload.(MilestonePayload)
	if !ok {
		return
	}

	m := (*ctx).Milestone
	m.Status = payload.To
	if payload.To == project.MilestoneCompleted && m.CompletedAt.IsZero() {
		m.CompletedAt = payload.At
	}
}

// EventForMilestoneStatus returns the event type that targets the status.
func EventForMilestoneStatus(to project.MilestoneStatus) statekit.EventType {
	switch to {
	case project.MilestoneInProgress:
		return "START"
	case project.MilestoneCompleted:
		return "COMPLETE"
	case project.MilestoneCancelled:
		return "CANCEL"
	default:
		return statekit.EventType(to)
	}
}

// MilestoneInterpreter wraps the statekit interpreter for one milestone.
type MilestoneInterpreter struct {
	interp *statekit.Interpreter[*MilestoneContext]
	ctx    *MilestoneContext
}

// NewMilestoneInterpreter creates an interpreter positioned at the
// milestone's current status.
func NewMilestoneInterpreter(machine *statekit.MachineConfig[*MilestoneContext], m *project.Milestone) (*MilestoneInterpreter, error) {
	ctx := &MilestoneContext{Milestone: m}
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **MilestoneContext) {
		*c = ctx
	})

	snapshot := statekit.Snapshot[*MilestoneContext]{
		MachineID:    "milestone",
		CurrentState: statekit.StateID(string(m.Status)),
		Context:      ctx,
		CreatedAt:    time.Now(),
	}
	if err := interp.Restore(snapshot); err != nil {
		return nil, fmt.Errorf("restore milestone state: %w", err)
	}

	return &MilestoneInterpreter{interp: interp, ctx: ctx}, nil
}

// Transition attempts to move the milestone to the target status.
func (i *MilestoneInterpreter) Transition(to project.MilestoneStatus, at time.Time) error {
	m := i.ctx.Milestone
	if !project.CanTransition(m.Status, to) {
		return fmt.Errorf("%w: %s -> %s", project.ErrInvalidTransition, m.Status, to)
	}

	i.interp.Send(statekit.Event{
		Type:    EventForMilestoneStatus(to),
		Payload: MilestonePayload{To: to, At: at},
	})

	if got := project.MilestoneStatus(i.interp.State().Value); got != to {
		return fmt.Errorf("%w: %s -> %s", project.ErrInvalidTransition, m.Status, to)
	}
	return nil
}
