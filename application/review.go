// Package application provides the orchestration services of the lifecycle
// core: review actions, progress updates, and achievement reports. Each
// service loads an aggregate, applies a validated mutation, persists it with
// a version compare-and-swap, and only then hands the resulting effects to
// the dispatcher.
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/launchpad/domain/admission"
	"github.com/felixgeelhaar/launchpad/domain/effect"
	"github.com/felixgeelhaar/launchpad/domain/identity"
	"github.com/felixgeelhaar/launchpad/infrastructure/logging"
	"github.com/felixgeelhaar/launchpad/infrastructure/statemachine"
	"github.com/felixgeelhaar/launchpad/infrastructure/telemetry"
)

// ReviewService applies review actions to applications.
type ReviewService struct {
	store      admission.Store
	dispatcher effect.Dispatcher
	machine    *statekit.MachineConfig[*statemachine.ReviewContext]
	now        func() time.Time
}

// ReviewConfig configures the review service.
type ReviewConfig struct {
	Store      admission.Store
	Dispatcher effect.Dispatcher
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewReviewService creates a review service.
func NewReviewService(config ReviewConfig) (*ReviewService, error) {
	if config.Store == nil {
		return nil, errors.New("application store is required")
	}
	if config.Dispatcher == nil {
		return nil, errors.New("effect dispatcher is required")
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	machine, err := statemachine.NewReviewMachine()
	if err != nil {
		return nil, fmt.Errorf("build review machine: %w", err)
	}

	return &ReviewService{
		store:      config.Store,
		dispatcher: config.Dispatcher,
		machine:    machine,
		now:        config.Now,
	}, nil
}

// Submit creates a new application for the user and notifies them.
func (s *ReviewService) Submit(ctx context.Context, userID string) (*admission.Application, error) {
	if userID == "" {
		return nil, admission.ErrInvalidID
	}

	app := admission.New(userID)
	if err := s.store.Save(ctx, app); err != nil {
		return nil, err
	}

	telemetry.Metrics().RecordTransition(ctx, "application", string(app.Status))
	s.dispatcher.Dispatch(ctx, effect.NewNotify(effect.NotifyPayload{
		UserIDs:  []string{userID},
		Type:     "application_status",
		Priority: effect.PriorityNormal,
		Title:    "Application received",
		Message:  "Your application has been submitted and is awaiting review.",
		Metadata: map[string]string{"application_id": app.ID, "status": string(app.Status)},
	}))
	return app, nil
}

// ChangeStatus applies a requested status transition as the given actor.
//
// Checks run in a fixed order, all before any mutation: the application must
// exist, the requested status must parse, a same-status request short-
// circuits as a no-op without effects, the actor's roles must permit the
// edge, and audited statuses require notes. A successful transition stamps
// the audit fields, persists with a compare-and-swap, and then emits its
// effects; a notification always, and a role elevation exactly once when the
// application first reaches a membership-granting status.
func (s *ReviewService) ChangeStatus(ctx context.Context, id, requested string, actor identity.Principal, notes string) (*admission.Application, error) {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	to, err := admission.ParseStatus(requested)
	if err != nil {
		return nil, err
	}

	if app.Status == to {
		// Re-entrant request; answering success again keeps replays
		// harmless, but no effects may fire.
		return app, nil
	}

	if !admission.AllowedFor(actor, app.UserID, app.Status, to) {
		if admission.CanTransition(app.Status, to) {
			return nil, identity.ErrForbidden
		}
		return nil, fmt.Errorf("%w: %s -> %s", admission.ErrInvalidTransition, app.Status, to)
	}

	if to.RequiresNotes() && strings.TrimSpace(notes) == "" {
		return nil, admission.ErrNotesRequired
	}

	from := app.Status
	wasMember := from.IsMembershipGrant()

	interp, err := statemachine.NewReviewInterpreter(s.machine, app)
	if err != nil {
		return nil, err
	}
	if err := interp.Transition(to, actor, notes, s.now()); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, app); err != nil {
		return nil, err
	}

	telemetry.Metrics().RecordTransition(ctx, "application", string(to))
	logging.Info().
		Add(logging.ApplicationID(app.ID)).
		Add(logging.Actor(actor.UserID)).
		Add(logging.FromStatus(string(from))).
		Add(logging.ToStatus(string(to))).
		Msg("application status changed")

	effects := []effect.Effect{effect.NewNotify(effect.NotifyPayload{
		UserIDs:  []string{app.UserID},
		Type:     "application_status",
		Priority: priorityFor(to),
		Title:    "Application status updated",
		Message:  fmt.Sprintf("Your application is now %s.", to),
		Metadata: map[string]string{"application_id": app.ID, "status": string(to)},
	})}

	if to.IsMembershipGrant() && !wasMember {
		effects = append(effects, effect.NewElevateRole(app.UserID, string(identity.RoleClubMember)))
	}

	s.dispatcher.Dispatch(ctx, effects...)
	return app, nil
}

// priorityFor maps terminal decisions to high priority notifications.
func priorityFor(s admission.Status) effect.Priority {
	if s.IsTerminal() || s == admission.StatusApproved {
		return effect.PriorityHigh
	}
	return effect.PriorityNormal
}
