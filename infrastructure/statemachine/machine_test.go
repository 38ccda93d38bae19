package statemachine

import (
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/launchpad/domain/admission"
	"github.com/felixgeelhaar/launchpad/domain/identity"
	"github.com/felixgeelhaar/launchpad/domain/project"
)

var (
	reviewer = identity.Principal{UserID: "rev-1", Roles: []identity.Role{identity.RoleReviewer}}
	director = identity.Principal{UserID: "dir-1", Roles: []identity.Role{identity.RoleDirector}}
)

func newInterpreter(t *testing.T, app *admission.Application) *ReviewInterpreter {
	t.Helper()

	machine, err := NewReviewMachine()
	if err != nil {
		t.Fatalf("NewReviewMachine() error: %v", err)
	}
	interp, err := NewReviewInterpreter(machine, app)
	if err != nil {
		t.Fatalf("NewReviewInterpreter() error: %v", err)
	}
	return interp
}

func TestReviewInterpreter_NormalFlow(t *testing.T) {
	app := admission.New("user-1")
	interp := newInterpreter(t, app)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	steps := []admission.Status{
		admission.StatusUnderReview,
		admission.StatusApproved,
		admission.StatusInterviewScheduled,
		admission.StatusAccepted,
	}

	for _, to := range steps {
		if err := interp.Transition(to, reviewer, "ok", at); err != nil {
			t.Fatalf("Transition(%s) error: %v", to, err)
		}
		if app.Status != to {
			t.Fatalf("Status = %q, want %q", app.Status, to)
		}
	}

	if !interp.IsTerminal() {
		t.Error("accepted should be a final state")
	}
	if len(app.Audit) != len(steps) {
		t.Errorf("Audit length = %d, want %d", len(app.Audit), len(steps))
	}
	if app.Version != int64(1+len(steps)) {
		t.Errorf("Version = %d, want %d", app.Version, 1+len(steps))
	}
}

func TestReviewInterpreter_ResumesFromStoredStatus(t *testing.T) {
	app := admission.New("user-1")
	app.Status = admission.StatusInterviewScheduled

	interp := newInterpreter(t, app)
	if got := interp.Status(); got != admission.StatusInterviewScheduled {
		t.Fatalf("Status() = %q, want interview_scheduled", got)
	}

	if err := interp.Transition(admission.StatusAccepted, reviewer, "", time.Now()); err != nil {
		t.Fatalf("Transition(accepted) error: %v", err)
	}
}

func TestReviewInterpreter_RejectsIllegalEdge(t *testing.T) {
	app := admission.New("user-1")
	interp := newInterpreter(t, app)

	err := interp.Transition(admission.StatusAccepted, reviewer, "", time.Now())
	if !errors.Is(err, admission.ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}
	if app.Status != admission.StatusSubmitted {
		t.Errorf("Status = %q, illegal edge must not mutate", app.Status)
	}
	if app.Version != 1 {
		t.Errorf("Version = %d, illegal edge must not bump version", app.Version)
	}
}

func TestReviewInterpreter_RejectsUnauthorizedActor(t *testing.T) {
	app := admission.New("user-1")
	interp := newInterpreter(t, app)
	applicant := identity.Principal{UserID: "user-2", Roles: []identity.Role{identity.RoleApplicant}}

	err := interp.Transition(admission.StatusUnderReview, applicant, "", time.Now())
	if !errors.Is(err, identity.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestReviewInterpreter_DirectorPrivilegedEdge(t *testing.T) {
	app := admission.New("user-1")
	app.Status = admission.StatusRejected

	interp := newInterpreter(t, app)
	at := time.Now()

	// rejected -> under_review is outside the normal graph; only the
	// director may take it, and it must still be audited.
	if err := interp.Transition(admission.StatusUnderReview, director, "second look", at); err != nil {
		t.Fatalf("director Transition error: %v", err)
	}
	if app.Status != admission.StatusUnderReview {
		t.Errorf("Status = %q, want under_review", app.Status)
	}
	if len(app.Audit) != 1 {
		t.Fatalf("Audit length = %d, want 1", len(app.Audit))
	}
	if app.Audit[0].From != admission.StatusRejected {
		t.Errorf("Audit from = %q, want rejected", app.Audit[0].From)
	}
}

func TestReviewInterpreter_OwnerWithdraws(t *testing.T) {
	app := admission.New("user-1")
	owner := identity.Principal{UserID: "user-1", Roles: []identity.Role{identity.RoleApplicant}}

	interp := newInterpreter(t, app)
	if err := interp.Transition(admission.StatusWithdrawn, owner, "", time.Now()); err != nil {
		t.Fatalf("owner withdraw error: %v", err)
	}
	if app.Status != admission.StatusWithdrawn {
		t.Errorf("Status = %q, want withdrawn", app.Status)
	}
	if !interp.IsTerminal() {
		t.Error("withdrawn should be a final state")
	}
}

func TestMilestoneInterpreter(t *testing.T) {
	machine, err := NewMilestoneMachine()
	if err != nil {
		t.Fatalf("NewMilestoneMachine() error: %v", err)
	}

	m := &project.Milestone{ID: "ms-1", Title: "Design", Status: project.MilestonePending}
	interp, err := NewMilestoneInterpreter(machine, m)
	if err != nil {
		t.Fatalf("NewMilestoneInterpreter() error: %v", err)
	}

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := interp.Transition(project.MilestoneInProgress, at); err != nil {
		t.Fatalf("Transition(in_progress) error: %v", err)
	}
	if !m.CompletedAt.IsZero() {
		t.Error("CompletedAt must stay zero before completion")
	}

	done := at.Add(time.Hour)
	if err := interp.Transition(project.MilestoneCompleted, done); err != nil {
		t.Fatalf("Transition(completed) error: %v", err)
	}
	if !m.CompletedAt.Equal(done) {
		t.Errorf("CompletedAt = %v, want %v", m.CompletedAt, done)
	}
}

func TestMilestoneInterpreter_RejectsSkip(t *testing.T) {
	machine, err := NewMilestoneMachine()
	if err != nil {
		t.Fatal(err)
	}

	m := &project.Milestone{ID: "ms-1", Status: project.MilestonePending}
	interp, err := NewMilestoneInterpreter(machine, m)
	if err != nil {
		t.Fatal(err)
	}

	err = interp.Transition(project.MilestoneCompleted, time.Now())
	if !errors.Is(err, project.ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}
	if m.Status != project.MilestonePending {
		t.Errorf("Status = %q, rejected edge must not mutate", m.Status)
	}
}
