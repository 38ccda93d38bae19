package api

import (
	"context"
	"errors"
	"testing"
)

func TestPlatform_ApplicationLifecycle(t *testing.T) {
	platform, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer platform.Close()

	ctx := context.Background()
	reviewer := Principal{UserID: "rev-1", Roles: []Role{RoleReviewer}}

	app, err := platform.SubmitApplication(ctx, "user-1")
	if err != nil {
		t.Fatalf("SubmitApplication() error: %v", err)
	}
	if app.Status != StatusSubmitted {
		t.Errorf("Status = %q, want submitted", app.Status)
	}

	app, err = platform.ChangeApplicationStatus(ctx, app.ID, "under_review", reviewer, "")
	if err != nil {
		t.Fatalf("ChangeApplicationStatus() error: %v", err)
	}

	app, err = platform.ChangeApplicationStatus(ctx, app.ID, "approved", reviewer, "solid pitch")
	if err != nil {
		t.Fatalf("approval error: %v", err)
	}
	if app.Status != StatusApproved {
		t.Errorf("Status = %q, want approved", app.Status)
	}

	// Approval without notes is a validation error.
	_, err = platform.ChangeApplicationStatus(ctx, app.ID, "interview_scheduled", reviewer, "")
	if err != nil {
		t.Fatalf("interview scheduling error: %v", err)
	}
}

func TestPlatform_ErrorsSurface(t *testing.T) {
	platform, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer platform.Close()

	ctx := context.Background()
	reviewer := Principal{UserID: "rev-1", Roles: []Role{RoleReviewer}}

	app, _ := platform.SubmitApplication(ctx, "user-1")

	if _, err := platform.ChangeApplicationStatus(ctx, app.ID, "accepted", reviewer, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}

	stranger := Principal{UserID: "user-2", Roles: []Role{RoleApplicant}}
	if _, err := platform.ChangeApplicationStatus(ctx, app.ID, "under_review", stranger, ""); !errors.Is(err, ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}

	if _, err := platform.ReportAchievementProgress(ctx, "user-1", "streak", 150); !errors.Is(err, ErrInvalidProgress) {
		t.Errorf("error = %v, want ErrInvalidProgress", err)
	}
}

func TestPlatform_ProjectFlow(t *testing.T) {
	platform, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer platform.Close()

	ctx := context.Background()

	p, err := platform.CreateProject(ctx, "owner-1", "MVP", "Design", "Build")
	if err != nil {
		t.Fatalf("CreateProject() error: %v", err)
	}

	p, err = platform.UpdateMilestone(ctx, p.ID, p.Milestones[0].ID, "in_progress")
	if err != nil {
		t.Fatal(err)
	}
	p, err = platform.UpdateMilestone(ctx, p.ID, p.Milestones[0].ID, "completed")
	if err != nil {
		t.Fatal(err)
	}
	if p.Progress != 50 {
		t.Errorf("Progress = %d, want 50", p.Progress)
	}

	got, err := platform.RecomputeProgress(ctx, p.ID)
	if err != nil {
		t.Fatalf("RecomputeProgress() error: %v", err)
	}
	if got != 50 {
		t.Errorf("RecomputeProgress() = %d, want 50", got)
	}
}

func TestPlatform_CourseAndAchievements(t *testing.T) {
	platform, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer platform.Close()

	ctx := context.Background()

	e, err := platform.Enroll(ctx, "user-1", "course-1", 2)
	if err != nil {
		t.Fatalf("Enroll() error: %v", err)
	}
	if e, err = platform.CompleteLesson(ctx, e.ID, 0); err != nil {
		t.Fatal(err)
	}
	if e.Progress != 50 {
		t.Errorf("Progress = %d, want 50", e.Progress)
	}

	ua, err := platform.ReportAchievementProgress(ctx, "user-1", "first-lesson", 100)
	if err != nil {
		t.Fatalf("ReportAchievementProgress() error: %v", err)
	}
	if !ua.IsCompleted {
		t.Error("achievement should be completed")
	}

	list, err := platform.ListAchievements(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("ListAchievements() = %d records, want 1", len(list))
	}
}
