// Package api provides the public API for the launchpad lifecycle core.
//
// launchpad manages the admin-facing lifecycle of an entrepreneurship
// program: application review, project and course progress, and achievement
// unlocking. Every status change runs through a validated state machine,
// every write is guarded by optimistic versioning, and side effects
// (notifications, XP awards, role elevations) are dispatched after the
// write commits and can never fail the triggering operation.
//
// # Quick Start
//
// Create a platform backed by in-memory stores and submit an application:
//
//	platform, _ := api.New()
//	defer platform.Close()
//
//	app, _ := platform.SubmitApplication(ctx, "user-1")
//	reviewer := api.Principal{UserID: "rev-1", Roles: []api.Role{api.RoleReviewer}}
//	app, _ = platform.ChangeApplicationStatus(ctx, app.ID, "under_review", reviewer, "")
//
// Production deployments swap the stores and effect targets with options:
//
//	platform, _ := api.New(
//	    api.WithApplicationStore(mongoStore),
//	    api.WithDispatcher(dispatcher),
//	)
package api

import (
	"context"

	"github.com/felixgeelhaar/launchpad/application"
	"github.com/felixgeelhaar/launchpad/domain/achievement"
	"github.com/felixgeelhaar/launchpad/domain/admission"
	"github.com/felixgeelhaar/launchpad/domain/course"
	"github.com/felixgeelhaar/launchpad/domain/effect"
	"github.com/felixgeelhaar/launchpad/domain/identity"
	"github.com/felixgeelhaar/launchpad/domain/project"
	"github.com/felixgeelhaar/launchpad/infrastructure/dispatch"
	"github.com/felixgeelhaar/launchpad/infrastructure/storage/memory"
)

// Re-export core types for convenience.
type (
	// Application is an admission application under review.
	Application = admission.Application

	// ApplicationStatus is a review state in the admission graph.
	ApplicationStatus = admission.Status

	// Project is a team undertaking with ordered milestones.
	Project = project.Project

	// Enrollment is a per-user, per-course lesson tracker.
	Enrollment = course.Enrollment

	// UserAchievement is a user's progress toward an achievement.
	UserAchievement = achievement.UserAchievement

	// Principal is the authenticated actor behind an operation.
	Principal = identity.Principal

	// Role is a coarse permission level.
	Role = identity.Role

	// Effect is a queued side effect produced by a lifecycle operation.
	Effect = effect.Effect

	// Dispatcher delivers effects to downstream services.
	Dispatcher = effect.Dispatcher
)

// Re-export application statuses.
const (
	StatusSubmitted          = admission.StatusSubmitted
	StatusUnderReview        = admission.StatusUnderReview
	StatusApproved           = admission.StatusApproved
	StatusInterviewScheduled = admission.StatusInterviewScheduled
	StatusAccepted           = admission.StatusAccepted
	StatusRejected           = admission.StatusRejected
	StatusWithdrawn          = admission.StatusWithdrawn
)

// Re-export roles.
const (
	RoleApplicant  = identity.RoleApplicant
	RoleClubMember = identity.RoleClubMember
	RoleReviewer   = identity.RoleReviewer
	RoleDirector   = identity.RoleDirector
)

// Re-export common errors.
var (
	// ErrNotFound indicates the application does not exist.
	ErrNotFound = admission.ErrNotFound

	// ErrInvalidStatus indicates an unrecognized status value.
	ErrInvalidStatus = admission.ErrInvalidStatus

	// ErrInvalidTransition indicates the requested edge is not in the graph.
	ErrInvalidTransition = admission.ErrInvalidTransition

	// ErrNotesRequired indicates approval or rejection without review notes.
	ErrNotesRequired = admission.ErrNotesRequired

	// ErrForbidden indicates the actor's roles do not permit the operation.
	ErrForbidden = identity.ErrForbidden

	// ErrVersionConflict indicates a concurrent update won the write.
	ErrVersionConflict = admission.ErrVersionConflict

	// ErrInvalidProgress indicates an out-of-range achievement report.
	ErrInvalidProgress = achievement.ErrInvalidProgress
)

// Platform is the assembled lifecycle core.
type Platform struct {
	review       *application.ReviewService
	progress     *application.ProgressService
	achievements *application.AchievementService
	dispatcher   effect.Dispatcher
	ownDispatch  bool
}

// New creates a Platform with the provided options. Stores default to
// in-memory implementations and the dispatcher defaults to a local one with
// no delivery targets, so a bare New() is fully usable in tests and demos.
func New(opts ...Option) (*Platform, error) {
	config := &platformConfig{}
	for _, opt := range opts {
		opt(config)
	}

	if config.applications == nil {
		config.applications = memory.NewApplicationStore()
	}
	if config.projects == nil {
		config.projects = memory.NewProjectStore()
	}
	if config.enrollments == nil {
		config.enrollments = memory.NewEnrollmentStore()
	}
	if config.achievements == nil {
		config.achievements = memory.NewAchievementStore()
	}

	ownDispatch := false
	if config.dispatcher == nil {
		config.dispatcher = dispatch.New(dispatch.Config{Registry: dispatch.NewMemoryRegistry()})
		ownDispatch = true
	}

	review, err := application.NewReviewService(application.ReviewConfig{
		Store:      config.applications,
		Dispatcher: config.dispatcher,
		Now:        config.now,
	})
	if err != nil {
		return nil, err
	}

	progress, err := application.NewProgressService(application.ProgressConfig{
		Projects:    config.projects,
		Enrollments: config.enrollments,
		Dispatcher:  config.dispatcher,
		Now:         config.now,
	})
	if err != nil {
		return nil, err
	}

	achievements, err := application.NewAchievementService(application.AchievementConfig{
		Store:      config.achievements,
		Dispatcher: config.dispatcher,
		Now:        config.now,
	})
	if err != nil {
		return nil, err
	}

	return &Platform{
		review:       review,
		progress:     progress,
		achievements: achievements,
		dispatcher:   config.dispatcher,
		ownDispatch:  ownDispatch,
	}, nil
}

// SubmitApplication creates a new application for the user.
func (p *Platform) SubmitApplication(ctx context.Context, userID string) (*Application, error) {
	return p.review.Submit(ctx, userID)
}

// ChangeApplicationStatus applies a review action as the given actor.
func (p *Platform) ChangeApplicationStatus(ctx context.Context, id, status string, actor Principal, notes string) (*Application, error) {
	return p.review.ChangeStatus(ctx, id, status, actor, notes)
}

// CreateProject creates a project with the given milestone titles.
func (p *Platform) CreateProject(ctx context.Context, ownerID, name string, milestones ...string) (*Project, error) {
	return p.progress.CreateProject(ctx, ownerID, name, milestones...)
}

// UpdateMilestone transitions a milestone and recalculates project progress.
func (p *Platform) UpdateMilestone(ctx context.Context, projectID, milestoneID, status string) (*Project, error) {
	return p.progress.UpdateMilestone(ctx, projectID, milestoneID, status)
}

// RecomputeProgress re-derives a project's progress from its milestones.
func (p *Platform) RecomputeProgress(ctx context.Context, projectID string) (int, error) {
	return p.progress.RecomputeProject(ctx, projectID)
}

// Enroll creates an enrollment for the user in the course.
func (p *Platform) Enroll(ctx context.Context, userID, courseID string, totalLessons int) (*Enrollment, error) {
	return p.progress.Enroll(ctx, userID, courseID, totalLessons)
}

// CompleteLesson records a lesson completion for the enrollment.
func (p *Platform) CompleteLesson(ctx context.Context, enrollmentID string, lesson int) (*Enrollment, error) {
	return p.progress.CompleteLesson(ctx, enrollmentID, lesson)
}

// ReportAchievementProgress records a progress report, unlocking the
// achievement when it first reaches the completion threshold.
func (p *Platform) ReportAchievementProgress(ctx context.Context, userID, achievementID string, progress int) (*UserAchievement, error) {
	return p.achievements.ReportProgress(ctx, userID, achievementID, progress)
}

// ListAchievements returns all achievement records for a user.
func (p *Platform) ListAchievements(ctx context.Context, userID string) ([]*UserAchievement, error) {
	return p.achievements.ListByUser(ctx, userID)
}

// Close drains in-flight effect deliveries. Only dispatchers created by the
// platform itself are closed; injected dispatchers stay open for their owner.
func (p *Platform) Close() error {
	if p.ownDispatch {
		return p.dispatcher.Close()
	}
	return nil
}
