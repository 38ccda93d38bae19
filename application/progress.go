package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/launchpad/domain/course"
	"github.com/felixgeelhaar/launchpad/domain/effect"
	"github.com/felixgeelhaar/launchpad/domain/project"
	"github.com/felixgeelhaar/launchpad/infrastructure/logging"
	"github.com/felixgeelhaar/launchpad/infrastructure/statemachine"
	"github.com/felixgeelhaar/launchpad/infrastructure/telemetry"
)

// ProgressService recalculates project and course progress in response to
// child completions. Progress percentages are always derived from the
// children, never written directly.
type ProgressService struct {
	projects    project.Store
	enrollments course.Store
	dispatcher  effect.Dispatcher
	machine     *statekit.MachineConfig[*statemachine.MilestoneContext]
	now         func() time.Time
}

// ProgressConfig configures the progress service.
type ProgressConfig struct {
	Projects    project.Store
	Enrollments course.Store
	Dispatcher  effect.Dispatcher
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewProgressService creates a progress service.
func NewProgressService(config ProgressConfig) (*ProgressService, error) {
	if config.Projects == nil {
		return nil, errors.New("project store is required")
	}
	if config.Enrollments == nil {
		return nil, errors.New("enrollment store is required")
	}
	if config.Dispatcher == nil {
		return nil, errors.New("effect dispatcher is required")
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	machine, err := statemachine.NewMilestoneMachine()
	if err != nil {
		return nil, fmt.Errorf("build milestone machine: %w", err)
	}

	return &ProgressService{
		projects:    config.Projects,
		enrollments: config.Enrollments,
		dispatcher:  config.Dispatcher,
		machine:     machine,
		now:         config.Now,
	}, nil
}

// CreateProject creates a project with the given milestone titles.
func (s *ProgressService) CreateProject(ctx context.Context, ownerID, name string, milestoneTitles ...string) (*project.Project, error) {
	if ownerID == "" {
		return nil, project.ErrInvalidID
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("project name is required")
	}

	p := project.New(ownerID, name, milestoneTitles...)
	if err := s.projects.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateMilestone transitions a milestone and recalculates the project's
// progress. Completing a milestone awards XP once; driving the project to
// 100% for the first time awards the project-completion XP and notifies the
// owner.
func (s *ProgressService) UpdateMilestone(ctx context.Context, projectID, milestoneID, requested string) (*project.Project, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	m := p.Milestone(milestoneID)
	if m == nil {
		return nil, project.ErrMilestoneNotFound
	}

	to, err := project.ParseMilestoneStatus(requested)
	if err != nil {
		return nil, err
	}

	if m.Status == to {
		return p, nil
	}

	wasComplete := p.Progress >= 100
	at := s.now()

	interp, err := statemachine.NewMilestoneInterpreter(s.machine, m)
	if err != nil {
		return nil, err
	}
	if err := interp.Transition(to, at); err != nil {
		return nil, err
	}

	p.SyncProgress()
	p.Touch(at)
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	telemetry.Metrics().RecordTransition(ctx, "milestone", string(to))
	logging.Info().
		Add(logging.Target(p.ID)).
		Add(logging.ToStatus(string(to))).
		Add(logging.Progress(p.Progress)).
		Msg("milestone updated")

	var effects []effect.Effect
	if to == project.MilestoneCompleted {
		effects = append(effects, effect.NewAwardXP(effect.XPEventMilestoneComplete, p.OwnerID, m.ID))
	}
	if p.Progress >= 100 && !wasComplete {
		effects = append(effects,
			effect.NewAwardXP(effect.XPEventProjectComplete, p.OwnerID, p.ID),
			effect.NewNotify(effect.NotifyPayload{
				UserIDs:  []string{p.OwnerID},
				Type:     "project_complete",
				Priority: effect.PriorityHigh,
				Title:    "Project complete",
				Message:  fmt.Sprintf("All milestones of %q are done.", p.Name),
				Metadata: map[string]string{"project_id": p.ID},
			}),
		)
	}
	if len(effects) > 0 {
		s.dispatcher.Dispatch(ctx, effects...)
	}
	return p, nil
}

// RecomputeProject re-derives a project's progress from its milestones and
// persists the result when it drifted. It returns the authoritative value.
func (s *ProgressService) RecomputeProject(ctx context.Context, projectID string) (int, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return 0, err
	}

	before := p.Progress
	got := p.SyncProgress()
	if got == before {
		return got, nil
	}

	p.Touch(s.now())
	if err := s.projects.Update(ctx, p); err != nil {
		return 0, err
	}

	logging.Warn().
		Add(logging.Target(p.ID)).
		Add(logging.Progress(got)).
		Msg("project progress drifted, resynced")
	return got, nil
}

// Enroll creates an enrollment for the user in the course.
func (s *ProgressService) Enroll(ctx context.Context, userID, courseID string, totalLessons int) (*course.Enrollment, error) {
	if userID == "" || courseID == "" {
		return nil, course.ErrInvalidID
	}
	if totalLessons <= 0 {
		return nil, fmt.Errorf("course must have at least one lesson")
	}

	e := course.NewEnrollment(userID, courseID, totalLessons)
	if err := s.enrollments.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// CompleteLesson records a lesson completion and recalculates the
// enrollment's progress. Repeating a lesson is a harmless no-op; the first
// completion of each lesson awards XP, and finishing the course awards the
// course-completion XP and notifies the student.
func (s *ProgressService) CompleteLesson(ctx context.Context, enrollmentID string, lesson int) (*course.Enrollment, error) {
	e, err := s.enrollments.Get(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	wasComplete := e.Completed()
	added, err := e.CompleteLesson(lesson)
	if err != nil {
		return nil, err
	}
	if !added {
		return e, nil
	}

	e.Touch(s.now())
	if err := s.enrollments.Update(ctx, e); err != nil {
		return nil, err
	}

	logging.Info().
		Add(logging.Target(e.ID)).
		Add(logging.UserID(e.UserID)).
		Add(logging.Progress(e.Progress)).
		Msg("lesson completed")

	effects := []effect.Effect{
		effect.NewAwardXP(effect.XPEventLessonComplete, e.UserID, fmt.Sprintf("%s/%d", e.CourseID, lesson)),
	}
	if e.Completed() && !wasComplete {
		effects = append(effects,
			effect.NewAwardXP(effect.XPEventCourseComplete, e.UserID, e.CourseID),
			effect.NewNotify(effect.NotifyPayload{
				UserIDs:  []string{e.UserID},
				Type:     "course_complete",
				Priority: effect.PriorityHigh,
				Title:    "Course complete",
				Message:  "You finished every lesson in the course.",
				Metadata: map[string]string{"course_id": e.CourseID},
			}),
		)
	}
	s.dispatcher.Dispatch(ctx, effects...)
	return e, nil
}
