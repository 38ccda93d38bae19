package api

import (
	"time"

	"github.com/felixgeelhaar/launchpad/domain/achievement"
	"github.com/felixgeelhaar/launchpad/domain/admission"
	"github.com/felixgeelhaar/launchpad/domain/course"
	"github.com/felixgeelhaar/launchpad/domain/effect"
	"github.com/felixgeelhaar/launchpad/domain/project"
)

// platformConfig holds the assembly options.
type platformConfig struct {
	applications admission.Store
	projects     project.Store
	enrollments  course.Store
	achievements achievement.Store
	dispatcher   effect.Dispatcher
	now          func() time.Time
}

// Option configures the Platform.
type Option func(*platformConfig)

// WithApplicationStore sets the application store.
func WithApplicationStore(s admission.Store) Option {
	return func(c *platformConfig) {
		c.applications = s
	}
}

// WithProjectStore sets the project store.
func WithProjectStore(s project.Store) Option {
	return func(c *platformConfig) {
		c.projects = s
	}
}

// WithEnrollmentStore sets the course enrollment store.
func WithEnrollmentStore(s course.Store) Option {
	return func(c *platformConfig) {
		c.enrollments = s
	}
}

// WithAchievementStore sets the user-achievement store.
func WithAchievementStore(s achievement.Store) Option {
	return func(c *platformConfig) {
		c.achievements = s
	}
}

// WithDispatcher sets the effect dispatcher. The caller keeps ownership;
// Platform.Close will not close an injected dispatcher.
func WithDispatcher(d effect.Dispatcher) Option {
	return func(c *platformConfig) {
		c.dispatcher = d
	}
}

// WithClock overrides the clock used for audit timestamps. For tests.
func WithClock(now func() time.Time) Option {
	return func(c *platformConfig) {
		c.now = now
	}
}
