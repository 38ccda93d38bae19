// Package course provides the course-enrollment domain model. An enrollment
// tracks which lesson indices a user has completed; its progress percentage
// is derived and never edited directly.
package course

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/launchpad/domain/progress"
)

// Enrollment is a per-user, per-course record.
type Enrollment struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	CourseID         string    `json:"course_id"`
	TotalLessons     int       `json:"total_lessons"`
	CompletedLessons []int     `json:"completed_lessons"`
	Progress         int       `json:"progress"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewEnrollment enrolls a user into a course with the given lesson count.
func NewEnrollment(userID, courseID string, totalLessons int) *Enrollment {
	now := time.Now()
	return &Enrollment{
		ID:           uuid.NewString(),
		UserID:       userID,
		CourseID:     courseID,
		TotalLessons: totalLessons,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// LessonCompleted returns true if the lesson index is already recorded.
func (e *Enrollment) LessonCompleted(lesson int) bool {
	for _, l := range e.CompletedLessons {
		if l == lesson {
			return true
		}
	}
	return false
}

// CompleteLesson records the lesson index and reports whether it was newly
// added. Recording an already-present index is a no-op, so replayed
// completion events cannot inflate progress. The lesson must be within
// [0, TotalLessons).
func (e *Enrollment) CompleteLesson(lesson int) (bool, error) {
	if lesson < 0 || lesson >= e.TotalLessons {
		return false, ErrLessonOutOfRange
	}
	if e.LessonCompleted(lesson) {
		return false, nil
	}
	e.CompletedLessons = append(e.CompletedLessons, lesson)
	sort.Ints(e.CompletedLessons)
	e.SyncProgress()
	return true, nil
}

// SyncProgress recomputes the derived progress percentage from the
// completed-lesson set. Safe to call redundantly.
func (e *Enrollment) SyncProgress() int {
	e.Progress = progress.Percent(len(e.CompletedLessons), e.TotalLessons)
	return e.Progress
}

// Completed returns true once every lesson is done.
func (e *Enrollment) Completed() bool {
	return e.TotalLessons > 0 && len(e.CompletedLessons) == e.TotalLessons
}

// Touch bumps the version and update timestamp after a mutation.
func (e *Enrollment) Touch(at time.Time) {
	e.Version++
	e.UpdatedAt = at
}
