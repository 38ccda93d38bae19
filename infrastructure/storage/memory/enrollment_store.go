package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/felixgeelhaar/launchpad/domain/course"
)

// EnrollmentStore is an in-memory implementation of course.Store.
type EnrollmentStore struct {
	enrollments map[string][]byte
	byUserCourse map[string]string
	mu          sync.RWMutex
}

// NewEnrollmentStore creates a new in-memory enrollment store.
func NewEnrollmentStore() *EnrollmentStore {
	return &EnrollmentStore{
		enrollments:  make(map[string][]byte),
		byUserCourse: make(map[string]string),
	}
}

func userCourseKey(userID, courseID string) string {
	return userID + "/" + courseID
}

// Save persists a new enrollment.
func (s *EnrollmentStore) Save(ctx context.Context, e *course.Enrollment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.ID == "" {
		return course.ErrInvalidID
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments[e.ID] = data
	s.byUserCourse[userCourseKey(e.UserID, e.CourseID)] = e.ID
	return nil
}

// Get retrieves an enrollment by ID.
func (s *EnrollmentStore) Get(ctx context.Context, id string) (*course.Enrollment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, course.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.enrollments[id]
	if !ok {
		return nil, course.ErrNotFound
	}
	return decodeEnrollment(data)
}

// GetByUserAndCourse retrieves a user's enrollment in a course.
func (s *EnrollmentStore) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*course.Enrollment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUserCourse[userCourseKey(userID, courseID)]
	if !ok {
		return nil, course.ErrNotFound
	}
	return decodeEnrollment(s.enrollments[id])
}

// Update persists a mutated enrollment if the caller saw the latest version.
func (s *EnrollmentStore) Update(ctx context.Context, e *course.Enrollment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.ID == "" {
		return course.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.enrollments[e.ID]
	if !ok {
		return course.ErrNotFound
	}
	stored, err := decodeEnrollment(data)
	if err != nil {
		return err
	}
	if stored.Version != e.Version-1 {
		return course.ErrVersionConflict
	}

	updated, err := json.Marshal(e)
	if err != nil {
		return err
	}
	s.enrollments[e.ID] = updated
	return nil
}

func decodeEnrollment(data []byte) (*course.Enrollment, error) {
	var e course.Enrollment
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
