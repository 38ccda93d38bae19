package course

import (
	"errors"
	"testing"
)

func TestNewEnrollment(t *testing.T) {
	e := NewEnrollment("user-1", "course-1", 6)

	if e.ID == "" {
		t.Error("NewEnrollment() should assign an ID")
	}
	if e.TotalLessons != 6 {
		t.Errorf("TotalLessons = %d, want 6", e.TotalLessons)
	}
	if e.Progress != 0 {
		t.Errorf("Progress = %d, want 0", e.Progress)
	}
	if e.Completed() {
		t.Error("a fresh enrollment should not be completed")
	}
}

func TestEnrollment_CompleteLesson(t *testing.T) {
	e := NewEnrollment("user-1", "course-1", 6)

	added, err := e.CompleteLesson(0)
	if err != nil {
		t.Fatalf("CompleteLesson(0) error: %v", err)
	}
	if !added {
		t.Error("first completion should report added")
	}
	if e.Progress != 17 {
		t.Errorf("Progress = %d, want 17", e.Progress)
	}

	// Replaying the same lesson is a no-op.
	added, err = e.CompleteLesson(0)
	if err != nil {
		t.Fatalf("replayed CompleteLesson(0) error: %v", err)
	}
	if added {
		t.Error("replayed completion should not report added")
	}
	if e.Progress != 17 {
		t.Errorf("Progress after replay = %d, want 17", e.Progress)
	}
}

func TestEnrollment_CompleteLesson_OutOfRange(t *testing.T) {
	e := NewEnrollment("user-1", "course-1", 3)

	tests := []int{-1, 3, 100}
	for _, lesson := range tests {
		if _, err := e.CompleteLesson(lesson); !errors.Is(err, ErrLessonOutOfRange) {
			t.Errorf("CompleteLesson(%d) error = %v, want ErrLessonOutOfRange", lesson, err)
		}
	}
	if len(e.CompletedLessons) != 0 {
		t.Error("rejected lessons must not be recorded")
	}
}

func TestEnrollment_Completed(t *testing.T) {
	e := NewEnrollment("user-1", "course-1", 2)

	if _, err := e.CompleteLesson(1); err != nil {
		t.Fatal(err)
	}
	if e.Completed() {
		t.Error("enrollment should not be complete at 1 of 2")
	}

	if _, err := e.CompleteLesson(0); err != nil {
		t.Fatal(err)
	}
	if !e.Completed() {
		t.Error("enrollment should be complete at 2 of 2")
	}
	if e.Progress != 100 {
		t.Errorf("Progress = %d, want 100", e.Progress)
	}

	// Lessons stay sorted regardless of completion order.
	if e.CompletedLessons[0] != 0 || e.CompletedLessons[1] != 1 {
		t.Errorf("CompletedLessons = %v, want [0 1]", e.CompletedLessons)
	}
}
