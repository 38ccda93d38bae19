package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/launchpad/domain/achievement"
	"github.com/felixgeelhaar/launchpad/domain/course"
	"github.com/felixgeelhaar/launchpad/domain/project"
)

func TestProjectStore_CAS(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	p := project.New("owner-1", "MVP", "Design", "Build")
	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	a, _ := store.Get(ctx, p.ID)
	b, _ := store.Get(ctx, p.ID)

	a.Milestones[0].Status = project.MilestoneCompleted
	a.SyncProgress()
	a.Touch(time.Now())
	if err := store.Update(ctx, a); err != nil {
		t.Fatalf("first Update() error: %v", err)
	}

	b.Touch(time.Now())
	if err := store.Update(ctx, b); !errors.Is(err, project.ErrVersionConflict) {
		t.Errorf("stale Update() error = %v, want ErrVersionConflict", err)
	}

	got, _ := store.Get(ctx, p.ID)
	if got.Progress != 50 {
		t.Errorf("Progress = %d, want 50", got.Progress)
	}
}

func TestProjectStore_ListByOwner(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	for _, owner := range []string{"o1", "o1", "o2"} {
		if err := store.Save(ctx, project.New(owner, "p")); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.ListByOwner(ctx, "o1")
	if err != nil {
		t.Fatalf("ListByOwner() error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListByOwner(o1) returned %d, want 2", len(got))
	}
}

func TestEnrollmentStore(t *testing.T) {
	store := NewEnrollmentStore()
	ctx := context.Background()

	e := course.NewEnrollment("user-1", "course-1", 4)
	if err := store.Save(ctx, e); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := store.GetByUserAndCourse(ctx, "user-1", "course-1")
	if err != nil {
		t.Fatalf("GetByUserAndCourse() error: %v", err)
	}
	if got.ID != e.ID {
		t.Errorf("ID = %q, want %q", got.ID, e.ID)
	}

	if _, err := store.GetByUserAndCourse(ctx, "user-1", "course-2"); !errors.Is(err, course.ErrNotFound) {
		t.Errorf("unknown course error = %v, want ErrNotFound", err)
	}

	// Stale write loses.
	a, _ := store.Get(ctx, e.ID)
	b, _ := store.Get(ctx, e.ID)
	if _, err := a.CompleteLesson(0); err != nil {
		t.Fatal(err)
	}
	a.Touch(time.Now())
	if err := store.Update(ctx, a); err != nil {
		t.Fatal(err)
	}
	b.Touch(time.Now())
	if err := store.Update(ctx, b); !errors.Is(err, course.ErrVersionConflict) {
		t.Errorf("stale Update() error = %v, want ErrVersionConflict", err)
	}
}

func TestAchievementStore(t *testing.T) {
	store := NewAchievementStore()
	ctx := context.Background()

	ua := achievement.New("user-1", "first-project")
	if err := store.Save(ctx, ua); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := store.Get(ctx, "user-1", "first-project")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ID != ua.ID {
		t.Errorf("ID = %q, want %q", got.ID, ua.ID)
	}

	if _, err := store.Get(ctx, "user-1", "other"); !errors.Is(err, achievement.ErrNotFound) {
		t.Errorf("unknown pair error = %v, want ErrNotFound", err)
	}

	got.Report(60, time.Now())
	if err := store.Update(ctx, got); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	list, err := store.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Progress != 60 {
		t.Errorf("ListByUser() = %+v", list)
	}
}
