package achievement

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	ua := New("user-1", "first-project")

	if ua.ID == "" {
		t.Error("New() should assign an ID")
	}
	if ua.Progress != 0 {
		t.Errorf("Progress = %d, want 0", ua.Progress)
	}
	if ua.IsCompleted {
		t.Error("a fresh record must not be completed")
	}
	if !ua.UnlockedAt.IsZero() {
		t.Error("UnlockedAt must be zero before completion")
	}
}

func TestUserAchievement_Report(t *testing.T) {
	ua := New("user-1", "first-project")
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if unlocked := ua.Report(50, at); unlocked {
		t.Error("Report(50) should not unlock")
	}
	if ua.Progress != 50 {
		t.Errorf("Progress = %d, want 50", ua.Progress)
	}
	if ua.IsCompleted {
		t.Error("record must not be completed at 50")
	}

	later := at.Add(time.Hour)
	if unlocked := ua.Report(100, later); !unlocked {
		t.Error("Report(100) should unlock")
	}
	if !ua.IsCompleted {
		t.Error("record must be completed at 100")
	}
	if !ua.UnlockedAt.Equal(later) {
		t.Errorf("UnlockedAt = %v, want %v", ua.UnlockedAt, later)
	}

	// Completed records ignore further reports, including regressions.
	if unlocked := ua.Report(80, later.Add(time.Hour)); unlocked {
		t.Error("a completed record must not unlock again")
	}
	if ua.Progress != 100 {
		t.Errorf("Progress after regression report = %d, want 100", ua.Progress)
	}
	if !ua.UnlockedAt.Equal(later) {
		t.Error("UnlockedAt must not move after completion")
	}
}

func TestUserAchievement_Report_ThresholdExactlyOnce(t *testing.T) {
	ua := New("user-1", "streak")
	at := time.Now()

	if unlocked := ua.Report(100, at); !unlocked {
		t.Fatal("first 100 report should unlock")
	}
	if unlocked := ua.Report(100, at.Add(time.Minute)); unlocked {
		t.Error("second 100 report must not unlock again")
	}
}
