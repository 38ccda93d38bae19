package project

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	p := New("owner-1", "MVP", "Design", "Build", "Ship")

	if p.ID == "" {
		t.Error("New() should assign an ID")
	}
	if len(p.Milestones) != 3 {
		t.Fatalf("milestone count = %d, want 3", len(p.Milestones))
	}
	for i, m := range p.Milestones {
		if m.Status != MilestonePending {
			t.Errorf("milestone %d status = %q, want pending", i, m.Status)
		}
		if m.Order != i {
			t.Errorf("milestone %d order = %d, want %d", i, m.Order, i)
		}
		if m.ID == "" {
			t.Errorf("milestone %d should have an ID", i)
		}
	}
	if p.Progress != 0 {
		t.Errorf("Progress = %d, want 0", p.Progress)
	}
	if p.Version != 1 {
		t.Errorf("Version = %d, want 1", p.Version)
	}
}

func TestProject_SyncProgress(t *testing.T) {
	tests := []struct {
		name     string
		statuses []MilestoneStatus
		expected int
	}{
		{"no milestones", nil, 0},
		{"none done", []MilestoneStatus{MilestonePending, MilestonePending}, 0},
		{"two of three", []MilestoneStatus{MilestoneCompleted, MilestoneCompleted, MilestonePending}, 67},
		{"all done", []MilestoneStatus{MilestoneCompleted, MilestoneCompleted}, 100},
		{"cancelled does not count", []MilestoneStatus{MilestoneCompleted, MilestoneCancelled}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Project{}
			for _, s := range tt.statuses {
				p.Milestones = append(p.Milestones, Milestone{Status: s})
			}
			if got := p.SyncProgress(); got != tt.expected {
				t.Errorf("SyncProgress() = %d, want %d", got, tt.expected)
			}
			if p.Progress != tt.expected {
				t.Errorf("Progress = %d, want %d", p.Progress, tt.expected)
			}
		})
	}
}

func TestProject_Milestone(t *testing.T) {
	p := New("owner-1", "MVP", "Design", "Build")

	m := p.Milestone(p.Milestones[1].ID)
	if m == nil {
		t.Fatal("Milestone() returned nil for an existing ID")
	}
	if m.Title != "Build" {
		t.Errorf("Title = %q, want Build", m.Title)
	}

	// The pointer aliases the slice element so mutations stick.
	m.Status = MilestoneCompleted
	if p.Milestones[1].Status != MilestoneCompleted {
		t.Error("Milestone() should return a pointer into the project")
	}

	if p.Milestone("missing") != nil {
		t.Error("Milestone() should return nil for an unknown ID")
	}
}

func TestProject_Touch(t *testing.T) {
	p := New("owner-1", "MVP")
	at := time.Now().Add(time.Hour)

	p.Touch(at)

	if p.Version != 2 {
		t.Errorf("Version = %d, want 2", p.Version)
	}
	if !p.UpdatedAt.Equal(at) {
		t.Errorf("UpdatedAt = %v, want %v", p.UpdatedAt, at)
	}
}
