package project

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/launchpad/domain/progress"
)

// Project is a team undertaking with an ordered list of milestones.
// Progress always equals round(100 * completed / total milestones).
type Project struct {
	ID         string      `json:"id"`
	OwnerID    string      `json:"owner_id"`
	Name       string      `json:"name"`
	Milestones []Milestone `json:"milestones"`
	Progress   int         `json:"progress"`
	Version    int64       `json:"version"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// New creates a project with the given milestones, all pending.
func New(ownerID, name string, milestoneTitles ...string) *Project {
	now := time.Now()
	p := &Project{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, title := range milestoneTitles {
		p.Milestones = append(p.Milestones, Milestone{
			ID:     uuid.NewString(),
			Title:  title,
			Status: MilestonePending,
			Order:  i,
		})
	}
	return p
}

// Milestone returns the milestone with the given ID, or nil.
func (p *Project) Milestone(id string) *Milestone {
	for i := range p.Milestones {
		if p.Milestones[i].ID == id {
			return &p.Milestones[i]
		}
	}
	return nil
}

// CompletedMilestones returns how many milestones are completed.
func (p *Project) CompletedMilestones() int {
	n := 0
	for _, m := range p.Milestones {
		if m.Status == MilestoneCompleted {
			n++
		}
	}
	return n
}

// SyncProgress recomputes the derived progress percentage from the current
// milestones. It is a pure function of the children and safe to call
// redundantly.
func (p *Project) SyncProgress() int {
	p.Progress = progress.Percent(p.CompletedMilestones(), len(p.Milestones))
	return p.Progress
}

// Touch bumps the version and update timestamp after a mutation.
func (p *Project) Touch(at time.Time) {
	p.Version++
	p.UpdatedAt = at
}
