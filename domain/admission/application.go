package admission

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one applied status change.
type AuditEntry struct {
	Actor string    `json:"actor"`
	From  Status    `json:"from"`
	To    Status    `json:"to"`
	Notes string    `json:"notes,omitempty"`
	At    time.Time `json:"at"`
}

// Application represents one person's request to join the program.
// It is the aggregate root for the admission domain. Applications are never
// hard-deleted; abandonment is modeled as the withdrawn status.
type Application struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Status      Status       `json:"status"`
	ReviewNotes string       `json:"review_notes,omitempty"`
	ReviewedBy  string       `json:"reviewed_by,omitempty"`
	ReviewedAt  time.Time    `json:"reviewed_at,omitempty"`
	Audit       []AuditEntry `json:"audit,omitempty"`
	Version     int64        `json:"version"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// New creates a freshly submitted application for the given user.
func New(userID string) *Application {
	now := time.Now()
	return &Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    StatusSubmitted,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyTransition moves the application to the new status and stamps the
// audit fields. The transition must already be validated; this method only
// records it. Version is incremented so stale writers are rejected by the
// store's compare-and-swap.
func (a *Application) ApplyTransition(to Status, actorID, notes string, at time.Time) {
	entry := AuditEntry{
		Actor: actorID,
		From:  a.Status,
		To:    to,
		Notes: notes,
		At:    at,
	}
	a.Status = to
	a.ReviewedBy = actorID
	a.ReviewedAt = at
	if notes != "" {
		a.ReviewNotes = notes
	}
	a.Audit = append(a.Audit, entry)
	a.Version++
	a.UpdatedAt = at
}

// Reviewed returns true once the application has left the initial status.
func (a *Application) Reviewed() bool {
	return a.Status != StatusSubmitted
}
