// Package effect provides the side-effect value model. A state transition
// returns effects instead of calling other services directly, so the
// business logic stays testable without a network and the dispatch policy
// lives in one place.
package effect

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the class of side effect.
type Kind string

// Effect kinds produced by lifecycle transitions.
const (
	KindNotify      Kind = "notify"       // Create a notification for one or more users
	KindAwardXP     Kind = "award_xp"     // Credit XP for a completion event
	KindElevateRole Kind = "elevate_role" // Add a role to a user's role set
)

// IsValid returns true if the kind is recognized.
func (k Kind) IsValid() bool {
	switch k {
	case KindNotify, KindAwardXP, KindElevateRole:
		return true
	default:
		return false
	}
}

// Priority of a notification.
type Priority string

// Notification priorities.
const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// XP event kinds understood by the XP service.
const (
	XPEventMilestoneComplete = "milestone/complete"
	XPEventProjectComplete   = "project/complete"
	XPEventLessonComplete    = "lesson/complete"
	XPEventCourseComplete    = "course/complete"
	XPEventAchievementUnlock = "achievement/unlock"
)

// Effect is a transient unit of downstream work. It is never persisted;
// it exists only to decouple a transition from the calls it triggers.
type Effect struct {
	// ID is unique per emission and is used for tracing, not deduplication.
	ID string `json:"id"`
	// Kind selects the target service.
	Kind Kind `json:"kind"`
	// Notify is set when Kind == KindNotify.
	Notify *NotifyPayload `json:"notify,omitempty"`
	// AwardXP is set when Kind == KindAwardXP.
	AwardXP *AwardXPPayload `json:"award_xp,omitempty"`
	// ElevateRole is set when Kind == KindElevateRole.
	ElevateRole *ElevateRolePayload `json:"elevate_role,omitempty"`
	// EmittedAt is when the producing transition committed.
	EmittedAt time.Time `json:"emitted_at"`
}

// NotifyPayload describes a notification request.
type NotifyPayload struct {
	UserIDs  []string          `json:"user_ids"`
	Type     string            `json:"type"`
	Priority Priority          `json:"priority"`
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Link     string            `json:"link,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// AwardXPPayload describes an XP-award webhook call.
type AwardXPPayload struct {
	Event    string `json:"event"`
	UserID   string `json:"user_id"`
	EntityID string `json:"entity_id"`
}

// ElevateRolePayload describes a role grant on the identity service.
type ElevateRolePayload struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// NewNotify builds a notification effect.
func NewNotify(p NotifyPayload) Effect {
	return Effect{
		ID:        uuid.NewString(),
		Kind:      KindNotify,
		Notify:    &p,
		EmittedAt: time.Now(),
	}
}

// NewAwardXP builds an XP-award effect.
func NewAwardXP(event, userID, entityID string) Effect {
	return Effect{
		ID:        uuid.NewString(),
		Kind:      KindAwardXP,
		AwardXP:   &AwardXPPayload{Event: event, UserID: userID, EntityID: entityID},
		EmittedAt: time.Now(),
	}
}

// NewElevateRole builds a role-elevation effect.
func NewElevateRole(userID, role string) Effect {
	return Effect{
		ID:          uuid.NewString(),
		Kind:        KindElevateRole,
		ElevateRole: &ElevateRolePayload{UserID: userID, Role: role},
		EmittedAt:   time.Now(),
	}
}

// IdempotencyKey returns a deterministic key for effects that must be
// delivered at most once per underlying transition. Notify effects return
// an empty key: they are informational and safe to repeat.
func (e Effect) IdempotencyKey() string {
	switch e.Kind {
	case KindAwardXP:
		if e.AwardXP == nil {
			return ""
		}
		return fmt.Sprintf("xp:%s:%s:%s", e.AwardXP.Event, e.AwardXP.UserID, e.AwardXP.EntityID)
	case KindElevateRole:
		if e.ElevateRole == nil {
			return ""
		}
		return fmt.Sprintf("role:%s:%s", e.ElevateRole.UserID, e.ElevateRole.Role)
	default:
		return ""
	}
}
