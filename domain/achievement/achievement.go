// Package achievement provides the per-user achievement progress model.
// An achievement unlocks exactly once, when its reported progress first
// reaches the completion threshold.
package achievement

import (
	"time"

	"github.com/google/uuid"
)

// CompletionThreshold is the progress value at which an achievement unlocks.
const CompletionThreshold = 100

// UserAchievement is a per-user, per-achievement progress record.
// Once IsCompleted is true it never reverts, and UnlockedAt is set exactly
// once, on the transition to completed.
type UserAchievement struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	Progress      int       `json:"progress"`
	IsCompleted   bool      `json:"is_completed"`
	UnlockedAt    time.Time `json:"unlocked_at,omitempty"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// New creates a zero-progress record for the user/achievement pair.
func New(userID, achievementID string) *UserAchievement {
	now := time.Now()
	return &UserAchievement{
		ID:            uuid.NewString(),
		UserID:        userID,
		AchievementID: achievementID,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Report applies a progress report and returns true if this report unlocked
// the achievement. A completed record ignores further reports. Crossing the
// threshold sets IsCompleted and UnlockedAt in the same mutation, so the two
// are never observable apart.
func (ua *UserAchievement) Report(progress int, at time.Time) bool {
	if ua.IsCompleted {
		return false
	}
	ua.Progress = progress
	ua.Version++
	ua.UpdatedAt = at
	if progress >= CompletionThreshold {
		ua.IsCompleted = true
		ua.UnlockedAt = at
		return true
	}
	return false
}
