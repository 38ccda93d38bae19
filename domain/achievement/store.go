package achievement

import "context"

// Store defines the interface for user-achievement persistence.
type Store interface {
	// Save persists a new record.
	Save(ctx context.Context, ua *UserAchievement) error

	// Get retrieves the record for the user/achievement pair.
	Get(ctx context.Context, userID, achievementID string) (*UserAchievement, error)

	// Update persists a mutated record with a version compare-and-swap.
	Update(ctx context.Context, ua *UserAchievement) error

	// ListByUser returns all records for a user.
	ListByUser(ctx context.Context, userID string) ([]*UserAchievement, error)
}
