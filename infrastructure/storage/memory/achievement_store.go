package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/felixgeelhaar/launchpad/domain/achievement"
)

// AchievementStore is an in-memory implementation of achievement.Store.
type AchievementStore struct {
	records map[string][]byte // userID/achievementID -> record
	mu      sync.RWMutex
}

// NewAchievementStore creates a new in-memory achievement store.
func NewAchievementStore() *AchievementStore {
	return &AchievementStore{records: make(map[string][]byte)}
}

func recordKey(userID, achievementID string) string {
	return userID + "/" + achievementID
}

// Save persists a new record.
func (s *AchievementStore) Save(ctx context.Context, ua *achievement.UserAchievement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ua.UserID == "" || ua.AchievementID == "" {
		return achievement.ErrInvalidID
	}

	data, err := json.Marshal(ua)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordKey(ua.UserID, ua.AchievementID)] = data
	return nil
}

// Get retrieves the record for the user/achievement pair.
func (s *AchievementStore) Get(ctx context.Context, userID, achievementID string) (*achievement.UserAchievement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" || achievementID == "" {
		return nil, achievement.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.records[recordKey(userID, achievementID)]
	if !ok {
		return nil, achievement.ErrNotFound
	}
	return decodeAchievement(data)
}

// Update persists a mutated record if the caller saw the latest version.
func (s *AchievementStore) Update(ctx context.Context, ua *achievement.UserAchievement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ua.UserID == "" || ua.AchievementID == "" {
		return achievement.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey(ua.UserID, ua.AchievementID)
	data, ok := s.records[key]
	if !ok {
		return achievement.ErrNotFound
	}
	stored, err := decodeAchievement(data)
	if err != nil {
		return err
	}
	if stored.Version != ua.Version-1 {
		return achievement.ErrVersionConflict
	}

	updated, err := json.Marshal(ua)
	if err != nil {
		return err
	}
	s.records[key] = updated
	return nil
}

// ListByUser returns all records for a user.
func (s *AchievementStore) ListByUser(ctx context.Context, userID string) ([]*achievement.UserAchievement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*achievement.UserAchievement
	for _, data := range s.records {
		ua, err := decodeAchievement(data)
		if err != nil {
			return nil, err
		}
		if ua.UserID == userID {
			out = append(out, ua)
		}
	}
	return out, nil
}

func decodeAchievement(data []byte) (*achievement.UserAchievement, error) {
	var ua achievement.UserAchievement
	if err := json.Unmarshal(data, &ua); err != nil {
		return nil, err
	}
	return &ua, nil
}
