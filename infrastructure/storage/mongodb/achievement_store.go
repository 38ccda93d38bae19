package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/felixgeelhaar/launchpad/domain/achievement"
)

// achievementDocument is the MongoDB document representation.
type achievementDocument struct {
	ID            string     `bson:"_id"`
	UserID        string     `bson:"user_id"`
	AchievementID string     `bson:"achievement_id"`
	Progress      int        `bson:"progress"`
	IsCompleted   bool       `bson:"is_completed"`
	UnlockedAt    *time.Time `bson:"unlocked_at,omitempty"`
	Version       int64      `bson:"version"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at"`
}

// UserAchievementStore is a MongoDB-backed implementation of achievement.Store.
type UserAchievementStore struct {
	collection   *mongo.Collection
	queryTimeout time.Duration
}

// NewUserAchievementStore creates a new MongoDB achievement store.
func NewUserAchievementStore(client *Client, collectionName string) *UserAchievementStore {
	if collectionName == "" {
		collectionName = "user_achievements"
	}
	return &UserAchievementStore{
		collection:   client.Collection(collectionName),
		queryTimeout: client.config.QueryTimeout,
	}
}

// Save persists a new record.
func (s *UserAchievementStore) Save(ctx context.Context, ua *achievement.UserAchievement) error {
	if ua.UserID == "" || ua.AchievementID == "" {
		return achievement.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	_, err := s.collection.InsertOne(ctx, toAchievementDocument(ua))
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// Get retrieves the record for the user/achievement pair.
func (s *UserAchievementStore) Get(ctx context.Context, userID, achievementID string) (*achievement.UserAchievement, error) {
	if userID == "" || achievementID == "" {
		return nil, achievement.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var doc achievementDocument
	err := s.collection.FindOne(ctx, bson.M{
		"user_id":        userID,
		"achievement_id": achievementID,
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, achievement.ErrNotFound
		}
		return nil, wrapError(err)
	}
	return fromAchievementDocument(&doc), nil
}

// Update replaces the record with a version compare-and-swap.
func (s *UserAchievementStore) Update(ctx context.Context, ua *achievement.UserAchievement) error {
	if ua.UserID == "" || ua.AchievementID == "" {
		return achievement.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.collection.ReplaceOne(ctx, bson.M{
		"_id":     ua.ID,
		"version": ua.Version - 1,
	}, toAchievementDocument(ua))
	if err != nil {
		return wrapError(err)
	}
	if result.MatchedCount == 0 {
		count, err := s.collection.CountDocuments(ctx, bson.M{"_id": ua.ID})
		if err != nil {
			return wrapError(err)
		}
		if count == 0 {
			return achievement.ErrNotFound
		}
		return achievement.ErrVersionConflict
	}
	return nil
}

// ListByUser returns all records for a user.
func (s *UserAchievementStore) ListByUser(ctx context.Context, userID string) ([]*achievement.UserAchievement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, wrapError(err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var records []*achievement.UserAchievement
	for cursor.Next(ctx) {
		var doc achievementDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapError(err)
		}
		records = append(records, fromAchievementDocument(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapError(err)
	}
	return records, nil
}

func toAchievementDocument(ua *achievement.UserAchievement) *achievementDocument {
	doc := &achievementDocument{
		ID:            ua.ID,
		UserID:        ua.UserID,
		AchievementID: ua.AchievementID,
		Progress:      ua.Progress,
		IsCompleted:   ua.IsCompleted,
		Version:       ua.Version,
		CreatedAt:     ua.CreatedAt,
		UpdatedAt:     ua.UpdatedAt,
	}
	if !ua.UnlockedAt.IsZero() {
		t := ua.UnlockedAt
		doc.UnlockedAt = &t
	}
	return doc
}

func fromAchievementDocument(doc *achievementDocument) *achievement.UserAchievement {
	ua := &achievement.UserAchievement{
		ID:            doc.ID,
		UserID:        doc.UserID,
		AchievementID: doc.AchievementID,
		Progress:      doc.Progress,
		IsCompleted:   doc.IsCompleted,
		Version:       doc.Version,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
	if doc.UnlockedAt != nil {
		ua.UnlockedAt = *doc.UnlockedAt
	}
	return ua
}
