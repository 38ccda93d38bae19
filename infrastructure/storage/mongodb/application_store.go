package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/felixgeelhaar/launchpad/domain/admission"
)

// applicationDocument is the MongoDB document representation.
type applicationDocument struct {
	ID          string               `bson:"_id"`
	UserID      string               `bson:"user_id"`
	Status      string               `bson:"status"`
	ReviewNotes string               `bson:"review_notes,omitempty"`
	ReviewedBy  string               `bson:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time           `bson:"reviewed_at,omitempty"`
	Audit       []admission.AuditEntry `bson:"audit,omitempty"`
	Version     int64                `bson:"version"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

// ApplicationStore is a MongoDB-backed implementation of admission.Store.
type ApplicationStore struct {
	collection   *mongo.Collection
	queryTimeout time.Duration
}

// NewApplicationStore creates a new MongoDB application store.
func NewApplicationStore(client *Client, collectionName string) *ApplicationStore {
	if collectionName == "" {
		collectionName = "applications"
	}
	return &ApplicationStore{
		collection:   client.Collection(collectionName),
		queryTimeout: client.config.QueryTimeout,
	}
}

// Save persists a new application. The one-active-application-per-user rule
// is enforced by checking for a non-withdrawn document first; a unique
// partial index on user_id backs this up against races.
func (s *ApplicationStore) Save(ctx context.Context, app *admission.Application) error {
	if app.ID == "" {
		return admission.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	count, err := s.collection.CountDocuments(ctx, bson.M{
		"user_id": app.UserID,
		"status":  bson.M{"$ne": string(admission.StatusWithdrawn)},
	})
	if err != nil {
		return wrapError(err)
	}
	if count > 0 {
		return admission.ErrAlreadyApplied
	}

	_, err = s.collection.InsertOne(ctx, toDocument(app))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return admission.ErrAlreadyApplied
		}
		return wrapError(err)
	}
	return nil
}

// Get retrieves an application by ID.
func (s *ApplicationStore) Get(ctx context.Context, id string) (*admission.Application, error) {
	if id == "" {
		return nil, admission.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var doc applicationDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, admission.ErrNotFound
		}
		return nil, wrapError(err)
	}
	return fromDocument(&doc), nil
}

// GetByUser retrieves the user's current non-withdrawn application.
func (s *ApplicationStore) GetByUser(ctx context.Context, userID string) (*admission.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var doc applicationDocument
	err := s.collection.FindOne(ctx, bson.M{
		"user_id": userID,
		"status":  bson.M{"$ne": string(admission.StatusWithdrawn)},
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, admission.ErrNotFound
		}
		return nil, wrapError(err)
	}
	return fromDocument(&doc), nil
}

// Update replaces the document only if the stored version matches the one
// the caller read, so a stale transition is rejected instead of silently
// overwriting a newer one.
func (s *ApplicationStore) Update(ctx context.Context, app *admission.Application) error {
	if app.ID == "" {
		return admission.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.collection.ReplaceOne(ctx, bson.M{
		"_id":     app.ID,
		"version": app.Version - 1,
	}, toDocument(app))
	if err != nil {
		return wrapError(err)
	}
	if result.MatchedCount == 0 {
		count, err := s.collection.CountDocuments(ctx, bson.M{"_id": app.ID})
		if err != nil {
			return wrapError(err)
		}
		if count == 0 {
			return admission.ErrNotFound
		}
		return admission.ErrVersionConflict
	}
	return nil
}

// List returns applications matching the filter.
func (s *ApplicationStore) List(ctx context.Context, filter admission.ListFilter) ([]*admission.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	mongoFilter := bson.M{}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		mongoFilter["status"] = bson.M{"$in": statuses}
	}
	if filter.ReviewedBy != "" {
		mongoFilter["reviewed_by"] = filter.ReviewedBy
	}

	opts := findOptions(filter.Limit, filter.Offset)
	cursor, err := s.collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, wrapError(err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var apps []*admission.Application
	for cursor.Next(ctx) {
		var doc applicationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapError(err)
		}
		apps = append(apps, fromDocument(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapError(err)
	}
	return apps, nil
}

func toDocument(app *admission.Application) *applicationDocument {
	doc := &applicationDocument{
		ID:          app.ID,
		UserID:      app.UserID,
		Status:      string(app.Status),
		ReviewNotes: app.ReviewNotes,
		ReviewedBy:  app.ReviewedBy,
		Audit:       app.Audit,
		Version:     app.Version,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
	if !app.ReviewedAt.IsZero() {
		t := app.ReviewedAt
		doc.ReviewedAt = &t
	}
	return doc
}

func fromDocument(doc *applicationDocument) *admission.Application {
	app := &admission.Application{
		ID:          doc.ID,
		UserID:      doc.UserID,
		Status:      admission.Status(doc.Status),
		ReviewNotes: doc.ReviewNotes,
		ReviewedBy:  doc.ReviewedBy,
		Audit:       doc.Audit,
		Version:     doc.Version,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if doc.ReviewedAt != nil {
		app.ReviewedAt = *doc.ReviewedAt
	}
	return app
}
