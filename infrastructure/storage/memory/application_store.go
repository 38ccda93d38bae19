// Package memory provides in-memory store implementations. Entities are
// stored as JSON snapshots so callers never share memory with the store,
// mirroring the isolation a document database gives.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/felixgeelhaar/launchpad/domain/admission"
)

// ApplicationStore is an in-memory implementation of admission.Store.
type ApplicationStore struct {
	apps   map[string][]byte
	byUser map[string]string // userID -> active application ID
	mu     sync.RWMutex
}

// NewApplicationStore creates a new in-memory application store.
func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{
		apps:   make(map[string][]byte),
		byUser: make(map[string]string),
	}
}

// Save persists a new application, enforcing one non-withdrawn application
// per user.
func (s *ApplicationStore) Save(ctx context.Context, app *admission.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if app.ID == "" {
		return admission.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byUser[app.UserID]; ok {
		existing, err := s.decode(s.apps[id])
		if err != nil {
			return err
		}
		if existing.Status != admission.StatusWithdrawn {
			return admission.ErrAlreadyApplied
		}
	}

	data, err := json.Marshal(app)
	if err != nil {
		return err
	}

	s.apps[app.ID] = data
	s.byUser[app.UserID] = app.ID
	return nil
}

// Get retrieves an application by ID.
func (s *ApplicationStore) Get(ctx context.Context, id string) (*admission.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, admission.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.apps[id]
	if !ok {
		return nil, admission.ErrNotFound
	}
	return s.decode(data)
}

// GetByUser retrieves the user's current non-withdrawn application.
func (s *ApplicationStore) GetByUser(ctx context.Context, userID string) (*admission.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUser[userID]
	if !ok {
		return nil, admission.ErrNotFound
	}
	app, err := s.decode(s.apps[id])
	if err != nil {
		return nil, err
	}
	if app.Status == admission.StatusWithdrawn {
		return nil, admission.ErrNotFound
	}
	return app, nil
}

// Update persists a mutated application if the caller saw the latest version.
func (s *ApplicationStore) Update(ctx context.Context, app *admission.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if app.ID == "" {
		return admission.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.apps[app.ID]
	if !ok {
		return admission.ErrNotFound
	}
	stored, err := s.decode(data)
	if err != nil {
		return err
	}
	if stored.Version != app.Version-1 {
		return admission.ErrVersionConflict
	}

	updated, err := json.Marshal(app)
	if err != nil {
		return err
	}
	s.apps[app.ID] = updated
	return nil
}

// List returns applications matching the filter, in unspecified order.
func (s *ApplicationStore) List(ctx context.Context, filter admission.ListFilter) ([]*admission.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*admission.Application
	for _, data := range s.apps {
		app, err := s.decode(data)
		if err != nil {
			return nil, err
		}
		if !matchesFilter(app, filter) {
			continue
		}
		out = append(out, app)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *ApplicationStore) decode(data []byte) (*admission.Application, error) {
	var app admission.Application
	if err := json.Unmarshal(data, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func matchesFilter(app *admission.Application, filter admission.ListFilter) bool {
	if filter.ReviewedBy != "" && app.ReviewedBy != filter.ReviewedBy {
		return false
	}
	if len(filter.Statuses) == 0 {
		return true
	}
	for _, st := range filter.Statuses {
		if app.Status == st {
			return true
		}
	}
	return false
}
