package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/felixgeelhaar/launchpad/domain/project"
)

// ProjectStore is an in-memory implementation of project.Store.
type ProjectStore struct {
	projects map[string][]byte
	mu       sync.RWMutex
}

// NewProjectStore creates a new in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: make(map[string][]byte)}
}

// Save persists a new project.
func (s *ProjectStore) Save(ctx context.Context, p *project.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.ID == "" {
		return project.ErrInvalidID
	}

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = data
	return nil
}

// Get retrieves a project by ID.
func (s *ProjectStore) Get(ctx context.Context, id string) (*project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, project.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.projects[id]
	if !ok {
		return nil, project.ErrNotFound
	}
	return decodeProject(data)
}

// Update persists a mutated project if the caller saw the latest version.
func (s *ProjectStore) Update(ctx context.Context, p *project.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.ID == "" {
		return project.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.projects[p.ID]
	if !ok {
		return project.ErrNotFound
	}
	stored, err := decodeProject(data)
	if err != nil {
		return err
	}
	if stored.Version != p.Version-1 {
		return project.ErrVersionConflict
	}

	updated, err := json.Marshal(p)
	if err != nil {
		return err
	}
	s.projects[p.ID] = updated
	return nil
}

// ListByOwner returns the owner's projects.
func (s *ProjectStore) ListByOwner(ctx context.Context, ownerID string) ([]*project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*project.Project
	for _, data := range s.projects {
		p, err := decodeProject(data)
		if err != nil {
			return nil, err
		}
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func decodeProject(data []byte) (*project.Project, error) {
	var p project.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
