package project

import "context"

// Store defines the interface for project persistence.
type Store interface {
	// Save persists a new project.
	Save(ctx context.Context, p *Project) error

	// Get retrieves a project by ID.
	Get(ctx context.Context, id string) (*Project, error)

	// Update persists a mutated project. The write succeeds only if the
	// stored version is exactly p.Version-1; otherwise it fails with
	// ErrVersionConflict.
	Update(ctx context.Context, p *Project) error

	// ListByOwner returns the owner's projects.
	ListByOwner(ctx context.Context, ownerID string) ([]*Project, error)
}
