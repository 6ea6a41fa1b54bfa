package repository

import (
	"context"

	"github.com/bnema/docking/internal/domain/entity"
)

// DockingPathRepository persists captured docking paths, one per dockable.
type DockingPathRepository interface {
	// Save stores or replaces the path for path.DockableID.
	Save(ctx context.Context, path *entity.DockingPath) error

	// Get returns the stored path for a dockable, or nil if none exists.
	Get(ctx context.Context, id entity.DockableID) (*entity.DockingPath, error)

	// Delete removes a dockable's path. Deleting a missing path is not an error.
	Delete(ctx context.Context, id entity.DockableID) error

	// List returns all stored paths ordered by dockable id.
	List(ctx context.Context) ([]*entity.DockingPath, error)
}
