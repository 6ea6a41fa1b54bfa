package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/domain/repository"
	"github.com/bnema/docking/internal/logging"
)

// ManageLayoutUseCase saves and restores the docking paths of every registered dockable.
type ManageLayoutUseCase struct {
	registry *entity.Registry
	paths    repository.DockingPathRepository
	restorer *RestorePathUseCase
}

// NewManageLayoutUseCase creates a new layout management use case.
func NewManageLayoutUseCase(
	registry *entity.Registry,
	paths repository.DockingPathRepository,
	restorer *RestorePathUseCase,
) *ManageLayoutUseCase {
	return &ManageLayoutUseCase{
		registry: registry,
		paths:    paths,
		restorer: restorer,
	}
}

// LayoutOutput reports what a save or restore touched.
type LayoutOutput struct {
	Processed []entity.DockableID
	Skipped   []entity.DockableID
}

// Save captures and stores the path of every docked dockable.
func (uc *ManageLayoutUseCase) Save(ctx context.Context) (*LayoutOutput, error) {
	log := logging.FromContext(ctx)
	out := &LayoutOutput{}

	for _, d := range uc.registry.Dockables() {
		path := entity.CaptureDockingPath(d)
		if path == nil {
			out.Skipped = append(out.Skipped, d.ID)
			continue
		}
		if err := uc.paths.Save(ctx, path); err != nil {
			return out, fmt.Errorf("save docking path for %s: %w", d.ID, err)
		}
		out.Processed = append(out.Processed, d.ID)
	}

	log.Info().
		Int("saved", len(out.Processed)).
		Int("skipped", len(out.Skipped)).
		Msg("layout saved")
	return out, nil
}

// Restore replays every stored path whose dockable is registered and undocked.
// Shallow paths go first so that recorded siblings are back in place before
// the dockables that were split against them.
func (uc *ManageLayoutUseCase) Restore(ctx context.Context) (*LayoutOutput, error) {
	log := logging.FromContext(ctx)
	out := &LayoutOutput{}

	paths, err := uc.paths.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list docking paths: %w", err)
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return len(paths[i].Nodes) < len(paths[j].Nodes)
	})

	for _, path := range paths {
		d := uc.registry.Dockable(path.DockableID)
		if d == nil || d.Docked() {
			out.Skipped = append(out.Skipped, path.DockableID)
			continue
		}
		if err := uc.restorer.Restore(ctx, d, path); err != nil {
			return out, fmt.Errorf("restore docking path for %s: %w", d.ID, err)
		}
		out.Processed = append(out.Processed, d.ID)
	}

	log.Info().
		Int("restored", len(out.Processed)).
		Int("skipped", len(out.Skipped)).
		Msg("layout restored")
	return out, nil
}

// Forget deletes the stored path of a dockable.
func (uc *ManageLayoutUseCase) Forget(ctx context.Context, id entity.DockableID) error {
	if id == "" {
		return fmt.Errorf("dockable id is required")
	}
	return uc.paths.Delete(ctx, id)
}

// List returns every stored path.
func (uc *ManageLayoutUseCase) List(ctx context.Context) ([]*entity.DockingPath, error) {
	paths, err := uc.paths.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list docking paths: %w", err)
	}
	return paths, nil
}
