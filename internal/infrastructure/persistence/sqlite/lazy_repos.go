package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/domain/repository"
)

// LazyDockingPathRepository opens the database on first use. CLI commands
// that never touch stored paths skip the WASM compilation and migrations.
type LazyDockingPathRepository struct {
	provider port.DatabaseProvider
	repo     repository.DockingPathRepository
	once     sync.Once
	initErr  error
}

// NewLazyDockingPathRepository creates a lazy-loading docking path repository.
func NewLazyDockingPathRepository(provider port.DatabaseProvider) repository.DockingPathRepository {
	return &LazyDockingPathRepository{provider: provider}
}

func (r *LazyDockingPathRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewDockingPathRepository(db)
	})
	return r.initErr
}

func (r *LazyDockingPathRepository) Save(ctx context.Context, path *entity.DockingPath) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, path)
}

func (r *LazyDockingPathRepository) Get(ctx context.Context, id entity.DockableID) (*entity.DockingPath, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Get(ctx, id)
}

func (r *LazyDockingPathRepository) Delete(ctx context.Context, id entity.DockableID) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, id)
}

func (r *LazyDockingPathRepository) List(ctx context.Context) ([]*entity.DockingPath, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.List(ctx)
}
