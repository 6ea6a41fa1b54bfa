package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/domain/repository"
	"github.com/bnema/docking/internal/logging"
)

const (
	upsertDockingPathSQL = `
INSERT INTO docking_paths (dockable_id, root_port_id, path_json, version, node_count, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(dockable_id) DO UPDATE SET
    root_port_id = excluded.root_port_id,
    path_json    = excluded.path_json,
    version      = excluded.version,
    node_count   = excluded.node_count,
    updated_at   = excluded.updated_at`
	getDockingPathSQL    = `SELECT path_json FROM docking_paths WHERE dockable_id = ?`
	deleteDockingPathSQL = `DELETE FROM docking_paths WHERE dockable_id = ?`
	listDockingPathsSQL  = `SELECT dockable_id, path_json FROM docking_paths ORDER BY dockable_id`
)

type dockingPathRepo struct {
	db *sql.DB
}

// NewDockingPathRepository creates a new docking path repository.
func NewDockingPathRepository(db *sql.DB) repository.DockingPathRepository {
	return &dockingPathRepo{db: db}
}

// Save stores or replaces the path for path.DockableID.
func (r *dockingPathRepo) Save(ctx context.Context, path *entity.DockingPath) error {
	log := logging.FromContext(ctx)
	if path == nil {
		return errors.New("docking path cannot be nil")
	}
	if path.DockableID == "" {
		return errors.New("docking path has no dockable id")
	}

	pathJSON, err := json.Marshal(path)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal docking path")
		return err
	}

	updatedAt := path.CapturedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	log.Debug().
		Str("dockable_id", string(path.DockableID)).
		Str("root_port_id", string(path.RootPortID)).
		Int("node_count", len(path.Nodes)).
		Msg("saving docking path")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin docking path transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Debug().Err(rollbackErr).Msg("docking path rollback reported non-terminal error")
		}
	}()

	if _, err := tx.ExecContext(ctx, upsertDockingPathSQL,
		string(path.DockableID),
		string(path.RootPortID),
		string(pathJSON),
		int64(path.Version),
		int64(len(path.Nodes)),
		updatedAt,
	); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit docking path transaction: %w", err)
	}
	return nil
}

// Get returns the stored path for a dockable.
func (r *dockingPathRepo) Get(ctx context.Context, id entity.DockableID) (*entity.DockingPath, error) {
	var pathJSON string
	err := r.db.QueryRowContext(ctx, getDockingPathSQL, string(id)).Scan(&pathJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var path entity.DockingPath
	if err := json.Unmarshal([]byte(pathJSON), &path); err != nil {
		logging.FromContext(ctx).Error().Err(err).
			Str("dockable_id", string(id)).
			Msg("failed to unmarshal docking path")
		return nil, err
	}
	return &path, nil
}

// Delete removes a dockable's path.
func (r *dockingPathRepo) Delete(ctx context.Context, id entity.DockableID) error {
	logging.FromContext(ctx).Debug().Str("dockable_id", string(id)).Msg("deleting docking path")
	_, err := r.db.ExecContext(ctx, deleteDockingPathSQL, string(id))
	return err
}

// List returns all stored paths. Corrupted rows are skipped.
func (r *dockingPathRepo) List(ctx context.Context) ([]*entity.DockingPath, error) {
	rows, err := r.db.QueryContext(ctx, listDockingPathsSQL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var paths []*entity.DockingPath
	for rows.Next() {
		var id, pathJSON string
		if err := rows.Scan(&id, &pathJSON); err != nil {
			return nil, err
		}
		var path entity.DockingPath
		if err := json.Unmarshal([]byte(pathJSON), &path); err != nil {
			logging.FromContext(ctx).Warn().Err(err).
				Str("dockable_id", id).
				Msg("skipping corrupted docking path")
			continue
		}
		paths = append(paths, &path)
	}
	return paths, rows.Err()
}
