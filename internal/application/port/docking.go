package port

import (
	"context"

	"github.com/bnema/docking/internal/domain/entity"
)

// DockingStrategy embeds dockables into ports.
// The engine calls Dock once per completed gesture and once per path-restore step.
type DockingStrategy interface {
	// Dock places dockable into target at region. op is the drag that produced
	// the request, or nil for programmatic docking. A nil error means success.
	Dock(ctx context.Context, dockable *entity.Dockable, target *entity.Port, region entity.Region, op *entity.DragOperation) error
}

// PropertyStore exposes per-dockable docking preferences as read-only configuration.
// Numeric getters return entity.Unspecified when the dockable has no explicit value.
type PropertyStore interface {
	// DragThreshold is the distance the pointer must travel before a press becomes a drag.
	DragThreshold(id entity.DockableID) float64
	// RegionSize is the fraction of a dockable's bounds used for each edge band.
	RegionSize(id entity.DockableID) float64
	// SiblingSize is the share a dockable gives up to a sibling dropped next to it.
	SiblingSize(id entity.DockableID) float64
	// TerritoryBlocked reports whether nothing may be docked into region of id.
	TerritoryBlocked(id entity.DockableID, region entity.Region) bool
}
