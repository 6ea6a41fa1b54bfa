package usecase

import (
	"context"
	"errors"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/logging"
)

// ErrNoRoot is returned when no root port is registered to restore into.
var ErrNoRoot = errors.New("no root port registered")

// SplitResizer moves a split divider.
type SplitResizer interface {
	SetSplitRatio(ctx context.Context, split *entity.Port, ratio float64) error
}

// RestorePathUseCase replays captured docking paths into the live port tree.
type RestorePathUseCase struct {
	registry   *entity.Registry
	strategy   port.DockingStrategy
	resizer    SplitResizer
	dispatcher port.Dispatcher
}

// NewRestorePathUseCase creates a path restorer. resizer and dispatcher may be nil;
// without a dispatcher the recorded ratio is applied immediately.
func NewRestorePathUseCase(
	registry *entity.Registry,
	strategy port.DockingStrategy,
	resizer SplitResizer,
	dispatcher port.Dispatcher,
) *RestorePathUseCase {
	return &RestorePathUseCase{
		registry:   registry,
		strategy:   strategy,
		resizer:    resizer,
		dispatcher: dispatcher,
	}
}

// placement is where the walk decided the dockable should go.
type placement struct {
	port   *entity.Port
	region entity.Region
	node   *entity.SplitNode // split whose ratio should be reapplied, if any
	reason string
}

// Restore docks dockable where path says it used to be. A path that no longer
// matches the tree is recovered on a best-effort basis; the dockable always ends
// up docked somewhere under the resolved root.
func (uc *RestorePathUseCase) Restore(ctx context.Context, dockable *entity.Dockable, path *entity.DockingPath) error {
	if dockable == nil || path == nil || dockable.Docked() {
		return nil
	}

	log := logging.FromContext(ctx).With().
		Str("dockable_id", string(dockable.ID)).
		Str("root_port_id", string(path.RootPortID)).
		Logger()

	root := uc.registry.Root(path.RootPortID)
	if root == nil {
		root = uc.registry.DefaultRoot()
		if root == nil {
			return ErrNoRoot
		}
		log.Warn().Str("fallback_root", string(root.ID)).Msg("recorded root not found, using default root")
	}

	p := uc.walk(root, path)
	log.Debug().
		Str("region", p.region.String()).
		Str("target_kind", p.port.Kind.String()).
		Str("reason", p.reason).
		Int("nodes", len(path.Nodes)).
		Msg("restoring docking path")

	region, err := uc.dockWithFallback(ctx, dockable, root, p)
	if err != nil {
		log.Error().Err(err).Msg("failed to restore docking path")
		return err
	}

	if region.IsEdge() && p.node != nil {
		uc.scheduleResize(ctx, dockable, p.node.Percentage)
	}
	return nil
}

// walk follows the recorded splits from root and returns the dock placement.
//
// A dockable alone in its leaf took the last recorded split with it when it was
// undocked, so the walk stops one split early: the port it reaches holds what
// used to be the dockable's sibling branch. A tabbed dockable left its group
// behind and the walk follows every split down to that group.
func (uc *RestorePathUseCase) walk(root *entity.Port, path *entity.DockingPath) placement {
	if len(path.Nodes) == 0 {
		return placement{port: root, region: entity.RegionCenter, reason: "no recorded splits"}
	}

	last, _ := path.LastNode()
	nodes := path.Nodes
	if !path.Tabbed {
		nodes = nodes[:len(nodes)-1]
	}

	current := root
	for i := 0; i < len(nodes); {
		node := nodes[i]
		if current.IsSplit() && current.Orientation == node.Orientation {
			current = current.Child(node.Leading())
			i++
			continue
		}

		switch current.Kind {
		case entity.PortSplit:
			// The tree grew another level since capture.
			current = current.Child(node.Leading())
			continue
		case entity.PortTabbed:
			return placement{port: current, region: entity.RegionCenter, reason: "joined tab group"}
		case entity.PortSingle:
			if current.Dockable != nil && last.SiblingID != "" && current.Dockable.ID == last.SiblingID {
				if path.Tabbed {
					return placement{port: current, region: entity.RegionCenter, reason: "rejoined tab sibling"}
				}
				lastNode := last
				return placement{port: current, region: last.Region, node: &lastNode, reason: "docked beside recorded sibling"}
			}
			if path.Tabbed && current.Dockable != nil && current.Dockable.ID == path.SiblingID {
				return placement{port: current, region: entity.RegionCenter, reason: "rejoined tab sibling"}
			}
		}
		return placement{port: current, region: entity.RegionCenter, reason: "path diverged"}
	}

	if path.Tabbed {
		for current.IsSplit() {
			current = current.Child(last.Leading())
		}
		return placement{port: current, region: entity.RegionCenter, reason: "path matched"}
	}
	return uc.leaf(current, last)
}

// leaf places a dockable against the port that holds its former sibling branch.
func (uc *RestorePathUseCase) leaf(current *entity.Port, last entity.SplitNode) placement {
	switch current.Kind {
	case entity.PortTabbed:
		return placement{port: current, region: entity.RegionCenter, reason: "joined tab group"}
	case entity.PortSplit:
		return placement{port: current, region: last.Region, node: &last, reason: "path matched"}
	case entity.PortSingle:
		if current.Dockable != nil && current.Dockable.ID == last.SiblingID {
			return placement{port: current, region: last.Region, node: &last, reason: "path matched"}
		}
	}
	return placement{port: current, region: entity.RegionCenter, reason: "path matched, sibling gone"}
}

// dockWithFallback tries progressively coarser placements until one succeeds.
func (uc *RestorePathUseCase) dockWithFallback(
	ctx context.Context,
	dockable *entity.Dockable,
	root *entity.Port,
	p placement,
) (entity.Region, error) {
	log := logging.FromContext(ctx)

	edge := entity.RegionEast
	if p.region.IsEdge() {
		edge = p.region
	}
	attempts := []struct {
		port   *entity.Port
		region entity.Region
	}{
		{p.port, p.region},
		{p.port, entity.RegionCenter},
		{p.port, edge},
		{root, entity.RegionCenter},
		{root, entity.RegionEast},
	}

	var lastErr error
	for i, a := range attempts {
		if a.port == nil || (i > 0 && a.port == attempts[i-1].port && a.region == attempts[i-1].region) {
			continue
		}
		err := uc.strategy.Dock(ctx, dockable, a.port, a.region, nil)
		if err == nil {
			return a.region, nil
		}
		lastErr = err
		log.Debug().
			Err(err).
			Str("dockable_id", string(dockable.ID)).
			Str("region", a.region.String()).
			Msg("restore placement rejected, trying next")
	}
	return entity.RegionUnknown, lastErr
}

// scheduleResize applies the recorded ratio once the new split has been laid out.
func (uc *RestorePathUseCase) scheduleResize(ctx context.Context, dockable *entity.Dockable, ratio float64) {
	if dockable.Port == nil || dockable.Port.Parent == nil || !dockable.Port.Parent.IsSplit() {
		return
	}
	split := dockable.Port.Parent

	apply := func(ctx context.Context) {
		if !split.IsSplit() {
			return
		}
		if uc.resizer != nil {
			if err := uc.resizer.SetSplitRatio(ctx, split, ratio); err != nil {
				logging.FromContext(ctx).Warn().Err(err).Msg("failed to apply recorded split ratio")
			}
			return
		}
		split.Ratio = clampFloat64(ratio, 0, 1)
		split.ExactRatio = true
		split.Layout(split.Bounds)
	}

	if uc.dispatcher == nil {
		apply(ctx)
		return
	}
	logCtx := logging.WithPortID(logging.WithDockableID(ctx, string(dockable.ID)), string(split.RootPort().ID))
	log := logging.FromContext(logCtx)
	uc.dispatcher.InvokeLater(func(loopCtx context.Context) {
		apply(logging.WithContext(loopCtx, *log))
	})
}
