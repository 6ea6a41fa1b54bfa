package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/logging"
)

var (
	ErrNilDockable    = errors.New("dockable is nil")
	ErrNoTarget       = errors.New("no target port")
	ErrUnknownRegion  = errors.New("region is not a drop region")
	ErrForeignContent = errors.New("target holds content that cannot be docked into")
	ErrSelfDock       = errors.New("dockable cannot be docked relative to itself")
	ErrNotDocked      = errors.New("dockable is not docked")
	ErrNotSplit       = errors.New("port is not a split")
)

// IDGenerator produces ids for anonymous nested ports.
type IDGenerator func() string

// SiblingSizer returns the share a dockable gives up to a sibling dropped next to it.
type SiblingSizer interface {
	SiblingSize(id entity.DockableID) float64
}

// DockUseCase is the default docking strategy: it mutates the port tree.
type DockUseCase struct {
	idGenerator IDGenerator
	sizes       SiblingSizer
	dispatcher  port.Dispatcher

	mu            sync.Mutex
	pendingLayout map[*entity.Port]bool
}

var _ port.DockingStrategy = (*DockUseCase)(nil)

// NewDockUseCase creates a docking strategy. If dispatcher is nil, trees are
// re-laid-out synchronously after each mutation.
func NewDockUseCase(idGenerator IDGenerator, sizes SiblingSizer, dispatcher port.Dispatcher) *DockUseCase {
	return &DockUseCase{
		idGenerator:   idGenerator,
		sizes:         sizes,
		dispatcher:    dispatcher,
		pendingLayout: make(map[*entity.Port]bool),
	}
}

// Dock places dockable into target at region.
func (uc *DockUseCase) Dock(
	ctx context.Context,
	dockable *entity.Dockable,
	target *entity.Port,
	region entity.Region,
	_ *entity.DragOperation,
) error {
	log := logging.FromContext(ctx)

	switch {
	case dockable == nil:
		return ErrNilDockable
	case target == nil:
		return ErrNoTarget
	case !region.Valid():
		return ErrUnknownRegion
	}

	if target.IsSplit() && region == entity.RegionCenter {
		target = centerLeaf(target, dockable)
	}
	if target.Kind == entity.PortForeign && region == entity.RegionCenter {
		return ErrForeignContent
	}
	if target.Holds(dockable) && (target.Kind == entity.PortSingle || region == entity.RegionCenter) {
		return ErrSelfDock
	}

	if dockable.Docked() {
		absorbed, survivor := uc.undock(dockable)
		if absorbed != nil && target == absorbed {
			target = survivor
		}
	}

	if region == entity.RegionCenter || target.IsEmpty() {
		join(target, dockable)
	} else {
		uc.split(target, dockable, region)
	}
	dockable.Floating = false

	log.Debug().
		Str("dockable_id", string(dockable.ID)).
		Str("target_kind", target.Kind.String()).
		Str("region", region.String()).
		Int("depth", dockable.Port.Depth()).
		Msg("dockable docked")

	uc.scheduleLayout(target.RootPort())
	return nil
}

// Undock removes dockable from its port, pruning the port if it is left empty.
func (uc *DockUseCase) Undock(ctx context.Context, dockable *entity.Dockable) error {
	if !dockable.Docked() {
		return ErrNotDocked
	}

	root := dockable.Port.RootPort()
	absorbed, survivor := uc.undock(dockable)
	if absorbed != nil {
		logging.FromContext(ctx).Debug().
			Str("dockable_id", string(dockable.ID)).
			Str("survivor_kind", survivor.Kind.String()).
			Msg("empty port pruned")
	}
	uc.scheduleLayout(root)
	return nil
}

// Float undocks dockable and places it in its own floating container.
func (uc *DockUseCase) Float(ctx context.Context, dockable *entity.Dockable, bounds entity.Rect) error {
	if dockable == nil {
		return ErrNilDockable
	}
	if dockable.Docked() {
		if err := uc.Undock(ctx, dockable); err != nil {
			return err
		}
	}
	dockable.Floating = true
	dockable.FloatingBounds = bounds
	return nil
}

// SetSplitRatio moves a split's divider to ratio (share of the first child).
func (uc *DockUseCase) SetSplitRatio(ctx context.Context, split *entity.Port, ratio float64) error {
	if !split.IsSplit() {
		return ErrNotSplit
	}
	old := split.Ratio
	split.Ratio = clampFloat64(ratio, 0, 1)
	split.ExactRatio = true

	logging.FromContext(ctx).Debug().
		Float64("old_ratio", old).
		Float64("new_ratio", split.Ratio).
		Msg("split ratio set")

	uc.scheduleLayout(split.RootPort())
	return nil
}

// undock detaches dockable. When pruning happens, absorbed is the sibling port
// whose content moved into survivor (the former parent split).
func (uc *DockUseCase) undock(dockable *entity.Dockable) (absorbed, survivor *entity.Port) {
	p := dockable.Port
	dockable.Port = nil

	switch p.Kind {
	case entity.PortSingle:
		p.Kind = entity.PortEmpty
		p.Dockable = nil
	case entity.PortTabbed:
		tabs := make([]*entity.Dockable, 0, len(p.Tabs))
		for _, tab := range p.Tabs {
			if tab != dockable {
				tabs = append(tabs, tab)
			}
		}
		switch len(tabs) {
		case 0:
			p.Kind = entity.PortEmpty
			p.Tabs = nil
		case 1:
			p.Kind = entity.PortSingle
			p.Dockable = tabs[0]
			p.Tabs = nil
			p.ActiveTab = 0
		default:
			p.Tabs = tabs
			if p.ActiveTab >= len(tabs) {
				p.ActiveTab = len(tabs) - 1
			}
		}
	}

	if p.Kind != entity.PortEmpty || p.Root || p.Parent == nil || !p.Parent.IsSplit() {
		return nil, nil
	}

	parent := p.Parent
	sibling := p.Sibling()
	absorb(parent, sibling)
	p.Parent = nil
	return sibling, parent
}

// split turns target into a split with its previous content on one side and
// dockable on the side named by region.
func (uc *DockUseCase) split(target *entity.Port, dockable *entity.Dockable, region entity.Region) {
	anchor := target.ActiveDockable()

	moved := &entity.Port{ID: entity.PortID(uc.idGenerator()), Bounds: target.Bounds}
	moveContent(moved, target)

	fresh := &entity.Port{
		ID:       entity.PortID(uc.idGenerator()),
		Kind:     entity.PortSingle,
		Dockable: dockable,
		Parent:   target,
	}
	dockable.Port = fresh

	share := 0.5
	if uc.sizes != nil {
		var anchorID entity.DockableID
		if anchor != nil {
			anchorID = anchor.ID
		}
		share = uc.sizes.SiblingSize(anchorID)
	}
	ratio := share
	if !region.Leading() {
		ratio = 1 - share
	}

	clearContent(target)
	target.Kind = entity.PortSplit
	target.Orientation = region.Orientation()
	target.Ratio = ratio
	target.ExactRatio = true
	if region.Leading() {
		target.Children = [2]*entity.Port{fresh, moved}
	} else {
		target.Children = [2]*entity.Port{moved, fresh}
	}
	moved.Parent = target
}

func (uc *DockUseCase) scheduleLayout(root *entity.Port) {
	if root == nil {
		return
	}
	if uc.dispatcher == nil {
		root.Layout(root.Bounds)
		return
	}

	uc.mu.Lock()
	if uc.pendingLayout[root] {
		uc.mu.Unlock()
		return
	}
	uc.pendingLayout[root] = true
	uc.mu.Unlock()

	uc.dispatcher.InvokeLater(func(context.Context) {
		uc.mu.Lock()
		delete(uc.pendingLayout, root)
		uc.mu.Unlock()
		root.Layout(root.Bounds)
	})
}

// join adds dockable to target without splitting it.
func join(target *entity.Port, dockable *entity.Dockable) {
	switch target.Kind {
	case entity.PortEmpty:
		target.Kind = entity.PortSingle
		target.Dockable = dockable
	case entity.PortSingle:
		existing := target.Dockable
		target.Kind = entity.PortTabbed
		target.Dockable = nil
		target.Tabs = []*entity.Dockable{existing, dockable}
		target.ActiveTab = 1
	case entity.PortTabbed:
		target.Tabs = append(target.Tabs, dockable)
		target.ActiveTab = len(target.Tabs) - 1
	}
	dockable.Port = target
}

// centerLeaf finds the first non-split port under p that is not just dockable itself.
func centerLeaf(p *entity.Port, dockable *entity.Dockable) *entity.Port {
	var fallback, found *entity.Port
	p.Walk(func(n *entity.Port) bool {
		if found != nil {
			return false
		}
		if n.IsSplit() {
			return true
		}
		if fallback == nil {
			fallback = n
		}
		if !(n.Kind == entity.PortSingle && n.Dockable == dockable) {
			found = n
		}
		return false
	})
	if found != nil {
		return found
	}
	return fallback
}

// absorb moves src's content into dst, keeping dst's identity and position.
func absorb(dst, src *entity.Port) {
	clearContent(dst)
	moveContent(dst, src)
	src.Parent = nil
}

// moveContent transfers everything a port holds from src to dst and re-points
// children and dockables at dst. src is left empty.
func moveContent(dst, src *entity.Port) {
	dst.Kind = src.Kind
	dst.Dockable = src.Dockable
	dst.Tabs = src.Tabs
	dst.ActiveTab = src.ActiveTab
	dst.Children = src.Children
	dst.Orientation = src.Orientation
	dst.Ratio = src.Ratio
	dst.ExactRatio = src.ExactRatio
	dst.Foreign = src.Foreign

	for _, child := range dst.Children {
		if child != nil {
			child.Parent = dst
		}
	}
	for _, d := range dst.Dockables() {
		d.Port = dst
	}
	clearContent(src)
}

func clearContent(p *entity.Port) {
	p.Kind = entity.PortEmpty
	p.Dockable = nil
	p.Tabs = nil
	p.ActiveTab = 0
	p.Children = [2]*entity.Port{}
	p.Orientation = entity.OrientationNone
	p.Ratio = 0
	p.ExactRatio = false
	p.Foreign = ""
}

func clampFloat64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
