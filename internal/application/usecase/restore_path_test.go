package usecase_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/docking/internal/application/port/mocks"
	"github.com/bnema/docking/internal/application/usecase"
	"github.com/bnema/docking/internal/domain/entity"
)

type restoreFixture struct {
	ctx      context.Context
	registry *entity.Registry
	dock     *usecase.DockUseCase
	restore  *usecase.RestorePathUseCase
	root     *entity.Port
}

func newRestoreFixture() *restoreFixture {
	registry := entity.NewRegistry()
	root := newRoot("main")
	registry.RegisterRoot(root)
	dock := newDockUseCase()
	return &restoreFixture{
		ctx:      context.Background(),
		registry: registry,
		dock:     dock,
		restore:  usecase.NewRestorePathUseCase(registry, dock, dock, nil),
		root:     root,
	}
}

func (f *restoreFixture) dockable(id string) *entity.Dockable {
	d := entity.NewDockable(entity.DockableID(id), "")
	f.registry.RegisterDockable(d)
	return d
}

// threeDeep builds main: H[a | V[b / H[c | d]]] with distinct ratios.
func (f *restoreFixture) threeDeep(t *testing.T) (a, b, c, d *entity.Dockable) {
	t.Helper()
	a, b, c, d = f.dockable("a"), f.dockable("b"), f.dockable("c"), f.dockable("d")

	require.NoError(t, f.dock.Dock(f.ctx, a, f.root, entity.RegionCenter, nil))
	require.NoError(t, f.dock.Dock(f.ctx, b, a.Port, entity.RegionEast, nil))
	require.NoError(t, f.dock.Dock(f.ctx, c, b.Port, entity.RegionSouth, nil))
	require.NoError(t, f.dock.Dock(f.ctx, d, c.Port, entity.RegionEast, nil))

	require.NoError(t, f.dock.SetSplitRatio(f.ctx, f.root, 0.3))
	require.NoError(t, f.dock.SetSplitRatio(f.ctx, c.Port.Parent.Parent, 0.6))
	require.NoError(t, f.dock.SetSplitRatio(f.ctx, c.Port.Parent, 0.45))
	require.Equal(t, 3, d.Port.Depth())
	return a, b, c, d
}

func ancestry(p *entity.Port) []string {
	var chain []string
	for n := p; n != nil; n = n.Parent {
		chain = append(chain, fmt.Sprintf("%s/%s/%.3f", n.Kind, n.Orientation, n.Ratio))
	}
	return chain
}

func TestRestore_RoundTripThreeDeep(t *testing.T) {
	f := newRestoreFixture()
	_, _, _, d := f.threeDeep(t)

	before := ancestry(d.Port)
	path := entity.CaptureDockingPath(d)
	require.Len(t, path.Nodes, 3)

	require.NoError(t, f.dock.Undock(f.ctx, d))
	require.False(t, d.Docked())

	require.NoError(t, f.restore.Restore(f.ctx, d, path))
	require.True(t, d.Docked())

	assert.Equal(t, before, ancestry(d.Port))
	again := entity.CaptureDockingPath(d)
	require.Len(t, again.Nodes, 3)
	for i := range path.Nodes {
		assert.Equal(t, path.Nodes[i].Orientation, again.Nodes[i].Orientation)
		assert.Equal(t, path.Nodes[i].Region, again.Nodes[i].Region)
		assert.Equal(t, path.Nodes[i].SiblingID, again.Nodes[i].SiblingID)
		assert.InDelta(t, path.Nodes[i].Percentage, again.Nodes[i].Percentage, 0.01)
	}
}

func TestRestore_RoundTripBesideNestedSplit(t *testing.T) {
	f := newRestoreFixture()
	x, y, a, b, d := f.dockable("x"), f.dockable("y"), f.dockable("a"), f.dockable("b"), f.dockable("d")

	// main: H[x | V[y / H[H[a | b] | d]]]
	require.NoError(t, f.dock.Dock(f.ctx, x, f.root, entity.RegionCenter, nil))
	require.NoError(t, f.dock.Dock(f.ctx, y, x.Port, entity.RegionEast, nil))
	require.NoError(t, f.dock.Dock(f.ctx, a, y.Port, entity.RegionSouth, nil))
	require.NoError(t, f.dock.Dock(f.ctx, d, a.Port, entity.RegionEast, nil))
	require.NoError(t, f.dock.Dock(f.ctx, b, a.Port, entity.RegionEast, nil))
	require.Equal(t, 3, d.Port.Depth())

	before := ancestry(d.Port)
	path := entity.CaptureDockingPath(d)
	require.Len(t, path.Nodes, 3)
	assert.Empty(t, path.Nodes[2].SiblingID)

	require.NoError(t, f.dock.Undock(f.ctx, d))
	require.NoError(t, f.restore.Restore(f.ctx, d, path))

	require.Equal(t, entity.PortSingle, d.Port.Kind)
	assert.Equal(t, before, ancestry(d.Port))
	nested := d.Port.Sibling()
	require.NotNil(t, nested)
	require.True(t, nested.IsSplit())
	assert.Same(t, nested, a.Port.Parent)
	assert.Same(t, nested, b.Port.Parent)
}

func TestRestore_RoundTripLeadingSide(t *testing.T) {
	f := newRestoreFixture()
	a, b := f.dockable("a"), f.dockable("b")
	require.NoError(t, f.dock.Dock(f.ctx, a, f.root, entity.RegionCenter, nil))
	require.NoError(t, f.dock.Dock(f.ctx, b, a.Port, entity.RegionNorth, nil))
	require.NoError(t, f.dock.SetSplitRatio(f.ctx, f.root, 0.2))

	path := entity.CaptureDockingPath(b)
	require.NoError(t, f.dock.Undock(f.ctx, b))
	require.NoError(t, f.restore.Restore(f.ctx, b, path))

	require.True(t, f.root.IsSplit())
	assert.Equal(t, entity.OrientationVertical, f.root.Orientation)
	assert.True(t, b.Port.IsLeading())
	assert.InDelta(t, 0.2, f.root.Ratio, 1e-9)
}

func TestRestore_TabbedRejoinsGroup(t *testing.T) {
	f := newRestoreFixture()
	a, b, c := f.dockable("a"), f.dockable("b"), f.dockable("c")
	require.NoError(t, f.dock.Dock(f.ctx, a, f.root, entity.RegionCenter, nil))
	require.NoError(t, f.dock.Dock(f.ctx, b, a.Port, entity.RegionWest, nil))
	require.NoError(t, f.dock.Dock(f.ctx, c, a.Port, entity.RegionCenter, nil))

	path := entity.CaptureDockingPath(c)
	require.True(t, path.Tabbed)
	require.NoError(t, f.dock.Undock(f.ctx, c))
	require.NoError(t, f.restore.Restore(f.ctx, c, path))

	assert.Same(t, a.Port, c.Port)
	assert.Equal(t, entity.PortTabbed, c.Port.Kind)
}

func TestRestore_NoOps(t *testing.T) {
	f := newRestoreFixture()
	a := f.dockable("a")
	require.NoError(t, f.dock.Dock(f.ctx, a, f.root, entity.RegionCenter, nil))
	path := entity.CaptureDockingPath(a)

	assert.NoError(t, f.restore.Restore(f.ctx, nil, path))
	assert.NoError(t, f.restore.Restore(f.ctx, a, path))
	assert.Same(t, f.root, a.Port)

	b := f.dockable("b")
	assert.NoError(t, f.restore.Restore(f.ctx, b, nil))
	assert.False(t, b.Docked())
}

func TestRestore_EmptyPathDocksAtRootCenter(t *testing.T) {
	f := newRestoreFixture()
	a := f.dockable("a")
	path := &entity.DockingPath{DockableID: "a", RootPortID: "main"}

	require.NoError(t, f.restore.Restore(f.ctx, a, path))
	assert.Same(t, f.root, a.Port)
}

func TestRestore_UnknownRootFallsBackToDefault(t *testing.T) {
	f := newRestoreFixture()
	a := f.dockable("a")
	path := &entity.DockingPath{DockableID: "a", RootPortID: "gone"}

	require.NoError(t, f.restore.Restore(f.ctx, a, path))
	assert.Same(t, f.root, a.Port)

	empty := usecase.NewRestorePathUseCase(entity.NewRegistry(), f.dock, f.dock, nil)
	b := entity.NewDockable("b", "")
	assert.ErrorIs(t, empty.Restore(f.ctx, b, path), usecase.ErrNoRoot)
}

func TestRestore_BrokenPathRecovery(t *testing.T) {
	t.Run("tree reduced to an empty root", func(t *testing.T) {
		f := newRestoreFixture()
		a, b, c, d := f.threeDeep(t)
		path := entity.CaptureDockingPath(d)
		for _, x := range []*entity.Dockable{d, c, b, a} {
			require.NoError(t, f.dock.Undock(f.ctx, x))
		}
		require.Equal(t, entity.PortEmpty, f.root.Kind)

		require.NoError(t, f.restore.Restore(f.ctx, d, path))
		assert.Same(t, f.root, d.Port)
	})

	t.Run("tab group joins at center", func(t *testing.T) {
		f := newRestoreFixture()
		a, b, c, d := f.threeDeep(t)
		path := entity.CaptureDockingPath(d)
		for _, x := range []*entity.Dockable{d, c, b} {
			require.NoError(t, f.dock.Undock(f.ctx, x))
		}
		require.NoError(t, f.dock.Dock(f.ctx, b, a.Port, entity.RegionCenter, nil))
		require.Equal(t, entity.PortTabbed, f.root.Kind)

		require.NoError(t, f.restore.Restore(f.ctx, d, path))
		assert.Same(t, f.root, d.Port)
		assert.Len(t, f.root.Tabs, 3)
	})

	t.Run("orientation mismatch extends into deeper split", func(t *testing.T) {
		f := newRestoreFixture()
		a, b := f.dockable("a"), f.dockable("b")
		require.NoError(t, f.dock.Dock(f.ctx, a, f.root, entity.RegionCenter, nil))
		require.NoError(t, f.dock.Dock(f.ctx, b, a.Port, entity.RegionEast, nil))
		path := entity.CaptureDockingPath(b)
		require.NoError(t, f.dock.Undock(f.ctx, b))

		// Replace the horizontal structure with a vertical one holding c over a.
		c := f.dockable("c")
		require.NoError(t, f.dock.Dock(f.ctx, c, a.Port, entity.RegionNorth, nil))
		require.Equal(t, entity.OrientationVertical, f.root.Orientation)

		require.NoError(t, f.restore.Restore(f.ctx, b, path))
		require.True(t, b.Docked())
		assert.Same(t, f.root, b.Port.RootPort())
		assert.Equal(t, 3, f.root.DockableCount())
	})

	t.Run("foreign content at the divergence point", func(t *testing.T) {
		f := newRestoreFixture()
		a, b := f.dockable("a"), f.dockable("b")
		require.NoError(t, f.dock.Dock(f.ctx, a, f.root, entity.RegionCenter, nil))
		require.NoError(t, f.dock.Dock(f.ctx, b, a.Port, entity.RegionEast, nil))
		path := entity.CaptureDockingPath(b)
		require.NoError(t, f.dock.Undock(f.ctx, b))
		require.NoError(t, f.dock.Undock(f.ctx, a))
		f.root.Kind = entity.PortForeign
		f.root.Foreign = "banner"

		require.NoError(t, f.restore.Restore(f.ctx, b, path))
		require.True(t, b.Docked())
		assert.Same(t, f.root, b.Port.RootPort())
	})
}

func TestRestore_NeverLeavesDockableUndocked(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			f := newRestoreFixture()
			rng := rand.New(rand.NewSource(seed))
			regions := []entity.Region{
				entity.RegionNorth, entity.RegionSouth, entity.RegionEast,
				entity.RegionWest, entity.RegionCenter,
			}

			var all []*entity.Dockable
			for i := 0; i < 6; i++ {
				d := f.dockable(fmt.Sprintf("d%d", i))
				target := f.root
				if len(all) > 0 {
					target = all[rng.Intn(len(all))].Port
				}
				require.NoError(t, f.dock.Dock(f.ctx, d, target, regions[rng.Intn(len(regions))], nil))
				all = append(all, d)
			}

			subject := all[rng.Intn(len(all))]
			path := entity.CaptureDockingPath(subject)
			require.NotNil(t, path)
			require.NoError(t, f.dock.Undock(f.ctx, subject))

			// Undock a random subset of the others and move a few around.
			for _, d := range all {
				if d == subject || !d.Docked() {
					continue
				}
				switch rng.Intn(3) {
				case 0:
					require.NoError(t, f.dock.Undock(f.ctx, d))
				case 1:
					if f.root.DockableCount() > 1 {
						target := f.root.PortAt(entity.Point{X: rng.Intn(400), Y: rng.Intn(300)})
						if target != nil && !target.Holds(d) {
							require.NoError(t, f.dock.Dock(f.ctx, d, target, regions[rng.Intn(len(regions))], nil))
						}
					}
				}
			}

			require.NoError(t, f.restore.Restore(f.ctx, subject, path))
			require.True(t, subject.Docked())
			assert.Same(t, f.root, subject.Port.RootPort())
		})
	}
}

func TestRestore_FallsBackWhenStrategyRejects(t *testing.T) {
	ctx := context.Background()
	registry := entity.NewRegistry()
	root := newRoot("main")
	registry.RegisterRoot(root)
	d := entity.NewDockable("d", "")

	strategy := mocks.NewMockDockingStrategy(t)
	strategy.EXPECT().
		Dock(mock.Anything, d, root, entity.RegionCenter, mock.Anything).
		Return(usecase.ErrForeignContent).Once()
	strategy.EXPECT().
		Dock(mock.Anything, d, root, entity.RegionEast, mock.Anything).
		Return(nil).Once()

	uc := usecase.NewRestorePathUseCase(registry, strategy, nil, nil)
	require.NoError(t, uc.Restore(ctx, d, &entity.DockingPath{DockableID: "d", RootPortID: "main"}))
}

func TestRestore_RatioAppliedOnNextIdleCycle(t *testing.T) {
	ctx := context.Background()
	registry := entity.NewRegistry()
	root := newRoot("main")
	registry.RegisterRoot(root)
	dispatcher := &fakeDispatcher{}
	dock := usecase.NewDockUseCase(sequentialIDs(), fixedSizer(0.5), dispatcher)
	restore := usecase.NewRestorePathUseCase(registry, dock, dock, dispatcher)

	a, b := entity.NewDockable("a", ""), entity.NewDockable("b", "")
	require.NoError(t, dock.Dock(ctx, a, root, entity.RegionCenter, nil))
	dispatcher.run(ctx)

	path := &entity.DockingPath{
		DockableID: "b",
		RootPortID: "main",
		SiblingID:  "a",
		Nodes: []entity.SplitNode{{
			Orientation: entity.OrientationHorizontal,
			Region:      entity.RegionEast,
			Percentage:  0.7,
			SiblingID:   "a",
		}},
	}
	require.NoError(t, restore.Restore(ctx, b, path))
	assert.InDelta(t, 0.5, root.Ratio, 1e-9)

	dispatcher.run(ctx)
	assert.InDelta(t, 0.7, root.Ratio, 1e-9)
	assert.Equal(t, 280, a.Port.Bounds.W)
}
