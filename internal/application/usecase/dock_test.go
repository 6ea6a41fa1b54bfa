package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/docking/internal/application/usecase"
	"github.com/bnema/docking/internal/domain/entity"
)

type fixedSizer float64

func (s fixedSizer) SiblingSize(entity.DockableID) float64 { return float64(s) }

// fakeDispatcher queues deferred work until run is called.
type fakeDispatcher struct {
	queue []func(context.Context)
}

func (d *fakeDispatcher) OnUIThread(context.Context) bool { return true }

func (d *fakeDispatcher) InvokeAndWait(ctx context.Context, fn func(context.Context)) error {
	fn(ctx)
	return nil
}

func (d *fakeDispatcher) InvokeLater(fn func(context.Context)) {
	d.queue = append(d.queue, fn)
}

func (d *fakeDispatcher) run(ctx context.Context) int {
	n := 0
	for len(d.queue) > 0 {
		tasks := d.queue
		d.queue = nil
		for _, task := range tasks {
			task(ctx)
			n++
		}
	}
	return n
}

func sequentialIDs() usecase.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("port-%d", n)
	}
}

func newDockUseCase() *usecase.DockUseCase {
	return usecase.NewDockUseCase(sequentialIDs(), fixedSizer(0.5), nil)
}

func newRoot(id entity.PortID) *entity.Port {
	root := entity.NewRootPort(id)
	root.Bounds = entity.Rect{W: 400, H: 300}
	return root
}

func TestDock_CenterJoinsContent(t *testing.T) {
	ctx := context.Background()
	uc := newDockUseCase()
	root := newRoot("main")
	a, b, c := entity.NewDockable("a", ""), entity.NewDockable("b", ""), entity.NewDockable("c", "")

	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))
	assert.Equal(t, entity.PortSingle, root.Kind)
	assert.Same(t, root, a.Port)

	require.NoError(t, uc.Dock(ctx, b, root, entity.RegionCenter, nil))
	assert.Equal(t, entity.PortTabbed, root.Kind)
	assert.Equal(t, []*entity.Dockable{a, b}, root.Tabs)
	assert.Equal(t, 1, root.ActiveTab)

	require.NoError(t, uc.Dock(ctx, c, root, entity.RegionCenter, nil))
	assert.Len(t, root.Tabs, 3)
	assert.Equal(t, 2, root.ActiveTab)
	assert.Same(t, root, c.Port)
}

func TestDock_EdgeRegionsSplit(t *testing.T) {
	tests := []struct {
		region      entity.Region
		orientation entity.Orientation
		newFirst    bool
	}{
		{entity.RegionNorth, entity.OrientationVertical, true},
		{entity.RegionSouth, entity.OrientationVertical, false},
		{entity.RegionWest, entity.OrientationHorizontal, true},
		{entity.RegionEast, entity.OrientationHorizontal, false},
	}

	for _, tt := range tests {
		t.Run(tt.region.String(), func(t *testing.T) {
			ctx := context.Background()
			uc := usecase.NewDockUseCase(sequentialIDs(), fixedSizer(0.3), nil)
			root := newRoot("main")
			a, b := entity.NewDockable("a", ""), entity.NewDockable("b", "")

			require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))
			require.NoError(t, uc.Dock(ctx, b, root, tt.region, nil))

			require.True(t, root.IsSplit())
			assert.True(t, root.Root)
			assert.Equal(t, entity.PortID("main"), root.ID)
			assert.Equal(t, tt.orientation, root.Orientation)
			assert.Same(t, root, a.Port.Parent)
			assert.Same(t, root, b.Port.Parent)
			assert.Equal(t, tt.newFirst, b.Port.IsLeading())

			// The new dockable gets the sibling share of the space.
			share := root.Ratio
			if !tt.newFirst {
				share = 1 - root.Ratio
			}
			assert.InDelta(t, 0.3, share, 1e-9)

			// Layout ran synchronously without a dispatcher.
			assert.False(t, b.Port.Bounds.Empty())
		})
	}
}

func TestDock_EdgeOnEmptyPortActsAsCenter(t *testing.T) {
	uc := newDockUseCase()
	root := newRoot("main")
	a := entity.NewDockable("a", "")

	require.NoError(t, uc.Dock(context.Background(), a, root, entity.RegionWest, nil))
	assert.Equal(t, entity.PortSingle, root.Kind)
	assert.Same(t, root, a.Port)
}

func TestDock_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	uc := newDockUseCase()
	root := newRoot("main")
	a := entity.NewDockable("a", "")

	assert.ErrorIs(t, uc.Dock(ctx, nil, root, entity.RegionCenter, nil), usecase.ErrNilDockable)
	assert.ErrorIs(t, uc.Dock(ctx, a, nil, entity.RegionCenter, nil), usecase.ErrNoTarget)
	assert.ErrorIs(t, uc.Dock(ctx, a, root, entity.RegionUnknown, nil), usecase.ErrUnknownRegion)

	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))
	assert.ErrorIs(t, uc.Dock(ctx, a, root, entity.RegionEast, nil), usecase.ErrSelfDock)
	assert.Same(t, root, a.Port)
}

func TestDock_ForeignContent(t *testing.T) {
	ctx := context.Background()
	uc := newDockUseCase()
	root := newRoot("main")
	root.Kind = entity.PortForeign
	root.Foreign = "status-bar"
	a := entity.NewDockable("a", "")

	assert.ErrorIs(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil), usecase.ErrForeignContent)
	assert.False(t, a.Docked())

	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionSouth, nil))
	require.True(t, root.IsSplit())
	foreign := root.Children[0]
	assert.Equal(t, entity.PortForeign, foreign.Kind)
	assert.Equal(t, "status-bar", foreign.Foreign)
	assert.Same(t, root.Children[1], a.Port)
}

func TestDock_CenterOnSplitUsesFirstLeaf(t *testing.T) {
	ctx := context.Background()
	uc := newDockUseCase()
	root := newRoot("main")
	a, b, c := entity.NewDockable("a", ""), entity.NewDockable("b", ""), entity.NewDockable("c", "")

	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))
	require.NoError(t, uc.Dock(ctx, b, root, entity.RegionEast, nil))
	require.NoError(t, uc.Dock(ctx, c, root, entity.RegionCenter, nil))

	assert.Same(t, a.Port, c.Port)
	assert.Equal(t, entity.PortTabbed, a.Port.Kind)
}

func TestDock_MovingDockablePrunesOrigin(t *testing.T) {
	ctx := context.Background()
	uc := newDockUseCase()
	root := newRoot("main")
	a, b := entity.NewDockable("a", ""), entity.NewDockable("b", "")

	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))
	require.NoError(t, uc.Dock(ctx, b, root, entity.RegionEast, nil))
	bPort := b.Port

	// Moving a into b's port leaves a's port empty; the split collapses and the
	// root takes over b's port, which becomes the real target.
	require.NoError(t, uc.Dock(ctx, a, bPort, entity.RegionCenter, nil))

	assert.Equal(t, entity.PortID("main"), root.ID)
	assert.Equal(t, entity.PortTabbed, root.Kind)
	assert.Equal(t, []*entity.Dockable{b, a}, root.Tabs)
	assert.Same(t, root, a.Port)
	assert.Same(t, root, b.Port)
	assert.Nil(t, bPort.Parent)
}

func TestUndock_Pruning(t *testing.T) {
	ctx := context.Background()
	uc := newDockUseCase()
	root := newRoot("main")
	a, b, c := entity.NewDockable("a", ""), entity.NewDockable("b", ""), entity.NewDockable("c", "")

	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))
	require.NoError(t, uc.Dock(ctx, b, a.Port, entity.RegionEast, nil))
	require.NoError(t, uc.Dock(ctx, c, b.Port, entity.RegionSouth, nil))
	require.Equal(t, 2, c.Port.Depth())

	require.NoError(t, uc.Undock(ctx, b))
	assert.False(t, b.Docked())
	assert.Equal(t, 1, c.Port.Depth())
	assert.Same(t, root, c.Port.Parent)
	assert.Equal(t, 2, root.DockableCount())

	require.NoError(t, uc.Undock(ctx, a))
	assert.Same(t, root, c.Port)
	assert.Equal(t, entity.PortSingle, root.Kind)

	require.NoError(t, uc.Undock(ctx, c))
	assert.Equal(t, entity.PortEmpty, root.Kind)
	assert.True(t, root.Root)

	assert.ErrorIs(t, uc.Undock(ctx, c), usecase.ErrNotDocked)
}

func TestUndock_TabbedCollapsesToSingle(t *testing.T) {
	ctx := context.Background()
	uc := newDockUseCase()
	root := newRoot("main")
	a, b := entity.NewDockable("a", ""), entity.NewDockable("b", "")

	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))
	require.NoError(t, uc.Dock(ctx, b, root, entity.RegionCenter, nil))
	require.NoError(t, uc.Undock(ctx, b))

	assert.Equal(t, entity.PortSingle, root.Kind)
	assert.Same(t, a, root.Dockable)
	assert.Nil(t, root.Tabs)
}

func TestFloat_UndocksAndRecordsBounds(t *testing.T) {
	ctx := context.Background()
	uc := newDockUseCase()
	root := newRoot("main")
	a := entity.NewDockable("a", "")
	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))

	bounds := entity.Rect{X: 40, Y: 50, W: 200, H: 120}
	require.NoError(t, uc.Float(ctx, a, bounds))
	assert.False(t, a.Docked())
	assert.True(t, a.Floating)
	assert.Equal(t, bounds, a.FloatingBounds)

	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))
	assert.False(t, a.Floating)
}

func TestDock_RelayoutIsCoalescedPerRoot(t *testing.T) {
	ctx := context.Background()
	dispatcher := &fakeDispatcher{}
	uc := usecase.NewDockUseCase(sequentialIDs(), fixedSizer(0.5), dispatcher)
	root := newRoot("main")
	a, b, c := entity.NewDockable("a", ""), entity.NewDockable("b", ""), entity.NewDockable("c", "")

	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))
	require.NoError(t, uc.Dock(ctx, b, root, entity.RegionEast, nil))
	require.NoError(t, uc.Dock(ctx, c, b.Port, entity.RegionSouth, nil))

	assert.Len(t, dispatcher.queue, 1)
	assert.True(t, c.Port.Bounds.Empty())

	assert.Equal(t, 1, dispatcher.run(ctx))
	assert.Equal(t, entity.Rect{X: 200, Y: 150, W: 200, H: 150}, c.Port.Bounds)
}

func TestSetSplitRatio(t *testing.T) {
	ctx := context.Background()
	uc := newDockUseCase()
	root := newRoot("main")
	a, b := entity.NewDockable("a", ""), entity.NewDockable("b", "")

	require.NoError(t, uc.Dock(ctx, a, root, entity.RegionCenter, nil))
	assert.ErrorIs(t, uc.SetSplitRatio(ctx, root, 0.5), usecase.ErrNotSplit)

	require.NoError(t, uc.Dock(ctx, b, root, entity.RegionEast, nil))
	require.NoError(t, uc.SetSplitRatio(ctx, root, 0.25))
	assert.Equal(t, 100, a.Port.Bounds.W)

	require.NoError(t, uc.SetSplitRatio(ctx, root, 4))
	assert.InDelta(t, 1.0, root.Ratio, 1e-9)
}
