package bootstrap_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/bootstrap"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/infrastructure/config"
	"github.com/bnema/docking/internal/ui/drag"
	"github.com/bnema/docking/internal/ui/window"
)

type memoryPaths struct {
	mu    sync.Mutex
	paths map[entity.DockableID]*entity.DockingPath
}

func newMemoryPaths() *memoryPaths {
	return &memoryPaths{paths: make(map[entity.DockableID]*entity.DockingPath)}
}

func (m *memoryPaths) Save(_ context.Context, p *entity.DockingPath) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths[p.DockableID] = p.Clone()
	return nil
}

func (m *memoryPaths) Get(_ context.Context, id entity.DockableID) (*entity.DockingPath, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paths[id].Clone(), nil
}

func (m *memoryPaths) Delete(_ context.Context, id entity.DockableID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.paths, id)
	return nil
}

func (m *memoryPaths) List(_ context.Context) ([]*entity.DockingPath, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.DockingPath, 0, len(m.paths))
	for _, p := range m.paths {
		out = append(out, p.Clone())
	}
	return out, nil
}

func TestSeedDemo_Synchronous(t *testing.T) {
	ctx := context.Background()
	e := bootstrap.NewEngine(bootstrap.EngineInput{Ctx: ctx, Synchronous: true})
	for _, id := range bootstrap.DemoRoots {
		e.Ports.RegisterRoot(entity.NewRootPort(id))
	}

	require.NoError(t, bootstrap.SeedDemo(ctx, e))

	main := e.Ports.Root("main")
	side := e.Ports.Root("side")
	assert.Equal(t, 4, main.DockableCount())
	assert.Equal(t, 2, side.DockableCount())

	logs := e.Ports.Dockable("logs")
	require.True(t, logs.Docked())
	assert.Equal(t, entity.PortTabbed, logs.Port.Kind)
	assert.True(t, logs.Port.Holds(e.Ports.Dockable("console")))
}

func TestSeedDemo_FallsBackToDefaultRoot(t *testing.T) {
	ctx := context.Background()
	e := bootstrap.NewEngine(bootstrap.EngineInput{Ctx: ctx, Synchronous: true})
	e.Ports.RegisterRoot(entity.NewRootPort("only"))

	require.NoError(t, bootstrap.SeedDemo(ctx, e))
	assert.Equal(t, 6, e.Ports.Root("only").DockableCount())
}

func TestSeedDemo_NoRoot(t *testing.T) {
	e := bootstrap.NewEngine(bootstrap.EngineInput{Synchronous: true})
	assert.Error(t, bootstrap.SeedDemo(context.Background(), e))
}

func TestEngine_LayoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := bootstrap.NewEngine(bootstrap.EngineInput{Ctx: ctx, Paths: newMemoryPaths(), Synchronous: true})
	require.NotNil(t, e.Layout)
	for _, id := range bootstrap.DemoRoots {
		e.Ports.RegisterRoot(entity.NewRootPort(id))
	}
	require.NoError(t, bootstrap.SeedDemo(ctx, e))

	saved, err := e.Layout.Save(ctx)
	require.NoError(t, err)
	assert.Len(t, saved.Processed, 6)

	for _, d := range e.Ports.Dockables() {
		require.NoError(t, e.Dock.Undock(ctx, d))
	}
	assert.Equal(t, 0, e.Ports.Root("main").DockableCount())

	restored, err := e.Layout.Restore(ctx)
	require.NoError(t, err)
	assert.Len(t, restored.Processed, 6)
	assert.Equal(t, 4, e.Ports.Root("main").DockableCount())
	assert.Equal(t, 2, e.Ports.Root("side").DockableCount())
}

func TestEngine_NoLayoutWithoutStore(t *testing.T) {
	e := bootstrap.NewEngine(bootstrap.EngineInput{})
	assert.Nil(t, e.Layout)
}

func TestEngine_ApplyConfig(t *testing.T) {
	ctx := context.Background()
	e := bootstrap.NewEngine(bootstrap.EngineInput{Ctx: ctx})
	assert.InDelta(t, 0.25, e.Resolver.RegionSize(""), 1e-9)

	cfg := config.DefaultConfig()
	cfg.Docking.RegionSize = 0.4
	e.ApplyConfig(ctx, cfg)
	assert.InDelta(t, 0.25, e.Resolver.RegionSize(""), 1e-9, "applied on the loop")

	e.Settle(ctx, 4)
	assert.InDelta(t, 0.4, e.Resolver.RegionSize(""), 1e-9)
}

func TestEngine_ApplyConfigReachesDrag(t *testing.T) {
	e := bootstrap.NewEngine(bootstrap.EngineInput{Ctx: context.Background()})
	ctx := e.Loop.WithLoop(context.Background())

	preview := window.New("preview", "Preview", entity.Rect{W: 30, H: 20}, entity.NewRootPort("preview"))
	preview.Show()
	require.NoError(t, e.Windows.Register(preview))

	d := entity.NewDockable("d", "")
	assert.InDelta(t, 4, e.Drag.Threshold(d), 1e-9)

	cfg := config.DefaultConfig()
	cfg.Docking.DragThreshold = 20
	cfg.Docking.PreviewSentinelWidth = 30
	cfg.Docking.PreviewSentinelHeight = 20
	e.ApplyConfig(ctx, cfg)
	e.Settle(ctx, 4)

	assert.InDelta(t, 20, e.Drag.Threshold(d), 1e-9)

	source := &listenerSource{}
	source.AddMotionListener(e.Drag)
	require.True(t, e.Drag.Press(ctx, d, source, port.MouseEvent{}))
	source.dispatch(ctx, port.MouseEvent{Screen: entity.Point{X: 10, Y: 10}})
	assert.Equal(t, drag.StateArmed, e.Drag.State(), "below the reloaded threshold")

	source.dispatch(ctx, port.MouseEvent{Screen: entity.Point{X: 25, Y: 15}})
	require.Equal(t, drag.StateDragging, e.Drag.State())
	assert.Empty(t, e.Pipeline.Overlays(), "sentinel-sized window skipped")
	assert.Nil(t, preview.Overlay())
	e.Drag.Cancel(ctx)
}

func TestEngine_DragBetweenPorts(t *testing.T) {
	e := bootstrap.NewEngine(bootstrap.EngineInput{Ctx: context.Background()})
	ctx := e.Loop.WithLoop(context.Background())

	w := window.New("w", "Main", entity.Rect{W: 400, H: 200}, entity.NewRootPort("main"))
	w.Show()
	require.NoError(t, e.Windows.Register(w))
	require.NoError(t, bootstrap.SeedDemo(ctx, e))
	e.Settle(ctx, 4)

	outline := e.Ports.Dockable("outline")
	editor := e.Ports.Dockable("editor")
	require.Equal(t, entity.Rect{X: 200, Y: 0, W: 200, H: 100}, editor.Port.Bounds)

	var kinds []drag.EventKind
	e.Drag.AddListener(func(_ context.Context, evt *drag.Event) { kinds = append(kinds, evt.Kind) })

	source := &listenerSource{}
	source.AddMotionListener(e.Drag)
	require.True(t, e.Drag.Press(ctx, outline, source, port.MouseEvent{Screen: entity.Point{X: 10, Y: 10}}))
	source.dispatch(ctx, port.MouseEvent{Screen: entity.Point{X: 390, Y: 50}})

	require.True(t, e.Pipeline.IsOpen())
	active := e.Pipeline.ActiveOverlay()
	require.NotNil(t, active)
	assert.Equal(t, entity.RegionEast, active.Hover().Region)

	require.NoError(t, e.Drag.Release(ctx, port.MouseEvent{Screen: entity.Point{X: 390, Y: 50}}))
	e.Settle(ctx, 4)

	assert.Equal(t, []drag.EventKind{drag.EventDragStarted, drag.EventDropStarted}, kinds)
	assert.False(t, e.Pipeline.IsOpen())
	require.True(t, outline.Docked())
	assert.False(t, outline.Port.IsLeading())
	assert.Same(t, editor, outline.Port.Sibling().Dockable)
	assert.Nil(t, w.Overlay())
}

func TestEngine_WindowCloseMidDrag(t *testing.T) {
	e := bootstrap.NewEngine(bootstrap.EngineInput{Ctx: context.Background()})
	ctx := e.Loop.WithLoop(context.Background())

	w := window.New("w", "Main", entity.Rect{W: 400, H: 200}, entity.NewRootPort("main"))
	w.Show()
	require.NoError(t, e.Windows.Register(w))
	require.NoError(t, bootstrap.SeedDemo(ctx, e))
	e.Settle(ctx, 4)

	source := &listenerSource{}
	source.AddMotionListener(e.Drag)
	require.True(t, e.Drag.Press(ctx, e.Ports.Dockable("terminal"), source, port.MouseEvent{}))
	source.dispatch(ctx, port.MouseEvent{Screen: entity.Point{X: 300, Y: 50}})
	require.NotNil(t, e.Pipeline.ActiveOverlay())

	require.NoError(t, e.Windows.Unregister(ctx, "w"))
	assert.Nil(t, e.Pipeline.ActiveOverlay())
	assert.Nil(t, e.Ports.Root("main"))

	require.NoError(t, e.Drag.Release(ctx, port.MouseEvent{Screen: entity.Point{X: 300, Y: 50}}))
	assert.False(t, e.Pipeline.IsOpen())
}

func TestEngine_ShutdownCancelsDrag(t *testing.T) {
	e := bootstrap.NewEngine(bootstrap.EngineInput{Ctx: context.Background()})
	ctx := e.Loop.WithLoop(context.Background())

	w := window.New("w", "Main", entity.Rect{W: 400, H: 200}, entity.NewRootPort("main"))
	w.Show()
	require.NoError(t, e.Windows.Register(w))
	require.NoError(t, bootstrap.SeedDemo(ctx, e))
	e.Settle(ctx, 4)

	source := &listenerSource{}
	source.AddMotionListener(e.Drag)
	require.True(t, e.Drag.Press(ctx, e.Ports.Dockable("outline"), source, port.MouseEvent{}))
	source.dispatch(ctx, port.MouseEvent{Screen: entity.Point{X: 300, Y: 50}})
	require.True(t, e.Pipeline.IsOpen())

	e.Shutdown(ctx)
	assert.False(t, e.Pipeline.IsOpen())
	assert.Equal(t, drag.StateIdle, e.Drag.State())
	assert.Nil(t, w.Overlay())
	require.Len(t, source.listeners, 1)
	assert.Same(t, port.MotionListener(e.Drag), source.listeners[0])
}

type listenerSource struct {
	listeners []port.MotionListener
}

func (s *listenerSource) MotionListeners() []port.MotionListener {
	return append([]port.MotionListener(nil), s.listeners...)
}

func (s *listenerSource) AddMotionListener(l port.MotionListener) {
	s.listeners = append(s.listeners, l)
}

func (s *listenerSource) RemoveMotionListener(l port.MotionListener) {
	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *listenerSource) dispatch(ctx context.Context, evt port.MouseEvent) {
	for _, l := range s.MotionListeners() {
		l.MouseDragged(ctx, evt)
	}
}
