package drag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/application/port/mocks"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/ui/drag"
)

type recordingListener struct {
	events []port.MouseEvent
}

func (l *recordingListener) MouseDragged(_ context.Context, evt port.MouseEvent) {
	l.events = append(l.events, evt)
}

type fakeSource struct {
	listeners []port.MotionListener
}

func (s *fakeSource) MotionListeners() []port.MotionListener {
	return append([]port.MotionListener(nil), s.listeners...)
}

func (s *fakeSource) AddMotionListener(l port.MotionListener) {
	s.listeners = append(s.listeners, l)
}

func (s *fakeSource) RemoveMotionListener(l port.MotionListener) {
	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// dispatch delivers a motion event the way a toolkit would.
func (s *fakeSource) dispatch(ctx context.Context, evt port.MouseEvent) {
	for _, l := range s.MotionListeners() {
		l.MouseDragged(ctx, evt)
	}
}

type managerHarness struct {
	*harness
	strategy *mocks.MockDockingStrategy
	manager  *drag.Manager
	source   *fakeSource
	app      *recordingListener
	target   *entity.Port
	src      *entity.Dockable
}

func newManagerHarness(t *testing.T, threshold float64) *managerHarness {
	t.Helper()
	target := singleRoot("main", entity.NewDockable("editor", ""))
	w := newWindow("w", entity.Rect{W: 200, H: 100}, target)
	h := newHarness(t, nil, w)

	strategy := mocks.NewMockDockingStrategy(t)
	manager := drag.NewManager(h.ctx, h.pipeline, strategy, nil, drag.ManagerOptions{DragThreshold: threshold})

	app := &recordingListener{}
	source := &fakeSource{}
	source.AddMotionListener(app)
	source.AddMotionListener(manager)

	return &managerHarness{
		harness:  h,
		strategy: strategy,
		manager:  manager,
		source:   source,
		app:      app,
		target:   target,
		src:      entity.NewDockable("src", ""),
	}
}

func TestManager_ThresholdGating(t *testing.T) {
	const threshold = 6
	m := newManagerHarness(t, threshold)

	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	assert.Equal(t, drag.StateArmed, m.manager.State())

	m.source.dispatch(m.ctx, move(0, threshold-1))
	assert.Equal(t, drag.StateArmed, m.manager.State())
	assert.False(t, m.pipeline.IsOpen())

	m.source.dispatch(m.ctx, move(0, threshold+1))
	assert.Equal(t, drag.StateDragging, m.manager.State())
	assert.True(t, m.pipeline.IsOpen())
}

func TestManager_ThresholdUsesDistanceNotAxis(t *testing.T) {
	m := newManagerHarness(t, 5)
	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(10, 10)))

	m.source.dispatch(m.ctx, move(13, 13)) // ~4.24
	assert.Equal(t, drag.StateArmed, m.manager.State())

	m.source.dispatch(m.ctx, move(14, 13)) // 5
	assert.Equal(t, drag.StateDragging, m.manager.State())
}

func TestManager_ListenersRestoredByReference(t *testing.T) {
	m := newManagerHarness(t, 2)
	before := m.source.MotionListeners()

	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	m.source.dispatch(m.ctx, move(0, 10))
	require.Equal(t, drag.StateDragging, m.manager.State())

	// Mid-gesture only the pipeline listens.
	require.Len(t, m.source.listeners, 1)
	assert.Same(t, m.pipeline.Listener(), m.source.listeners[0])
	appEvents := len(m.app.events)
	m.source.dispatch(m.ctx, move(100, 50))
	assert.Len(t, m.app.events, appEvents)

	m.strategy.EXPECT().
		Dock(mock.Anything, m.src, m.target, entity.RegionCenter, mock.Anything).
		Return(nil).Once()
	require.NoError(t, m.manager.Release(m.ctx, move(100, 50)))

	after := m.source.MotionListeners()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
	assert.Equal(t, drag.StateIdle, m.manager.State())
	assert.False(t, m.pipeline.IsOpen())
	assert.Nil(t, m.dragCtx.Current())
}

func TestManager_DropCommitsResolvedTarget(t *testing.T) {
	m := newManagerHarness(t, 2)
	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	m.source.dispatch(m.ctx, move(0, 10))

	m.strategy.EXPECT().
		Dock(mock.Anything, m.src, m.target, entity.RegionEast, mock.AnythingOfType("*entity.DragOperation")).
		Run(func(_ context.Context, _ *entity.Dockable, _ *entity.Port, _ entity.Region, op *entity.DragOperation) {
			assert.Equal(t, entity.WindowID("w"), op.TargetWindow)
		}).
		Return(nil).Once()

	require.NoError(t, m.manager.Release(m.ctx, move(195, 50)))
}

func TestManager_DockErrorStillCloses(t *testing.T) {
	m := newManagerHarness(t, 2)
	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	m.source.dispatch(m.ctx, move(0, 10))

	boom := errors.New("boom")
	m.strategy.EXPECT().Dock(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(boom).Once()

	assert.ErrorIs(t, m.manager.Release(m.ctx, move(100, 50)), boom)
	assert.False(t, m.pipeline.IsOpen())
	assert.Equal(t, drag.StateIdle, m.manager.State())
}

func TestManager_ReleaseOutsideWindowIsNoop(t *testing.T) {
	m := newManagerHarness(t, 2)
	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	m.source.dispatch(m.ctx, move(0, 10))

	require.NoError(t, m.manager.Release(m.ctx, move(900, 900)))
	m.strategy.AssertNotCalled(t, "Dock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.False(t, m.pipeline.IsOpen())
}

func TestManager_ClickWithoutDragDoesNothing(t *testing.T) {
	m := newManagerHarness(t, 4)
	before := m.source.MotionListeners()

	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	m.source.dispatch(m.ctx, move(1, 1))
	require.NoError(t, m.manager.Release(m.ctx, move(1, 1)))

	assert.Equal(t, drag.StateIdle, m.manager.State())
	assert.Equal(t, before, m.source.MotionListeners())
	assert.False(t, m.pipeline.IsOpen())
}

func TestManager_ConsumedDragStartedCancels(t *testing.T) {
	m := newManagerHarness(t, 2)
	var kinds []drag.EventKind
	m.manager.AddListener(func(_ context.Context, evt *drag.Event) {
		kinds = append(kinds, evt.Kind)
		if evt.Kind == drag.EventDragStarted {
			evt.Consume()
		}
	})

	assert.False(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	assert.Equal(t, drag.StateIdle, m.manager.State())

	m.source.dispatch(m.ctx, move(0, 50))
	assert.Equal(t, drag.StateIdle, m.manager.State())
	assert.Equal(t, []drag.EventKind{drag.EventDragStarted}, kinds)
}

func TestManager_ConsumedDropStartedVetoes(t *testing.T) {
	m := newManagerHarness(t, 2)
	m.manager.AddListener(func(_ context.Context, evt *drag.Event) {
		if evt.Kind == drag.EventDropStarted {
			require.True(t, evt.Operation.HasTarget())
			evt.Consume()
		}
	})

	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	m.source.dispatch(m.ctx, move(0, 10))
	require.NoError(t, m.manager.Release(m.ctx, move(100, 50)))

	m.strategy.AssertNotCalled(t, "Dock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.False(t, m.pipeline.IsOpen())
	assert.Equal(t, drag.StateIdle, m.manager.State())
}

func TestManager_PressOffsets(t *testing.T) {
	m := newManagerHarness(t, 2)

	docked := entity.NewDockable("docked", "")
	require.True(t, m.manager.Press(m.ctx, docked, m.source, port.MouseEvent{
		Screen: entity.Point{X: 120, Y: 80},
		Local:  entity.Point{X: 20, Y: 8},
	}))
	assert.Equal(t, entity.Point{X: 20, Y: 8}, m.manager.Operation().Offset)
	require.NoError(t, m.manager.Release(m.ctx, move(120, 80)))

	floating := entity.NewDockable("floating", "")
	floating.Floating = true
	floating.FloatingBounds = entity.Rect{X: 100, Y: 60, W: 300, H: 200}
	require.True(t, m.manager.Press(m.ctx, floating, m.source, port.MouseEvent{
		Screen: entity.Point{X: 120, Y: 80},
		Local:  entity.Point{X: 3, Y: 3},
	}))
	assert.Equal(t, entity.Point{X: 20, Y: 20}, m.manager.Operation().Offset)
}

func TestManager_PressWhileBusyIsIgnored(t *testing.T) {
	m := newManagerHarness(t, 2)
	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	assert.False(t, m.manager.Press(m.ctx, entity.NewDockable("other", ""), m.source, move(0, 0)))
	assert.False(t, m.manager.Press(m.ctx, nil, m.source, move(0, 0)))
}

func TestManager_PerDockableThreshold(t *testing.T) {
	m := newManagerHarness(t, 4)
	props := fakeProps{threshold: 20}
	manager := drag.NewManager(m.ctx, m.pipeline, m.strategy, props, drag.ManagerOptions{DragThreshold: 4})
	assert.InDelta(t, 20, manager.Threshold(m.src), 1e-9)

	unset := drag.NewManager(m.ctx, m.pipeline, m.strategy, fakeProps{threshold: entity.Unspecified}, drag.ManagerOptions{DragThreshold: 4})
	assert.InDelta(t, 4, unset.Threshold(m.src), 1e-9)
}

func TestManager_CancelRestoresListeners(t *testing.T) {
	m := newManagerHarness(t, 2)
	before := m.source.MotionListeners()

	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	m.source.dispatch(m.ctx, move(100, 50))
	require.Equal(t, drag.StateDragging, m.manager.State())

	m.manager.Cancel(m.ctx)
	assert.Equal(t, drag.StateIdle, m.manager.State())
	assert.Equal(t, before, m.source.MotionListeners())
	assert.False(t, m.pipeline.IsOpen())

	require.NoError(t, m.manager.Release(m.ctx, move(100, 50)))
	m.strategy.AssertNotCalled(t, "Dock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestManager_FailedHandOffDoesNotBlockNextDrag(t *testing.T) {
	m := newManagerHarness(t, 2)
	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	m.source.dispatch(m.ctx, move(0, 10))
	require.Equal(t, drag.StateDragging, m.manager.State())

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.manager.Release(canceled, move(100, 50)), context.Canceled)
	assert.Equal(t, drag.StateIdle, m.manager.State())
	assert.False(t, m.pipeline.IsOpen())
	assert.Nil(t, m.dragCtx.Current())
	m.loop.Flush(m.ctx, 4)

	require.True(t, m.manager.Press(m.ctx, m.src, m.source, move(0, 0)))
	m.source.dispatch(m.ctx, move(0, 10))
	assert.Equal(t, drag.StateDragging, m.manager.State())
	assert.True(t, m.pipeline.IsOpen())
}

func TestManager_SetDefaultThreshold(t *testing.T) {
	m := newManagerHarness(t, 4)
	m.manager.SetDefaultThreshold(12)
	assert.InDelta(t, 12, m.manager.Threshold(m.src), 1e-9)

	m.manager.SetDefaultThreshold(-3)
	assert.InDelta(t, 0, m.manager.Threshold(m.src), 1e-9)
}
