package drag

import (
	"context"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/logging"
)

// State is the gesture state of a Manager.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// EventKind names a gesture notification.
type EventKind int

const (
	EventDragStarted EventKind = iota
	EventDropStarted
)

// Event is delivered to listeners before a drag starts and before a drop is
// committed. Consuming it cancels the drag or vetoes the drop.
type Event struct {
	Kind      EventKind
	Operation *entity.DragOperation
	consumed  bool
}

// Consume cancels whatever the event announces.
func (e *Event) Consume() { e.consumed = true }

// Consumed reports whether a listener consumed the event.
func (e *Event) Consumed() bool { return e.consumed }

// Listener observes gesture notifications.
type Listener func(ctx context.Context, evt *Event)

// ManagerOptions tunes a Manager.
type ManagerOptions struct {
	// DragThreshold applies to dockables without their own threshold.
	DragThreshold float64
}

// Manager turns press/move/release sequences on a dockable into drags.
//
// It is registered as a motion listener on every drag source; once a press
// moves past the threshold it hands the source's motion events to the
// pipeline until release.
type Manager struct {
	pipeline *Pipeline
	strategy port.DockingStrategy
	props    port.PropertyStore
	opts     ManagerOptions
	log      zerolog.Logger

	mu        sync.Mutex
	state     State
	op        *entity.DragOperation
	source    port.DragSource
	cached    []port.MotionListener
	listeners []Listener
}

var _ port.MotionListener = (*Manager)(nil)

// NewManager creates an idle manager. props may be nil.
func NewManager(
	ctx context.Context,
	pipeline *Pipeline,
	strategy port.DockingStrategy,
	props port.PropertyStore,
	opts ManagerOptions,
) *Manager {
	if opts.DragThreshold < 0 {
		opts.DragThreshold = 0
	}
	return &Manager{
		pipeline: pipeline,
		strategy: strategy,
		props:    props,
		opts:     opts,
		log:      logging.FromContext(ctx).With().Str("component", "drag-manager").Logger(),
	}
}

// AddListener registers a gesture listener.
func (m *Manager) AddListener(l Listener) {
	if l == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

// State returns the gesture state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Operation returns the gesture in progress, or nil.
func (m *Manager) Operation() *entity.DragOperation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.op
}

// Threshold returns the drag distance for a dockable.
func (m *Manager) Threshold(d *entity.Dockable) float64 {
	if m.props != nil && d != nil {
		if t := m.props.DragThreshold(d.ID); t != entity.Unspecified && t >= 0 {
			return t
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opts.DragThreshold
}

// SetDefaultThreshold replaces the drag distance used by dockables without
// their own threshold. Negative values are treated as zero.
func (m *Manager) SetDefaultThreshold(threshold float64) {
	if threshold < 0 {
		threshold = 0
	}
	m.mu.Lock()
	m.opts.DragThreshold = threshold
	m.mu.Unlock()
}

// Press arms a gesture on dockable d. It reports whether the gesture was armed;
// a listener consuming the drag-started event cancels it.
func (m *Manager) Press(ctx context.Context, d *entity.Dockable, source port.DragSource, evt port.MouseEvent) bool {
	if d == nil || source == nil {
		return false
	}

	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return false
	}
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	offset := evt.Local
	if d.Floating {
		offset = evt.Screen.Sub(d.FloatingBounds.Origin())
	}
	op := entity.NewDragOperation(d, evt.Screen, offset)

	started := &Event{Kind: EventDragStarted, Operation: op}
	for _, l := range listeners {
		l(ctx, started)
	}
	if started.Consumed() {
		m.log.Debug().Str("dockable_id", string(d.ID)).Msg("drag canceled by listener")
		return false
	}

	m.mu.Lock()
	m.state = StateArmed
	m.op = op
	m.source = source
	m.mu.Unlock()
	return true
}

// MouseDragged handles pointer motion on a drag source.
func (m *Manager) MouseDragged(ctx context.Context, evt port.MouseEvent) {
	m.mu.Lock()
	state, op, source := m.state, m.op, m.source
	m.mu.Unlock()

	switch state {
	case StateArmed:
		dx := float64(evt.Screen.X - op.Origin.X)
		dy := float64(evt.Screen.Y - op.Origin.Y)
		if math.Hypot(dx, dy) < m.Threshold(op.Source()) {
			return
		}
		m.startDrag(ctx, op, source, evt)
	case StateDragging:
		m.pipeline.ProcessDragEvent(ctx, evt)
	}
}

func (m *Manager) startDrag(ctx context.Context, op *entity.DragOperation, source port.DragSource, evt port.MouseEvent) {
	if err := m.pipeline.Open(ctx, op); err != nil {
		m.log.Warn().Err(err).Str("dockable_id", string(op.Source().ID)).Msg("failed to open drag pipeline")
		m.reset()
		return
	}

	cached := append([]port.MotionListener(nil), source.MotionListeners()...)
	for _, l := range cached {
		source.RemoveMotionListener(l)
	}
	source.AddMotionListener(m.pipeline.Listener())

	m.mu.Lock()
	m.cached = cached
	m.state = StateDragging
	m.mu.Unlock()

	m.log.Debug().
		Str("dockable_id", string(op.Source().ID)).
		Int("cached_listeners", len(cached)).
		Msg("drag started")

	m.pipeline.ProcessDragEvent(ctx, evt)
}

// Release ends the gesture. A drag with a resolved target that no listener
// vetoed is committed through the docking strategy; the pipeline is closed
// whatever the outcome.
func (m *Manager) Release(ctx context.Context, evt port.MouseEvent) error {
	m.mu.Lock()
	state, op, source, cached := m.state, m.op, m.source, m.cached
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	switch state {
	case StateIdle:
		return nil
	case StateArmed:
		m.reset()
		return nil
	}

	defer func() {
		if err := m.pipeline.Close(ctx); err != nil {
			m.log.Warn().Err(err).Msg("failed to close drag pipeline")
		}
		m.reset()
	}()

	source.RemoveMotionListener(m.pipeline.Listener())
	for _, l := range cached {
		source.AddMotionListener(l)
	}

	// The last move may still be queued; resolve the target at the release point.
	if err := m.pipeline.onUIThread(ctx, func(ctx context.Context) {
		m.pipeline.processDragEvent(ctx, evt)
	}); err != nil {
		return err
	}

	dropped := &Event{Kind: EventDropStarted, Operation: op}
	for _, l := range listeners {
		l(ctx, dropped)
	}
	if dropped.Consumed() {
		m.log.Debug().Str("dockable_id", string(op.Source().ID)).Msg("drop vetoed by listener")
		return nil
	}
	if !op.HasTarget() {
		m.log.Debug().Str("dockable_id", string(op.Source().ID)).Msg("released outside any drop target")
		return nil
	}

	m.log.Debug().
		Str("dockable_id", string(op.Source().ID)).
		Str("window_id", string(op.TargetWindow)).
		Str("region", op.TargetRegion.String()).
		Msg("committing drop")
	return m.strategy.Dock(logging.WithWindowID(ctx, string(op.TargetWindow)), op.Source(), op.TargetPort, op.TargetRegion, op)
}

// Cancel abandons the gesture without docking. Cached listeners are restored.
func (m *Manager) Cancel(ctx context.Context) {
	m.mu.Lock()
	state, op, source, cached := m.state, m.op, m.source, m.cached
	m.mu.Unlock()

	if state == StateIdle {
		return
	}
	defer m.reset()
	if state != StateDragging {
		return
	}

	source.RemoveMotionListener(m.pipeline.Listener())
	for _, l := range cached {
		source.AddMotionListener(l)
	}
	if err := m.pipeline.Close(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to close drag pipeline")
	}
	m.log.Debug().Str("dockable_id", string(op.Source().ID)).Msg("drag canceled")
}

func (m *Manager) reset() {
	m.mu.Lock()
	m.state = StateIdle
	m.op = nil
	m.source = nil
	m.cached = nil
	m.mu.Unlock()
}
