package drag

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/domain/region"
	"github.com/bnema/docking/internal/logging"
	"github.com/bnema/docking/internal/ui/mainloop"
)

const moveKey = "drag-move"

// ErrNilOperation is returned when opening the pipeline without an operation.
var ErrNilOperation = errors.New("drag operation is nil")

// PipelineOptions tunes a Pipeline.
type PipelineOptions struct {
	// PreviewSentinel is the size of drop-preview windows. Windows of exactly
	// this size never get an overlay. A zero size disables the check.
	PreviewSentinel entity.Rect
	// OnRepaint is called whenever an overlay's hover state changes.
	OnRepaint func(*Overlay)
}

// windowEntry caches what the pipeline needs about one window while open.
type windowEntry struct {
	window   port.Window
	bounds   entity.Rect
	overlay  *Overlay
	original port.Overlay
}

// Pipeline installs overlays over every visible window while a drag is in
// progress and keeps the operation's drop target up to date.
//
// All state changes run on the UI thread. Open and Close hand over
// synchronously; pointer moves are coalesced onto the next idle cycle.
type Pipeline struct {
	windows    port.WindowEnumerator
	dispatcher port.Dispatcher
	resolver   *region.Resolver
	props      port.PropertyStore
	dragCtx    *Context
	opts       PipelineOptions
	coalescer  *mainloop.Coalescer
	listener   *pipelineListener
	log        zerolog.Logger

	mu      sync.Mutex
	isOpen  bool
	op      *entity.DragOperation
	entries []*windowEntry
	active  *windowEntry
	// stale holds overlays of an abandoned operation still to be removed.
	stale []*windowEntry
}

// NewPipeline creates a closed pipeline. props may be nil.
func NewPipeline(
	ctx context.Context,
	windows port.WindowEnumerator,
	dispatcher port.Dispatcher,
	resolver *region.Resolver,
	props port.PropertyStore,
	dragCtx *Context,
	opts PipelineOptions,
) *Pipeline {
	p := &Pipeline{
		windows:    windows,
		dispatcher: dispatcher,
		resolver:   resolver,
		props:      props,
		dragCtx:    dragCtx,
		opts:       opts,
		coalescer:  mainloop.NewCoalescer(dispatcher.InvokeLater),
		log:        logging.FromContext(ctx).With().Str("component", "drag-pipeline").Logger(),
	}
	p.listener = &pipelineListener{p: p}
	return p
}

// Listener returns the motion listener that feeds pointer moves into the
// pipeline. The same value is returned on every call.
func (p *Pipeline) Listener() port.MotionListener {
	return p.listener
}

// IsOpen reports whether a drag is being tracked.
func (p *Pipeline) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isOpen
}

// Overlays returns the installed overlays, front-most window first.
func (p *Pipeline) Overlays() []*Overlay {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Overlay, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e.overlay)
	}
	return out
}

// ActiveOverlay returns the overlay under the pointer, or nil.
func (p *Pipeline) ActiveOverlay() *Overlay {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return nil
	}
	return p.active.overlay
}

// Open starts tracking op. It blocks until overlays are installed, so the
// next pointer event already sees them.
func (p *Pipeline) Open(ctx context.Context, op *entity.DragOperation) error {
	if op == nil {
		return ErrNilOperation
	}
	var err error
	if waitErr := p.onUIThread(ctx, func(ctx context.Context) {
		p.restoreStale(ctx)
		err = p.open(ctx, op)
	}); waitErr != nil {
		return waitErr
	}
	return err
}

// ProcessDragEvent updates the hover target for a pointer move. Off the UI
// thread the update is deferred and only the latest pending move is applied.
func (p *Pipeline) ProcessDragEvent(ctx context.Context, evt port.MouseEvent) {
	if p.dispatcher.OnUIThread(ctx) {
		p.processDragEvent(ctx, evt)
		return
	}
	p.coalescer.Post(moveKey, func(ctx context.Context) {
		p.processDragEvent(ctx, evt)
	})
}

// Close restores every window's original overlay and forgets the operation.
// Closing a closed pipeline does nothing.
//
// If the hand-off to the UI thread fails the operation is abandoned: the drag
// context is cleared at once and the overlays are removed on the next cycle.
func (p *Pipeline) Close(ctx context.Context) error {
	p.mu.Lock()
	op := p.op
	p.mu.Unlock()
	if op == nil {
		return nil
	}
	err := p.onUIThread(ctx, func(ctx context.Context) {
		p.close(ctx, op)
	})
	if err != nil {
		p.abandon(op)
	}
	return err
}

// WindowClosed drops a window that went away mid-gesture.
func (p *Pipeline) WindowClosed(id entity.WindowID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, e := range p.entries {
		if e.window.ID() != id {
			continue
		}
		if p.active == e {
			p.active = nil
			p.op.ClearTarget()
			p.op.OverWindow = false
		}
		p.entries = append(p.entries[:i], p.entries[i+1:]...)
		p.log.Debug().Str("window_id", string(id)).Msg("window closed during drag")
		return
	}
}

// SetPreviewSentinel replaces the size that marks drop-preview windows. It
// applies from the next Open.
func (p *Pipeline) SetPreviewSentinel(size entity.Rect) {
	p.mu.Lock()
	p.opts.PreviewSentinel = size
	p.mu.Unlock()
}

// Destroy discards pending pointer moves. The pipeline accepts no further
// deferred moves afterwards.
func (p *Pipeline) Destroy() {
	p.coalescer.Destroy()
}

func (p *Pipeline) onUIThread(ctx context.Context, fn func(context.Context)) error {
	if p.dispatcher.OnUIThread(ctx) {
		fn(ctx)
		return nil
	}
	return p.dispatcher.InvokeAndWait(ctx, fn)
}

func (p *Pipeline) open(_ context.Context, op *entity.DragOperation) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isOpen {
		if p.op == op {
			return nil
		}
		return ErrDragInProgress
	}
	if err := p.dragCtx.Begin(op); err != nil {
		return err
	}

	p.entries = p.entries[:0]
	for _, w := range p.windows.VisibleWindows() {
		if w == nil || !w.Visible() || p.isPreviewWindow(w) {
			continue
		}
		entry := &windowEntry{
			window:   w,
			bounds:   w.Bounds(),
			original: w.Overlay(),
		}
		entry.overlay = newOverlay(w, p.opts.OnRepaint)
		if err := safely(func() error { return w.SetOverlay(entry.overlay) }); err != nil {
			p.log.Warn().Err(err).Str("window_id", string(w.ID())).Msg("failed to install drag overlay")
			continue
		}
		p.entries = append(p.entries, entry)
	}

	p.isOpen = true
	p.op = op
	p.active = nil
	p.log.Debug().
		Str("dockable_id", string(op.Source().ID)).
		Int("windows", len(p.entries)).
		Msg("drag pipeline opened")
	return nil
}

func (p *Pipeline) close(_ context.Context, op *entity.DragOperation) {
	p.mu.Lock()
	// A close queued for an earlier operation must not end a newer one.
	if !p.isOpen || p.op != op {
		p.mu.Unlock()
		return
	}
	entries := p.entries
	active := p.active
	p.entries = nil
	p.active = nil
	p.isOpen = false
	p.op = nil
	p.mu.Unlock()

	p.coalescer.Cancel(moveKey)
	if active != nil {
		active.overlay.clear()
	}
	p.restoreOverlays(entries)
	p.dragCtx.Clear()
	p.log.Debug().Int("windows", len(entries)).Msg("drag pipeline closed")
}

// abandon forgets op without touching any window.
func (p *Pipeline) abandon(op *entity.DragOperation) {
	p.mu.Lock()
	if !p.isOpen || p.op != op {
		p.mu.Unlock()
		return
	}
	if p.active != nil {
		p.active.overlay.clear()
	}
	p.stale = append(p.stale, p.entries...)
	p.entries = nil
	p.active = nil
	p.isOpen = false
	p.op = nil
	p.mu.Unlock()

	p.coalescer.Cancel(moveKey)
	p.dragCtx.Clear()
	p.dispatcher.InvokeLater(p.restoreStale)
	p.log.Warn().Str("dockable_id", string(op.Source().ID)).Msg("drag pipeline abandoned")
}

func (p *Pipeline) restoreStale(_ context.Context) {
	p.mu.Lock()
	stale := p.stale
	p.stale = nil
	p.mu.Unlock()
	p.restoreOverlays(stale)
}

func (p *Pipeline) restoreOverlays(entries []*windowEntry) {
	for _, e := range entries {
		if err := safely(func() error { return e.window.SetOverlay(e.original) }); err != nil {
			p.log.Warn().Err(err).Str("window_id", string(e.window.ID())).Msg("failed to restore window overlay")
		}
	}
}

func (p *Pipeline) processDragEvent(_ context.Context, evt port.MouseEvent) {
	p.mu.Lock()
	if !p.isOpen {
		p.mu.Unlock()
		return
	}
	op := p.op
	op.Current = evt.Screen

	prev := p.active
	next := p.entryAt(evt.Screen)
	p.active = next

	var repaint []*Overlay
	switch {
	case next == nil:
		if prev != nil {
			prev.overlay.clear()
			repaint = append(repaint, prev.overlay)
		}
		op.ClearTarget()
		op.OverWindow = false
	case next == prev:
		p.updateHover(next, evt.Screen)
		repaint = append(repaint, next.overlay)
	default:
		if prev != nil {
			prev.overlay.clear()
			repaint = append(repaint, prev.overlay)
		}
		next.overlay.activate()
		p.updateHover(next, evt.Screen)
		repaint = append(repaint, next.overlay)
	}
	p.mu.Unlock()

	for _, o := range repaint {
		if err := safely(func() error { o.Repaint(); return nil }); err != nil {
			p.log.Warn().Err(err).Msg("overlay repaint failed")
		}
	}
}

// entryAt returns the front-most overlaid window containing pt.
func (p *Pipeline) entryAt(pt entity.Point) *windowEntry {
	for _, e := range p.entries {
		if e.bounds.Contains(pt) && e.window.Visible() {
			return e
		}
	}
	return nil
}

// updateHover resolves the drop target under pt for entry's window.
func (p *Pipeline) updateHover(e *windowEntry, pt entity.Point) {
	op := p.op
	op.OverWindow = true

	noTarget := func(hovered *entity.Port) {
		e.overlay.setHover(Hover{Port: hovered, Region: entity.RegionUnknown})
		op.ClearTarget()
	}

	local := pt.Sub(e.bounds.Origin())
	target := e.window.RootPort().PortAt(local)
	if target == nil {
		noTarget(nil)
		return
	}

	src := op.Source()
	switch {
	case target.Kind == entity.PortForeign:
		noTarget(target)
		return
	case target.Kind == entity.PortSingle && target.Dockable == src:
		noTarget(target)
		return
	}

	var anchorID entity.DockableID
	if anchor := target.ActiveDockable(); anchor != nil {
		anchorID = anchor.ID
	}
	t := region.Target{Bounds: target.Bounds, Empty: target.IsEmpty(), Dockable: anchorID}
	r := p.resolver.ResolveRegion(t, local)
	if !r.Valid() || (r == entity.RegionCenter && target.Holds(src)) {
		noTarget(target)
		return
	}
	if p.props != nil && anchorID != "" && p.props.TerritoryBlocked(anchorID, r) {
		noTarget(target)
		return
	}

	preview, _ := p.resolver.ResolveSiblingBounds(t, r)
	e.overlay.setHover(Hover{Port: target, Region: r, Preview: preview})
	op.SetTarget(e.window.ID(), target, r)
}

func (p *Pipeline) isPreviewWindow(w port.Window) bool {
	s := p.opts.PreviewSentinel
	if s.W <= 0 && s.H <= 0 {
		return false
	}
	b := w.Bounds()
	return b.W == s.W && b.H == s.H
}

// pipelineListener replaces the drag source's own motion listeners while a
// gesture is in progress.
type pipelineListener struct {
	p *Pipeline
}

func (l *pipelineListener) MouseDragged(ctx context.Context, evt port.MouseEvent) {
	l.p.ProcessDragEvent(ctx, evt)
}

// safely runs fn, turning a panic into an error.
func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered panic: %v", r)
		}
	}()
	return fn()
}
