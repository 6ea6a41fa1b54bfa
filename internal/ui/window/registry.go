package window

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/logging"
)

// CloseFunc is called after a window is unregistered.
type CloseFunc func(ctx context.Context, w *Window)

// Registry keeps windows in stacking order and registers their root ports
// with the docking registry.
type Registry struct {
	ports  *entity.Registry
	logger zerolog.Logger

	mu      sync.RWMutex
	order   []*Window // front-most first
	byID    map[entity.WindowID]*Window
	onClose []CloseFunc
}

var _ port.WindowEnumerator = (*Registry)(nil)

// NewRegistry creates an empty registry. ports may be nil when the windows'
// roots are managed elsewhere.
func NewRegistry(ctx context.Context, ports *entity.Registry) *Registry {
	return &Registry{
		ports:  ports,
		logger: logging.FromContext(ctx).With().Str("component", "window-registry").Logger(),
		byID:   make(map[entity.WindowID]*Window),
	}
}

// OnClose registers a callback fired when a window is unregistered.
func (r *Registry) OnClose(fn CloseFunc) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.onClose = append(r.onClose, fn)
	r.mu.Unlock()
}

// Register adds w on top of the stack.
func (r *Registry) Register(w *Window) error {
	if w == nil || w.ID() == "" {
		return ErrInvalidWindowArg
	}

	r.mu.Lock()
	if _, exists := r.byID[w.ID()]; exists {
		r.mu.Unlock()
		return ErrDuplicateWindow
	}
	r.byID[w.ID()] = w
	r.order = append([]*Window{w}, r.order...)
	r.mu.Unlock()

	if r.ports != nil && w.RootPort() != nil {
		r.ports.RegisterRoot(w.RootPort())
	}

	r.logger.Debug().
		Str("window_id", string(w.ID())).
		Str("bounds", w.Bounds().String()).
		Msg("window registered")
	return nil
}

// Unregister closes and removes a window, then notifies close callbacks.
func (r *Registry) Unregister(ctx context.Context, id entity.WindowID) error {
	r.mu.Lock()
	w, exists := r.byID[id]
	if !exists {
		r.mu.Unlock()
		return ErrWindowNotFound
	}
	delete(r.byID, id)
	r.order = remove(r.order, w)
	callbacks := append([]CloseFunc(nil), r.onClose...)
	r.mu.Unlock()

	w.markClosed()
	if r.ports != nil && w.RootPort() != nil {
		r.ports.UnregisterRoot(w.RootPort().ID)
	}

	for _, fn := range callbacks {
		fn(ctx, w)
	}

	r.logger.Debug().Str("window_id", string(id)).Msg("window unregistered")
	return nil
}

// Raise moves a window to the front.
func (r *Registry) Raise(id entity.WindowID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, exists := r.byID[id]
	if !exists {
		return ErrWindowNotFound
	}
	r.order = append([]*Window{w}, remove(r.order, w)...)
	return nil
}

// Get returns a window by id, or nil.
func (r *Registry) Get(id entity.WindowID) *Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// Windows returns every registered window, front-most first.
func (r *Registry) Windows() []*Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Window(nil), r.order...)
}

// VisibleWindows returns the visible windows, front-most first.
func (r *Registry) VisibleWindows() []port.Window {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]port.Window, 0, len(r.order))
	for _, w := range r.order {
		if w.Visible() {
			out = append(out, w)
		}
	}
	return out
}

// WindowAt returns the front-most visible window containing pt, or nil.
func (r *Registry) WindowAt(pt entity.Point) *Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.order {
		if w.Visible() && w.Bounds().Contains(pt) {
			return w
		}
	}
	return nil
}

func remove(ws []*Window, w *Window) []*Window {
	out := ws[:0]
	for _, x := range ws {
		if x != w {
			out = append(out, x)
		}
	}
	return out
}
