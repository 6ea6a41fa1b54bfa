// Package window tracks the top-level windows that host docking roots.
package window

import (
	"sync"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/domain/entity"
)

const maxTitleLen = 255

// Window is a top-level window embedding one root port.
//
// The toolkit owns drawing; Window keeps the geometry and overlay state the
// docking engine reads.
type Window struct {
	id   entity.WindowID
	root *entity.Port

	mu      sync.RWMutex
	title   string
	bounds  entity.Rect
	visible bool
	closed  bool
	overlay port.Overlay
}

var _ port.Window = (*Window)(nil)

// New creates a hidden window at bounds embedding root. root may be nil for
// windows that are not drop targets.
func New(id entity.WindowID, title string, bounds entity.Rect, root *entity.Port) *Window {
	w := &Window{id: id, root: root}
	w.SetTitle(title)
	w.SetBounds(bounds)
	return w
}

func (w *Window) ID() entity.WindowID { return w.id }

// RootPort returns the embedded root port.
func (w *Window) RootPort() *entity.Port { return w.root }

func (w *Window) Title() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.title
}

// SetTitle updates the title, capped at 255 characters.
func (w *Window) SetTitle(title string) {
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
}

func (w *Window) Bounds() entity.Rect {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.bounds
}

// SetBounds moves or resizes the window and lays out its port tree in
// window-local coordinates.
func (w *Window) SetBounds(bounds entity.Rect) {
	w.mu.Lock()
	w.bounds = bounds
	w.mu.Unlock()
	w.root.Layout(entity.Rect{W: bounds.W, H: bounds.H})
}

func (w *Window) Visible() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.visible && !w.closed
}

// Show makes the window visible.
func (w *Window) Show() { w.setVisible(true) }

// Hide hides the window without closing it.
func (w *Window) Hide() { w.setVisible(false) }

func (w *Window) setVisible(v bool) {
	w.mu.Lock()
	w.visible = v
	w.mu.Unlock()
}

func (w *Window) Overlay() port.Overlay {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.overlay
}

// SetOverlay installs o. It fails once the window is closed.
func (w *Window) SetOverlay(o port.Overlay) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWindowClosed
	}
	w.overlay = o
	return nil
}

// Repaint asks the installed overlay to redraw.
func (w *Window) Repaint() {
	if o := w.Overlay(); o != nil {
		o.Repaint()
	}
}

func (w *Window) markClosed() {
	w.mu.Lock()
	w.closed = true
	w.overlay = nil
	w.mu.Unlock()
}

// WindowError represents a window-related error.
type WindowError struct {
	Message string
}

func (e WindowError) Error() string {
	return e.Message
}

// Error constants.
var (
	ErrWindowClosed     = WindowError{Message: "window is closed"}
	ErrDuplicateWindow  = WindowError{Message: "window already registered"}
	ErrWindowNotFound   = WindowError{Message: "window not found"}
	ErrInvalidWindowArg = WindowError{Message: "window is nil or has no id"}
)
