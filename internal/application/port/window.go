package port

import "github.com/bnema/docking/internal/domain/entity"

// Overlay is a transparent layer installed over a window's content.
type Overlay interface {
	// Repaint requests the overlay be redrawn on the next frame.
	Repaint()
}

// Window is a top-level window that can host a drag overlay.
type Window interface {
	ID() entity.WindowID
	// Bounds is the window's position and size in screen coordinates.
	Bounds() entity.Rect
	Visible() bool
	// RootPort returns the root docking port embedded in the window, or nil.
	RootPort() *entity.Port
	// Overlay returns the currently installed overlay, possibly nil.
	Overlay() Overlay
	// SetOverlay installs o, replacing the current overlay.
	SetOverlay(o Overlay) error
}

// WindowEnumerator lists top-level windows, front-most first.
type WindowEnumerator interface {
	VisibleWindows() []Window
}
