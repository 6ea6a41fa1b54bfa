package drag

import (
	"sync"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/domain/entity"
)

// Hover is what an overlay currently highlights.
type Hover struct {
	Port    *entity.Port
	Region  entity.Region
	Preview entity.Rect // Window-local drop preview; empty when nothing would dock
}

// Overlay is the transparent layer the pipeline installs over a window for the
// duration of a drag. Toolkit adapters draw it from Hover.
type Overlay struct {
	window    port.Window
	onRepaint func(*Overlay)

	mu     sync.Mutex
	active bool
	hover  Hover
}

var _ port.Overlay = (*Overlay)(nil)

func newOverlay(w port.Window, onRepaint func(*Overlay)) *Overlay {
	return &Overlay{window: w, onRepaint: onRepaint, hover: Hover{Region: entity.RegionUnknown}}
}

// Window returns the window the overlay covers.
func (o *Overlay) Window() port.Window {
	return o.window
}

// Active reports whether the pointer is over this overlay's window.
func (o *Overlay) Active() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// Hover returns the current highlight.
func (o *Overlay) Hover() Hover {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.hover
}

// Repaint asks the toolkit to redraw the overlay.
func (o *Overlay) Repaint() {
	if o.onRepaint != nil {
		o.onRepaint(o)
	}
}

func (o *Overlay) activate() {
	o.mu.Lock()
	o.active = true
	o.hover = Hover{Region: entity.RegionUnknown}
	o.mu.Unlock()
}

func (o *Overlay) setHover(h Hover) {
	o.mu.Lock()
	o.hover = h
	o.mu.Unlock()
}

func (o *Overlay) clear() {
	o.mu.Lock()
	o.active = false
	o.hover = Hover{Region: entity.RegionUnknown}
	o.mu.Unlock()
}
