package term

import (
	"errors"
	"sync"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/ui/window"
)

// ErrNoRoot is returned when adding a frame without a root port.
var ErrNoRoot = errors.New("frame needs a root port")

// Frame is one terminal window and its drag source.
type Frame struct {
	Window *window.Window
	Source *Source
}

// Hit is what lies under a screen cell.
type Hit struct {
	Frame    *Frame
	Port     *entity.Port     // Deepest port under the cell
	Dockable *entity.Dockable // Dockable the cell belongs to, if any
	Tab      int              // Index of the tab label under the cell, or -1
	Local    entity.Point     // Cell relative to the port's origin
}

// Desktop tiles frames side by side across the terminal.
type Desktop struct {
	windows *window.Registry
	motion  port.MotionListener

	mu            sync.RWMutex
	frames        []*Frame
	width, height int
}

// NewDesktop creates an empty desktop. motion, typically the drag manager,
// is registered on every frame's source.
func NewDesktop(windows *window.Registry, motion port.MotionListener) *Desktop {
	return &Desktop{windows: windows, motion: motion}
}

// Add registers and shows a new frame to the right of the existing ones.
func (d *Desktop) Add(id entity.WindowID, title string, root *entity.Port) (*Frame, error) {
	if root == nil {
		return nil, ErrNoRoot
	}
	w := window.New(id, title, entity.Rect{}, root)
	if err := d.windows.Register(w); err != nil {
		return nil, err
	}
	w.Show()

	f := &Frame{Window: w, Source: &Source{}}
	if d.motion != nil {
		f.Source.AddMotionListener(d.motion)
	}

	d.mu.Lock()
	d.frames = append(d.frames, f)
	d.mu.Unlock()
	d.retile()
	return f, nil
}

// Remove drops a frame after its window was unregistered.
func (d *Desktop) Remove(id entity.WindowID) {
	d.mu.Lock()
	for i, f := range d.frames {
		if f.Window.ID() == id {
			d.frames = append(d.frames[:i], d.frames[i+1:]...)
			break
		}
	}
	d.mu.Unlock()
	d.retile()
}

// Frames returns the frames from left to right.
func (d *Desktop) Frames() []*Frame {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*Frame(nil), d.frames...)
}

// Frame returns the frame of a window, or nil.
func (d *Desktop) Frame(id entity.WindowID) *Frame {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, f := range d.frames {
		if f.Window.ID() == id {
			return f
		}
	}
	return nil
}

// Size returns the area the frames are tiled in.
func (d *Desktop) Size() (width, height int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.width, d.height
}

// Resize retiles the frames over a width x height cell area.
func (d *Desktop) Resize(width, height int) {
	d.mu.Lock()
	d.width, d.height = max(width, 0), max(height, 0)
	d.mu.Unlock()
	d.retile()
}

// Relayout re-lays-out every frame's port tree at its current size.
func (d *Desktop) Relayout() {
	for _, f := range d.Frames() {
		f.Window.SetBounds(f.Window.Bounds())
	}
}

func (d *Desktop) retile() {
	d.mu.RLock()
	frames := append([]*Frame(nil), d.frames...)
	width, height := d.width, d.height
	d.mu.RUnlock()

	n := len(frames)
	if n == 0 {
		return
	}
	x := 0
	for i, f := range frames {
		// The last frame takes the remainder.
		w := width / n
		if i == n-1 {
			w = width - x
		}
		f.Window.SetBounds(entity.Rect{X: x, Y: 0, W: w, H: height})
		x += w
	}
}

// HitTest resolves what lies under a screen cell.
func (d *Desktop) HitTest(pt entity.Point) (Hit, bool) {
	w := d.windows.WindowAt(pt)
	if w == nil {
		return Hit{}, false
	}
	f := d.Frame(w.ID())
	if f == nil {
		return Hit{}, false
	}

	hit := Hit{Frame: f, Tab: -1}
	local := pt.Sub(w.Bounds().Origin())
	p := w.RootPort().PortAt(local)
	if p == nil {
		return hit, true
	}
	hit.Port = p
	hit.Local = local.Sub(p.Bounds.Origin())
	hit.Dockable = p.ActiveDockable()

	if p.Kind == entity.PortTabbed && hit.Local.Y == 0 {
		for i, s := range tabSpans(p) {
			if hit.Local.X >= s.start && hit.Local.X < s.end {
				hit.Tab = i
				hit.Dockable = p.Tabs[i]
				break
			}
		}
	}
	return hit, true
}

// span is a half-open column range relative to a port's left edge.
type span struct {
	start, end int
}

// tabSpans returns where each tab label of a tabbed port is drawn on its top border.
func tabSpans(p *entity.Port) []span {
	spans := make([]span, 0, len(p.Tabs))
	x := 1
	for _, d := range p.Tabs {
		n := len([]rune(tabLabel(d)))
		spans = append(spans, span{start: x, end: x + n})
		x += n
	}
	return spans
}

func tabLabel(d *entity.Dockable) string {
	return " " + d.Title + " "
}
