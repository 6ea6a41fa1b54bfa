// Package term adapts the docking engine to a character-cell terminal:
// windows are tiled columns of the screen and mouse cells are coordinates.
package term

import (
	"context"
	"sync"

	"github.com/bnema/docking/internal/application/port"
)

// Source is the drag source of one terminal window. Mouse motion while a
// button is held is delivered to its listeners in registration order.
type Source struct {
	mu        sync.Mutex
	listeners []port.MotionListener
}

var _ port.DragSource = (*Source)(nil)

// MotionListeners returns a snapshot of the listeners.
func (s *Source) MotionListeners() []port.MotionListener {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]port.MotionListener(nil), s.listeners...)
}

func (s *Source) AddMotionListener(l port.MotionListener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// RemoveMotionListener removes the first listener identical to l.
func (s *Source) RemoveMotionListener(l port.MotionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers a motion event. Listeners added or removed by a listener
// take effect on the next event.
func (s *Source) Dispatch(ctx context.Context, evt port.MouseEvent) {
	for _, l := range s.MotionListeners() {
		l.MouseDragged(ctx, evt)
	}
}
