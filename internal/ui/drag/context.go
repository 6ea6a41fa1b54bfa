// Package drag tracks drag gestures across top-level windows and turns drops
// into docking requests.
package drag

import (
	"errors"
	"sync"

	"github.com/bnema/docking/internal/domain/entity"
)

// ErrDragInProgress is returned when a second gesture tries to start while one is active.
var ErrDragInProgress = errors.New("another drag operation is in progress")

// Context holds the single drag operation allowed to be active at a time.
// It is shared by the pipeline and the manager; the lock only makes reads from
// non-UI goroutines atomic.
type Context struct {
	mu      sync.Mutex
	current *entity.DragOperation
}

// NewContext creates an empty drag context.
func NewContext() *Context {
	return &Context{}
}

// Begin makes op the current operation.
func (c *Context) Begin(op *entity.DragOperation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && c.current != op {
		return ErrDragInProgress
	}
	c.current = op
	return nil
}

// Current returns the active operation, or nil.
func (c *Context) Current() *entity.DragOperation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Clear forgets the active operation.
func (c *Context) Clear() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}
