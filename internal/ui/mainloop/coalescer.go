package mainloop

import (
	"context"
	"sync"
)

// Coalescer merges bursts of same-key main-loop tasks.
// Only the latest callback for a key runs, once, on the next idle cycle.
type Coalescer struct {
	mu        sync.Mutex
	pending   map[string]bool
	callbacks map[string]func(context.Context)
	post      func(func(context.Context))
	destroyed bool
}

func NewCoalescer(post func(func(context.Context))) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		pending:   make(map[string]bool),
		callbacks: make(map[string]func(context.Context)),
		post:      post,
	}
}

func (c *Coalescer) Post(key string, fn func(context.Context)) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.callbacks[key] = fn
	if c.pending[key] {
		c.mu.Unlock()
		return
	}
	c.pending[key] = true
	post := c.post
	c.mu.Unlock()

	post(func(ctx context.Context) {
		c.mu.Lock()
		if c.destroyed {
			delete(c.pending, key)
			delete(c.callbacks, key)
			c.mu.Unlock()
			return
		}
		fn := c.callbacks[key]
		delete(c.pending, key)
		delete(c.callbacks, key)
		c.mu.Unlock()

		if fn != nil {
			fn(ctx)
		}
	})
}

// Cancel drops pending work for key.
func (c *Coalescer) Cancel(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.callbacks, key)
}

func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.pending = map[string]bool{}
	c.callbacks = map[string]func(context.Context){}
	c.mu.Unlock()
}
