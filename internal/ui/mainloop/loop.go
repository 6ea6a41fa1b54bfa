// Package mainloop provides the single-threaded UI task queue.
//
// All docking state is mutated by tasks running on the loop. Work submitted from
// elsewhere is either handed over synchronously (InvokeAndWait) or queued for the
// next idle cycle (InvokeLater / Post).
package mainloop

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/docking/internal/application/port"
)

// ErrLoopStopped is returned when waiting on a loop that was stopped.
var ErrLoopStopped = errors.New("main loop stopped")

type loopKey struct{}

// Loop is a FIFO task queue drained by whichever goroutine acts as the UI thread.
type Loop struct {
	mu      sync.Mutex
	queue   []func(context.Context)
	wake    chan struct{}
	stopped bool
}

var _ port.Dispatcher = (*Loop)(nil)

// New creates an idle loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// WithLoop marks ctx as belonging to work running on l.
func (l *Loop) WithLoop(ctx context.Context) context.Context {
	return context.WithValue(ctx, loopKey{}, l)
}

// OnUIThread reports whether ctx was handed out by this loop.
func (l *Loop) OnUIThread(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	owner, _ := ctx.Value(loopKey{}).(*Loop)
	return owner == l
}

// Post queues fn for the next idle cycle.
func (l *Loop) Post(fn func(context.Context)) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// InvokeLater is Post under the port.Dispatcher name.
func (l *Loop) InvokeLater(fn func(context.Context)) {
	l.Post(fn)
}

// InvokeAndWait runs fn on the loop and waits for it to finish.
// If ctx already belongs to the loop, fn runs inline.
func (l *Loop) InvokeAndWait(ctx context.Context, fn func(context.Context)) error {
	if fn == nil {
		return nil
	}
	if l.OnUIThread(ctx) {
		fn(ctx)
		return nil
	}

	done := make(chan struct{})
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrLoopStopped
	}
	l.mu.Unlock()

	l.Post(func(loopCtx context.Context) {
		defer close(done)
		fn(loopCtx)
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain runs the tasks queued before the call and returns how many ran.
// Tasks queued while draining wait for the next cycle.
func (l *Loop) Drain(ctx context.Context) int {
	l.mu.Lock()
	tasks := l.queue
	l.queue = nil
	l.mu.Unlock()

	loopCtx := ctx
	if !l.OnUIThread(ctx) {
		loopCtx = l.WithLoop(ctx)
	}
	for _, task := range tasks {
		task(loopCtx)
	}
	return len(tasks)
}

// Flush drains until the queue is empty or maxCycles cycles have run.
func (l *Loop) Flush(ctx context.Context, maxCycles int) int {
	total := 0
	for i := 0; i < maxCycles; i++ {
		n := l.Drain(ctx)
		if n == 0 {
			break
		}
		total += n
	}
	return total
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Run drains the queue whenever work arrives until ctx is done.
// The goroutine calling Run becomes the UI thread.
func (l *Loop) Run(ctx context.Context) error {
	loopCtx := l.WithLoop(ctx)
	for {
		l.Drain(loopCtx)
		select {
		case <-ctx.Done():
			l.stop()
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Pump calls wake whenever work is queued, until ctx is done. It is for
// programs whose UI thread is owned by someone else and drains with Drain.
func (l *Loop) Pump(ctx context.Context, wake func()) error {
	for {
		select {
		case <-ctx.Done():
			l.stop()
			return ctx.Err()
		case <-l.wake:
			if wake != nil {
				wake()
			}
		}
	}
}

func (l *Loop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
	l.queue = nil
}
