package port

import "context"

// Dispatcher hands work to the single UI thread.
// Code already running on the UI thread receives a context for which OnUIThread is true.
type Dispatcher interface {
	// OnUIThread reports whether ctx belongs to work running on the UI thread.
	OnUIThread(ctx context.Context) bool
	// InvokeAndWait runs fn on the UI thread and blocks until it returns or ctx is done.
	InvokeAndWait(ctx context.Context, fn func(context.Context)) error
	// InvokeLater queues fn for the next idle cycle.
	InvokeLater(fn func(context.Context))
}
