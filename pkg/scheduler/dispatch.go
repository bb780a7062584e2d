package scheduler

import (
	stderrors "errors"
	"sync"
)

// ErrNoDispatcher is reported when a timer expires with no way to reach
// the UI thread.
var ErrNoDispatcher = stderrors.New("no UI dispatcher registered")

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the function used to schedule callbacks on the UI
// thread. Hosts call it once during startup; nil unregisters.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns false if no dispatch function is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// Queue collects callbacks posted from any goroutine until the UI thread
// drains them.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	wake    func()
}

// NewQueue returns a Queue. wake, if non-nil, is called after every Post
// so the host loop knows to call Drain.
func NewQueue(wake func()) *Queue {
	return &Queue{wake: wake}
}

// Post appends callback. Safe for concurrent use.
func (q *Queue) Post(callback func()) {
	if callback == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, callback)
	wake := q.wake
	q.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// Len returns the number of queued callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs every queued callback in post order on the calling goroutine
// and returns how many ran. Callbacks posted while draining run in the
// next Drain.
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, cb := range batch {
		cb()
	}
	return len(batch)
}
