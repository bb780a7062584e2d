// Package scheduler provides cancellable timers whose callbacks run on the
// UI thread, and Slot, which keeps at most one pending timer per role.
package scheduler

import (
	"sync/atomic"
	"time"

	"github.com/go-drift/headless/pkg/errors"
)

// Handle controls one scheduled callback.
type Handle interface {
	// Cancel prevents the callback from running. It reports whether the
	// callback was still pending. Cancelling twice is a no-op.
	Cancel() bool
	// Active reports whether the callback is still pending.
	Active() bool
}

// Scheduler runs callbacks after a delay on the UI thread.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
	Now() time.Time
}

const (
	timerPending int32 = iota
	timerFired
	timerCancelled
)

type realTimer struct {
	state atomic.Int32
	timer *time.Timer
}

func (t *realTimer) Cancel() bool {
	if !t.state.CompareAndSwap(timerPending, timerCancelled) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

func (t *realTimer) Active() bool {
	return t.state.Load() == timerPending
}

// Real is a Scheduler backed by Go timers. Expired timers hand their
// callback to a dispatch function, which must run it on the UI thread.
type Real struct {
	dispatch func(func())
}

// NewReal returns a Real scheduler that hands callbacks to dispatch.
// A nil dispatch uses the function registered with RegisterDispatch.
func NewReal(dispatch func(func())) *Real {
	return &Real{dispatch: dispatch}
}

// AfterFunc schedules fn to run after d.
func (r *Real) AfterFunc(d time.Duration, fn func()) Handle {
	t := &realTimer{}
	t.timer = time.AfterFunc(d, func() {
		run := func() {
			// Cancel may have won the race while the callback was queued.
			if t.state.CompareAndSwap(timerPending, timerFired) {
				defer errors.Recover("scheduler.Real.AfterFunc")
				fn()
			}
		}
		if r.dispatch != nil {
			r.dispatch(run)
			return
		}
		if !Dispatch(run) {
			errors.Report(errors.New("scheduler.Real.AfterFunc", errors.KindTimer, ErrNoDispatcher))
			t.state.Store(timerCancelled)
		}
	})
	return t
}

// Now returns the wall-clock time.
func (r *Real) Now() time.Time { return time.Now() }
