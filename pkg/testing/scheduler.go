package testing

import (
	"sort"
	"time"

	"github.com/go-drift/headless/pkg/scheduler"
)

type fakeTimer struct {
	deadline time.Time
	seq      uint64
	fn       func()
	active   bool
}

func (t *fakeTimer) Cancel() bool {
	if !t.active {
		return false
	}
	t.active = false
	return true
}

func (t *fakeTimer) Active() bool { return t.active }

// FakeScheduler is a scheduler.Scheduler driven by virtual time. Timers
// fire only from Advance, on the calling goroutine, in deadline order;
// timers sharing a deadline fire in the order they were scheduled.
type FakeScheduler struct {
	Clock  *FakeClock
	timers []*fakeTimer
	seq    uint64
	fired  int
}

var _ scheduler.Scheduler = (*FakeScheduler)(nil)

// NewFakeScheduler returns a FakeScheduler with a fresh FakeClock.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{Clock: NewFakeClock()}
}

// Now returns the virtual time.
func (s *FakeScheduler) Now() time.Time { return s.Clock.Now() }

// AfterFunc schedules fn at Now()+d.
func (s *FakeScheduler) AfterFunc(d time.Duration, fn func()) scheduler.Handle {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &fakeTimer{deadline: s.Now().Add(d), seq: s.seq, fn: fn, active: true}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves virtual time forward by d, firing every timer that
// becomes due. The clock reads each timer's deadline while it runs.
// Timers scheduled by a firing callback also fire if they fall within
// the window.
func (s *FakeScheduler) Advance(d time.Duration) {
	target := s.Now().Add(d)
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		next.active = false
		s.Clock.Set(next.deadline)
		s.fired++
		next.fn()
	}
	s.Clock.Set(target)
	s.compact()
}

// RunAll fires every pending timer, including ones scheduled while
// running, and returns how many fired. It stops after limit timers to
// guard against self-rescheduling loops.
func (s *FakeScheduler) RunAll(limit int) int {
	n := 0
	for n < limit {
		next := s.nextDue(time.Time{})
		if next == nil {
			break
		}
		next.active = false
		if next.deadline.After(s.Now()) {
			s.Clock.Set(next.deadline)
		}
		s.fired++
		n++
		next.fn()
	}
	s.compact()
	return n
}

// nextDue returns the earliest active timer due at or before target. A
// zero target means no limit.
func (s *FakeScheduler) nextDue(target time.Time) *fakeTimer {
	var best *fakeTimer
	for _, t := range s.timers {
		if !t.active {
			continue
		}
		if !target.IsZero() && t.deadline.After(target) {
			continue
		}
		if best == nil || t.deadline.Before(best.deadline) ||
			(t.deadline.Equal(best.deadline) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *FakeScheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if t.active {
			live = append(live, t)
		}
	}
	s.timers = live
}

// Pending returns the number of active timers.
func (s *FakeScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if t.active {
			n++
		}
	}
	return n
}

// Fired returns how many timers have fired since creation.
func (s *FakeScheduler) Fired() int { return s.fired }

// Deadlines returns the offsets from Now of every active timer, sorted.
func (s *FakeScheduler) Deadlines() []time.Duration {
	now := s.Now()
	var out []time.Duration
	for _, t := range s.timers {
		if t.active {
			out = append(out, t.deadline.Sub(now))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
