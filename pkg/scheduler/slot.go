package scheduler

import (
	"time"

	"github.com/go-drift/headless/pkg/errors"
)

// Slot holds at most one pending timer for a single role such as "clear
// pressed" or "remove overlay". Scheduling cancels the previous timer, so
// only the most recent callback can ever run. A Slot belongs to the UI
// thread and is not safe for concurrent use.
type Slot struct {
	sched    Scheduler
	op       string
	handle   Handle
	gen      uint64
	disposed bool
}

// NewSlot returns a Slot that schedules on s. op names the role in
// reported panics.
func NewSlot(s Scheduler, op string) *Slot {
	return &Slot{sched: s, op: op}
}

// Schedule cancels any pending callback and schedules fn after d.
// It is a no-op once the slot is disposed.
func (s *Slot) Schedule(d time.Duration, fn func()) {
	if s.disposed {
		return
	}
	s.Cancel()
	s.gen++
	gen := s.gen
	s.handle = s.sched.AfterFunc(d, func() {
		if s.disposed || s.gen != gen {
			return
		}
		s.handle = nil
		errors.Guard(s.op, fn)
	})
}

// Cancel drops the pending callback and reports whether one existed.
func (s *Slot) Cancel() bool {
	if s.handle == nil {
		return false
	}
	h := s.handle
	s.handle = nil
	s.gen++
	return h.Cancel()
}

// Pending reports whether a callback is scheduled.
func (s *Slot) Pending() bool {
	return s.handle != nil && s.handle.Active()
}

// Dispose cancels the pending callback; later Schedule calls are ignored
// and late timer callbacks no-op.
func (s *Slot) Dispose() {
	s.Cancel()
	s.disposed = true
}

// Disposed reports whether Dispose was called.
func (s *Slot) Disposed() bool { return s.disposed }

// Group owns several slots so an owner can cancel all of them at once.
type Group struct {
	sched Scheduler
	slots []*Slot
}

// NewGroup returns an empty Group scheduling on s.
func NewGroup(s Scheduler) *Group {
	return &Group{sched: s}
}

// Slot creates a slot owned by the group.
func (g *Group) Slot(op string) *Slot {
	slot := NewSlot(g.sched, op)
	g.slots = append(g.slots, slot)
	return slot
}

// CancelAll cancels every pending callback without disposing the slots.
func (g *Group) CancelAll() {
	for _, s := range g.slots {
		s.Cancel()
	}
}

// Dispose disposes every slot.
func (g *Group) Dispose() {
	for _, s := range g.slots {
		s.Dispose()
	}
}
