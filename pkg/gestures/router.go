// Package gestures routes pointer events to hit-testable targets. It owns
// hit testing, pointer capture, hover enter/exit synthesis and pointer-down
// observers used for outside-tap detection.
package gestures

import (
	"sort"

	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
)

// DownObserver sees every pointer-down before targets do. Returning true
// consumes the event so no target receives it.
type DownObserver func(e input.PointerEvent) bool

type observerEntry struct {
	fn DownObserver
}

type pointerState struct {
	kind     input.PointerKind
	position graphics.Offset
	hovered  []*Target
	captured []*Target
}

// Router dispatches pointer events. It is owned by the UI thread.
type Router struct {
	targets   []*Target
	seq       uint64
	pointers  map[int64]*pointerState
	observers []*observerEntry
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{pointers: make(map[int64]*pointerState)}
}

// NewTarget registers a target with the given bounds on layer 0.
// Later targets sit above earlier ones on the same layer.
func (r *Router) NewTarget(name string, bounds graphics.Rect) *Target {
	r.seq++
	t := &Target{router: r, name: name, seq: r.seq, bounds: bounds}
	r.targets = append(r.targets, t)
	r.sortTargets()
	return t
}

// Targets returns the registered targets, topmost first.
func (r *Router) Targets() []*Target {
	return append([]*Target(nil), r.targets...)
}

func (r *Router) sortTargets() {
	sort.SliceStable(r.targets, func(i, j int) bool {
		a, b := r.targets[i], r.targets[j]
		if a.layer != b.layer {
			return a.layer > b.layer
		}
		return a.seq > b.seq
	})
}

func (r *Router) remove(t *Target) {
	for i, other := range r.targets {
		if other == t {
			r.targets = append(r.targets[:i:i], r.targets[i+1:]...)
			break
		}
	}
	r.forget(t)
}

// forget drops t from every pointer's hover and capture lists.
func (r *Router) forget(t *Target) {
	for _, ps := range r.pointers {
		ps.hovered = without(ps.hovered, t)
		ps.captured = without(ps.captured, t)
	}
}

// HitTest returns the targets under p, topmost first. The walk stops
// after the first target that is not translucent.
func (r *Router) HitTest(p graphics.Offset) []*Target {
	var out []*Target
	for _, t := range r.targets {
		if !t.hits(p) {
			continue
		}
		out = append(out, t)
		if !t.translucent {
			break
		}
	}
	return out
}

// CursorAt returns the cursor hint of the topmost target under p that
// sets one.
func (r *Router) CursorAt(p graphics.Offset) input.Cursor {
	for _, t := range r.HitTest(p) {
		if t.cursor != input.CursorDefault {
			return t.cursor
		}
	}
	return input.CursorDefault
}

// AddDownObserver registers fn and returns a function that removes it.
// Observers registered later run first.
func (r *Router) AddDownObserver(fn DownObserver) func() {
	entry := &observerEntry{fn: fn}
	r.observers = append(r.observers, entry)
	return func() {
		for i, e := range r.observers {
			if e == entry {
				r.observers = append(r.observers[:i:i], r.observers[i+1:]...)
				return
			}
		}
	}
}

// Hovered returns the targets currently hovered by pointerID.
func (r *Router) Hovered(pointerID int64) []*Target {
	if ps := r.pointers[pointerID]; ps != nil {
		return append([]*Target(nil), ps.hovered...)
	}
	return nil
}

// IsCaptured reports whether any pointer is captured by t.
func (r *Router) IsCaptured(t *Target) bool {
	for _, ps := range r.pointers {
		if contains(ps.captured, t) {
			return true
		}
	}
	return false
}

func (r *Router) pointer(e input.PointerEvent) *pointerState {
	ps := r.pointers[e.PointerID]
	if ps == nil {
		ps = &pointerState{kind: e.Kind}
		r.pointers[e.PointerID] = ps
	}
	ps.kind = e.Kind
	return ps
}

// Dispatch routes one pointer event. Panics raised by handlers are
// recovered and reported.
func (r *Router) Dispatch(e input.PointerEvent) {
	defer errors.Recover("gestures.Router.Dispatch")

	ps := r.pointer(e)
	ps.position = e.Position

	switch e.Phase {
	case input.PointerDown:
		r.updateHover(ps, e, false)
		if stale := ps.captured; len(stale) > 0 {
			ps.captured = nil
			for _, t := range stale {
				t.deliver(Event{PointerEvent: e, Type: EventCancel})
			}
		}
		if r.observe(e) {
			return
		}
		ps.captured = r.HitTest(e.Position)
		for _, t := range ps.captured {
			t.deliver(Event{PointerEvent: e, Type: EventDown})
		}
	case input.PointerMove:
		r.updateHover(ps, e, false)
		for _, t := range append([]*Target(nil), ps.captured...) {
			t.deliver(Event{PointerEvent: e, Type: EventMove})
		}
	case input.PointerHover:
		r.updateHover(ps, e, false)
		for _, t := range append([]*Target(nil), ps.hovered...) {
			t.deliver(Event{PointerEvent: e, Type: EventHover})
		}
	case input.PointerUp, input.PointerCancel:
		typ := EventUp
		if e.Phase == input.PointerCancel {
			typ = EventCancel
		}
		captured := ps.captured
		ps.captured = nil
		for _, t := range captured {
			t.deliver(Event{PointerEvent: e, Type: typ})
		}
		if !e.Kind.SupportsHover() {
			delete(r.pointers, e.PointerID)
		}
	case input.PointerExit:
		hovered := ps.hovered
		ps.hovered = nil
		for _, t := range hovered {
			t.deliver(Event{PointerEvent: e, Type: EventExit})
		}
	}
}

func (r *Router) observe(e input.PointerEvent) bool {
	observers := append([]*observerEntry(nil), r.observers...)
	for i := len(observers) - 1; i >= 0; i-- {
		if observers[i].fn(e) {
			return true
		}
	}
	return false
}

// updateHover synthesizes enter and exit events. Touch pointers never
// hover.
func (r *Router) updateHover(ps *pointerState, e input.PointerEvent, relayout bool) {
	if !e.Kind.SupportsHover() {
		return
	}
	next := r.HitTest(e.Position)
	prev := ps.hovered
	ps.hovered = next
	for _, t := range prev {
		if !contains(next, t) {
			t.deliver(Event{PointerEvent: e, Type: EventExit, Relayout: relayout})
		}
	}
	for _, t := range next {
		if !contains(prev, t) {
			t.deliver(Event{PointerEvent: e, Type: EventEnter, Relayout: relayout})
		}
	}
}

// Refresh recomputes hover for every hover-capable pointer at its last
// position. Call it after targets move, appear or disappear so enter and
// exit events reflect the new layout.
func (r *Router) Refresh() {
	defer errors.Recover("gestures.Router.Refresh")
	for id, ps := range r.pointers {
		if !ps.kind.SupportsHover() {
			continue
		}
		r.updateHover(ps, input.PointerEvent{
			PointerID: id,
			Kind:      ps.kind,
			Phase:     input.PointerHover,
			Position:  ps.position,
		}, true)
	}
}

func contains(list []*Target, t *Target) bool {
	for _, x := range list {
		if x == t {
			return true
		}
	}
	return false
}

func without(list []*Target, t *Target) []*Target {
	for i, x := range list {
		if x == t {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
