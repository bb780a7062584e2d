package gestures

import (
	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
)

// EventType is the kind of event a Target receives. Enter and Exit are
// synthesized by the router from hover-capable pointer movement.
type EventType int

const (
	EventDown EventType = iota
	EventMove
	EventUp
	EventCancel
	EventEnter
	EventExit
	EventHover
)

func (t EventType) String() string {
	switch t {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventCancel:
		return "cancel"
	case EventEnter:
		return "enter"
	case EventExit:
		return "exit"
	case EventHover:
		return "hover"
	default:
		return "unknown"
	}
}

// Event is a pointer event delivered to one target.
type Event struct {
	input.PointerEvent
	Type EventType
	// Inside reports whether Position lies within the target's bounds.
	// Captured targets receive moves and ups from outside their bounds.
	Inside bool
	// Relayout marks enter and exit events that Refresh synthesized
	// because targets changed under a still pointer.
	Relayout bool
	Target   *Target
}

// Handler receives pointer events for a target.
type Handler interface {
	HandlePointer(e Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(e Event)

// HandlePointer calls f(e).
func (f HandlerFunc) HandlePointer(e Event) { f(e) }

// Target is a hit-testable region registered with a Router. Targets are
// owned by the UI thread.
type Target struct {
	router      *Router
	name        string
	seq         uint64
	bounds      graphics.Rect
	layer       int
	translucent bool
	ignoring    bool
	cursor      input.Cursor
	handlers    []*handlerEntry
	removed     bool
}

type handlerEntry struct {
	h Handler
}

// Name returns the debug name given at creation.
func (t *Target) Name() string { return t.name }

// Bounds returns the hit-test rectangle in surface coordinates.
func (t *Target) Bounds() graphics.Rect { return t.bounds }

// SetBounds updates the hit-test rectangle.
func (t *Target) SetBounds(r graphics.Rect) { t.bounds = r }

// Layer returns the stacking layer. Higher layers hit-test first.
func (t *Target) Layer() int { return t.layer }

// SetLayer moves the target to another stacking layer.
func (t *Target) SetLayer(layer int) {
	t.layer = layer
	if t.router != nil {
		t.router.sortTargets()
	}
}

// SetTranslucent lets hits continue to targets below this one.
func (t *Target) SetTranslucent(v bool) { t.translucent = v }

// Translucent reports whether hits pass through.
func (t *Target) Translucent() bool { return t.translucent }

// SetIgnoring excludes the target from hit testing. Turning it on drops
// the target from hover and capture without delivering exit or cancel
// events; the owner is expected to reset its own state.
func (t *Target) SetIgnoring(v bool) {
	if t.ignoring == v {
		return
	}
	t.ignoring = v
	if v && t.router != nil {
		t.router.forget(t)
	}
}

// Ignoring reports whether the target is excluded from hit testing.
func (t *Target) Ignoring() bool { return t.ignoring }

// SetCursor sets the cursor hint shown while a pointer is over the target.
func (t *Target) SetCursor(c input.Cursor) { t.cursor = c }

// Cursor returns the cursor hint.
func (t *Target) Cursor() input.Cursor { return t.cursor }

// AddHandler registers h and returns a function that unregisters it.
// Handlers run in registration order.
func (t *Target) AddHandler(h Handler) func() {
	entry := &handlerEntry{h: h}
	t.handlers = append(t.handlers, entry)
	return func() {
		for i, e := range t.handlers {
			if e == entry {
				t.handlers = append(t.handlers[:i:i], t.handlers[i+1:]...)
				return
			}
		}
	}
}

// Remove unregisters the target from its router. Safe to call twice.
func (t *Target) Remove() {
	if t.removed {
		return
	}
	t.removed = true
	if t.router != nil {
		t.router.remove(t)
	}
}

// Removed reports whether Remove was called.
func (t *Target) Removed() bool { return t.removed }

func (t *Target) hits(p graphics.Offset) bool {
	return !t.removed && !t.ignoring && t.bounds.Contains(p)
}

func (t *Target) deliver(e Event) {
	e.Target = t
	e.Inside = t.bounds.Contains(e.Position)
	handlers := append([]*handlerEntry(nil), t.handlers...)
	for _, entry := range handlers {
		errors.Guard("gestures.Target.deliver", func() { entry.h.HandlePointer(e) })
	}
}
