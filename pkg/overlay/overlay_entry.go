// Package overlay positions and mounts floating content above the rest of
// the interface: select listboxes, menus, tooltips and dialogs.
//
// ComputePosition is the pure geometry. Surface is the shared top-level
// mount point holding a stack of entries. Anchored drives one entry
// through its open and close lifecycle.
package overlay

import (
	"sync/atomic"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
)

// nextEntryID is an atomic counter for unique entry IDs.
var nextEntryID uint64

// NewEntry creates an Entry with a unique ID.
func NewEntry(name string, builder core.BuildFunc) *Entry {
	return &Entry{
		Name:    name,
		Builder: builder,
		id:      nextID(),
	}
}

func nextID() uint64 {
	return atomic.AddUint64(&nextEntryID, 1)
}

// Entry is a single item in a surface's stack. It is a mutable handle:
// change its rect with SetRect and its content with MarkNeedsBuild.
type Entry struct {
	Name string
	// Builder creates the overlay content. Called on each rebuild with the
	// entry's element as context.
	Builder core.BuildFunc

	// IgnorePointer keeps the entry out of hit testing and outside-tap
	// resolution. Tooltips set it.
	IgnorePointer bool

	// Barrier, when set, mounts a viewport-sized barrier below the entry.
	Barrier *Barrier

	// OutsideTap handles a pointer down outside the entry's rect and its
	// Exempt region while the entry is mounted. It returns true to
	// consume the event. Nil means outside taps pass by.
	OutsideTap func(e input.PointerEvent) (consume bool)
	// Exempt reports points that count as inside the entry, such as the
	// trigger that opened it.
	Exempt func(p graphics.Offset) bool

	// internal - set by Surface on Insert, cleared on Remove
	surface *Surface
	element *core.Element
	target  *gestures.Target
	barrier *gestures.Target
	adopted []*gestures.Target
	scope   *focus.Scope
	rect    graphics.Rect
	layer   int
	id      uint64
}

// ID returns the entry's unique ID.
func (e *Entry) ID() uint64 { return e.id }

// Surface returns the surface the entry is inserted in, or nil.
func (e *Entry) Surface() *Surface { return e.surface }

// Mounted reports whether the entry is in a surface.
func (e *Entry) Mounted() bool { return e.surface != nil }

// Element returns the entry's build element while mounted.
func (e *Entry) Element() *core.Element { return e.element }

// Output returns the last build output, or nil when not mounted.
func (e *Entry) Output() any {
	if e.element == nil {
		return nil
	}
	return e.element.Output()
}

// Rect returns the entry's on-surface rectangle.
func (e *Entry) Rect() graphics.Rect { return e.rect }

// SetRect moves the entry and its hit region.
func (e *Entry) SetRect(r graphics.Rect) {
	if e.rect.Equal(r) {
		return
	}
	e.rect = r
	if e.target != nil {
		e.target.SetBounds(r)
		e.surface.router.Refresh()
	}
	e.MarkNeedsBuild()
}

// FocusScope returns the focus scope content inside the entry attaches
// its nodes to. Entries mounted by Anchored have one; bare entries
// return nil.
func (e *Entry) FocusScope() *focus.Scope { return e.scope }

// Layer returns the router layer of the entry's hit region. Content built
// inside the entry registers its targets through Adopt so it follows the
// entry when the stack is rearranged.
func (e *Entry) Layer() int { return e.layer }

// Target returns the entry's hit region while mounted. It is nil for
// IgnorePointer entries.
func (e *Entry) Target() *gestures.Target { return e.target }

// Adopt moves t onto the entry's layer. Targets created after the entry
// was inserted sit above its hit region.
func (e *Entry) Adopt(t *gestures.Target) {
	t.SetLayer(e.layer)
	e.adopted = append(e.adopted, t)
}

func (e *Entry) setLayer(layer int) {
	e.layer = layer
	if e.barrier != nil {
		e.barrier.SetLayer(layer)
	}
	if e.target != nil {
		e.target.SetLayer(layer)
	}
	live := e.adopted[:0]
	for _, t := range e.adopted {
		if !t.Removed() {
			t.SetLayer(layer)
			live = append(live, t)
		}
	}
	e.adopted = live
}

// contains reports whether p falls inside the entry for outside-tap
// resolution.
func (e *Entry) contains(p graphics.Offset) bool {
	if e.rect.Contains(p) {
		return true
	}
	return e.Exempt != nil && e.Exempt(p)
}

// Remove removes this entry from its surface.
// Safe to call if not inserted or already removed (no-op).
func (e *Entry) Remove() {
	if e.surface == nil {
		return
	}
	e.surface.removeEntry(e)
}

// MarkNeedsBuild schedules a rebuild of this entry's content.
// No-op if the entry is not mounted.
func (e *Entry) MarkNeedsBuild() {
	if e.element != nil {
		e.element.MarkNeedsBuild()
	}
}

func (e *Entry) mount(s *Surface) {
	e.surface = s
	if e.Barrier != nil {
		e.barrier = e.Barrier.attach(s)
	}
	if !e.IgnorePointer {
		e.target = s.router.NewTarget("overlay."+e.Name, e.rect)
	}
	e.element = s.root.Mount(e.Name, func(ctx *core.Element) any {
		e.element = ctx
		if e.Builder == nil {
			return nil
		}
		return e.Builder(ctx)
	})
}

func (e *Entry) unmount() {
	if e.element != nil {
		e.element.Unmount()
		e.element = nil
	}
	if e.target != nil {
		e.target.Remove()
		e.target = nil
	}
	if e.barrier != nil {
		e.barrier.Remove()
		e.barrier = nil
	}
	e.adopted = nil
	e.scope = nil
	e.surface = nil
}
