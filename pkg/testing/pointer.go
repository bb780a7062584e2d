package testing

import (
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
)

// PointerSink receives pointer events; gestures.Router implements it.
type PointerSink interface {
	Dispatch(event input.PointerEvent)
}

// PointerDriver emits pointer sequences for one device. Mouse and stylus
// drivers reuse a single pointer id; touch drivers allocate a new id per
// contact, as touch hardware does.
type PointerDriver struct {
	sink     PointerSink
	kind     input.PointerKind
	id       int64
	nextID   int64
	position graphics.Offset
	down     bool
}

// NewPointerDriver returns a driver for the given device kind.
func NewPointerDriver(sink PointerSink, kind input.PointerKind) *PointerDriver {
	return &PointerDriver{sink: sink, kind: kind, id: 1, nextID: 1}
}

// Mouse returns a mouse driver.
func Mouse(sink PointerSink) *PointerDriver { return NewPointerDriver(sink, input.PointerMouse) }

// Touch returns a touch driver.
func Touch(sink PointerSink) *PointerDriver { return NewPointerDriver(sink, input.PointerTouch) }

// Position returns the last emitted position.
func (d *PointerDriver) Position() graphics.Offset { return d.position }

// IsDown reports whether the driver is mid-press.
func (d *PointerDriver) IsDown() bool { return d.down }

func (d *PointerDriver) emit(phase input.PointerPhase, pos graphics.Offset) {
	button := input.ButtonNone
	if d.kind == input.PointerMouse && (phase == input.PointerDown || phase == input.PointerMove || phase == input.PointerUp) {
		button = input.ButtonPrimary
	}
	d.sink.Dispatch(input.PointerEvent{
		PointerID: d.id,
		Kind:      d.kind,
		Phase:     phase,
		Position:  pos,
		Delta:     pos.Sub(d.position),
		Button:    button,
	})
	d.position = pos
}

// Down presses at pos.
func (d *PointerDriver) Down(pos graphics.Offset) {
	if d.kind == input.PointerTouch {
		d.id = d.nextID
		d.nextID++
	}
	d.down = true
	d.emit(input.PointerDown, pos)
}

// MoveTo moves to pos: a drag while pressed, a hover otherwise. Touch
// pointers cannot move without contact, so a touch MoveTo while released
// only records the position.
func (d *PointerDriver) MoveTo(pos graphics.Offset) {
	switch {
	case d.down:
		d.emit(input.PointerMove, pos)
	case d.kind.SupportsHover():
		d.emit(input.PointerHover, pos)
	default:
		d.position = pos
	}
}

// Up releases at the current position.
func (d *PointerDriver) Up() {
	d.down = false
	d.emit(input.PointerUp, d.position)
}

// Cancel aborts the press at the current position.
func (d *PointerDriver) Cancel() {
	d.down = false
	d.emit(input.PointerCancel, d.position)
}

// Exit reports that the pointer left the surface.
func (d *PointerDriver) Exit() {
	d.emit(input.PointerExit, d.position)
}

// Tap presses and releases at pos.
func (d *PointerDriver) Tap(pos graphics.Offset) {
	d.MoveTo(pos)
	d.Down(pos)
	d.Up()
}

// Drag presses at from, moves to to in steps moves, and releases.
func (d *PointerDriver) Drag(from, to graphics.Offset, steps int) {
	if steps < 1 {
		steps = 1
	}
	d.MoveTo(from)
	d.Down(from)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		d.MoveTo(graphics.Offset{
			X: from.X + (to.X-from.X)*f,
			Y: from.Y + (to.Y-from.Y)*f,
		})
	}
	d.Up()
}

// Center returns the center of r, for tapping a target's bounds.
func Center(r graphics.Rect) graphics.Offset { return r.Center() }
