// Package input defines the pointer and key events consumed by the
// gesture router, focus manager and components.
package input

import (
	"fmt"

	"github.com/go-drift/headless/pkg/graphics"
)

// PointerKind identifies the device that produced a pointer event.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
	PointerStylus
)

// SupportsHover reports whether the device can rest over an element
// without pressing. Touch cannot.
func (k PointerKind) SupportsHover() bool {
	return k != PointerTouch
}

func (k PointerKind) String() string {
	switch k {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	case PointerStylus:
		return "stylus"
	default:
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
}

// PointerPhase is the phase of a pointer event.
type PointerPhase int

const (
	// PointerDown starts a press.
	PointerDown PointerPhase = iota
	// PointerMove moves a pointer with a button held.
	PointerMove
	// PointerHover moves a pointer with no button held.
	PointerHover
	// PointerUp ends a press.
	PointerUp
	// PointerCancel aborts a press.
	PointerCancel
	// PointerExit reports that the pointer left the host surface.
	PointerExit
)

func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerHover:
		return "hover"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	case PointerExit:
		return "exit"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// PointerButton identifies the pressed button for mouse input.
type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is a single pointer sample in surface coordinates.
type PointerEvent struct {
	PointerID int64
	Kind      PointerKind
	Phase     PointerPhase
	Position  graphics.Offset
	Delta     graphics.Offset
	Button    PointerButton
	Modifiers Modifiers
}

func (e PointerEvent) String() string {
	return fmt.Sprintf("%s %s #%d at (%g, %g)", e.Kind, e.Phase, e.PointerID, e.Position.X, e.Position.Y)
}

// Cursor is a mouse cursor hint. Hosts that cannot change the cursor ignore it.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorText
	CursorGrab
	CursorNotAllowed
)

func (c Cursor) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	case CursorText:
		return "text"
	case CursorGrab:
		return "grab"
	case CursorNotAllowed:
		return "not-allowed"
	default:
		return "default"
	}
}
