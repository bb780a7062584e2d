// Package states defines WidgetStateSet, the canonical description of an
// element's interaction status, and helpers for resolving state-dependent
// values.
package states

import "strings"

// WidgetState is a single interaction flag.
type WidgetState uint8

const (
	Hovered WidgetState = iota
	Focused
	Pressed
	Dragged
	Selected
	ScrolledUnder
	Disabled
	Error

	stateCount
)

func (s WidgetState) String() string {
	switch s {
	case Hovered:
		return "hovered"
	case Focused:
		return "focused"
	case Pressed:
		return "pressed"
	case Dragged:
		return "dragged"
	case Selected:
		return "selected"
	case ScrolledUnder:
		return "scrolledUnder"
	case Disabled:
		return "disabled"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

func (s WidgetState) bit() uint16 {
	if s >= stateCount {
		return 0
	}
	return 1 << s
}

// transient flags cannot coexist with Disabled.
const transientMask = 1<<Hovered | 1<<Pressed | 1<<Dragged

// WidgetStateSet is an immutable set of WidgetState flags. The zero value
// is the empty set. Two sets with the same members are == regardless of
// the order the members were added in.
type WidgetStateSet struct {
	bits uint16
}

// NewWidgetStateSet returns a set containing states.
func NewWidgetStateSet(states ...WidgetState) WidgetStateSet {
	return WidgetStateSet{}.With(states...)
}

func normalize(bits uint16) WidgetStateSet {
	if bits&Disabled.bit() != 0 {
		bits &^= transientMask
	}
	return WidgetStateSet{bits: bits}
}

// With returns a copy of s with states added. Adding Disabled drops
// Hovered, Pressed and Dragged; adding those to a disabled set is a no-op.
func (s WidgetStateSet) With(states ...WidgetState) WidgetStateSet {
	bits := s.bits
	for _, st := range states {
		bits |= st.bit()
	}
	return normalize(bits)
}

// Without returns a copy of s with states removed.
func (s WidgetStateSet) Without(states ...WidgetState) WidgetStateSet {
	bits := s.bits
	for _, st := range states {
		bits &^= st.bit()
	}
	return normalize(bits)
}

// Toggle returns s with state added when on is true and removed otherwise.
func (s WidgetStateSet) Toggle(state WidgetState, on bool) WidgetStateSet {
	if on {
		return s.With(state)
	}
	return s.Without(state)
}

// Has reports whether state is a member of s.
func (s WidgetStateSet) Has(state WidgetState) bool {
	b := state.bit()
	return b != 0 && s.bits&b != 0
}

// Len returns the number of members.
func (s WidgetStateSet) Len() int {
	n := 0
	for b := s.bits; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// IsEmpty reports whether s has no members.
func (s WidgetStateSet) IsEmpty() bool { return s.bits == 0 }

// Equal reports whether s and other have the same members.
func (s WidgetStateSet) Equal(other WidgetStateSet) bool { return s.bits == other.bits }

// Enabled reports whether the set lacks Disabled.
func (s WidgetStateSet) Enabled() bool { return !s.Has(Disabled) }

// IsHovered reports whether a hover-capable pointer is over the element.
func (s WidgetStateSet) IsHovered() bool { return s.Has(Hovered) }

// IsFocused reports whether the element holds keyboard focus.
func (s WidgetStateSet) IsFocused() bool { return s.Has(Focused) }

// IsPressed reports whether a pointer is down inside the element or a
// keyboard press flash is showing.
func (s WidgetStateSet) IsPressed() bool { return s.Has(Pressed) }

// IsDragged reports whether the element is being dragged.
func (s WidgetStateSet) IsDragged() bool { return s.Has(Dragged) }

// IsSelected reports whether the element is checked, chosen or expanded.
func (s WidgetStateSet) IsSelected() bool { return s.Has(Selected) }

// IsDisabled reports whether the element ignores input.
func (s WidgetStateSet) IsDisabled() bool { return s.Has(Disabled) }

// HasError reports whether the element is in an error state.
func (s WidgetStateSet) HasError() bool { return s.Has(Error) }

// IsScrolledUnder reports whether content is scrolled beneath the element.
func (s WidgetStateSet) IsScrolledUnder() bool { return s.Has(ScrolledUnder) }

// States returns the members of s in declaration order.
func (s WidgetStateSet) States() []WidgetState {
	out := make([]WidgetState, 0, s.Len())
	for st := WidgetState(0); st < stateCount; st++ {
		if s.Has(st) {
			out = append(out, st)
		}
	}
	return out
}

func (s WidgetStateSet) String() string {
	members := s.States()
	names := make([]string, len(members))
	for i, st := range members {
		names[i] = st.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}
