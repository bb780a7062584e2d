package widgets

import (
	"fmt"
	"math"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// SliderState is published by a Slider. Dragged is set while IsDragging.
type SliderState struct {
	states.WidgetStateSet
	Value      float64
	Min        float64
	Max        float64
	IsDragging bool
}

// Hash combines the state set with the slider's fields.
func (s SliderState) Hash() uint64 {
	return states.HashWith(s.WidgetStateSet, s.Value, s.Min, s.Max, s.IsDragging)
}

// Fraction returns the value's position between Min and Max, in [0, 1].
func (s SliderState) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// SliderOptions configures a Slider.
type SliderOptions struct {
	Label  string
	Bounds graphics.Rect
	Value  float64
	// Min and Max default to 0 and 1 when Max <= Min.
	Min, Max float64
	// Step snaps values; zero means continuous. Arrow keys move by Step,
	// or by 1% of the range when Step is zero.
	Step float64
	// PageStep is the PageUp/PageDown increment. Defaults to ten steps.
	PageStep float64

	Disabled   bool
	Autofocus  bool
	FocusNode  *focus.Node
	FocusScope *focus.Scope

	OnChanged     func(float64)
	OnChangeStart func(float64)
	OnChangeEnd   func(float64)
	Builder       func(ctx *core.Element, state SliderState) any
}

// Slider picks a value in a range by pointer drag or keyboard.
//
// Pressing the track jumps the value to the pointer and starts a drag;
// the drag keeps following the pointer outside the track until release.
// Arrow keys step, PageUp and PageDown move by PageStep, Home and End
// jump to the ends.
type Slider struct {
	component[SliderState]
	opts     SliderOptions
	ctl      *interaction
	value    float64
	dragging bool
	unhandle func()
}

// NewSlider creates a slider and mounts its builder under parent.
func NewSlider(env *Env, parent *core.Element, opts SliderOptions) *Slider {
	if opts.Max <= opts.Min {
		opts.Min, opts.Max = 0, 1
	}
	if opts.PageStep <= 0 {
		opts.PageStep = 10 * opts.keyStep()
	}
	s := &Slider{opts: opts}
	s.value = s.snap(opts.Value)
	s.ctl = newInteraction(env, interactionConfig{
		Name:       "Slider",
		Bounds:     opts.Bounds,
		Cursor:     input.CursorGrab,
		FocusScope: opts.FocusScope,
		FocusNode:  opts.FocusNode,
		Autofocus:  opts.Autofocus,
		Disabled:   opts.Disabled,
		OnKey:      s.handleKey,
	}, s.publish)
	s.unhandle = s.ctl.Target().AddHandler(gestures.HandlerFunc(s.handlePointer))
	s.init(env, "Slider", s.compute)
	s.onDispose(s.ctl.Dispose)
	s.onDispose(s.unhandle)
	s.mount(parent, opts.Builder, s.Dispose)
	return s
}

func (o SliderOptions) keyStep() float64 {
	if o.Step > 0 {
		return o.Step
	}
	return (o.Max - o.Min) / 100
}

func (s *Slider) compute() SliderState {
	return SliderState{
		WidgetStateSet: s.ctl.States(),
		Value:          s.value,
		Min:            s.opts.Min,
		Max:            s.opts.Max,
		IsDragging:     s.dragging,
	}
}

// snap clamps v to the range and rounds it to the nearest step.
func (s *Slider) snap(v float64) float64 {
	lo, hi := s.opts.Min, s.opts.Max
	if s.opts.Step > 0 {
		v = lo + math.Round((v-lo)/s.opts.Step)*s.opts.Step
	}
	return math.Max(lo, math.Min(hi, v))
}

// valueAt maps a pointer x coordinate to a value.
func (s *Slider) valueAt(x float64) float64 {
	b := s.ctl.Bounds()
	if b.Width() <= 0 {
		return s.value
	}
	t := math.Max(0, math.Min(1, (x-b.Left)/b.Width()))
	return s.snap(s.opts.Min + t*(s.opts.Max-s.opts.Min))
}

func (s *Slider) handlePointer(e gestures.Event) {
	if s.disposed || !s.ctl.Enabled() {
		return
	}
	switch e.Type {
	case gestures.EventDown:
		s.dragging = true
		s.ctl.SetDragged(true)
		if s.opts.OnChangeStart != nil {
			s.opts.OnChangeStart(s.value)
		}
		s.change(s.valueAt(e.Position.X))
	case gestures.EventMove:
		if s.dragging {
			s.change(s.valueAt(e.Position.X))
		}
	case gestures.EventUp, gestures.EventCancel:
		s.endDrag()
	}
}

func (s *Slider) endDrag() {
	if !s.dragging {
		return
	}
	s.dragging = false
	s.ctl.SetDragged(false)
	s.publish()
	if s.opts.OnChangeEnd != nil {
		s.opts.OnChangeEnd(s.value)
	}
}

// change sets the value and calls OnChanged when it differs.
func (s *Slider) change(v float64) {
	v = s.snap(v)
	if v == s.value {
		s.publish()
		return
	}
	s.value = v
	s.publish()
	if s.opts.OnChanged != nil {
		s.opts.OnChanged(v)
	}
}

func (s *Slider) handleKey(e input.KeyEvent) focus.KeyResult {
	keys := s.env.Keys
	step := s.opts.keyStep()
	switch {
	case input.Matches(e, keys.Right, keys.Up):
		s.change(s.value + step)
	case input.Matches(e, keys.Left, keys.Down):
		s.change(s.value - step)
	case input.Matches(e, keys.PageUp):
		s.change(s.value + s.opts.PageStep)
	case input.Matches(e, keys.PageDown):
		s.change(s.value - s.opts.PageStep)
	case input.Matches(e, keys.Home):
		s.change(s.opts.Min)
	case input.Matches(e, keys.End):
		s.change(s.opts.Max)
	default:
		return focus.KeyIgnored
	}
	return focus.KeyHandled
}

// Value returns the current value.
func (s *Slider) Value() float64 { return s.value }

// SetValue sets the value without calling OnChanged.
func (s *Slider) SetValue(v float64) {
	s.value = s.snap(v)
	s.publish()
}

// Increase steps the value up.
func (s *Slider) Increase() { s.change(s.value + s.opts.keyStep()) }

// Decrease steps the value down.
func (s *Slider) Decrease() { s.change(s.value - s.opts.keyStep()) }

// SetDisabled enables or disables the slider. Disabling ends a drag.
func (s *Slider) SetDisabled(disabled bool) {
	if disabled {
		s.endDrag()
	}
	s.ctl.SetEnabled(!disabled)
}

// SetBounds moves the track.
func (s *Slider) SetBounds(r graphics.Rect) { s.ctl.SetBounds(r) }

// FocusNode returns the slider's focus node.
func (s *Slider) FocusNode() *focus.Node { return s.ctl.FocusNode() }

// DescribeSemanticsConfiguration reports the slider role, value as a
// percentage and the increase and decrease actions.
func (s *Slider) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	st := s.State()
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleSlider
	config.Properties.Label = s.opts.Label
	config.Properties.Value = fmt.Sprintf("%.0f%%", st.Fraction()*100)
	config.Properties.Flags = interactiveFlags(st.WidgetStateSet)
	if st.Enabled() {
		config.Actions = semantics.NewSemanticsActions()
		if st.Value < st.Max {
			config.Actions.On(semantics.SemanticsActionIncrease, s.Increase)
		}
		if st.Value > st.Min {
			config.Actions.On(semantics.SemanticsActionDecrease, s.Decrease)
		}
	}
	return true
}

// Dispose tears the slider down.
func (s *Slider) Dispose() { s.dispose() }
