package widgets

import (
	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// RadioState is published by each Radio. Selected mirrors Checked.
type RadioState[T comparable] struct {
	states.WidgetStateSet
	Value         T
	GroupValue    T
	HasGroupValue bool
}

// Checked reports whether this radio holds the group's value.
func (s RadioState[T]) Checked() bool { return s.HasGroupValue && s.Value == s.GroupValue }

// Hash combines the state set with the radio and group values.
func (s RadioState[T]) Hash() uint64 {
	return states.HashWith(s.WidgetStateSet, s.Value, s.GroupValue, s.HasGroupValue)
}

// RadioGroupOptions configures a RadioGroup.
type RadioGroupOptions[T comparable] struct {
	Label string
	// Value is the initial selection; it only counts when HasValue is set.
	Value    T
	HasValue bool
	// OnChanged is called when activation selects a different radio.
	OnChanged func(T)
	Disabled  bool
	// FocusScope is the scope the group's scope is created in; nil means
	// the root scope.
	FocusScope *focus.Scope
}

// RadioGroup holds the selection for a set of radios.
//
// Selection changes only on activation: a tap, or Space/Enter on the
// focused radio. Arrow keys move focus between radios without selecting.
// Only one radio is a Tab stop, the checked one or else the first
// enabled one.
type RadioGroup[T comparable] struct {
	env      *Env
	opts     RadioGroupOptions[T]
	value    T
	hasValue bool
	radios   []*Radio[T]
	scope    *focus.Scope
	disposed bool
}

// NewRadioGroup creates an empty group.
func NewRadioGroup[T comparable](env *Env, opts RadioGroupOptions[T]) *RadioGroup[T] {
	parent := opts.FocusScope
	if parent == nil {
		parent = env.Focus.RootScope()
	}
	return &RadioGroup[T]{
		env:      env,
		opts:     opts,
		value:    opts.Value,
		hasValue: opts.HasValue,
		scope:    parent.NewChildScope("RadioGroup"),
	}
}

// RadioOptions configures one Radio.
type RadioOptions[T comparable] struct {
	Value    T
	Label    string
	Bounds   graphics.Rect
	Disabled bool
	Builder  func(ctx *core.Element, state RadioState[T]) any
}

// Radio is one option of a RadioGroup.
type Radio[T comparable] struct {
	component[RadioState[T]]
	group *RadioGroup[T]
	opts  RadioOptions[T]
	ctl   *interaction
}

// Add creates a radio in the group and mounts its builder under parent.
func (g *RadioGroup[T]) Add(parent *core.Element, opts RadioOptions[T]) *Radio[T] {
	r := &Radio[T]{group: g, opts: opts}
	r.ctl = newInteraction(g.env, interactionConfig{
		Name:       "Radio",
		Bounds:     opts.Bounds,
		FocusScope: g.scope,
		Disabled:   g.opts.Disabled || opts.Disabled,
		OnTap:      func() { g.selectValue(r.opts.Value) },
		OnKey:      r.handleKey,
	}, r.publish)
	r.ctl.SetSelected(g.checked(opts.Value))
	r.init(g.env, "Radio", r.compute)
	r.onDispose(r.ctl.Dispose)
	r.onDispose(func() { g.remove(r) })
	r.mount(parent, opts.Builder, r.Dispose)
	g.radios = append(g.radios, r)
	g.updateTabStop()
	return r
}

func (g *RadioGroup[T]) checked(v T) bool { return g.hasValue && g.value == v }

// Value returns the selected value and whether there is one.
func (g *RadioGroup[T]) Value() (T, bool) { return g.value, g.hasValue }

// Radios returns the radios in insertion order.
func (g *RadioGroup[T]) Radios() []*Radio[T] { return append([]*Radio[T](nil), g.radios...) }

// FocusScope returns the group's focus scope.
func (g *RadioGroup[T]) FocusScope() *focus.Scope { return g.scope }

// SetValue selects v without calling OnChanged.
func (g *RadioGroup[T]) SetValue(v T) {
	g.value, g.hasValue = v, true
	g.sync()
}

// Clear removes the selection.
func (g *RadioGroup[T]) Clear() {
	var zero T
	g.value, g.hasValue = zero, false
	g.sync()
}

func (g *RadioGroup[T]) selectValue(v T) {
	if g.disposed || g.checked(v) {
		return
	}
	g.SetValue(v)
	if g.opts.OnChanged != nil {
		g.opts.OnChanged(v)
	}
}

func (g *RadioGroup[T]) sync() {
	for _, r := range g.radios {
		r.ctl.SetSelected(g.checked(r.opts.Value))
		r.publish()
	}
	g.updateTabStop()
}

// SetDisabled disables or enables every radio in the group.
func (g *RadioGroup[T]) SetDisabled(disabled bool) {
	g.opts.Disabled = disabled
	for _, r := range g.radios {
		r.ctl.SetEnabled(!disabled && !r.opts.Disabled)
	}
	g.updateTabStop()
}

// updateTabStop leaves exactly one enabled radio in Tab traversal.
func (g *RadioGroup[T]) updateTabStop() {
	var stop *Radio[T]
	for _, r := range g.radios {
		if !r.ctl.Enabled() {
			continue
		}
		if stop == nil || g.checked(r.opts.Value) {
			stop = r
		}
	}
	for _, r := range g.radios {
		if node := r.ctl.FocusNode(); node != nil {
			node.SkipTraversal = r != stop
		}
	}
}

// moveFocus focuses the next enabled radio after from, wrapping.
func (g *RadioGroup[T]) moveFocus(from *Radio[T], delta int) {
	index := -1
	for i, r := range g.radios {
		if r == from {
			index = i
		}
	}
	n := len(g.radios)
	for step := 1; step < n; step++ {
		r := g.radios[wrapIndex(index+delta*step, n)]
		if r.ctl.Enabled() {
			r.ctl.FocusNode().RequestFocus()
			return
		}
	}
}

func (g *RadioGroup[T]) remove(r *Radio[T]) {
	for i, x := range g.radios {
		if x == r {
			g.radios = append(g.radios[:i:i], g.radios[i+1:]...)
			break
		}
	}
	g.updateTabStop()
}

// DescribeSemanticsConfiguration reports the radiogroup role.
func (g *RadioGroup[T]) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleRadioGroup
	config.Properties.Label = g.opts.Label
	config.Properties.Flags = semantics.SemanticsHasEnabledState.SetIf(semantics.SemanticsIsEnabled, !g.opts.Disabled)
	return true
}

// Dispose disposes every radio and removes the group's scope.
func (g *RadioGroup[T]) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	for _, r := range g.Radios() {
		r.Dispose()
	}
	g.scope.Remove()
}

func (r *Radio[T]) compute() RadioState[T] {
	return RadioState[T]{
		WidgetStateSet: r.ctl.States(),
		Value:          r.opts.Value,
		GroupValue:     r.group.value,
		HasGroupValue:  r.group.hasValue,
	}
}

func (r *Radio[T]) handleKey(e input.KeyEvent) focus.KeyResult {
	keys := r.env.Keys
	switch {
	case input.Matches(e, keys.Activate):
		r.Activate()
	case input.Matches(e, keys.Down, keys.Right):
		r.group.moveFocus(r, 1)
	case input.Matches(e, keys.Up, keys.Left):
		r.group.moveFocus(r, -1)
	default:
		return focus.KeyIgnored
	}
	return focus.KeyHandled
}

// Activate flashes Pressed and selects this radio.
func (r *Radio[T]) Activate() {
	if r.disposed || !r.ctl.Enabled() {
		return
	}
	r.ctl.Flash()
	r.group.selectValue(r.opts.Value)
}

// SetDisabled disables this radio on its own.
func (r *Radio[T]) SetDisabled(disabled bool) {
	r.opts.Disabled = disabled
	r.ctl.SetEnabled(!disabled && !r.group.opts.Disabled)
	r.group.updateTabStop()
}

// SetBounds moves the hit region.
func (r *Radio[T]) SetBounds(b graphics.Rect) { r.ctl.SetBounds(b) }

// FocusNode returns the radio's focus node.
func (r *Radio[T]) FocusNode() *focus.Node { return r.ctl.FocusNode() }

// DescribeSemanticsConfiguration reports the radio role and checked state.
func (r *Radio[T]) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	s := r.State()
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleRadio
	config.Properties.Label = r.opts.Label
	config.Properties.Flags = interactiveFlags(s.WidgetStateSet).
		Set(semantics.SemanticsHasCheckedState | semantics.SemanticsIsInMutuallyExclusiveGroup).
		SetIf(semantics.SemanticsIsChecked, s.Checked())
	if s.Enabled() {
		config.Actions = semantics.NewSemanticsActions()
		config.Actions.On(semantics.SemanticsActionTap, r.Activate)
	}
	return true
}

// Dispose removes the radio from its group.
func (r *Radio[T]) Dispose() { r.dispose() }

func wrapIndex(index, count int) int {
	index %= count
	if index < 0 {
		index += count
	}
	return index
}
