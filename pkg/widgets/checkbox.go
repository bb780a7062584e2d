package widgets

import (
	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// CheckboxValue is the value of a checkbox.
type CheckboxValue int

const (
	Unchecked CheckboxValue = iota
	Checked
	// Mixed is the indeterminate value of a tristate checkbox.
	Mixed
)

func (v CheckboxValue) String() string {
	switch v {
	case Checked:
		return "checked"
	case Mixed:
		return "mixed"
	default:
		return "unchecked"
	}
}

// next returns the value after activation. Two-state checkboxes go
// unchecked <-> checked and treat mixed as unchecked; tristate ones cycle
// unchecked -> checked -> mixed -> unchecked.
func (v CheckboxValue) next(tristate bool) CheckboxValue {
	switch v {
	case Unchecked:
		return Checked
	case Checked:
		if tristate {
			return Mixed
		}
		return Unchecked
	default:
		if tristate {
			return Unchecked
		}
		return Checked
	}
}

// CheckboxState is published by a Checkbox. Selected is set while the
// value is Checked.
type CheckboxState struct {
	states.WidgetStateSet
	Value CheckboxValue
}

// Hash combines the state set with the value.
func (s CheckboxState) Hash() uint64 { return states.HashWith(s.WidgetStateSet, int(s.Value)) }

// CheckboxOptions configures a Checkbox.
type CheckboxOptions struct {
	Label    string
	Bounds   graphics.Rect
	Value    CheckboxValue
	Tristate bool
	// OnChanged receives the new value after each activation.
	OnChanged  func(CheckboxValue)
	Disabled   bool
	Autofocus  bool
	FocusNode  *focus.Node
	FocusScope *focus.Scope
	Builder    func(ctx *core.Element, state CheckboxState) any
}

// Checkbox is a two- or three-state toggle.
type Checkbox struct {
	component[CheckboxState]
	opts  CheckboxOptions
	ctl   *interaction
	value CheckboxValue
}

// NewCheckbox creates a checkbox and mounts its builder under parent.
func NewCheckbox(env *Env, parent *core.Element, opts CheckboxOptions) *Checkbox {
	c := &Checkbox{opts: opts, value: opts.Value}
	c.ctl = newInteraction(env, interactionConfig{
		Name:       "Checkbox",
		Bounds:     opts.Bounds,
		FocusScope: opts.FocusScope,
		FocusNode:  opts.FocusNode,
		Autofocus:  opts.Autofocus,
		Disabled:   opts.Disabled,
		OnTap:      c.toggle,
		OnKey:      c.handleKey,
	}, c.publish)
	c.ctl.SetSelected(c.value == Checked)
	c.init(env, "Checkbox", c.compute)
	c.onDispose(c.ctl.Dispose)
	c.mount(parent, opts.Builder, c.Dispose)
	return c
}

func (c *Checkbox) compute() CheckboxState {
	return CheckboxState{WidgetStateSet: c.ctl.States(), Value: c.value}
}

func (c *Checkbox) handleKey(e input.KeyEvent) focus.KeyResult {
	if !input.Matches(e, c.env.Keys.Activate) {
		return focus.KeyIgnored
	}
	c.Activate()
	return focus.KeyHandled
}

// Activate flashes Pressed and advances the value.
func (c *Checkbox) Activate() {
	if c.disposed || !c.ctl.Enabled() {
		return
	}
	c.ctl.Flash()
	c.toggle()
}

func (c *Checkbox) toggle() {
	c.SetValue(c.value.next(c.opts.Tristate))
	if c.opts.OnChanged != nil {
		c.opts.OnChanged(c.value)
	}
}

// Value returns the current value.
func (c *Checkbox) Value() CheckboxValue { return c.value }

// SetValue sets the value without calling OnChanged.
func (c *Checkbox) SetValue(v CheckboxValue) {
	if c.disposed {
		return
	}
	c.value = v
	c.ctl.SetSelected(v == Checked)
	c.publish()
}

// SetDisabled enables or disables the checkbox.
func (c *Checkbox) SetDisabled(disabled bool) { c.ctl.SetEnabled(!disabled) }

// SetError marks the checkbox invalid, e.g. an unaccepted required box.
func (c *Checkbox) SetError(err bool) { c.ctl.SetError(err) }

// SetBounds moves the hit region.
func (c *Checkbox) SetBounds(r graphics.Rect) { c.ctl.SetBounds(r) }

// FocusNode returns the checkbox's focus node.
func (c *Checkbox) FocusNode() *focus.Node { return c.ctl.FocusNode() }

// DescribeSemanticsConfiguration reports the checked state.
func (c *Checkbox) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	s := c.State()
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleCheckbox
	config.Properties.Label = c.opts.Label
	config.Properties.Flags = interactiveFlags(s.WidgetStateSet).
		Set(semantics.SemanticsHasCheckedState).
		SetIf(semantics.SemanticsIsChecked, s.Value == Checked).
		SetIf(semantics.SemanticsIsMixed, s.Value == Mixed)
	config.Properties.Value = s.Value.String()
	if s.Enabled() {
		config.Actions = semantics.NewSemanticsActions()
		config.Actions.On(semantics.SemanticsActionTap, c.Activate)
	}
	return true
}

// Dispose tears the checkbox down.
func (c *Checkbox) Dispose() { c.dispose() }
