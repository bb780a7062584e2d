package widgets

import (
	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// ButtonState is published by a Button.
type ButtonState struct {
	states.WidgetStateSet
	Label string
}

// Hash combines the state set with the label.
func (s ButtonState) Hash() uint64 { return states.HashWith(s.WidgetStateSet, s.Label) }

// ButtonOptions configures a Button.
type ButtonOptions struct {
	// Label is announced to assistive technology.
	Label  string
	Bounds graphics.Rect
	// OnTap is called on pointer tap and on keyboard activation.
	OnTap       func()
	OnLongPress func()
	Disabled    bool
	Autofocus   bool
	// FocusNode is used instead of an internally created node. The button
	// does not dispose it.
	FocusNode  *focus.Node
	FocusScope *focus.Scope
	Builder    func(ctx *core.Element, state ButtonState) any
}

// Button is a pressable control.
//
// Pointer taps and the Activate binding (Enter or Space) both call OnTap.
// Keyboard activation shows Pressed for PressFlashDuration, since no
// pointer is down. Disabling a button clears Hovered and Pressed and
// moves focus off it.
type Button struct {
	component[ButtonState]
	opts ButtonOptions
	ctl  *interaction
}

// NewButton creates a button and mounts its builder under parent.
func NewButton(env *Env, parent *core.Element, opts ButtonOptions) *Button {
	b := &Button{opts: opts}
	b.ctl = newInteraction(env, interactionConfig{
		Name:        "Button",
		Bounds:      opts.Bounds,
		FocusScope:  opts.FocusScope,
		FocusNode:   opts.FocusNode,
		Autofocus:   opts.Autofocus,
		Disabled:    opts.Disabled,
		OnTap:       b.tap,
		OnLongPress: opts.OnLongPress,
		OnKey:       b.handleKey,
	}, b.publish)
	b.init(env, "Button", b.compute)
	b.onDispose(b.ctl.Dispose)
	b.mount(parent, opts.Builder, b.Dispose)
	return b
}

func (b *Button) compute() ButtonState {
	return ButtonState{WidgetStateSet: b.ctl.States(), Label: b.opts.Label}
}

func (b *Button) tap() {
	if b.opts.OnTap != nil {
		b.opts.OnTap()
	}
}

func (b *Button) handleKey(e input.KeyEvent) focus.KeyResult {
	if !input.Matches(e, b.env.Keys.Activate) {
		return focus.KeyIgnored
	}
	b.Activate()
	return focus.KeyHandled
}

// Activate runs the keyboard activation path: a press flash, then OnTap.
// It does nothing while disabled.
func (b *Button) Activate() {
	if b.disposed || !b.ctl.Enabled() {
		return
	}
	b.ctl.Flash()
	b.tap()
}

// SetDisabled enables or disables the button.
func (b *Button) SetDisabled(disabled bool) { b.ctl.SetEnabled(!disabled) }

// SetLabel changes the announced label.
func (b *Button) SetLabel(label string) {
	b.opts.Label = label
	b.publish()
}

// SetBounds moves the hit region.
func (b *Button) SetBounds(r graphics.Rect) { b.ctl.SetBounds(r) }

// FocusNode returns the button's focus node.
func (b *Button) FocusNode() *focus.Node { return b.ctl.FocusNode() }

// Target returns the button's hit-test target, for hosts that move it
// onto an overlay layer.
func (b *Button) Target() *gestures.Target { return b.ctl.Target() }

// DescribeSemanticsConfiguration reports the button role, label and tap
// action.
func (b *Button) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	s := b.State()
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleButton
	config.Properties.Label = s.Label
	config.Properties.Flags = interactiveFlags(s.WidgetStateSet).Set(semantics.SemanticsIsButton)
	if s.Enabled() {
		config.Actions = semantics.NewSemanticsActions()
		config.Actions.On(semantics.SemanticsActionTap, b.Activate)
		config.Actions.On(semantics.SemanticsActionLongPress, b.opts.OnLongPress)
	}
	return true
}

// Dispose tears the button down. Pending timers are cancelled.
func (b *Button) Dispose() { b.dispose() }
