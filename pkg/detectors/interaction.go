package detectors

import (
	"time"

	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/scheduler"
)

// InteractionOptions configures an InteractionDetector.
type InteractionOptions struct {
	Router    *gestures.Router
	Focus     *focus.Manager
	Scheduler scheduler.Scheduler
	// FocusScope receives the focus node; nil means the root scope.
	FocusScope *focus.Scope

	Name   string
	Bounds graphics.Rect
	Layer  int
	Cursor input.Cursor

	// FocusNode is an existing node to use instead of an owned one.
	FocusNode *focus.Node
	Autofocus bool
	// SkipFocus leaves out the focus detector entirely.
	SkipFocus bool
	Disabled  bool

	OnFocusChange func(focused bool)
	OnHoverChange func(hovered bool)
	OnPressChange func(pressed bool)
	OnKey         focus.KeyHandler

	OnTapDown         func(e input.PointerEvent)
	OnTap             func()
	OnLongPress       func()
	LongPressDuration time.Duration
	OnDoubleTap       func()
	DoubleTapTimeout  time.Duration
}

// InteractionDetector composes focus, hover and press detection under
// one enabled gate. From the outside in: the gate, Focus, Hover, Press.
// It exposes only the granular callbacks.
type InteractionDetector struct {
	Target *gestures.Target
	Focus  *FocusDetector
	Hover  *HoverDetector
	Press  *PressDetector

	router   *gestures.Router
	enabled  bool
	disposed bool
}

// NewInteractionDetector registers a target with the router and wires the
// three detectors to it.
func NewInteractionDetector(opts InteractionOptions) *InteractionDetector {
	name := opts.Name
	if name == "" {
		name = "interaction"
	}
	d := &InteractionDetector{router: opts.Router, enabled: true}
	d.Target = opts.Router.NewTarget(name, opts.Bounds)
	if opts.Layer != 0 {
		d.Target.SetLayer(opts.Layer)
	}

	if !opts.SkipFocus && opts.Focus != nil {
		d.Focus = NewFocusDetector(opts.Focus, FocusConfig{
			Node:          opts.FocusNode,
			Label:         name,
			Autofocus:     opts.Autofocus,
			OnFocusChange: opts.OnFocusChange,
			OnKey:         opts.OnKey,
		})
		if d.Focus.Node().Rect == nil {
			d.Focus.Node().Rect = d.Target
		}
		scope := opts.FocusScope
		if scope == nil {
			scope = opts.Focus.RootScope()
		}
		d.Focus.Attach(scope)
	}
	d.Hover = NewHoverDetector(d.Target, HoverConfig{
		Cursor:        opts.Cursor,
		OnHoverChange: opts.OnHoverChange,
	})
	d.Press = NewPressDetector(d.Target, PressConfig{
		Scheduler:         opts.Scheduler,
		OnPressChange:     opts.OnPressChange,
		OnTapDown:         opts.OnTapDown,
		OnTap:             opts.OnTap,
		OnLongPress:       opts.OnLongPress,
		LongPressDuration: opts.LongPressDuration,
		OnDoubleTap:       opts.OnDoubleTap,
		DoubleTapTimeout:  opts.DoubleTapTimeout,
	})
	if opts.Disabled {
		d.SetEnabled(false)
	}
	return d
}

// SetEnabled flips the gate. Disabling drives pressed and then hovered to
// false, each once and only if they were true, and makes key handling
// inert. Focus is not touched; components decide whether a disabled
// element keeps focus. Re-enabling rechecks hover at the last pointer
// position.
func (d *InteractionDetector) SetEnabled(enabled bool) {
	if d.enabled == enabled || d.disposed {
		return
	}
	d.enabled = enabled
	d.Target.SetIgnoring(!enabled)
	d.Press.SetEnabled(enabled)
	d.Hover.SetEnabled(enabled)
	if d.Focus != nil {
		d.Focus.SetEnabled(enabled)
	}
	if enabled {
		d.router.Refresh()
	}
}

// Enabled reports the gate state.
func (d *InteractionDetector) Enabled() bool { return d.enabled }

// SetBounds moves the hit region.
func (d *InteractionDetector) SetBounds(r graphics.Rect) { d.Target.SetBounds(r) }

// Bounds returns the hit region.
func (d *InteractionDetector) Bounds() graphics.Rect { return d.Target.Bounds() }

// FocusNode returns the focus node, or nil with SkipFocus.
func (d *InteractionDetector) FocusNode() *focus.Node {
	if d.Focus == nil {
		return nil
	}
	return d.Focus.Node()
}

// HasFocus reports whether the focus node is focused.
func (d *InteractionDetector) HasFocus() bool { return d.Focus != nil && d.Focus.HasFocus() }

// IsHovered reports the hover detector's state.
func (d *InteractionDetector) IsHovered() bool { return d.Hover.Hovered() }

// IsPressed reports the press detector's state.
func (d *InteractionDetector) IsPressed() bool { return d.Press.Pressed() }

// Dispose tears down the detectors and unregisters the target. Pending
// timers are cancelled; no callback fires afterwards.
func (d *InteractionDetector) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	d.Press.Dispose()
	d.Hover.Dispose()
	if d.Focus != nil {
		d.Focus.Dispose()
	}
	d.Target.Remove()
}
