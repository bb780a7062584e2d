package widgets

import (
	"time"

	"github.com/go-drift/headless/pkg/detectors"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/scheduler"
	"github.com/go-drift/headless/pkg/states"
)

// PressFlashDuration is how long keyboard activation shows Pressed.
const PressFlashDuration = 100 * time.Millisecond

type interactionConfig struct {
	Name        string
	Bounds      graphics.Rect
	Layer       int
	Cursor      input.Cursor
	FocusScope  *focus.Scope
	FocusNode   *focus.Node
	Autofocus   bool
	SkipFocus   bool
	Disabled    bool
	OnTap       func()
	OnLongPress func()
	OnKey       focus.KeyHandler
	// OnHoverChange runs after the hover flag changes.
	OnHoverChange func(hovered bool)
	// Passive targets let hits through to targets below and set no
	// cursor, for behavior layered over another control.
	Passive bool
	// KeepFocusOnDisable leaves focus where it is when the component is
	// disabled. By default a disabled component gives focus up.
	KeepFocusOnDisable bool
}

// interaction owns one element's WidgetStateSet. It folds the detector
// callbacks into the set, runs the keyboard press flash and notifies the
// owning component once per transition.
type interaction struct {
	det      *detectors.InteractionDetector
	set      states.WidgetStateSet
	flash    *scheduler.Slot
	onChange func()
	keep     bool
	passive  bool
	batching bool
	dirty    bool
	disposed bool
}

func newInteraction(env *Env, cfg interactionConfig, onChange func()) *interaction {
	c := &interaction{onChange: onChange, keep: cfg.KeepFocusOnDisable, passive: cfg.Passive}
	if env.Scheduler != nil {
		c.flash = scheduler.NewSlot(env.Scheduler, "widgets."+cfg.Name+".pressFlash")
	}
	cursor := cfg.Cursor
	if cursor == input.CursorDefault && !cfg.Passive {
		cursor = input.CursorPointer
	}
	c.det = detectors.NewInteractionDetector(detectors.InteractionOptions{
		Router:        env.Router,
		Focus:         env.Focus,
		Scheduler:     env.Scheduler,
		FocusScope:    cfg.FocusScope,
		Name:          cfg.Name,
		Bounds:        cfg.Bounds,
		Layer:         cfg.Layer,
		Cursor:        cursor,
		FocusNode:     cfg.FocusNode,
		Autofocus:     cfg.Autofocus,
		SkipFocus:     cfg.SkipFocus,
		OnFocusChange: func(focused bool) { c.toggle(states.Focused, focused) },
		OnHoverChange: func(hovered bool) {
			c.toggle(states.Hovered, hovered)
			if cfg.OnHoverChange != nil && !c.disposed {
				cfg.OnHoverChange(hovered)
			}
		},
		OnPressChange: func(pressed bool) {
			if pressed && c.flash != nil {
				c.flash.Cancel()
			}
			c.toggle(states.Pressed, pressed)
		},
		OnTap:       cfg.OnTap,
		OnLongPress: cfg.OnLongPress,
		OnKey:       cfg.OnKey,
	})
	if cfg.Passive {
		c.det.Target.SetTranslucent(true)
	}
	if c.det.HasFocus() {
		c.set = c.set.With(states.Focused)
	}
	if cfg.Disabled {
		c.SetEnabled(false)
	}
	return c
}

// States returns the current set.
func (c *interaction) States() states.WidgetStateSet { return c.set }

// Enabled reports whether the element accepts input.
func (c *interaction) Enabled() bool { return c.set.Enabled() }

func (c *interaction) FocusNode() *focus.Node { return c.det.FocusNode() }

func (c *interaction) Target() *gestures.Target { return c.det.Target }

func (c *interaction) toggle(state states.WidgetState, on bool) {
	if c.disposed {
		return
	}
	next := c.set.Toggle(state, on)
	if next == c.set {
		return
	}
	c.set = next
	c.changed()
}

func (c *interaction) changed() {
	if c.batching {
		c.dirty = true
		return
	}
	if c.onChange != nil {
		c.onChange()
	}
}

// batch runs fn and reports at most one change for everything it did.
func (c *interaction) batch(fn func()) {
	if c.batching {
		fn()
		return
	}
	c.batching = true
	fn()
	c.batching = false
	if c.dirty {
		c.dirty = false
		c.changed()
	}
}

// Flash shows Pressed for PressFlashDuration. A second flash before the
// first ends replaces it, so exactly one clear runs, at the later deadline.
func (c *interaction) Flash() {
	if c.disposed || !c.set.Enabled() || c.flash == nil {
		return
	}
	c.toggle(states.Pressed, true)
	c.flash.Schedule(PressFlashDuration, func() {
		if !c.det.IsPressed() {
			c.toggle(states.Pressed, false)
		}
	})
}

// SetEnabled flips the enabled gate. Disabling cancels the press flash,
// clears the transient flags, takes the node out of traversal and, unless
// KeepFocusOnDisable was set, drops focus. Passive interactions never
// touch the shared node.
func (c *interaction) SetEnabled(enabled bool) {
	if c.disposed || enabled == c.set.Enabled() {
		return
	}
	c.batch(func() {
		if c.flash != nil {
			c.flash.Cancel()
		}
		node := c.det.FocusNode()
		if node != nil && !c.passive {
			node.CanRequestFocus = enabled
		}
		if enabled {
			c.set = c.set.Without(states.Disabled)
			c.det.SetEnabled(true)
		} else {
			c.det.SetEnabled(false)
			c.set = c.set.With(states.Disabled)
			if node != nil && !c.passive && !c.keep && node.HasFocus() {
				node.Unfocus()
			}
		}
		c.dirty = true
	})
}

func (c *interaction) SetSelected(selected bool) { c.toggle(states.Selected, selected) }

func (c *interaction) SetDragged(dragged bool) { c.toggle(states.Dragged, dragged) }

func (c *interaction) SetError(err bool) { c.toggle(states.Error, err) }

func (c *interaction) SetBounds(r graphics.Rect) { c.det.SetBounds(r) }

func (c *interaction) Bounds() graphics.Rect { return c.det.Bounds() }

// Dispose cancels the flash and tears down the detectors. Later
// callbacks are dropped.
func (c *interaction) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	if c.flash != nil {
		c.flash.Dispose()
	}
	c.det.Dispose()
}
