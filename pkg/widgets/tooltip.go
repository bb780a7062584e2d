package widgets

import (
	"time"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/overlay"
	"github.com/go-drift/headless/pkg/scheduler"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// Tooltip timing defaults.
const (
	DefaultTooltipWait = 500 * time.Millisecond
	DefaultTooltipShow = 1500 * time.Millisecond
)

// TooltipState is published by a Tooltip. The embedded set mirrors the
// trigger region: Hovered while the pointer is over it, Focused while the
// trigger's focus node is focused.
type TooltipState struct {
	states.WidgetStateSet
	IsVisible bool
	Message   string
}

// Hash combines the state set with the visibility and message.
func (s TooltipState) Hash() uint64 {
	return states.HashWith(s.WidgetStateSet, s.IsVisible, s.Message)
}

// TooltipOptions configures a Tooltip.
type TooltipOptions struct {
	Message string
	// Bounds is the trigger region the tooltip watches.
	Bounds graphics.Rect
	// WaitDuration delays showing after hover or focus begins.
	WaitDuration time.Duration
	// ShowDuration keeps the tooltip up after hover and focus end.
	ShowDuration time.Duration
	Size         graphics.Size
	// Position overrides the default: below the trigger, flipping above.
	Position *overlay.PositionConfig
	// FocusNode is the trigger's node. Focusing it shows the tooltip the
	// same way hovering does. The tooltip never takes focus itself.
	FocusNode *focus.Node
	Disabled  bool
	Linger    time.Duration

	Builder        func(ctx *core.Element, state TooltipState) any
	ContentBuilder func(ctx *core.Element, message string) any
}

// Tooltip shows a message next to a trigger region.
//
// Hover or focus starts the wait timer; when it fires the tooltip opens.
// Once both end, the show timer keeps it visible for ShowDuration before
// closing. Pressing inside the region hides it at once. The overlay
// ignores the pointer, and the region is translucent, so the control
// underneath keeps receiving input.
type Tooltip struct {
	component[TooltipState]
	opts     TooltipOptions
	ctl      *interaction
	anchored *overlay.Anchored
	wait     *scheduler.Slot
	hide     *scheduler.Slot
	wanted   bool
}

// NewTooltip creates a tooltip and mounts its builder under parent.
func NewTooltip(env *Env, parent *core.Element, opts TooltipOptions) *Tooltip {
	if opts.WaitDuration <= 0 {
		opts.WaitDuration = DefaultTooltipWait
	}
	if opts.ShowDuration <= 0 {
		opts.ShowDuration = DefaultTooltipShow
	}
	t := &Tooltip{
		opts: opts,
		wait: scheduler.NewSlot(env.Scheduler, "widgets.Tooltip.wait"),
		hide: scheduler.NewSlot(env.Scheduler, "widgets.Tooltip.hide"),
	}
	t.ctl = newInteraction(env, interactionConfig{
		Name:      "Tooltip",
		Bounds:    opts.Bounds,
		FocusNode: opts.FocusNode,
		SkipFocus: opts.FocusNode == nil,
		Disabled:  opts.Disabled,
		Passive:   true,
	}, t.changed)
	t.ctl.Target().AddHandler(gestures.HandlerFunc(func(e gestures.Event) {
		if e.Type == gestures.EventDown {
			t.Hide()
		}
	}))

	position := overlay.Below(4)
	if opts.Position != nil {
		position = *opts.Position
	}
	t.anchored = overlay.NewAnchored(overlay.AnchoredOptions{
		Surface:         env.Surface,
		Scheduler:       env.Scheduler,
		Name:            "Tooltip.overlay",
		Anchor:          t.ctl.Target(),
		TriggerFocus:    opts.FocusNode,
		Size:            opts.Size,
		Position:        position,
		Linger:          opts.Linger,
		IgnorePointer:   true,
		SkipFocusReturn: true,
		Keys:            &env.Keys,
		Builder:         t.buildContent,
		OnOpen:          t.publish,
		OnClose:         t.publish,
		OnCloseRequested: func(proceed func()) {
			t.publish()
			proceed()
		},
	})

	t.init(env, "Tooltip", t.compute)
	t.onDispose(t.wait.Dispose)
	t.onDispose(t.hide.Dispose)
	t.onDispose(t.ctl.Dispose)
	t.onDispose(t.anchored.Dispose)
	t.mount(parent, opts.Builder, t.Dispose)
	if t.ctl.States().IsFocused() {
		t.changed()
	}
	return t
}

func (t *Tooltip) compute() TooltipState {
	return TooltipState{
		WidgetStateSet: t.ctl.States(),
		IsVisible:      t.IsVisible(),
		Message:        t.opts.Message,
	}
}

func (t *Tooltip) buildContent(ctx *core.Element) any {
	if t.opts.ContentBuilder == nil {
		return t.opts.Message
	}
	return t.opts.ContentBuilder(ctx, t.opts.Message)
}

// changed runs after every interaction transition and starts whichever
// timer the new hover and focus flags call for.
func (t *Tooltip) changed() {
	if t.disposed || t.anchored == nil {
		return
	}
	set := t.ctl.States()
	wanted := set.Enabled() && (set.IsHovered() || set.IsFocused())
	if wanted != t.wanted {
		t.wanted = wanted
		if wanted {
			t.hide.Cancel()
			if !t.IsVisible() {
				t.wait.Schedule(t.opts.WaitDuration, t.Show)
			}
		} else {
			t.wait.Cancel()
			if t.IsVisible() {
				t.hide.Schedule(t.opts.ShowDuration, t.Hide)
			}
		}
	}
	t.publish()
}

// IsVisible reports whether the tooltip is open and not closing.
func (t *Tooltip) IsVisible() bool {
	return t.anchored.IsOpen() && !t.anchored.IsClosing()
}

// Show opens the tooltip now, skipping the wait.
func (t *Tooltip) Show() {
	if t.disposed || !t.ctl.Enabled() {
		return
	}
	t.wait.Cancel()
	t.hide.Cancel()
	t.anchored.Open()
	t.publish()
}

// Hide closes the tooltip now and cancels both timers.
func (t *Tooltip) Hide() {
	if t.disposed {
		return
	}
	t.wait.Cancel()
	t.hide.Cancel()
	t.anchored.Close()
	t.publish()
}

// SetMessage changes the text. A visible tooltip is rebuilt.
func (t *Tooltip) SetMessage(message string) {
	t.opts.Message = message
	t.anchored.MarkNeedsBuild()
	t.publish()
}

// SetDisabled enables or disables the tooltip. Disabling hides it.
func (t *Tooltip) SetDisabled(disabled bool) {
	if disabled {
		t.Hide()
	}
	t.ctl.SetEnabled(!disabled)
}

// SetBounds moves the trigger region and repositions a visible tooltip.
func (t *Tooltip) SetBounds(r graphics.Rect) {
	t.ctl.SetBounds(r)
	t.anchored.Reposition()
}

// Anchored returns the tooltip overlay.
func (t *Tooltip) Anchored() *overlay.Anchored { return t.anchored }

// DescribeSemanticsConfiguration announces the message as a live region
// while visible.
func (t *Tooltip) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	s := t.State()
	config.Properties.Role = semantics.SemanticsRoleTooltip
	config.Properties.Label = s.Message
	config.Properties.Flags = semantics.SemanticsFlag(0).
		SetIf(semantics.SemanticsIsLiveRegion, s.IsVisible).
		SetIf(semantics.SemanticsIsHidden, !s.IsVisible)
	if s.IsVisible {
		config.Actions = semantics.NewSemanticsActions()
		config.Actions.On(semantics.SemanticsActionDismiss, t.Hide)
	}
	return true
}

// Dispose cancels both timers, removes the overlay and tears down the
// trigger region.
func (t *Tooltip) Dispose() { t.dispose() }
