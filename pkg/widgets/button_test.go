package widgets

import (
	"testing"
	"time"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

func TestButton_PointerStates(t *testing.T) {
	f := newFixture()
	taps := 0
	b := NewButton(f.env, f.root, ButtonOptions{Label: "Save", Bounds: box, OnTap: func() { taps++ }})

	f.mouse.MoveTo(center)
	if got := b.State().WidgetStateSet; got != setOf(states.Hovered) {
		t.Errorf("after hover = %v, want {hovered}", got)
	}
	f.mouse.Down(center)
	if got := b.State().WidgetStateSet; got != setOf(states.Hovered, states.Pressed) {
		t.Errorf("after down = %v, want {hovered pressed}", got)
	}
	f.mouse.Up()
	if got := b.State().WidgetStateSet; got != setOf(states.Hovered) {
		t.Errorf("after up = %v, want {hovered}", got)
	}
	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}
	f.mouse.MoveTo(outside)
	if !b.State().IsEmpty() {
		t.Errorf("after exit = %v, want empty", b.State().WidgetStateSet)
	}
}

func TestButton_DragOutCancelsTap(t *testing.T) {
	f := newFixture()
	taps := 0
	b := NewButton(f.env, f.root, ButtonOptions{Bounds: box, OnTap: func() { taps++ }})

	f.mouse.Down(center)
	f.mouse.MoveTo(outside)
	if b.State().IsPressed() {
		t.Error("still pressed after dragging out")
	}
	f.mouse.MoveTo(center)
	f.mouse.Up()
	if taps != 0 {
		t.Errorf("taps = %d, want 0", taps)
	}
}

func TestButton_KeyboardFlashClearsOnce(t *testing.T) {
	f := newFixture()
	taps := 0
	b := NewButton(f.env, f.root, ButtonOptions{Bounds: box, OnTap: func() { taps++ }})
	b.FocusNode().RequestFocus()
	clears := countClears(b.Scope(), func(s ButtonState) bool { return s.IsPressed() })

	f.keys.Press(input.KeyEnter)
	f.sched.Advance(40 * time.Millisecond)
	f.keys.Press(input.KeySpace)
	f.sched.Advance(40 * time.Millisecond)
	f.keys.Press(input.KeyEnter)

	if taps != 3 {
		t.Errorf("taps = %d, want 3", taps)
	}
	if got := f.sched.Pending(); got != 1 {
		t.Fatalf("pending timers = %d, want 1", got)
	}
	if got := f.sched.Deadlines(); got[0] != PressFlashDuration {
		t.Errorf("deadline = %v, want %v", got[0], PressFlashDuration)
	}
	f.sched.Advance(PressFlashDuration - time.Millisecond)
	if !b.State().IsPressed() {
		t.Error("pressed cleared before the last flash ended")
	}
	f.sched.Advance(time.Millisecond)
	if b.State().IsPressed() {
		t.Error("pressed not cleared after the last flash")
	}
	if *clears != 1 {
		t.Errorf("clears = %d, want 1", *clears)
	}
}

func TestButton_DisableClearsTransientStates(t *testing.T) {
	f := newFixture()
	taps := 0
	b := NewButton(f.env, f.root, ButtonOptions{Bounds: box, OnTap: func() { taps++ }})
	b.FocusNode().RequestFocus()
	f.mouse.MoveTo(center)
	f.mouse.Down(center)
	b.Activate()

	b.SetDisabled(true)
	if got := b.State().WidgetStateSet; got != setOf(states.Disabled) {
		t.Errorf("disabled state = %v, want {disabled}", got)
	}
	if b.FocusNode().HasFocus() {
		t.Error("disabled button kept focus")
	}
	if got := f.sched.Pending(); got != 0 {
		t.Errorf("pending timers after disable = %d, want 0", got)
	}
	f.mouse.Up()
	if taps != 1 {
		t.Errorf("taps = %d, want only the keyboard activation", taps)
	}
	if f.keys.Press(input.KeyEnter) {
		t.Error("disabled button handled a key")
	}

	b.SetDisabled(false)
	if got := b.State().WidgetStateSet; got != setOf(states.Hovered) {
		t.Errorf("re-enabled state = %v, want {hovered}", got)
	}
}

func TestButton_DisposeCancelsTimers(t *testing.T) {
	f := newFixture()
	b := NewButton(f.env, f.root, ButtonOptions{Bounds: box})
	b.Activate()
	b.Dispose()
	b.Dispose()

	if got := f.sched.Pending(); got != 0 {
		t.Errorf("pending timers after dispose = %d, want 0", got)
	}
	f.sched.Advance(time.Second)
	if !b.Disposed() || b.Element().Mounted() {
		t.Error("button not torn down")
	}
}

func TestButton_UnmountDisposes(t *testing.T) {
	f := newFixture()
	parent := f.root.Mount("panel", nil)
	b := NewButton(f.env, parent, ButtonOptions{Bounds: box})
	parent.Unmount()
	if !b.Disposed() {
		t.Error("unmounting the parent did not dispose the button")
	}
}

func TestButton_BuilderRebuildsOnChange(t *testing.T) {
	f := newFixture()
	builds := 0
	var last ButtonState
	NewButton(f.env, f.root, ButtonOptions{
		Label:  "Save",
		Bounds: box,
		Builder: func(ctx *core.Element, s ButtonState) any {
			builds++
			last = s
			return s.Label
		},
	})
	if builds != 1 {
		t.Fatalf("builds = %d, want 1", builds)
	}
	f.mouse.MoveTo(center)
	f.env.Owner.FlushBuild()
	if builds != 2 || !last.IsHovered() {
		t.Errorf("builds = %d hovered = %v, want 2 true", builds, last.IsHovered())
	}
	f.mouse.MoveTo(pt(70, 20))
	f.env.Owner.FlushBuild()
	if builds != 2 {
		t.Errorf("builds = %d after a move inside, want 2", builds)
	}
}

func TestButton_Semantics(t *testing.T) {
	f := newFixture()
	taps := 0
	b := NewButton(f.env, f.root, ButtonOptions{Label: "Save", Bounds: box, OnTap: func() { taps++ }})

	config := semantics.Describe(b)
	if config.Properties.Role != semantics.SemanticsRoleButton || config.Properties.Label != "Save" {
		t.Errorf("properties = %+v", config.Properties)
	}
	if !config.Properties.Flags.Has(semantics.SemanticsIsButton | semantics.SemanticsIsEnabled) {
		t.Errorf("flags = %v", config.Properties.Flags)
	}
	if !config.Actions.Perform(semantics.SemanticsActionTap, nil) || taps != 1 {
		t.Errorf("tap action: taps = %d, want 1", taps)
	}

	b.SetDisabled(true)
	config = semantics.Describe(b)
	if config.Properties.Flags.Has(semantics.SemanticsIsEnabled) || config.Actions.Perform(semantics.SemanticsActionTap, nil) {
		t.Error("disabled button still enabled or tappable")
	}
}
