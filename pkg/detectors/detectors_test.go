package detectors

import (
	"testing"
	"time"

	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	drifttest "github.com/go-drift/headless/pkg/testing"
)

var box = graphics.RectFromLTWH(10, 10, 20, 10)

func pt(x, y float64) graphics.Offset { return graphics.Offset{X: x, Y: y} }

var (
	inside  = pt(15, 15)
	inside2 = pt(25, 15)
	outside = pt(50, 50)
)

type transitions struct {
	values []bool
}

func (tr *transitions) record(v bool) { tr.values = append(tr.values, v) }

func (tr *transitions) equal(want ...bool) bool {
	if len(tr.values) != len(want) {
		return false
	}
	for i := range want {
		if tr.values[i] != want[i] {
			return false
		}
	}
	return true
}

func TestPressDragOutClears(t *testing.T) {
	r := gestures.NewRouter()
	target := r.NewTarget("btn", box)
	var pressed transitions
	taps := 0
	NewPressDetector(target, PressConfig{OnPressChange: pressed.record, OnTap: func() { taps++ }})

	touch := drifttest.Touch(r)
	touch.Down(inside)
	touch.MoveTo(outside)
	if !pressed.equal(true, false) {
		t.Fatalf("transitions after drag-out = %v, want [true false]", pressed.values)
	}
	touch.MoveTo(inside)
	touch.Up()
	if taps != 0 {
		t.Errorf("taps = %d after drag-out and re-entry, want 0", taps)
	}
	if !pressed.equal(true, false) {
		t.Errorf("re-entry changed pressed: %v", pressed.values)
	}
}

func TestPressTapFiresOnce(t *testing.T) {
	r := gestures.NewRouter()
	target := r.NewTarget("btn", box)
	taps := 0
	var pressed transitions
	NewPressDetector(target, PressConfig{OnPressChange: pressed.record, OnTap: func() { taps++ }})

	mouse := drifttest.Mouse(r)
	mouse.Down(inside)
	mouse.MoveTo(inside2)
	mouse.Up()
	mouse.Up()
	mouse.Cancel()
	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}
	if !pressed.equal(true, false) {
		t.Errorf("transitions = %v, want [true false]", pressed.values)
	}
}

func TestPressCancelClearsWithoutTap(t *testing.T) {
	r := gestures.NewRouter()
	target := r.NewTarget("btn", box)
	taps := 0
	var pressed transitions
	NewPressDetector(target, PressConfig{OnPressChange: pressed.record, OnTap: func() { taps++ }})
	touch := drifttest.Touch(r)
	touch.Down(inside)
	touch.Cancel()
	if taps != 0 || !pressed.equal(true, false) {
		t.Errorf("taps=%d transitions=%v", taps, pressed.values)
	}
}

func TestPressDownOutsideIgnored(t *testing.T) {
	r := gestures.NewRouter()
	target := r.NewTarget("btn", box)
	var pressed transitions
	NewPressDetector(target, PressConfig{OnPressChange: pressed.record})
	drifttest.Mouse(r).Tap(outside)
	if len(pressed.values) != 0 {
		t.Errorf("transitions = %v, want none", pressed.values)
	}
}

func TestLongPress(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	r := gestures.NewRouter()
	target := r.NewTarget("btn", box)
	taps, longs := 0, 0
	NewPressDetector(target, PressConfig{
		Scheduler:   sched,
		OnTap:       func() { taps++ },
		OnLongPress: func() { longs++ },
	})

	touch := drifttest.Touch(r)
	touch.Down(inside)
	sched.Advance(499 * time.Millisecond)
	if longs != 0 {
		t.Fatal("long press fired early")
	}
	sched.Advance(time.Millisecond)
	touch.Up()
	if longs != 1 || taps != 0 {
		t.Errorf("longs=%d taps=%d, want 1 0", longs, taps)
	}

	// A short press cancels the timer.
	touch.Down(inside)
	sched.Advance(100 * time.Millisecond)
	touch.Up()
	sched.Advance(time.Second)
	if longs != 1 || taps != 1 {
		t.Errorf("longs=%d taps=%d, want 1 1", longs, taps)
	}
}

func TestLongPressGatedByEnabled(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	r := gestures.NewRouter()
	target := r.NewTarget("btn", box)
	longs := 0
	d := NewPressDetector(target, PressConfig{Scheduler: sched, OnLongPress: func() { longs++ }})
	drifttest.Touch(r).Down(inside)
	d.SetEnabled(false)
	sched.Advance(time.Second)
	if longs != 0 {
		t.Errorf("long press fired while disabled")
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", sched.Pending())
	}
}

func TestDoubleTap(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	r := gestures.NewRouter()
	target := r.NewTarget("btn", box)
	taps, doubles := 0, 0
	NewPressDetector(target, PressConfig{
		Scheduler:   sched,
		OnTap:       func() { taps++ },
		OnDoubleTap: func() { doubles++ },
	})
	mouse := drifttest.Mouse(r)
	mouse.Tap(inside)
	sched.Advance(200 * time.Millisecond)
	mouse.Tap(inside)
	if doubles != 1 || taps != 2 {
		t.Fatalf("doubles=%d taps=%d, want 1 2", doubles, taps)
	}
	// Third tap starts a new pair.
	mouse.Tap(inside)
	if doubles != 1 {
		t.Errorf("third tap counted as double")
	}
	sched.Advance(400 * time.Millisecond)
	mouse.Tap(inside)
	if doubles != 1 {
		t.Errorf("late tap counted as double")
	}
}

func TestHoverIgnoresTouch(t *testing.T) {
	r := gestures.NewRouter()
	target := r.NewTarget("btn", box)
	var hovered transitions
	NewHoverDetector(target, HoverConfig{OnHoverChange: hovered.record})

	touch := drifttest.Touch(r)
	touch.Drag(outside, inside, 3)
	touch.Drag(inside, outside, 3)
	touch.Tap(inside)
	if len(hovered.values) != 0 {
		t.Errorf("touch produced hover transitions %v", hovered.values)
	}
}

func TestHoverReportsEveryTransition(t *testing.T) {
	r := gestures.NewRouter()
	target := r.NewTarget("btn", box)
	var hovered transitions
	NewHoverDetector(target, HoverConfig{OnHoverChange: hovered.record, Cursor: input.CursorPointer})

	mouse := drifttest.Mouse(r)
	for i := 0; i < 3; i++ {
		mouse.MoveTo(inside)
		mouse.MoveTo(outside)
	}
	if !hovered.equal(true, false, true, false, true, false) {
		t.Errorf("transitions = %v", hovered.values)
	}
	mouse.MoveTo(inside)
	if r.CursorAt(inside) != input.CursorPointer {
		t.Error("cursor hint not applied")
	}
}

func TestHoverDisabledRevertsCursor(t *testing.T) {
	r := gestures.NewRouter()
	target := r.NewTarget("btn", box)
	var hovered transitions
	d := NewHoverDetector(target, HoverConfig{OnHoverChange: hovered.record, Cursor: input.CursorPointer})
	mouse := drifttest.Mouse(r)
	mouse.MoveTo(inside)
	d.SetEnabled(false)
	d.SetEnabled(false)
	if !hovered.equal(true, false) {
		t.Errorf("transitions = %v, want [true false]", hovered.values)
	}
	if d.EffectiveCursor() != input.CursorDefault || target.Cursor() != input.CursorDefault {
		t.Error("cursor not reverted while disabled")
	}
	mouse.MoveTo(outside)
	mouse.MoveTo(inside)
	if len(hovered.values) != 2 {
		t.Errorf("disabled detector reported %v", hovered.values)
	}
}

func TestFocusDetectorOwnership(t *testing.T) {
	m := focus.NewManager()

	owned := NewFocusDetector(m, FocusConfig{Label: "owned"})
	owned.Attach(m.RootScope())
	node := owned.Node()
	owned.Dispose()
	if !node.Disposed() {
		t.Error("owned node not disposed")
	}

	callerNode := m.NewNode("caller")
	m.RootScope().Attach(callerNode)
	borrowed := NewFocusDetector(m, FocusConfig{Node: callerNode})
	borrowed.Attach(m.RootScope())
	borrowed.Dispose()
	borrowed.Dispose()
	if callerNode.Disposed() {
		t.Error("caller-supplied node was disposed")
	}
	if !callerNode.RequestFocus() {
		t.Error("caller node unusable after detector disposal")
	}
}

func TestFocusDetectorAutofocus(t *testing.T) {
	m := focus.NewManager()
	var first transitions
	a := NewFocusDetector(m, FocusConfig{Autofocus: true, OnFocusChange: first.record})
	a.Attach(m.RootScope())
	b := NewFocusDetector(m, FocusConfig{Autofocus: true})
	b.Attach(m.RootScope())

	if !a.HasFocus() || b.HasFocus() {
		t.Errorf("a=%v b=%v, want only a focused", a.HasFocus(), b.HasFocus())
	}
	if !first.equal(true) {
		t.Errorf("transitions = %v", first.values)
	}
	a.Node().Unfocus()
	a.Attach(m.RootScope())
	if a.HasFocus() {
		t.Error("second Attach autofocused again")
	}
}

func TestFocusDetectorDisabledKeysInert(t *testing.T) {
	m := focus.NewManager()
	keys := 0
	d := NewFocusDetector(m, FocusConfig{OnKey: func(input.KeyEvent) focus.KeyResult {
		keys++
		return focus.KeyHandled
	}})
	d.Attach(m.RootScope())
	d.Node().RequestFocus()

	d.SetEnabled(false)
	if m.HandleKey(input.Press(input.KeyEnter)) {
		t.Error("disabled detector handled key")
	}
	if !d.HasFocus() {
		t.Error("disabling removed focus")
	}
	d.SetEnabled(true)
	m.HandleKey(input.Press(input.KeyEnter))
	if keys != 1 {
		t.Errorf("keys = %d, want 1", keys)
	}
}

func TestInteractionDisableClearsTransientOnce(t *testing.T) {
	m := focus.NewManager()
	r := gestures.NewRouter()
	var focused, hovered, pressed transitions
	d := NewInteractionDetector(InteractionOptions{
		Router:        r,
		Focus:         m,
		Bounds:        box,
		OnFocusChange: focused.record,
		OnHoverChange: hovered.record,
		OnPressChange: pressed.record,
	})
	d.FocusNode().RequestFocus()
	mouse := drifttest.Mouse(r)
	mouse.MoveTo(inside)
	mouse.Down(inside)
	if !d.IsHovered() || !d.IsPressed() || !d.HasFocus() {
		t.Fatal("setup did not reach hovered+pressed+focused")
	}

	d.SetEnabled(false)
	d.SetEnabled(false)
	if d.IsHovered() || d.IsPressed() {
		t.Error("transient state survived disable")
	}
	if !hovered.equal(true, false) || !pressed.equal(true, false) {
		t.Errorf("hovered=%v pressed=%v", hovered.values, pressed.values)
	}
	if !focused.equal(true) || !d.HasFocus() {
		t.Errorf("focus changed on disable: %v", focused.values)
	}

	// Events while disabled are ignored, including the pending up.
	mouse.Up()
	mouse.Tap(inside)
	if len(pressed.values) != 2 {
		t.Errorf("disabled detector reported presses %v", pressed.values)
	}

	// Re-enabling with the mouse resting on the target reports hover.
	d.SetEnabled(true)
	if !hovered.equal(true, false, true) {
		t.Errorf("hovered after re-enable = %v", hovered.values)
	}
}

func TestInteractionStartsDisabled(t *testing.T) {
	r := gestures.NewRouter()
	var hovered transitions
	d := NewInteractionDetector(InteractionOptions{
		Router:        r,
		Bounds:        box,
		Disabled:      true,
		SkipFocus:     true,
		OnHoverChange: hovered.record,
	})
	drifttest.Mouse(r).MoveTo(inside)
	if len(hovered.values) != 0 || d.Enabled() {
		t.Errorf("disabled detector hovered: %v", hovered.values)
	}
	if d.FocusNode() != nil {
		t.Error("SkipFocus still created a focus node")
	}
}

func TestInteractionDisposeCancelsTimers(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	m := focus.NewManager()
	r := gestures.NewRouter()
	longs := 0
	d := NewInteractionDetector(InteractionOptions{
		Router:      r,
		Focus:       m,
		Scheduler:   sched,
		Bounds:      box,
		OnLongPress: func() { longs++ },
	})
	drifttest.Touch(r).Down(inside)
	d.Dispose()
	d.Dispose()
	sched.Advance(time.Second)
	if longs != 0 {
		t.Error("long press fired after dispose")
	}
	if len(r.Targets()) != 0 {
		t.Error("target still registered")
	}
	if d.FocusNode().Manager().PrimaryFocus() != nil {
		t.Error("disposed detector kept focus")
	}
}

func TestInteractionFocusNodeUsesTargetGeometry(t *testing.T) {
	m := focus.NewManager()
	r := gestures.NewRouter()
	left := NewInteractionDetector(InteractionOptions{Router: r, Focus: m, Bounds: graphics.RectFromLTWH(0, 0, 10, 10)})
	right := NewInteractionDetector(InteractionOptions{Router: r, Focus: m, Bounds: graphics.RectFromLTWH(20, 0, 10, 10)})
	left.FocusNode().RequestFocus()
	m.FocusInDirection(focus.TraversalRight)
	if !right.HasFocus() {
		t.Error("directional traversal ignored target bounds")
	}
}
