package overlay

import (
	"testing"
	"time"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	drifttest "github.com/go-drift/headless/pkg/testing"
)

type anchoredFixture struct {
	surface *Surface
	sched   *drifttest.FakeScheduler
	trigger *gestures.Target
	node    *focus.Node
	opens   int
	closes  int
}

func newAnchoredFixture() *anchoredFixture {
	f := &anchoredFixture{sched: drifttest.NewFakeScheduler()}
	f.surface = newTestSurface()
	f.trigger = f.surface.Router().NewTarget("trigger", graphics.RectFromLTWH(100, 100, 80, 20))
	f.node = f.surface.Focus().NewNode("trigger")
	f.surface.Focus().RootScope().Attach(f.node)
	return f
}

func (f *anchoredFixture) anchored(mod func(*AnchoredOptions)) *Anchored {
	opts := AnchoredOptions{
		Surface:      f.surface,
		Scheduler:    f.sched,
		Name:         "popup",
		Anchor:       f.trigger,
		TriggerFocus: f.node,
		Size:         graphics.Size{Width: 120, Height: 60},
		Position:     Below(0),
		Builder:      func(ctx *core.Element) any { return "popup" },
		OnOpen:       func() { f.opens++ },
		OnClose:      func() { f.closes++ },
	}
	if mod != nil {
		mod(&opts)
	}
	return NewAnchored(opts)
}

func TestAnchored_OpenClose(t *testing.T) {
	f := newAnchoredFixture()
	a := f.anchored(nil)

	a.Open()
	a.Open()
	if !a.IsOpen() || a.Phase() != PhaseOpen {
		t.Fatalf("Phase() = %v, want open", a.Phase())
	}
	if f.opens != 1 {
		t.Errorf("opens = %d, want 1", f.opens)
	}
	if got, want := a.Rect(), graphics.RectFromLTWH(100, 120, 120, 60); !got.Equal(want) {
		t.Errorf("Rect() = %v, want %v", got, want)
	}
	if a.Entry() == nil || a.Entry().Output() != "popup" {
		t.Error("entry not built")
	}

	a.Close()
	a.Close()
	if a.IsOpen() || f.closes != 1 {
		t.Errorf("IsOpen() = %v closes = %d, want false 1", a.IsOpen(), f.closes)
	}
	if len(f.surface.Entries()) != 0 {
		t.Error("entry still mounted")
	}
}

func TestAnchored_ReopenDuringLingerNeverUnmounts(t *testing.T) {
	f := newAnchoredFixture()
	a := f.anchored(func(o *AnchoredOptions) { o.Linger = 200 * time.Millisecond })

	a.Open()
	entry := a.Entry()
	a.Close()
	if a.Phase() != PhasePendingRemoval || !a.IsOpen() {
		t.Fatalf("Phase() = %v, want pending-removal and IsOpen", a.Phase())
	}
	f.sched.Advance(100 * time.Millisecond)
	if !a.IsOpen() {
		t.Fatal("IsOpen() false during linger")
	}
	a.Open()
	f.sched.Advance(time.Second)

	if a.Phase() != PhaseOpen || !a.IsOpen() {
		t.Errorf("Phase() = %v, want open", a.Phase())
	}
	if a.Entry() != entry || !entry.Mounted() {
		t.Error("overlay was unmounted")
	}
	if f.closes != 0 || f.opens != 1 {
		t.Errorf("opens = %d closes = %d, want 1 0", f.opens, f.closes)
	}
}

func TestAnchored_LingerThenUnmount(t *testing.T) {
	f := newAnchoredFixture()
	a := f.anchored(func(o *AnchoredOptions) { o.Linger = 200 * time.Millisecond })
	a.Open()
	a.Close()
	if !a.IsClosing() {
		t.Error("IsClosing() = false during linger")
	}
	f.sched.Advance(199 * time.Millisecond)
	if f.closes != 0 {
		t.Fatal("unmounted before linger elapsed")
	}
	f.sched.Advance(time.Millisecond)
	if a.IsOpen() || f.closes != 1 {
		t.Errorf("IsOpen() = %v closes = %d, want false 1", a.IsOpen(), f.closes)
	}
}

func TestAnchored_OpenInterceptor(t *testing.T) {
	f := newAnchoredFixture()
	var proceed func()
	var info OpenInfo
	a := f.anchored(func(o *AnchoredOptions) {
		o.OnOpenRequested = func(i OpenInfo, p func()) { info, proceed = i, p }
	})

	a.Open()
	if a.Phase() != PhaseOpenRequested || f.opens != 0 {
		t.Fatalf("Phase() = %v opens = %d, want open-requested 0", a.Phase(), f.opens)
	}
	if a.Entry() == nil {
		t.Error("entry should be mounted while the interceptor runs")
	}
	if !info.Anchor.Equal(f.trigger.Bounds()) || !info.Placement.Rect.Equal(a.Rect()) {
		t.Errorf("info = %+v", info)
	}
	proceed()
	proceed()
	if a.Phase() != PhaseOpen || f.opens != 1 {
		t.Errorf("Phase() = %v opens = %d, want open 1", a.Phase(), f.opens)
	}
}

func TestAnchored_ForgottenProceedStaysSuspended(t *testing.T) {
	f := newAnchoredFixture()
	a := f.anchored(func(o *AnchoredOptions) {
		o.OnCloseRequested = func(func()) {}
	})
	a.Open()
	a.Close()
	f.sched.Advance(time.Hour)
	if a.Phase() != PhaseCloseRequested || f.closes != 0 {
		t.Errorf("Phase() = %v closes = %d, want close-requested 0", a.Phase(), f.closes)
	}
}

func TestAnchored_CloseInterceptorThenLinger(t *testing.T) {
	f := newAnchoredFixture()
	var proceed func()
	a := f.anchored(func(o *AnchoredOptions) {
		o.Linger = 50 * time.Millisecond
		o.OnCloseRequested = func(p func()) { proceed = p }
	})
	a.Open()
	a.Close()
	if a.Phase() != PhaseCloseRequested {
		t.Fatalf("Phase() = %v, want close-requested", a.Phase())
	}
	proceed()
	if a.Phase() != PhasePendingRemoval {
		t.Fatalf("Phase() = %v, want pending-removal", a.Phase())
	}
	f.sched.Advance(50 * time.Millisecond)
	if a.Phase() != PhaseClosed || f.closes != 1 {
		t.Errorf("Phase() = %v closes = %d", a.Phase(), f.closes)
	}
}

func TestAnchored_StaleCloseProceedIgnoredAfterReopen(t *testing.T) {
	f := newAnchoredFixture()
	var proceed func()
	a := f.anchored(func(o *AnchoredOptions) {
		o.OnCloseRequested = func(p func()) { proceed = p }
	})
	a.Open()
	a.Close()
	a.Open()
	proceed()
	if a.Phase() != PhaseOpen || f.closes != 0 {
		t.Errorf("Phase() = %v closes = %d, want open 0", a.Phase(), f.closes)
	}
}

func TestAnchored_OutsideTapDismiss(t *testing.T) {
	tests := []struct {
		name        string
		consume     bool
		wantReached int
	}{
		{name: "pass through", consume: false, wantReached: 1},
		{name: "consume", consume: true, wantReached: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAnchoredFixture()
			a := f.anchored(func(o *AnchoredOptions) {
				o.CloseOnTapOutside = true
				o.ConsumeOutsideTap = tt.consume
			})
			other := f.surface.Router().NewTarget("other", graphics.RectFromLTWH(600, 400, 100, 100))
			reached := 0
			other.AddHandler(gestures.HandlerFunc(func(e gestures.Event) {
				if e.Type == gestures.EventDown {
					reached++
				}
			}))
			a.Open()

			mouse := drifttest.Mouse(f.surface.Router())
			mouse.Tap(graphics.Offset{X: 150, Y: 150})
			mouse.Tap(graphics.Offset{X: 110, Y: 110})
			if !a.IsOpen() {
				t.Fatal("tap inside the overlay or trigger closed it")
			}

			mouse.Tap(graphics.Offset{X: 650, Y: 450})
			if a.IsOpen() || f.closes != 1 {
				t.Errorf("IsOpen() = %v closes = %d, want false 1", a.IsOpen(), f.closes)
			}
			if reached != tt.wantReached {
				t.Errorf("reached = %d, want %d", reached, tt.wantReached)
			}
		})
	}
}

func TestAnchored_EscapeReturnsFocus(t *testing.T) {
	f := newAnchoredFixture()
	var item *focus.Node
	a := f.anchored(func(o *AnchoredOptions) {
		o.FocusOnOpen = true
		o.Builder = func(ctx *core.Element) any {
			if item == nil {
				item = f.surface.Focus().NewNode("item")
				f.surface.EntryOf(ctx).FocusScope().Attach(item)
			}
			return nil
		}
	})
	f.node.RequestFocus()
	a.Open()
	if !item.HasFocus() {
		t.Fatal("FocusOnOpen did not focus the overlay content")
	}
	// Traversal is trapped inside the overlay.
	f.surface.Focus().MoveFocus(1)
	if !item.HasFocus() {
		t.Error("focus escaped the overlay scope")
	}

	keys := drifttest.NewKeyDriver(f.surface.Focus())
	if !keys.Press(input.KeyEscape) {
		t.Fatal("escape not handled")
	}
	if a.IsOpen() {
		t.Error("escape did not close")
	}
	if !f.node.HasFocus() {
		t.Error("focus did not return to the trigger")
	}
}

func TestAnchored_EscapeOnTrigger(t *testing.T) {
	f := newAnchoredFixture()
	a := f.anchored(nil)
	f.node.RequestFocus()
	a.Open()
	drifttest.NewKeyDriver(f.surface.Focus()).Press(input.KeyEscape)
	if a.IsOpen() || !f.node.HasFocus() {
		t.Errorf("IsOpen() = %v trigger focused = %v", a.IsOpen(), f.node.HasFocus())
	}
	// Escape while closed is not consumed.
	if f.surface.Focus().HandleKey(input.Press(input.KeyEscape)) {
		t.Error("escape consumed while closed")
	}
}

func TestAnchored_KeepOnEscape(t *testing.T) {
	f := newAnchoredFixture()
	a := f.anchored(func(o *AnchoredOptions) { o.KeepOnEscape = true })
	f.node.RequestFocus()
	a.Open()
	f.surface.Focus().HandleKey(input.Press(input.KeyEscape))
	if !a.IsOpen() {
		t.Error("KeepOnEscape overlay closed on escape")
	}
}

func TestAnchored_CloseWithoutFocusReturn(t *testing.T) {
	f := newAnchoredFixture()
	other := f.surface.Focus().NewNode("other")
	f.surface.Focus().RootScope().Attach(other)
	a := f.anchored(func(o *AnchoredOptions) { o.Linger = 10 * time.Millisecond })
	f.node.RequestFocus()
	a.Open()

	a.Close()
	a.CloseWithoutFocusReturn()
	f.node.Unfocus()
	f.sched.Advance(10 * time.Millisecond)
	if f.node.HasFocus() {
		t.Error("focus returned after CloseWithoutFocusReturn")
	}
}

func TestAnchored_NoFocusStealFromElsewhere(t *testing.T) {
	f := newAnchoredFixture()
	other := f.surface.Focus().NewNode("other")
	f.surface.Focus().RootScope().Attach(other)
	a := f.anchored(nil)
	f.node.RequestFocus()
	a.Open()
	other.RequestFocus()
	a.Close()
	if !other.HasFocus() {
		t.Error("close moved focus away from an unrelated node")
	}
}

func TestAnchored_OpenAt(t *testing.T) {
	f := newAnchoredFixture()
	a := f.anchored(func(o *AnchoredOptions) { o.Position = PositionConfig{Primary: ContextMenu(graphics.Offset{}).Primary} })
	a.OpenAt(graphics.Offset{X: 300, Y: 300})
	if got := a.Rect().TopLeft(); got != (graphics.Offset{X: 300, Y: 300}) {
		t.Errorf("Rect().TopLeft() = %v, want (300, 300)", got)
	}
	a.OpenAt(graphics.Offset{X: 10, Y: 20})
	if got := a.Rect().TopLeft(); got != (graphics.Offset{X: 10, Y: 20}) {
		t.Errorf("moved Rect().TopLeft() = %v, want (10, 20)", got)
	}
	if f.opens != 1 {
		t.Errorf("opens = %d, want 1", f.opens)
	}
}

func TestAnchored_RepositionOnViewportChange(t *testing.T) {
	f := newAnchoredFixture()
	f.trigger.SetBounds(graphics.RectFromLTWH(100, 560, 80, 20))
	a := f.anchored(nil)
	a.Open()
	if a.Placement().FallbackIndex != 0 {
		t.Fatalf("FallbackIndex = %d, want 0 (above)", a.Placement().FallbackIndex)
	}
	f.surface.SetViewport(graphics.RectFromLTWH(0, 0, 800, 1000))
	if a.Placement().FallbackIndex != -1 {
		t.Errorf("FallbackIndex = %d after growing the viewport, want -1", a.Placement().FallbackIndex)
	}
	if !a.Entry().Target().Bounds().Equal(a.Rect()) {
		t.Error("hit region not moved")
	}
}

func TestAnchored_DisposeCancelsLinger(t *testing.T) {
	f := newAnchoredFixture()
	a := f.anchored(func(o *AnchoredOptions) { o.Linger = 100 * time.Millisecond })
	a.Open()
	a.Close()
	a.Dispose()
	f.sched.Advance(time.Second)
	if f.closes != 0 {
		t.Error("OnClose fired after dispose")
	}
	if len(f.surface.Entries()) != 0 {
		t.Error("entry still mounted after dispose")
	}
	a.Open()
	if a.IsOpen() {
		t.Error("Open after Dispose reopened")
	}
}

func TestAnchored_NoSurfaceReported(t *testing.T) {
	rec := drifttest.RecordErrors(t)
	a := NewAnchored(AnchoredOptions{})
	a.Open()
	if a.IsOpen() {
		t.Error("opened without a surface")
	}
	if len(rec.Errors) != 1 || !errors.Is(rec.Errors[0], errors.ErrNoSurface) {
		t.Errorf("recorded = %v, want ErrNoSurface", rec.Errors)
	}
}

func TestAnchored_PanickingCallbacksRecovered(t *testing.T) {
	rec := drifttest.RecordErrors(t)
	f := newAnchoredFixture()
	a := f.anchored(func(o *AnchoredOptions) {
		o.OnOpen = func() { panic("open") }
		o.OnClose = func() { panic("close") }
	})
	a.Open()
	a.Close()
	if a.IsOpen() {
		t.Error("panicking OnClose left the overlay open")
	}
	if len(rec.Panics) != 2 {
		t.Errorf("recorded panics = %d, want 2", len(rec.Panics))
	}
}
