package overlay

import (
	"time"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/scheduler"
)

// Phase is the lifecycle state of an Anchored overlay.
type Phase int

const (
	// PhaseClosed means nothing is mounted.
	PhaseClosed Phase = iota
	// PhaseOpenRequested means the entry is mounted and OnOpenRequested
	// has not called proceed yet.
	PhaseOpenRequested
	// PhaseOpen means the overlay is fully open.
	PhaseOpen
	// PhaseCloseRequested means OnCloseRequested has not called proceed yet.
	PhaseCloseRequested
	// PhasePendingRemoval means the overlay lingers before unmounting.
	PhasePendingRemoval
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpenRequested:
		return "open-requested"
	case PhaseOpen:
		return "open"
	case PhaseCloseRequested:
		return "close-requested"
	case PhasePendingRemoval:
		return "pending-removal"
	default:
		return "unknown"
	}
}

// Measurable reports an on-screen rectangle. *gestures.Target satisfies it.
type Measurable interface {
	Bounds() graphics.Rect
}

// OpenInfo is passed to OnOpenRequested.
type OpenInfo struct {
	Anchor    graphics.Rect
	Placement Placement
	// Pointer is set for overlays opened with OpenAt.
	Pointer *graphics.Offset
}

// AnchoredOptions configures an Anchored overlay.
type AnchoredOptions struct {
	Surface   *Surface
	Scheduler scheduler.Scheduler
	Name      string

	// Anchor measures the trigger. Nil anchors to the viewport.
	Anchor Measurable
	// TriggerFocus receives focus back when the overlay closes.
	TriggerFocus *focus.Node
	// FocusParent is the scope the overlay's trap scope is created in;
	// nil means the root scope.
	FocusParent *focus.Scope

	Size     graphics.Size
	Position PositionConfig
	Builder  core.BuildFunc

	// Linger keeps the overlay mounted this long after close proceeds.
	// It needs a Scheduler.
	Linger time.Duration

	CloseOnTapOutside bool
	// ConsumeOutsideTap swallows the dismissing tap so it does not also
	// reach whatever is underneath.
	ConsumeOutsideTap bool
	// KeepOnEscape disables escape dismissal.
	KeepOnEscape bool
	// SkipFocusReturn makes every close behave like
	// CloseWithoutFocusReturn.
	SkipFocusReturn bool
	// FocusOnOpen moves focus to the first node of the overlay scope once
	// open.
	FocusOnOpen bool
	// IgnorePointer keeps the overlay out of hit testing.
	IgnorePointer bool
	// Barrier makes the overlay modal.
	Barrier *Barrier
	// Keys overrides input.DefaultKeyMap for escape dismissal.
	Keys *input.KeyMap

	// OnOpenRequested intercepts opening. The overlay is mounted but
	// stays in PhaseOpenRequested until proceed is called. Nothing times
	// out a forgotten proceed.
	OnOpenRequested func(info OpenInfo, proceed func())
	// OnCloseRequested intercepts closing the same way.
	OnCloseRequested func(proceed func())
	OnOpen           func()
	OnClose          func()
}

// Anchored drives one overlay entry positioned against a trigger:
//
//	Closed -> [OpenRequested] -> Open -> [CloseRequested] -> [PendingRemoval] -> Closed
//
// Bracketed phases happen only when an interceptor or linger is
// configured. Opening again while closing returns straight to Open and
// the overlay is never unmounted.
type Anchored struct {
	opts      AnchoredOptions
	keys      input.KeyMap
	phase     Phase
	gen       uint64
	entry     *Entry
	scope     *focus.Scope
	pointer   *graphics.Offset
	placement Placement
	linger    *scheduler.Slot

	returnFocus bool
	disposed    bool

	untrigger  func()
	unscope    func()
	unviewport func()
}

// NewAnchored creates a closed overlay.
func NewAnchored(opts AnchoredOptions) *Anchored {
	if opts.Name == "" {
		opts.Name = "anchored"
	}
	a := &Anchored{opts: opts, keys: input.DefaultKeyMap()}
	if opts.Keys != nil {
		a.keys = *opts.Keys
	}
	if opts.Scheduler != nil {
		a.linger = scheduler.NewSlot(opts.Scheduler, "overlay.Anchored.linger")
	}
	if opts.TriggerFocus != nil {
		a.untrigger = opts.TriggerFocus.AddKeyHandler(a.handleKey)
	}
	return a
}

// Phase returns the lifecycle state.
func (a *Anchored) Phase() Phase { return a.phase }

// IsOpen reports whether the overlay is mounted. It stays true while an
// interceptor is pending and while the overlay lingers.
func (a *Anchored) IsOpen() bool { return a.phase != PhaseClosed }

// IsClosing reports whether a close is in progress.
func (a *Anchored) IsClosing() bool {
	return a.phase == PhaseCloseRequested || a.phase == PhasePendingRemoval
}

// Entry returns the mounted entry, or nil when closed.
func (a *Anchored) Entry() *Entry { return a.entry }

// FocusScope returns the overlay's trap scope while mounted. Focusable
// content inside the overlay attaches its nodes here.
func (a *Anchored) FocusScope() *focus.Scope { return a.scope }

// Placement returns the last computed placement.
func (a *Anchored) Placement() Placement { return a.placement }

// Rect returns the overlay's current rectangle.
func (a *Anchored) Rect() graphics.Rect { return a.placement.Rect }

// Open mounts and opens the overlay. It is a no-op when already open.
func (a *Anchored) Open() { a.open(nil) }

// OpenAt opens the overlay anchored at a pointer position, for context
// menus. When already open it moves the overlay to p.
func (a *Anchored) OpenAt(p graphics.Offset) { a.open(&p) }

// Toggle opens a closed or closing overlay and closes an open one.
func (a *Anchored) Toggle() {
	if a.phase == PhaseOpen || a.phase == PhaseOpenRequested {
		a.Close()
		return
	}
	a.Open()
}

func (a *Anchored) open(pointer *graphics.Offset) {
	if a.disposed {
		return
	}
	if a.opts.Surface == nil {
		errors.Report(errors.New("overlay.Anchored.Open", errors.KindOverlay, errors.ErrNoSurface))
		return
	}
	switch a.phase {
	case PhaseOpen, PhaseOpenRequested:
		if pointer != nil {
			a.pointer = pointer
			a.Reposition()
		}
		return
	case PhaseCloseRequested, PhasePendingRemoval:
		a.gen++
		if a.linger != nil {
			a.linger.Cancel()
		}
		a.phase = PhaseOpen
		if pointer != nil {
			a.pointer = pointer
			a.Reposition()
		}
		return
	}

	a.gen++
	a.pointer = pointer
	a.mount()
	if a.opts.OnOpenRequested == nil {
		a.finishOpen()
		return
	}
	a.phase = PhaseOpenRequested
	gen := a.gen
	info := OpenInfo{Anchor: a.anchorRect(), Placement: a.placement, Pointer: pointer}
	proceed := func() {
		if a.gen == gen && a.phase == PhaseOpenRequested {
			a.finishOpen()
		}
	}
	errors.Guard("overlay.Anchored.OnOpenRequested", func() { a.opts.OnOpenRequested(info, proceed) })
}

func (a *Anchored) finishOpen() {
	a.phase = PhaseOpen
	if a.opts.FocusOnOpen && a.scope != nil {
		a.scope.FocusFirst()
	}
	if a.opts.OnOpen != nil {
		errors.Guard("overlay.Anchored.OnOpen", a.opts.OnOpen)
	}
}

// Close closes the overlay and returns focus to the trigger when focus
// was inside the overlay or the trigger. It is a no-op when closed or
// already closing.
func (a *Anchored) Close() { a.close(!a.opts.SkipFocusReturn) }

// CloseWithoutFocusReturn closes the overlay and leaves focus alone, for
// closes caused by something that moves focus itself. Called while a
// close is already in progress, it suppresses that close's focus return.
func (a *Anchored) CloseWithoutFocusReturn() { a.close(false) }

func (a *Anchored) close(returnFocus bool) {
	if a.disposed {
		return
	}
	switch a.phase {
	case PhaseClosed:
		return
	case PhaseCloseRequested, PhasePendingRemoval:
		if !returnFocus {
			a.returnFocus = false
		}
		return
	}

	a.returnFocus = returnFocus
	a.gen++
	if a.opts.OnCloseRequested == nil {
		a.proceedClose()
		return
	}
	a.phase = PhaseCloseRequested
	gen := a.gen
	proceed := func() {
		if a.gen == gen && a.phase == PhaseCloseRequested {
			a.proceedClose()
		}
	}
	errors.Guard("overlay.Anchored.OnCloseRequested", func() { a.opts.OnCloseRequested(proceed) })
}

func (a *Anchored) proceedClose() {
	if a.opts.Linger > 0 && a.linger != nil {
		a.phase = PhasePendingRemoval
		a.linger.Schedule(a.opts.Linger, a.finishClose)
		return
	}
	a.finishClose()
}

func (a *Anchored) finishClose() {
	if a.phase == PhaseClosed {
		return
	}
	restore := a.returnFocus && a.focusInside()
	a.unmount()
	a.phase = PhaseClosed
	if restore && a.opts.TriggerFocus != nil && !a.opts.TriggerFocus.Disposed() {
		a.opts.TriggerFocus.RequestFocus()
	}
	if a.opts.OnClose != nil {
		errors.Guard("overlay.Anchored.OnClose", a.opts.OnClose)
	}
}

// focusInside reports whether focus is lost, in the overlay or on the
// trigger.
func (a *Anchored) focusInside() bool {
	primary := a.opts.Surface.Focus().PrimaryFocus()
	if primary == nil {
		return true
	}
	if a.scope != nil && a.scope.Contains(primary) {
		return true
	}
	return primary == a.opts.TriggerFocus
}

func (a *Anchored) handleKey(e input.KeyEvent) focus.KeyResult {
	if a.opts.KeepOnEscape || !input.Matches(e, a.keys.Dismiss) {
		return focus.KeyIgnored
	}
	if a.phase != PhaseOpen && a.phase != PhaseOpenRequested {
		return focus.KeyIgnored
	}
	a.close(true)
	return focus.KeyHandled
}

func (a *Anchored) handleOutsideTap(input.PointerEvent) bool {
	if a.phase != PhaseOpen && a.phase != PhaseOpenRequested {
		return false
	}
	a.Close()
	return a.opts.ConsumeOutsideTap
}

func (a *Anchored) mount() {
	s := a.opts.Surface
	parent := a.opts.FocusParent
	if parent == nil {
		parent = s.Focus().RootScope()
	}
	a.scope = parent.NewChildScope(a.opts.Name)
	a.scope.Trap = true
	a.unscope = a.scope.AddKeyHandler(a.handleKey)

	a.entry = NewEntry(a.opts.Name, a.opts.Builder)
	a.entry.IgnorePointer = a.opts.IgnorePointer
	a.entry.Barrier = a.opts.Barrier
	a.entry.scope = a.scope
	if a.opts.CloseOnTapOutside {
		a.entry.OutsideTap = a.handleOutsideTap
	}
	a.entry.Exempt = func(p graphics.Offset) bool {
		return a.opts.Anchor != nil && a.pointer == nil && a.opts.Anchor.Bounds().Contains(p)
	}
	a.placement = a.compute()
	a.entry.SetRect(a.placement.Rect)
	s.Insert(a.entry, nil, nil)
	a.unviewport = s.AddViewportListener(func(graphics.Rect) { a.Reposition() })
}

func (a *Anchored) unmount() {
	if a.unviewport != nil {
		a.unviewport()
		a.unviewport = nil
	}
	if a.unscope != nil {
		a.unscope()
		a.unscope = nil
	}
	if a.scope != nil {
		a.scope.Remove()
		a.scope = nil
	}
	if a.entry != nil {
		a.entry.Remove()
		a.entry = nil
	}
}

func (a *Anchored) anchorRect() graphics.Rect {
	if a.opts.Anchor == nil {
		return a.opts.Surface.Viewport()
	}
	return a.opts.Anchor.Bounds()
}

func (a *Anchored) compute() Placement {
	cfg := a.opts.Position
	if a.pointer != nil {
		cfg.Pointer = a.pointer
	}
	return ComputePlacement(a.anchorRect(), a.opts.Size, cfg, a.opts.Surface.Viewport())
}

// Reposition recomputes the overlay rect from the anchor's current
// bounds. Call it after the trigger moves; viewport changes reposition
// automatically.
func (a *Anchored) Reposition() {
	if a.entry == nil {
		return
	}
	a.placement = a.compute()
	a.entry.SetRect(a.placement.Rect)
}

// SetSize changes the overlay's natural size and repositions.
func (a *Anchored) SetSize(size graphics.Size) {
	a.opts.Size = size
	a.Reposition()
}

// SetPosition replaces the positioning config and repositions.
func (a *Anchored) SetPosition(cfg PositionConfig) {
	a.opts.Position = cfg
	a.Reposition()
}

// MarkNeedsBuild rebuilds the overlay content while mounted.
func (a *Anchored) MarkNeedsBuild() {
	if a.entry != nil {
		a.entry.MarkNeedsBuild()
	}
}

// Dispose unmounts immediately without callbacks and cancels the linger
// timer. Later calls to Open and Close are ignored.
func (a *Anchored) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	a.gen++
	if a.linger != nil {
		a.linger.Dispose()
	}
	if a.untrigger != nil {
		a.untrigger()
		a.untrigger = nil
	}
	a.unmount()
	a.phase = PhaseClosed
}

// Disposed reports whether Dispose was called.
func (a *Anchored) Disposed() bool { return a.disposed }
