package detectors

import (
	"time"

	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/scheduler"
)

const (
	// DefaultLongPressDuration is the hold time before OnLongPress fires.
	DefaultLongPressDuration = 500 * time.Millisecond
	// DefaultDoubleTapTimeout is the longest gap between two taps of a
	// double tap.
	DefaultDoubleTapTimeout = 300 * time.Millisecond
)

// PressConfig configures a PressDetector.
type PressConfig struct {
	// Scheduler runs the long-press timer and timestamps taps. Required
	// when OnLongPress or OnDoubleTap is set.
	Scheduler     scheduler.Scheduler
	OnPressChange func(pressed bool)
	// OnTapDown fires when a press starts, with the pointer event.
	OnTapDown func(e input.PointerEvent)
	// OnTap fires once per press released inside the target while still
	// pressed. Dragging out abandons the tap.
	OnTap func()
	// OnLongPress fires when a press is held for LongPressDuration. A
	// press that fired OnLongPress does not also fire OnTap.
	OnLongPress       func()
	LongPressDuration time.Duration
	// OnDoubleTap fires on the second of two taps within
	// DoubleTapTimeout. Both taps also fire OnTap.
	OnDoubleTap      func()
	DoubleTapTimeout time.Duration
}

// PressDetector tracks whether a pointer is pressing the target.
type PressDetector struct {
	cfg       PressConfig
	enabled   bool
	pressed   bool
	tracking  bool
	pointerID int64
	eligible  bool
	longFired bool
	lastTap   time.Time
	hasTap    bool
	longPress *scheduler.Slot
	remove    func()
}

// NewPressDetector attaches to target.
func NewPressDetector(target *gestures.Target, cfg PressConfig) *PressDetector {
	if cfg.LongPressDuration <= 0 {
		cfg.LongPressDuration = DefaultLongPressDuration
	}
	if cfg.DoubleTapTimeout <= 0 {
		cfg.DoubleTapTimeout = DefaultDoubleTapTimeout
	}
	d := &PressDetector{cfg: cfg, enabled: true}
	if cfg.Scheduler != nil {
		d.longPress = scheduler.NewSlot(cfg.Scheduler, "detectors.PressDetector.longPress")
	}
	d.remove = target.AddHandler(gestures.HandlerFunc(d.handle))
	return d
}

func (d *PressDetector) handle(e gestures.Event) {
	switch e.Type {
	case gestures.EventDown:
		d.down(e)
	case gestures.EventMove:
		if d.tracking && e.PointerID == d.pointerID && !e.Inside && d.pressed {
			// Drag-out abandons the press; re-entry does not restore it.
			d.eligible = false
			d.cancelLongPress()
			d.setPressed(false)
		}
	case gestures.EventUp:
		if d.tracking && e.PointerID == d.pointerID {
			d.up(e.Inside)
		}
	case gestures.EventCancel:
		if d.tracking && e.PointerID == d.pointerID {
			d.reset()
		}
	}
}

func (d *PressDetector) down(e gestures.Event) {
	if !d.enabled || d.tracking || !e.Inside {
		return
	}
	d.tracking = true
	d.pointerID = e.PointerID
	d.eligible = true
	d.longFired = false
	d.setPressed(true)
	if d.cfg.OnTapDown != nil {
		d.cfg.OnTapDown(e.PointerEvent)
	}
	if d.cfg.OnLongPress != nil && d.longPress != nil {
		d.longPress.Schedule(d.cfg.LongPressDuration, func() {
			if !d.enabled || !d.tracking || !d.pressed {
				return
			}
			d.longFired = true
			d.cfg.OnLongPress()
		})
	}
}

func (d *PressDetector) up(inside bool) {
	wasPressed := d.pressed
	tap := wasPressed && d.eligible && inside && !d.longFired && d.enabled
	d.reset()
	if !tap {
		return
	}
	if d.cfg.OnTap != nil {
		d.cfg.OnTap()
	}
	d.recordTap()
}

func (d *PressDetector) recordTap() {
	if d.cfg.OnDoubleTap == nil || d.cfg.Scheduler == nil {
		return
	}
	now := d.cfg.Scheduler.Now()
	if d.hasTap && now.Sub(d.lastTap) <= d.cfg.DoubleTapTimeout {
		d.hasTap = false
		d.cfg.OnDoubleTap()
		return
	}
	d.lastTap = now
	d.hasTap = true
}

// reset ends tracking. Safe to call when nothing is tracked.
func (d *PressDetector) reset() {
	d.tracking = false
	d.eligible = false
	d.cancelLongPress()
	d.setPressed(false)
}

func (d *PressDetector) cancelLongPress() {
	if d.longPress != nil {
		d.longPress.Cancel()
	}
}

func (d *PressDetector) setPressed(pressed bool) {
	if d.pressed == pressed {
		return
	}
	d.pressed = pressed
	if d.cfg.OnPressChange != nil {
		d.cfg.OnPressChange(pressed)
	}
}

// Pressed reports the last reported state.
func (d *PressDetector) Pressed() bool { return d.pressed }

// SetEnabled gates presses and derived events. Disabling mid-press
// reports false once and forgets any pending double tap.
func (d *PressDetector) SetEnabled(enabled bool) {
	if d.enabled == enabled {
		return
	}
	d.enabled = enabled
	if !enabled {
		d.hasTap = false
		d.reset()
	}
}

// Dispose detaches from the target and cancels timers.
func (d *PressDetector) Dispose() {
	if d.remove != nil {
		d.remove()
		d.remove = nil
	}
	if d.longPress != nil {
		d.longPress.Dispose()
	}
	d.tracking = false
}
