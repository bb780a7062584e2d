package detectors

import (
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/input"
)

// HoverConfig configures a HoverDetector.
type HoverConfig struct {
	// Cursor is shown over the target while enabled.
	Cursor        input.Cursor
	OnHoverChange func(hovered bool)
}

// HoverDetector reports pointer enter and exit for mouse and stylus.
// Every transition is reported; there is no debouncing.
type HoverDetector struct {
	target   *gestures.Target
	cursor   input.Cursor
	onChange func(bool)
	enabled  bool
	hovered  bool
	remove   func()
}

// NewHoverDetector attaches to target.
func NewHoverDetector(target *gestures.Target, cfg HoverConfig) *HoverDetector {
	d := &HoverDetector{
		target:   target,
		cursor:   cfg.Cursor,
		onChange: cfg.OnHoverChange,
		enabled:  true,
	}
	target.SetCursor(cfg.Cursor)
	d.remove = target.AddHandler(gestures.HandlerFunc(d.handle))
	return d
}

func (d *HoverDetector) handle(e gestures.Event) {
	if !e.Kind.SupportsHover() {
		return
	}
	switch e.Type {
	case gestures.EventEnter:
		if d.enabled {
			d.set(true)
		}
	case gestures.EventExit:
		d.set(false)
	}
}

func (d *HoverDetector) set(hovered bool) {
	if d.hovered == hovered {
		return
	}
	d.hovered = hovered
	if d.onChange != nil {
		d.onChange(hovered)
	}
}

// Hovered reports the last reported state.
func (d *HoverDetector) Hovered() bool { return d.hovered }

// EffectiveCursor returns the configured cursor while enabled and
// CursorDefault while disabled.
func (d *HoverDetector) EffectiveCursor() input.Cursor {
	if !d.enabled {
		return input.CursorDefault
	}
	return d.cursor
}

// SetEnabled turns reporting on or off. Disabling while hovered reports
// false once.
func (d *HoverDetector) SetEnabled(enabled bool) {
	if d.enabled == enabled {
		return
	}
	d.enabled = enabled
	d.target.SetCursor(d.EffectiveCursor())
	if !enabled {
		d.set(false)
	}
}

// Dispose detaches from the target.
func (d *HoverDetector) Dispose() {
	if d.remove != nil {
		d.remove()
		d.remove = nil
	}
}
