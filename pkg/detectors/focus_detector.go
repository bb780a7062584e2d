// Package detectors turns raw input into boolean transitions. FocusDetector,
// HoverDetector and PressDetector each own one input source;
// InteractionDetector composes them under one enabled gate. None of them
// keep a WidgetStateSet; aggregating the callbacks is the caller's job.
package detectors

import (
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/input"
)

// FocusConfig configures a FocusDetector.
type FocusConfig struct {
	// Node is an existing focus node. The detector does not dispose it.
	// When nil the detector creates and owns its own node.
	Node *focus.Node
	// Label names the owned node for debugging.
	Label string
	// Autofocus requests focus once on Attach if nothing holds focus.
	Autofocus     bool
	OnFocusChange func(focused bool)
	// OnKey runs while the node has focus and the detector is enabled.
	OnKey focus.KeyHandler
}

// FocusDetector reports focus transitions of one focus node.
type FocusDetector struct {
	node      *focus.Node
	owned     bool
	enabled   bool
	autofocus bool
	attached  bool
	onChange  func(bool)
	onKey     focus.KeyHandler
	unlisten  func()
	unkey     func()
}

// NewFocusDetector creates a detector on manager m.
func NewFocusDetector(m *focus.Manager, cfg FocusConfig) *FocusDetector {
	d := &FocusDetector{
		node:      cfg.Node,
		enabled:   true,
		autofocus: cfg.Autofocus,
		onChange:  cfg.OnFocusChange,
		onKey:     cfg.OnKey,
	}
	if d.node == nil {
		d.node = m.NewNode(cfg.Label)
		d.owned = true
	}
	d.unlisten = d.node.AddListener(func(focused bool) {
		if d.onChange != nil {
			d.onChange(focused)
		}
	})
	d.unkey = d.node.AddKeyHandler(func(e input.KeyEvent) focus.KeyResult {
		if !d.enabled || d.onKey == nil {
			return focus.KeyIgnored
		}
		return d.onKey(e)
	})
	return d
}

// Node returns the focus node.
func (d *FocusDetector) Node() *focus.Node { return d.node }

// Owned reports whether the detector created, and will dispose, the node.
func (d *FocusDetector) Owned() bool { return d.owned }

// Attach adds the node to scope unless it already belongs to one, then
// honors Autofocus. Only the first Attach autofocuses.
func (d *FocusDetector) Attach(scope *focus.Scope) {
	if d.node.Scope() == nil && scope != nil {
		scope.Attach(d.node)
	}
	if d.attached {
		return
	}
	d.attached = true
	if d.autofocus && d.node.Manager().PrimaryFocus() == nil {
		d.node.RequestFocus()
	}
}

// HasFocus reports whether the node is focused.
func (d *FocusDetector) HasFocus() bool { return d.node.HasFocus() }

// SetEnabled gates the OnKey hook. Focus itself is left alone.
func (d *FocusDetector) SetEnabled(enabled bool) { d.enabled = enabled }

// Enabled reports the gate state.
func (d *FocusDetector) Enabled() bool { return d.enabled }

// Dispose stops reporting. An owned node is disposed; a caller's node is
// left attached and focused as it was.
func (d *FocusDetector) Dispose() {
	if d.unlisten == nil {
		return
	}
	d.unlisten()
	d.unkey()
	d.unlisten, d.unkey = nil, nil
	if d.owned {
		d.node.Dispose()
	}
}
