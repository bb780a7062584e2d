package focus

import (
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
)

// RectProvider supplies a node's on-screen rectangle for directional
// traversal. gestures.Target implements it.
type RectProvider interface {
	Bounds() graphics.Rect
}

// KeyResult indicates how a key event was handled.
type KeyResult int

const (
	// KeyIgnored lets the event continue to the enclosing scope.
	KeyIgnored KeyResult = iota
	// KeyHandled stops propagation.
	KeyHandled
)

// KeyHandler handles a key event for a node or scope.
type KeyHandler func(e input.KeyEvent) KeyResult

type keyEntry struct {
	fn KeyHandler
}

type listenerEntry struct {
	fn func(hasFocus bool)
}

// Node is a focusable element. Create nodes with Manager.NewNode and
// attach them to a Scope before requesting focus.
type Node struct {
	// CanRequestFocus gates RequestFocus and traversal.
	CanRequestFocus bool
	// SkipTraversal keeps the node focusable by request only.
	SkipTraversal bool
	DebugLabel    string
	// Rect provides geometry for directional traversal.
	Rect RectProvider

	manager   *Manager
	scope     *Scope
	hasFocus  bool
	disposed  bool
	listeners []*listenerEntry
	handlers  []*keyEntry
}

func (n *Node) canReceiveFocus() bool {
	return n != nil && !n.disposed && n.scope != nil && n.CanRequestFocus
}

func (n *Node) traversable() bool {
	return n.canReceiveFocus() && !n.SkipTraversal
}

// HasFocus reports whether this node is the primary focus.
func (n *Node) HasFocus() bool { return n.hasFocus }

// Scope returns the scope the node is attached to, or nil.
func (n *Node) Scope() *Scope { return n.scope }

// Manager returns the owning manager.
func (n *Node) Manager() *Manager { return n.manager }

// Disposed reports whether Dispose was called.
func (n *Node) Disposed() bool { return n.disposed }

// RequestFocus makes this node the primary focus. It reports whether the
// node holds focus afterwards.
func (n *Node) RequestFocus() bool {
	if !n.canReceiveFocus() {
		return false
	}
	n.manager.setPrimaryFocus(n)
	return true
}

// Unfocus clears primary focus if this node holds it.
func (n *Node) Unfocus() {
	if n.manager != nil && n.manager.primary == n {
		n.manager.setPrimaryFocus(nil)
	}
}

// NextFocus moves focus to the next traversable node.
func (n *Node) NextFocus() bool { return n.manager.MoveFocus(1) }

// PreviousFocus moves focus to the previous traversable node.
func (n *Node) PreviousFocus() bool { return n.manager.MoveFocus(-1) }

// AddListener registers fn for focus changes and returns a function that
// removes it.
func (n *Node) AddListener(fn func(hasFocus bool)) func() {
	entry := &listenerEntry{fn: fn}
	n.listeners = append(n.listeners, entry)
	return func() {
		for i, e := range n.listeners {
			if e == entry {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// AddKeyHandler registers a key handler that runs while this node has
// focus. Handlers added later run first. The returned function removes it.
func (n *Node) AddKeyHandler(h KeyHandler) func() {
	entry := &keyEntry{fn: h}
	n.handlers = append(n.handlers, entry)
	return func() {
		n.handlers = removeKeyEntry(n.handlers, entry)
	}
}

// Dispose detaches the node. A focused node gives up focus without
// notifying its own listeners.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.listeners = nil
	n.handlers = nil
	if n.manager != nil && n.manager.primary == n {
		n.manager.setPrimaryFocus(nil)
	}
	if n.scope != nil {
		n.scope.Detach(n)
	}
	n.disposed = true
}

func (n *Node) setFocusState(hasFocus bool) {
	n.hasFocus = hasFocus
	listeners := append([]*listenerEntry(nil), n.listeners...)
	for _, l := range listeners {
		l.fn(hasFocus)
	}
}

func (n *Node) String() string {
	if n.DebugLabel != "" {
		return "Node(" + n.DebugLabel + ")"
	}
	return "Node"
}

func removeKeyEntry(list []*keyEntry, entry *keyEntry) []*keyEntry {
	for i, e := range list {
		if e == entry {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func dispatchKey(handlers []*keyEntry, e input.KeyEvent) bool {
	handlers = append([]*keyEntry(nil), handlers...)
	for i := len(handlers) - 1; i >= 0; i-- {
		if handlers[i].fn(e) == KeyHandled {
			return true
		}
	}
	return false
}
