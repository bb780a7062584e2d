// Package focus tracks keyboard focus: focusable nodes grouped in scopes,
// a manager holding the primary focus, key routing from the focused node
// outward, and ordered and directional traversal.
package focus

import (
	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/input"
)

// Manager owns the focus tree for one surface.
type Manager struct {
	root      *Scope
	primary   *Node
	listeners []*changeEntry
}

type changeEntry struct {
	fn func(prev, next *Node)
}

// NewManager returns a manager with an empty root scope.
func NewManager() *Manager {
	m := &Manager{}
	m.root = &Scope{DebugLabel: "root", manager: m}
	return m
}

// RootScope returns the root scope.
func (m *Manager) RootScope() *Scope { return m.root }

// PrimaryFocus returns the focused node, or nil.
func (m *Manager) PrimaryFocus() *Node { return m.primary }

// NewNode creates an unattached, focusable node.
func (m *Manager) NewNode(label string) *Node {
	return &Node{CanRequestFocus: true, DebugLabel: label, manager: m}
}

// AddListener registers fn for primary focus changes and returns a
// function that removes it.
func (m *Manager) AddListener(fn func(prev, next *Node)) func() {
	entry := &changeEntry{fn: fn}
	m.listeners = append(m.listeners, entry)
	return func() {
		for i, e := range m.listeners {
			if e == entry {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// HandleKey routes e to the focused node's handlers, then to each
// enclosing scope up to the root. It reports whether a handler consumed
// the event. With nothing focused only the root scope sees the event.
func (m *Manager) HandleKey(e input.KeyEvent) (handled bool) {
	defer errors.RecoverWithCallback("focus.Manager.HandleKey", func(any) { handled = true })

	node := m.primary
	scope := m.root
	if node != nil {
		if dispatchKey(node.handlers, e) {
			return true
		}
		scope = node.scope
	}
	for ; scope != nil; scope = scope.parent {
		if scope.handleKey(e) {
			return true
		}
	}
	return false
}

// MoveFocus moves focus by delta positions in traversal order within the
// traversal scope of the current focus, wrapping at the ends.
func (m *Manager) MoveFocus(delta int) bool {
	scope := m.root
	if m.primary != nil && m.primary.scope != nil {
		scope = m.primary.scope.traversalScope()
	}
	nodes := scope.Nodes()
	count := len(nodes)
	if count == 0 {
		return false
	}

	current := -1
	for i, n := range nodes {
		if n == m.primary {
			current = i
			break
		}
	}
	if current < 0 && delta < 0 {
		current = count
	}

	for step := 1; step <= count; step++ {
		candidate := nodes[wrapIndex(current+delta*step, count)]
		if candidate.traversable() {
			m.setPrimaryFocus(candidate)
			return true
		}
	}
	return false
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

func (m *Manager) setPrimaryFocus(node *Node) {
	if m.primary == node {
		return
	}
	prev := m.primary
	m.primary = node
	if node != nil {
		for sc := node.scope; sc != nil; sc = sc.parent {
			sc.focused = node
		}
	}
	if prev != nil && !prev.disposed {
		prev.setFocusState(false)
	}
	if node != nil {
		node.setFocusState(true)
	}
	listeners := append([]*changeEntry(nil), m.listeners...)
	for _, l := range listeners {
		l.fn(prev, node)
	}
}
