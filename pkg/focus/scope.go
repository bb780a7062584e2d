package focus

import "github.com/go-drift/headless/pkg/input"

type member struct {
	node  *Node
	scope *Scope
}

// Scope groups nodes and nested scopes. Ordered traversal flattens
// nested scopes into their parent unless the nested scope traps focus.
type Scope struct {
	DebugLabel string
	// Trap confines ordered and directional traversal to this scope while
	// focus is inside it, and hides its members from the parent's traversal.
	Trap bool

	manager  *Manager
	parent   *Scope
	members  []member
	focused  *Node
	handlers []*keyEntry
	removed  bool
}

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Attach adds n to the end of the scope's traversal order. A node can
// belong to one scope; attaching moves it.
func (s *Scope) Attach(n *Node) {
	if n == nil || n.disposed || n.scope == s {
		return
	}
	if n.scope != nil {
		n.scope.Detach(n)
	}
	n.scope = s
	s.members = append(s.members, member{node: n})
}

// Detach removes n. A focused node loses focus.
func (s *Scope) Detach(n *Node) {
	for i, m := range s.members {
		if m.node == n {
			s.members = append(s.members[:i:i], s.members[i+1:]...)
			break
		}
	}
	if n.scope == s {
		if s.manager.primary == n {
			s.manager.setPrimaryFocus(nil)
		}
		n.scope = nil
	}
	for sc := s; sc != nil; sc = sc.parent {
		if sc.focused == n {
			sc.focused = nil
		}
	}
}

// NewChildScope creates a scope nested at the end of s.
func (s *Scope) NewChildScope(label string) *Scope {
	child := &Scope{DebugLabel: label, manager: s.manager, parent: s}
	s.members = append(s.members, member{scope: child})
	return child
}

// Remove detaches the scope from its parent. If focus was inside, it is
// cleared.
func (s *Scope) Remove() {
	if s.removed || s.parent == nil {
		return
	}
	if p := s.manager.primary; p != nil && s.Contains(p) {
		s.manager.setPrimaryFocus(nil)
	}
	for i, m := range s.parent.members {
		if m.scope == s {
			s.parent.members = append(s.parent.members[:i:i], s.parent.members[i+1:]...)
			break
		}
	}
	s.removed = true
}

// Contains reports whether n belongs to s or a nested scope.
func (s *Scope) Contains(n *Node) bool {
	if n == nil {
		return false
	}
	for sc := n.scope; sc != nil; sc = sc.parent {
		if sc == s {
			return true
		}
	}
	return false
}

// HasFocus reports whether the primary focus is inside s.
func (s *Scope) HasFocus() bool {
	return s.Contains(s.manager.primary)
}

// FocusedChild returns the node most recently focused inside s.
func (s *Scope) FocusedChild() *Node { return s.focused }

// Nodes returns the scope's nodes in traversal order, flattening nested
// scopes that do not trap focus.
func (s *Scope) Nodes() []*Node {
	var out []*Node
	s.collect(&out, true)
	return out
}

func (s *Scope) collect(out *[]*Node, top bool) {
	if s.Trap && !top {
		return
	}
	for _, m := range s.members {
		if m.node != nil {
			*out = append(*out, m.node)
		} else {
			m.scope.collect(out, false)
		}
	}
}

// FocusFirst focuses the first traversable node.
func (s *Scope) FocusFirst() bool {
	for _, n := range s.Nodes() {
		if n.traversable() {
			return n.RequestFocus()
		}
	}
	return false
}

// FocusLast focuses the last traversable node.
func (s *Scope) FocusLast() bool {
	nodes := s.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].traversable() {
			return nodes[i].RequestFocus()
		}
	}
	return false
}

// AddKeyHandler registers a handler that sees key events bubbling out of
// focused nodes inside s. The returned function removes it.
func (s *Scope) AddKeyHandler(h KeyHandler) func() {
	entry := &keyEntry{fn: h}
	s.handlers = append(s.handlers, entry)
	return func() {
		s.handlers = removeKeyEntry(s.handlers, entry)
	}
}

func (s *Scope) handleKey(e input.KeyEvent) bool {
	return dispatchKey(s.handlers, e)
}

// traversalScope returns the nearest trapping ancestor, or the root.
func (s *Scope) traversalScope() *Scope {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.Trap || sc.parent == nil {
			return sc
		}
	}
	return s
}
