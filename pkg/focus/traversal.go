package focus

import (
	"math"

	"github.com/go-drift/headless/pkg/graphics"
)

// TraversalDirection indicates the focus traversal direction.
type TraversalDirection int

const (
	TraversalUp TraversalDirection = iota
	TraversalDown
	TraversalLeft
	TraversalRight
)

// FocusInDirection moves focus to the nearest traversable node in the
// given direction, scored by distance along the axis plus twice the
// cross-axis offset. Without geometry, or with no candidate in that
// direction, it falls back to ordered traversal.
func (m *Manager) FocusInDirection(direction TraversalDirection) bool {
	current := m.primary
	if current == nil {
		return m.root.FocusFirst()
	}
	return current.scope.traversalScope().focusInDirection(current, direction)
}

// FocusInDirection moves focus among the nodes of s only. Radio groups
// and tab lists use it to keep arrow keys inside the group.
func (s *Scope) FocusInDirection(direction TraversalDirection) bool {
	current := s.manager.primary
	if current == nil || !s.Contains(current) {
		return s.FocusFirst()
	}
	return s.focusInDirection(current, direction)
}

func (s *Scope) focusInDirection(current *Node, direction TraversalDirection) bool {
	currentRect, ok := nodeRect(current)
	if !ok {
		return s.moveLinear(current, linearDelta(direction))
	}

	var best *Node
	bestScore := math.MaxFloat64
	for _, candidate := range s.Nodes() {
		if candidate == current || !candidate.traversable() {
			continue
		}
		rect, ok := nodeRect(candidate)
		if !ok || !isInDirection(currentRect, rect, direction) {
			continue
		}
		if score := directionalScore(currentRect, rect, direction); score < bestScore {
			bestScore = score
			best = candidate
		}
	}
	if best == nil {
		return s.moveLinear(current, linearDelta(direction))
	}
	return best.RequestFocus()
}

// moveLinear steps through s's nodes with wrap-around.
func (s *Scope) moveLinear(current *Node, delta int) bool {
	nodes := s.Nodes()
	count := len(nodes)
	index := -1
	for i, n := range nodes {
		if n == current {
			index = i
		}
	}
	for step := 1; step <= count; step++ {
		candidate := nodes[wrapIndex(index+delta*step, count)]
		if candidate != current && candidate.traversable() {
			return candidate.RequestFocus()
		}
	}
	return false
}

// MoveFocus steps focus by delta among the nodes of s, wrapping.
func (s *Scope) MoveFocus(delta int) bool {
	current := s.manager.primary
	if current == nil || !s.Contains(current) {
		if delta < 0 {
			return s.FocusLast()
		}
		return s.FocusFirst()
	}
	return s.moveLinear(current, delta)
}

func nodeRect(n *Node) (graphics.Rect, bool) {
	if n.Rect == nil {
		return graphics.Rect{}, false
	}
	r := n.Rect.Bounds()
	return r, !r.IsEmpty()
}

func linearDelta(direction TraversalDirection) int {
	if direction == TraversalUp || direction == TraversalLeft {
		return -1
	}
	return 1
}

// isInDirection checks if target lies in the specified direction from source.
func isInDirection(source, target graphics.Rect, direction TraversalDirection) bool {
	s, t := source.Center(), target.Center()
	switch direction {
	case TraversalUp:
		return t.Y < s.Y
	case TraversalDown:
		return t.Y > s.Y
	case TraversalLeft:
		return t.X < s.X
	case TraversalRight:
		return t.X > s.X
	}
	return false
}

// directionalScore rates a candidate; lower is better. Cross-axis distance
// is weighted double so aligned elements win.
func directionalScore(source, target graphics.Rect, direction TraversalDirection) float64 {
	s, t := source.Center(), target.Center()
	var primary, cross float64
	switch direction {
	case TraversalUp, TraversalDown:
		primary = math.Abs(t.Y - s.Y)
		cross = math.Abs(t.X - s.X)
	case TraversalLeft, TraversalRight:
		primary = math.Abs(t.X - s.X)
		cross = math.Abs(t.Y - s.Y)
	}
	return primary + cross*2
}
