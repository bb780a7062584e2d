package semantics

import (
	"sort"
	"strings"
)

// SemanticsAction is an action assistive technology can perform.
type SemanticsAction uint32

const (
	SemanticsActionTap SemanticsAction = 1 << iota
	SemanticsActionLongPress
	SemanticsActionFocus
	SemanticsActionDismiss
	SemanticsActionIncrease
	SemanticsActionDecrease
	SemanticsActionExpand
	SemanticsActionCollapse
	SemanticsActionSetText
)

var actionNames = map[SemanticsAction]string{
	SemanticsActionTap:       "tap",
	SemanticsActionLongPress: "long-press",
	SemanticsActionFocus:     "focus",
	SemanticsActionDismiss:   "dismiss",
	SemanticsActionIncrease:  "increase",
	SemanticsActionDecrease:  "decrease",
	SemanticsActionExpand:    "expand",
	SemanticsActionCollapse:  "collapse",
	SemanticsActionSetText:   "set-text",
}

// Has reports whether every action in a is in s.
func (s SemanticsAction) Has(a SemanticsAction) bool { return s&a == a }

func (s SemanticsAction) String() string {
	var names []string
	for a, name := range actionNames {
		if s.Has(a) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

// SemanticsActions maps actions to handlers. args carries the action
// payload, such as the text for SemanticsActionSetText.
type SemanticsActions struct {
	handlers map[SemanticsAction]func(args any)
}

// NewSemanticsActions returns an empty action set.
func NewSemanticsActions() *SemanticsActions {
	return &SemanticsActions{handlers: make(map[SemanticsAction]func(any))}
}

// SetHandler registers fn for action; a nil fn removes it.
func (a *SemanticsActions) SetHandler(action SemanticsAction, fn func(args any)) {
	if fn == nil {
		delete(a.handlers, action)
		return
	}
	a.handlers[action] = fn
}

// On registers a handler that ignores its payload.
func (a *SemanticsActions) On(action SemanticsAction, fn func()) {
	if fn == nil {
		a.SetHandler(action, nil)
		return
	}
	a.SetHandler(action, func(any) { fn() })
}

// Supported returns the set of registered actions.
func (a *SemanticsActions) Supported() SemanticsAction {
	var s SemanticsAction
	for action := range a.handlers {
		s |= action
	}
	return s
}

// Perform runs the handler for action and reports whether one existed.
func (a *SemanticsActions) Perform(action SemanticsAction, args any) bool {
	if a == nil {
		return false
	}
	fn, ok := a.handlers[action]
	if !ok {
		return false
	}
	fn(args)
	return true
}

// IsEmpty reports whether no handler is registered.
func (a *SemanticsActions) IsEmpty() bool { return len(a.handlers) == 0 }

// Merge copies handlers from other that a does not have.
func (a *SemanticsActions) Merge(other *SemanticsActions) {
	for action, fn := range other.handlers {
		if _, ok := a.handlers[action]; !ok {
			a.handlers[action] = fn
		}
	}
}
