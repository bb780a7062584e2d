// Package core provides the headless build layer: elements that run a
// build function, a BuildOwner that rebuilds dirty elements in depth
// order, Observable values, and Scope, which publishes a component's
// state to descendant builders.
//
// A Scope separates reading from subscribing. Watch reads the current
// value and registers the calling element as a dependent, so it rebuilds
// when a different value is published. Peek reads without subscribing.
// Publishing assigns into the scope rather than rebuilding the publisher,
// so only subscribed elements rebuild:
//
//	scope := core.NewScope(widgets.ButtonState{})
//	label := core.ScopeBuilder(owner, nil, "label", scope,
//	    func(ctx *core.Element, s widgets.ButtonState) any {
//	        if s.IsPressed() {
//	            return "[pressed]"
//	        }
//	        return "[button]"
//	    })
//	scope.Publish(next)  // marks label dirty
//	owner.FlushBuild()   // label rebuilds; nothing else does
package core
