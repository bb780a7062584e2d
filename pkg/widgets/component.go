package widgets

import (
	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// component is the plumbing every widget shares: the scope its state is
// published on, the element its builder runs in, and teardown.
type component[S comparable] struct {
	env      *Env
	name     string
	scope    *core.Scope[S]
	element  *core.Element
	state    func() S
	cleanups []func()
	disposed bool
}

func (c *component[S]) init(env *Env, name string, state func() S) {
	c.env = env
	c.name = name
	c.state = state
	c.scope = core.NewScope(state())
}

// mount creates the component's element under parent. Unmounting the
// element calls dispose.
func (c *component[S]) mount(parent *core.Element, build func(ctx *core.Element, state S) any, dispose func()) {
	if build == nil {
		c.element = c.env.mount(parent, c.name, nil)
	} else {
		c.element = core.ScopeBuilder(c.env.Owner, parent, c.name, c.scope, build)
	}
	c.element.OnDispose(dispose)
}

// publish recomputes the state value. Equal values are dropped by the
// scope.
func (c *component[S]) publish() {
	if c.disposed || c.scope == nil {
		return
	}
	c.scope.Publish(c.state())
}

func (c *component[S]) onDispose(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

// State returns the current state without subscribing.
func (c *component[S]) State() S { return c.scope.Peek() }

// Scope returns the scope the state is published on.
func (c *component[S]) Scope() *core.Scope[S] { return c.scope }

// Element returns the element the builder runs in.
func (c *component[S]) Element() *core.Element { return c.element }

// Disposed reports whether the component was disposed.
func (c *component[S]) Disposed() bool { return c.disposed }

func (c *component[S]) dispose() bool {
	if c.disposed {
		return false
	}
	c.disposed = true
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
	c.cleanups = nil
	c.scope.Close()
	if c.element != nil {
		c.element.Unmount()
	}
	return true
}

// interactiveFlags describes the parts of s every focusable control
// announces.
func interactiveFlags(s states.WidgetStateSet) semantics.SemanticsFlag {
	return semantics.SemanticsHasEnabledState.
		SetIf(semantics.SemanticsIsEnabled, s.Enabled()).
		SetIf(semantics.SemanticsIsFocusable, s.Enabled()).
		SetIf(semantics.SemanticsIsFocused, s.IsFocused()).
		SetIf(semantics.SemanticsHasInvalidState|semantics.SemanticsIsInvalid, s.HasError())
}
