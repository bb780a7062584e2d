package core

// Scope publishes a value to descendant builders. The owner publishes a
// new value on every state transition; elements that read it with Watch
// rebuild when it changes, elements that read it with Peek do not.
type Scope[T comparable] struct {
	value      *Observable[T]
	dependents []*Element
	closed     bool
}

// NewScope creates a scope holding initial.
func NewScope[T comparable](initial T) *Scope[T] {
	s := &Scope[T]{value: NewObservable(initial)}
	s.value.AddListener(func(T) {
		for _, e := range append([]*Element(nil), s.dependents...) {
			e.MarkNeedsBuild()
		}
	})
	return s
}

// Publish stores v. If v differs from the current value every watching
// element is marked for rebuild and every listener runs synchronously.
// It reports whether the value changed. Publishing after Close is ignored.
func (s *Scope[T]) Publish(v T) bool {
	if s.closed {
		return false
	}
	return s.value.Set(v)
}

// Watch returns the current value and subscribes ctx: ctx rebuilds when a
// different value is published. The subscription lasts until ctx's next
// build or unmount.
func (s *Scope[T]) Watch(ctx *Element) T {
	if ctx != nil && ctx.mounted && !s.closed {
		if !s.hasDependent(ctx) {
			s.dependents = append(s.dependents, ctx)
		}
		ctx.addDependency(s)
	}
	return s.value.Value()
}

// Peek returns the current value without subscribing.
func (s *Scope[T]) Peek() T {
	return s.value.Value()
}

// Listen registers fn to run synchronously after each change and returns
// a function that cancels the subscription.
func (s *Scope[T]) Listen(fn func(T)) func() {
	return s.value.AddListener(fn)
}

// Dependents returns the number of subscribed elements.
func (s *Scope[T]) Dependents() int { return len(s.dependents) }

// Close drops every subscriber. Later publishes are ignored.
func (s *Scope[T]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, e := range s.dependents {
		e.removeDep(s)
	}
	s.dependents = nil
	s.value.listeners = nil
}

// Closed reports whether Close was called.
func (s *Scope[T]) Closed() bool { return s.closed }

func (s *Scope[T]) hasDependent(e *Element) bool {
	for _, d := range s.dependents {
		if d == e {
			return true
		}
	}
	return false
}

func (s *Scope[T]) removeDependent(e *Element) {
	for i, d := range s.dependents {
		if d == e {
			s.dependents = append(s.dependents[:i:i], s.dependents[i+1:]...)
			return
		}
	}
}

// ScopeBuilder mounts an element that watches scope and passes the value
// to build.
func ScopeBuilder[T comparable](owner *BuildOwner, parent *Element, name string, scope *Scope[T], build func(ctx *Element, value T) any) *Element {
	return owner.Mount(parent, name, func(ctx *Element) any {
		return build(ctx, scope.Watch(ctx))
	})
}
