package core

import (
	"github.com/go-drift/headless/pkg/errors"
)

// BuildFunc produces an element's output. Consumers decide what the
// output is: a painted string, a draw list, a view model.
type BuildFunc func(ctx *Element) any

// Disposable is implemented by controllers an element owns.
type Disposable interface {
	Dispose()
}

// dependencySource is something an element can subscribe to while
// building. Sources forget the element when it rebuilds or unmounts.
type dependencySource interface {
	removeDependent(e *Element)
}

// Element is a node in the build tree. It is the BuildContext passed to
// build functions. Elements are owned by the UI thread.
type Element struct {
	owner      *BuildOwner
	parent     *Element
	children   []*Element
	name       string
	depth      int
	build      BuildFunc
	output     any
	buildCount int
	dirty      bool
	mounted    bool
	building   bool
	deps       []dependencySource
	disposers  []func()
}

// Name returns the debug name.
func (e *Element) Name() string { return e.name }

// Owner returns the build owner.
func (e *Element) Owner() *BuildOwner { return e.owner }

// Parent returns the parent element, or nil for a root.
func (e *Element) Parent() *Element { return e.parent }

// Depth returns the distance from the root.
func (e *Element) Depth() int { return e.depth }

// Mounted reports whether the element is still in the tree.
func (e *Element) Mounted() bool { return e.mounted }

// Output returns the result of the last successful build.
func (e *Element) Output() any { return e.output }

// BuildCount returns how many times the element has built.
func (e *Element) BuildCount() int { return e.buildCount }

// Children returns the mounted children.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Mount creates a child element.
func (e *Element) Mount(name string, build BuildFunc) *Element {
	return e.owner.Mount(e, name, build)
}

// MarkNeedsBuild schedules a rebuild. No-op once unmounted.
func (e *Element) MarkNeedsBuild() {
	if !e.mounted || e.dirty {
		return
	}
	e.dirty = true
	e.owner.ScheduleBuild(e)
}

// SetState runs fn and schedules a rebuild. Safe to call after unmount
// (becomes a no-op).
func (e *Element) SetState(fn func()) {
	if !e.mounted {
		return
	}
	if fn != nil {
		fn()
	}
	e.MarkNeedsBuild()
}

// rebuildIfNeeded runs the build function when dirty. Subscriptions made
// by the previous build are dropped first, so an element depends only on
// what its latest build read. A panicking build is reported and the
// previous output kept.
func (e *Element) rebuildIfNeeded() bool {
	if !e.dirty || !e.mounted || e.building {
		return false
	}
	e.dirty = false
	e.clearDependencies()
	e.building = true
	defer func() { e.building = false }()

	var out any
	ok := true
	func() {
		defer func() {
			if r := recover(); r != nil {
				ok = false
				errors.ReportBuildError(&errors.BuildError{
					Element:    e.name,
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
				})
			}
		}()
		if e.build != nil {
			out = e.build(e)
		}
	}()
	e.buildCount++
	if ok {
		e.output = out
	}
	return true
}

func (e *Element) addDependency(src dependencySource) {
	for _, d := range e.deps {
		if d == src {
			return
		}
	}
	e.deps = append(e.deps, src)
}

func (e *Element) removeDep(src dependencySource) {
	for i, d := range e.deps {
		if d == src {
			e.deps = append(e.deps[:i:i], e.deps[i+1:]...)
			return
		}
	}
}

func (e *Element) clearDependencies() {
	deps := e.deps
	e.deps = nil
	for _, d := range deps {
		d.removeDependent(e)
	}
}

// OnDispose registers cleanup to run when the element unmounts.
// Cleanups run in reverse registration order. The returned function
// unregisters it. Registering after unmount runs cleanup immediately.
func (e *Element) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}
	if !e.mounted {
		cleanup()
		return func() {}
	}
	index := len(e.disposers)
	e.disposers = append(e.disposers, cleanup)
	return func() {
		if index < len(e.disposers) {
			e.disposers[index] = nil
		}
	}
}

// Unmount removes the element and its subtree, children first, and runs
// disposers. Safe to call twice.
func (e *Element) Unmount() {
	if !e.mounted {
		return
	}
	for _, child := range e.Children() {
		child.Unmount()
	}
	e.mounted = false
	e.clearDependencies()
	for i := len(e.disposers) - 1; i >= 0; i-- {
		if fn := e.disposers[i]; fn != nil {
			errors.Guard("core.Element.Unmount", fn)
		}
	}
	e.disposers = nil
	if p := e.parent; p != nil {
		for i, c := range p.children {
			if c == e {
				p.children = append(p.children[:i:i], p.children[i+1:]...)
				break
			}
		}
	}
}
