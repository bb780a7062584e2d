package core

// Use registers a controller for disposal when e unmounts and returns it.
//
//	slot := core.Use(ctx, scheduler.NewGroup(sched))
func Use[C Disposable](e *Element, controller C) C {
	e.OnDispose(controller.Dispose)
	return controller
}

// UseObservable rebuilds e whenever obs changes, until e unmounts. Unlike
// Scope.Watch the subscription survives rebuilds, so call it once, not
// from inside a build function.
func UseObservable[T comparable](e *Element, obs *Observable[T]) {
	unsub := obs.AddListener(func(T) {
		e.MarkNeedsBuild()
	})
	e.OnDispose(unsub)
}

// UseListen runs fn on every change of scope until e unmounts.
func UseListen[T comparable](e *Element, scope *Scope[T], fn func(T)) {
	e.OnDispose(scope.Listen(fn))
}
