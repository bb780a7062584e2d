package core

type observer[T any] struct {
	fn func(T)
}

// Observable holds a value and notifies listeners when a different value
// is set. It is NOT thread-safe; use it from the UI thread only.
type Observable[T comparable] struct {
	value     T
	listeners []*observer[T]
}

// NewObservable creates an Observable holding initial.
func NewObservable[T comparable](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

// Value returns the current value.
func (o *Observable[T]) Value() T { return o.value }

// Set stores value and notifies listeners if it differs from the current
// value. It reports whether listeners were notified.
func (o *Observable[T]) Set(value T) bool {
	if o.value == value {
		return false
	}
	o.value = value
	listeners := append([]*observer[T](nil), o.listeners...)
	for _, l := range listeners {
		l.fn(value)
	}
	return true
}

// Update applies transform to the current value and stores the result.
func (o *Observable[T]) Update(transform func(T) T) bool {
	return o.Set(transform(o.value))
}

// AddListener registers fn and returns a function that removes it.
func (o *Observable[T]) AddListener(fn func(T)) func() {
	entry := &observer[T]{fn: fn}
	o.listeners = append(o.listeners, entry)
	return func() {
		for i, l := range o.listeners {
			if l == entry {
				o.listeners = append(o.listeners[:i:i], o.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (o *Observable[T]) ListenerCount() int { return len(o.listeners) }
