package states

// Rule pairs a state predicate with the value to use when it matches.
type Rule[T any] struct {
	// When lists states that must all be present. An empty list always matches.
	When  []WidgetState
	Value T
}

// Matches reports whether every state in r.When is in s.
func (r Rule[T]) Matches(s WidgetStateSet) bool {
	for _, st := range r.When {
		if !s.Has(st) {
			return false
		}
	}
	return true
}

// Property resolves a value from a set. Rules are checked in order and the
// first match wins; Default is used when none match.
type Property[T any] struct {
	Rules   []Rule[T]
	Default T
}

// Resolve returns the value for s.
func (p Property[T]) Resolve(s WidgetStateSet) T {
	return Resolve(s, p)
}

// Resolve returns the value p assigns to s.
func Resolve[T any](s WidgetStateSet, p Property[T]) T {
	for _, r := range p.Rules {
		if r.Matches(s) {
			return r.Value
		}
	}
	return p.Default
}

// All returns a property that yields v for every set.
func All[T any](v T) Property[T] {
	return Property[T]{Default: v}
}
