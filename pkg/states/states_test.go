package states

import (
	"math/rand"
	"testing"
)

func TestDisabledDropsTransientStates(t *testing.T) {
	s := NewWidgetStateSet(Hovered, Pressed, Dragged, Focused, Disabled)
	if s.Has(Hovered) || s.Has(Pressed) || s.Has(Dragged) {
		t.Errorf("disabled set kept transient flags: %v", s)
	}
	if !s.Has(Focused) {
		t.Error("disabled set dropped Focused")
	}
	if s.Enabled() {
		t.Error("Enabled() = true for disabled set")
	}

	// Adding transient flags to a disabled set is a no-op.
	if got := s.With(Hovered); got != s {
		t.Errorf("With(Hovered) on disabled = %v, want %v", got, s)
	}

	// Re-enabling does not resurrect dropped flags.
	if got := s.Without(Disabled); got != NewWidgetStateSet(Focused) {
		t.Errorf("Without(Disabled) = %v, want {focused}", got)
	}
}

func TestEnabledIsNegationOfDisabled(t *testing.T) {
	for bits := uint16(0); bits < 1<<stateCount; bits++ {
		s := normalize(bits)
		if s.Enabled() == s.Has(Disabled) {
			t.Fatalf("Enabled() = %v with Disabled = %v for %v", s.Enabled(), s.Has(Disabled), s)
		}
	}
}

func TestOrderIndependentEqualityAndHash(t *testing.T) {
	members := []WidgetState{Hovered, Focused, Pressed, Selected, Error, ScrolledUnder}
	want := NewWidgetStateSet(members...)
	wantHash := want.Hash()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		perm := append([]WidgetState(nil), members...)
		rng.Shuffle(len(perm), func(a, b int) { perm[a], perm[b] = perm[b], perm[a] })

		var s WidgetStateSet
		for _, st := range perm {
			s = s.With(st)
		}
		if s != want || !s.Equal(want) {
			t.Fatalf("permutation %v produced %v, want %v", perm, s, want)
		}
		if got := s.Hash(); got != wantHash {
			t.Fatalf("Hash() = %d for %v, want %d", got, perm, wantHash)
		}
	}
}

func TestDistinctSetsHashDifferently(t *testing.T) {
	a := NewWidgetStateSet(Hovered)
	b := NewWidgetStateSet(Focused)
	if a.Hash() == b.Hash() {
		t.Error("different sets produced the same hash")
	}
	if NewWidgetStateSet().Hash() == a.Hash() {
		t.Error("empty set hash collides with {hovered}")
	}
}

func TestHashWith(t *testing.T) {
	s1 := NewWidgetStateSet(Selected, Focused)
	s2 := NewWidgetStateSet(Focused, Selected)
	if HashWith(s1, "tab-1", 2) != HashWith(s2, "tab-1", 2) {
		t.Error("HashWith differs for equal sets and fields")
	}
	if HashWith(s1, "tab-1", 2) == HashWith(s1, "tab-2", 2) {
		t.Error("HashWith ignores extra fields")
	}
}

func TestStatesCanonicalOrder(t *testing.T) {
	s := NewWidgetStateSet(Error, Hovered, Selected)
	got := s.States()
	want := []WidgetState{Hovered, Selected, Error}
	if len(got) != len(want) {
		t.Fatalf("States() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("States()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if s.String() != "{hovered, selected, error}" {
		t.Errorf("String() = %q", s.String())
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestToggle(t *testing.T) {
	s := WidgetStateSet{}.Toggle(Focused, true)
	if !s.IsFocused() {
		t.Fatal("Toggle(Focused, true) did not add")
	}
	if s.Toggle(Focused, false).IsFocused() {
		t.Error("Toggle(Focused, false) did not remove")
	}
}

func TestResolve(t *testing.T) {
	color := Property[string]{
		Rules: []Rule[string]{
			{When: []WidgetState{Disabled}, Value: "gray"},
			{When: []WidgetState{Pressed}, Value: "dark"},
			{When: []WidgetState{Hovered, Focused}, Value: "ring-light"},
			{When: []WidgetState{Hovered}, Value: "light"},
		},
		Default: "base",
	}
	tests := []struct {
		set  WidgetStateSet
		want string
	}{
		{NewWidgetStateSet(), "base"},
		{NewWidgetStateSet(Hovered), "light"},
		{NewWidgetStateSet(Hovered, Focused), "ring-light"},
		{NewWidgetStateSet(Hovered, Pressed), "dark"},
		{NewWidgetStateSet(Hovered, Disabled), "gray"},
	}
	for _, tt := range tests {
		if got := color.Resolve(tt.set); got != tt.want {
			t.Errorf("Resolve(%v) = %q, want %q", tt.set, got, tt.want)
		}
	}
	if got := All(3).Resolve(NewWidgetStateSet(Error)); got != 3 {
		t.Errorf("All(3).Resolve = %d, want 3", got)
	}
}

func TestAccessors(t *testing.T) {
	tests := []struct {
		state WidgetState
		is    func(WidgetStateSet) bool
	}{
		{Hovered, WidgetStateSet.IsHovered},
		{Focused, WidgetStateSet.IsFocused},
		{Pressed, WidgetStateSet.IsPressed},
		{Dragged, WidgetStateSet.IsDragged},
		{Selected, WidgetStateSet.IsSelected},
		{Disabled, WidgetStateSet.IsDisabled},
		{Error, WidgetStateSet.HasError},
		{ScrolledUnder, WidgetStateSet.IsScrolledUnder},
	}
	for _, tt := range tests {
		if !tt.is(NewWidgetStateSet(tt.state)) {
			t.Errorf("accessor for %v false on {%v}", tt.state, tt.state)
		}
		if tt.is(WidgetStateSet{}) {
			t.Errorf("accessor for %v true on the empty set", tt.state)
		}
	}
}
