package states

import "github.com/mitchellh/hashstructure/v2"

type setHashView struct {
	States []WidgetState `hash:"set"`
}

// Hash returns a hash of the set's membership. Sets with equal members
// hash equally.
func (s WidgetStateSet) Hash() uint64 {
	h, err := hashstructure.Hash(setHashView{States: s.States()}, hashstructure.FormatV2, nil)
	if err != nil {
		return uint64(s.bits)
	}
	return h
}

type stateHashView struct {
	States []WidgetState `hash:"set"`
	Fields []any
}

// HashWith combines the membership hash of s with extra component fields,
// in order. Per-component state values use it to implement Hash.
func HashWith(s WidgetStateSet, fields ...any) uint64 {
	h, err := hashstructure.Hash(stateHashView{States: s.States(), Fields: fields}, hashstructure.FormatV2, nil)
	if err != nil {
		return s.Hash()
	}
	return h
}
