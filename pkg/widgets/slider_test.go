package widgets

import (
	"testing"

	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
)

type sliderLog struct {
	starts, ends []float64
	changes      []float64
}

func newTestSlider(f *fixture, opts SliderOptions, log *sliderLog) *Slider {
	opts.Bounds = box
	opts.OnChangeStart = func(v float64) { log.starts = append(log.starts, v) }
	opts.OnChanged = func(v float64) { log.changes = append(log.changes, v) }
	opts.OnChangeEnd = func(v float64) { log.ends = append(log.ends, v) }
	return NewSlider(f.env, f.root, opts)
}

func TestSlider_Snap(t *testing.T) {
	f := newFixture()
	s := NewSlider(f.env, f.root, SliderOptions{Bounds: box, Min: 0, Max: 100, Step: 10})
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{4, 0},
		{5, 10},
		{33, 30},
		{99, 100},
		{-20, 0},
		{250, 100},
	}
	for _, tt := range tests {
		s.SetValue(tt.in)
		if got := s.Value(); got != tt.want {
			t.Errorf("SetValue(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSlider_DefaultRange(t *testing.T) {
	f := newFixture()
	s := NewSlider(f.env, f.root, SliderOptions{Bounds: box, Value: 0.5, Min: 3, Max: 3})
	if got := s.State(); got.Min != 0 || got.Max != 1 || got.Fraction() != 0.5 {
		t.Errorf("state = %+v, want range [0, 1] at half", got)
	}
}

func TestSlider_DragFollowsPointer(t *testing.T) {
	f := newFixture()
	var log sliderLog
	s := newTestSlider(f, SliderOptions{Min: 0, Max: 100, Step: 10}, &log)

	f.mouse.Down(pt(43, 20))
	if got := s.Value(); got != 30 {
		t.Errorf("value after down = %v, want 30", got)
	}
	if !s.State().IsDragging || !s.State().IsDragged() {
		t.Error("not dragging after down")
	}
	f.mouse.MoveTo(pt(500, 200))
	if got := s.Value(); got != 100 {
		t.Errorf("value past the end = %v, want 100", got)
	}
	f.mouse.MoveTo(pt(-40, 20))
	if got := s.Value(); got != 0 {
		t.Errorf("value before the start = %v, want 0", got)
	}
	f.mouse.Up()

	if s.State().IsDragging || s.State().IsDragged() {
		t.Error("still dragging after up")
	}
	if len(log.starts) != 1 || log.starts[0] != 0 {
		t.Errorf("starts = %v, want [0]", log.starts)
	}
	if len(log.ends) != 1 || log.ends[0] != 0 {
		t.Errorf("ends = %v, want [0]", log.ends)
	}
	want := []float64{30, 100, 0}
	if len(log.changes) != len(want) {
		t.Fatalf("changes = %v, want %v", log.changes, want)
	}
	for i := range want {
		if log.changes[i] != want[i] {
			t.Errorf("changes[%d] = %v, want %v", i, log.changes[i], want[i])
		}
	}
}

func TestSlider_Keys(t *testing.T) {
	f := newFixture()
	var log sliderLog
	s := newTestSlider(f, SliderOptions{Min: 0, Max: 100, Step: 5, Value: 50, Autofocus: true}, &log)

	tests := []struct {
		key  input.Key
		want float64
	}{
		{input.KeyRight, 55},
		{input.KeyUp, 60},
		{input.KeyLeft, 55},
		{input.KeyDown, 50},
		{input.KeyPageUp, 100},
		{input.KeyPageDown, 50},
		{input.KeyHome, 0},
		{input.KeyLeft, 0},
		{input.KeyEnd, 100},
	}
	for _, tt := range tests {
		f.keys.Press(tt.key)
		if got := s.Value(); got != tt.want {
			t.Errorf("after %v: value = %v, want %v", tt.key, got, tt.want)
		}
	}
	if len(log.changes) != len(tests)-1 {
		t.Errorf("changes = %v, want no change at the lower bound", log.changes)
	}
	if len(log.starts) != 0 {
		t.Error("keyboard steps started a drag")
	}
}

func TestSlider_ContinuousKeyStep(t *testing.T) {
	f := newFixture()
	s := NewSlider(f.env, f.root, SliderOptions{Bounds: box, Max: 200, Autofocus: true})
	f.keys.Press(input.KeyRight)
	if got := s.Value(); got != 2 {
		t.Errorf("value = %v, want 2 (1%% of the range)", got)
	}
}

func TestSlider_DisableEndsDrag(t *testing.T) {
	f := newFixture()
	var log sliderLog
	s := newTestSlider(f, SliderOptions{Min: 0, Max: 100}, &log)

	f.mouse.Down(center)
	s.SetDisabled(true)
	if s.State().IsDragging {
		t.Error("disabling did not end the drag")
	}
	if len(log.ends) != 1 {
		t.Errorf("ends = %v, want one", log.ends)
	}
	before := s.Value()
	f.mouse.MoveTo(pt(100, 20))
	f.mouse.Up()
	if s.Value() != before || len(log.ends) != 1 {
		t.Error("disabled slider followed the pointer")
	}
}

func TestSlider_Semantics(t *testing.T) {
	f := newFixture()
	s := NewSlider(f.env, f.root, SliderOptions{Label: "Volume", Bounds: box, Max: 10, Step: 1, Value: 10})

	config := semantics.Describe(s)
	if config.Properties.Role != semantics.SemanticsRoleSlider || config.Properties.Value != "100%" {
		t.Errorf("properties = %+v", config.Properties)
	}
	if config.Actions.Perform(semantics.SemanticsActionIncrease, nil) {
		t.Error("increase offered at the maximum")
	}
	if !config.Actions.Perform(semantics.SemanticsActionDecrease, nil) || s.Value() != 9 {
		t.Errorf("decrease action: value = %v, want 9", s.Value())
	}
}
