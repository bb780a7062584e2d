package widgets

import (
	"testing"

	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
)

type radioFixture struct {
	*fixture
	group  *RadioGroup[string]
	radios []*Radio[string]
	picks  []string
}

func newRadioFixture(disabled ...string) *radioFixture {
	rf := &radioFixture{fixture: newFixture()}
	rf.group = NewRadioGroup(rf.env, RadioGroupOptions[string]{
		Label:     "Size",
		OnChanged: func(v string) { rf.picks = append(rf.picks, v) },
	})
	off := map[string]bool{}
	for _, d := range disabled {
		off[d] = true
	}
	for i, v := range []string{"s", "m", "l"} {
		rf.radios = append(rf.radios, rf.group.Add(rf.root, RadioOptions[string]{
			Value:    v,
			Label:    v,
			Bounds:   box.Translate(0, float64(i)*30),
			Disabled: off[v],
		}))
	}
	return rf
}

func TestRadio_TapSelects(t *testing.T) {
	rf := newRadioFixture()
	rf.mouse.Tap(rf.radios[1].ctl.Bounds().Center())

	if v, ok := rf.group.Value(); !ok || v != "m" {
		t.Errorf("Value() = %q %v, want m true", v, ok)
	}
	for i, r := range rf.radios {
		if got := r.State().Checked(); got != (i == 1) {
			t.Errorf("radio %d checked = %v", i, got)
		}
		if got := r.State().IsSelected(); got != (i == 1) {
			t.Errorf("radio %d selected = %v", i, got)
		}
	}
	rf.mouse.Tap(rf.radios[1].ctl.Bounds().Center())
	if len(rf.picks) != 1 {
		t.Errorf("picks = %v, want one change", rf.picks)
	}
}

func TestRadio_ArrowsMoveFocusWithoutSelecting(t *testing.T) {
	rf := newRadioFixture("m")
	rf.radios[0].FocusNode().RequestFocus()

	rf.keys.Press(input.KeyDown)
	if !rf.radios[2].FocusNode().HasFocus() {
		t.Fatal("Down did not skip the disabled radio")
	}
	if _, ok := rf.group.Value(); ok {
		t.Error("moving focus selected a radio")
	}
	rf.keys.Press(input.KeyDown)
	if !rf.radios[0].FocusNode().HasFocus() {
		t.Error("Down did not wrap to the first radio")
	}
	rf.keys.Press(input.KeyUp)
	rf.keys.Press(input.KeySpace)
	if v, _ := rf.group.Value(); v != "l" {
		t.Errorf("Value() = %q after Space, want l", v)
	}
}

func TestRadio_RovingTabStop(t *testing.T) {
	rf := newRadioFixture()
	stops := func() []bool {
		var out []bool
		for _, r := range rf.radios {
			out = append(out, !r.FocusNode().SkipTraversal)
		}
		return out
	}
	if got := stops(); !got[0] || got[1] || got[2] {
		t.Errorf("tab stops = %v, want only the first", got)
	}
	rf.group.SetValue("l")
	if got := stops(); got[0] || got[1] || !got[2] {
		t.Errorf("tab stops = %v, want only the checked radio", got)
	}
	if len(rf.picks) != 0 {
		t.Error("SetValue called OnChanged")
	}
}

func TestRadioGroup_DisableAll(t *testing.T) {
	rf := newRadioFixture()
	rf.radios[0].FocusNode().RequestFocus()
	rf.group.SetDisabled(true)
	for i, r := range rf.radios {
		if r.State().Enabled() {
			t.Errorf("radio %d still enabled", i)
		}
	}
	rf.mouse.Tap(rf.radios[0].ctl.Bounds().Center())
	if _, ok := rf.group.Value(); ok {
		t.Error("disabled radio selected on tap")
	}
	rf.group.SetDisabled(false)
	if !rf.radios[0].State().Enabled() {
		t.Error("radio not re-enabled")
	}
}

func TestRadio_Semantics(t *testing.T) {
	rf := newRadioFixture()
	rf.group.SetValue("s")
	flags := semantics.Describe(rf.radios[0]).Properties.Flags
	if !flags.Has(semantics.SemanticsIsChecked | semantics.SemanticsIsInMutuallyExclusiveGroup) {
		t.Errorf("flags = %v", flags)
	}
	if semantics.Describe(rf.group).Properties.Role != semantics.SemanticsRoleRadioGroup {
		t.Error("group role not radiogroup")
	}
	rf.group.Dispose()
	for _, r := range rf.radios {
		if !r.Disposed() {
			t.Error("group dispose left a radio alive")
		}
	}
}
