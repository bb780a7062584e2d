package widgets

import (
	"testing"

	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
)

type tabsFixture struct {
	*fixture
	tabs    *Tabs
	items   []*Tab
	changes []string
}

func newTabsFixture(opts TabsOptions, disabled ...string) *tabsFixture {
	tf := &tabsFixture{fixture: newFixture()}
	opts.OnChanged = func(id string) { tf.changes = append(tf.changes, id) }
	tf.tabs = NewTabs(tf.env, tf.root, opts)
	off := map[string]bool{}
	for _, d := range disabled {
		off[d] = true
	}
	for i, id := range []string{"a", "b", "c", "d"} {
		tf.items = append(tf.items, tf.tabs.Add(tf.root, TabOptions{
			ID:       id,
			Label:    "Tab " + id,
			Bounds:   box.Translate(float64(i)*110, 0),
			Disabled: off[id],
		}))
	}
	return tf
}

func (tf *tabsFixture) focused() string {
	for _, tab := range tf.items {
		if tab.FocusNode().HasFocus() {
			return tab.State().TabID
		}
	}
	return ""
}

func TestTabs_FirstTabSelected(t *testing.T) {
	tf := newTabsFixture(TabsOptions{}, "a")
	if got := tf.tabs.Selected(); got != "b" {
		t.Errorf("Selected() = %q, want b (first enabled)", got)
	}
	if got := tf.tabs.State(); got.SelectedID != "b" || got.SelectedIndex != 1 {
		t.Errorf("state = %+v, want b at 1", got)
	}
	if len(tf.changes) != 0 {
		t.Error("initial selection called OnChanged")
	}
}

func TestTabs_ManualActivation(t *testing.T) {
	tf := newTabsFixture(TabsOptions{}, "c")
	tf.items[0].FocusNode().RequestFocus()

	tf.keys.Press(input.KeyRight)
	if got := tf.focused(); got != "b" {
		t.Fatalf("focused = %q, want b", got)
	}
	if tf.tabs.Selected() != "a" {
		t.Error("moving focus selected a tab")
	}
	tf.keys.Press(input.KeyRight)
	if got := tf.focused(); got != "d" {
		t.Errorf("focused = %q, want d (c is disabled)", got)
	}
	tf.keys.Press(input.KeyRight)
	if got := tf.focused(); got != "a" {
		t.Errorf("focused = %q, want a after wrapping", got)
	}
	tf.keys.Press(input.KeyEnd)
	tf.keys.Press(input.KeyEnter)
	if got := tf.tabs.Selected(); got != "d" {
		t.Errorf("Selected() = %q, want d", got)
	}
	if len(tf.changes) != 1 || tf.changes[0] != "d" {
		t.Errorf("changes = %v, want [d]", tf.changes)
	}
	if !tf.items[3].State().IsPressed() {
		t.Error("keyboard activation did not flash pressed")
	}
}

func TestTabs_AutomaticActivation(t *testing.T) {
	tf := newTabsFixture(TabsOptions{AutomaticActivation: true, Vertical: true})
	tf.items[0].FocusNode().RequestFocus()

	tf.keys.Press(input.KeyRight)
	if tf.focused() != "a" {
		t.Error("Right moved focus in a vertical list")
	}
	tf.keys.Press(input.KeyDown)
	if got := tf.tabs.Selected(); got != "b" {
		t.Errorf("Selected() = %q, want b", got)
	}
	tf.keys.Press(input.KeyUp)
	tf.keys.Press(input.KeyUp)
	if got := tf.tabs.Selected(); got != "d" {
		t.Errorf("Selected() = %q, want d after wrapping", got)
	}
	want := []string{"b", "a", "d"}
	if len(tf.changes) != len(want) {
		t.Fatalf("changes = %v, want %v", tf.changes, want)
	}
}

func TestTabs_RovingTabStop(t *testing.T) {
	tf := newTabsFixture(TabsOptions{Selected: "c"})
	for i, tab := range tf.items {
		if got := !tab.FocusNode().SkipTraversal; got != (i == 2) {
			t.Errorf("tab %d tab stop = %v", i, got)
		}
	}
	tf.mouse.Tap(tf.items[1].ctl.Bounds().Center())
	if tf.tabs.Selected() != "b" || tf.items[1].FocusNode().SkipTraversal {
		t.Error("tap did not move the selection and tab stop")
	}
	if !tf.items[1].State().IsSelected() || tf.items[2].State().IsSelected() {
		t.Error("selected state not moved")
	}
}

func TestTabs_RemoveSelectedReselects(t *testing.T) {
	tf := newTabsFixture(TabsOptions{Selected: "a"}, "b")
	tf.items[0].Dispose()

	if got := tf.tabs.Selected(); got != "c" {
		t.Errorf("Selected() = %q, want c", got)
	}
	if got := len(tf.tabs.Tabs()); got != 3 {
		t.Errorf("len(Tabs()) = %d, want 3", got)
	}
	if got := tf.items[2].State().Index; got != 1 {
		t.Errorf("c index = %d, want 1", got)
	}
	if len(tf.changes) != 0 {
		t.Error("removal called OnChanged")
	}
}

func TestTabs_SelectIgnoresDisabledAndUnknown(t *testing.T) {
	tf := newTabsFixture(TabsOptions{}, "b")
	tf.tabs.Select("b")
	tf.tabs.Select("zz")
	tf.tabs.Select("a")
	if got := tf.tabs.Selected(); got != "a" || len(tf.changes) != 0 {
		t.Errorf("Selected() = %q changes = %v, want a and none", got, tf.changes)
	}
}

func TestTabs_Semantics(t *testing.T) {
	tf := newTabsFixture(TabsOptions{Label: "Sections"})
	flags := semantics.Describe(tf.items[0]).Properties.Flags
	if !flags.Has(semantics.SemanticsHasSelectedState | semantics.SemanticsIsSelected) {
		t.Errorf("selected tab flags = %v", flags)
	}
	if !semantics.Describe(tf.items[1]).Actions.Perform(semantics.SemanticsActionTap, nil) || tf.tabs.Selected() != "b" {
		t.Error("tap action did not select")
	}
	if semantics.Describe(tf.tabs).Properties.Role != semantics.SemanticsRoleTabList {
		t.Error("list role not tablist")
	}
	tf.tabs.Dispose()
	for i, tab := range tf.items {
		if !tab.Disposed() {
			t.Errorf("tab %d not disposed", i)
		}
	}
}
