package widgets

import (
	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// TabState is published by each Tab. Selected marks the active tab.
type TabState struct {
	states.WidgetStateSet
	TabID string
	Index int
	Label string
}

// Hash combines the state set with the tab's fields.
func (s TabState) Hash() uint64 { return states.HashWith(s.WidgetStateSet, s.TabID, s.Index, s.Label) }

// TabsState is published by the tab list. Panels watch it to show the
// selected tab's content.
type TabsState struct {
	SelectedID    string
	SelectedIndex int
}

// TabsOptions configures Tabs.
type TabsOptions struct {
	Label string
	// Selected is the initial tab id. Empty selects the first tab added.
	Selected  string
	OnChanged func(id string)
	// AutomaticActivation selects a tab as soon as arrow keys focus it.
	// By default arrows only move focus and Enter or Space selects.
	AutomaticActivation bool
	// Vertical uses Up and Down instead of Left and Right.
	Vertical   bool
	FocusScope *focus.Scope
	Builder    func(ctx *core.Element, state TabsState) any
}

// Tabs is a tab list. Only the selected tab is a Tab stop; arrow keys
// move between tabs, wrapping at the ends, and skip disabled tabs.
type Tabs struct {
	component[TabsState]
	opts     TabsOptions
	selected string
	tabs     []*Tab
	scope    *focus.Scope
}

// TabOptions configures one Tab.
type TabOptions struct {
	ID       string
	Label    string
	Bounds   graphics.Rect
	Disabled bool
	Builder  func(ctx *core.Element, state TabState) any
}

// Tab is one tab of a Tabs list.
type Tab struct {
	component[TabState]
	tabs *Tabs
	opts TabOptions
	ctl  *interaction
}

// NewTabs creates an empty tab list and mounts its builder under parent.
func NewTabs(env *Env, parent *core.Element, opts TabsOptions) *Tabs {
	scopeParent := opts.FocusScope
	if scopeParent == nil {
		scopeParent = env.Focus.RootScope()
	}
	t := &Tabs{opts: opts, selected: opts.Selected, scope: scopeParent.NewChildScope("Tabs")}
	t.init(env, "Tabs", t.compute)
	t.onDispose(t.disposeTabs)
	t.mount(parent, opts.Builder, t.Dispose)
	return t
}

func (t *Tabs) compute() TabsState {
	return TabsState{SelectedID: t.selected, SelectedIndex: t.indexOf(t.selected)}
}

func (t *Tabs) indexOf(id string) int {
	for i, tab := range t.tabs {
		if tab.opts.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a tab and mounts its builder under parent.
func (t *Tabs) Add(parent *core.Element, opts TabOptions) *Tab {
	tab := &Tab{tabs: t, opts: opts}
	tab.ctl = newInteraction(t.env, interactionConfig{
		Name:       "Tab",
		Bounds:     opts.Bounds,
		FocusScope: t.scope,
		Disabled:   opts.Disabled,
		OnTap:      func() { t.Select(tab.opts.ID) },
		OnKey:      tab.handleKey,
	}, tab.publish)
	tab.init(t.env, "Tab", tab.compute)
	tab.onDispose(tab.ctl.Dispose)
	tab.onDispose(func() { t.remove(tab) })
	tab.mount(parent, opts.Builder, tab.Dispose)
	t.tabs = append(t.tabs, tab)
	if t.selected == "" && !opts.Disabled {
		t.selected = opts.ID
	}
	t.sync()
	return tab
}

// Selected returns the selected tab id.
func (t *Tabs) Selected() string { return t.selected }

// Tabs returns the tabs in order.
func (t *Tabs) Tabs() []*Tab { return append([]*Tab(nil), t.tabs...) }

// Select makes id the selected tab and calls OnChanged when it changes.
// Unknown and disabled tabs are ignored.
func (t *Tabs) Select(id string) {
	i := t.indexOf(id)
	if t.disposed || i < 0 || !t.tabs[i].ctl.Enabled() || id == t.selected {
		return
	}
	t.selected = id
	t.sync()
	if t.opts.OnChanged != nil {
		t.opts.OnChanged(id)
	}
}

func (t *Tabs) sync() {
	for _, tab := range t.tabs {
		tab.ctl.SetSelected(tab.opts.ID == t.selected)
		if node := tab.ctl.FocusNode(); node != nil {
			node.SkipTraversal = tab.opts.ID != t.selected
		}
		tab.publish()
	}
	t.publish()
}

func (t *Tabs) remove(tab *Tab) {
	i := t.indexOf(tab.opts.ID)
	if i < 0 || t.tabs[i] != tab {
		return
	}
	t.tabs = append(t.tabs[:i:i], t.tabs[i+1:]...)
	if t.selected == tab.opts.ID {
		t.selected = ""
		if j := firstEnabled(len(t.tabs), t.enabled); j >= 0 {
			t.selected = t.tabs[j].opts.ID
		}
	}
	t.sync()
}

func (t *Tabs) enabled(i int) bool { return t.tabs[i].ctl.Enabled() }

// focusTab moves focus to tab i and, with AutomaticActivation, selects it.
func (t *Tabs) focusTab(i int) {
	if i < 0 {
		return
	}
	tab := t.tabs[i]
	tab.ctl.FocusNode().RequestFocus()
	if t.opts.AutomaticActivation {
		t.Select(tab.opts.ID)
	}
}

// DescribeSemanticsConfiguration reports the tablist role.
func (t *Tabs) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleTabList
	config.Properties.Label = t.opts.Label
	return true
}

func (t *Tabs) disposeTabs() {
	for _, tab := range t.Tabs() {
		tab.Dispose()
	}
	t.scope.Remove()
}

// Dispose disposes every tab.
func (t *Tabs) Dispose() { t.dispose() }

func (tab *Tab) compute() TabState {
	return TabState{
		WidgetStateSet: tab.ctl.States(),
		TabID:          tab.opts.ID,
		Index:          tab.tabs.indexOf(tab.opts.ID),
		Label:          tab.opts.Label,
	}
}

func (tab *Tab) handleKey(e input.KeyEvent) focus.KeyResult {
	t := tab.tabs
	keys := t.env.Keys
	next, prev := keys.Right, keys.Left
	if t.opts.Vertical {
		next, prev = keys.Down, keys.Up
	}
	i := t.indexOf(tab.opts.ID)
	n := len(t.tabs)
	switch {
	case input.Matches(e, keys.Activate):
		tab.Activate()
	case input.Matches(e, next):
		t.focusTab(stepEnabled(i, 1, n, t.enabled, true))
	case input.Matches(e, prev):
		t.focusTab(stepEnabled(i, -1, n, t.enabled, true))
	case input.Matches(e, keys.Home):
		t.focusTab(firstEnabled(n, t.enabled))
	case input.Matches(e, keys.End):
		t.focusTab(lastEnabled(n, t.enabled))
	default:
		return focus.KeyIgnored
	}
	return focus.KeyHandled
}

// Activate flashes Pressed and selects the tab.
func (tab *Tab) Activate() {
	if tab.disposed || !tab.ctl.Enabled() {
		return
	}
	tab.ctl.Flash()
	tab.tabs.Select(tab.opts.ID)
}

// SetDisabled enables or disables the tab.
func (tab *Tab) SetDisabled(disabled bool) { tab.ctl.SetEnabled(!disabled) }

// SetBounds moves the hit region.
func (tab *Tab) SetBounds(r graphics.Rect) { tab.ctl.SetBounds(r) }

// FocusNode returns the tab's focus node.
func (tab *Tab) FocusNode() *focus.Node { return tab.ctl.FocusNode() }

// DescribeSemanticsConfiguration reports the tab role and selection.
func (tab *Tab) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	s := tab.State()
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleTab
	config.Properties.Label = s.Label
	config.Properties.Flags = interactiveFlags(s.WidgetStateSet).
		Set(semantics.SemanticsHasSelectedState).
		SetIf(semantics.SemanticsIsSelected, s.IsSelected())
	if s.Enabled() {
		config.Actions = semantics.NewSemanticsActions()
		config.Actions.On(semantics.SemanticsActionTap, tab.Activate)
	}
	return true
}

// Dispose removes the tab from its list.
func (tab *Tab) Dispose() { tab.dispose() }
