package widgets

import (
	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// AccordionItemState is published by each accordion header. Builders
// show the item's panel while Expanded is set; Selected mirrors it.
type AccordionItemState struct {
	states.WidgetStateSet
	ID       string
	Label    string
	Expanded bool
}

// Hash combines the state set with the item's fields.
func (s AccordionItemState) Hash() uint64 {
	return states.HashWith(s.WidgetStateSet, s.ID, s.Label, s.Expanded)
}

// AccordionOptions configures an Accordion.
type AccordionOptions struct {
	Label string
	// Multiple lets several items be expanded at once. Otherwise
	// expanding an item collapses the others.
	Multiple bool
	// Required keeps one item expanded in single mode: activating the
	// expanded header does not collapse it.
	Required bool
	// Expanded lists the ids expanded initially. In single mode only the
	// first is used.
	Expanded []string
	// OnChanged is called for every item that expands or collapses.
	OnChanged  func(id string, expanded bool)
	Disabled   bool
	FocusScope *focus.Scope
}

// Accordion is a set of headers that expand and collapse their panels.
//
// Every enabled header is a Tab stop. Enter or Space toggles the focused
// header; Down and Up move between headers, wrapping, and Home and End
// jump to the first and last.
type Accordion struct {
	env      *Env
	opts     AccordionOptions
	items    []*AccordionItem
	expanded map[string]bool
	scope    *focus.Scope
}

// NewAccordion creates an empty accordion.
func NewAccordion(env *Env, opts AccordionOptions) *Accordion {
	parent := opts.FocusScope
	if parent == nil {
		parent = env.Focus.RootScope()
	}
	a := &Accordion{
		env:      env,
		opts:     opts,
		expanded: make(map[string]bool),
		scope:    parent.NewChildScope("Accordion"),
	}
	for _, id := range opts.Expanded {
		a.expanded[id] = true
		if !opts.Multiple {
			break
		}
	}
	return a
}

// AccordionItemOptions configures one item.
type AccordionItemOptions struct {
	ID       string
	Label    string
	Bounds   graphics.Rect
	Disabled bool
	Builder  func(ctx *core.Element, state AccordionItemState) any
}

// AccordionItem is one header of an Accordion.
type AccordionItem struct {
	component[AccordionItemState]
	acc  *Accordion
	opts AccordionItemOptions
	ctl  *interaction
}

// Add creates an item and mounts its builder under parent.
func (a *Accordion) Add(parent *core.Element, opts AccordionItemOptions) *AccordionItem {
	it := &AccordionItem{acc: a, opts: opts}
	it.ctl = newInteraction(a.env, interactionConfig{
		Name:       "AccordionHeader",
		Bounds:     opts.Bounds,
		FocusScope: a.scope,
		Disabled:   a.opts.Disabled || opts.Disabled,
		OnTap:      func() { a.Toggle(it.opts.ID) },
		OnKey:      it.handleKey,
	}, it.publish)
	it.ctl.SetSelected(a.expanded[opts.ID])
	it.init(a.env, "AccordionItem", it.compute)
	it.onDispose(it.ctl.Dispose)
	it.onDispose(func() { a.remove(it) })
	it.mount(parent, opts.Builder, it.Dispose)
	a.items = append(a.items, it)
	return it
}

func (it *AccordionItem) compute() AccordionItemState {
	return AccordionItemState{
		WidgetStateSet: it.ctl.States(),
		ID:             it.opts.ID,
		Label:          it.opts.Label,
		Expanded:       it.acc.expanded[it.opts.ID],
	}
}

// IsExpanded reports whether id is expanded.
func (a *Accordion) IsExpanded(id string) bool { return a.expanded[id] }

// ExpandedIDs returns the expanded ids in item order.
func (a *Accordion) ExpandedIDs() []string {
	var out []string
	for _, it := range a.items {
		if a.expanded[it.opts.ID] {
			out = append(out, it.opts.ID)
		}
	}
	return out
}

// Items returns the items in insertion order.
func (a *Accordion) Items() []*AccordionItem { return append([]*AccordionItem(nil), a.items...) }

// FocusScope returns the accordion's focus scope.
func (a *Accordion) FocusScope() *focus.Scope { return a.scope }

func (a *Accordion) item(id string) *AccordionItem {
	for _, it := range a.items {
		if it.opts.ID == id {
			return it
		}
	}
	return nil
}

// Toggle expands a collapsed item and collapses an expanded one. Unknown
// and disabled items are ignored.
func (a *Accordion) Toggle(id string) {
	if a.expanded[id] {
		a.Collapse(id)
		return
	}
	a.Expand(id)
}

// Expand expands id. In single mode the other items collapse.
func (a *Accordion) Expand(id string) {
	it := a.item(id)
	if it == nil || !it.ctl.Enabled() || a.expanded[id] {
		return
	}
	var collapsed []string
	if !a.opts.Multiple {
		for other := range a.expanded {
			delete(a.expanded, other)
			collapsed = append(collapsed, other)
		}
	}
	a.expanded[id] = true
	a.sync()
	for _, other := range collapsed {
		a.notify(other, false)
	}
	a.notify(id, true)
}

// Collapse collapses id. With Required in single mode the expanded item
// stays open.
func (a *Accordion) Collapse(id string) {
	it := a.item(id)
	if it == nil || !it.ctl.Enabled() || !a.expanded[id] {
		return
	}
	if a.opts.Required && !a.opts.Multiple {
		return
	}
	delete(a.expanded, id)
	a.sync()
	a.notify(id, false)
}

func (a *Accordion) notify(id string, expanded bool) {
	if a.opts.OnChanged != nil {
		a.opts.OnChanged(id, expanded)
	}
}

func (a *Accordion) sync() {
	for _, it := range a.items {
		it.ctl.SetSelected(a.expanded[it.opts.ID])
		it.publish()
	}
}

// SetDisabled disables or enables every header.
func (a *Accordion) SetDisabled(disabled bool) {
	a.opts.Disabled = disabled
	for _, it := range a.items {
		it.ctl.SetEnabled(!disabled && !it.opts.Disabled)
	}
}

func (a *Accordion) enabled(i int) bool {
	return i >= 0 && i < len(a.items) && a.items[i].ctl.Enabled()
}

// moveFocus focuses the next enabled header after from, wrapping.
func (a *Accordion) moveFocus(from *AccordionItem, delta int) {
	index := -1
	for i, it := range a.items {
		if it == from {
			index = i
		}
	}
	a.focusAt(stepEnabled(index, delta, len(a.items), a.enabled, true))
}

func (a *Accordion) focusAt(i int) {
	if a.enabled(i) {
		a.items[i].ctl.FocusNode().RequestFocus()
	}
}

func (a *Accordion) remove(it *AccordionItem) {
	for i, x := range a.items {
		if x == it {
			a.items = append(a.items[:i], a.items[i+1:]...)
			break
		}
	}
}

// Dispose tears down every item and removes the focus scope.
func (a *Accordion) Dispose() {
	for _, it := range a.Items() {
		it.Dispose()
	}
	a.scope.Remove()
}

func (it *AccordionItem) handleKey(e input.KeyEvent) focus.KeyResult {
	keys := it.env.Keys
	switch {
	case input.Matches(e, keys.Activate):
		it.Activate()
	case input.Matches(e, keys.Down):
		it.acc.moveFocus(it, 1)
	case input.Matches(e, keys.Up):
		it.acc.moveFocus(it, -1)
	case input.Matches(e, keys.Home):
		it.acc.focusAt(firstEnabled(len(it.acc.items), it.acc.enabled))
	case input.Matches(e, keys.End):
		it.acc.focusAt(lastEnabled(len(it.acc.items), it.acc.enabled))
	default:
		return focus.KeyIgnored
	}
	return focus.KeyHandled
}

// Activate flashes the header and toggles the item.
func (it *AccordionItem) Activate() {
	if it.disposed || !it.ctl.Enabled() {
		return
	}
	it.ctl.Flash()
	it.acc.Toggle(it.opts.ID)
}

// Expanded reports whether the item is expanded.
func (it *AccordionItem) Expanded() bool { return it.acc.expanded[it.opts.ID] }

// SetDisabled enables or disables this header.
func (it *AccordionItem) SetDisabled(disabled bool) {
	it.opts.Disabled = disabled
	it.ctl.SetEnabled(!disabled && !it.acc.opts.Disabled)
}

// SetBounds moves the header's hit region.
func (it *AccordionItem) SetBounds(r graphics.Rect) { it.ctl.SetBounds(r) }

// FocusNode returns the header's focus node.
func (it *AccordionItem) FocusNode() *focus.Node { return it.ctl.FocusNode() }

// DescribeSemanticsConfiguration reports the header as an expandable
// button.
func (it *AccordionItem) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	s := it.State()
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleButton
	config.Properties.Label = s.Label
	config.Properties.Flags = interactiveFlags(s.WidgetStateSet).
		Set(semantics.SemanticsIsButton | semantics.SemanticsHasExpandedState).
		SetIf(semantics.SemanticsIsExpanded, s.Expanded)
	if s.Enabled() {
		config.Actions = semantics.NewSemanticsActions()
		config.Actions.On(semantics.SemanticsActionTap, it.Activate)
		if s.Expanded {
			config.Actions.On(semantics.SemanticsActionCollapse, func() { it.acc.Collapse(it.opts.ID) })
		} else {
			config.Actions.On(semantics.SemanticsActionExpand, func() { it.acc.Expand(it.opts.ID) })
		}
	}
	return true
}

// Dispose removes the item from its accordion and tears it down.
func (it *AccordionItem) Dispose() { it.dispose() }
