package widgets

import (
	"time"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/overlay"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label    string
	Disabled bool
	// OnSelected runs when the item is activated, after which the menu
	// closes.
	OnSelected func()
	// MovesFocus marks items whose action focuses something else, such
	// as opening a dialog. The menu then closes without returning focus
	// to the trigger.
	MovesFocus bool
}

// MenuState is published by a Menu's trigger. HighlightedIndex is -1
// when no item has focus.
type MenuState struct {
	states.WidgetStateSet
	IsOpen           bool
	HighlightedIndex int
}

// Hash combines the state set with the menu's fields.
func (s MenuState) Hash() uint64 {
	return states.HashWith(s.WidgetStateSet, s.IsOpen, s.HighlightedIndex)
}

// MenuItemState is published by each item while the menu is mounted.
type MenuItemState struct {
	states.WidgetStateSet
	Index       int
	Label       string
	Highlighted bool
}

// Hash combines the state set with the item's fields.
func (s MenuItemState) Hash() uint64 {
	return states.HashWith(s.WidgetStateSet, s.Index, s.Label, s.Highlighted)
}

// MenuOptions configures a Menu.
type MenuOptions struct {
	Label  string
	Items  []MenuItem
	Bounds graphics.Rect
	// ContextMenu makes the trigger region open the menu at the pointer
	// on a secondary click or a long press instead of on tap.
	ContextMenu bool

	Disabled   bool
	Autofocus  bool
	FocusNode  *focus.Node
	FocusScope *focus.Scope

	// Width of the item list. Defaults to the trigger's width.
	Width float64
	// ItemHeight is the height of one row. Defaults to 1.
	ItemHeight float64
	// Position overrides the default placement below the trigger.
	// Context menus always open at the pointer.
	Position         *overlay.PositionConfig
	Linger           time.Duration
	TypeaheadTimeout time.Duration

	OnOpen  func()
	OnClose func()

	Builder     func(ctx *core.Element, state MenuState) any
	ItemBuilder func(ctx *core.Element, state MenuItemState) any
}

// Menu is a trigger with an anchored list of actions.
//
// Unlike Select, focus moves into the menu: keyboard opening focuses the
// first (or with Up, the last) enabled item, arrows move between items,
// and hovering an item focuses it. Opening with the pointer leaves focus
// on the trigger until an arrow key is pressed. Activating an item runs
// its action and closes the menu. Escape, Tab and a tap outside close it
// too. Focus returns to the trigger unless the action moved it elsewhere.
type Menu struct {
	component[MenuState]
	opts      MenuOptions
	ctl       *interaction
	anchored  *overlay.Anchored
	typeahead *typeahead
	position  overlay.PositionConfig
	items     []*menuItem
	highlight int
	downAt    graphics.Offset
}

type menuItem struct {
	component[MenuItemState]
	menu  *Menu
	index int
	ctl   *interaction
}

// NewMenu creates a menu and mounts its trigger builder under parent.
func NewMenu(env *Env, parent *core.Element, opts MenuOptions) *Menu {
	if opts.ItemHeight <= 0 {
		opts.ItemHeight = 1
	}
	m := &Menu{opts: opts, highlight: -1}
	cfg := interactionConfig{
		Name:       "Menu",
		Bounds:     opts.Bounds,
		FocusScope: opts.FocusScope,
		FocusNode:  opts.FocusNode,
		Autofocus:  opts.Autofocus,
		Disabled:   opts.Disabled,
		OnKey:      m.handleKey,
	}
	if opts.ContextMenu {
		cfg.OnLongPress = func() { m.OpenAt(m.downAt) }
	} else {
		cfg.OnTap = m.Toggle
	}
	m.ctl = newInteraction(env, cfg, m.publish)
	m.ctl.Target().AddHandler(gestures.HandlerFunc(m.handlePointer))
	m.typeahead = newTypeahead(env.Scheduler, "widgets.Menu.typeahead", opts.TypeaheadTimeout)

	m.position = overlay.Below(0)
	if opts.Position != nil {
		m.position = *opts.Position
	}
	m.anchored = overlay.NewAnchored(overlay.AnchoredOptions{
		Surface:           env.Surface,
		Scheduler:         env.Scheduler,
		Name:              "Menu.list",
		Anchor:            m.ctl.Target(),
		TriggerFocus:      m.ctl.FocusNode(),
		FocusParent:       opts.FocusScope,
		Size:              m.listSize(),
		Position:          m.position,
		Builder:           m.buildList,
		Linger:            opts.Linger,
		CloseOnTapOutside: true,
		Keys:              &env.Keys,
		OnCloseRequested: func(proceed func()) {
			m.publish()
			proceed()
		},
		OnOpen: func() {
			m.publish()
			if m.opts.OnOpen != nil {
				m.opts.OnOpen()
			}
		},
		OnClose: m.closed,
	})

	m.init(env, "Menu", m.compute)
	m.onDispose(m.ctl.Dispose)
	m.onDispose(m.typeahead.Dispose)
	m.onDispose(m.anchored.Dispose)
	m.mount(parent, opts.Builder, m.Dispose)
	return m
}

func (m *Menu) compute() MenuState {
	return MenuState{
		WidgetStateSet:   m.ctl.States(),
		IsOpen:           m.IsOpen(),
		HighlightedIndex: m.highlight,
	}
}

func (m *Menu) listSize() graphics.Size {
	w := m.opts.Width
	if w <= 0 {
		w = m.ctl.Bounds().Width()
	}
	return graphics.Size{Width: w, Height: float64(len(m.opts.Items)) * m.opts.ItemHeight}
}

func (m *Menu) enabled(i int) bool {
	return i >= 0 && i < len(m.opts.Items) && !m.opts.Items[i].Disabled
}

func (m *Menu) handlePointer(e gestures.Event) {
	if e.Type != gestures.EventDown || !e.Inside {
		return
	}
	m.downAt = e.Position
	if m.opts.ContextMenu && e.Button == input.ButtonSecondary {
		m.OpenAt(e.Position)
	}
}

// IsOpen reports whether the menu is open and not closing.
func (m *Menu) IsOpen() bool {
	return m.anchored.IsOpen() && !m.anchored.IsClosing()
}

// Open opens the menu below the trigger without moving focus.
func (m *Menu) Open() { m.openWith(-1, nil) }

// OpenAt opens the menu at p, as a context menu.
func (m *Menu) OpenAt(p graphics.Offset) { m.openWith(-1, &p) }

func (m *Menu) openWith(focusIndex int, at *graphics.Offset) {
	if m.disposed || !m.ctl.Enabled() {
		return
	}
	if at != nil {
		m.anchored.SetPosition(overlay.ContextMenu(*at))
		m.anchored.OpenAt(*at)
	} else {
		if !m.IsOpen() {
			m.anchored.SetPosition(m.position)
		}
		m.anchored.Open()
	}
	m.focusItem(focusIndex)
	m.publish()
}

// Close closes the menu and returns focus to the trigger.
func (m *Menu) Close() { m.anchored.Close() }

// Toggle opens a closed menu and closes an open one.
func (m *Menu) Toggle() {
	if m.IsOpen() {
		m.Close()
		return
	}
	m.Open()
}

func (m *Menu) closed() {
	m.highlight = -1
	m.publish()
	if m.opts.OnClose != nil {
		m.opts.OnClose()
	}
}

// Activate runs item i's action and closes the menu. Disabled items are
// ignored.
func (m *Menu) Activate(i int) {
	if m.disposed || !m.enabled(i) {
		return
	}
	item := m.opts.Items[i]
	if i < len(m.items) {
		m.items[i].ctl.Flash()
	}
	if item.OnSelected != nil {
		item.OnSelected()
	}
	if item.MovesFocus || m.focusMoved() {
		m.anchored.CloseWithoutFocusReturn()
		return
	}
	m.anchored.Close()
}

// focusMoved reports whether focus sits somewhere other than the menu
// and its trigger.
func (m *Menu) focusMoved() bool {
	primary := m.env.Focus.PrimaryFocus()
	if primary == nil || primary == m.ctl.FocusNode() {
		return false
	}
	scope := m.anchored.FocusScope()
	return scope == nil || !scope.Contains(primary)
}

// SetItems replaces the items. An open menu is rebuilt.
func (m *Menu) SetItems(items []MenuItem) {
	m.opts.Items = items
	m.highlight = -1
	for _, it := range m.items {
		it.Dispose()
	}
	m.items = nil
	m.anchored.SetSize(m.listSize())
	m.anchored.MarkNeedsBuild()
	m.publish()
}

// SetDisabled enables or disables the trigger. Disabling closes the menu.
func (m *Menu) SetDisabled(disabled bool) {
	if disabled {
		m.Close()
	}
	m.ctl.SetEnabled(!disabled)
}

// SetBounds moves the trigger and repositions an open menu.
func (m *Menu) SetBounds(r graphics.Rect) {
	m.ctl.SetBounds(r)
	m.anchored.SetSize(m.listSize())
}

// FocusNode returns the trigger's focus node.
func (m *Menu) FocusNode() *focus.Node { return m.ctl.FocusNode() }

// Anchored returns the menu overlay.
func (m *Menu) Anchored() *overlay.Anchored { return m.anchored }

// ItemStates returns the published state of each mounted item.
func (m *Menu) ItemStates() []MenuItemState {
	out := make([]MenuItemState, len(m.items))
	for i, it := range m.items {
		out[i] = it.State()
	}
	return out
}

// ItemFocusNode returns item i's focus node while the menu is mounted.
func (m *Menu) ItemFocusNode(i int) *focus.Node {
	if i < 0 || i >= len(m.items) {
		return nil
	}
	return m.items[i].ctl.FocusNode()
}

func (m *Menu) focusItem(i int) {
	if !m.enabled(i) || i >= len(m.items) {
		return
	}
	m.items[i].ctl.FocusNode().RequestFocus()
}

func (m *Menu) setHighlight(i int) {
	if m.highlight == i {
		return
	}
	m.highlight = i
	m.publish()
	for _, it := range m.items {
		it.publish()
	}
}

func (m *Menu) handleKey(e input.KeyEvent) focus.KeyResult {
	keys := m.env.Keys
	n := len(m.opts.Items)
	switch {
	case input.Matches(e, keys.Activate):
		m.ctl.Flash()
		if m.IsOpen() {
			m.Close()
		} else {
			m.openWith(firstEnabled(n, m.enabled), nil)
		}
	case input.Matches(e, keys.Down):
		m.openWith(firstEnabled(n, m.enabled), nil)
	case input.Matches(e, keys.Up):
		m.openWith(lastEnabled(n, m.enabled), nil)
	case e.IsText():
		m.typeAhead(e.Runes)
	default:
		return focus.KeyIgnored
	}
	return focus.KeyHandled
}

func (m *Menu) handleItemKey(index int, e input.KeyEvent) focus.KeyResult {
	keys := m.env.Keys
	n := len(m.opts.Items)
	switch {
	case input.Matches(e, keys.Activate):
		m.Activate(index)
	case input.Matches(e, keys.Down):
		m.focusItem(stepEnabled(index, 1, n, m.enabled, true))
	case input.Matches(e, keys.Up):
		m.focusItem(stepEnabled(index, -1, n, m.enabled, true))
	case input.Matches(e, keys.Home):
		m.focusItem(firstEnabled(n, m.enabled))
	case input.Matches(e, keys.End):
		m.focusItem(lastEnabled(n, m.enabled))
	case input.Matches(e, keys.Next, keys.Previous):
		m.Close()
	case e.IsText():
		m.typeAhead(e.Runes)
	default:
		return focus.KeyIgnored
	}
	return focus.KeyHandled
}

func (m *Menu) typeAhead(runes []rune) {
	query := m.typeahead.add(runes)
	labels := make([]string, len(m.opts.Items))
	for i, it := range m.opts.Items {
		labels[i] = it.Label
	}
	i := matchLabel(query, labels, m.enabled, m.highlight)
	if i < 0 {
		return
	}
	m.openWith(i, nil)
}

func (m *Menu) buildList(ctx *core.Element) any {
	entry := m.env.Surface.EntryOf(ctx)
	if m.items == nil && entry != nil {
		for i := range m.opts.Items {
			m.items = append(m.items, m.newItem(ctx, entry, i))
		}
		ctx.OnDispose(func() { m.items = nil })
	}
	if entry != nil {
		for i, it := range m.items {
			it.ctl.SetBounds(rowRect(entry.Rect(), i, m.opts.ItemHeight))
		}
	}
	return nil
}

func (m *Menu) newItem(ctx *core.Element, entry *overlay.Entry, index int) *menuItem {
	it := &menuItem{menu: m, index: index}
	it.ctl = newInteraction(m.env, interactionConfig{
		Name:       "MenuItem",
		FocusScope: entry.FocusScope(),
		OnTap:      func() { m.Activate(index) },
		OnKey:      func(e input.KeyEvent) focus.KeyResult { return m.handleItemKey(index, e) },
	}, it.changed)
	// Only a moving pointer focuses an item. A menu opening under a
	// still pointer must not steal focus from the trigger.
	it.ctl.Target().AddHandler(gestures.HandlerFunc(func(e gestures.Event) {
		moved := e.Type == gestures.EventHover || (e.Type == gestures.EventEnter && !e.Relayout)
		if moved && !it.ctl.FocusNode().HasFocus() {
			m.focusItem(index)
		}
	}))
	if !m.enabled(index) {
		it.ctl.FocusNode().SkipTraversal = true
		it.ctl.SetEnabled(false)
	}
	entry.Adopt(it.ctl.Target())
	it.init(m.env, "MenuItem", it.compute)
	it.onDispose(it.ctl.Dispose)
	it.mount(ctx, m.opts.ItemBuilder, it.Dispose)
	return it
}

func (it *menuItem) changed() {
	if it.ctl == nil {
		return
	}
	m := it.menu
	if it.ctl.States().IsFocused() {
		m.setHighlight(it.index)
	} else if m.highlight == it.index {
		m.setHighlight(-1)
	}
	it.publish()
}

func (it *menuItem) compute() MenuItemState {
	return MenuItemState{
		WidgetStateSet: it.ctl.States(),
		Index:          it.index,
		Label:          it.menu.opts.Items[it.index].Label,
		Highlighted:    it.menu.highlight == it.index,
	}
}

func (it *menuItem) Dispose() { it.dispose() }

// DescribeSemanticsConfiguration reports the trigger as a button that
// opens a menu.
func (m *Menu) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	s := m.State()
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleButton
	config.Properties.Label = m.opts.Label
	config.Properties.Flags = interactiveFlags(s.WidgetStateSet).
		Set(semantics.SemanticsIsButton | semantics.SemanticsHasPopup | semantics.SemanticsHasExpandedState).
		SetIf(semantics.SemanticsIsExpanded, s.IsOpen)
	if s.Enabled() {
		config.Actions = semantics.NewSemanticsActions()
		config.Actions.On(semantics.SemanticsActionTap, m.Toggle)
		if s.IsOpen {
			config.Actions.On(semantics.SemanticsActionDismiss, m.Close)
		}
	}
	return true
}

// DescribeItem reports item i with the menu item role.
func (m *Menu) DescribeItem(i int) semantics.SemanticsConfiguration {
	var config semantics.SemanticsConfiguration
	if i < 0 || i >= len(m.items) {
		return config
	}
	s := m.items[i].State()
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleMenuItem
	config.Properties.Label = s.Label
	config.Properties.Flags = interactiveFlags(s.WidgetStateSet)
	if s.Enabled() {
		config.Actions = semantics.NewSemanticsActions()
		config.Actions.On(semantics.SemanticsActionTap, func() { m.Activate(i) })
	}
	return config
}

// Dispose closes the menu without callbacks and tears it down.
func (m *Menu) Dispose() { m.dispose() }
