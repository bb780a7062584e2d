package widgets

import (
	"time"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/overlay"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// SelectOption is one choice of a Select.
type SelectOption[T comparable] struct {
	Value    T
	Label    string
	Disabled bool
}

// SelectState is published by a Select's trigger. HighlightedIndex is -1
// when nothing is highlighted.
type SelectState[T comparable] struct {
	states.WidgetStateSet
	IsOpen           bool
	Value            T
	HasValue         bool
	HighlightedIndex int
	// Label is the selected option's label, or the placeholder.
	Label string
}

// Hash combines the state set with the select's fields.
func (s SelectState[T]) Hash() uint64 {
	return states.HashWith(s.WidgetStateSet, s.IsOpen, s.Value, s.HasValue, s.HighlightedIndex, s.Label)
}

// SelectOptionState is published by each option row while the listbox is
// mounted. Selected marks the chosen option.
type SelectOptionState[T comparable] struct {
	states.WidgetStateSet
	Index       int
	Value       T
	Label       string
	Highlighted bool
}

// Hash combines the state set with the option's fields.
func (s SelectOptionState[T]) Hash() uint64 {
	return states.HashWith(s.WidgetStateSet, s.Index, s.Value, s.Label, s.Highlighted)
}

// SelectOptions configures a Select.
type SelectOptions[T comparable] struct {
	// Label names the select for assistive technology.
	Label       string
	Placeholder string
	Options     []SelectOption[T]
	Value       T
	HasValue    bool
	// OnChanged is called when activating an option changes the value.
	OnChanged func(T)

	Bounds     graphics.Rect
	Disabled   bool
	Autofocus  bool
	FocusNode  *focus.Node
	FocusScope *focus.Scope

	// OptionHeight is the height of one listbox row. Defaults to 1.
	OptionHeight float64
	// Position overrides the default placement: below the trigger,
	// flipping above, matching the trigger's width.
	Position  *overlay.PositionConfig
	MaxHeight float64
	// Linger keeps the listbox mounted after closing, for exit animations.
	Linger           time.Duration
	TypeaheadTimeout time.Duration

	Builder       func(ctx *core.Element, state SelectState[T]) any
	OptionBuilder func(ctx *core.Element, state SelectOptionState[T]) any
}

// Select is a trigger with an anchored listbox.
//
// Enter, Space, Down and Up open the listbox; typing opens it and
// highlights the best matching label. While open, arrows, Home and End
// move the highlight, activation selects the highlighted option and
// closes, and Escape or a tap outside closes. Focus stays on the trigger
// throughout. Highlighting never selects: the value changes only on
// activation.
type Select[T comparable] struct {
	component[SelectState[T]]
	opts      SelectOptions[T]
	ctl       *interaction
	anchored  *overlay.Anchored
	typeahead *typeahead
	items     []*selectItem[T]
	value     T
	hasValue  bool
	highlight int
}

type selectItem[T comparable] struct {
	component[SelectOptionState[T]]
	sel   *Select[T]
	index int
	ctl   *interaction
}

// NewSelect creates a select and mounts its trigger builder under parent.
func NewSelect[T comparable](env *Env, parent *core.Element, opts SelectOptions[T]) *Select[T] {
	if opts.OptionHeight <= 0 {
		opts.OptionHeight = 1
	}
	s := &Select[T]{opts: opts, value: opts.Value, hasValue: opts.HasValue, highlight: -1}
	s.ctl = newInteraction(env, interactionConfig{
		Name:       "Select",
		Bounds:     opts.Bounds,
		FocusScope: opts.FocusScope,
		FocusNode:  opts.FocusNode,
		Autofocus:  opts.Autofocus,
		Disabled:   opts.Disabled,
		OnTap:      s.Toggle,
		OnKey:      s.handleKey,
	}, s.publish)
	s.typeahead = newTypeahead(env.Scheduler, "widgets.Select.typeahead", opts.TypeaheadTimeout)

	position := overlay.Below(0)
	position.MatchAnchorWidth = true
	if opts.Position != nil {
		position = *opts.Position
	}
	if opts.MaxHeight > 0 {
		position.MaxHeight = opts.MaxHeight
	}
	s.anchored = overlay.NewAnchored(overlay.AnchoredOptions{
		Surface:           env.Surface,
		Scheduler:         env.Scheduler,
		Name:              "Select.listbox",
		Anchor:            s.ctl.Target(),
		TriggerFocus:      s.ctl.FocusNode(),
		FocusParent:       opts.FocusScope,
		Size:              s.listSize(),
		Position:          position,
		Builder:           s.buildList,
		Linger:            opts.Linger,
		CloseOnTapOutside: true,
		Keys:              &env.Keys,
		OnCloseRequested: func(proceed func()) {
			s.publish()
			proceed()
		},
		OnOpen:  s.publish,
		OnClose: s.closed,
	})

	s.init(env, "Select", s.compute)
	s.onDispose(s.ctl.Dispose)
	s.onDispose(s.typeahead.Dispose)
	s.onDispose(s.anchored.Dispose)
	s.mount(parent, opts.Builder, s.Dispose)
	return s
}

func (s *Select[T]) compute() SelectState[T] {
	label := s.opts.Placeholder
	if i := s.selectedIndex(); i >= 0 {
		label = s.opts.Options[i].Label
	}
	return SelectState[T]{
		WidgetStateSet:   s.ctl.States(),
		IsOpen:           s.IsOpen(),
		Value:            s.value,
		HasValue:         s.hasValue,
		HighlightedIndex: s.highlight,
		Label:            label,
	}
}

func (s *Select[T]) listSize() graphics.Size {
	return graphics.Size{
		Width:  s.ctl.Bounds().Width(),
		Height: float64(len(s.opts.Options)) * s.opts.OptionHeight,
	}
}

func (s *Select[T]) enabled(i int) bool {
	return i >= 0 && i < len(s.opts.Options) && !s.opts.Options[i].Disabled
}

func (s *Select[T]) selectedIndex() int {
	if !s.hasValue {
		return -1
	}
	for i, o := range s.opts.Options {
		if o.Value == s.value {
			return i
		}
	}
	return -1
}

// IsOpen reports whether the listbox is open and not closing.
func (s *Select[T]) IsOpen() bool {
	return s.anchored.IsOpen() && !s.anchored.IsClosing()
}

// Value returns the selected value and whether there is one.
func (s *Select[T]) Value() (T, bool) { return s.value, s.hasValue }

// SetValue selects v without calling OnChanged.
func (s *Select[T]) SetValue(v T) {
	s.value, s.hasValue = v, true
	s.refresh()
}

// Open opens the listbox, highlighting the selected option or else the
// first enabled one.
func (s *Select[T]) Open() {
	start := s.selectedIndex()
	if !s.enabled(start) {
		start = firstEnabled(len(s.opts.Options), s.enabled)
	}
	s.openWith(start)
}

func (s *Select[T]) openWith(highlight int) {
	if s.disposed || !s.ctl.Enabled() {
		return
	}
	if !s.IsOpen() {
		s.highlight = highlight
	}
	s.anchored.Open()
	s.refresh()
}

// Close closes the listbox and keeps focus on the trigger.
func (s *Select[T]) Close() { s.anchored.Close() }

// Toggle opens a closed listbox and closes an open one.
func (s *Select[T]) Toggle() {
	if s.IsOpen() {
		s.Close()
		return
	}
	s.Open()
}

func (s *Select[T]) closed() {
	s.highlight = -1
	s.publish()
}

// Highlight moves the highlight to option i. Disabled options cannot be
// highlighted.
func (s *Select[T]) Highlight(i int) {
	if !s.enabled(i) || i == s.highlight {
		return
	}
	s.highlight = i
	s.refresh()
}

// Choose selects option i and closes the listbox. A disabled option is
// ignored. OnChanged runs when the value changes.
func (s *Select[T]) Choose(i int) {
	if s.disposed || !s.enabled(i) {
		return
	}
	v := s.opts.Options[i].Value
	changed := !s.hasValue || s.value != v
	s.value, s.hasValue = v, true
	s.Close()
	s.refresh()
	if changed && s.opts.OnChanged != nil {
		s.opts.OnChanged(v)
	}
}

// SetOptions replaces the options. An open listbox is rebuilt.
func (s *Select[T]) SetOptions(options []SelectOption[T]) {
	s.opts.Options = options
	if !s.enabled(s.highlight) {
		s.highlight = -1
	}
	for _, it := range s.items {
		it.Dispose()
	}
	s.items = nil
	s.anchored.SetSize(s.listSize())
	s.anchored.MarkNeedsBuild()
	s.refresh()
}

// SetDisabled enables or disables the select. Disabling closes it.
func (s *Select[T]) SetDisabled(disabled bool) {
	if disabled {
		s.Close()
	}
	s.ctl.SetEnabled(!disabled)
}

// SetBounds moves the trigger and repositions an open listbox.
func (s *Select[T]) SetBounds(r graphics.Rect) {
	s.ctl.SetBounds(r)
	s.anchored.SetSize(s.listSize())
}

// FocusNode returns the trigger's focus node.
func (s *Select[T]) FocusNode() *focus.Node { return s.ctl.FocusNode() }

// Anchored returns the listbox overlay.
func (s *Select[T]) Anchored() *overlay.Anchored { return s.anchored }

// OptionStates returns the published state of each mounted option row.
func (s *Select[T]) OptionStates() []SelectOptionState[T] {
	out := make([]SelectOptionState[T], len(s.items))
	for i, it := range s.items {
		out[i] = it.State()
	}
	return out
}

func (s *Select[T]) refresh() {
	s.publish()
	for _, it := range s.items {
		it.publish()
	}
}

func (s *Select[T]) handleKey(e input.KeyEvent) focus.KeyResult {
	keys := s.env.Keys
	n := len(s.opts.Options)
	if !s.IsOpen() {
		switch {
		case input.Matches(e, keys.Activate, keys.Down):
			s.ctl.Flash()
			s.Open()
		case input.Matches(e, keys.Up):
			start := s.selectedIndex()
			if !s.enabled(start) {
				start = lastEnabled(n, s.enabled)
			}
			s.openWith(start)
		case e.IsText():
			s.typeAhead(e.Runes)
		default:
			return focus.KeyIgnored
		}
		return focus.KeyHandled
	}

	switch {
	case input.Matches(e, keys.Activate):
		s.Choose(s.highlight)
	case input.Matches(e, keys.Down):
		s.Highlight(stepEnabled(s.highlight, 1, n, s.enabled, false))
	case input.Matches(e, keys.Up):
		s.Highlight(stepEnabled(s.highlight, -1, n, s.enabled, false))
	case input.Matches(e, keys.Home):
		s.Highlight(firstEnabled(n, s.enabled))
	case input.Matches(e, keys.End):
		s.Highlight(lastEnabled(n, s.enabled))
	case input.Matches(e, keys.Next, keys.Previous):
		s.Close()
		return focus.KeyIgnored
	case e.IsText():
		s.typeAhead(e.Runes)
	default:
		return focus.KeyIgnored
	}
	return focus.KeyHandled
}

func (s *Select[T]) typeAhead(runes []rune) {
	query := s.typeahead.add(runes)
	labels := make([]string, len(s.opts.Options))
	for i, o := range s.opts.Options {
		labels[i] = o.Label
	}
	i := matchLabel(query, labels, s.enabled, s.highlight)
	if i < 0 {
		return
	}
	if !s.IsOpen() {
		s.openWith(i)
		return
	}
	s.Highlight(i)
}

// buildList is the listbox entry's build function. It mounts one element
// per option on the first build and lays the rows out in the entry rect
// on every build.
func (s *Select[T]) buildList(ctx *core.Element) any {
	entry := s.env.Surface.EntryOf(ctx)
	if s.items == nil {
		for i := range s.opts.Options {
			s.items = append(s.items, s.newItem(ctx, entry, i))
		}
		ctx.OnDispose(func() { s.items = nil })
	}
	if entry != nil {
		for i, it := range s.items {
			it.ctl.SetBounds(rowRect(entry.Rect(), i, s.opts.OptionHeight))
		}
	}
	return nil
}

func (s *Select[T]) newItem(ctx *core.Element, entry *overlay.Entry, index int) *selectItem[T] {
	it := &selectItem[T]{sel: s, index: index}
	it.ctl = newInteraction(s.env, interactionConfig{
		Name:      "SelectOption",
		SkipFocus: true,
		Disabled:  !s.enabled(index),
		OnTap:     func() { s.Choose(index) },
		OnHoverChange: func(hovered bool) {
			if hovered {
				s.Highlight(index)
			}
		},
	}, it.publish)
	if entry != nil {
		entry.Adopt(it.ctl.Target())
	}
	it.init(s.env, "SelectOption", it.compute)
	it.onDispose(it.ctl.Dispose)
	it.mount(ctx, s.opts.OptionBuilder, it.Dispose)
	return it
}

func (it *selectItem[T]) compute() SelectOptionState[T] {
	s := it.sel
	opt := s.opts.Options[it.index]
	set := it.ctl.States().Toggle(states.Selected, s.hasValue && s.value == opt.Value)
	return SelectOptionState[T]{
		WidgetStateSet: set,
		Index:          it.index,
		Value:          opt.Value,
		Label:          opt.Label,
		Highlighted:    s.highlight == it.index,
	}
}

func (it *selectItem[T]) Dispose() { it.dispose() }

// DescribeSemanticsConfiguration reports the combobox role and expanded
// state.
func (s *Select[T]) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	st := s.State()
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleComboBox
	config.Properties.Label = s.opts.Label
	config.Properties.Value = st.Label
	config.Properties.Flags = interactiveFlags(st.WidgetStateSet).
		Set(semantics.SemanticsHasPopup | semantics.SemanticsHasExpandedState).
		SetIf(semantics.SemanticsIsExpanded, st.IsOpen)
	if st.Enabled() {
		config.Actions = semantics.NewSemanticsActions()
		config.Actions.On(semantics.SemanticsActionTap, s.Toggle)
		if st.IsOpen {
			config.Actions.On(semantics.SemanticsActionCollapse, s.Close)
			config.Actions.On(semantics.SemanticsActionDismiss, s.Close)
		} else {
			config.Actions.On(semantics.SemanticsActionExpand, s.Open)
		}
	}
	return true
}

// Dispose closes the listbox without callbacks and tears the select down.
func (s *Select[T]) Dispose() { s.dispose() }
