package widgets

import (
	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
	"github.com/go-drift/headless/pkg/states"
)

// ObscureMask replaces each character of an obscured field.
const ObscureMask = "•"

// TextFieldState is published by a TextField. Cursor and the selection
// bounds count grapheme clusters; Column is the cursor's display column
// in DisplayText.
type TextFieldState struct {
	states.WidgetStateSet
	Text           string
	DisplayText    string
	Cursor         int
	Column         int
	SelectionStart int
	SelectionEnd   int
	Obscured       bool
	ReadOnly       bool
}

// HasSelection reports whether a non-empty range is selected.
func (s TextFieldState) HasSelection() bool { return s.SelectionStart != s.SelectionEnd }

// Hash combines the state set with the editing value.
func (s TextFieldState) Hash() uint64 {
	return states.HashWith(s.WidgetStateSet, s.Text, s.Cursor, s.SelectionStart, s.SelectionEnd, s.Obscured, s.ReadOnly)
}

// TextFieldOptions configures a TextField.
type TextFieldOptions struct {
	Label string
	Text  string
	// Placeholder is announced as the hint.
	Placeholder string
	Bounds      graphics.Rect
	// MaxLength caps the text in grapheme clusters. Zero means no cap.
	MaxLength  int
	Obscured   bool
	ReadOnly   bool
	Disabled   bool
	Autofocus  bool
	FocusNode  *focus.Node
	FocusScope *focus.Scope
	// OnChanged is called after every edit with the new text.
	OnChanged func(text string)
	// OnSubmit is called when the Submit binding is pressed.
	OnSubmit func(text string)
	Builder  func(ctx *core.Element, state TextFieldState) any
}

// TextField is the editing state of a single-line text input: the text,
// a cursor and a selection. It does no layout; hosts draw DisplayText and
// place the caret at Column.
//
// Printable keys insert, replacing any selection. Backspace and Delete
// remove a cluster or the selection; Left, Right, Home and End move the
// cursor, extending the selection with Shift, and by words with Ctrl or
// Alt. Pressing inside the field places the cursor and dragging selects.
// A read-only field still moves the cursor and selects. A disabled field
// keeps focus so Tab order is preserved, but ignores input.
type TextField struct {
	component[TextFieldState]
	opts      TextFieldOptions
	ctl       *interaction
	value     editValue
	selecting bool
}

// NewTextField creates a text field and mounts its builder under parent.
func NewTextField(env *Env, parent *core.Element, opts TextFieldOptions) *TextField {
	f := &TextField{opts: opts, value: newEditValue(opts.Text)}
	if opts.MaxLength > 0 && f.value.Len() > opts.MaxLength {
		f.value.clusters = f.value.clusters[:opts.MaxLength]
		f.value.moveTo(opts.MaxLength, false)
	}
	f.ctl = newInteraction(env, interactionConfig{
		Name:               "TextField",
		Bounds:             opts.Bounds,
		Cursor:             input.CursorText,
		FocusScope:         opts.FocusScope,
		FocusNode:          opts.FocusNode,
		Autofocus:          opts.Autofocus,
		Disabled:           opts.Disabled,
		OnKey:              f.handleKey,
		KeepFocusOnDisable: true,
	}, f.publish)
	f.ctl.Target().AddHandler(gestures.HandlerFunc(f.handlePointer))
	f.init(env, "TextField", f.compute)
	f.onDispose(f.ctl.Dispose)
	f.mount(parent, opts.Builder, f.Dispose)
	return f
}

func (f *TextField) mask() string {
	if f.opts.Obscured {
		return ObscureMask
	}
	return ""
}

func (f *TextField) compute() TextFieldState {
	start, end := f.value.selection()
	return TextFieldState{
		WidgetStateSet: f.ctl.States(),
		Text:           f.value.String(),
		DisplayText:    f.value.display(f.mask()),
		Cursor:         f.value.cursor(),
		Column:         f.value.column(f.value.cursor(), f.mask()),
		SelectionStart: start,
		SelectionEnd:   end,
		Obscured:       f.opts.Obscured,
		ReadOnly:       f.opts.ReadOnly,
	}
}

func (f *TextField) editable() bool {
	return !f.disposed && f.ctl.Enabled() && !f.opts.ReadOnly
}

func (f *TextField) edited(changed bool) {
	f.publish()
	if changed && f.opts.OnChanged != nil {
		f.opts.OnChanged(f.value.String())
	}
}

// Text returns the current text.
func (f *TextField) Text() string { return f.value.String() }

// SetText replaces the text and moves the cursor to the end. OnChanged is
// not called.
func (f *TextField) SetText(text string) {
	f.value = newEditValue(text)
	if f.opts.MaxLength > 0 && f.value.Len() > f.opts.MaxLength {
		f.value.clusters = f.value.clusters[:f.opts.MaxLength]
		f.value.moveTo(f.opts.MaxLength, false)
	}
	f.publish()
}

// Insert replaces the selection with text at the cursor, truncated to
// MaxLength.
func (f *TextField) Insert(text string) {
	if !f.editable() {
		return
	}
	f.edited(f.value.replace(text, f.opts.MaxLength))
}

// Backspace deletes the selection or the cluster before the cursor.
func (f *TextField) Backspace() {
	if !f.editable() {
		return
	}
	f.edited(f.value.deleteBackward())
}

// Delete deletes the selection or the cluster after the cursor.
func (f *TextField) Delete() {
	if !f.editable() {
		return
	}
	f.edited(f.value.deleteForward())
}

// SetCursor moves the cursor to cluster index i and clears the selection.
func (f *TextField) SetCursor(i int) {
	f.value.moveTo(i, false)
	f.publish()
}

// Select selects clusters [start, end). The cursor ends at end.
func (f *TextField) Select(start, end int) {
	f.value.selectRange(start, end)
	f.publish()
}

// SelectAll selects the whole text.
func (f *TextField) SelectAll() { f.Select(0, f.value.Len()) }

// Selection returns the ordered selection bounds.
func (f *TextField) Selection() (start, end int) { return f.value.selection() }

// Submit calls OnSubmit with the current text.
func (f *TextField) Submit() {
	if f.disposed || !f.ctl.Enabled() {
		return
	}
	if f.opts.OnSubmit != nil {
		f.opts.OnSubmit(f.value.String())
	}
}

// SetObscured toggles masking.
func (f *TextField) SetObscured(obscured bool) {
	f.opts.Obscured = obscured
	f.publish()
}

// SetReadOnly toggles read-only mode.
func (f *TextField) SetReadOnly(readOnly bool) {
	f.opts.ReadOnly = readOnly
	f.publish()
}

// SetDisabled enables or disables the field. Focus stays where it is.
func (f *TextField) SetDisabled(disabled bool) {
	f.selecting = false
	f.ctl.SetEnabled(!disabled)
}

// SetError marks the field invalid.
func (f *TextField) SetError(err bool) { f.ctl.SetError(err) }

// SetBounds moves the hit region.
func (f *TextField) SetBounds(r graphics.Rect) { f.ctl.SetBounds(r) }

// FocusNode returns the field's focus node.
func (f *TextField) FocusNode() *focus.Node { return f.ctl.FocusNode() }

func (f *TextField) handlePointer(e gestures.Event) {
	if !f.ctl.Enabled() {
		return
	}
	col := e.Position.X - f.ctl.Bounds().Left
	switch e.Type {
	case gestures.EventDown:
		if !e.Inside {
			return
		}
		f.selecting = true
		if node := f.ctl.FocusNode(); node != nil {
			node.RequestFocus()
		}
		f.value.moveTo(f.value.indexAt(col, f.mask()), e.Modifiers.Has(input.ModShift))
		f.publish()
	case gestures.EventMove:
		if f.selecting {
			f.value.moveTo(f.value.indexAt(col, f.mask()), true)
			f.publish()
		}
	case gestures.EventUp, gestures.EventCancel:
		f.selecting = false
	}
}

func (f *TextField) handleKey(e input.KeyEvent) focus.KeyResult {
	keys := f.env.Keys
	// Shift extends and Ctrl or Alt jump by words; the bindings match
	// the bare key.
	extend := e.Modifiers.Has(input.ModShift)
	word := e.Modifiers.Has(input.ModCtrl) || e.Modifiers.Has(input.ModAlt)
	bare := e
	bare.Modifiers = 0

	switch {
	case input.Matches(e, keys.Submit):
		f.Submit()
	case input.Matches(e, keys.SelectAll):
		f.SelectAll()
	case e.IsText():
		f.Insert(string(e.Runes))
	case e.Key == input.KeySpace && !word:
		f.Insert(" ")
	case input.Matches(bare, keys.Backspace):
		f.Backspace()
	case input.Matches(bare, keys.Delete):
		f.Delete()
	case input.Matches(bare, keys.Left):
		if word {
			f.value.moveTo(f.value.wordBoundary(f.value.cursor(), -1), extend)
		} else {
			f.value.move(-1, extend)
		}
		f.publish()
	case input.Matches(bare, keys.Right):
		if word {
			f.value.moveTo(f.value.wordBoundary(f.value.cursor(), 1), extend)
		} else {
			f.value.move(1, extend)
		}
		f.publish()
	case input.Matches(bare, keys.Home):
		f.value.moveTo(0, extend)
		f.publish()
	case input.Matches(bare, keys.End):
		f.value.moveTo(f.value.Len(), extend)
		f.publish()
	default:
		return focus.KeyIgnored
	}
	return focus.KeyHandled
}

// DescribeSemanticsConfiguration reports the text field role. Obscured
// text is not exposed as the value.
func (f *TextField) DescribeSemanticsConfiguration(config *semantics.SemanticsConfiguration) bool {
	s := f.State()
	config.IsSemanticBoundary = true
	config.Properties.Role = semantics.SemanticsRoleTextField
	config.Properties.Label = f.opts.Label
	config.Properties.Hint = f.opts.Placeholder
	if !s.Obscured {
		config.Properties.Value = s.Text
	}
	config.Properties.Flags = interactiveFlags(s.WidgetStateSet).
		Set(semantics.SemanticsIsTextField).
		SetIf(semantics.SemanticsIsObscured, s.Obscured).
		SetIf(semantics.SemanticsIsReadOnly, s.ReadOnly)
	if s.Enabled() {
		config.Actions = semantics.NewSemanticsActions()
		if node := f.ctl.FocusNode(); node != nil {
			config.Actions.On(semantics.SemanticsActionFocus, func() { node.RequestFocus() })
		}
		if !s.ReadOnly {
			config.Actions.SetHandler(semantics.SemanticsActionSetText, func(args any) {
				if text, ok := args.(string); ok {
					f.SetText(text)
					f.edited(true)
				}
			})
		}
	}
	return true
}

// Dispose tears the field down.
func (f *TextField) Dispose() { f.dispose() }
