package widgets

import (
	"testing"

	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/semantics"
)

type textFieldFixture struct {
	*fixture
	field   *TextField
	changes []string
	submits []string
}

func newTextFieldFixture(opts TextFieldOptions) *textFieldFixture {
	tf := &textFieldFixture{fixture: newFixture()}
	opts.Bounds = box
	opts.Autofocus = true
	opts.OnChanged = func(s string) { tf.changes = append(tf.changes, s) }
	opts.OnSubmit = func(s string) { tf.submits = append(tf.submits, s) }
	tf.field = NewTextField(tf.env, tf.root, opts)
	return tf
}

func TestTextField_Typing(t *testing.T) {
	tf := newTextFieldFixture(TextFieldOptions{})
	tf.keys.Type("cafe\u0301 au")
	tf.keys.Press(input.KeySpace)
	tf.keys.Type("lait")

	if got := tf.field.Text(); got != "cafe\u0301 au lait" {
		t.Errorf("Text() = %q", got)
	}
	if got := tf.field.State().Cursor; got != 12 {
		t.Errorf("Cursor = %d, want 12 clusters", got)
	}
	if got := len(tf.changes); got != 13 {
		t.Errorf("changes = %d, want one per key event", got)
	}

	tf.keys.Press(input.KeyEnter)
	if len(tf.submits) != 1 || tf.submits[0] != tf.field.Text() {
		t.Errorf("submits = %v", tf.submits)
	}
}

func TestTextField_GraphemeEditing(t *testing.T) {
	tf := newTextFieldFixture(TextFieldOptions{Text: "a👍🏽e\u0301"})
	if got := tf.field.State().Cursor; got != 3 {
		t.Fatalf("Cursor = %d, want 3", got)
	}
	tf.keys.Press(input.KeyBackspace)
	if got := tf.field.Text(); got != "a👍🏽" {
		t.Errorf("after Backspace = %q, want the accented letter gone whole", got)
	}
	tf.keys.Press(input.KeyLeft)
	tf.keys.Press(input.KeyDelete)
	if got := tf.field.Text(); got != "a" {
		t.Errorf("after Delete = %q, want the emoji gone whole", got)
	}
	if got := tf.field.State().Column; got != 1 {
		t.Errorf("Column = %d, want 1", got)
	}
}

func TestTextField_Selection(t *testing.T) {
	tf := newTextFieldFixture(TextFieldOptions{Text: "hello world"})

	tf.keys.Press(input.KeyLeft, input.ModShift, input.ModCtrl)
	if start, end := tf.field.Selection(); start != 6 || end != 11 {
		t.Errorf("word select = %d,%d, want 6,11", start, end)
	}
	tf.keys.Type("there")
	if got := tf.field.Text(); got != "hello there" {
		t.Errorf("Text() = %q, want hello there", got)
	}

	tf.keys.Press(input.KeyHome)
	tf.keys.Press(input.KeyRight, input.ModShift)
	tf.keys.Press(input.KeyRight, input.ModShift)
	st := tf.field.State()
	if !st.HasSelection() || st.SelectionStart != 0 || st.SelectionEnd != 2 {
		t.Errorf("selection = %d,%d, want 0,2", st.SelectionStart, st.SelectionEnd)
	}
	tf.keys.Press(input.KeyRight)
	if st := tf.field.State(); st.HasSelection() || st.Cursor != 2 {
		t.Errorf("Right collapsed to %d, want 2", st.Cursor)
	}

	tf.field.SelectAll()
	tf.keys.Press(input.KeyBackspace)
	if tf.field.Text() != "" {
		t.Errorf("Text() = %q after deleting everything", tf.field.Text())
	}
}

func TestTextField_SelectAllBinding(t *testing.T) {
	tf := newTextFieldFixture(TextFieldOptions{Text: "abc"})
	tf.keys.Send(input.KeyEvent{Key: input.KeyRunes, Runes: []rune{'a'}, Modifiers: input.ModCtrl})
	if start, end := tf.field.Selection(); start != 0 || end != 3 {
		t.Errorf("selection = %d,%d, want 0,3", start, end)
	}
	if tf.field.Text() != "abc" {
		t.Error("Ctrl+A inserted text")
	}
}

func TestTextField_MaxLength(t *testing.T) {
	tf := newTextFieldFixture(TextFieldOptions{Text: "abcdef", MaxLength: 4})
	if got := tf.field.Text(); got != "abcd" {
		t.Errorf("initial Text() = %q, want abcd", got)
	}
	tf.keys.Type("x")
	if got := tf.field.Text(); got != "abcd" || len(tf.changes) != 0 {
		t.Errorf("Text() = %q changes = %v, want no insert at the cap", got, tf.changes)
	}
	tf.keys.Type("\u0301")
	if got := tf.field.Text(); got != "abcd\u0301" {
		t.Errorf("Text() = %q, want the mark to join the last letter", got)
	}
	tf.field.Select(0, 2)
	tf.keys.Type("xyz")
	if got := tf.field.Text(); got != "xycd\u0301" {
		t.Errorf("Text() = %q, want the selection replaced up to the cap", got)
	}
}

func TestTextField_ObscuredAndReadOnly(t *testing.T) {
	tf := newTextFieldFixture(TextFieldOptions{Text: "secret", Obscured: true, Label: "Password"})
	st := tf.field.State()
	if st.DisplayText != "••••••" || st.Text != "secret" {
		t.Errorf("state = %+v, want masked display", st)
	}
	config := semantics.Describe(tf.field)
	if config.Properties.Value != "" || !config.Properties.Flags.Has(semantics.SemanticsIsObscured) {
		t.Errorf("obscured semantics = %+v", config.Properties)
	}

	tf.field.SetObscured(false)
	tf.field.SetReadOnly(true)
	tf.keys.Type("!")
	tf.keys.Press(input.KeyBackspace)
	if tf.field.Text() != "secret" || len(tf.changes) != 0 {
		t.Errorf("read-only field edited: %q", tf.field.Text())
	}
	tf.keys.Press(input.KeyHome)
	if got := tf.field.State().Cursor; got != 0 {
		t.Errorf("read-only cursor = %d, want 0", got)
	}
	if semantics.Describe(tf.field).Actions.Perform(semantics.SemanticsActionSetText, "x") {
		t.Error("read-only field offered set-text")
	}
}

func TestTextField_DisabledKeepsFocus(t *testing.T) {
	tf := newTextFieldFixture(TextFieldOptions{Text: "abc"})
	tf.field.SetDisabled(true)
	if !tf.field.FocusNode().HasFocus() {
		t.Error("disabled field dropped focus")
	}
	tf.keys.Type("d")
	tf.keys.Press(input.KeyEnter)
	if tf.field.Text() != "abc" || len(tf.submits) != 0 {
		t.Error("disabled field accepted input")
	}
}

func TestTextField_PointerPlacesCursor(t *testing.T) {
	tf := newTextFieldFixture(TextFieldOptions{Text: "abcdef"})
	tf.field.FocusNode().Unfocus()

	tf.mouse.Down(pt(box.Left+2.2, 20))
	if !tf.field.FocusNode().HasFocus() {
		t.Error("press did not focus the field")
	}
	if got := tf.field.State().Cursor; got != 2 {
		t.Errorf("Cursor = %d, want 2", got)
	}
	tf.mouse.MoveTo(pt(box.Left+4.9, 20))
	tf.mouse.Up()
	if start, end := tf.field.Selection(); start != 2 || end != 5 {
		t.Errorf("drag selection = %d,%d, want 2,5", start, end)
	}
	tf.mouse.MoveTo(pt(box.Left+1, 20))
	if start, end := tf.field.Selection(); start != 2 || end != 5 {
		t.Error("hover after release changed the selection")
	}
}

func TestTextField_SetTextAction(t *testing.T) {
	tf := newTextFieldFixture(TextFieldOptions{Placeholder: "Name"})
	config := semantics.Describe(tf.field)
	if config.Properties.Hint != "Name" || config.Properties.Role != semantics.SemanticsRoleTextField {
		t.Errorf("properties = %+v", config.Properties)
	}
	if !config.Actions.Perform(semantics.SemanticsActionSetText, "Ada") {
		t.Fatal("set-text action missing")
	}
	if tf.field.Text() != "Ada" || len(tf.changes) != 1 {
		t.Errorf("Text() = %q changes = %v", tf.field.Text(), tf.changes)
	}
	tf.field.SetText("Grace")
	if len(tf.changes) != 1 {
		t.Error("SetText called OnChanged")
	}
}

func TestTextField_FocusAction(t *testing.T) {
	tf := newTextFieldFixture(TextFieldOptions{Text: "abc"})
	tf.field.FocusNode().Unfocus()
	if !semantics.Describe(tf.field).Actions.Perform(semantics.SemanticsActionFocus, nil) {
		t.Fatal("focus action missing")
	}
	if !tf.field.FocusNode().HasFocus() {
		t.Error("focus action did not focus the field")
	}
	tf.field.SetDisabled(true)
	if semantics.Describe(tf.field).Actions.Perform(semantics.SemanticsActionFocus, nil) {
		t.Error("disabled field offered a focus action")
	}
}
