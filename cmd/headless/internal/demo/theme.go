package demo

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/headless/pkg/states"
)

// DefaultAccent is the accent color used when none is configured.
const DefaultAccent = "#7D56F4"

// Theme holds the styles the gallery paints with.
type Theme struct {
	Title    lipgloss.Style
	Normal   lipgloss.Style
	Hovered  lipgloss.Style
	Focused  lipgloss.Style
	Pressed  lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
	Overlay  lipgloss.Style
	Tooltip  lipgloss.Style
	Muted    lipgloss.Style
}

// NewTheme derives a theme from an accent color such as "#7D56F4".
func NewTheme(accent string) Theme {
	a := lipgloss.Color(accent)
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(a),
		Normal:   lipgloss.NewStyle(),
		Hovered:  lipgloss.NewStyle().Underline(true),
		Focused:  lipgloss.NewStyle().Bold(true).Foreground(a),
		Pressed:  lipgloss.NewStyle().Reverse(true),
		Selected: lipgloss.NewStyle().Foreground(a),
		Disabled: lipgloss.NewStyle().Faint(true),
		Overlay:  lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Tooltip:  lipgloss.NewStyle().Background(a).Foreground(lipgloss.Color("231")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// For resolves the style of a control. Disabled wins, then pressed,
// focused, hovered and selected.
func (t Theme) For(s states.WidgetStateSet) lipgloss.Style {
	switch {
	case s.IsDisabled():
		return t.Disabled
	case s.IsPressed():
		return t.Pressed
	case s.IsFocused():
		return t.Focused
	case s.IsHovered():
		return t.Hovered
	case s.IsSelected():
		return t.Selected
	}
	return t.Normal
}

// Row styles an overlay row, layering the row's own state over the
// overlay background.
func (t Theme) Row(s states.WidgetStateSet, highlighted bool) lipgloss.Style {
	st := t.For(s)
	if highlighted && !s.IsDisabled() {
		st = t.Pressed
	}
	return st.Inherit(t.Overlay)
}
