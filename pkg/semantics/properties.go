package semantics

import "strings"

// SemanticsRole identifies what kind of control a node is.
type SemanticsRole int

const (
	SemanticsRoleNone SemanticsRole = iota
	SemanticsRoleButton
	SemanticsRoleCheckbox
	SemanticsRoleRadio
	SemanticsRoleRadioGroup
	SemanticsRoleComboBox
	SemanticsRoleListBox
	SemanticsRoleOption
	SemanticsRoleSlider
	SemanticsRoleTabList
	SemanticsRoleTab
	SemanticsRoleTabPanel
	SemanticsRoleTooltip
	SemanticsRoleMenu
	SemanticsRoleMenuItem
	SemanticsRoleDialog
	SemanticsRoleTextField
	SemanticsRoleRegion
)

var roleNames = [...]string{
	SemanticsRoleNone:       "none",
	SemanticsRoleButton:     "button",
	SemanticsRoleCheckbox:   "checkbox",
	SemanticsRoleRadio:      "radio",
	SemanticsRoleRadioGroup: "radiogroup",
	SemanticsRoleComboBox:   "combobox",
	SemanticsRoleListBox:    "listbox",
	SemanticsRoleOption:     "option",
	SemanticsRoleSlider:     "slider",
	SemanticsRoleTabList:    "tablist",
	SemanticsRoleTab:        "tab",
	SemanticsRoleTabPanel:   "tabpanel",
	SemanticsRoleTooltip:    "tooltip",
	SemanticsRoleMenu:       "menu",
	SemanticsRoleMenuItem:   "menuitem",
	SemanticsRoleDialog:     "dialog",
	SemanticsRoleTextField:  "textbox",
	SemanticsRoleRegion:     "region",
}

func (r SemanticsRole) String() string {
	if r >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// SemanticsFlag is a bitset of boolean semantic properties.
type SemanticsFlag uint64

const (
	SemanticsHasCheckedState SemanticsFlag = 1 << iota
	SemanticsIsChecked
	SemanticsIsMixed
	SemanticsHasSelectedState
	SemanticsIsSelected
	SemanticsHasEnabledState
	SemanticsIsEnabled
	SemanticsIsFocusable
	SemanticsIsFocused
	SemanticsIsButton
	SemanticsIsTextField
	SemanticsIsObscured
	SemanticsIsReadOnly
	SemanticsIsHidden
	SemanticsIsInMutuallyExclusiveGroup
	SemanticsHasExpandedState
	SemanticsIsExpanded
	SemanticsHasPopup
	SemanticsIsLiveRegion
	SemanticsHasInvalidState
	SemanticsIsInvalid
)

var flagNames = []string{
	"has-checked", "checked", "mixed", "has-selected", "selected",
	"has-enabled", "enabled", "focusable", "focused", "button",
	"text-field", "obscured", "read-only", "hidden", "exclusive",
	"has-expanded", "expanded", "has-popup", "live", "has-invalid", "invalid",
}

// Has reports whether every flag in f is set.
func (s SemanticsFlag) Has(f SemanticsFlag) bool { return s&f == f }

// Set returns s with f added.
func (s SemanticsFlag) Set(f SemanticsFlag) SemanticsFlag { return s | f }

// Clear returns s with f removed.
func (s SemanticsFlag) Clear(f SemanticsFlag) SemanticsFlag { return s &^ f }

// SetIf adds f when cond holds.
func (s SemanticsFlag) SetIf(f SemanticsFlag, cond bool) SemanticsFlag {
	if cond {
		return s | f
	}
	return s
}

func (s SemanticsFlag) String() string {
	var names []string
	for i, name := range flagNames {
		if s.Has(SemanticsFlag(1) << i) {
			names = append(names, name)
		}
	}
	return strings.Join(names, " ")
}

// SemanticsProperties holds the values announced for a node.
type SemanticsProperties struct {
	Role  SemanticsRole
	Flags SemanticsFlag
	Label string
	// Value is the current value in words, e.g. "Checked" or "40%".
	Value string
	Hint  string
}

// IsEmpty reports whether no property is set.
func (p SemanticsProperties) IsEmpty() bool {
	return p == SemanticsProperties{}
}

// Merge returns p with unset fields taken from other and flags combined.
func (p SemanticsProperties) Merge(other SemanticsProperties) SemanticsProperties {
	if p.Role == SemanticsRoleNone {
		p.Role = other.Role
	}
	p.Flags |= other.Flags
	if p.Label == "" {
		p.Label = other.Label
	}
	if p.Value == "" {
		p.Value = other.Value
	}
	if p.Hint == "" {
		p.Hint = other.Hint
	}
	return p
}
