package input

import "strings"

// Modifiers is a bitset of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all of m2 are held.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// Key identifies a logical key.
type Key int

const (
	// KeyRunes carries printable text in KeyEvent.Runes.
	KeyRunes Key = iota
	KeyEnter
	KeySpace
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

var keyNames = map[Key]string{
	KeyEnter:     "enter",
	KeySpace:     " ",
	KeyEscape:    "esc",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
}

// KeyEvent is a key-down event.
type KeyEvent struct {
	Key       Key
	Runes     []rune
	Modifiers Modifiers
}

// Runes returns a KeyEvent for typed text.
func Runes(s string) KeyEvent {
	return KeyEvent{Key: KeyRunes, Runes: []rune(s)}
}

// Press returns a KeyEvent for a named key with optional modifiers.
func Press(k Key, mods ...Modifiers) KeyEvent {
	var m Modifiers
	for _, mod := range mods {
		m |= mod
	}
	return KeyEvent{Key: k, Modifiers: m}
}

// IsText reports whether the event inserts printable text.
func (e KeyEvent) IsText() bool {
	return e.Key == KeyRunes && len(e.Runes) > 0 && e.Modifiers&(ModCtrl|ModAlt|ModMeta) == 0
}

// String returns the key in the naming used by bubbletea key messages,
// e.g. "enter", "shift+tab", "ctrl+c", "alt+x". Bindings match against it.
func (e KeyEvent) String() string {
	var sb strings.Builder
	if e.Modifiers.Has(ModAlt) {
		sb.WriteString("alt+")
	}
	if e.Modifiers.Has(ModCtrl) {
		sb.WriteString("ctrl+")
	}
	if e.Modifiers.Has(ModShift) && e.Key != KeyRunes {
		sb.WriteString("shift+")
	}
	if e.Key == KeyRunes {
		sb.WriteString(string(e.Runes))
	} else {
		sb.WriteString(keyNames[e.Key])
	}
	return sb.String()
}
