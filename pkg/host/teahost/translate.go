package teahost

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
)

// MousePointerID is the pointer id terminal mouse events are reported
// under. Terminals expose a single mouse.
const MousePointerID int64 = 1

// TranslateMouse converts a terminal mouse message into a pointer event.
// One cell maps to one logical pixel. Wheel and extra buttons report false.
func TranslateMouse(msg tea.MouseMsg) (input.PointerEvent, bool) {
	e := input.PointerEvent{
		PointerID: MousePointerID,
		Kind:      input.PointerMouse,
		Position:  graphics.Offset{X: float64(msg.X), Y: float64(msg.Y)},
		Modifiers: mouseModifiers(msg),
	}
	button, ok := translateButton(msg.Button)
	if !ok {
		return input.PointerEvent{}, false
	}
	e.Button = button

	switch msg.Action {
	case tea.MouseActionPress:
		if button == input.ButtonNone {
			return input.PointerEvent{}, false
		}
		e.Phase = input.PointerDown
	case tea.MouseActionRelease:
		e.Phase = input.PointerUp
	case tea.MouseActionMotion:
		if button == input.ButtonNone {
			e.Phase = input.PointerHover
		} else {
			e.Phase = input.PointerMove
		}
	default:
		return input.PointerEvent{}, false
	}
	return e, true
}

func translateButton(b tea.MouseButton) (input.PointerButton, bool) {
	switch b {
	case tea.MouseButtonNone:
		return input.ButtonNone, true
	case tea.MouseButtonLeft:
		return input.ButtonPrimary, true
	case tea.MouseButtonRight:
		return input.ButtonSecondary, true
	case tea.MouseButtonMiddle:
		return input.ButtonMiddle, true
	}
	return input.ButtonNone, false
}

func mouseModifiers(msg tea.MouseMsg) input.Modifiers {
	var mods input.Modifiers
	if msg.Shift {
		mods |= input.ModShift
	}
	if msg.Alt {
		mods |= input.ModAlt
	}
	if msg.Ctrl {
		mods |= input.ModCtrl
	}
	return mods
}

type namedKey struct {
	key  input.Key
	mods input.Modifiers
}

var namedKeys = map[tea.KeyType]namedKey{
	tea.KeyEnter:          {input.KeyEnter, 0},
	tea.KeySpace:          {input.KeySpace, 0},
	tea.KeyEsc:            {input.KeyEscape, 0},
	tea.KeyTab:            {input.KeyTab, 0},
	tea.KeyShiftTab:       {input.KeyTab, input.ModShift},
	tea.KeyBackspace:      {input.KeyBackspace, 0},
	tea.KeyCtrlH:          {input.KeyBackspace, 0},
	tea.KeyDelete:         {input.KeyDelete, 0},
	tea.KeyUp:             {input.KeyUp, 0},
	tea.KeyDown:           {input.KeyDown, 0},
	tea.KeyLeft:           {input.KeyLeft, 0},
	tea.KeyRight:          {input.KeyRight, 0},
	tea.KeyHome:           {input.KeyHome, 0},
	tea.KeyEnd:            {input.KeyEnd, 0},
	tea.KeyPgUp:           {input.KeyPageUp, 0},
	tea.KeyPgDown:         {input.KeyPageDown, 0},
	tea.KeyShiftUp:        {input.KeyUp, input.ModShift},
	tea.KeyShiftDown:      {input.KeyDown, input.ModShift},
	tea.KeyShiftLeft:      {input.KeyLeft, input.ModShift},
	tea.KeyShiftRight:     {input.KeyRight, input.ModShift},
	tea.KeyShiftHome:      {input.KeyHome, input.ModShift},
	tea.KeyShiftEnd:       {input.KeyEnd, input.ModShift},
	tea.KeyCtrlUp:         {input.KeyUp, input.ModCtrl},
	tea.KeyCtrlDown:       {input.KeyDown, input.ModCtrl},
	tea.KeyCtrlLeft:       {input.KeyLeft, input.ModCtrl},
	tea.KeyCtrlRight:      {input.KeyRight, input.ModCtrl},
	tea.KeyCtrlHome:       {input.KeyHome, input.ModCtrl},
	tea.KeyCtrlEnd:        {input.KeyEnd, input.ModCtrl},
	tea.KeyCtrlPgUp:       {input.KeyPageUp, input.ModCtrl},
	tea.KeyCtrlPgDown:     {input.KeyPageDown, input.ModCtrl},
	tea.KeyCtrlShiftUp:    {input.KeyUp, input.ModCtrl | input.ModShift},
	tea.KeyCtrlShiftDown:  {input.KeyDown, input.ModCtrl | input.ModShift},
	tea.KeyCtrlShiftLeft:  {input.KeyLeft, input.ModCtrl | input.ModShift},
	tea.KeyCtrlShiftRight: {input.KeyRight, input.ModCtrl | input.ModShift},
	tea.KeyCtrlShiftHome:  {input.KeyHome, input.ModCtrl | input.ModShift},
	tea.KeyCtrlShiftEnd:   {input.KeyEnd, input.ModCtrl | input.ModShift},
}

// TranslateKey converts a terminal key message into a key event. Control
// letters become runes with ModCtrl so bindings such as ctrl+a match the
// same way they do on other hosts. ok is false for keys with no
// counterpart.
func TranslateKey(msg tea.KeyMsg) (input.KeyEvent, bool) {
	var alt input.Modifiers
	if msg.Alt {
		alt = input.ModAlt
	}
	if named, found := namedKeys[msg.Type]; found {
		return input.KeyEvent{Key: named.key, Modifiers: named.mods | alt}, true
	}
	switch {
	case msg.Type == tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return input.KeyEvent{}, false
		}
		return input.KeyEvent{Key: input.KeyRunes, Runes: msg.Runes, Modifiers: alt}, true
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
		r := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return input.KeyEvent{Key: input.KeyRunes, Runes: []rune{r}, Modifiers: input.ModCtrl | alt}, true
	}
	return input.KeyEvent{}, false
}
