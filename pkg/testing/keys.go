package testing

import "github.com/go-drift/headless/pkg/input"

// KeySink receives key events; focus.Manager implements it.
type KeySink interface {
	HandleKey(event input.KeyEvent) bool
}

// KeyDriver sends key events and records whether each was handled.
type KeyDriver struct {
	sink    KeySink
	Handled []bool
}

// NewKeyDriver returns a driver delivering to sink.
func NewKeyDriver(sink KeySink) *KeyDriver {
	return &KeyDriver{sink: sink}
}

// Send delivers e and reports whether a handler consumed it.
func (d *KeyDriver) Send(e input.KeyEvent) bool {
	handled := d.sink.HandleKey(e)
	d.Handled = append(d.Handled, handled)
	return handled
}

// Press sends a named key with optional modifiers.
func (d *KeyDriver) Press(k input.Key, mods ...input.Modifiers) bool {
	return d.Send(input.Press(k, mods...))
}

// Type sends one rune event per rune of s.
func (d *KeyDriver) Type(s string) {
	for _, r := range s {
		d.Send(input.KeyEvent{Key: input.KeyRunes, Runes: []rune{r}})
	}
}
