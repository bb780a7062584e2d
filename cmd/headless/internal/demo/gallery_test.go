package demo

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/overlay"
	drifttest "github.com/go-drift/headless/pkg/testing"
	"github.com/go-drift/headless/pkg/widgets"
)

type galleryFixture struct {
	g     *Gallery
	env   *widgets.Env
	sched *drifttest.FakeScheduler
	mouse *drifttest.PointerDriver
	keys  *drifttest.KeyDriver
}

func newGalleryFixture(t *testing.T) *galleryFixture {
	t.Helper()
	sched := drifttest.NewFakeScheduler()
	surface := overlay.NewSurface(overlay.SurfaceOptions{
		Router:   gestures.NewRouter(),
		Viewport: graphics.RectFromLTWH(0, 0, 80, 26),
	})
	env := widgets.NewEnv(surface, sched)
	g := New(Options{Title: "gallery", Logger: zerolog.Nop()})
	require.NoError(t, g.Mount(env, env.Owner.Mount(nil, "root", nil)))
	t.Cleanup(g.Dispose)
	return &galleryFixture{g: g, env: env, sched: sched, mouse: drifttest.Mouse(env), keys: drifttest.NewKeyDriver(env)}
}

func (f *galleryFixture) lines() []string {
	return strings.Split(f.g.Render(f.env), "\n")
}

func TestGalleryRendersEveryControl(t *testing.T) {
	f := newGalleryFixture(t)
	lines := f.lines()
	require.Len(t, lines, 26)

	assert.Contains(t, lines[0], "gallery")
	assert.Contains(t, lines[rowButtons], "[ Save ]")
	assert.Contains(t, lines[rowButtons], "[ ] Email notifications")
	assert.Contains(t, lines[rowRadios], "(•) Medium")
	assert.Contains(t, lines[rowPickers], "Fruit: pick a fruit")
	assert.Contains(t, lines[rowPickers], "Edit ▾")
	assert.Contains(t, lines[rowSlider], "●")
	assert.Contains(t, lines[rowSlider], " 50")
	assert.Contains(t, lines[rowTabs], "▸Overview")
	assert.Contains(t, lines[rowAccordion], "▾ Keyboard")
	assert.Contains(t, lines[rowAccordion+1], "tab and shift+tab")
	assert.Contains(t, lines[rowField], "your name")
	assert.Contains(t, lines[25], "ctrl+c quit")
}

func TestGalleryClickUpdatesStatus(t *testing.T) {
	f := newGalleryFixture(t)
	f.mouse.Tap(notifyRect.Center())
	assert.Equal(t, "notifications value=checked", f.g.Status())
	assert.Contains(t, f.lines()[rowButtons], "[x] Email notifications")

	f.mouse.Tap(radioRect(2).Center())
	assert.Contains(t, f.lines()[rowRadios], "(•) Large")
	assert.Equal(t, "size value=large", f.g.Status())
}

func TestGallerySelectPaintsListbox(t *testing.T) {
	f := newGalleryFixture(t)
	f.mouse.Tap(fruitRect.Center())
	require.True(t, f.g.fruit.IsOpen())

	lines := f.lines()
	assert.Contains(t, lines[rowPickers+1], "Apple")
	assert.Contains(t, lines[rowPickers+4], "Durian")
	assert.NotContains(t, lines[rowPickers+5], "Elderberry", "MaxHeight caps the list")

	f.mouse.Tap(graphics.Offset{X: 4, Y: rowPickers + 2})
	assert.Equal(t, "fruit value=banana", f.g.Status())
	assert.Contains(t, f.lines()[rowPickers], "Fruit: Banana")
}

func TestGalleryMenuAction(t *testing.T) {
	f := newGalleryFixture(t)
	f.g.name.SetText("Ada")
	f.g.edit.FocusNode().RequestFocus()
	f.keys.Press(input.KeyEnter)
	require.True(t, f.g.edit.IsOpen())
	assert.Contains(t, f.lines()[rowPickers+1], "Undo")

	f.keys.Press(input.KeyDown)
	f.keys.Press(input.KeyEnter)
	assert.False(t, f.g.edit.IsOpen())
	assert.Empty(t, f.g.name.Text(), "down skips the disabled Redo and lands on Clear name")
}

func TestGalleryAboutDialog(t *testing.T) {
	f := newGalleryFixture(t)
	f.g.edit.FocusNode().RequestFocus()
	f.keys.Press(input.KeyEnter)
	f.keys.Press(input.KeyEnd)
	f.keys.Press(input.KeyEnter)

	require.False(t, f.g.edit.IsOpen())
	require.NotNil(t, f.g.aboutClose)
	assert.True(t, f.g.aboutClose.FocusNode().HasFocus(), "the dialog takes focus")
	assert.Equal(t, "about", f.g.Status())
	lines := f.lines()
	assert.Contains(t, lines[11], "About gallery")
	assert.Contains(t, lines[14], "[ Close ]")

	f.keys.Press(input.KeyTab)
	assert.True(t, f.g.aboutClose.FocusNode().HasFocus(), "tab stays inside the dialog")

	f.keys.Press(input.KeyEnter)
	assert.Nil(t, f.g.aboutClose)
	assert.Equal(t, "about closed", f.g.Status())
	assert.True(t, f.g.edit.FocusNode().HasFocus(), "focus returns to the menu trigger")
	assert.NotContains(t, strings.Join(f.lines(), "\n"), "About gallery")
}

func TestGalleryTooltipAndField(t *testing.T) {
	f := newGalleryFixture(t)
	require.True(t, f.g.save.FocusNode().HasFocus())
	f.sched.Advance(widgets.DefaultTooltipWait)
	assert.Contains(t, f.lines()[rowButtons+1], "Save the draft")

	f.g.name.FocusNode().RequestFocus()
	f.keys.Type("Zoë")
	f.keys.Press(input.KeyEnter)
	assert.Equal(t, "hello name=Zoë", f.g.Status())
	assert.Contains(t, f.lines()[rowField], "Zoë")
}

func TestCanvasWideClusters(t *testing.T) {
	c := NewCanvas(6, 1)
	n := c.Text(0, 0, "漢字abc", NewTheme(DefaultAccent).Normal, 0)
	assert.Equal(t, 6, n)
	assert.Equal(t, "漢字ab", c.String())

	c = NewCanvas(8, 1)
	c.Text(1, 0, "abcdefgh", NewTheme(DefaultAccent).Normal, 4)
	assert.Equal(t, " abc…   ", c.String())
}
