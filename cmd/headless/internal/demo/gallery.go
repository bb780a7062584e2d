// Package demo is an interactive gallery of the headless components,
// painted with lipgloss inside the terminal host.
package demo

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"github.com/rs/zerolog"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/overlay"
	"github.com/go-drift/headless/pkg/widgets"
)

// Options configures a Gallery.
type Options struct {
	Title string
	// Theme defaults to NewTheme(DefaultAccent).
	Theme       *Theme
	TooltipWait time.Duration
	TooltipShow time.Duration
	// MenuPosition places the Edit menu. Nil keeps the menu default.
	MenuPosition *overlay.PositionConfig
	Logger       zerolog.Logger
}

// Layout rows, in cells.
const (
	rowButtons   = 2
	rowRadios    = 4
	rowPickers   = 6
	rowSlider    = 8
	rowTabs      = 10
	rowAccordion = 13
	rowField     = 19
	rowContext   = 21
)

var (
	sizeLabels    = []string{"Small", "Medium", "Large"}
	tabLabels     = []string{"Overview", "Details", "Archive"}
	tabPanels     = []string{"Components publish state; hosts paint it.", "Focus, hover and press are tracked per control.", ""}
	sectionLabels = []string{"Keyboard", "Pointer", "Overlays"}
	sectionPanels = []string{
		"tab and shift+tab move focus; enter or space activate",
		"click, drag the slider, right-click the box below",
		"select, menus and tooltips anchor to their triggers",
	}
	fruits = []widgets.SelectOption[string]{
		{Value: "apple", Label: "Apple"},
		{Value: "banana", Label: "Banana"},
		{Value: "cherry", Label: "Cherry", Disabled: true},
		{Value: "durian", Label: "Durian"},
		{Value: "elderberry", Label: "Elderberry"},
	}
)

// Gallery mounts one of each component and paints them.
type Gallery struct {
	opts   Options
	theme  Theme
	log    zerolog.Logger
	status string

	save     *widgets.Button
	tooltip  *widgets.Tooltip
	notify   *widgets.Checkbox
	sizes    *widgets.RadioGroup[string]
	radios   []*widgets.Radio[string]
	fruit    *widgets.Select[string]
	edit     *widgets.Menu
	context  *widgets.Menu
	volume   *widgets.Slider
	tabs     *widgets.Tabs
	tabList  []*widgets.Tab
	sections *widgets.Accordion
	items    []*widgets.AccordionItem
	name     *widgets.TextField

	env        *widgets.Env
	aboutClose *widgets.Button
	aboutRect  graphics.Rect
	dismiss    func()
}

// New returns an unmounted gallery.
func New(opts Options) *Gallery {
	if opts.Title == "" {
		opts.Title = "headless"
	}
	theme := NewTheme(DefaultAccent)
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	return &Gallery{opts: opts, theme: theme, log: opts.Logger, status: "ready"}
}

func (g *Gallery) report(event string, fields map[string]any) {
	g.status = event
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for k, v := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
		g.status = event + " " + strings.Join(parts, " ")
	}
	g.log.Info().Fields(fields).Msg(event)
}

func rect(x, y, w int) graphics.Rect {
	return graphics.RectFromLTWH(float64(x), float64(y), float64(w), 1)
}

var (
	saveRect    = rect(2, rowButtons, 8)
	notifyRect  = rect(14, rowButtons, 24)
	fruitRect   = rect(2, rowPickers, 22)
	editRect    = rect(28, rowPickers, 8)
	volumeRect  = rect(10, rowSlider, 30)
	nameRect    = rect(8, rowField, 24)
	contextRect = rect(2, rowContext, 40)
)

func radioRect(i int) graphics.Rect   { return rect(2+i*12, rowRadios, 10) }
func tabRect(i int) graphics.Rect     { return rect(2+i*12, rowTabs, 10) }
func sectionRect(i int) graphics.Rect { return rect(2, rowAccordion+i*2, 30) }

// Mount creates the components under root.
func (g *Gallery) Mount(env *widgets.Env, root *core.Element) error {
	g.env = env
	g.save = widgets.NewButton(env, root, widgets.ButtonOptions{
		Label:     "Save",
		Bounds:    saveRect,
		Autofocus: true,
		OnTap:     func() { g.report("saved", nil) },
	})
	below := overlay.Below(0)
	g.tooltip = widgets.NewTooltip(env, root, widgets.TooltipOptions{
		Message:      "Save the draft",
		Bounds:       saveRect,
		WaitDuration: g.opts.TooltipWait,
		ShowDuration: g.opts.TooltipShow,
		Size:         graphics.Size{Width: float64(ansi.StringWidth("Save the draft") + 2), Height: 1},
		Position:     &below,
		FocusNode:    g.save.FocusNode(),
	})
	g.notify = widgets.NewCheckbox(env, root, widgets.CheckboxOptions{
		Label:     "Email notifications",
		Bounds:    notifyRect,
		Tristate:  true,
		OnChanged: func(v widgets.CheckboxValue) { g.report("notifications", map[string]any{"value": v}) },
	})

	g.sizes = widgets.NewRadioGroup(env, widgets.RadioGroupOptions[string]{
		Label:     "Size",
		Value:     "medium",
		HasValue:  true,
		OnChanged: func(v string) { g.report("size", map[string]any{"value": v}) },
	})
	for i, label := range sizeLabels {
		g.radios = append(g.radios, g.sizes.Add(root, widgets.RadioOptions[string]{
			Value:  strings.ToLower(label),
			Label:  label,
			Bounds: radioRect(i),
		}))
	}

	g.fruit = widgets.NewSelect(env, root, widgets.SelectOptions[string]{
		Label:       "Fruit",
		Placeholder: "pick a fruit",
		Options:     fruits,
		Bounds:      fruitRect,
		MaxHeight:   4,
		OnChanged:   func(v string) { g.report("fruit", map[string]any{"value": v}) },
	})
	g.edit = widgets.NewMenu(env, root, widgets.MenuOptions{
		Label:    "Edit",
		Bounds:   editRect,
		Width:    14,
		Position: g.opts.MenuPosition,
		Items: []widgets.MenuItem{
			{Label: "Undo", OnSelected: func() { g.report("undo", nil) }},
			{Label: "Redo", Disabled: true},
			{Label: "Clear name", OnSelected: func() { g.name.SetText("") }},
			{Label: "Reset volume", OnSelected: func() { g.volume.SetValue(50) }},
			{Label: "About…", MovesFocus: true, OnSelected: g.showAbout},
		},
	})

	g.volume = widgets.NewSlider(env, root, widgets.SliderOptions{
		Label:       "Volume",
		Bounds:      volumeRect,
		Value:       50,
		Min:         0,
		Max:         100,
		Step:        5,
		OnChangeEnd: func(v float64) { g.report("volume", map[string]any{"value": v}) },
	})

	g.tabs = widgets.NewTabs(env, root, widgets.TabsOptions{
		Label:     "Sections",
		OnChanged: func(id string) { g.report("tab", map[string]any{"id": id}) },
	})
	for i, label := range tabLabels {
		g.tabList = append(g.tabList, g.tabs.Add(root, widgets.TabOptions{
			ID:       strings.ToLower(label),
			Label:    label,
			Bounds:   tabRect(i),
			Disabled: i == len(tabLabels)-1,
		}))
	}

	g.sections = widgets.NewAccordion(env, widgets.AccordionOptions{
		Label:     "Help",
		Expanded:  []string{"keyboard"},
		OnChanged: func(id string, expanded bool) { g.log.Debug().Str("id", id).Bool("expanded", expanded).Msg("section") },
	})
	for i, label := range sectionLabels {
		g.items = append(g.items, g.sections.Add(root, widgets.AccordionItemOptions{
			ID:     strings.ToLower(label),
			Label:  label,
			Bounds: sectionRect(i),
		}))
	}

	g.name = widgets.NewTextField(env, root, widgets.TextFieldOptions{
		Label:       "Name",
		Placeholder: "your name",
		Bounds:      nameRect,
		MaxLength:   24,
		OnSubmit:    func(s string) { g.report("hello", map[string]any{"name": s}) },
	})

	g.context = widgets.NewMenu(env, root, widgets.MenuOptions{
		Label:       "Context",
		Bounds:      contextRect,
		ContextMenu: true,
		Width:       12,
		Items: []widgets.MenuItem{
			{Label: "Inspect", OnSelected: func() { g.report("inspect", nil) }},
			{Label: "Copy", OnSelected: func() { g.report("copy", nil) }},
		},
	})
	return nil
}

const aboutText = "components publish state, hosts paint"

var aboutSize = graphics.Size{Width: 44, Height: 4}

func (g *Gallery) showAbout() {
	if g.dismiss != nil {
		return
	}
	g.dismiss = overlay.ShowDialog(g.env.Surface, overlay.DialogOptions{
		Builder:       g.buildAbout,
		Size:          aboutSize,
		ReturnFocus:   g.edit.FocusNode(),
		Scheduler:     g.env.Scheduler,
		SemanticLabel: "Dismiss about",
		OnClose: func() {
			g.dismiss = nil
			g.report("about closed", nil)
		},
	})
	g.report("about", nil)
}

// buildAbout runs on every rebuild of the dialog entry. The close button
// is created once and follows the entry's rect.
func (g *Gallery) buildAbout(ctx *core.Element, dismiss func()) any {
	entry := g.env.Surface.EntryOf(ctx)
	if entry == nil {
		return nil
	}
	g.aboutRect = entry.Rect()
	if g.aboutClose == nil {
		g.aboutClose = widgets.NewButton(g.env, ctx, widgets.ButtonOptions{
			Label:      "Close",
			FocusScope: entry.FocusScope(),
			OnTap:      dismiss,
		})
		entry.Adopt(g.aboutClose.Target())
		ctx.OnDispose(func() { g.aboutClose = nil })
	}
	g.aboutClose.SetBounds(closeRect(g.aboutRect))
	return nil
}

func closeRect(dialog graphics.Rect) graphics.Rect {
	return graphics.RectFromLTWH(dialog.Right-11, dialog.Bottom-1, 9, 1)
}

// Dispose tears the components down.
func (g *Gallery) Dispose() {
	if g.dismiss != nil {
		g.dismiss()
	}
	for _, d := range []interface{ Dispose() }{
		g.save, g.tooltip, g.notify, g.sizes, g.fruit, g.edit,
		g.volume, g.tabs, g.sections, g.name, g.context,
	} {
		d.Dispose()
	}
}

// Status returns the last reported event.
func (g *Gallery) Status() string { return g.status }

// Render paints the gallery at the surface size.
func (g *Gallery) Render(env *widgets.Env) string {
	vp := env.Surface.Viewport()
	c := NewCanvas(int(vp.Width()), int(vp.Height()))
	g.Paint(c)
	return c.String()
}

// Paint draws every component onto c, overlays last.
func (g *Gallery) Paint(c *Canvas) {
	t := g.theme
	_, h := c.Size()
	c.Text(2, 0, g.opts.Title, t.Title, 0)

	g.paintButton(c)
	g.paintCheckbox(c)
	for i, r := range g.radios {
		st := r.State()
		mark := "( )"
		if st.Checked() {
			mark = "(•)"
		}
		paintAt(c, radioRect(i), mark+" "+sizeLabels[i], t.For(st.WidgetStateSet))
	}

	sel := g.fruit.State()
	paintAt(c, fruitRect, "Fruit: "+sel.Label+" ▾", t.For(sel.WidgetStateSet))
	edit := g.edit.State()
	paintAt(c, editRect, "Edit ▾", t.For(edit.WidgetStateSet))

	g.paintSlider(c)
	g.paintTabs(c)
	g.paintAccordion(c)
	g.paintField(c)
	ctxState := g.context.State()
	paintAt(c, contextRect, "right-click or long-press here", t.Muted.Inherit(t.For(ctxState.WidgetStateSet)))

	g.paintOverlays(c)

	c.Text(2, h-2, g.status, t.Muted, 0)
	c.Text(2, h-1, "tab focus · enter/space activate · esc close · ctrl+c quit", t.Muted, 0)
}

func paintAt(c *Canvas, r graphics.Rect, s string, st lipgloss.Style) {
	x, y, x1, _ := cells(r)
	c.Text(x, y, s, st, x1-x)
}

func (g *Gallery) paintButton(c *Canvas) {
	st := g.save.State()
	paintAt(c, saveRect, "[ "+st.Label+" ]", g.theme.For(st.WidgetStateSet))
}

func (g *Gallery) paintCheckbox(c *Canvas) {
	st := g.notify.State()
	mark := "[ ]"
	switch st.Value {
	case widgets.Checked:
		mark = "[x]"
	case widgets.Mixed:
		mark = "[-]"
	}
	paintAt(c, notifyRect, mark+" Email notifications", g.theme.For(st.WidgetStateSet))
}

func (g *Gallery) paintSlider(c *Canvas) {
	t := g.theme
	st := g.volume.State()
	x, y, x1, _ := cells(volumeRect)
	c.Text(2, y, "Volume", t.Normal, 0)
	width := x1 - x
	knob := int(math.Round(st.Fraction() * float64(width-1)))
	var track strings.Builder
	for i := range width {
		switch {
		case i == knob:
			track.WriteString("●")
		case i < knob:
			track.WriteString("━")
		default:
			track.WriteString("─")
		}
	}
	c.Text(x, y, track.String(), t.For(st.WidgetStateSet), width)
	c.Text(x1+1, y, fmt.Sprintf("%3.0f", st.Value), t.Muted, 0)
}

func (g *Gallery) paintTabs(c *Canvas) {
	t := g.theme
	for i, tab := range g.tabList {
		st := tab.State()
		label := " " + st.Label + " "
		if st.IsSelected() {
			label = "▸" + st.Label + " "
		}
		paintAt(c, tabRect(i), label, t.For(st.WidgetStateSet))
	}
	if i := g.tabs.State().SelectedIndex; i >= 0 && i < len(tabPanels) {
		c.Text(4, rowTabs+1, tabPanels[i], t.Muted, 0)
	}
}

func (g *Gallery) paintAccordion(c *Canvas) {
	t := g.theme
	for i, it := range g.items {
		st := it.State()
		arrow := "▸ "
		if st.Expanded {
			arrow = "▾ "
		}
		b := sectionRect(i)
		paintAt(c, b, arrow+st.Label, t.For(st.WidgetStateSet))
		if st.Expanded {
			x, y, _, _ := cells(b)
			c.Text(x+2, y+1, sectionPanels[i], t.Muted, 0)
		}
	}
}

func (g *Gallery) paintField(c *Canvas) {
	t := g.theme
	st := g.name.State()
	x, y, x1, _ := cells(nameRect)
	c.Text(2, y, "Name", t.Normal, 0)
	c.Fill(graphics.RectFromLTWH(float64(x), float64(y), float64(x1-x), 1), "_", t.Muted)
	if st.Text == "" && !st.IsFocused() {
		c.Text(x, y, "your name", t.Muted, x1-x)
		return
	}

	clusters := splitClusters(st.DisplayText)
	base := t.For(st.WidgetStateSet)
	col := x
	for i, cl := range clusters {
		style := base
		if st.HasSelection() && i >= st.SelectionStart && i < st.SelectionEnd {
			style = t.Pressed
		}
		col += c.Text(col, y, cl, style, x1-col)
	}
	if st.IsFocused() && x+st.Column < x1 {
		under := " "
		if st.Cursor < len(clusters) {
			under = clusters[st.Cursor]
		}
		c.Text(x+st.Column, y, under, t.Pressed, 0)
	}
}

func splitClusters(s string) []string {
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

func (g *Gallery) paintOverlays(c *Canvas) {
	t := g.theme
	if g.fruit.IsOpen() {
		r := g.fruit.Anchored().Rect()
		c.Fill(r, " ", t.Overlay)
		x, y, x1, y1 := cells(r)
		for i, opt := range g.fruit.OptionStates() {
			if y+i >= y1 {
				break
			}
			mark := "  "
			if opt.IsSelected() {
				mark = "✓ "
			}
			c.Text(x, y+i, mark+opt.Label, t.Row(opt.WidgetStateSet, opt.Highlighted), x1-x)
		}
	}
	for _, m := range []*widgets.Menu{g.edit, g.context} {
		if !m.IsOpen() {
			continue
		}
		r := m.Anchored().Rect()
		c.Fill(r, " ", t.Overlay)
		x, y, x1, _ := cells(r)
		for i, item := range m.ItemStates() {
			c.Text(x, y+i, " "+item.Label, t.Row(item.WidgetStateSet, item.Highlighted), x1-x)
		}
	}
	if g.aboutClose != nil {
		r := g.aboutRect
		c.Fill(r, " ", t.Overlay)
		x, y, x1, _ := cells(r)
		c.Text(x+1, y, "About "+g.opts.Title, t.Title, x1-x-1)
		c.Text(x+1, y+1, aboutText, t.Overlay, x1-x-1)
		st := g.aboutClose.State()
		paintAt(c, closeRect(r), "[ Close ]", t.For(st.WidgetStateSet))
	}
	if g.tooltip.IsVisible() {
		r := g.tooltip.Anchored().Rect()
		x, y, x1, _ := cells(r)
		c.Text(x, y, " "+g.tooltip.State().Message+" ", t.Tooltip, x1-x)
	}
}
