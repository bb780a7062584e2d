package demo

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/go-drift/headless/pkg/graphics"
)

type cell struct {
	text  string
	style int
	// wide marks the second column of a double-width cluster.
	wide bool
}

// Canvas is a grid of terminal cells painted back to front.
type Canvas struct {
	width, height int
	cells         [][]cell
	styles        []lipgloss.Style
}

// NewCanvas returns a blank canvas. Style 0 is the unstyled default.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: max(width, 0), height: max(height, 0), styles: []lipgloss.Style{lipgloss.NewStyle()}}
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		row := make([]cell, c.width)
		for x := range row {
			row[x] = cell{text: " "}
		}
		c.cells[y] = row
	}
	return c
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

func (c *Canvas) styleIndex(st lipgloss.Style) int {
	c.styles = append(c.styles, st)
	return len(c.styles) - 1
}

// Text paints s starting at column x of row y, clipped to limit columns
// when limit > 0, and returns the number of columns painted.
func (c *Canvas) Text(x, y int, s string, st lipgloss.Style, limit int) int {
	if y < 0 || y >= c.height {
		return 0
	}
	if limit > 0 && ansi.StringWidth(s) > limit {
		s = ansi.Truncate(s, limit, "…")
	}
	idx := c.styleIndex(st)
	col := x
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		w := max(ansi.StringWidth(cluster), 1)
		if col+w > c.width {
			break
		}
		if col >= 0 {
			c.cells[y][col] = cell{text: cluster, style: idx}
			for i := 1; i < w; i++ {
				c.cells[y][col+i] = cell{style: idx, wide: true}
			}
		}
		col += w
	}
	return col - x
}

// Fill paints r with ch.
func (c *Canvas) Fill(r graphics.Rect, ch string, st lipgloss.Style) {
	x0, y0, x1, y1 := cells(r)
	idx := c.styleIndex(st)
	for y := max(y0, 0); y < min(y1, c.height); y++ {
		for x := max(x0, 0); x < min(x1, c.width); x++ {
			c.cells[y][x] = cell{text: ch, style: idx}
		}
	}
}

// cells converts a rect in logical pixels to cell bounds, one pixel per
// cell.
func cells(r graphics.Rect) (x0, y0, x1, y1 int) {
	return int(math.Round(r.Left)), int(math.Round(r.Top)), int(math.Round(r.Right)), int(math.Round(r.Bottom))
}

// String renders the canvas, one styled run per stretch of equal style.
func (c *Canvas) String() string {
	var sb strings.Builder
	var run strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		style := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style == 0 {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(c.styles[style].Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.wide {
				continue
			}
			if cl.style != style {
				flush()
				style = cl.style
			}
			run.WriteString(cl.text)
		}
		flush()
	}
	return sb.String()
}
