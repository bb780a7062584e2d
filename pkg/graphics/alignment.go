package graphics

import (
	"fmt"
	"strings"
)

// Alignment is a point within a rectangle expressed in a normalized
// coordinate system where (-1, -1) is the top-left corner, (0, 0) the
// center and (1, 1) the bottom-right corner.
type Alignment struct {
	X float64
	Y float64
}

var (
	AlignmentTopLeft      = Alignment{X: -1, Y: -1}
	AlignmentTopCenter    = Alignment{X: 0, Y: -1}
	AlignmentTopRight     = Alignment{X: 1, Y: -1}
	AlignmentCenterLeft   = Alignment{X: -1, Y: 0}
	AlignmentCenter       = Alignment{X: 0, Y: 0}
	AlignmentCenterRight  = Alignment{X: 1, Y: 0}
	AlignmentBottomLeft   = Alignment{X: -1, Y: 1}
	AlignmentBottomCenter = Alignment{X: 0, Y: 1}
	AlignmentBottomRight  = Alignment{X: 1, Y: 1}
)

var alignmentNames = map[string]Alignment{
	"top-left":      AlignmentTopLeft,
	"top-center":    AlignmentTopCenter,
	"top-right":     AlignmentTopRight,
	"center-left":   AlignmentCenterLeft,
	"center":        AlignmentCenter,
	"center-right":  AlignmentCenterRight,
	"bottom-left":   AlignmentBottomLeft,
	"bottom-center": AlignmentBottomCenter,
	"bottom-right":  AlignmentBottomRight,
}

// ParseAlignment resolves a kebab-case alignment name such as
// "bottom-center".
func ParseAlignment(name string) (Alignment, error) {
	a, ok := alignmentNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Alignment{}, fmt.Errorf("unknown alignment %q", name)
	}
	return a, nil
}

// AlignmentNames returns the names accepted by ParseAlignment.
func AlignmentNames() []string {
	names := make([]string, 0, len(alignmentNames))
	for name := range alignmentNames {
		names = append(names, name)
	}
	return names
}

// AlongSize returns the offset of the alignment point within a box of the
// given size whose top-left corner is the origin.
func (a Alignment) AlongSize(s Size) Offset {
	return Offset{
		X: (a.X + 1) / 2 * s.Width,
		Y: (a.Y + 1) / 2 * s.Height,
	}
}

// WithinRect returns the alignment point inside r.
func (a Alignment) WithinRect(r Rect) Offset {
	p := a.AlongSize(r.Size())
	return Offset{X: r.Left + p.X, Y: r.Top + p.Y}
}

func (a Alignment) String() string {
	for name, v := range alignmentNames {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("Alignment(%g, %g)", a.X, a.Y)
}
