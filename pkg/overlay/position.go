package overlay

import (
	"fmt"
	"math"

	"github.com/go-drift/headless/pkg/graphics"
)

// AlignmentPair places an overlay against an anchor: the Anchor point of
// the anchor rect meets the Follower point of the overlay, then the
// overlay is shifted by Offset.
type AlignmentPair struct {
	Anchor   graphics.Alignment
	Follower graphics.Alignment
	Offset   graphics.Offset
}

func (p AlignmentPair) String() string {
	return fmt.Sprintf("%s->%s%+g%+g", p.Anchor, p.Follower, p.Offset.X, p.Offset.Y)
}

// PositionConfig describes how an overlay is positioned relative to its
// anchor. Zero-valued size caps are unset.
type PositionConfig struct {
	Primary AlignmentPair
	// Fallbacks are tried in order when Primary does not fit.
	Fallbacks []AlignmentPair
	// Pointer, when set, replaces the anchor rect with this point.
	Pointer *graphics.Offset

	MatchAnchorWidth bool
	MinWidth         float64
	MaxWidth         float64
	MaxHeight        float64
}

// Placement is the result of ComputePlacement.
type Placement struct {
	Rect graphics.Rect
	// Pair is the alignment pair that produced Rect.
	Pair AlignmentPair
	// FallbackIndex is the index of the winning fallback, or -1 when the
	// primary pair was used.
	FallbackIndex int
	// Clamped reports whether Rect was moved or trimmed to stay inside the
	// viewport.
	Clamped bool
}

// ComputePosition returns where an overlay of the given natural size goes.
// It is a pure function of its arguments.
func ComputePosition(anchor graphics.Rect, size graphics.Size, cfg PositionConfig, viewport graphics.Rect) graphics.Rect {
	return ComputePlacement(anchor, size, cfg, viewport).Rect
}

// ComputePlacement is ComputePosition that also reports which pair won.
//
// The primary pair is used when its rect lies inside the viewport.
// Otherwise each fallback is fit-tested unclamped, in order, and the
// first that fits wins. When none fit, the primary rect is clamped.
// Size constraints are applied last: anchor width matching, then the
// min and max caps. If they change the size, the rect is re-placed with
// the winning pair and clamped again.
func ComputePlacement(anchor graphics.Rect, size graphics.Size, cfg PositionConfig, viewport graphics.Rect) Placement {
	if cfg.Pointer != nil {
		anchor = graphics.RectFromPoint(*cfg.Pointer)
	}

	result := Placement{Pair: cfg.Primary, FallbackIndex: -1}
	rect := place(anchor, size, cfg.Primary)
	if !viewport.ContainsRect(rect) {
		found := false
		for i, pair := range cfg.Fallbacks {
			if r := place(anchor, size, pair); viewport.ContainsRect(r) {
				rect, result.Pair, result.FallbackIndex = r, pair, i
				found = true
				break
			}
		}
		if !found {
			rect = clamp(rect, viewport)
			result.Clamped = true
		}
	}

	constrained := constrain(size, anchor, cfg)
	if constrained != size {
		rect = place(anchor, constrained, result.Pair)
		c := clamp(rect, viewport)
		result.Clamped = !c.Equal(rect)
		rect = c
	}
	result.Rect = rect
	return result
}

func place(anchor graphics.Rect, size graphics.Size, pair AlignmentPair) graphics.Rect {
	target := pair.Anchor.WithinRect(anchor)
	origin := target.Sub(pair.Follower.AlongSize(size)).Add(pair.Offset)
	return graphics.RectFromOffsetSize(origin, size)
}

func constrain(size graphics.Size, anchor graphics.Rect, cfg PositionConfig) graphics.Size {
	if cfg.MatchAnchorWidth && cfg.Pointer == nil {
		size.Width = anchor.Width()
	}
	if cfg.MinWidth > 0 {
		size.Width = math.Max(size.Width, cfg.MinWidth)
	}
	if cfg.MaxWidth > 0 {
		size.Width = math.Min(size.Width, cfg.MaxWidth)
	}
	if cfg.MaxHeight > 0 {
		size.Height = math.Min(size.Height, cfg.MaxHeight)
	}
	return size
}

// clamp shifts r into viewport. A rect larger than the viewport on an
// axis is pinned to the viewport's leading edge and trimmed.
func clamp(r graphics.Rect, viewport graphics.Rect) graphics.Rect {
	left, right := clampAxis(r.Left, r.Right, viewport.Left, viewport.Right)
	top, bottom := clampAxis(r.Top, r.Bottom, viewport.Top, viewport.Bottom)
	return graphics.Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

func clampAxis(lo, hi, start, end float64) (float64, float64) {
	if hi-lo >= end-start {
		return start, end
	}
	if hi > end {
		lo, hi = lo-(hi-end), end
	}
	if lo < start {
		lo, hi = start, hi+(start-lo)
	}
	return lo, hi
}

// Below places the overlay under the anchor, left edges aligned, gap
// pixels apart, flipping above when there is no room.
func Below(gap float64) PositionConfig {
	return PositionConfig{
		Primary: AlignmentPair{Anchor: graphics.AlignmentBottomLeft, Follower: graphics.AlignmentTopLeft, Offset: graphics.Offset{Y: gap}},
		Fallbacks: []AlignmentPair{
			{Anchor: graphics.AlignmentTopLeft, Follower: graphics.AlignmentBottomLeft, Offset: graphics.Offset{Y: -gap}},
		},
	}
}

// Above is Below flipped.
func Above(gap float64) PositionConfig {
	below := Below(gap)
	return PositionConfig{Primary: below.Fallbacks[0], Fallbacks: []AlignmentPair{below.Primary}}
}

// RightOf places the overlay beside the anchor, top edges aligned,
// flipping to the left side when there is no room.
func RightOf(gap float64) PositionConfig {
	return PositionConfig{
		Primary: AlignmentPair{Anchor: graphics.AlignmentTopRight, Follower: graphics.AlignmentTopLeft, Offset: graphics.Offset{X: gap}},
		Fallbacks: []AlignmentPair{
			{Anchor: graphics.AlignmentTopLeft, Follower: graphics.AlignmentTopRight, Offset: graphics.Offset{X: -gap}},
		},
	}
}

// LeftOf is RightOf flipped.
func LeftOf(gap float64) PositionConfig {
	right := RightOf(gap)
	return PositionConfig{Primary: right.Fallbacks[0], Fallbacks: []AlignmentPair{right.Primary}}
}

// Centered places the overlay in the middle of the anchor. Dialogs use
// it with the viewport as the anchor.
func Centered() PositionConfig {
	return PositionConfig{Primary: AlignmentPair{Anchor: graphics.AlignmentCenter, Follower: graphics.AlignmentCenter}}
}

// ContextMenu opens at the pointer, growing down and to the right, and
// flips around the pointer when it would leave the viewport.
func ContextMenu(pointer graphics.Offset) PositionConfig {
	p := pointer
	return PositionConfig{
		Pointer: &p,
		Primary: AlignmentPair{Anchor: graphics.AlignmentTopLeft, Follower: graphics.AlignmentTopLeft},
		Fallbacks: []AlignmentPair{
			{Anchor: graphics.AlignmentTopLeft, Follower: graphics.AlignmentTopRight},
			{Anchor: graphics.AlignmentTopLeft, Follower: graphics.AlignmentBottomLeft},
			{Anchor: graphics.AlignmentTopLeft, Follower: graphics.AlignmentBottomRight},
		},
	}
}

// Preset returns a named configuration: "below", "above", "right-of",
// "left-of" or "centered".
func Preset(name string, gap float64) (PositionConfig, error) {
	switch name {
	case "below":
		return Below(gap), nil
	case "above":
		return Above(gap), nil
	case "right-of":
		return RightOf(gap), nil
	case "left-of":
		return LeftOf(gap), nil
	case "centered":
		return Centered(), nil
	}
	return PositionConfig{}, fmt.Errorf("unknown placement preset %q", name)
}

// PresetNames lists the names Preset accepts.
func PresetNames() []string {
	return []string{"below", "above", "right-of", "left-of", "centered"}
}
