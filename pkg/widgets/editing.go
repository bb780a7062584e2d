package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// editValue is a text value with a cursor and a selection, all counted in
// grapheme clusters so that combined emoji and accented letters move and
// delete as one unit.
type editValue struct {
	clusters []string
	// base is the fixed end of the selection, extent the moving end and
	// the cursor. They are equal when nothing is selected.
	base, extent int
}

func splitGraphemes(s string) []string {
	var out []string
	state := -1
	for s != "" {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

func newEditValue(s string) editValue {
	v := editValue{clusters: splitGraphemes(s)}
	v.base, v.extent = len(v.clusters), len(v.clusters)
	return v
}

func (v editValue) String() string { return strings.Join(v.clusters, "") }

func (v editValue) Len() int { return len(v.clusters) }

func (v editValue) cursor() int { return v.extent }

// selection returns the ordered selection bounds.
func (v editValue) selection() (start, end int) {
	if v.base <= v.extent {
		return v.base, v.extent
	}
	return v.extent, v.base
}

func (v editValue) hasSelection() bool { return v.base != v.extent }

func (v editValue) clamp(i int) int {
	return max(0, min(i, len(v.clusters)))
}

// moveTo places the cursor at i. With extend the selection base stays
// put.
func (v *editValue) moveTo(i int, extend bool) {
	v.extent = v.clamp(i)
	if !extend {
		v.base = v.extent
	}
}

// move steps the cursor by delta clusters. Without extend, a selection
// collapses to its edge in the direction of travel.
func (v *editValue) move(delta int, extend bool) {
	if !extend && v.hasSelection() {
		start, end := v.selection()
		if delta < 0 {
			v.moveTo(start, false)
		} else {
			v.moveTo(end, false)
		}
		return
	}
	v.moveTo(v.extent+delta, extend)
}

// wordBoundary returns the next word edge from i in direction dir.
func (v editValue) wordBoundary(i, dir int) int {
	isSpace := func(c string) bool { return strings.TrimSpace(c) == "" }
	if dir < 0 {
		for i > 0 && isSpace(v.clusters[i-1]) {
			i--
		}
		for i > 0 && !isSpace(v.clusters[i-1]) {
			i--
		}
		return i
	}
	n := len(v.clusters)
	for i < n && isSpace(v.clusters[i]) {
		i++
	}
	for i < n && !isSpace(v.clusters[i]) {
		i++
	}
	return i
}

func (v *editValue) selectRange(start, end int) {
	v.base, v.extent = v.clamp(start), v.clamp(end)
}

// replace swaps the selection for s and leaves the cursor after it.
// The result is segmented again, so a combining mark typed after a letter
// joins its cluster. limit caps the total cluster count; zero means no
// limit. It reports whether the text changed.
func (v *editValue) replace(s string, limit int) bool {
	start, end := v.selection()
	prefix := strings.Join(v.clusters[:start], "")
	tail := strings.Join(v.clusters[end:], "")
	insert := splitGraphemes(s)
	join := func(insert []string) (string, []string) {
		head := prefix + strings.Join(insert, "")
		return head, splitGraphemes(head + tail)
	}

	head, clusters := join(insert)
	if limit > 0 && len(clusters) > limit {
		room := max(0, limit-(len(v.clusters)-(end-start)))
		insert = insert[:min(len(insert), room)]
		head, clusters = join(insert)
	}
	if len(insert) == 0 && start == end {
		return false
	}
	v.clusters = clusters
	v.moveTo(len(splitGraphemes(head)), false)
	return true
}

// deleteBackward removes the selection, or else the cluster before the
// cursor.
func (v *editValue) deleteBackward() bool {
	if !v.hasSelection() {
		if v.extent == 0 {
			return false
		}
		v.base = v.extent - 1
	}
	return v.replace("", 0)
}

// deleteForward removes the selection, or else the cluster after the
// cursor.
func (v *editValue) deleteForward() bool {
	if !v.hasSelection() {
		if v.extent == len(v.clusters) {
			return false
		}
		v.base = v.extent + 1
	}
	return v.replace("", 0)
}

// display returns the text as shown: each cluster replaced by mask when
// mask is non-empty.
func (v editValue) display(mask string) string {
	if mask == "" {
		return v.String()
	}
	return strings.Repeat(mask, len(v.clusters))
}

// column returns the display width of the first i clusters.
func (v editValue) column(i int, mask string) int {
	w := 0
	for _, c := range v.clusters[:v.clamp(i)] {
		if mask != "" {
			c = mask
		}
		w += runewidth.StringWidth(c)
	}
	return w
}

// indexAt returns the cluster boundary nearest display column col.
func (v editValue) indexAt(col float64, mask string) int {
	w := 0.0
	for i, c := range v.clusters {
		if mask != "" {
			c = mask
		}
		cw := float64(runewidth.StringWidth(c))
		if col < w+cw/2 {
			return i
		}
		w += cw
	}
	return len(v.clusters)
}
