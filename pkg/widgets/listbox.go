package widgets

import "github.com/go-drift/headless/pkg/graphics"

// stepEnabled returns the next enabled index from current moving by delta.
// It stops at the ends unless wrap is set, and returns current when no
// other enabled index exists in that direction.
func stepEnabled(current, delta, n int, enabled func(int) bool, wrap bool) int {
	if n == 0 {
		return -1
	}
	i := current
	for step := 0; step < n; step++ {
		i += delta
		if wrap {
			i = wrapIndex(i, n)
		} else if i < 0 || i >= n {
			return current
		}
		if enabled(i) {
			return i
		}
	}
	return current
}

// firstEnabled returns the first enabled index, or -1.
func firstEnabled(n int, enabled func(int) bool) int {
	return stepEnabled(-1, 1, n, enabled, false)
}

// lastEnabled returns the last enabled index, or -1.
func lastEnabled(n int, enabled func(int) bool) int {
	return stepEnabled(n, -1, n, enabled, false)
}

// rowRect returns the rect of row i in a vertical list laid out in rect.
func rowRect(rect graphics.Rect, i int, height float64) graphics.Rect {
	return graphics.RectFromLTWH(rect.Left, rect.Top+float64(i)*height, rect.Width(), height)
}
