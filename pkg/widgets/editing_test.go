package widgets

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestSplitGraphemes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"e\u0301te\u0301", 3},
		{"🇯🇵🇫🇷", 2},
		{"👩‍👩‍👧!", 2},
		{"漢字", 2},
	}
	for _, tt := range tests {
		if got := len(splitGraphemes(tt.in)); got != tt.want {
			t.Errorf("len(splitGraphemes(%q)) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEditValue_Move(t *testing.T) {
	v := newEditValue("héllo")
	if v.cursor() != 5 {
		t.Fatalf("cursor = %d, want 5", v.cursor())
	}
	v.move(-2, false)
	v.move(-1, true)
	if start, end := v.selection(); start != 2 || end != 3 {
		t.Errorf("selection = %d,%d, want 2,3", start, end)
	}
	v.move(1, false)
	if v.cursor() != 3 || v.hasSelection() {
		t.Errorf("collapse right: cursor = %d selection = %v, want 3 none", v.cursor(), v.hasSelection())
	}
	v.moveTo(-5, false)
	if v.cursor() != 0 {
		t.Errorf("cursor = %d, want clamped to 0", v.cursor())
	}
	v.moveTo(99, true)
	if start, end := v.selection(); start != 0 || end != 5 {
		t.Errorf("selection = %d,%d, want 0,5", start, end)
	}
}

func TestEditValue_WordBoundary(t *testing.T) {
	v := newEditValue("one  two three")
	tests := []struct {
		from, dir, want int
	}{
		{0, 1, 3},
		{3, 1, 8},
		{5, 1, 8},
		{14, -1, 9},
		{9, -1, 5},
		{5, -1, 0},
		{0, -1, 0},
		{14, 1, 14},
	}
	for _, tt := range tests {
		if got := v.wordBoundary(tt.from, tt.dir); got != tt.want {
			t.Errorf("wordBoundary(%d, %d) = %d, want %d", tt.from, tt.dir, got, tt.want)
		}
	}
}

func TestEditValue_Replace(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		insert     string
		limit      int
		want       string
		cursor     int
		changed    bool
	}{
		{"insert", "ac", 1, 1, "b", 0, "abc", 2, true},
		{"replace selection", "hello", 1, 4, "ipp", 0, "hippo", 4, true},
		{"delete selection", "hello", 0, 5, "", 0, "", 0, true},
		{"empty insert", "hi", 1, 1, "", 0, "hi", 1, false},
		{"limit truncates", "abc", 3, 3, "defg", 5, "abcde", 5, true},
		{"limit full", "abc", 1, 1, "x", 3, "abc", 1, false},
		{"limit counts selection", "abc", 0, 3, "wxyz", 3, "wxy", 3, true},
		{"combining mark joins", "cafe", 4, 4, "\u0301", 4, "cafe\u0301", 4, true},
		{"emoji is one cluster", "ab", 1, 1, "👍🏽", 0, "a👍🏽b", 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newEditValue(tt.text)
			v.selectRange(tt.start, tt.end)
			changed := v.replace(tt.insert, tt.limit)
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			if tt.changed && v.cursor() != tt.cursor {
				t.Errorf("cursor = %d, want %d", v.cursor(), tt.cursor)
			}
		})
	}
}

func TestEditValue_Delete(t *testing.T) {
	v := newEditValue("éa")
	v.moveTo(1, false)
	if !v.deleteBackward() || v.String() != "a" || v.cursor() != 0 {
		t.Errorf("deleteBackward: text = %q cursor = %d, want \"a\" 0", v.String(), v.cursor())
	}
	if v.deleteBackward() {
		t.Error("deleteBackward at the start reported a change")
	}
	if !v.deleteForward() || v.String() != "" {
		t.Errorf("deleteForward: text = %q, want empty", v.String())
	}
	if v.deleteForward() {
		t.Error("deleteForward on empty text reported a change")
	}
}

func TestEditValue_Columns(t *testing.T) {
	v := newEditValue("a漢e\u0301b")
	tests := []struct {
		index, col int
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 4},
		{4, 5},
	}
	for _, tt := range tests {
		if got := v.column(tt.index, ""); got != tt.col {
			t.Errorf("column(%d) = %d, want %d", tt.index, got, tt.col)
		}
	}
	if got := v.indexAt(1.9, ""); got != 1 {
		t.Errorf("indexAt(1.9) = %d, want 1", got)
	}
	if got := v.indexAt(2.1, ""); got != 2 {
		t.Errorf("indexAt(2.1) = %d, want 2", got)
	}
	if got := v.indexAt(40, ""); got != 4 {
		t.Errorf("indexAt(40) = %d, want 4", got)
	}

	mask := runewidth.StringWidth(ObscureMask)
	if got := v.column(4, ObscureMask); got != 4*mask {
		t.Errorf("masked column(4) = %d, want %d", got, 4*mask)
	}
	if got := v.display(ObscureMask); got != "••••" {
		t.Errorf("display = %q, want four masks", got)
	}
}
