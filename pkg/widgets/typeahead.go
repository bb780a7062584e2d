package widgets

import (
	"strings"
	"time"

	"github.com/go-drift/headless/pkg/scheduler"
	"github.com/sahilm/fuzzy"
)

// TypeaheadTimeout is how long typed characters accumulate before the
// typeahead buffer resets.
const TypeaheadTimeout = 500 * time.Millisecond

// typeahead accumulates typed characters for list navigation.
type typeahead struct {
	slot    *scheduler.Slot
	timeout time.Duration
	buffer  string
}

func newTypeahead(sched scheduler.Scheduler, op string, timeout time.Duration) *typeahead {
	if timeout <= 0 {
		timeout = TypeaheadTimeout
	}
	t := &typeahead{timeout: timeout}
	if sched != nil {
		t.slot = scheduler.NewSlot(sched, op)
	}
	return t
}

// add appends runes and returns the buffer. Without a scheduler the
// buffer never resets on its own.
func (t *typeahead) add(runes []rune) string {
	t.buffer += string(runes)
	if t.slot != nil {
		t.slot.Schedule(t.timeout, t.reset)
	}
	return t.buffer
}

func (t *typeahead) reset() { t.buffer = "" }

func (t *typeahead) Dispose() {
	if t.slot != nil {
		t.slot.Dispose()
	}
}

// matchLabel finds the option to highlight for query. A case-insensitive
// prefix match wins, searching from the item after current so repeating
// one letter cycles through items starting with it; a longer query starts
// at current itself. Without a prefix match the best fuzzy match is used.
// It returns -1 when nothing enabled matches.
func matchLabel(query string, labels []string, enabled func(int) bool, current int) int {
	n := len(labels)
	if query == "" || n == 0 {
		return -1
	}
	q := strings.ToLower(query)
	start := current
	if len([]rune(query)) == 1 || start < 0 {
		start = current + 1
	}
	for step := 0; step < n; step++ {
		i := wrapIndex(start+step, n)
		if enabled(i) && strings.HasPrefix(strings.ToLower(labels[i]), q) {
			return i
		}
	}
	for _, m := range fuzzy.Find(query, labels) {
		if enabled(m.Index) {
			return m.Index
		}
	}
	return -1
}
