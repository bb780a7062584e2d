package overlay

import (
	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
)

// DefaultBaseLayer is the router layer of the bottom entry. Ordinary
// content stays on layer 0.
const DefaultBaseLayer = 1000

// SurfaceOptions configures a Surface.
type SurfaceOptions struct {
	Owner    *core.BuildOwner
	Router   *gestures.Router
	Focus    *focus.Manager
	Viewport graphics.Rect
	// BaseLayer overrides DefaultBaseLayer.
	BaseLayer int
}

// Surface is the top-level mount point shared by every overlay. Entries
// are kept bottom to top; later entries paint above and win hit tests.
// One pointer-down observer resolves outside taps for all entries,
// topmost first.
type Surface struct {
	owner     *core.BuildOwner
	router    *gestures.Router
	focus     *focus.Manager
	root      *core.Element
	viewport  graphics.Rect
	baseLayer int
	entries   []*Entry
	unobserve func()
	listeners []*viewportListener
	disposed  bool
}

type viewportListener struct {
	fn func(graphics.Rect)
}

// NewSurface creates a surface and registers its outside-tap observer.
func NewSurface(opts SurfaceOptions) *Surface {
	s := &Surface{
		owner:     opts.Owner,
		router:    opts.Router,
		focus:     opts.Focus,
		viewport:  opts.Viewport,
		baseLayer: opts.BaseLayer,
	}
	if s.owner == nil {
		s.owner = core.NewBuildOwner()
	}
	if s.focus == nil {
		s.focus = focus.NewManager()
	}
	if s.baseLayer == 0 {
		s.baseLayer = DefaultBaseLayer
	}
	s.root = s.owner.Mount(nil, "overlay.Surface", nil)
	s.unobserve = s.router.AddDownObserver(s.observeDown)
	return s
}

// Owner returns the build owner entries mount with.
func (s *Surface) Owner() *core.BuildOwner { return s.owner }

// Router returns the pointer router.
func (s *Surface) Router() *gestures.Router { return s.router }

// Focus returns the focus manager.
func (s *Surface) Focus() *focus.Manager { return s.focus }

// Root returns the element entries mount under.
func (s *Surface) Root() *core.Element { return s.root }

// Viewport returns the surface bounds.
func (s *Surface) Viewport() graphics.Rect { return s.viewport }

// SetViewport resizes the surface and notifies viewport listeners so
// anchored overlays can reposition.
func (s *Surface) SetViewport(r graphics.Rect) {
	if s.viewport.Equal(r) {
		return
	}
	s.viewport = r
	for _, e := range s.entries {
		if e.barrier != nil {
			e.barrier.SetBounds(r)
		}
	}
	listeners := append([]*viewportListener(nil), s.listeners...)
	for _, l := range listeners {
		errors.Guard("overlay.Surface.SetViewport", func() { l.fn(r) })
	}
	s.router.Refresh()
}

// AddViewportListener registers fn and returns a function that removes it.
func (s *Surface) AddViewportListener(fn func(graphics.Rect)) func() {
	entry := &viewportListener{fn: fn}
	s.listeners = append(s.listeners, entry)
	return func() {
		for i, l := range s.listeners {
			if l == entry {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Entries returns the mounted entries, bottom to top.
func (s *Surface) Entries() []*Entry {
	return append([]*Entry(nil), s.entries...)
}

// EntryOf returns the entry whose content element is ctx, or nil. Builders
// use it to reach the entry's focus scope and layer.
func (s *Surface) EntryOf(ctx *core.Element) *Entry {
	for ; ctx != nil; ctx = ctx.Parent() {
		for _, e := range s.entries {
			if e.element == ctx {
				return e
			}
		}
	}
	return nil
}

// Insert adds entry to the surface.
// Positioning: exactly one of below/above may be non-nil.
//   - below non-nil: inserts just below that entry
//   - above non-nil: inserts just above that entry
//   - both nil: inserts at top
//
// Panics if both below AND above are non-nil (ambiguous).
// Panics if entry is already inserted in any surface.
func (s *Surface) Insert(entry, below, above *Entry) {
	if below != nil && above != nil {
		panic("overlay: both below and above specified")
	}
	if entry.surface != nil {
		panic("overlay: entry already inserted")
	}
	if entry.id == 0 {
		entry.id = nextID()
	}
	s.insertIntoEntries(entry, below, above)
	entry.mount(s)
	s.relayer()
	s.router.Refresh()
}

// InsertAll adds entries in order, each above the one before it. With
// no below or above they go on top of the stack, last entry topmost.
func (s *Surface) InsertAll(entries []*Entry, below, above *Entry) {
	chain := below == nil
	for _, entry := range entries {
		s.Insert(entry, below, above)
		if chain {
			above = entry
		}
	}
}

// Rearrange reorders entries. Entries not in newEntries are removed;
// entries not yet inserted are mounted.
func (s *Surface) Rearrange(newEntries []*Entry) {
	keep := make(map[*Entry]bool, len(newEntries))
	for _, entry := range newEntries {
		keep[entry] = true
	}
	for _, entry := range s.entries {
		if !keep[entry] {
			entry.unmount()
		}
	}
	s.entries = append([]*Entry(nil), newEntries...)
	for _, entry := range s.entries {
		if entry.surface == nil {
			if entry.id == 0 {
				entry.id = nextID()
			}
			entry.mount(s)
		}
	}
	s.relayer()
	s.router.Refresh()
}

func (s *Surface) insertIntoEntries(entry, below, above *Entry) {
	if below != nil {
		for i, e := range s.entries {
			if e == below {
				s.entries = append(s.entries[:i], append([]*Entry{entry}, s.entries[i:]...)...)
				return
			}
		}
		// below not found, insert at bottom
		s.entries = append([]*Entry{entry}, s.entries...)
	} else if above != nil {
		for i, e := range s.entries {
			if e == above {
				s.entries = append(s.entries[:i+1], append([]*Entry{entry}, s.entries[i+1:]...)...)
				return
			}
		}
		// above not found, insert at top
		s.entries = append(s.entries, entry)
	} else {
		s.entries = append(s.entries, entry)
	}
}

func (s *Surface) removeEntry(entry *Entry) {
	if entry.surface != s {
		return
	}
	entry.unmount()
	for i, e := range s.entries {
		if e == entry {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			break
		}
	}
	s.relayer()
	s.router.Refresh()
}

// relayer gives each entry its own router layer in stack order.
func (s *Surface) relayer() {
	for i, e := range s.entries {
		e.setLayer(s.baseLayer + i)
	}
}

// observeDown resolves an outside tap against the entries, topmost
// first. A tap inside an entry stops the walk, as does a barrier. Each
// entry the tap is outside of gets its OutsideTap called until one
// consumes the event.
func (s *Surface) observeDown(e input.PointerEvent) bool {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if i >= len(s.entries) {
			continue
		}
		entry := s.entries[i]
		if entry.IgnorePointer {
			continue
		}
		if entry.contains(e.Position) {
			return false
		}
		if entry.OutsideTap != nil {
			consumed := false
			errors.Guard("overlay.Surface.outsideTap", func() { consumed = entry.OutsideTap(e) })
			if consumed {
				return true
			}
		}
		if entry.Barrier != nil {
			return false
		}
	}
	return false
}

// Dispose removes every entry and the outside-tap observer.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.unobserve()
	for _, e := range s.Entries() {
		e.unmount()
	}
	s.entries = nil
	s.root.Unmount()
}
