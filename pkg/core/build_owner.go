package core

import (
	"slices"
	"sync"
)

// BuildOwner tracks dirty elements that need rebuilding.
type BuildOwner struct {
	dirty    []*Element
	dirtySet map[*Element]bool
	mu       sync.Mutex

	// OnNeedsFrame is called when an element is first scheduled for
	// rebuild, so hosts that render on demand know to flush.
	OnNeedsFrame func()
}

// NewBuildOwner creates a new BuildOwner.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{}
}

// ScheduleBuild marks an element as needing rebuild.
func (b *BuildOwner) ScheduleBuild(element *Element) {
	added := func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.dirtySet[element] {
			return false
		}
		if b.dirtySet == nil {
			b.dirtySet = make(map[*Element]bool)
		}
		b.dirtySet[element] = true
		b.dirty = append(b.dirty, element)
		return true
	}()

	if added && b.OnNeedsFrame != nil {
		b.OnNeedsFrame()
	}
}

// NeedsWork reports whether any element is waiting to rebuild.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.dirty) > 0
}

// FlushBuild rebuilds all dirty elements, parents before children.
// Elements dirtied during the flush are rebuilt in the same call.
// It returns the number of builds performed.
func (b *BuildOwner) FlushBuild() int {
	builds := 0
	for {
		b.mu.Lock()
		if len(b.dirty) == 0 {
			b.mu.Unlock()
			return builds
		}

		slices.SortStableFunc(b.dirty, func(x, y *Element) int {
			return x.depth - y.depth
		})

		dirty := b.dirty
		b.dirty = nil
		clear(b.dirtySet)
		b.mu.Unlock()

		for _, element := range dirty {
			if !element.mounted {
				continue
			}
			if element.rebuildIfNeeded() {
				builds++
			}
		}
	}
}

// Mount creates an element under parent (nil for a root), builds it
// immediately and returns it.
func (b *BuildOwner) Mount(parent *Element, name string, build BuildFunc) *Element {
	e := &Element{owner: b, parent: parent, name: name, build: build, mounted: true, dirty: true}
	if parent != nil {
		e.depth = parent.depth + 1
		parent.children = append(parent.children, e)
	}
	e.rebuildIfNeeded()
	return e
}
