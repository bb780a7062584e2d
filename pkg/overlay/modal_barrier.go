package overlay

import (
	"github.com/go-drift/headless/pkg/gestures"
)

// Barrier prevents interaction with targets behind an entry. It covers
// the whole viewport and always absorbs hits, hover included, even when
// Dismissible is false.
type Barrier struct {
	// Dismissible allows tapping the barrier to trigger OnDismiss.
	Dismissible bool

	// OnDismiss is called when the barrier is tapped (if Dismissible).
	OnDismiss func()

	// SemanticLabel names the barrier for assistive technology, e.g.
	// "Dismiss dialog".
	SemanticLabel string
}

func (b *Barrier) attach(s *Surface) *gestures.Target {
	t := s.router.NewTarget("overlay.barrier", s.viewport)
	t.AddHandler(gestures.HandlerFunc(func(e gestures.Event) {
		if e.Type == gestures.EventUp && e.Inside && b.Dismissible && b.OnDismiss != nil {
			b.OnDismiss()
		}
	}))
	return t
}
