package widgets

import (
	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/overlay"
	"github.com/go-drift/headless/pkg/scheduler"
)

// Env bundles the host services components share: the build owner, the
// pointer router, the focus manager, the overlay surface and a
// scheduler for timers.
type Env struct {
	Owner     *core.BuildOwner
	Router    *gestures.Router
	Focus     *focus.Manager
	Surface   *overlay.Surface
	Scheduler scheduler.Scheduler
	Keys      input.KeyMap
}

// NewEnv derives an Env from a surface, which already holds the owner,
// router and focus manager.
func NewEnv(surface *overlay.Surface, sched scheduler.Scheduler) *Env {
	return &Env{
		Owner:     surface.Owner(),
		Router:    surface.Router(),
		Focus:     surface.Focus(),
		Surface:   surface,
		Scheduler: sched,
		Keys:      input.DefaultKeyMap(),
	}
}

// HandleKey routes e through the focus tree. Unhandled Next and Previous
// bindings move focus in traversal order.
func (env *Env) HandleKey(e input.KeyEvent) bool {
	if env.Focus.HandleKey(e) {
		return true
	}
	switch {
	case input.Matches(e, env.Keys.Next):
		return env.Focus.MoveFocus(1)
	case input.Matches(e, env.Keys.Previous):
		return env.Focus.MoveFocus(-1)
	}
	return false
}

// Dispatch sends e to the router.
func (env *Env) Dispatch(e input.PointerEvent) {
	env.Router.Dispatch(e)
}

func (env *Env) mount(parent *core.Element, name string, build core.BuildFunc) *core.Element {
	return env.Owner.Mount(parent, name, build)
}
