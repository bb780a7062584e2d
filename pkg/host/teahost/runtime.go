// Package teahost runs headless components inside a bubbletea program.
// Terminal mouse and key messages are translated into input events and
// routed through a widgets.Env; timers fire on the program goroutine.
package teahost

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/gestures"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/input"
	"github.com/go-drift/headless/pkg/overlay"
	"github.com/go-drift/headless/pkg/scheduler"
	"github.com/go-drift/headless/pkg/widgets"
)

// Options configures a Runtime.
type Options struct {
	// Viewport is the initial surface size. The first WindowSizeMsg
	// replaces it.
	Viewport graphics.Rect
	Logger   zerolog.Logger
	// Mount builds the component tree under root.
	Mount func(env *widgets.Env, root *core.Element) error
	// Render paints the current state. A nil Render draws nothing.
	Render func(env *widgets.Env) string
	// Quit ends the program. Defaults to ctrl+c.
	Quit *key.Binding
}

// Runtime is a tea.Model hosting one component tree.
type Runtime struct {
	env    *widgets.Env
	root   *core.Element
	queue  *scheduler.Queue
	wake   chan struct{}
	mount  func(*widgets.Env, *core.Element) error
	render func(*widgets.Env) string
	quit   key.Binding
	log    zerolog.Logger

	last    graphics.Offset
	hasLast bool
	err     error
}

type wakeMsg struct{}

// New creates a Runtime. Components are mounted by Init.
func New(opts Options) *Runtime {
	r := &Runtime{
		wake:   make(chan struct{}, 1),
		mount:  opts.Mount,
		render: opts.Render,
		log:    opts.Logger,
		quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
	if opts.Quit != nil {
		r.quit = *opts.Quit
	}
	r.queue = scheduler.NewQueue(r.signal)
	surface := overlay.NewSurface(overlay.SurfaceOptions{
		Router:   gestures.NewRouter(),
		Viewport: opts.Viewport,
	})
	r.env = widgets.NewEnv(surface, scheduler.NewReal(r.queue.Post))
	r.root = r.env.Owner.Mount(nil, "teahost.Runtime", nil)
	return r
}

// Env returns the services components mount with.
func (r *Runtime) Env() *widgets.Env { return r.env }

// Root returns the element components mount under.
func (r *Runtime) Root() *core.Element { return r.root }

// Err returns the error that stopped the program, if any.
func (r *Runtime) Err() error { return r.err }

func (r *Runtime) signal() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Runtime) listen() tea.Cmd {
	return func() tea.Msg {
		<-r.wake
		return wakeMsg{}
	}
}

// Init mounts the component tree and starts listening for timers.
func (r *Runtime) Init() tea.Cmd {
	if r.mount != nil {
		if err := r.mount(r.env, r.root); err != nil {
			r.err = errors.New("teahost.Init", errors.KindHost, err)
			r.log.Error().Err(err).Msg("mount failed")
			return tea.Quit
		}
	}
	r.env.Owner.FlushBuild()
	return r.listen()
}

// Update routes terminal messages into the component tree.
func (r *Runtime) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.env.Surface.SetViewport(graphics.RectFromLTWH(0, 0, float64(msg.Width), float64(msg.Height)))
		r.log.Debug().Int("width", msg.Width).Int("height", msg.Height).Msg("viewport")
	case tea.KeyMsg:
		if key.Matches(msg, r.quit) {
			return r, tea.Quit
		}
		if e, ok := TranslateKey(msg); ok {
			if !r.env.HandleKey(e) {
				r.log.Trace().Str("key", e.String()).Msg("unhandled key")
			}
		}
	case tea.MouseMsg:
		if e, ok := r.pointer(msg); ok {
			r.env.Dispatch(e)
		}
	case wakeMsg:
		n := r.queue.Drain()
		r.log.Trace().Int("callbacks", n).Msg("timers")
		cmd = r.listen()
	}
	r.env.Owner.FlushBuild()
	return r, cmd
}

func (r *Runtime) pointer(msg tea.MouseMsg) (input.PointerEvent, bool) {
	e, ok := TranslateMouse(msg)
	if !ok {
		return e, false
	}
	if r.hasLast {
		e.Delta = e.Position.Sub(r.last)
	}
	r.last, r.hasLast = e.Position, true
	return e, true
}

// View renders the tree through Options.Render.
func (r *Runtime) View() string {
	if r.render == nil {
		return ""
	}
	return r.render(r.env)
}
