// Package widgets provides headless components: Button, Checkbox,
// Radio/RadioGroup, Select, Slider, Tabs, Tooltip, Menu, Accordion and
// TextField.
//
// Components own behavior only. Each one tracks its interaction state,
// handles keyboard input, describes itself for assistive technology, and
// publishes a typed state value through a [core.Scope]. Painting is left
// to the Builder callback the consumer supplies.
//
// # Construction
//
// Every component is created from an Env and an options struct:
//
//	env := widgets.NewEnv(surface, sched)
//	btn := widgets.NewButton(env, surface.Root(), widgets.ButtonOptions{
//	    Label:  "Submit",
//	    Bounds: graphics.RectFromLTWH(0, 0, 12, 1),
//	    OnTap:  submit,
//	    Builder: func(ctx *core.Element, s widgets.ButtonState) any {
//	        return paintButton(s)
//	    },
//	})
//
// The Builder runs inside an element that watches the component's scope,
// so it rebuilds only when the published state changes. Code elsewhere
// can read the state with Peek or subscribe with Listen:
//
//	btn.Scope().Listen(func(s widgets.ButtonState) { log(s) })
//
// # Geometry
//
// Components do not lay themselves out. The host measures each one and
// passes the rectangle through Bounds or SetBounds; hit testing,
// directional focus traversal and overlay anchoring use it.
//
// # Lifecycle
//
// Dispose cancels every pending timer, removes hit targets and focus
// nodes, closes the scope and closes any open overlay. Unmounting the
// parent element disposes the components mounted under it.
package widgets
