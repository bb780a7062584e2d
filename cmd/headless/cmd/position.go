package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/go-drift/headless/cmd/headless/internal/demo"
	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/overlay"
)

type positionFlags struct {
	anchor   []float64
	size     []float64
	viewport []float64
	pointer  []float64
	preset   string
	gap      float64
	draw     bool
}

func newPositionCmd(a *app) *cobra.Command {
	flags := &positionFlags{}
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Compute where an overlay is placed",
		Long: `Compute the rect an overlay of the given size gets next to an anchor,
using a named placement preset, and report which alignment won.

Presets are the built-in ones (below, above, right-of, left-of,
centered) plus any defined under "presets" in headless.yaml. With
--pointer the overlay opens at that point like a context menu.`,
		Example: `  headless position --anchor 10,5,12,1 --size 20,6 --preset below
  headless position --anchor 70,20,8,1 --size 20,6 --viewport 80,24 --draw
  headless position --pointer 78,2 --size 12,4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPosition(cmd.OutOrStdout(), a, flags)
		},
	}
	cmd.Flags().Float64SliceVar(&flags.anchor, "anchor", []float64{10, 5, 12, 1}, "Anchor rect as x,y,width,height")
	cmd.Flags().Float64SliceVar(&flags.size, "size", []float64{20, 6}, "Overlay size as width,height")
	cmd.Flags().Float64SliceVar(&flags.viewport, "viewport", nil, "Viewport as width,height (default: terminal size)")
	cmd.Flags().Float64SliceVar(&flags.pointer, "pointer", nil, "Open at this x,y point instead of the anchor")
	cmd.Flags().StringVar(&flags.preset, "preset", "below", "Placement preset")
	cmd.Flags().Float64Var(&flags.gap, "gap", 0, "Gap between anchor and overlay for built-in presets")
	cmd.Flags().BoolVar(&flags.draw, "draw", false, "Draw the viewport with the anchor and overlay")
	return cmd
}

func runPosition(out io.Writer, a *app, flags *positionFlags) error {
	if len(flags.anchor) != 4 {
		return errors.New("cmd.position", errors.KindConfig, fmt.Errorf("--anchor wants 4 values, got %d", len(flags.anchor)))
	}
	if len(flags.size) != 2 {
		return errors.New("cmd.position", errors.KindConfig, fmt.Errorf("--size wants 2 values, got %d", len(flags.size)))
	}
	var viewport graphics.Rect
	switch len(flags.viewport) {
	case 0:
		w, h := terminalSize()
		viewport = graphics.RectFromLTWH(0, 0, float64(w), float64(h))
	case 2:
		viewport = graphics.RectFromLTWH(0, 0, flags.viewport[0], flags.viewport[1])
	default:
		return errors.New("cmd.position", errors.KindConfig, fmt.Errorf("--viewport wants 2 values, got %d", len(flags.viewport)))
	}

	cfg, err := resolvePreset(a, flags)
	if err != nil {
		return err
	}
	anchor := graphics.RectFromLTWH(flags.anchor[0], flags.anchor[1], flags.anchor[2], flags.anchor[3])
	size := graphics.Size{Width: flags.size[0], Height: flags.size[1]}
	placement := overlay.ComputePlacement(anchor, size, cfg, viewport)

	a.log.Debug().
		Str("anchor", anchor.String()).
		Str("viewport", viewport.String()).
		Str("rect", placement.Rect.String()).
		Msg("computed placement")

	r := placement.Rect
	fmt.Fprintf(out, "rect:     x=%g y=%g w=%g h=%g\n", r.Left, r.Top, r.Width(), r.Height())
	fmt.Fprintf(out, "pair:     %s\n", placement.Pair)
	if placement.FallbackIndex < 0 {
		fmt.Fprintln(out, "source:   primary")
	} else {
		fmt.Fprintf(out, "source:   fallback %d\n", placement.FallbackIndex)
	}
	fmt.Fprintf(out, "clamped:  %v\n", placement.Clamped)

	if flags.draw {
		fmt.Fprintln(out, drawPlacement(anchor, r, viewport, cfg.Pointer))
	}
	return nil
}

func resolvePreset(a *app, flags *positionFlags) (overlay.PositionConfig, error) {
	if len(flags.pointer) > 0 {
		if len(flags.pointer) != 2 {
			return overlay.PositionConfig{}, errors.New("cmd.position", errors.KindConfig, fmt.Errorf("--pointer wants 2 values, got %d", len(flags.pointer)))
		}
		return overlay.ContextMenu(graphics.Offset{X: flags.pointer[0], Y: flags.pointer[1]}), nil
	}
	if cfg, err := overlay.Preset(flags.preset, flags.gap); err == nil {
		return cfg, nil
	}
	if cfg, ok := a.cfg.Presets[flags.preset]; ok {
		return cfg, nil
	}
	names := make([]string, 0, len(a.cfg.Presets))
	for name := range a.cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return overlay.PositionConfig{}, errors.New("cmd.position", errors.KindConfig,
		fmt.Errorf("unknown preset %q (available: %s)", flags.preset, strings.Join(names, ", ")))
}

func drawPlacement(anchor, rect, viewport graphics.Rect, pointer *graphics.Offset) string {
	c := demo.NewCanvas(int(viewport.Width()), int(viewport.Height()))
	c.Fill(viewport, "·", lipgloss.NewStyle().Faint(true))
	if pointer == nil {
		c.Fill(anchor, "#", lipgloss.NewStyle().Bold(true))
	}
	c.Fill(rect, "░", lipgloss.NewStyle())
	if pointer != nil {
		c.Text(int(pointer.X), int(pointer.Y), "+", lipgloss.NewStyle().Bold(true), 0)
	}
	return c.String()
}
