package cmd

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-drift/headless/cmd/headless/internal/demo"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/host/teahost"
)

type demoFlags struct {
	noMouse bool
	accent  string
}

func newDemoCmd(a *app) *cobra.Command {
	flags := &demoFlags{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive component gallery",
		Long: `Run every component in a full-screen terminal gallery.

Mouse cells map to pointer positions, so clicks, hover, drags and
right-clicks reach the components the same way they would on any
other host. Logs are discarded unless --log-file is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(a, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.noMouse, "no-mouse", false, "Disable mouse reporting")
	cmd.Flags().StringVar(&flags.accent, "accent", "", "Accent color, overriding demo.accent")
	return cmd
}

func runDemo(a *app, flags *demoFlags) error {
	cfg := a.cfg.Demo
	logger := a.log
	if !a.toFile {
		logger = zerolog.Nop()
	}

	accent := cfg.Accent
	if flags.accent != "" {
		accent = flags.accent
	}
	theme := demo.NewTheme(accent)
	menuPosition := a.cfg.Presets[cfg.MenuPlacement]

	gallery := demo.New(demo.Options{
		Title:        cfg.Title,
		Theme:        &theme,
		TooltipWait:  cfg.TooltipWait,
		TooltipShow:  cfg.TooltipShow,
		MenuPosition: &menuPosition,
		Logger:       logger.With().Str("component", "demo").Logger(),
	})
	width, height := terminalSize()
	rt := teahost.New(teahost.Options{
		Viewport: graphics.RectFromLTWH(0, 0, float64(width), float64(height)),
		Logger:   logger.With().Str("component", "teahost").Logger(),
		Mount:    gallery.Mount,
		Render:   gallery.Render,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse && !flags.noMouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	logger.Info().Int("width", width).Int("height", height).Msg("starting demo")
	if _, err := tea.NewProgram(rt, opts...).Run(); err != nil {
		return err
	}
	gallery.Dispose()
	return rt.Err()
}

// terminalSize returns the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return 80, 24
}
