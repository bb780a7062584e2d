// Package cmd implements the headless CLI commands.
package cmd

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/headless/cmd/headless/internal/config"
	"github.com/go-drift/headless/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFile    string
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	flags   rootFlags
	cfg     *config.Resolved
	log     zerolog.Logger
	logFile io.Closer
	// toFile is set when log output goes somewhere other than the
	// terminal.
	toFile bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Headless UI components for Go",
		Long: `headless drives behavior-only UI components: focus, hover and press
tracking, overlay placement and the components built on them.

Use "headless <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	cmd.PersistentFlags().StringVar(&a.flags.configPath, "config", "", "Path to headless.yaml (default: search the working directory and module root)")
	cmd.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.flags.logFile, "log-file", "", "Write logs to this file")

	cmd.AddCommand(newDemoCmd(a))
	cmd.AddCommand(newPositionCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup() error {
	cfg, err := config.Resolve(a.flags.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := cfg.Log
	if a.flags.logLevel != "" {
		logCfg.Level = a.flags.logLevel
	}
	if a.flags.logFile != "" {
		logCfg.File = a.flags.logFile
	}

	var writer io.Writer = os.Stderr
	if logCfg.File != "" {
		f, err := os.OpenFile(logCfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.New("cmd.setup", errors.KindConfig, err)
		}
		writer = f
		a.logFile = f
		a.toFile = true
	}

	logger, err := errors.NewLogger(errors.LogOptions{
		Level:         logCfg.Level,
		HumanReadable: logCfg.Human,
		Writer:        writer,
	})
	if err != nil {
		return err
	}
	a.log = logger
	errors.SetHandler(&errors.LogHandler{Logger: logger})
	if cfg.Path != "" {
		logger.Debug().Str("path", cfg.Path).Msg("loaded config")
	}
	return nil
}

func (a *app) teardown() error {
	errors.SetHandler(nil)
	if a.logFile != nil {
		err := a.logFile.Close()
		a.logFile = nil
		return err
	}
	return nil
}
