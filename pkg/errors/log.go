package errors

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogOptions configures a zerolog logger.
type LogOptions struct {
	// Level is a zerolog level name; empty means "info".
	Level string
	// HumanReadable switches to zerolog's console writer.
	HumanReadable bool
	// Writer receives log output; defaults to stderr.
	Writer io.Writer
	// Verbose includes stack traces in reported errors.
	Verbose bool
}

// NewLogger builds a zerolog logger from opts.
func NewLogger(opts LogOptions) (zerolog.Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), New("errors.NewLogger", KindConfig, err)
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

// LogHandler is an ErrorHandler that writes through a zerolog logger.
type LogHandler struct {
	Logger zerolog.Logger
	// Verbose enables stack traces in the output.
	Verbose bool
}

// NewLogHandler creates a LogHandler. An invalid level falls back to info.
func NewLogHandler(opts LogOptions) *LogHandler {
	logger, err := NewLogger(opts)
	if err != nil {
		opts.Level = ""
		logger, _ = NewLogger(opts)
	}
	return &LogHandler{Logger: logger, Verbose: opts.Verbose}
}

// HandleError logs a HeadlessError.
func (h *LogHandler) HandleError(err *HeadlessError) {
	if err == nil {
		return
	}
	h.Logger.Error().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Err(err.Err).
		Msg("headless error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	event := h.Logger.Error().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Interface("value", err.Value)
	if h.Verbose && err.StackTrace != "" {
		event = event.Str("stack", err.StackTrace)
	}
	event.Msg("recovered panic")
}

// HandleBuildError logs a BuildError.
func (h *LogHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	event := h.Logger.Error().
		Str("element", err.Element).
		Str("error", err.Error())
	if h.Verbose && err.StackTrace != "" {
		event = event.Str("stack", err.StackTrace)
	}
	event.Msg("build failed")
}
