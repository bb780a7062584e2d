package overlay

import (
	"time"

	"github.com/go-drift/headless/pkg/core"
	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/focus"
	"github.com/go-drift/headless/pkg/graphics"
	"github.com/go-drift/headless/pkg/scheduler"
)

// DialogBuilder creates dialog content given the entry's element and a
// dismiss function. Call dismiss to close the dialog programmatically.
type DialogBuilder func(ctx *core.Element, dismiss func()) any

// DialogOptions configures ShowDialog.
type DialogOptions struct {
	// Builder creates the dialog content. Required.
	//
	// The dismiss function passed to the builder closes the dialog. It is
	// safe to call multiple times.
	Builder DialogBuilder

	// Size is the dialog's natural size; it is centered in the viewport.
	Size graphics.Size

	// Persistent prevents the barrier tap from dismissing the dialog.
	// When true, the user must interact with the dialog content (or press
	// escape) to dismiss it.
	Persistent bool

	// ReturnFocus receives focus when the dialog closes.
	ReturnFocus *focus.Node

	// Scheduler and Linger delay unmounting for exit animations.
	Scheduler scheduler.Scheduler
	Linger    time.Duration

	// SemanticLabel names the barrier, e.g. "Dismiss dialog".
	SemanticLabel string

	OnClose func()
}

// ShowDialog displays a modal dialog on surface.
//
// The dialog is an Anchored overlay centered in the viewport with a
// Barrier below it that absorbs pointer events aimed at the content
// behind. Focus moves to the first focusable node the builder attaches
// to the dialog's scope and is trapped there until the dialog closes.
//
// The returned dismiss function closes the dialog. It is idempotent:
// calling it more than once is a safe no-op.
//
// If surface is nil, ErrNoSurface is reported and a no-op dismiss is
// returned. A nil Builder also returns a no-op dismiss.
func ShowDialog(surface *Surface, opts DialogOptions) (dismiss func()) {
	if surface == nil {
		errors.Report(errors.New("overlay.ShowDialog", errors.KindOverlay, errors.ErrNoSurface))
		return func() {}
	}
	if opts.Builder == nil {
		return func() {}
	}

	var a *Anchored
	dismiss = func() {
		if a != nil {
			a.Close()
		}
	}
	a = NewAnchored(AnchoredOptions{
		Surface:      surface,
		Scheduler:    opts.Scheduler,
		Name:         "dialog",
		TriggerFocus: opts.ReturnFocus,
		Size:         opts.Size,
		Position:     Centered(),
		Linger:       opts.Linger,
		FocusOnOpen:  true,
		Barrier: &Barrier{
			Dismissible:   !opts.Persistent,
			OnDismiss:     dismiss,
			SemanticLabel: opts.SemanticLabel,
		},
		Builder: func(ctx *core.Element) any {
			return opts.Builder(ctx, dismiss)
		},
		OnClose: func() {
			if opts.OnClose != nil {
				opts.OnClose()
			}
			a.Dispose()
		},
	})
	a.Open()
	return dismiss
}
