package testing

import (
	"sync"
	"testing"

	"github.com/go-drift/headless/pkg/errors"
)

// ErrorRecorder is an errors.ErrorHandler that keeps everything reported.
type ErrorRecorder struct {
	mu     sync.Mutex
	Errors []*errors.HeadlessError
	Panics []*errors.PanicError
	Builds []*errors.BuildError
}

func (r *ErrorRecorder) HandleError(err *errors.HeadlessError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, err)
}

func (r *ErrorRecorder) HandlePanic(err *errors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Panics = append(r.Panics, err)
}

func (r *ErrorRecorder) HandleBuildError(err *errors.BuildError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Builds = append(r.Builds, err)
}

// Count returns the total number of reports.
func (r *ErrorRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Errors) + len(r.Panics) + len(r.Builds)
}

// RecordErrors installs an ErrorRecorder as the global handler for the
// duration of the test.
func RecordErrors(tb testing.TB) *ErrorRecorder {
	tb.Helper()
	r := &ErrorRecorder{}
	errors.SetHandler(r)
	tb.Cleanup(func() { errors.SetHandler(nil) })
	return r
}
