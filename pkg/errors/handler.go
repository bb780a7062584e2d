package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// handlerSlot boxes the installed handler so a nil interface can be
// stored and swapped atomically.
type handlerSlot struct{ h ErrorHandler }

var installed atomic.Pointer[handlerSlot]

func init() { SetHandler(nil) }

// SetHandler installs the process-wide handler that Report, ReportPanic
// and ReportBuildError deliver to. Nil installs a LogHandler on stderr.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = NewLogHandler(LogOptions{})
	}
	installed.Store(&handlerSlot{h: h})
}

// Handler returns the installed handler.
func Handler() ErrorHandler { return installed.Load().h }

// deliver stamps a report that has no timestamp yet and hands it to the
// installed handler.
func deliver(at *time.Time, call func(ErrorHandler)) {
	if at.IsZero() {
		*at = time.Now()
	}
	call(Handler())
}

// Report sends err to the installed handler.
func Report(err *HeadlessError) {
	if err != nil {
		deliver(&err.Timestamp, func(h ErrorHandler) { h.HandleError(err) })
	}
}

// ReportPanic sends a recovered panic to the installed handler. A
// missing Kind is derived from the op.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Kind == KindUnknown {
		err.Kind = KindForOp(err.Op)
	}
	deliver(&err.Timestamp, func(h ErrorHandler) { h.HandlePanic(err) })
}

// ReportBuildError sends a failed build to the installed handler.
func ReportBuildError(err *BuildError) {
	if err != nil {
		deliver(&err.Timestamp, func(h ErrorHandler) { h.HandleBuildError(err) })
	}
}

// opKinds maps the package prefix of an op name to the kind of work it
// names. Ops look like "scheduler.Slot.fire".
var opKinds = map[string]ErrorKind{
	"scheduler": KindTimer,
	"core":      KindBuild,
	"overlay":   KindOverlay,
	"config":    KindConfig,
	"teahost":   KindHost,
}

// KindForOp classifies an op by its package prefix. Unknown prefixes
// are KindPanic.
func KindForOp(op string) ErrorKind {
	pkg, _, _ := strings.Cut(op, ".")
	if k, ok := opKinds[pkg]; ok {
		return k
	}
	return KindPanic
}

func panicked(op string, value any) *PanicError {
	return &PanicError{Op: op, Kind: KindForOp(op), Value: value, StackTrace: CaptureStack()}
}

// Recover reports a panic in progress under op. Defer it directly:
//
//	defer errors.Recover("gestures.Router.Dispatch")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(panicked(op, r))
	}
}

// RecoverWithCallback is Recover that then hands the panic value to
// callback, so the caller can fix up its return values.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		ReportPanic(panicked(op, r))
		if callback != nil {
			callback(r)
		}
	}
}

// Guard runs fn, reporting a panic under op. It reports whether fn
// returned normally. Consumer callbacks fired from timers and event
// routing run through Guard so one bad callback cannot stop the loop.
func Guard(op string, fn func()) (ok bool) {
	defer RecoverWithCallback(op, func(any) { ok = false })
	fn()
	return true
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line"
// pair per frame, without CaptureStack and its direct caller.
func CaptureStack() string {
	pcs := make([]uintptr, 32)
	pcs = pcs[:runtime.Callers(3, pcs)]
	if len(pcs) == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for more := true; more; {
		var f runtime.Frame
		f, more = frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
	}
	return sb.String()
}
