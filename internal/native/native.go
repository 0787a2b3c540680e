// Package native implements the failure-reporting boundary of the native
// routine library.
//
// The boundary follows the toolkit's "return" error action: the first
// signalled condition wins, every later message or signal is ignored until
// Reset, and routines poll Failed to bail out early. A module trace of
// entered routines is kept so that a signal can record where it happened.
//
// All routine calls are serialized through one process-wide lock (Lock and
// Unlock). Callers hold it for the whole of a public call, including every
// nested native call made on the way.
package native

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// MaxTraceDepth bounds the module trace. Deeper frames are counted but not
// named, as in the toolkit.
const MaxTraceDepth = 100

// ErrFailed is the sentinel returned by any call that left the library in
// the failed state. The message is read with Getmsg or Take.
var ErrFailed = errors.New("native: routine signalled an error")

// MsgKind selects which message Getmsg returns.
type MsgKind int

const (
	Short MsgKind = iota
	Long
	Explain
	Traceback
)

var (
	callMu sync.Mutex

	mu        sync.Mutex
	frames    []string
	overflow  int
	failed    bool
	pending   string
	shortMsg  string
	longMsg   string
	traceback string
)

// Lock acquires the global call lock.
func Lock() { callMu.Lock() }

// Unlock releases the global call lock.
func Unlock() { callMu.Unlock() }

// Chkin pushes a routine name onto the module trace.
func Chkin(name string) {
	mu.Lock()
	defer mu.Unlock()
	if len(frames) >= MaxTraceDepth {
		overflow++
		return
	}
	frames = append(frames, name)
}

// Chkout pops the module trace. The name is accepted for symmetry with Chkin;
// the top frame is popped regardless.
func Chkout(name string) {
	mu.Lock()
	defer mu.Unlock()
	if overflow > 0 {
		overflow--
		return
	}
	if len(frames) > 0 {
		frames = frames[:len(frames)-1]
	}
}

// Trcdep returns the current depth of the module trace.
func Trcdep() int {
	mu.Lock()
	defer mu.Unlock()
	return len(frames) + overflow
}

// Trcnam returns the name at the given trace index (0 is outermost).
func Trcnam(index int) string {
	mu.Lock()
	defer mu.Unlock()
	if index < 0 || index >= len(frames) {
		return ""
	}
	return frames[index]
}

// Qcktrc renders the current module trace, outermost first.
func Qcktrc() string {
	mu.Lock()
	defer mu.Unlock()
	return qcktrc()
}

func qcktrc() string {
	return strings.Join(frames, " --> ")
}

// Setmsg sets the long message of the next signal. Ignored while failed.
func Setmsg(msg string) {
	mu.Lock()
	defer mu.Unlock()
	if failed {
		return
	}
	pending = msg
}

// Sigerr signals a short error condition such as "SPICE(INVALIDARRAYSHAPE)".
// Ignored while failed, so the first message is never overwritten.
func Sigerr(short string) {
	mu.Lock()
	defer mu.Unlock()
	if failed {
		return
	}
	failed = true
	shortMsg = short
	longMsg = pending
	pending = ""
	traceback = qcktrc()
}

// Failed reports whether an error has been signalled since the last Reset.
func Failed() bool {
	mu.Lock()
	defer mu.Unlock()
	return failed
}

// Reset clears the failed state and every message. The trace is untouched.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	failed = false
	pending = ""
	shortMsg = ""
	longMsg = ""
	traceback = ""
}

// Getmsg returns the requested message of the current error.
func Getmsg(kind MsgKind) string {
	mu.Lock()
	defer mu.Unlock()
	switch kind {
	case Short:
		return shortMsg
	case Long:
		return longMsg
	case Explain:
		return explanations[shortMsg]
	case Traceback:
		return traceback
	default:
		return ""
	}
}

// Signal is the usual enter/message/signal/leave sequence in one call.
func Signal(where, short, format string, args ...any) {
	Chkin(where)
	Setmsg(fmt.Sprintf(format, args...))
	Sigerr(short)
	Chkout(where)
}

// HandleMallocFailure signals an allocation failure inside the named routine.
func HandleMallocFailure(where string) {
	Signal(where, "SPICE(MALLOCFAILURE)", "Failed to allocate memory")
}

// Error is a signalled condition converted into a Go error.
type Error struct {
	Short     string
	Long      string
	Explain   string
	Traceback string
}

func (e *Error) Error() string {
	if e.Long == "" {
		return e.Short
	}
	return e.Short + " -- " + e.Long
}

// Is makes errors.Is(err, ErrFailed) true for converted errors.
func (e *Error) Is(target error) bool {
	return target == ErrFailed
}

// Take converts the pending failure into an *Error and resets the library.
// Returns nil when nothing has been signalled.
func Take() error {
	mu.Lock()
	defer mu.Unlock()
	if !failed {
		return nil
	}
	err := &Error{
		Short:     shortMsg,
		Long:      longMsg,
		Explain:   explanations[shortMsg],
		Traceback: traceback,
	}
	failed = false
	pending = ""
	shortMsg = ""
	longMsg = ""
	traceback = ""
	return err
}

// IsCondition reports whether err carries the given short condition.
func IsCondition(err error, short string) bool {
	var nerr *Error
	if errors.As(err, &nerr) {
		return nerr.Short == short
	}
	return false
}

var explanations = map[string]string{
	"SPICE(INVALIDARRAYSHAPE)":  "An input array does not have the shape the routine requires.",
	"SPICE(ARRAYSHAPEMISMATCH)": "Input arrays have shapes that cannot be broadcast together.",
	"SPICE(MALLOCFAILURE)":      "Memory for an output buffer could not be allocated.",
	"SPICE(BODYNAMENOTFOUND)":   "The body name is not known.",
	"SPICE(BODYIDNOTFOUND)":     "The body ID code is not known.",
	"SPICE(SINGULARMATRIX)":     "The matrix is singular.",
	"SPICE(UNITSNOTREC)":        "A unit name was not recognized.",
	"SPICE(INCOMPATIBLEUNITS)":  "The units measure different quantities.",
	"SPICE(VALUEOUTOFRANGE)":    "An input value is outside its allowed range.",
}
