package rchan

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned by Send, Receive, and Select when the deadline
// elapses before a commit. Compare with errors.Is, not equality, since
// it may be wrapped.
var ErrTimeout = errors.New("rchan: timeout")

// ErrClosed is returned when a Send, Receive, or Select candidate
// resolves against a closed channel. Which identifies the channel that
// was closed, so a select loop can prune it from future candidates —
// the usual fan-in-until-all-closed idiom.
type ErrClosed struct {
	Which *Chan
}

func (e *ErrClosed) Error() string {
	return fmt.Sprintf("rchan: channel %d is closed", e.Which.id)
}

// Is allows errors.Is(err, &ErrClosed{}) style checks that ignore Which.
func (e *ErrClosed) Is(target error) bool {
	_, ok := target.(*ErrClosed)
	return ok
}

// ErrDoubleClose indicates Close was called on an already-closed
// channel. This is a programmer error, not a recoverable outcome: the
// package logs it at Error level and panics rather than returning it
// as an ordinary error.
var ErrDoubleClose = errors.New("rchan: channel double-closed")

// errInvariant is raised when internal bookkeeping is inconsistent
// (e.g. a group's committedBy points at a wish other than the one a
// caller is trying to commit). It should never surface in correct use
// of the package; it always panics.
type errInvariant struct {
	msg string
}

func (e *errInvariant) Error() string {
	return "rchan: invariant violation: " + e.msg
}
