package types

import (
	"fmt"
	"strings"
)

// Error strings produced by the C accessor. They are part of the ABI and must not change.
const (
	MsgInvalidArguments  = "invalid arguments"
	MsgNullCallback      = "null callback"
	MsgAllocFailedPrefix = "failed to allocate memory for "

	// backendPrefix marks backend messages that would otherwise read as accessor errors.
	backendPrefix = "state backend: "
)

var (
	_ error = InvalidArgument{}
	_ error = AllocationFailure{}
	_ error = UnboundCallback{}
	_ error = BackendFailure{}
)

// InvalidArgument is returned for malformed input that was rejected before
// reaching any callback, e.g. a nil key with a non-zero length.
type InvalidArgument struct {
	Reason string `json:"reason,omitempty"`
}

func (e InvalidArgument) Error() string {
	if e.Reason == "" {
		return MsgInvalidArguments
	}
	return fmt.Sprintf("%s: %s", MsgInvalidArguments, e.Reason)
}

// AllocationFailure is returned when a private copy of a buffer could not be made.
// Target names the buffer ("key" or "value").
type AllocationFailure struct {
	Target string `json:"target"`
}

func (e AllocationFailure) Error() string {
	return MsgAllocFailedPrefix + e.Target
}

// UnboundCallback is returned when the operation's callback was never registered
// on the state handle.
type UnboundCallback struct{}

func (UnboundCallback) Error() string {
	return MsgNullCallback
}

// BackendFailure carries an error reported by the backing callback, verbatim.
type BackendFailure struct {
	Msg string `json:"msg"`
}

func (e BackendFailure) Error() string {
	return e.Msg
}

// ParseStateError turns an error string received from the boundary into one of
// the typed errors above. Unknown messages are treated as backend failures and kept as is.
// Classification is by message only, so a backend must render its errors with
// BackendMessage to keep them from reading as accessor errors.
func ParseStateError(msg string) error {
	switch {
	case msg == MsgInvalidArguments:
		return InvalidArgument{}
	case msg == MsgNullCallback:
		return UnboundCallback{}
	case strings.HasPrefix(msg, MsgAllocFailedPrefix):
		return AllocationFailure{Target: strings.TrimPrefix(msg, MsgAllocFailedPrefix)}
	default:
		return BackendFailure{Msg: msg}
	}
}

// BackendMessage renders a backend error for the boundary. A message that
// ParseStateError would classify as an accessor error gets a prefix, so it
// reads back as a BackendFailure.
func BackendMessage(err error) string {
	msg := err.Error()
	if _, ok := ParseStateError(msg).(BackendFailure); !ok {
		return backendPrefix + msg
	}
	return msg
}
