package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStateError(t *testing.T) {
	cases := map[string]struct {
		msg  string
		want error
	}{
		"invalid arguments": {msg: "invalid arguments", want: InvalidArgument{}},
		"null callback":     {msg: "null callback", want: UnboundCallback{}},
		"key allocation":    {msg: "failed to allocate memory for key", want: AllocationFailure{Target: "key"}},
		"value allocation":  {msg: "failed to allocate memory for value", want: AllocationFailure{Target: "value"}},
		"backend":           {msg: "empty key", want: BackendFailure{Msg: "empty key"}},
		"backend lookalike": {msg: "invalid arguments!", want: BackendFailure{Msg: "invalid arguments!"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := ParseStateError(tc.msg)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.msg, got.Error())
		})
	}
}

func TestStateErrorsAs(t *testing.T) {
	err := fmt.Errorf("get: %w", ParseStateError("disk on fire"))

	var backend BackendFailure
	require.True(t, errors.As(err, &backend))
	require.Equal(t, "disk on fire", backend.Msg)

	var unbound UnboundCallback
	require.False(t, errors.As(err, &unbound))

	require.Equal(t, "invalid arguments: nil key", InvalidArgument{Reason: "nil key"}.Error())
}

func TestBackendMessage(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"plain":             {err: errors.New("disk on fire"), want: "disk on fire"},
		"invalid arguments": {err: errors.New("invalid arguments"), want: "state backend: invalid arguments"},
		"null callback":     {err: errors.New("null callback"), want: "state backend: null callback"},
		"allocation":        {err: errors.New("failed to allocate memory for page"), want: "state backend: failed to allocate memory for page"},
		"typed":             {err: UnboundCallback{}, want: "state backend: null callback"},
		"with reason":       {err: InvalidArgument{Reason: "bad"}, want: "invalid arguments: bad"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			msg := BackendMessage(tc.err)
			require.Equal(t, tc.want, msg)
			require.Equal(t, BackendFailure{Msg: tc.want}, ParseStateError(msg))
		})
	}
}
