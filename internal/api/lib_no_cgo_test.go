//go:build !cgo

package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contractsim/simulator/types"
)

func TestMutableWithoutCgo(t *testing.T) {
	m := NewMutable(nil)
	defer m.Release()

	_, err := m.GetValue(context.Background(), []byte("k"))
	require.ErrorIs(t, err, errNoCgo)
	require.ErrorIs(t, m.Insert(context.Background(), []byte("k"), []byte("v")), errNoCgo)
	_, err = m.HostCallContract(types.CallContext{})
	require.ErrorIs(t, err, errNoCgo)
	require.Zero(t, OutstandingCopies())
}
