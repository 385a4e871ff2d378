//go:build cgo

package api

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/contractsim/simulator/types"
)

func TestBytesPtr(t *testing.T) {
	require.Nil(t, bytesPtr(nil))
	require.Nil(t, bytesPtr([]byte{}))

	data := []byte{0xaa, 0xbb, 0x64}
	require.Equal(t, unsafe.Pointer(&data[0]), unsafe.Pointer(bytesPtr(data)))
}

func TestCBytesRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		expNull bool
	}{
		{"non-empty", []byte{0xaa, 0xbb, 0x64}, false},
		{"empty", []byte{}, true},
		{"nil", nil, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := newCBytes(tc.input)
			require.Equal(t, tc.expNull, b.data == nil)
			require.Equal(t, cusize(len(tc.input)), b.length)

			copied := copyAndFreeBytes(b)
			if tc.expNull {
				require.Nil(t, copied)
			} else {
				require.Equal(t, tc.input, copied)
			}
		})
	}
}

func TestNewCBytesCopies(t *testing.T) {
	original := []byte{0x01, 0x02, 0x03}
	b := newCBytes(original)
	original[0] = 0xff

	require.Equal(t, []byte{0x01, 0x02, 0x03}, copyAndFreeBytes(b))
}

func TestTakeError(t *testing.T) {
	require.NoError(t, takeError(nil))

	tests := []struct {
		msg string
		exp error
	}{
		{"invalid arguments", types.InvalidArgument{}},
		{"null callback", types.UnboundCallback{}},
		{"failed to allocate memory for key", types.AllocationFailure{Target: "key"}},
		{"failed to allocate memory for value", types.AllocationFailure{Target: "value"}},
		{"disk on fire", types.BackendFailure{Msg: "disk on fire"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.msg, func(t *testing.T) {
			require.Equal(t, tc.exp, takeError(newCError(types.BackendFailure{Msg: tc.msg})))
		})
	}
}

func TestAddressConversion(t *testing.T) {
	var addr types.Address
	for i := range addr {
		addr[i] = byte(i + 1)
	}
	c := cAddress(addr)
	require.Equal(t, addr, readAddress(&c))
	require.Equal(t, types.EmptyAddress, func() types.Address {
		empty := cAddress(types.EmptyAddress)
		return readAddress(&empty)
	}())
}

func TestABILayout(t *testing.T) {
	layout := currentABILayout()
	word := unsafe.Sizeof(uintptr(0))

	require.Equal(t, uintptr(types.AddressLen), layout.AddressSize)
	require.Equal(t, 2*word, layout.BytesSize)
	require.Equal(t, 3*word, layout.BytesWithErrSize)
	require.Equal(t, 4*word, layout.MutableSize)

	if word != 8 {
		t.Skip("offsets below are for 64-bit targets")
	}
	// two addresses, padded to the alignment of uint64_t
	require.Equal(t, uintptr(72), layout.CallContextHeight)
	require.Equal(t, uintptr(80), layout.CallContextTimestamp)
	require.Equal(t, uintptr(88), layout.CallContextMethod)
	require.Equal(t, uintptr(96), layout.CallContextParams)
	require.Equal(t, uintptr(112), layout.CallContextMaxGas)
	require.Equal(t, uintptr(120), layout.CallContextSize)

	require.Equal(t, uintptr(24), layout.CallResponseFuel)
	require.Equal(t, uintptr(24), layout.CreateResponseAddress)
}
