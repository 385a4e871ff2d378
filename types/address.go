package types

import (
	"encoding/hex"
	"fmt"
)

// AddressLen is the length of Address in bytes.
const AddressLen = 33

// Address names contracts and the actors calling them.
type Address [AddressLen]byte

// EmptyAddress is the zero address. Transfers from it mint new balance.
var EmptyAddress = Address{}

// AddressFromBytes copies b into an Address. b must be exactly AddressLen bytes long.
func AddressFromBytes(b []byte) (Address, error) {
	var addr Address
	if len(b) != AddressLen {
		return addr, fmt.Errorf("invalid address length: expected %d, got %d", AddressLen, len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

// ParseAddress decodes a hex encoded address, as produced by Address.String.
func ParseAddress(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("cannot decode address %q: %w", s, err)
	}
	return AddressFromBytes(b)
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// ContractIDLen is the length of generated contract IDs.
const ContractIDLen = 32

// ContractID identifies a stored contract blob.
type ContractID []byte

func (id ContractID) String() string {
	return hex.EncodeToString(id)
}
