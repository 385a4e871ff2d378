package state

import "github.com/contractsim/simulator/types"

// key prefixes of the simulator namespace
const (
	accountContractPrefix byte = 0x00
	contractBytesPrefix   byte = 0x01
	balancePrefix         byte = 0x02
	contractStatePrefix   byte = 0x03
)

func prefixed(prefix byte, parts ...[]byte) []byte {
	size := 1
	for _, p := range parts {
		size += len(p)
	}
	k := make([]byte, 1, size)
	k[0] = prefix
	for _, p := range parts {
		k = append(k, p...)
	}
	return k
}

func accountContractKey(account types.Address) []byte {
	return prefixed(accountContractPrefix, account[:])
}

func contractBytesKey(id types.ContractID) []byte {
	return prefixed(contractBytesPrefix, id)
}

func balanceKey(account types.Address) []byte {
	return prefixed(balancePrefix, account[:])
}

func contractStateKey(contract types.Address, key []byte) []byte {
	return prefixed(contractStatePrefix, contract[:], key)
}
