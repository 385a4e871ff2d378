package contract

import (
	"crypto/rand"

	"github.com/pkg/errors"

	"github.com/contractsim/simulator/types"
)

// NewContractID returns a random contract ID.
func NewContractID() (types.ContractID, error) {
	id := make(types.ContractID, types.ContractIDLen)
	if _, err := rand.Read(id); err != nil {
		return nil, errors.Wrap(err, "generate contract ID")
	}
	return id, nil
}
