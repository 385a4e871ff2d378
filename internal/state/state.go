// Package state implements the simulator's view of contract state on top of
// any types.Mutable, typically a handle that crosses the FFI boundary.
package state

import (
	"context"
	"crypto/rand"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/contractsim/simulator/types"
)

var (
	// ErrEmptyKey is returned for zero-length keys.
	ErrEmptyKey = errors.New("empty key")
	// ErrInsufficientBalance is returned by TransferBalance when the sender cannot cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNoContract is returned when an account has no contract bound to it.
	ErrNoContract = errors.New("no contract bound to account")
)

// SimulatorState stores contracts, accounts and balances in a types.Mutable.
type SimulatorState struct {
	mu types.Mutable
}

var _ types.Mutable = (*SimulatorState)(nil)

// New wraps mu. SimulatorState adds no locking of its own.
func New(mu types.Mutable) *SimulatorState {
	return &SimulatorState{mu: mu}
}

// GetValue returns the raw value stored under key.
func (s *SimulatorState) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return s.mu.GetValue(ctx, key)
}

// Insert stores a raw key-value pair.
func (s *SimulatorState) Insert(ctx context.Context, key []byte, value []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	return s.mu.Insert(ctx, key, value)
}

// Remove deletes a raw key.
func (s *SimulatorState) Remove(ctx context.Context, key []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	return s.mu.Remove(ctx, key)
}

// GetContractState returns the state of the contract at address. Keys are
// namespaced by the address so contracts cannot see each other's entries.
func (s *SimulatorState) GetContractState(address types.Address) types.Mutable {
	return &ContractState{state: s, address: address}
}

// GetAccountContract returns the contract ID bound to account.
func (s *SimulatorState) GetAccountContract(ctx context.Context, account types.Address) (types.ContractID, error) {
	value, err := s.mu.GetValue(ctx, accountContractKey(account))
	if err != nil {
		return nil, errors.Wrapf(err, "read contract of account %s", account)
	}
	if value == nil {
		return nil, errors.Wrapf(ErrNoContract, "account %s", account)
	}
	if len(value) != types.ContractIDLen {
		return nil, errors.Errorf("invalid contract ID length %d for account %s", len(value), account)
	}
	return types.ContractID(value), nil
}

// SetAccountContract binds contractID to account.
func (s *SimulatorState) SetAccountContract(ctx context.Context, account types.Address, contractID types.ContractID) error {
	if len(contractID) != types.ContractIDLen {
		return errors.Errorf("invalid contract ID length %d", len(contractID))
	}
	return s.mu.Insert(ctx, accountContractKey(account), contractID)
}

// GetContractBytes returns the code stored for contractID, or nil if there is none.
func (s *SimulatorState) GetContractBytes(ctx context.Context, contractID types.ContractID) ([]byte, error) {
	code, err := s.mu.GetValue(ctx, contractBytesKey(contractID))
	if err != nil {
		return nil, errors.Wrapf(err, "read contract %s", contractID)
	}
	return code, nil
}

// SetContractBytes stores the code of a contract.
func (s *SimulatorState) SetContractBytes(ctx context.Context, contractID types.ContractID, code []byte) error {
	if len(code) == 0 {
		return errors.New("empty contract code")
	}
	return s.mu.Insert(ctx, contractBytesKey(contractID), code)
}

// RemoveContractBytes deletes the code of a contract. Accounts bound to it are left as is.
func (s *SimulatorState) RemoveContractBytes(ctx context.Context, contractID types.ContractID) error {
	return s.mu.Remove(ctx, contractBytesKey(contractID))
}

// NewAccountWithContract creates a random account that represents an instance of contractID.
func (s *SimulatorState) NewAccountWithContract(ctx context.Context, contractID types.ContractID) (types.Address, error) {
	var address types.Address
	if _, err := rand.Read(address[:]); err != nil {
		return types.Address{}, errors.Wrap(err, "generate address")
	}
	if err := s.SetAccountContract(ctx, address, contractID); err != nil {
		return types.Address{}, errors.Wrap(err, "set account contract")
	}
	return address, nil
}

// GetBalance returns the balance of addr. Unknown accounts have a zero balance.
func (s *SimulatorState) GetBalance(ctx context.Context, addr types.Address) (uint64, error) {
	value, err := s.mu.GetValue(ctx, balanceKey(addr))
	if err != nil {
		return 0, errors.Wrapf(err, "read balance of %s", addr)
	}
	if value == nil {
		return 0, nil
	}
	if len(value) != 8 {
		return 0, errors.Errorf("corrupt balance of %s: %d bytes", addr, len(value))
	}
	return binary.BigEndian.Uint64(value), nil
}

// SetBalance overwrites the balance of addr.
func (s *SimulatorState) SetBalance(ctx context.Context, addr types.Address, amount uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], amount)
	return s.mu.Insert(ctx, balanceKey(addr), buf[:])
}

// TransferBalance moves amount from one account to another. A transfer from
// types.EmptyAddress mints amount.
func (s *SimulatorState) TransferBalance(ctx context.Context, from, to types.Address, amount uint64) error {
	if from != types.EmptyAddress {
		fromBalance, err := s.GetBalance(ctx, from)
		if err != nil {
			return err
		}
		if fromBalance < amount {
			return errors.Wrapf(ErrInsufficientBalance, "%s has %d, needs %d", from, fromBalance, amount)
		}
		if err := s.SetBalance(ctx, from, fromBalance-amount); err != nil {
			return err
		}
	}

	toBalance, err := s.GetBalance(ctx, to)
	if err != nil {
		return err
	}
	if toBalance+amount < toBalance {
		return errors.Errorf("balance overflow for %s", to)
	}
	return s.SetBalance(ctx, to, toBalance+amount)
}

// ContractState is the state of one contract.
type ContractState struct {
	state   *SimulatorState
	address types.Address
}

var _ types.Mutable = (*ContractState)(nil)

// GetValue returns the value associated with key for this contract.
func (c *ContractState) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return c.state.mu.GetValue(ctx, contractStateKey(c.address, key))
}

// Insert stores a key-value pair for this contract.
func (c *ContractState) Insert(ctx context.Context, key []byte, value []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	return c.state.mu.Insert(ctx, contractStateKey(c.address, key), value)
}

// Remove deletes key from this contract's state.
func (c *ContractState) Remove(ctx context.Context, key []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	return c.state.mu.Remove(ctx, contractStateKey(c.address, key))
}
