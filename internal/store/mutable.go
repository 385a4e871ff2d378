package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/contractsim/simulator/types"
)

// ErrEmptyKey is reported by the Mutable adapter for zero-length keys.
var ErrEmptyKey = errors.New("empty key")

type kvMutable struct {
	kv KV
}

var _ types.Mutable = kvMutable{}

// NewMutable exposes kv as a types.Mutable. Missing keys read as nil.
func NewMutable(kv KV) types.Mutable {
	return kvMutable{kv: kv}
}

func (m kvMutable) GetValue(_ context.Context, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return m.kv.Get(key)
}

func (m kvMutable) Insert(_ context.Context, key []byte, value []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	return m.kv.Set(key, value)
}

func (m kvMutable) Remove(_ context.Context, key []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	return m.kv.Delete(key)
}
