package api

import (
	"context"
	"fmt"
	"os"

	"github.com/contractsim/simulator/internal/contract"
	"github.com/contractsim/simulator/internal/state"
	"github.com/contractsim/simulator/types"
)

// createContract stores the wasm module at path and binds it to a new account.
func createContract(ctx context.Context, mu types.Mutable, path string) (types.CreateContractResponse, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return types.CreateContractResponse{}, fmt.Errorf("read contract: %w", err)
	}
	if _, err := sharedInspector().Inspect(ctx, code); err != nil {
		return types.CreateContractResponse{}, err
	}

	id, err := contract.NewContractID()
	if err != nil {
		return types.CreateContractResponse{}, err
	}
	st := state.New(mu)
	if err := st.SetContractBytes(ctx, id, code); err != nil {
		return types.CreateContractResponse{}, fmt.Errorf("store contract: %w", err)
	}
	addr, err := st.NewAccountWithContract(ctx, id)
	if err != nil {
		// the code is unreachable without an account
		if rmErr := st.RemoveContractBytes(ctx, id); rmErr != nil {
			log().Warn().Err(rmErr).Str("contract_id", id.String()).Msg("failed to remove unbound contract code")
		}
		return types.CreateContractResponse{}, err
	}

	log().Info().Str("contract_id", id.String()).Str("address", addr.String()).Str("path", path).Msg("created contract")
	return types.CreateContractResponse{ContractID: id, Address: addr}, nil
}

// callContract loads the code bound to cc.Contract and hands the call to the engine.
func callContract(ctx context.Context, mu types.Mutable, cc types.CallContext) (types.CallContractResponse, error) {
	st := state.New(mu)
	id, err := st.GetAccountContract(ctx, cc.Contract)
	if err != nil {
		return types.CallContractResponse{}, err
	}
	code, err := st.GetContractBytes(ctx, id)
	if err != nil {
		return types.CallContractResponse{}, err
	}
	if code == nil {
		return types.CallContractResponse{}, fmt.Errorf("no code stored for contract %s", id)
	}

	module, err := sharedInspector().Inspect(ctx, code)
	if err != nil {
		return types.CallContractResponse{}, err
	}
	if !module.HasExport(cc.Method) {
		return types.CallContractResponse{}, fmt.Errorf("contract %s does not export %q", id, cc.Method)
	}

	e := currentEngine()
	if e == nil {
		return types.CallContractResponse{}, contract.ErrNoEngine
	}

	info := &contract.CallInfo{
		State:        st.GetContractState(cc.Contract),
		Actor:        cc.Actor,
		Contract:     cc.Contract,
		ContractID:   id,
		Code:         code,
		FunctionName: cc.Method,
		Params:       cc.Params,
		Height:       cc.Height,
		Timestamp:    cc.Timestamp,
		Fuel:         cc.MaxGas,
	}
	result, err := e.Call(ctx, info)
	log().Debug().Str("contract", cc.Contract.String()).Str("method", cc.Method).
		Uint64("fuel", info.FuelConsumed()).Err(err).Msg("contract call")
	if err != nil {
		return types.CallContractResponse{}, err
	}
	return types.CallContractResponse{Result: result, Fuel: info.FuelConsumed()}, nil
}
