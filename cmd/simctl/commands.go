package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	simulator "github.com/contractsim/simulator"
	"github.com/contractsim/simulator/internal/contract"
	"github.com/contractsim/simulator/types"
)

// parseBytes reads 0x-prefixed arguments as hex and anything else as text.
func parseBytes(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") {
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, errors.Wrapf(err, "decode %q", s)
		}
		return b, nil
	}
	return []byte(s), nil
}

func requireArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() != n {
		return errors.Errorf("%s expects %d argument(s): %s", ctx.Command.Name, n, ctx.Command.ArgsUsage)
	}
	return nil
}

func getAction(ctx *cli.Context, sim *simulator.Simulator) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	key, err := parseBytes(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	value, err := sim.Get(context.Background(), key)
	if err != nil {
		return errors.Wrap(err, "get")
	}
	if value == nil {
		return errors.Errorf("key %s not found", ctx.Args().Get(0))
	}
	fmt.Fprintf(ctx.App.Writer, "0x%x\n", value)
	return nil
}

func putAction(ctx *cli.Context, sim *simulator.Simulator) error {
	if err := requireArgs(ctx, 2); err != nil {
		return err
	}
	key, err := parseBytes(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	value, err := parseBytes(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	return errors.Wrap(sim.Insert(context.Background(), key, value), "put")
}

func deleteAction(ctx *cli.Context, sim *simulator.Simulator) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	key, err := parseBytes(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	return errors.Wrap(sim.Remove(context.Background(), key), "delete")
}

func createContractAction(ctx *cli.Context, sim *simulator.Simulator) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	resp, err := sim.CreateContract(ctx.Args().Get(0))
	if err != nil {
		return errors.Wrap(err, "create contract")
	}
	fmt.Fprintf(ctx.App.Writer, "contract id: %s\naddress:     %s\n", resp.ContractID, resp.Address)
	return nil
}

func inspectAction(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	code, err := os.ReadFile(ctx.Args().Get(0))
	if err != nil {
		return errors.Wrap(err, "read module")
	}

	bg := context.Background()
	inspector := contract.NewInspector(bg)
	defer inspector.Close(bg)

	module, err := inspector.Inspect(bg, code)
	if err != nil {
		return err
	}
	for _, name := range module.Exports {
		fmt.Fprintln(ctx.App.Writer, name)
	}
	return nil
}

func balanceAction(ctx *cli.Context, sim *simulator.Simulator) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	addr, err := types.ParseAddress(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	balance, err := sim.Balance(context.Background(), addr)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, balance)
	return nil
}

func setBalanceAction(ctx *cli.Context, sim *simulator.Simulator) error {
	if err := requireArgs(ctx, 2); err != nil {
		return err
	}
	addr, err := types.ParseAddress(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	amount, err := strconv.ParseUint(ctx.Args().Get(1), 10, 64)
	if err != nil {
		return errors.Wrap(err, "parse amount")
	}
	return sim.SetBalance(context.Background(), addr, amount)
}

func dumpAction(ctx *cli.Context, sim *simulator.Simulator) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	snap, err := sim.Snapshot()
	if err != nil {
		return errors.Wrap(err, "snapshot")
	}
	if err := os.WriteFile(ctx.Args().Get(0), snap, 0o600); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	return nil
}

func loadAction(ctx *cli.Context, sim *simulator.Simulator) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	snap, err := os.ReadFile(ctx.Args().Get(0))
	if err != nil {
		return errors.Wrap(err, "read snapshot")
	}
	n, err := sim.Restore(snap)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "restored %d entries\n", n)
	return nil
}
