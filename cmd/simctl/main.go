// simctl drives a persistent simulator state through the C state accessor.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	simulator "github.com/contractsim/simulator"
	"github.com/contractsim/simulator/internal/api"
	"github.com/contractsim/simulator/internal/config"
	"github.com/contractsim/simulator/internal/store"
)

var (
	version   string
	gitCommit string
)

func fullVersion() string {
	if version == "" {
		return api.Version() + "-dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".simulator")
	}
	return ".simulator"
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "simctl"
	app.Usage = "Inspect and modify contract simulator state"
	app.Version = fullVersion()
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		configFlag,
		backendFlag,
		dataDirFlag,
		verbosityFlag,
		logFormatFlag,
		enableMetricsFlag,
		metricsAddrFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:      "get",
			Usage:     "print the raw value stored under a key",
			ArgsUsage: "<key>",
			Action:    withSimulator(getAction),
		},
		{
			Name:      "put",
			Usage:     "store a raw key-value pair",
			ArgsUsage: "<key> <value>",
			Action:    withSimulator(putAction),
		},
		{
			Name:      "delete",
			Usage:     "remove a raw key",
			ArgsUsage: "<key>",
			Action:    withSimulator(deleteAction),
		},
		{
			Name:      "create-contract",
			Usage:     "store a wasm module and bind it to a new account",
			ArgsUsage: "<path>",
			Action:    withSimulator(createContractAction),
		},
		{
			Name:      "inspect",
			Usage:     "list the functions a wasm module exports",
			ArgsUsage: "<path>",
			Action:    inspectAction,
		},
		{
			Name:      "balance",
			Usage:     "print the balance of an account",
			ArgsUsage: "<address>",
			Action:    withSimulator(balanceAction),
		},
		{
			Name:      "set-balance",
			Usage:     "overwrite the balance of an account",
			ArgsUsage: "<address> <amount>",
			Action:    withSimulator(setBalanceAction),
		},
		{
			Name:      "dump",
			Usage:     "write a msgpack snapshot of the whole state",
			ArgsUsage: "<file>",
			Action:    withSimulator(dumpAction),
		},
		{
			Name:      "load",
			Usage:     "restore a snapshot written by dump",
			ArgsUsage: "<file>",
			Action:    withSimulator(loadAction),
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config if given and applies the flags that were set on top.
// Without a file the flag defaults apply.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	path := ctx.GlobalString(configFlag.Name)
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	override := func(name string) bool { return path == "" || ctx.GlobalIsSet(name) }
	if override(backendFlag.Name) {
		cfg.Backend = store.Backend(ctx.GlobalString(backendFlag.Name))
	}
	if override(dataDirFlag.Name) {
		cfg.DataDir = ctx.GlobalString(dataDirFlag.Name)
	}
	if override(verbosityFlag.Name) {
		cfg.Log.Level = ctx.GlobalString(verbosityFlag.Name)
	}
	if override(logFormatFlag.Name) {
		cfg.Log.Format = ctx.GlobalString(logFormatFlag.Name)
	}
	if ctx.GlobalIsSet(enableMetricsFlag.Name) {
		cfg.Metrics.Enabled = ctx.GlobalBool(enableMetricsFlag.Name)
	}
	if override(metricsAddrFlag.Name) {
		cfg.Metrics.Addr = ctx.GlobalString(metricsAddrFlag.Name)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// withSimulator opens the configured simulator around a command.
func withSimulator(action func(*cli.Context, *simulator.Simulator) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		if cfg.Backend == store.BackendGoLevelDB {
			if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
				return errors.Wrap(err, "create data dir")
			}
		}

		sim, err := simulator.New(cfg)
		if err != nil {
			return err
		}
		defer sim.Close()

		if cfg.Metrics.Enabled {
			url, closeFunc, err := startMetricsServer(cfg.Metrics.Addr)
			if err != nil {
				return err
			}
			defer closeFunc()
			fmt.Fprintf(ctx.App.ErrWriter, "metrics available at %s\n", url)
		}
		return action(ctx, sim)
	}
}
