package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML configuration file",
	}
	backendFlag = cli.StringFlag{
		Name:  "backend",
		Value: "goleveldb",
		Usage: "state store (memory|memdb|goleveldb)",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the goleveldb state store",
	}
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Value: "warn",
		Usage: "log level (trace|debug|info|warn|error|disabled)",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Value: "console",
		Usage: "log format (console|json)",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
)
