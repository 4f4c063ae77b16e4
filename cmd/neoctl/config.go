package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/version"
)

var (
	defaultRPCServer        = "localhost"
	defaultTimeout   uint64 = 30
)

type configFlags struct {
	ShowVersion          bool   `short:"V" long:"version" description:"Display version information and exit"`
	RPCServer            string `short:"s" long:"rpcserver" description:"RPC server to connect to"`
	Timeout              uint64 `short:"t" long:"timeout" description:"Timeout for the request (in seconds)"`
	ParamsJSON           string `short:"j" long:"json" description:"Command parameters as a JSON array"`
	ListCommands         bool   `short:"l" long:"list-commands" description:"List all commands and exit"`
	Verbose              bool   `short:"v" long:"verbose" description:"Enable logging of RPC requests"`
	Testnet              bool   `long:"testnet" description:"Use the test network"`
	Simnet               bool   `long:"simnet" description:"Use the simulation network"`
	CommandAndParameters []string
	netParams            *netparams.Params
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{
		RPCServer: defaultRPCServer,
		Timeout:   defaultTimeout,
	}
	parser := flags.NewParser(cfg, flags.HelpFlag)
	parser.Usage = "neoctl [OPTIONS] [COMMAND] [COMMAND PARAMETERS].\n\n" +
		"Command parameters are JSON values; bare words that are not valid " +
		"JSON pass through as strings." +
		"\n\nUse `neoctl --list-commands` to get a list of all commands and their parameters"
	remainingArgs, err := parser.Parse()

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	if err != nil {
		return nil, err
	}

	if cfg.ListCommands {
		return cfg, nil
	}

	err = cfg.resolveNetwork()
	if err != nil {
		return nil, err
	}

	cfg.CommandAndParameters = remainingArgs
	if len(cfg.CommandAndParameters) == 0 {
		return nil, errors.New("a command must be specified")
	}
	if cfg.ParamsJSON != "" && len(cfg.CommandAndParameters) > 1 {
		return nil, errors.New("command parameters must come from either " +
			"--json or the command line, not both")
	}

	return cfg, nil
}

func (cfg *configFlags) resolveNetwork() error {
	cfg.netParams = &netparams.MainnetParams
	numNets := 0
	if cfg.Testnet {
		numNets++
		cfg.netParams = &netparams.TestnetParams
	}
	if cfg.Simnet {
		numNets++
		cfg.netParams = &netparams.SimnetParams
	}
	if numNets > 1 {
		return errors.New("multiple network parameters (testnet, simnet) " +
			"cannot be used together")
	}
	return nil
}
