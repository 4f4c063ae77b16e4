package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/rpcclient"
)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error parsing command-line arguments: %s", err))
	}

	if cfg.ListCommands {
		printCommands()
		return
	}

	if cfg.Verbose {
		enableRPCLogging()
	}

	endpoint, err := cfg.netParams.NormalizeRPCServerAddress(cfg.RPCServer)
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error parsing RPC server address: %s", err))
	}
	client, err := rpcclient.New(&rpcclient.Config{
		Endpoint:       endpoint,
		RequestTimeout: time.Duration(cfg.Timeout) * time.Second,
	})
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error creating the RPC client: %s", err))
	}

	params, err := parseParameters(cfg)
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error parsing command parameters: %s", err))
	}

	result, err := client.Call(cfg.CommandAndParameters[0], params...)
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error posting the request to the RPC server: %s", err))
	}

	indented := &bytes.Buffer{}
	err = json.Indent(indented, result, "", "  ")
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error formatting the response: %s", err))
	}
	fmt.Println(indented)
}

// parseParameters turns the command-line form of the parameters into the
// values the request will carry. Each positional parameter is read as a
// JSON value, with bare words falling back to plain strings.
func parseParameters(cfg *configFlags) ([]interface{}, error) {
	if cfg.ParamsJSON != "" {
		var params []interface{}
		err := json.Unmarshal([]byte(cfg.ParamsJSON), &params)
		if err != nil {
			return nil, errors.Wrap(err, "--json must hold a JSON array")
		}
		return params, nil
	}

	var params []interface{}
	for _, argument := range cfg.CommandAndParameters[1:] {
		var value interface{}
		if err := json.Unmarshal([]byte(argument), &value); err != nil {
			value = argument
		}
		params = append(params, value)
	}
	return params, nil
}

func printErrorAndExit(message string) {
	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(1)
}
