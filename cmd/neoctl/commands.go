package main

import (
	"fmt"
	"strings"
)

// commandDescription names one json-rpc command and the positional
// parameters it takes, in order.
type commandDescription struct {
	name       string
	parameters []string
}

var commandDescriptions = []*commandDescription{
	{name: "getbestblockhash"},
	{name: "getblock", parameters: []string{"hash-or-index", "verbose"}},
	{name: "getblockcount"},
	{name: "getblockhash", parameters: []string{"index"}},
	{name: "getblockheader", parameters: []string{"hash-or-index", "verbose"}},
	{name: "getcommittee"},
	{name: "getconnectioncount"},
	{name: "getcontractstate", parameters: []string{"hash-or-id"}},
	{name: "getnativecontracts"},
	{name: "getpeers"},
	{name: "getrawmempool"},
	{name: "getrawtransaction", parameters: []string{"txid", "verbose"}},
	{name: "getstorage", parameters: []string{"hash-or-id", "key-base64"}},
	{name: "gettransactionheight", parameters: []string{"txid"}},
	{name: "getversion"},

	{name: "invokefunction", parameters: []string{"hash", "operation",
		"params", "signers"}},
	{name: "invokescript", parameters: []string{"script-base64", "signers"}},
	{name: "traverseiterator", parameters: []string{"session-id",
		"iterator-id", "count"}},
	{name: "terminatesession", parameters: []string{"session-id"}},

	{name: "calculatenetworkfee", parameters: []string{"transaction-base64"}},
	{name: "sendrawtransaction", parameters: []string{"transaction-base64"}},
	{name: "submitblock", parameters: []string{"block-base64"}},

	{name: "getapplicationlog", parameters: []string{"txid"}},
	{name: "getnep17balances", parameters: []string{"address"}},
	{name: "getnep17transfers", parameters: []string{"address",
		"start-time", "end-time"}},
	{name: "getunclaimedgas", parameters: []string{"address"}},
	{name: "validateaddress", parameters: []string{"address"}},
}

func (cd *commandDescription) help() string {
	sb := &strings.Builder{}
	sb.WriteString(cd.name)
	for _, parameter := range cd.parameters {
		_, _ = fmt.Fprintf(sb, " [%s]", parameter)
	}
	return sb.String()
}

func printCommands() {
	fmt.Println("The following commands can be issued to the RPC server:")
	for _, command := range commandDescriptions {
		fmt.Printf("\t%s\n", command.help())
	}
}
