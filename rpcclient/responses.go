// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"encoding/json"

	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/util"
)

// GetVersionResult models the data from the getversion command.
type GetVersionResult struct {
	TCPPort   uint16           `json:"tcpport"`
	WSPort    uint16           `json:"wsport,omitempty"`
	Nonce     uint32           `json:"nonce"`
	UserAgent string           `json:"useragent"`
	Protocol  ProtocolSettings `json:"protocol"`
}

// ProtocolSettings models the protocol section of the getversion result.
type ProtocolSettings struct {
	AddressVersion              uint8           `json:"addressversion"`
	Network                     netparams.Magic `json:"network"`
	ValidatorsCount             uint8           `json:"validatorscount,omitempty"`
	MillisecondsPerBlock        uint32          `json:"msperblock"`
	MaxTraceableBlocks          uint32          `json:"maxtraceableblocks"`
	MaxValidUntilBlockIncrement uint32          `json:"maxvaliduntilblockincrement"`
	MaxTransactionsPerBlock     uint32          `json:"maxtransactionsperblock"`
	MemoryPoolMaxTransactions   uint32          `json:"memorypoolmaxtransactions"`
	InitialGasDistribution      int64           `json:"initialgasdistribution"`
}

// InvocationResult models the outcome of an invokescript or
// invokefunction command.
type InvocationResult struct {
	Script      []byte      `json:"script"`
	State       string      `json:"state"`
	GasConsumed json.Number `json:"gasconsumed"`
	Exception   string      `json:"exception,omitempty"`
	Stack       []StackItem `json:"stack"`
	Session     string      `json:"session,omitempty"`
}

// SendRawTransactionResult models the data from the sendrawtransaction
// command.
type SendRawTransactionResult struct {
	Hash util.Uint256 `json:"hash"`
}

// CalculateNetworkFeeResult models the data from the
// calculatenetworkfee command.
type CalculateNetworkFeeResult struct {
	NetworkFee json.Number `json:"networkfee"`
}

// ValidateAddressResult models the data from the validateaddress
// command.
type ValidateAddressResult struct {
	Address string `json:"address"`
	IsValid bool   `json:"isvalid"`
}

// GetUnclaimedGasResult models the data from the getunclaimedgas
// command.
type GetUnclaimedGasResult struct {
	Address   string      `json:"address"`
	Unclaimed json.Number `json:"unclaimed"`
}

// NEP17Balances models the data from the getnep17balances command.
type NEP17Balances struct {
	Address  string         `json:"address"`
	Balances []NEP17Balance `json:"balance"`
}

// NEP17Balance is a single token position within a getnep17balances
// result.
type NEP17Balance struct {
	AssetHash        util.Uint160 `json:"assethash"`
	Amount           json.Number  `json:"amount"`
	LastUpdatedBlock uint32       `json:"lastupdatedblock"`
}

// ContractStateResult models the data from the getcontractstate command.
type ContractStateResult struct {
	ID            int32            `json:"id"`
	UpdateCounter uint16           `json:"updatecounter"`
	Hash          util.Uint160     `json:"hash"`
	NEF           ContractNEF      `json:"nef"`
	Manifest      ContractManifest `json:"manifest"`
}

// ContractNEF is the executable section of a contract state.
type ContractNEF struct {
	Magic    uint32 `json:"magic"`
	Compiler string `json:"compiler"`
	Source   string `json:"source,omitempty"`
	Script   []byte `json:"script"`
	Checksum uint32 `json:"checksum"`
}

// ContractManifest is the manifest section of a contract state. Only
// the fields this client consumes are modeled; the node sends more.
type ContractManifest struct {
	Name               string   `json:"name"`
	SupportedStandards []string `json:"supportedstandards"`
}

// ApplicationLogResult models the data from the getapplicationlog
// command.
type ApplicationLogResult struct {
	TxID       util.Uint256 `json:"txid"`
	Executions []Execution  `json:"executions"`
}

// Execution is a single trigger execution within an application log.
type Execution struct {
	Trigger       string         `json:"trigger"`
	VMState       string         `json:"vmstate"`
	Exception     string         `json:"exception,omitempty"`
	GasConsumed   json.Number    `json:"gasconsumed"`
	Stack         []StackItem    `json:"stack"`
	Notifications []Notification `json:"notifications"`
}

// Notification is a single event raised by a contract during execution.
type Notification struct {
	Contract  util.Uint160 `json:"contract"`
	EventName string       `json:"eventname"`
	State     StackItem    `json:"state"`
}
