// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nep17 wraps NEP-17 token contracts behind typed read calls
// and a transfer script builder.
package nep17

import (
	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/contract"
	"github.com/neonetwork/neosdk/rpcclient"
	"github.com/neonetwork/neosdk/transaction"
	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
)

// Invoker runs test invocations against a node.  *rpcclient.Client
// satisfies it.
type Invoker interface {
	InvokeFunction(contractHash util.Uint160, operation string,
		args []contract.Parameter,
		signers []transaction.Signer) (*rpcclient.InvocationResult, error)
}

// Token is a typed view of one NEP-17 token contract.  Reads go through
// the invoker; nothing a Token does persists state.
type Token struct {
	invoker Invoker
	hash    util.Uint160
}

// New returns a token view backed by the given invoker.  Well-known
// hashes live in the contract package, e.g. contract.GasToken.
func New(invoker Invoker, hash util.Uint160) *Token {
	return &Token{invoker: invoker, hash: hash}
}

// Hash returns the script hash of the wrapped contract.
func (t *Token) Hash() util.Uint160 {
	return t.hash
}

// Symbol returns the token's short symbol, for example "GAS".
func (t *Token) Symbol() (string, error) {
	item, err := t.read("symbol")
	if err != nil {
		return "", err
	}
	symbol, err := item.Bytes()
	if err != nil {
		return "", err
	}
	return string(symbol), nil
}

// Decimals returns the number of decimals the token's smallest unit
// carries.
func (t *Token) Decimals() (int, error) {
	item, err := t.read("decimals")
	if err != nil {
		return 0, err
	}
	decimals, err := item.Int()
	if err != nil {
		return 0, err
	}
	return int(decimals), nil
}

// TotalSupply returns the token supply currently in circulation, in the
// token's smallest unit.
func (t *Token) TotalSupply() (int64, error) {
	item, err := t.read("totalSupply")
	if err != nil {
		return 0, err
	}
	return item.Int()
}

// BalanceOf returns the account's token balance in the token's smallest
// unit.
func (t *Token) BalanceOf(account util.Uint160) (int64, error) {
	item, err := t.read("balanceOf", contract.Hash160Param(account))
	if err != nil {
		return 0, err
	}
	return item.Int()
}

// TransferScript builds the entry script of a transfer moving amount
// smallest units from one account to another.  The data parameter is
// forwarded to the receiving contract's onNEP17Payment hook; pass
// contract.AnyParam when there is nothing to say.  The script still has
// to be wrapped into a transaction signed by the sender.
func (t *Token) TransferScript(from util.Uint160, to util.Uint160,
	amount int64, data contract.Parameter) ([]byte, error) {

	return contract.NewCallScript(t.hash, "transfer", txscript.CallFlagAll,
		contract.Hash160Param(from), contract.Hash160Param(to),
		contract.IntParam(amount), data)
}

// read invokes a state-reading method and returns the top of the
// resulting stack.
func (t *Token) read(operation string, args ...contract.Parameter) (rpcclient.StackItem, error) {
	result, err := t.invoker.InvokeFunction(t.hash, operation, args, nil)
	if err != nil {
		return rpcclient.StackItem{}, err
	}
	if result.State != "HALT" {
		if result.Exception != "" {
			return rpcclient.StackItem{}, errors.Errorf(
				"%s on %s ended in state %s: %s", operation, t.hash,
				result.State, result.Exception)
		}
		return rpcclient.StackItem{}, errors.Errorf(
			"%s on %s ended in state %s", operation, t.hash, result.State)
	}
	if len(result.Stack) == 0 {
		return rpcclient.StackItem{}, errors.Errorf(
			"%s on %s returned an empty stack", operation, t.hash)
	}
	return result.Stack[len(result.Stack)-1], nil
}
