// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
)

// Native contract script hashes.  Natives are not deployed by anyone, so
// their hashes follow from the deployment rule with a zero sender and a
// zero code checksum; they are computed here rather than hardcoded so the
// rule and the registry can never drift apart.
var (
	ContractManagement = mustNativeHash("ContractManagement")
	StdLib             = mustNativeHash("StdLib")
	CryptoLib          = mustNativeHash("CryptoLib")
	LedgerContract     = mustNativeHash("LedgerContract")
	NeoToken           = mustNativeHash("NeoToken")
	GasToken           = mustNativeHash("GasToken")
	PolicyContract     = mustNativeHash("PolicyContract")
	RoleManagement     = mustNativeHash("RoleManagement")
	OracleContract     = mustNativeHash("OracleContract")
)

// NativeContract pairs a native contract's name with its script hash.
type NativeContract struct {
	Name string
	Hash util.Uint160
}

// NativeContracts returns the full registry of native contracts.
func NativeContracts() []NativeContract {
	return []NativeContract{
		{"ContractManagement", ContractManagement},
		{"StdLib", StdLib},
		{"CryptoLib", CryptoLib},
		{"LedgerContract", LedgerContract},
		{"NeoToken", NeoToken},
		{"GasToken", GasToken},
		{"PolicyContract", PolicyContract},
		{"RoleManagement", RoleManagement},
		{"OracleContract", OracleContract},
	}
}

func mustNativeHash(name string) util.Uint160 {
	hash, err := txscript.ContractHash(util.Uint160{}, 0, name)
	if err != nil {
		panic("failed to derive native contract hash: " + err.Error())
	}
	return hash
}
