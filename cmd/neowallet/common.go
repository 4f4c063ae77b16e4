package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/rpcclient"
	"github.com/neonetwork/neosdk/util"
	"github.com/neonetwork/neosdk/wallet"
)

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func connectToRPC(params *netparams.Params, rpcServer string) (*rpcclient.Client, error) {
	if rpcServer == "" {
		rpcServer = "localhost"
	}
	rpcAddress, err := params.NormalizeRPCServerAddress(rpcServer)
	if err != nil {
		return nil, err
	}

	return rpcclient.New(&rpcclient.Config{Endpoint: rpcAddress})
}

// walletAccount picks the account a command operates on: the one behind the
// given address, or the wallet's default account when address is empty.
func walletAccount(w *wallet.Wallet, address string) (*wallet.Account, error) {
	if address != "" {
		hash, err := util.DecodeAddress(address)
		if err != nil {
			return nil, err
		}
		account := w.Account(hash)
		if account == nil {
			return nil, errors.Errorf("wallet holds no account with address %s", address)
		}
		return account, nil
	}

	account := w.DefaultAccount()
	if account == nil {
		accounts := w.Accounts()
		if len(accounts) == 0 {
			return nil, errors.New("wallet holds no accounts")
		}
		account = accounts[0]
	}
	return account, nil
}
