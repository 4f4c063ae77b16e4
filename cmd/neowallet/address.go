package main

import (
	"fmt"

	"github.com/neonetwork/neosdk/wallet"
)

func address(conf *addressConfig) error {
	w, err := wallet.Load(conf.WalletFile)
	if err != nil {
		return err
	}

	accounts := w.Accounts()
	defaultAccount := w.DefaultAccount()

	fmt.Printf("Addresses (%d):\n", len(accounts))
	for _, account := range accounts {
		if account == defaultAccount {
			fmt.Printf("%s (default)\n", account.Address())
			continue
		}
		fmt.Println(account.Address())
	}

	return nil
}
