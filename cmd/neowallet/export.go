package main

import (
	"fmt"

	"github.com/neonetwork/neosdk/wallet"
)

func export(conf *exportConfig) error {
	w, err := wallet.Load(conf.WalletFile)
	if err != nil {
		return err
	}
	account, err := walletAccount(w, conf.Address)
	if err != nil {
		return err
	}

	password := getPassword("Password:")
	err = account.Decrypt(string(password), w.Scrypt)
	if err != nil {
		return err
	}

	fmt.Println("This is the unencrypted private key. Anyone who sees it " +
		"can spend the funds of the address.")
	fmt.Printf("WIF (%s):\n%s\n", account.Address(), account.PrivateKey().WIF())
	return nil
}
