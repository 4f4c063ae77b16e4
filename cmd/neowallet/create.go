package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/wallet"
)

func create(conf *createConfig) error {
	if _, err := os.Stat(conf.WalletFile); err == nil {
		return errors.Errorf("wallet file %s already exists", conf.WalletFile)
	}

	mnemonic := ""
	generated := false
	if conf.ImportMnemonic {
		fmt.Println("Enter the recovery phrase here:")
		reader := bufio.NewReader(os.Stdin)
		line, isPrefix, err := reader.ReadLine()
		if err != nil {
			return err
		}
		if isPrefix {
			return errors.Errorf("Recovery phrase is too long")
		}
		mnemonic = string(line)
	} else {
		var err error
		mnemonic, err = wallet.NewMnemonic()
		if err != nil {
			return err
		}
		generated = true
	}

	password, err := getConfirmedPassword()
	if err != nil {
		return err
	}

	account, err := wallet.AccountFromMnemonic(mnemonic, "")
	if err != nil {
		return err
	}

	w := wallet.New(conf.Name)
	err = account.Encrypt(string(password), w.Scrypt)
	if err != nil {
		return err
	}
	err = w.AddAccount(account)
	if err != nil {
		return err
	}
	err = w.SetDefaultAccount(account.ScriptHash())
	if err != nil {
		return err
	}

	err = w.Save(conf.WalletFile)
	if err != nil {
		return err
	}

	if generated {
		fmt.Println("The recovery phrase of the wallet is:")
		fmt.Printf("%s\n\n", mnemonic)
		fmt.Println("Write the phrase down and keep it somewhere safe. " +
			"Anyone who knows it can take the wallet's funds, and without " +
			"it a lost wallet file cannot be restored.")
		fmt.Println()
	}

	fmt.Printf("The wallet address is:\n%s\n", account.Address())
	return nil
}
