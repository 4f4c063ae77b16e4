package main

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/contract"
	"github.com/neonetwork/neosdk/rpcclient/nep17"
	"github.com/neonetwork/neosdk/transaction"
	"github.com/neonetwork/neosdk/util"
	"github.com/neonetwork/neosdk/wallet"
)

func send(conf *sendConfig) error {
	client, err := connectToRPC(conf.netParams, conf.RPCServer)
	if err != nil {
		return err
	}

	w, err := wallet.Load(conf.WalletFile)
	if err != nil {
		return err
	}
	account, err := walletAccount(w, conf.FromAddress)
	if err != nil {
		return err
	}

	toAddress, err := util.DecodeAddress(conf.ToAddress)
	if err != nil {
		return err
	}

	tokenHash := contract.GasToken
	if conf.Token != "" {
		tokenHash, err = util.Uint160FromString(conf.Token)
		if err != nil {
			return err
		}
	}
	token := nep17.New(client, tokenHash)

	var units int64
	if tokenHash == contract.GasToken {
		amount, err := util.NewAmount(conf.SendAmount)
		if err != nil {
			return err
		}
		units = int64(amount)
	} else {
		decimals, err := token.Decimals()
		if err != nil {
			return err
		}
		units = int64(math.Round(conf.SendAmount * math.Pow10(decimals)))
	}
	if units <= 0 {
		return errors.Errorf("send amount must be positive")
	}

	password := getPassword("Password:")
	err = account.Decrypt(string(password), w.Scrypt)
	if err != nil {
		return err
	}

	script, err := token.TransferScript(account.ScriptHash(), toAddress, units, contract.AnyParam())
	if err != nil {
		return err
	}

	signer, err := transaction.NewAccountSigner(account.PrivateKey(), transaction.CalledByEntry)
	if err != nil {
		return err
	}

	tx, err := transaction.NewBuilder(client).
		SetScript(script).
		AddSigners(signer).
		Sign()
	if err != nil {
		return err
	}

	txID, err := tx.Send(client)
	if err != nil {
		return err
	}

	fmt.Println("Transaction was sent successfully")
	fmt.Printf("Transaction ID: \t%s\n", txID)

	return nil
}
