package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/contract"
	"github.com/neonetwork/neosdk/rpcclient/nep17"
	"github.com/neonetwork/neosdk/util"
	"github.com/neonetwork/neosdk/wallet"
)

func balance(conf *balanceConfig) error {
	client, err := connectToRPC(conf.netParams, conf.RPCServer)
	if err != nil {
		return err
	}

	var accountHash util.Uint160
	if conf.Address != "" {
		accountHash, err = util.DecodeAddress(conf.Address)
		if err != nil {
			return err
		}
	} else {
		w, err := wallet.Load(conf.WalletFile)
		if err != nil {
			return err
		}
		account, err := walletAccount(w, "")
		if err != nil {
			return err
		}
		accountHash = account.ScriptHash()
	}
	address := util.EncodeAddress(accountHash)

	balances, err := client.GetNEP17Balances(accountHash)
	if err != nil {
		return err
	}

	if len(balances.Balances) == 0 {
		fmt.Printf("No NEP-17 balances for %s\n", address)
		return nil
	}

	fmt.Printf("Balances of %s:\n", address)
	for _, entry := range balances.Balances {
		amount, err := entry.Amount.Int64()
		if err != nil {
			return errors.Wrapf(err, "token %s reports a non-integer balance", entry.AssetHash)
		}

		if entry.AssetHash == contract.GasToken {
			fmt.Printf("\t%s\n", util.Amount(amount))
			continue
		}

		// Other tokens scale by their own decimal count, so ask the
		// contract. A token whose metadata cannot be read still shows
		// up, in raw units.
		token := nep17.New(client, entry.AssetHash)
		symbol, err := token.Symbol()
		if err != nil {
			fmt.Printf("\t%d units of token %s\n", amount, entry.AssetHash)
			continue
		}
		decimals, err := token.Decimals()
		if err != nil {
			fmt.Printf("\t%d units of token %s\n", amount, entry.AssetHash)
			continue
		}
		fmt.Printf("\t%s %s\n", formatUnits(amount, decimals), symbol)
	}

	return nil
}

// formatUnits renders an integer token balance as a decimal string using the
// token's own decimal count.
func formatUnits(amount int64, decimals int) string {
	if decimals == 0 {
		return strconv.FormatInt(amount, 10)
	}

	divisor := int64(1)
	for i := 0; i < decimals; i++ {
		divisor *= 10
	}

	whole := amount / divisor
	frac := amount % divisor
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%0*d", whole, decimals, frac)
}
