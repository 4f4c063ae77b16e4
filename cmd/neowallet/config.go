package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/netparams"
)

const (
	createSubCmd  = "create"
	addressSubCmd = "address"
	balanceSubCmd = "balance"
	sendSubCmd    = "send"
	exportSubCmd  = "export"
)

const (
	defaultWalletFile = "neo-wallet.json"
	defaultWalletName = "neo-wallet"
)

type networkFlags struct {
	Testnet bool `long:"testnet" description:"Use the test network"`
	Simnet  bool `long:"simnet" description:"Use the simulation network"`

	netParams *netparams.Params
}

func (f *networkFlags) resolveNetwork() error {
	f.netParams = &netparams.MainnetParams
	numNets := 0
	if f.Testnet {
		numNets++
		f.netParams = &netparams.TestnetParams
	}
	if f.Simnet {
		numNets++
		f.netParams = &netparams.SimnetParams
	}
	if numNets > 1 {
		return errors.New("multiple network parameters (testnet, simnet) " +
			"cannot be used together")
	}
	return nil
}

func combineNetworkFlags(dst, src *networkFlags) {
	dst.Testnet = dst.Testnet || src.Testnet
	dst.Simnet = dst.Simnet || src.Simnet
}

type configFlags struct {
	networkFlags
}

type createConfig struct {
	WalletFile     string `long:"file" short:"f" description:"Wallet file to create"`
	Name           string `long:"name" short:"n" description:"A human-readable name for the wallet"`
	ImportMnemonic bool   `long:"import-mnemonic" description:"Restore the account from an existing recovery phrase instead of generating a new one"`
}

type addressConfig struct {
	WalletFile string `long:"file" short:"f" description:"Wallet file to read"`
}

type balanceConfig struct {
	RPCServer  string `long:"rpcserver" short:"s" description:"RPC server to connect to"`
	WalletFile string `long:"file" short:"f" description:"Wallet file to read"`
	Address    string `long:"address" short:"d" description:"The address to check the balance of (defaults to the wallet's default account)"`
	networkFlags
}

type sendConfig struct {
	RPCServer   string  `long:"rpcserver" short:"s" description:"RPC server to connect to"`
	WalletFile  string  `long:"file" short:"f" description:"Wallet file holding the sending account"`
	FromAddress string  `long:"from-address" short:"d" description:"The address to send from (defaults to the wallet's default account)"`
	ToAddress   string  `long:"to-address" short:"t" description:"The address to send tokens to" required:"true"`
	SendAmount  float64 `long:"send-amount" short:"v" description:"An amount to send in GAS (e.g. 1234.12345678)" required:"true"`
	Token       string  `long:"token" description:"Script hash of the NEP-17 token to send (defaults to GAS)"`
	networkFlags
}

type exportConfig struct {
	WalletFile string `long:"file" short:"f" description:"Wallet file to read"`
	Address    string `long:"address" short:"d" description:"The address to export (defaults to the wallet's default account)"`
}

func parseCommandLine() (subCommand string, config interface{}) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	createConf := &createConfig{WalletFile: defaultWalletFile, Name: defaultWalletName}
	parser.AddCommand(createSubCmd, "Creates a new wallet",
		"Creates a new NEP-6 wallet file with a single password-encrypted account", createConf)

	addressConf := &addressConfig{WalletFile: defaultWalletFile}
	parser.AddCommand(addressSubCmd, "Shows the addresses of the wallet",
		"Shows the addresses of all accounts in the wallet file", addressConf)

	balanceConf := &balanceConfig{WalletFile: defaultWalletFile}
	parser.AddCommand(balanceSubCmd, "Shows the balance of an address",
		"Shows the NEP-17 token balances of a wallet address", balanceConf)

	sendConf := &sendConfig{WalletFile: defaultWalletFile}
	parser.AddCommand(sendSubCmd, "Sends tokens to an address",
		"Builds, signs and broadcasts a NEP-17 transfer from a wallet account", sendConf)

	exportConf := &exportConfig{WalletFile: defaultWalletFile}
	parser.AddCommand(exportSubCmd, "Exports a private key",
		"Decrypts an account of the wallet and prints its private key in WIF form", exportConf)

	_, err := parser.Parse()

	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
		return "", nil
	}

	switch parser.Command.Active.Name {
	case createSubCmd:
		config = createConf
	case addressSubCmd:
		config = addressConf
	case balanceSubCmd:
		combineNetworkFlags(&balanceConf.networkFlags, &cfg.networkFlags)
		err := balanceConf.resolveNetwork()
		if err != nil {
			printErrorAndExit(err)
		}
		config = balanceConf
	case sendSubCmd:
		combineNetworkFlags(&sendConf.networkFlags, &cfg.networkFlags)
		err := sendConf.resolveNetwork()
		if err != nil {
			printErrorAndExit(err)
		}
		config = sendConf
	case exportSubCmd:
		config = exportConf
	}

	return parser.Command.Active.Name, config
}
