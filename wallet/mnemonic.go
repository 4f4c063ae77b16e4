package wallet

import (
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"

	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/util"
)

// NewMnemonic returns a fresh 24-word BIP-39 mnemonic.
func NewMnemonic() (string, error) {
	entropy, _ := bip39.NewEntropy(256)
	return bip39.NewMnemonic(entropy)
}

// AccountFromMnemonic derives an account from a BIP-39 mnemonic and
// passphrase. The private key is the SHA-256 digest of the BIP-39 seed, so
// the same mnemonic and passphrase always recover the same account.
func AccountFromMnemonic(mnemonic string, passphrase string) (*Account, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.Errorf("mnemonic is not a valid BIP-39 sentence")
	}

	seed := bip39.NewSeed(mnemonic, passphrase)
	key, err := keys.PrivateKeyFromBytes(util.Sha256(seed).Bytes())
	if err != nil {
		return nil, err
	}

	return NewAccountFromKey(key), nil
}
