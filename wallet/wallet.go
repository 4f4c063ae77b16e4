// Package wallet implements NEP-6 wallets and the accounts they hold.
//
// A wallet is a named collection of accounts persisted as a NEP-6 JSON
// document. Account keys are stored NEP-2 encrypted in the document, so a
// loaded wallet can only sign after Decrypt has been called on the relevant
// account with the right passphrase.
package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/util"
)

// Version is the NEP-6 document version written by this package.
const Version = "3.0"

// Wallet is a collection of accounts together with the scrypt parameters
// used to encrypt their keys. The zero value is not usable, construct
// wallets with New or Load.
type Wallet struct {
	// Name labels the wallet. It has no protocol meaning.
	Name string

	// Version is the NEP-6 document version. New wallets get Version.
	Version string

	// Scrypt holds the key derivation parameters used by EncryptAll and
	// expected by Account.Decrypt for keys stored in this wallet.
	Scrypt keys.ScryptParams

	// Extra carries application-defined data preserved across save and
	// load cycles.
	Extra map[string]string

	accounts       []*Account
	defaultAccount *Account
}

// New returns an empty wallet with the given name and the default scrypt
// parameters.
func New(name string) *Wallet {
	return &Wallet{
		Name:    name,
		Version: Version,
		Scrypt:  keys.DefaultScryptParams(),
	}
}

// Accounts returns the wallet's accounts in insertion order. The slice is
// a copy, but the accounts themselves are shared.
func (w *Wallet) Accounts() []*Account {
	accounts := make([]*Account, len(w.accounts))
	copy(accounts, w.accounts)
	return accounts
}

// AddAccount appends an account to the wallet. Each script hash may appear
// at most once.
func (w *Wallet) AddAccount(account *Account) error {
	if account == nil {
		return errors.Wrap(ErrAccountState, "account is nil")
	}
	if w.Account(account.ScriptHash()) != nil {
		return errors.Wrapf(ErrAccountState, "account %s is already in the wallet", account.Address())
	}

	w.accounts = append(w.accounts, account)
	return nil
}

// Account returns the account with the given script hash, or nil if the
// wallet has none.
func (w *Wallet) Account(hash util.Uint160) *Account {
	for _, account := range w.accounts {
		if account.ScriptHash() == hash {
			return account
		}
	}
	return nil
}

// RemoveAccount removes the account with the given script hash. Removing
// the default account clears the default.
func (w *Wallet) RemoveAccount(hash util.Uint160) error {
	for i, account := range w.accounts {
		if account.ScriptHash() != hash {
			continue
		}

		w.accounts = append(w.accounts[:i], w.accounts[i+1:]...)
		if w.defaultAccount == account {
			w.defaultAccount = nil
		}
		return nil
	}
	return errors.Wrapf(ErrAccountState, "account %s is not in the wallet", hash)
}

// DefaultAccount returns the wallet's default account, or nil if none is
// set.
func (w *Wallet) DefaultAccount() *Account {
	return w.defaultAccount
}

// SetDefaultAccount marks the account with the given script hash as the
// wallet's default. The account must already be in the wallet.
func (w *Wallet) SetDefaultAccount(hash util.Uint160) error {
	account := w.Account(hash)
	if account == nil {
		return errors.Wrapf(ErrAccountState, "account %s is not in the wallet", hash)
	}

	w.defaultAccount = account
	return nil
}

// EncryptAll encrypts every account that still holds a plaintext key using
// the wallet's scrypt parameters. Accounts without keys are left alone.
func (w *Wallet) EncryptAll(passphrase string) error {
	for _, account := range w.accounts {
		if account.key == nil {
			continue
		}
		err := account.Encrypt(passphrase, w.Scrypt)
		if err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the wallet as a NEP-6 document. Accounts holding
// plaintext keys that were never encrypted are refused, so a decrypted
// wallet cannot leak keys to disk.
func (w *Wallet) MarshalJSON() ([]byte, error) {
	document := &nep6Wallet{
		Name:     w.Name,
		Version:  w.Version,
		Scrypt:   w.Scrypt,
		Accounts: make([]nep6Account, 0, len(w.accounts)),
		Extra:    w.Extra,
	}

	for _, account := range w.accounts {
		encoded, err := account.toNEP6()
		if err != nil {
			return nil, err
		}
		encoded.IsDefault = account == w.defaultAccount
		document.Accounts = append(document.Accounts, encoded)
	}

	return json.Marshal(document)
}

// UnmarshalJSON decodes a NEP-6 document into the wallet, replacing its
// contents.
func (w *Wallet) UnmarshalJSON(data []byte) error {
	document := &nep6Wallet{}
	err := json.Unmarshal(data, document)
	if err != nil {
		return err
	}

	return w.fromNEP6(document)
}

func (w *Wallet) fromNEP6(document *nep6Wallet) error {
	accounts := make([]*Account, 0, len(document.Accounts))
	var defaultAccount *Account
	for i := range document.Accounts {
		account, err := accountFromNEP6(document.Accounts[i])
		if err != nil {
			return err
		}

		if document.Accounts[i].IsDefault {
			if defaultAccount != nil {
				return errors.Wrap(ErrAccountState, "wallet has more than one default account")
			}
			defaultAccount = account
		}
		accounts = append(accounts, account)
	}

	w.Name = document.Name
	w.Version = document.Version
	w.Scrypt = document.Scrypt
	w.Extra = document.Extra
	w.accounts = accounts
	w.defaultAccount = defaultAccount
	return nil
}

// Save writes the wallet to the given path as a NEP-6 document, creating
// the containing directory if needed. An existing file is overwritten.
func (w *Wallet) Save(path string) error {
	err := createFileDirectoryIfDoesntExist(path)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	err = encoder.Encode(w)
	if err != nil {
		return err
	}

	return nil
}

// Load reads a NEP-6 document from the given path. Unknown fields in the
// document are rejected.
func Load(path string) (*Wallet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	document := &nep6Wallet{}
	err = decoder.Decode(document)
	if err != nil {
		return nil, err
	}

	wallet := &Wallet{}
	err = wallet.fromNEP6(document)
	if err != nil {
		return nil, err
	}

	return wallet, nil
}

func createFileDirectoryIfDoesntExist(path string) error {
	dir := filepath.Dir(path)
	exists, err := pathExists(dir)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return os.MkdirAll(dir, 0700)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)

	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}
