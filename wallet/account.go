package wallet

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
)

// ErrAccountState is the class of error returned when an account lacks
// the material an operation needs, or would end up inconsistent.
var ErrAccountState = errors.New("invalid account state")

// Account pairs an address with its authorization material: a key pair,
// a multi-signature contract, or nothing at all for watch-only entries.
// A plaintext key never reaches the wallet file; Encrypt moves it into
// the NEP-2 form and back.
type Account struct {
	address      util.Uint160
	label        string
	verification []byte
	key          *keys.PrivateKey
	encryptedKey string
	locked       bool

	signingThreshold int
	participants     int
}

// NewAccount generates a fresh key pair and wraps it in an account.
func NewAccount() (*Account, error) {
	key, err := keys.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return NewAccountFromKey(key), nil
}

// NewAccountFromKey wraps an existing key pair in an account.  The label
// starts out as the address.
func NewAccountFromKey(key *keys.PrivateKey) *Account {
	return &Account{
		address:      key.ScriptHash(),
		label:        key.Address(),
		verification: key.PublicKey().VerificationScript(),
		key:          key,
	}
}

// NewAccountFromWIF wraps the key encoded in the passed WIF string.
func NewAccountFromWIF(wif string) (*Account, error) {
	key, err := keys.PrivateKeyFromWIF(wif)
	if err != nil {
		return nil, err
	}
	return NewAccountFromKey(key), nil
}

// NewAccountFromVerificationScript derives an account from a bare
// verification script.  Multi-signature scripts are introspected for
// their threshold and participant count; the account holds no key.
func NewAccountFromVerificationScript(script []byte) (*Account, error) {
	if len(script) == 0 {
		return nil, errors.Wrap(ErrAccountState, "empty verification script")
	}

	account := &Account{
		address:      txscript.ScriptHash(script),
		verification: make([]byte, len(script)),
	}
	copy(account.verification, script)
	account.label = account.Address()

	if txscript.IsMultiSigScript(script) {
		threshold, participants, err := txscript.ParseMultiSigScript(script)
		if err != nil {
			return nil, err
		}
		account.signingThreshold = threshold
		account.participants = len(participants)
	}
	return account, nil
}

// NewMultiSigAccount derives the account of the canonical threshold-of-n
// contract over the passed public keys.  The account cannot sign by
// itself; a participant key is attached through AttachKey or the wallet
// file.
func NewMultiSigAccount(threshold int, publicKeys ...*keys.PublicKey) (*Account, error) {
	script, err := txscript.MultiSigScript(threshold, keys.PublicKeys(publicKeys).Bytes()...)
	if err != nil {
		return nil, err
	}
	return NewAccountFromVerificationScript(script)
}

// NewWatchOnlyAccount tracks an address without any authorization
// material.
func NewWatchOnlyAccount(hash util.Uint160) *Account {
	account := &Account{address: hash}
	account.label = account.Address()
	return account
}

// ScriptHash returns the account's script hash.
func (a *Account) ScriptHash() util.Uint160 {
	return a.address
}

// Address returns the account's base58check address.
func (a *Account) Address() string {
	return util.EncodeAddress(a.address)
}

// Label returns the account's display label.
func (a *Account) Label() string {
	return a.label
}

// SetLabel changes the account's display label.
func (a *Account) SetLabel(label string) {
	a.label = label
}

// Lock marks the account as locked.  The flag is advisory wallet state
// and persists in the wallet file; it does not wipe key material.
func (a *Account) Lock() {
	a.locked = true
}

// Unlock clears the locked flag.
func (a *Account) Unlock() {
	a.locked = false
}

// IsLocked returns the locked flag.
func (a *Account) IsLocked() bool {
	return a.locked
}

// VerificationScript returns a copy of the account's verification
// script, or nil for a watch-only account.
func (a *Account) VerificationScript() []byte {
	if a.verification == nil {
		return nil
	}
	script := make([]byte, len(a.verification))
	copy(script, a.verification)
	return script
}

// IsMultiSig returns whether the account fronts a multi-signature
// contract.
func (a *Account) IsMultiSig() bool {
	return a.signingThreshold > 0
}

// SigningThreshold returns how many participant signatures the account's
// contract requires.
func (a *Account) SigningThreshold() (int, error) {
	if !a.IsMultiSig() {
		return 0, errors.Wrap(ErrAccountState, "account is not multi-signature")
	}
	return a.signingThreshold, nil
}

// Participants returns how many keys participate in the account's
// contract.
func (a *Account) Participants() (int, error) {
	if !a.IsMultiSig() {
		return 0, errors.Wrap(ErrAccountState, "account is not multi-signature")
	}
	return a.participants, nil
}

// PrivateKey returns the account's decrypted key, or nil when the
// account is watch-only or the key is still encrypted.
func (a *Account) PrivateKey() *keys.PrivateKey {
	return a.key
}

// EncryptedKey returns the NEP-2 form of the account's key, empty until
// Encrypt has run.
func (a *Account) EncryptedKey() string {
	return a.encryptedKey
}

// AttachKey places a decrypted key onto the account.  The key must
// belong to it: hash to the account's address, or participate in its
// multi-signature contract.
func (a *Account) AttachKey(key *keys.PrivateKey) error {
	if key == nil {
		return errors.Wrap(ErrAccountState, "nil private key")
	}
	if err := a.checkKeyOwnership(key); err != nil {
		return err
	}
	a.key = key
	return nil
}

// Encrypt moves the account's plaintext key into its NEP-2 form under
// the passed passphrase.  The plaintext key is dropped; Decrypt brings
// it back.
func (a *Account) Encrypt(passphrase string, params keys.ScryptParams) error {
	if a.key == nil {
		return errors.Wrap(ErrAccountState, "no decrypted key to encrypt")
	}
	encrypted, err := keys.NEP2Encrypt(a.key, passphrase, params)
	if err != nil {
		return err
	}
	a.encryptedKey = encrypted
	a.key = nil
	return nil
}

// Decrypt recovers the account's key from its NEP-2 form.  It is a
// no-op when the key is already present.
func (a *Account) Decrypt(passphrase string, params keys.ScryptParams) error {
	if a.key != nil {
		return nil
	}
	if a.encryptedKey == "" {
		return errors.Wrap(ErrAccountState, "account has no encrypted key")
	}
	key, err := keys.NEP2Decrypt(a.encryptedKey, passphrase, params)
	if err != nil {
		return err
	}
	if err := a.checkKeyOwnership(key); err != nil {
		return err
	}
	a.key = key
	return nil
}

// checkKeyOwnership fails unless the key authorizes this account.
func (a *Account) checkKeyOwnership(key *keys.PrivateKey) error {
	if a.IsMultiSig() {
		_, participants, err := txscript.ParseMultiSigScript(a.verification)
		if err != nil {
			return err
		}
		pub := key.PublicKey().Bytes()
		for _, candidate := range participants {
			if bytes.Equal(candidate, pub) {
				return nil
			}
		}
		return errors.Wrap(ErrAccountState,
			"key does not participate in the multi-signature contract")
	}
	if key.ScriptHash() != a.address {
		return errors.Wrap(ErrAccountState, "key does not belong to the account")
	}
	return nil
}
