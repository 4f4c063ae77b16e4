package wallet

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/contract"
	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
)

// The NEP-6 document shapes.  Contract scripts travel base64-encoded,
// which []byte fields get for free from encoding/json.

type nep6Wallet struct {
	Name     string            `json:"name"`
	Version  string            `json:"version"`
	Scrypt   keys.ScryptParams `json:"scrypt"`
	Accounts []nep6Account     `json:"accounts"`
	Extra    map[string]string `json:"extra,omitempty"`
}

type nep6Account struct {
	Address   string            `json:"address"`
	Label     string            `json:"label,omitempty"`
	IsDefault bool              `json:"isDefault"`
	Lock      bool              `json:"lock"`
	Key       string            `json:"key,omitempty"`
	Contract  *nep6Contract     `json:"contract,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

type nep6Contract struct {
	Script     []byte          `json:"script"`
	Parameters []nep6Parameter `json:"parameters"`
	Deployed   bool            `json:"deployed"`
}

type nep6Parameter struct {
	Name string             `json:"name"`
	Type contract.ParamType `json:"type"`
}

// toNEP6 renders the account as a wallet file entry.  An account still
// holding a plaintext key refuses: persisting it would either lose or
// leak the key.
func (a *Account) toNEP6() (nep6Account, error) {
	if a.key != nil && a.encryptedKey == "" {
		return nep6Account{}, errors.Wrap(ErrAccountState,
			"account key is decrypted but not encrypted; encrypt it before saving")
	}

	entry := nep6Account{
		Address: a.Address(),
		Label:   a.label,
		Lock:    a.locked,
		Key:     a.encryptedKey,
	}
	if a.verification != nil {
		entry.Contract = &nep6Contract{
			Script:     a.verification,
			Parameters: verificationParameters(a),
		}
	}
	return entry, nil
}

// verificationParameters names the witness slots the account's contract
// consumes, the way wallet files conventionally label them.
func verificationParameters(a *Account) []nep6Parameter {
	switch {
	case a.IsMultiSig():
		params := make([]nep6Parameter, a.participants)
		for i := range params {
			params[i] = nep6Parameter{
				Name: fmt.Sprintf("signature%d", i),
				Type: contract.SignatureType,
			}
		}
		return params
	case txscript.IsSingleSigScript(a.verification):
		return []nep6Parameter{{Name: "signature", Type: contract.SignatureType}}
	default:
		return []nep6Parameter{}
	}
}

// accountFromNEP6 rebuilds an account from its wallet file entry.  The
// key stays encrypted until Decrypt is called.
func accountFromNEP6(entry nep6Account) (*Account, error) {
	hash, err := util.DecodeAddress(entry.Address)
	if err != nil {
		return nil, err
	}

	account := &Account{
		address:      hash,
		label:        entry.Label,
		locked:       entry.Lock,
		encryptedKey: entry.Key,
	}
	if entry.Contract != nil && len(entry.Contract.Script) > 0 {
		script := entry.Contract.Script
		if txscript.ScriptHash(script) != hash {
			return nil, errors.Wrapf(ErrAccountState,
				"contract script does not hash to the address %s", entry.Address)
		}
		account.verification = make([]byte, len(script))
		copy(account.verification, script)
		if txscript.IsMultiSigScript(script) {
			threshold, participants, err := txscript.ParseMultiSigScript(script)
			if err != nil {
				return nil, err
			}
			account.signingThreshold = threshold
			account.participants = len(participants)
		}
	}
	return account, nil
}
