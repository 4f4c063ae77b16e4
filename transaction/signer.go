package transaction

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/contract"
	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/serialization"
	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
)

// ErrInvalidSigner is the class of error returned when a signer is
// malformed or an operation would break one of its invariants.
var ErrInvalidSigner = errors.New("invalid signer")

// Signer is one authorizing party of a transaction.  The set of
// implementations is closed: an AccountSigner holds key material and can
// produce a signature, a ContractSigner delegates authorization to an
// on-chain verify method, and a TransactionSigner carries only the
// wire-visible fields of a signer decoded from or destined for the wire.
type Signer interface {
	// Account returns the script hash the signer's witness must hash
	// to.
	Account() util.Uint160

	// Scopes returns the signer's witness scope.
	Scopes() WitnessScope

	// AllowedContracts returns the contract allow-list backing the
	// CustomContracts scope.
	AllowedContracts() []util.Uint160

	// AllowedGroups returns the group allow-list backing the
	// CustomGroups scope.
	AllowedGroups() keys.PublicKeys

	// Rules returns the rule list backing the WitnessRules scope.
	Rules() []WitnessRule

	// SetAllowedContracts appends to the contract allow-list and adds
	// the CustomContracts scope.  It fails without touching the signer
	// when the scope includes Global or the resulting list would
	// exceed the sub-item cap.
	SetAllowedContracts(contracts []util.Uint160) error

	// SetAllowedGroups appends to the group allow-list and adds the
	// CustomGroups scope, failing closed the same way.
	SetAllowedGroups(groups keys.PublicKeys) error

	// SetRules appends to the rule list and adds the WitnessRules
	// scope, failing closed the same way; every rule's condition tree
	// is bounds-checked first.
	SetRules(rules []WitnessRule) error

	// encode writes the signer's wire form.
	encode(w *serialization.Writer)
}

// signerCore carries the wire-visible fields shared by every signer kind
// and implements the whole Signer surface; the concrete kinds embed it
// and add their authorization material.
type signerCore struct {
	account          util.Uint160
	scopes           WitnessScope
	allowedContracts []util.Uint160
	allowedGroups    keys.PublicKeys
	rules            []WitnessRule
}

// Account returns the script hash the signer's witness must hash to.
func (s *signerCore) Account() util.Uint160 {
	return s.account
}

// Scopes returns the signer's witness scope.
func (s *signerCore) Scopes() WitnessScope {
	return s.scopes
}

// AllowedContracts returns the contract allow-list backing the
// CustomContracts scope.
func (s *signerCore) AllowedContracts() []util.Uint160 {
	return s.allowedContracts
}

// AllowedGroups returns the group allow-list backing the CustomGroups
// scope.
func (s *signerCore) AllowedGroups() keys.PublicKeys {
	return s.allowedGroups
}

// Rules returns the rule list backing the WitnessRules scope.
func (s *signerCore) Rules() []WitnessRule {
	return s.rules
}

// checkCanWiden fails when widening the scope with an allow-list is not
// permitted or the list would outgrow the protocol cap.
func (s *signerCore) checkCanWiden(existing, added int) error {
	if s.scopes.Has(Global) {
		return errors.Wrap(ErrInvalidSigner,
			"a Global signer cannot carry allow-lists or rules")
	}
	if existing+added > netparams.MaxSignerSubitems {
		return errors.Wrapf(ErrInvalidSigner,
			"%d entries exceed the cap of %d per signer list",
			existing+added, netparams.MaxSignerSubitems)
	}
	return nil
}

// SetAllowedContracts appends to the contract allow-list and adds the
// CustomContracts scope.
func (s *signerCore) SetAllowedContracts(contracts []util.Uint160) error {
	if err := s.checkCanWiden(len(s.allowedContracts), len(contracts)); err != nil {
		return err
	}
	s.scopes |= CustomContracts
	s.allowedContracts = append(s.allowedContracts, contracts...)
	return nil
}

// SetAllowedGroups appends to the group allow-list and adds the
// CustomGroups scope.
func (s *signerCore) SetAllowedGroups(groups keys.PublicKeys) error {
	if err := s.checkCanWiden(len(s.allowedGroups), len(groups)); err != nil {
		return err
	}
	for _, group := range groups {
		if group == nil {
			return errors.Wrap(ErrInvalidSigner, "nil group key")
		}
	}
	s.scopes |= CustomGroups
	s.allowedGroups = append(s.allowedGroups, groups...)
	return nil
}

// SetRules appends to the rule list and adds the WitnessRules scope.
func (s *signerCore) SetRules(rules []WitnessRule) error {
	if err := s.checkCanWiden(len(s.rules), len(rules)); err != nil {
		return err
	}
	for i := range rules {
		if err := rules[i].validate(); err != nil {
			return err
		}
	}
	s.scopes |= WitnessRules
	s.rules = append(s.rules, rules...)
	return nil
}

func (s *signerCore) encode(w *serialization.Writer) {
	w.WriteBytes(s.account.Bytes())
	w.WriteUint8(byte(s.scopes))
	if s.scopes.Has(CustomContracts) {
		w.WriteVarInt(uint64(len(s.allowedContracts)))
		for _, hash := range s.allowedContracts {
			w.WriteBytes(hash.Bytes())
		}
	}
	if s.scopes.Has(CustomGroups) {
		w.WriteVarInt(uint64(len(s.allowedGroups)))
		for _, group := range s.allowedGroups {
			w.WriteBytes(group.Bytes())
		}
	}
	if s.scopes.Has(WitnessRules) {
		w.WriteVarInt(uint64(len(s.rules)))
		for i := range s.rules {
			s.rules[i].encode(w)
		}
	}
}

// AccountSigner is a signer backed by key material: either a private key
// whose single-signature account it authorizes, or the verification
// script of a multi-signature account whose witness is assembled out of
// band.
type AccountSigner struct {
	signerCore

	key          *keys.PrivateKey
	verification []byte
}

// NewAccountSigner returns a signer for the single-signature account of
// the passed private key.
func NewAccountSigner(key *keys.PrivateKey, scopes WitnessScope) (*AccountSigner, error) {
	if key == nil {
		return nil, errors.Wrap(ErrInvalidSigner, "nil private key")
	}
	if !scopes.IsValid() {
		return nil, errors.Wrapf(ErrInvalidScope, "scope byte %#x",
			byte(scopes))
	}
	verification := key.PublicKey().VerificationScript()
	return &AccountSigner{
		signerCore: signerCore{
			account: txscript.ScriptHash(verification),
			scopes:  scopes,
		},
		key:          key,
		verification: verification,
	}, nil
}

// NewMultiSigSigner returns a signer for the multi-signature account
// identified by the passed verification script.  The account cannot sign
// by itself; its witness is built from collected signatures through
// NewMultiSigWitness and attached explicitly.
func NewMultiSigSigner(verificationScript []byte, scopes WitnessScope) (*AccountSigner, error) {
	if !txscript.IsMultiSigScript(verificationScript) {
		return nil, errors.Wrap(ErrInvalidSigner,
			"script is not a multi-signature verification script")
	}
	if !scopes.IsValid() {
		return nil, errors.Wrapf(ErrInvalidScope, "scope byte %#x",
			byte(scopes))
	}
	verification := make([]byte, len(verificationScript))
	copy(verification, verificationScript)
	return &AccountSigner{
		signerCore: signerCore{
			account: txscript.ScriptHash(verification),
			scopes:  scopes,
		},
		verification: verification,
	}, nil
}

// IsMultiSig returns whether the signer fronts a multi-signature
// account.
func (s *AccountSigner) IsMultiSig() bool {
	return txscript.IsMultiSigScript(s.verification)
}

// VerificationScript returns the account's verification script.
func (s *AccountSigner) VerificationScript() []byte {
	script := make([]byte, len(s.verification))
	copy(script, s.verification)
	return script
}

// ContractSigner is a signer whose authorization is checked by the verify
// method of an on-chain contract.  Its witness carries only the declared
// parameters of that method; no signature is involved on the client.
type ContractSigner struct {
	signerCore

	verifyParams []contract.Parameter
}

// NewContractSigner returns a signer for the contract deployed at hash.
// The passed parameters are staged into the witness invocation script
// when the transaction is signed.
func NewContractSigner(hash util.Uint160, scopes WitnessScope, verifyParams ...contract.Parameter) (*ContractSigner, error) {
	if !scopes.IsValid() {
		return nil, errors.Wrapf(ErrInvalidScope, "scope byte %#x",
			byte(scopes))
	}
	return &ContractSigner{
		signerCore: signerCore{
			account: hash,
			scopes:  scopes,
		},
		verifyParams: verifyParams,
	}, nil
}

// TransactionSigner carries only the wire-visible fields of a signer.
// Decoding always yields this kind; it is also the way to place an
// account on a transaction that somebody else will witness.
type TransactionSigner struct {
	signerCore
}

// NewTransactionSigner returns a wire-only signer for the passed account
// hash.
func NewTransactionSigner(account util.Uint160, scopes WitnessScope) (*TransactionSigner, error) {
	if !scopes.IsValid() {
		return nil, errors.Wrapf(ErrInvalidScope, "scope byte %#x",
			byte(scopes))
	}
	return &TransactionSigner{
		signerCore: signerCore{
			account: account,
			scopes:  scopes,
		},
	}, nil
}

// EncodeSigner writes the signer's wire form to w.  Only the shared
// fields travel; the kind of the signer is client-side state.
func EncodeSigner(w *serialization.Writer, signer Signer) {
	signer.encode(w)
}

// DecodeSigner reads one signer from r.  The wire carries no kind tag,
// so the result is always a TransactionSigner.
func DecodeSigner(r *serialization.Reader) (*TransactionSigner, error) {
	raw, err := r.ReadBytes(util.Uint160Size)
	if err != nil {
		return nil, err
	}
	account, err := util.Uint160FromBytes(raw)
	if err != nil {
		return nil, err
	}

	scopeByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	scopes := WitnessScope(scopeByte)
	if !scopes.IsValid() {
		return nil, errors.Wrapf(ErrInvalidScope, "scope byte %#x",
			scopeByte)
	}

	core := signerCore{account: account, scopes: scopes}
	if scopes.Has(CustomContracts) {
		count, err := readSignerListCount(r)
		if err != nil {
			return nil, err
		}
		core.allowedContracts = make([]util.Uint160, count)
		for i := range core.allowedContracts {
			raw, err := r.ReadBytes(util.Uint160Size)
			if err != nil {
				return nil, err
			}
			core.allowedContracts[i], err = util.Uint160FromBytes(raw)
			if err != nil {
				return nil, err
			}
		}
	}
	if scopes.Has(CustomGroups) {
		count, err := readSignerListCount(r)
		if err != nil {
			return nil, err
		}
		core.allowedGroups = make(keys.PublicKeys, count)
		for i := range core.allowedGroups {
			raw, err := r.ReadBytes(txscript.CompressedPubKeySize)
			if err != nil {
				return nil, err
			}
			core.allowedGroups[i], err = keys.PublicKeyFromBytes(raw)
			if err != nil {
				return nil, err
			}
		}
	}
	if scopes.Has(WitnessRules) {
		count, err := readSignerListCount(r)
		if err != nil {
			return nil, err
		}
		core.rules = make([]WitnessRule, count)
		for i := range core.rules {
			core.rules[i], err = decodeRule(r)
			if err != nil {
				return nil, err
			}
		}
	}

	return &TransactionSigner{signerCore: core}, nil
}

func readSignerListCount(r *serialization.Reader) (uint64, error) {
	count, err := r.ReadVarInt()
	if err != nil {
		return 0, err
	}
	if count > netparams.MaxSignerSubitems {
		return 0, errors.Wrapf(ErrInvalidSigner,
			"%d entries exceed the cap of %d per signer list", count,
			netparams.MaxSignerSubitems)
	}
	return count, nil
}

// signerJSON is the RPC shape of a signer.
type signerJSON struct {
	Account          util.Uint160    `json:"account"`
	Scopes           WitnessScope    `json:"scopes"`
	AllowedContracts []util.Uint160  `json:"allowedcontracts,omitempty"`
	AllowedGroups    keys.PublicKeys `json:"allowedgroups,omitempty"`
	Rules            []WitnessRule   `json:"rules,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (s *signerCore) MarshalJSON() ([]byte, error) {
	return json.Marshal(signerJSON{
		Account:          s.account,
		Scopes:           s.scopes,
		AllowedContracts: s.allowedContracts,
		AllowedGroups:    s.allowedGroups,
		Rules:            s.rules,
	})
}

// UnmarshalSignerJSON parses the RPC form of a signer.  As with the wire
// decoder the result is always a TransactionSigner.
func UnmarshalSignerJSON(data []byte) (*TransactionSigner, error) {
	var aux signerJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, errors.Wrap(ErrInvalidSigner, err.Error())
	}
	if !aux.Scopes.IsValid() {
		return nil, errors.Wrapf(ErrInvalidScope, "scope byte %#x",
			byte(aux.Scopes))
	}

	signer := &TransactionSigner{signerCore: signerCore{
		account: aux.Account,
		scopes:  aux.Scopes,
	}}
	if len(aux.AllowedContracts) > 0 {
		if !aux.Scopes.Has(CustomContracts) {
			return nil, errors.Wrap(ErrInvalidSigner,
				"contract allow-list without the CustomContracts scope")
		}
		if err := signer.SetAllowedContracts(aux.AllowedContracts); err != nil {
			return nil, err
		}
	}
	if len(aux.AllowedGroups) > 0 {
		if !aux.Scopes.Has(CustomGroups) {
			return nil, errors.Wrap(ErrInvalidSigner,
				"group allow-list without the CustomGroups scope")
		}
		if err := signer.SetAllowedGroups(aux.AllowedGroups); err != nil {
			return nil, err
		}
	}
	if len(aux.Rules) > 0 {
		if !aux.Scopes.Has(WitnessRules) {
			return nil, errors.Wrap(ErrInvalidSigner,
				"rule list without the WitnessRules scope")
		}
		if err := signer.SetRules(aux.Rules); err != nil {
			return nil, err
		}
	}
	return signer, nil
}
