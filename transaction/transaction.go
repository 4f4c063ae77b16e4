// Package transaction assembles, signs and serializes transactions.
//
// A transaction is built through a Builder, which validates the
// configuration and consults a Provider for chain state and fees, then
// signed and broadcast.  The wire codec lives on the Transaction type
// itself so relayed transactions can be decoded without a provider.
package transaction

import (
	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/serialization"
	"github.com/neonetwork/neosdk/util"
)

// ErrInvalidTransaction is the class of error returned when a transaction
// is malformed or an operation is attempted in the wrong lifecycle state.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Transaction is a single unit of execution on the chain: a script run on
// behalf of the declared signers, paying the declared fees.  Once signed
// it carries one witness per signer, in signer order, and must not be
// mutated further.
type Transaction struct {
	// Version is the transaction format version.
	Version uint8

	// Nonce distinguishes otherwise identical transactions.
	Nonce uint32

	// SystemFee is the execution cost of the script, in GAS fractions.
	SystemFee int64

	// NetworkFee covers verification and byte size, in GAS fractions.
	NetworkFee int64

	// ValidUntilBlock is the last chain height at which the transaction
	// may be included.
	ValidUntilBlock uint32

	// Signers are the authorizing parties.  The first signer is the
	// sender and pays the fees.
	Signers []Signer

	// Attributes are the transaction's typed extension records.
	Attributes []Attribute

	// Script is the VM entry script.
	Script []byte

	// Witnesses authorize the transaction, one per signer in signer
	// order.  Empty until the transaction is signed.
	Witnesses []Witness

	hash               *util.Uint256
	blockCountWhenSent uint32
	sent               bool
}

func (t *Transaction) encodeUnsigned(w *serialization.Writer) {
	w.WriteUint8(t.Version)
	w.WriteUint32(t.Nonce)
	w.WriteInt64(t.SystemFee)
	w.WriteInt64(t.NetworkFee)
	w.WriteUint32(t.ValidUntilBlock)
	w.WriteVarInt(uint64(len(t.Signers)))
	for _, signer := range t.Signers {
		signer.encode(w)
	}
	w.WriteVarInt(uint64(len(t.Attributes)))
	for _, attr := range t.Attributes {
		EncodeAttribute(w, attr)
	}
	w.WriteVarBytes(t.Script)
}

// SerializeUnsigned returns the canonical pre-witness bytes: the exact
// input of the transaction hash and, magic-prefixed, of the signing
// digest.
func (t *Transaction) SerializeUnsigned() []byte {
	w := serialization.NewWriter()
	t.encodeUnsigned(w)
	return w.Bytes()
}

// Serialize returns the transaction's wire form.  An unsigned
// transaction serializes without a witness section; a signed one must
// carry exactly one witness per signer.
func (t *Transaction) Serialize() ([]byte, error) {
	if len(t.Witnesses) > 0 && len(t.Witnesses) != len(t.Signers) {
		return nil, errors.Wrapf(ErrInvalidTransaction,
			"%d witnesses do not cover %d signers", len(t.Witnesses),
			len(t.Signers))
	}

	w := serialization.NewWriter()
	t.encodeUnsigned(w)
	if len(t.Witnesses) > 0 {
		w.WriteVarInt(uint64(len(t.Witnesses)))
		for i := range t.Witnesses {
			t.Witnesses[i].encode(w)
		}
	}
	return w.Bytes(), nil
}

// Deserialize decodes a transaction from its wire form.  A payload that
// ends after the script yields an unsigned transaction; otherwise the
// witness section must cover the signers exactly, with nothing trailing.
func Deserialize(data []byte) (*Transaction, error) {
	r := serialization.NewReader(data)

	version, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if version != netparams.CurrentTransactionVersion {
		return nil, errors.Wrapf(ErrInvalidTransaction,
			"unsupported version %d", version)
	}

	t := &Transaction{Version: version}
	if t.Nonce, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if t.SystemFee, err = r.ReadInt64(); err != nil {
		return nil, err
	}
	if t.SystemFee < 0 {
		return nil, errors.Wrapf(ErrInvalidTransaction,
			"negative system fee %d", t.SystemFee)
	}
	if t.NetworkFee, err = r.ReadInt64(); err != nil {
		return nil, err
	}
	if t.NetworkFee < 0 {
		return nil, errors.Wrapf(ErrInvalidTransaction,
			"negative network fee %d", t.NetworkFee)
	}
	if t.ValidUntilBlock, err = r.ReadUint32(); err != nil {
		return nil, err
	}

	signerCount, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if signerCount == 0 || signerCount > netparams.MaxTransactionSigners {
		return nil, errors.Wrapf(ErrInvalidTransaction,
			"%d signers outside the range 1 to %d", signerCount,
			netparams.MaxTransactionSigners)
	}
	seenAccounts := make(map[util.Uint160]struct{}, signerCount)
	t.Signers = make([]Signer, signerCount)
	for i := range t.Signers {
		signer, err := DecodeSigner(r)
		if err != nil {
			return nil, err
		}
		if _, ok := seenAccounts[signer.Account()]; ok {
			return nil, errors.Wrapf(ErrInvalidTransaction,
				"duplicate signer account %s", signer.Account())
		}
		seenAccounts[signer.Account()] = struct{}{}
		t.Signers[i] = signer
	}

	attrCount, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if attrCount > netparams.MaxTransactionAttributes {
		return nil, errors.Wrapf(ErrInvalidTransaction,
			"%d attributes exceed the maximum of %d", attrCount,
			netparams.MaxTransactionAttributes)
	}
	seenAttrs := make(map[AttributeType]struct{}, attrCount)
	t.Attributes = make([]Attribute, attrCount)
	for i := range t.Attributes {
		attr, err := DecodeAttribute(r)
		if err != nil {
			return nil, err
		}
		if _, ok := seenAttrs[attr.Type()]; ok {
			return nil, errors.Wrapf(ErrInvalidTransaction,
				"duplicate %s attribute", attr.Type())
		}
		seenAttrs[attr.Type()] = struct{}{}
		t.Attributes[i] = attr
	}

	if t.Script, err = r.ReadVarBytes(netparams.MaxTransactionSize,
		"transaction script"); err != nil {

		return nil, err
	}
	if len(t.Script) == 0 {
		return nil, errors.Wrap(ErrInvalidTransaction, "empty script")
	}

	if r.Len() == 0 {
		return t, nil
	}

	witnessCount, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if witnessCount != signerCount {
		return nil, errors.Wrapf(ErrInvalidTransaction,
			"%d witnesses do not cover %d signers", witnessCount,
			signerCount)
	}
	t.Witnesses = make([]Witness, witnessCount)
	for i := range t.Witnesses {
		if t.Witnesses[i], err = decodeWitness(r); err != nil {
			return nil, err
		}
	}
	if r.Len() != 0 {
		return nil, errors.Wrapf(ErrInvalidTransaction,
			"%d trailing bytes after the witness section", r.Len())
	}
	return t, nil
}

// Hash returns the transaction hash, computed over the canonical
// pre-witness bytes and cached.  The header fields must not change once
// it has been taken.
func (t *Transaction) Hash() util.Uint256 {
	if t.hash == nil {
		hash := util.Sha256(t.SerializeUnsigned())
		t.hash = &hash
	}
	return *t.hash
}

// SigningDigest returns the digest each signer's key actually signs: the
// transaction hash prefixed with the little-endian network magic and
// hashed once more.  Mixing the magic in makes a signature worthless on
// any other network.
func (t *Transaction) SigningDigest(magic netparams.Magic) util.Uint256 {
	w := serialization.NewWriter()
	w.WriteUint32(uint32(magic))
	hash := t.Hash()
	w.WriteBytes(hash[:])
	return util.Sha256(w.Bytes())
}

// Sender returns the account paying the transaction's fees, the first
// signer's account.
func (t *Transaction) Sender() util.Uint160 {
	if len(t.Signers) == 0 {
		return util.Uint160{}
	}
	return t.Signers[0].Account()
}

// HasAttribute returns whether the transaction carries an attribute of
// the passed type.
func (t *Transaction) HasAttribute(attrType AttributeType) bool {
	for _, attr := range t.Attributes {
		if attr.Type() == attrType {
			return true
		}
	}
	return false
}

// Sign produces one witness per signer against the passed network magic
// and attaches them all, replacing any previous witnesses.  Account
// signers sign with their key and contract signers stage their verify
// parameters.  Multi-signature accounts and wire-only signers cannot be
// witnessed here: their witnesses are assembled out of band and attached
// through AddWitness, and their presence fails the whole call.
func (t *Transaction) Sign(magic netparams.Magic) error {
	digest := t.SigningDigest(magic)

	witnesses := make([]Witness, len(t.Signers))
	for i, signer := range t.Signers {
		var err error
		switch s := signer.(type) {
		case *AccountSigner:
			if s.IsMultiSig() {
				return errors.Wrapf(ErrInvalidTransaction,
					"signer %d fronts a multi-signature account and "+
						"cannot be signed automatically", i)
			}
			witnesses[i], err = NewSignatureWitness(digest, s.key)

		case *ContractSigner:
			witnesses[i], err = NewContractWitness(s.verifyParams...)

		default:
			return errors.Wrapf(ErrInvalidTransaction,
				"signer %d carries no signing material", i)
		}
		if err != nil {
			return err
		}
	}

	t.Witnesses = witnesses
	return nil
}

// AddWitness appends a witness assembled out of band.  Witnesses pair
// with signers by position, so they must be added in signer order.
func (t *Transaction) AddWitness(witness Witness) {
	t.Witnesses = append(t.Witnesses, witness)
}

// Send broadcasts the fully witnessed transaction through the provider
// and records the chain height at the time, returning the transaction
// hash the node acknowledged.
func (t *Transaction) Send(provider Provider) (util.Uint256, error) {
	if t.sent {
		return util.Uint256{}, errors.Wrap(ErrInvalidTransaction,
			"transaction was already sent")
	}
	if len(t.Witnesses) != len(t.Signers) {
		return util.Uint256{}, errors.Wrapf(ErrInvalidTransaction,
			"%d witnesses do not cover %d signers", len(t.Witnesses),
			len(t.Signers))
	}

	data, err := t.Serialize()
	if err != nil {
		return util.Uint256{}, err
	}
	if len(data) > netparams.MaxTransactionSize {
		return util.Uint256{}, errors.Wrapf(ErrInvalidTransaction,
			"%d serialized bytes exceed the maximum of %d", len(data),
			netparams.MaxTransactionSize)
	}

	blockCount, err := provider.BlockCount()
	if err != nil {
		return util.Uint256{}, err
	}
	hash, err := provider.SendRawTransaction(data)
	if err != nil {
		return util.Uint256{}, err
	}

	t.blockCountWhenSent = blockCount
	t.sent = true
	return hash, nil
}

// BlockCountWhenSent returns the chain height observed when Send
// broadcast the transaction, and whether it was sent at all.
func (t *Transaction) BlockCountWhenSent() (uint32, bool) {
	return t.blockCountWhenSent, t.sent
}
