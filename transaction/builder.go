package transaction

import (
	"math"

	"github.com/pkg/errors"
	"lukechampine.com/frand"

	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
)

// Provider supplies the chain state transaction assembly cannot know
// locally.  The rpcclient package implements it against a node; tests
// substitute fakes.
type Provider interface {
	// NetworkMagic returns the magic of the network the provider is
	// connected to.
	NetworkMagic() (netparams.Magic, error)

	// BlockCount returns the current chain height.
	BlockCount() (uint32, error)

	// Committee returns the public keys of the current committee
	// members.
	Committee() (keys.PublicKeys, error)

	// SystemFee returns the execution cost of the script when invoked
	// on behalf of the passed signers.
	SystemFee(script []byte, signers []Signer) (int64, error)

	// NetworkFee returns the network fee required by the passed
	// serialized candidate transaction.
	NetworkFee(rawTransaction []byte) (int64, error)

	// GasBalance returns the GAS balance of the account, in GAS
	// fractions.
	GasBalance(account util.Uint160) (int64, error)

	// SendRawTransaction broadcasts a serialized signed transaction
	// and returns the hash the node acknowledged.
	SendRawTransaction(rawTransaction []byte) (util.Uint256, error)
}

// ErrConfiguration is the class of error returned when a transaction
// cannot be assembled from the builder's current state.  Nothing is
// produced on failure.
var ErrConfiguration = errors.New("invalid transaction configuration")

// Builder accumulates a transaction's configuration and turns it into a
// validated transaction, consulting the provider for defaults and fees.
// Configuration methods chain; the first failure sticks and surfaces when
// the transaction is requested.
type Builder struct {
	provider Provider

	script     []byte
	signers    []Signer
	attributes []Attribute

	nonce              uint32
	hasNonce           bool
	validUntilBlock    uint32
	hasValidUntilBlock bool

	additionalSystemFee  int64
	additionalNetworkFee int64

	feeConsumer func(requiredFee, gasBalance int64)

	err error
}

// NewBuilder returns a builder assembling against the passed provider.
func NewBuilder(provider Provider) *Builder {
	return &Builder{provider: provider}
}

// SetScript sets the transaction's entry script.
func (b *Builder) SetScript(script []byte) *Builder {
	if b.err != nil {
		return b
	}
	if len(script) == 0 {
		b.err = errors.Wrap(ErrConfiguration, "empty script")
		return b
	}
	b.script = make([]byte, len(script))
	copy(b.script, script)
	return b
}

// AddSigners appends authorizing parties.  The first signer added is the
// sender and pays the fees.
func (b *Builder) AddSigners(signers ...Signer) *Builder {
	if b.err != nil {
		return b
	}

	seen := make(map[util.Uint160]struct{}, len(b.signers)+len(signers))
	for _, signer := range b.signers {
		seen[signer.Account()] = struct{}{}
	}
	for _, signer := range signers {
		if signer == nil {
			b.err = errors.Wrap(ErrConfiguration, "nil signer")
			return b
		}
		if _, ok := seen[signer.Account()]; ok {
			b.err = errors.Wrapf(ErrConfiguration,
				"duplicate signer account %s", signer.Account())
			return b
		}
		seen[signer.Account()] = struct{}{}
	}
	if len(seen) > netparams.MaxTransactionSigners {
		b.err = errors.Wrapf(ErrConfiguration,
			"%d signers exceed the maximum of %d", len(seen),
			netparams.MaxTransactionSigners)
		return b
	}

	b.signers = append(b.signers, signers...)
	return b
}

// AddAttributes appends typed extension records.
func (b *Builder) AddAttributes(attrs ...Attribute) *Builder {
	if b.err != nil {
		return b
	}

	seen := make(map[AttributeType]struct{}, len(b.attributes)+len(attrs))
	for _, attr := range b.attributes {
		seen[attr.Type()] = struct{}{}
	}
	for _, attr := range attrs {
		if attr == nil {
			b.err = errors.Wrap(ErrConfiguration, "nil attribute")
			return b
		}
		if err := validateAttribute(attr); err != nil {
			b.err = err
			return b
		}
		if _, ok := seen[attr.Type()]; ok {
			b.err = errors.Wrapf(ErrConfiguration,
				"duplicate %s attribute", attr.Type())
			return b
		}
		seen[attr.Type()] = struct{}{}
	}
	if len(b.attributes)+len(attrs) > netparams.MaxTransactionAttributes {
		b.err = errors.Wrapf(ErrConfiguration,
			"%d attributes exceed the maximum of %d",
			len(b.attributes)+len(attrs),
			netparams.MaxTransactionAttributes)
		return b
	}

	b.attributes = append(b.attributes, attrs...)
	return b
}

// SetNonce fixes the transaction nonce.  Unset, a random nonce is drawn
// when the transaction is assembled.
func (b *Builder) SetNonce(nonce uint32) *Builder {
	if b.err != nil {
		return b
	}
	b.nonce = nonce
	b.hasNonce = true
	return b
}

// SetValidUntilBlock fixes the last chain height the transaction may be
// included at.  Unset, it defaults to the furthest height the connected
// network permits.
func (b *Builder) SetValidUntilBlock(height uint32) *Builder {
	if b.err != nil {
		return b
	}
	b.validUntilBlock = height
	b.hasValidUntilBlock = true
	return b
}

// SetAdditionalSystemFee adds a safety margin on top of the system fee
// the provider reports.
func (b *Builder) SetAdditionalSystemFee(fee int64) *Builder {
	if b.err != nil {
		return b
	}
	if fee < 0 {
		b.err = errors.Wrapf(ErrConfiguration,
			"negative additional system fee %d", fee)
		return b
	}
	b.additionalSystemFee = fee
	return b
}

// SetAdditionalNetworkFee adds a safety margin on top of the network fee
// the provider reports.
func (b *Builder) SetAdditionalNetworkFee(fee int64) *Builder {
	if b.err != nil {
		return b
	}
	if fee < 0 {
		b.err = errors.Wrapf(ErrConfiguration,
			"negative additional network fee %d", fee)
		return b
	}
	b.additionalNetworkFee = fee
	return b
}

// SetFeeConsumer installs an advisory callback invoked when the sender's
// GAS balance does not cover the combined fees.  Assembly proceeds
// regardless; enforcing the shortfall is the caller's decision.
func (b *Builder) SetFeeConsumer(consumer func(requiredFee, gasBalance int64)) *Builder {
	if b.err != nil {
		return b
	}
	b.feeConsumer = consumer
	return b
}

// Unsigned validates the accumulated configuration and assembles the
// unsigned transaction, filling nonce, expiry height and fees from the
// provider where they were not set explicitly.
func (b *Builder) Unsigned() (*Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.provider == nil {
		return nil, errors.Wrap(ErrConfiguration, "no provider")
	}
	if len(b.script) == 0 {
		return nil, errors.Wrap(ErrConfiguration, "no script was set")
	}
	if len(b.signers) == 0 {
		return nil, errors.Wrap(ErrConfiguration,
			"at least one signer is required")
	}

	for _, attr := range b.attributes {
		if attr.Type() != AttributeHighPriority {
			continue
		}
		if err := b.checkHighPriority(); err != nil {
			return nil, err
		}
	}

	nonce := b.nonce
	if !b.hasNonce {
		nonce = uint32(frand.Uint64n(math.MaxUint32 + 1))
	}

	validUntilBlock := b.validUntilBlock
	if !b.hasValidUntilBlock {
		var err error
		validUntilBlock, err = b.defaultValidUntilBlock()
		if err != nil {
			return nil, err
		}
	}

	systemFee, err := b.provider.SystemFee(b.script, b.signers)
	if err != nil {
		return nil, errors.Wrap(err, "fetching system fee")
	}

	signers := make([]Signer, len(b.signers))
	copy(signers, b.signers)
	attributes := make([]Attribute, len(b.attributes))
	copy(attributes, b.attributes)

	tx := &Transaction{
		Version:         netparams.CurrentTransactionVersion,
		Nonce:           nonce,
		SystemFee:       systemFee + b.additionalSystemFee,
		ValidUntilBlock: validUntilBlock,
		Signers:         signers,
		Attributes:      attributes,
		Script:          b.script,
	}

	networkFee, err := b.provider.NetworkFee(tx.SerializeUnsigned())
	if err != nil {
		return nil, errors.Wrap(err, "fetching network fee")
	}
	tx.NetworkFee = networkFee + b.additionalNetworkFee

	if size := len(tx.SerializeUnsigned()); size > netparams.MaxTransactionSize {
		return nil, errors.Wrapf(ErrConfiguration,
			"%d serialized bytes exceed the maximum of %d", size,
			netparams.MaxTransactionSize)
	}

	if b.feeConsumer != nil {
		balance, err := b.provider.GasBalance(tx.Sender())
		if err != nil {
			return nil, errors.Wrap(err, "fetching sender GAS balance")
		}
		if required := tx.SystemFee + tx.NetworkFee; required > balance {
			b.feeConsumer(required, balance)
		}
	}

	return tx, nil
}

// Sign assembles the unsigned transaction and signs it against the
// network the provider reports.
func (b *Builder) Sign() (*Transaction, error) {
	tx, err := b.Unsigned()
	if err != nil {
		return nil, err
	}
	magic, err := b.provider.NetworkMagic()
	if err != nil {
		return nil, errors.Wrap(err, "fetching network magic")
	}
	if err := tx.Sign(magic); err != nil {
		return nil, err
	}
	return tx, nil
}

// defaultValidUntilBlock places the expiry as far out as the connected
// network permits.
func (b *Builder) defaultValidUntilBlock() (uint32, error) {
	magic, err := b.provider.NetworkMagic()
	if err != nil {
		return 0, errors.Wrap(err, "fetching network magic")
	}
	params, ok := netparams.LookupParams(magic)
	if !ok {
		return 0, errors.Errorf("no registered parameters for network "+
			"magic %#x; register the network first", uint32(magic))
	}
	blockCount, err := b.provider.BlockCount()
	if err != nil {
		return 0, errors.Wrap(err, "fetching block count")
	}
	return blockCount + params.MaxValidUntilBlockIncrement - 1, nil
}

// checkHighPriority verifies that some signer represents a committee
// member, directly or as a participant of a multi-signature account.
func (b *Builder) checkHighPriority() error {
	committee, err := b.provider.Committee()
	if err != nil {
		return errors.Wrap(err, "fetching committee")
	}

	committeeHashes := make(map[util.Uint160]struct{}, len(committee))
	for _, key := range committee {
		committeeHashes[key.ScriptHash()] = struct{}{}
	}

	for _, signer := range b.signers {
		if _, ok := committeeHashes[signer.Account()]; ok {
			return nil
		}
		account, ok := signer.(*AccountSigner)
		if !ok || !account.IsMultiSig() {
			continue
		}
		_, pubKeys, err := txscript.ParseMultiSigScript(account.verification)
		if err != nil {
			continue
		}
		for _, raw := range pubKeys {
			key, err := keys.PublicKeyFromBytes(raw)
			if err != nil {
				continue
			}
			if _, ok := committeeHashes[key.ScriptHash()]; ok {
				return nil
			}
		}
	}
	return errors.Wrap(ErrConfiguration,
		"the high priority attribute requires a committee member among "+
			"the signers")
}
