package transaction

import (
	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/contract"
	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/serialization"
	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
)

// ErrInvalidWitness is the class of error returned when a witness cannot
// be constructed from the supplied material.
var ErrInvalidWitness = errors.New("invalid witness")

// Witness is the authorization proof attached per signer: an invocation
// script staging signatures or verify-method arguments, and the
// verification script consuming them.  A contract witness leaves the
// verification script empty, delegating the check to the chain.
type Witness struct {
	Invocation   []byte
	Verification []byte
}

// NewSignatureWitness signs the passed digest with key and wraps the
// signature into a witness for the key's single-signature account.
func NewSignatureWitness(digest util.Uint256, key *keys.PrivateKey) (Witness, error) {
	signature, err := key.SignHash(digest)
	if err != nil {
		return Witness{}, err
	}
	invocation, err := txscript.NewScriptBuilder().AddData(signature).Script()
	if err != nil {
		return Witness{}, err
	}
	return Witness{
		Invocation:   invocation,
		Verification: key.PublicKey().VerificationScript(),
	}, nil
}

// NewMultiSigWitness assembles a witness for the multi-signature account
// of the passed verification script.  The signatures must already be in
// the script's key order; exactly the first threshold of them are staged
// and supplying fewer is an error.
func NewMultiSigWitness(verificationScript []byte, signatures ...[]byte) (Witness, error) {
	threshold, _, err := txscript.ParseMultiSigScript(verificationScript)
	if err != nil {
		return Witness{}, err
	}
	if len(signatures) < threshold {
		return Witness{}, errors.Wrapf(ErrInvalidWitness,
			"%d signatures cannot meet the signing threshold of %d",
			len(signatures), threshold)
	}

	builder := txscript.NewScriptBuilder()
	for _, signature := range signatures[:threshold] {
		if len(signature) != txscript.SignatureSize {
			return Witness{}, errors.Wrapf(ErrInvalidWitness,
				"signature must be %d bytes, got %d",
				txscript.SignatureSize, len(signature))
		}
		builder.AddData(signature)
	}
	invocation, err := builder.Script()
	if err != nil {
		return Witness{}, err
	}

	verification := make([]byte, len(verificationScript))
	copy(verification, verificationScript)
	return Witness{Invocation: invocation, Verification: verification}, nil
}

// NewContractWitness stages the verify-method arguments of a contract
// signer.  With no arguments the witness is entirely empty, which is the
// wire form for a parameterless verify.
func NewContractWitness(verifyParams ...contract.Parameter) (Witness, error) {
	if len(verifyParams) == 0 {
		return Witness{}, nil
	}

	builder := txscript.NewScriptBuilder()
	if err := contract.AppendParameters(builder, verifyParams...); err != nil {
		return Witness{}, err
	}
	invocation, err := builder.Script()
	if err != nil {
		return Witness{}, err
	}
	return Witness{Invocation: invocation}, nil
}

// ScriptHash returns the account the witness authorizes, the script hash
// of its verification script.
func (w *Witness) ScriptHash() util.Uint160 {
	return txscript.ScriptHash(w.Verification)
}

func (w *Witness) encode(writer *serialization.Writer) {
	writer.WriteVarBytes(w.Invocation)
	writer.WriteVarBytes(w.Verification)
}

func decodeWitness(r *serialization.Reader) (Witness, error) {
	invocation, err := r.ReadVarBytes(netparams.MaxTransactionSize,
		"witness invocation script")
	if err != nil {
		return Witness{}, err
	}
	verification, err := r.ReadVarBytes(netparams.MaxTransactionSize,
		"witness verification script")
	if err != nil {
		return Witness{}, err
	}
	return Witness{Invocation: invocation, Verification: verification}, nil
}
