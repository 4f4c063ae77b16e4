package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/hex"
	"encoding/json"
	"math/big"

	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
	"github.com/pkg/errors"
)

const signatureComponentSize = txscript.SignatureSize / 2

// PublicKey is a point on the NIST P-256 curve. Its canonical serialized
// form is the 33-byte compressed encoding.
type PublicKey struct {
	x *big.Int
	y *big.Int
}

// PublicKeyFromBytes deserializes a public key from its 33-byte compressed
// encoding.
func PublicKeyFromBytes(serialized []byte) (*PublicKey, error) {
	if len(serialized) != txscript.CompressedPubKeySize {
		return nil, errors.Errorf("invalid public key length %d, want %d",
			len(serialized), txscript.CompressedPubKeySize)
	}
	x, y := elliptic.UnmarshalCompressed(elliptic.P256(), serialized)
	if x == nil {
		return nil, errors.New("serialized bytes are not a point on the curve")
	}
	return &PublicKey{x: x, y: y}, nil
}

// PublicKeyFromString deserializes a public key from the hex form of its
// compressed encoding.
func PublicKeyFromString(serialized string) (*PublicKey, error) {
	decoded, err := hex.DecodeString(serialized)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode public key hex %q", serialized)
	}
	return PublicKeyFromBytes(decoded)
}

// Bytes serializes the public key into its 33-byte compressed encoding.
func (k *PublicKey) Bytes() []byte {
	return elliptic.MarshalCompressed(elliptic.P256(), k.x, k.y)
}

// String returns the hex form of the compressed encoding.
func (k *PublicKey) String() string {
	return hex.EncodeToString(k.Bytes())
}

// Equal reports whether both keys are the same curve point.
func (k *PublicKey) Equal(other *PublicKey) bool {
	return k.x.Cmp(other.x) == 0 && k.y.Cmp(other.y) == 0
}

// VerifyHash checks the raw 64-byte r||s signature over an
// already-computed 32-byte digest.
func (k *PublicKey) VerifyHash(hash util.Uint256, signature []byte) bool {
	if len(signature) != txscript.SignatureSize {
		return false
	}
	r := new(big.Int).SetBytes(signature[:signatureComponentSize])
	s := new(big.Int).SetBytes(signature[signatureComponentSize:])
	pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: k.x, Y: k.y}
	return ecdsa.Verify(pub, hash.Bytes(), r, s)
}

// Verify hashes message with SHA-256 and checks the signature against the
// digest. See VerifyHash.
func (k *PublicKey) Verify(message, signature []byte) bool {
	return k.VerifyHash(util.Sha256(message), signature)
}

// VerificationScript returns the canonical single-signature verification
// script for the key.
func (k *PublicKey) VerificationScript() []byte {
	script, err := txscript.SingleSigScript(k.Bytes())
	if err != nil {
		// Bytes always returns a well-formed compressed point.
		panic(err)
	}
	return script
}

// ScriptHash returns the script hash of the key's verification script.
func (k *PublicKey) ScriptHash() util.Uint160 {
	return txscript.ScriptHash(k.VerificationScript())
}

// Address returns the base58check address of the key's verification script.
func (k *PublicKey) Address() string {
	return util.EncodeAddress(k.ScriptHash())
}

// MarshalJSON serializes the key as a hex string of its compressed encoding.
func (k *PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON deserializes the key from a hex string.
func (k *PublicKey) UnmarshalJSON(data []byte) error {
	var serialized string
	if err := json.Unmarshal(data, &serialized); err != nil {
		return errors.Wrap(err, "public key is not a JSON string")
	}
	decoded, err := PublicKeyFromString(serialized)
	if err != nil {
		return err
	}
	*k = *decoded
	return nil
}

// PublicKeys is a convenience slice of public keys.
type PublicKeys []*PublicKey

// Bytes serializes every key in the slice.
func (keys PublicKeys) Bytes() [][]byte {
	serialized := make([][]byte, len(keys))
	for i, key := range keys {
		serialized[i] = key.Bytes()
	}
	return serialized
}

// Contains reports whether the slice holds the given curve point.
func (keys PublicKeys) Contains(key *PublicKey) bool {
	for _, candidate := range keys {
		if candidate.Equal(key) {
			return true
		}
	}
	return false
}
