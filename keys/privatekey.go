package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"io"
	"math/big"

	"github.com/neonetwork/neosdk/util"
	"github.com/pkg/errors"
	"lukechampine.com/frand"
)

const (
	// PrivateKeySize is the serialized size of a private key scalar.
	PrivateKeySize = 32
)

// entropyReader adapts the package entropy source to io.Reader so the
// stdlib ECDSA routines can draw nonces from it.
type entropyReader struct{}

func (entropyReader) Read(p []byte) (int, error) {
	frand.Read(p)
	return len(p), nil
}

var entropy io.Reader = entropyReader{}

// PrivateKey is a NIST P-256 private key together with its derived public
// point. The zero value is not usable; construct values with
// GeneratePrivateKey, PrivateKeyFromBytes, PrivateKeyFromWIF or NEP2Decrypt.
type PrivateKey struct {
	d   *big.Int
	pub *PublicKey
}

// GeneratePrivateKey returns a new private key drawn from a secure entropy
// source.
func GeneratePrivateKey() (*PrivateKey, error) {
	n := elliptic.P256().Params().N
	buf := make([]byte, PrivateKeySize)
	for {
		frand.Read(buf)
		d := new(big.Int).SetBytes(buf)
		if d.Sign() > 0 && d.Cmp(n) < 0 {
			return newPrivateKey(d), nil
		}
	}
}

// PrivateKeyFromBytes deserializes a private key from the given 32-byte
// big-endian scalar.
func PrivateKeyFromBytes(serialized []byte) (*PrivateKey, error) {
	if len(serialized) != PrivateKeySize {
		return nil, errors.Errorf("invalid private key length %d, want %d",
			len(serialized), PrivateKeySize)
	}
	d := new(big.Int).SetBytes(serialized)
	if d.Sign() == 0 || d.Cmp(elliptic.P256().Params().N) >= 0 {
		return nil, errors.New("private key scalar out of range")
	}
	return newPrivateKey(d), nil
}

func newPrivateKey(d *big.Int) *PrivateKey {
	x, y := elliptic.P256().ScalarBaseMult(d.Bytes())
	return &PrivateKey{d: d, pub: &PublicKey{x: x, y: y}}
}

// Bytes serializes the private key scalar as 32 big-endian bytes.
func (k *PrivateKey) Bytes() []byte {
	return k.d.FillBytes(make([]byte, PrivateKeySize))
}

// PublicKey returns the public key derived from k.
func (k *PrivateKey) PublicKey() *PublicKey {
	return k.pub
}

// ScriptHash returns the script hash of the key's verification script.
func (k *PrivateKey) ScriptHash() util.Uint160 {
	return k.pub.ScriptHash()
}

// Address returns the base58check address of the key's verification script.
func (k *PrivateKey) Address() string {
	return k.pub.Address()
}

// SignHash signs an already-computed 32-byte digest and returns the raw
// 64-byte r||s signature, each half serialized as 32 big-endian bytes.
func (k *PrivateKey) SignHash(hash util.Uint256) ([]byte, error) {
	priv := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: elliptic.P256(), X: k.pub.x, Y: k.pub.y},
		D:         k.d,
	}
	r, s, err := ecdsa.Sign(entropy, priv, hash.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "could not sign digest")
	}
	signature := make([]byte, signatureComponentSize*2)
	r.FillBytes(signature[:signatureComponentSize])
	s.FillBytes(signature[signatureComponentSize:])
	return signature, nil
}

// Sign hashes message with SHA-256 and signs the digest. See SignHash.
func (k *PrivateKey) Sign(message []byte) ([]byte, error) {
	return k.SignHash(util.Sha256(message))
}
