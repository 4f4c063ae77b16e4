package keys

import (
	"bytes"
	"crypto/aes"

	"github.com/btcsuite/btcutil/base58"
	"github.com/neonetwork/neosdk/util"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// NEP-2 wraps a private key in a passphrase-encrypted base58check string.
// The raw layout is 0x01 0x42 0xE0 || addrhash4 || ciphertext32 where
// addrhash is the first four bytes of the double-SHA256 of the key's
// address and the ciphertext is the scalar XORed half-wise with scrypt
// output and encrypted with two independent AES-256 blocks.
const (
	nep2Prefix1 = 0x01
	nep2Prefix2 = 0x42
	nep2Flags   = 0xe0

	nep2PayloadSize   = 38
	nep2EncodedLength = 58

	addressHashSize = 4

	scryptKeyLength = 64
)

// ScryptParams are the cost parameters of the NEP-2 key derivation. They
// are part of the NEP-6 wallet format, so weaker-than-default values read
// from a wallet file are honored on decrypt.
type ScryptParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

// DefaultScryptParams returns the standard NEP-2 cost parameters.
func DefaultScryptParams() ScryptParams {
	return ScryptParams{N: 16384, R: 8, P: 8}
}

// ErrWrongPassphrase is returned by NEP2Decrypt when the passphrase does
// not reproduce the address hash embedded in the encrypted string.
var ErrWrongPassphrase = errors.New("provided passphrase does not decrypt the key")

// NEP2Encrypt encrypts the private key under the given passphrase.
func NEP2Encrypt(key *PrivateKey, passphrase string, params ScryptParams) (string, error) {
	addressHash := hashAddress(key.Address())
	derived, err := scrypt.Key([]byte(passphrase), addressHash, params.N, params.R, params.P, scryptKeyLength)
	if err != nil {
		return "", errors.Wrap(err, "could not derive encryption key")
	}
	derivedHalf1, derivedHalf2 := derived[:32], derived[32:]

	block, err := aes.NewCipher(derivedHalf2)
	if err != nil {
		return "", errors.Wrap(err, "could not initialize cipher")
	}
	xored := xorBytes(key.Bytes(), derivedHalf1)

	payload := make([]byte, nep2PayloadSize)
	payload[0] = nep2Prefix2
	payload[1] = nep2Flags
	copy(payload[2:], addressHash)
	block.Encrypt(payload[6:22], xored[:16])
	block.Encrypt(payload[22:], xored[16:])

	return base58.CheckEncode(payload, nep2Prefix1), nil
}

// NEP2Decrypt decrypts an NEP-2 string under the given passphrase. A
// passphrase that fails the embedded address-hash check is reported with
// ErrWrongPassphrase, distinctly from a malformed string.
func NEP2Decrypt(encrypted, passphrase string, params ScryptParams) (*PrivateKey, error) {
	if len(encrypted) != nep2EncodedLength {
		return nil, errors.Errorf("encrypted key string is %d characters, want %d",
			len(encrypted), nep2EncodedLength)
	}
	payload, version, err := base58.CheckDecode(encrypted)
	if err != nil {
		return nil, errors.Wrap(err, "malformed encrypted key string")
	}
	if version != nep2Prefix1 || len(payload) != nep2PayloadSize ||
		payload[0] != nep2Prefix2 || payload[1] != nep2Flags {

		return nil, errors.New("encrypted key header bytes are malformed")
	}
	addressHash := payload[2:6]

	derived, err := scrypt.Key([]byte(passphrase), addressHash, params.N, params.R, params.P, scryptKeyLength)
	if err != nil {
		return nil, errors.Wrap(err, "could not derive encryption key")
	}
	derivedHalf1, derivedHalf2 := derived[:32], derived[32:]

	block, err := aes.NewCipher(derivedHalf2)
	if err != nil {
		return nil, errors.Wrap(err, "could not initialize cipher")
	}
	xored := make([]byte, PrivateKeySize)
	block.Decrypt(xored[:16], payload[6:22])
	block.Decrypt(xored[16:], payload[22:])

	key, err := PrivateKeyFromBytes(xorBytes(xored, derivedHalf1))
	if err != nil {
		// A wrong passphrase decrypts to random bytes, which may fall
		// outside the scalar range.
		return nil, ErrWrongPassphrase
	}
	if !bytes.Equal(hashAddress(key.Address()), addressHash) {
		return nil, ErrWrongPassphrase
	}
	return key, nil
}

func hashAddress(address string) []byte {
	hash := util.DoubleSha256([]byte(address))
	return hash.Bytes()[:addressHashSize]
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
