package keys

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

const (
	// wifVersion is the base58check version byte of a WIF string.
	wifVersion = 0x80

	// wifCompressedSuffix marks the key as belonging to a compressed
	// public key. Uncompressed encodings are not produced or accepted.
	wifCompressedSuffix = 0x01
)

// WIF serializes the private key in wallet import format:
// base58check(0x80 || key || 0x01).
func (k *PrivateKey) WIF() string {
	payload := make([]byte, 0, PrivateKeySize+1)
	payload = append(payload, k.Bytes()...)
	payload = append(payload, wifCompressedSuffix)
	return base58.CheckEncode(payload, wifVersion)
}

// PrivateKeyFromWIF deserializes a private key from wallet import format.
func PrivateKeyFromWIF(wif string) (*PrivateKey, error) {
	payload, version, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, errors.Wrap(err, "malformed WIF string")
	}
	if version != wifVersion {
		return nil, errors.Errorf("WIF version is 0x%02x, want 0x%02x", version, wifVersion)
	}
	if len(payload) != PrivateKeySize+1 {
		return nil, errors.Errorf("WIF payload is %d bytes, want %d",
			len(payload), PrivateKeySize+1)
	}
	if payload[PrivateKeySize] != wifCompressedSuffix {
		return nil, errors.Errorf("WIF suffix is 0x%02x, want 0x%02x",
			payload[PrivateKeySize], wifCompressedSuffix)
	}
	return PrivateKeyFromBytes(payload[:PrivateKeySize])
}
