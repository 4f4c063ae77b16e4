// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Sha256 calculates sha256(buf) and returns it as a Uint256.
func Sha256(buf []byte) Uint256 {
	return Uint256(sha256.Sum256(buf))
}

// DoubleSha256 calculates sha256(sha256(buf)) and returns it as a Uint256.
func DoubleSha256(buf []byte) Uint256 {
	first := sha256.Sum256(buf)
	return Uint256(sha256.Sum256(first[:]))
}

// Hash160 calculates ripemd160(sha256(buf)) and returns it as a Uint160.
// This is the hash that turns a verification script into an account or
// contract identifier.
func Hash160(buf []byte) Uint160 {
	var u Uint160
	first := sha256.Sum256(buf)
	hasher := ripemd160.New()
	// The hash.Hash interface never returns a write error.
	_, _ = hasher.Write(first[:])
	copy(u[:], hasher.Sum(nil))
	return u
}
