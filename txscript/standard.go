// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/serialization"
	"github.com/neonetwork/neosdk/util"
)

const (
	// CompressedPubKeySize is the serialized size of a compressed
	// public key, the only key form scripts carry.
	CompressedPubKeySize = 33

	// SignatureSize is the serialized size of a signature: the raw
	// concatenation of the r and s scalars.
	SignatureSize = 64

	// SingleSigScriptSize is the exact serialized size of a single
	// signature verification script.
	SingleSigScriptSize = 40

	// MaxMultiSigKeys is the maximum number of public keys a multi
	// signature verification script may carry.
	MaxMultiSigKeys = 1024
)

// ErrStandardScript is the class of error returned when a byte slice does
// not form the standard script a caller asked to build or take apart.
var ErrStandardScript = errors.New("not a standard script")

// SingleSigScript returns a verification script that passes when the
// witness carries one valid signature by the passed serialized compressed
// public key.
func SingleSigScript(serializedPubKey []byte) ([]byte, error) {
	if len(serializedPubKey) != CompressedPubKeySize {
		return nil, errors.Wrapf(ErrStandardScript,
			"public key must be %d bytes, got %d", CompressedPubKeySize,
			len(serializedPubKey))
	}

	return NewScriptBuilder().
		AddData(serializedPubKey).
		AddSyscall(SystemCryptoCheckSig).
		Script()
}

// MultiSigScript returns a verification script that passes when the
// witness carries valid signatures by at least threshold of the passed
// serialized compressed public keys.
//
// The keys are sorted ascending by their serialized bytes before being
// emitted, so any permutation of the same key set produces the same
// script and therefore the same account.
func MultiSigScript(threshold int, serializedPubKeys ...[]byte) ([]byte, error) {
	if threshold < 1 {
		return nil, errors.Wrapf(ErrStandardScript,
			"signing threshold %d below minimum 1", threshold)
	}
	if len(serializedPubKeys) < threshold {
		return nil, errors.Wrapf(ErrStandardScript,
			"threshold %d exceeds the %d supplied public keys", threshold,
			len(serializedPubKeys))
	}
	if len(serializedPubKeys) > MaxMultiSigKeys {
		return nil, errors.Wrapf(ErrStandardScript,
			"%d public keys exceed the maximum of %d",
			len(serializedPubKeys), MaxMultiSigKeys)
	}

	sorted := make([][]byte, len(serializedPubKeys))
	for i, pubKey := range serializedPubKeys {
		if len(pubKey) != CompressedPubKeySize {
			return nil, errors.Wrapf(ErrStandardScript,
				"public key %d must be %d bytes, got %d", i,
				CompressedPubKeySize, len(pubKey))
		}
		sorted[i] = pubKey
	}
	sortByteSlices(sorted)

	builder := NewScriptBuilder().AddInt64(int64(threshold))
	for _, pubKey := range sorted {
		builder.AddData(pubKey)
	}
	return builder.
		AddInt64(int64(len(sorted))).
		AddSyscall(SystemCryptoCheckMultisig).
		Script()
}

// sortByteSlices sorts the slices ascending by a bytewise comparison.
// The key sets involved are small, so a simple insertion sort keeps this
// free of further imports.
func sortByteSlices(slices [][]byte) {
	for i := 1; i < len(slices); i++ {
		for j := i; j > 0 && bytes.Compare(slices[j], slices[j-1]) < 0; j-- {
			slices[j], slices[j-1] = slices[j-1], slices[j]
		}
	}
}

// IsSingleSigScript returns whether the passed script is the standard
// single signature verification form.
func IsSingleSigScript(script []byte) bool {
	if len(script) != SingleSigScriptSize {
		return false
	}
	if OpCode(script[0]) != OP_PUSHDATA1 ||
		script[1] != CompressedPubKeySize {

		return false
	}
	if OpCode(script[2+CompressedPubKeySize]) != OP_SYSCALL {
		return false
	}
	tag := SystemCryptoCheckSig.Tag()
	return bytes.Equal(script[3+CompressedPubKeySize:], tag[:])
}

// IsMultiSigScript returns whether the passed script is the standard
// multi signature verification form.
func IsMultiSigScript(script []byte) bool {
	_, _, err := ParseMultiSigScript(script)
	return err == nil
}

// ParseMultiSigScript takes apart a standard multi signature verification
// script and returns its signing threshold and serialized public keys in
// script order.  ErrStandardScript is returned for any other script.
func ParseMultiSigScript(script []byte) (int, [][]byte, error) {
	// The smallest possible form carries one key: threshold push, one
	// data push, key count push and the final system call.
	if len(script) < 42 {
		return 0, nil, errors.Wrapf(ErrStandardScript,
			"%d bytes is below the minimum multisig script size",
			len(script))
	}

	r := serialization.NewReader(script)
	threshold, err := readPushedInt(r)
	if err != nil {
		return 0, nil, err
	}
	if threshold < 1 || threshold > MaxMultiSigKeys {
		return 0, nil, errors.Wrapf(ErrStandardScript,
			"signing threshold %d out of range", threshold)
	}

	var pubKeys [][]byte
	for {
		r.Mark()
		op, err := r.ReadUint8()
		if err != nil {
			return 0, nil, errors.Wrap(ErrStandardScript, err.Error())
		}
		if OpCode(op) != OP_PUSHDATA1 {
			r.Reset()
			break
		}
		size, err := r.ReadUint8()
		if err != nil || size != CompressedPubKeySize {
			return 0, nil, errors.Wrapf(ErrStandardScript,
				"malformed public key push")
		}
		pubKey, err := r.ReadBytes(CompressedPubKeySize)
		if err != nil {
			return 0, nil, errors.Wrap(ErrStandardScript, err.Error())
		}
		pubKeys = append(pubKeys, pubKey)
	}

	keyCount, err := readPushedInt(r)
	if err != nil {
		return 0, nil, err
	}
	if keyCount != int64(len(pubKeys)) || keyCount < threshold {
		return 0, nil, errors.Wrapf(ErrStandardScript,
			"key count %d does not cover %d pushed keys at threshold %d",
			keyCount, len(pubKeys), threshold)
	}

	op, err := r.ReadUint8()
	if err != nil || OpCode(op) != OP_SYSCALL {
		return 0, nil, errors.Wrap(ErrStandardScript,
			"missing checkmultisig call")
	}
	tagBytes, err := r.ReadBytes(4)
	if err != nil {
		return 0, nil, errors.Wrap(ErrStandardScript, err.Error())
	}
	tag := SystemCryptoCheckMultisig.Tag()
	if !bytes.Equal(tagBytes, tag[:]) || r.Len() != 0 {
		return 0, nil, errors.Wrap(ErrStandardScript,
			"script does not end with a checkmultisig call")
	}

	return int(threshold), pubKeys, nil
}

// readPushedInt decodes the small class of integer pushes the standard
// scripts use: the dedicated constant opcodes plus the 8 and 16 bit
// operand forms.
func readPushedInt(r *serialization.Reader) (int64, error) {
	opByte, err := r.ReadUint8()
	if err != nil {
		return 0, errors.Wrap(ErrStandardScript, err.Error())
	}

	op := OpCode(opByte)
	switch {
	case op == OP_PUSHM1:
		return -1, nil

	case op >= OP_PUSH0 && op <= OP_PUSH16:
		return int64(op - OP_PUSH0), nil

	case op == OP_PUSHINT8:
		val, err := r.ReadUint8()
		if err != nil {
			return 0, errors.Wrap(ErrStandardScript, err.Error())
		}
		return int64(val), nil

	case op == OP_PUSHINT16:
		val, err := r.ReadUint16()
		if err != nil {
			return 0, errors.Wrap(ErrStandardScript, err.Error())
		}
		return int64(val), nil

	default:
		return 0, errors.Wrapf(ErrStandardScript,
			"opcode %s is not an integer push", op)
	}
}

// ContractHashScript returns the synthetic deployment script a contract
// is identified by.  The script is never executed; hashing it yields the
// contract's script hash, which therefore binds the deploying sender, the
// code checksum and the contract name.
func ContractHashScript(sender util.Uint160, checksum uint32, name string) ([]byte, error) {
	return NewScriptBuilder().
		AddOp(OP_ABORT).
		AddData(sender.Bytes()).
		AddInt64(int64(checksum)).
		AddString(name).
		Script()
}

// ContractHash computes the script hash a contract deployed by sender
// with the passed code checksum and name is addressed by.
func ContractHash(sender util.Uint160, checksum uint32, name string) (util.Uint160, error) {
	script, err := ContractHashScript(sender, checksum, name)
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Hash160(script), nil
}

// ScriptHash returns the account identifier of a verification script.
func ScriptHash(script []byte) util.Uint160 {
	return util.Hash160(script)
}
