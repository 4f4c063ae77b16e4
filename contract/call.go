// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
)

// DefaultMaxIteratorItems bounds how many items an iterator unwrapping
// script collects when the caller does not choose a limit.
const DefaultMaxIteratorItems = 100

// NewCallScript returns a script that calls method on the contract with
// the passed arguments and call permissions.  Executing the script leaves
// the method's return value on the stack.
func NewCallScript(contractHash util.Uint160, method string, flags txscript.CallFlag, params ...Parameter) ([]byte, error) {
	if method == "" {
		return nil, errors.New("contract call needs a method name")
	}

	builder := txscript.NewScriptBuilder()
	if err := addCall(builder, contractHash, method, flags, params); err != nil {
		return nil, err
	}
	return builder.Script()
}

// addCall appends a full contract call to the builder: the packed
// argument array, the call flags, the method name, the contract hash and
// the contract call system call.
func addCall(builder *txscript.ScriptBuilder, contractHash util.Uint160, method string, flags txscript.CallFlag, params []Parameter) error {
	if err := addArray(builder, params); err != nil {
		return err
	}
	builder.AddInt64(int64(flags)).
		AddString(method).
		AddData(contractHash.Bytes()).
		AddSyscall(txscript.SystemContractCall)
	return nil
}

// AppendParameters pushes every parameter onto the builder in caller
// order, without packing them into an array.  Contract witnesses use it to
// stage the arguments of an on-chain verify method.
func AppendParameters(builder *txscript.ScriptBuilder, params ...Parameter) error {
	for _, param := range params {
		if err := addParameter(builder, param); err != nil {
			return err
		}
	}
	return nil
}

// addArray packs the passed parameters into an array on the stack.
// Elements are pushed last to first so unpacking yields them in caller
// order.
func addArray(builder *txscript.ScriptBuilder, elems []Parameter) error {
	if len(elems) == 0 {
		builder.AddOp(txscript.OP_NEWARRAY0)
		return nil
	}

	for i := len(elems) - 1; i >= 0; i-- {
		if err := addParameter(builder, elems[i]); err != nil {
			return err
		}
	}
	builder.AddInt64(int64(len(elems))).AddOp(txscript.OP_PACK)
	return nil
}

// addMap packs the passed pairs into a map on the stack, preserving entry
// order the same way addArray preserves element order.
func addMap(builder *txscript.ScriptBuilder, pairs []ParameterPair) error {
	for i := len(pairs) - 1; i >= 0; i-- {
		if err := addParameter(builder, pairs[i].Value); err != nil {
			return err
		}
		if err := addParameter(builder, pairs[i].Key); err != nil {
			return err
		}
	}
	builder.AddInt64(int64(len(pairs))).AddOp(txscript.OP_PACKMAP)
	return nil
}

// addParameter pushes a single parameter.
func addParameter(builder *txscript.ScriptBuilder, param Parameter) error {
	switch param.Type {
	case AnyType:
		if param.Value != nil {
			return typeMismatch(param)
		}
		builder.AddOp(txscript.OP_PUSHNULL)

	case BoolType:
		val, ok := param.Value.(bool)
		if !ok {
			return typeMismatch(param)
		}
		builder.AddBool(val)

	case IntegerType:
		val, ok := param.Value.(*big.Int)
		if !ok {
			return typeMismatch(param)
		}
		builder.AddBigInt(val)

	case ByteArrayType, SignatureType, PublicKeyType:
		val, ok := param.Value.([]byte)
		if !ok {
			return typeMismatch(param)
		}
		builder.AddData(val)

	case StringType:
		val, ok := param.Value.(string)
		if !ok {
			return typeMismatch(param)
		}
		builder.AddString(val)

	case Hash160Type:
		val, ok := param.Value.(util.Uint160)
		if !ok {
			return typeMismatch(param)
		}
		builder.AddData(val.Bytes())

	case Hash256Type:
		val, ok := param.Value.(util.Uint256)
		if !ok {
			return typeMismatch(param)
		}
		builder.AddData(val.Bytes())

	case ArrayType:
		val, ok := param.Value.([]Parameter)
		if !ok {
			return typeMismatch(param)
		}
		return addArray(builder, val)

	case MapType:
		val, ok := param.Value.([]ParameterPair)
		if !ok {
			return typeMismatch(param)
		}
		return addMap(builder, val)

	default:
		return errors.Errorf("parameter type %s cannot be pushed to a "+
			"script", param.Type)
	}

	return nil
}

// NewCallAndUnwrapIteratorScript returns a script that calls method on
// the contract and then drains the iterator the call returns into a
// plain array of at most maxItems values.  It exists for providers that
// have sessions disabled, where an iterator cannot be traversed across
// requests and must be unwrapped inside the invocation itself.
func NewCallAndUnwrapIteratorScript(contractHash util.Uint160, method string, flags txscript.CallFlag, maxItems int, params ...Parameter) ([]byte, error) {
	if maxItems < 1 {
		return nil, errors.Errorf("iterator item limit %d below minimum 1",
			maxItems)
	}

	builder := txscript.NewScriptBuilder()
	builder.AddInt64(int64(maxItems))
	if err := addCall(builder, contractHash, method, flags, params); err != nil {
		return nil, err
	}

	// Stack here: limit, iterator.  Collect values into a fresh array
	// until the iterator runs dry or the array reaches the limit.
	builder.AddOp(txscript.OP_NEWARRAY0)

	loopStart := builder.NewJumpTarget()
	loopEnd := builder.NewJumpTarget()
	builder.SetJumpTarget(loopStart)

	builder.AddOp(txscript.OP_OVER).
		AddSyscall(txscript.SystemIteratorNext).
		AddJump(txscript.OP_JMPIFNOT, loopEnd)

	builder.AddOps(txscript.OP_DUP, txscript.OP_PUSH2, txscript.OP_PICK).
		AddSyscall(txscript.SystemIteratorValue).
		AddOps(txscript.OP_APPEND, txscript.OP_DUP, txscript.OP_SIZE,
			txscript.OP_PUSH3, txscript.OP_PICK, txscript.OP_GE).
		AddJump(txscript.OP_JMPIF, loopEnd).
		AddJump(txscript.OP_JMP, loopStart)

	// Drop the iterator and the limit, leaving only the collected array.
	builder.SetJumpTarget(loopEnd)
	builder.AddOps(txscript.OP_NIP, txscript.OP_NIP)

	return builder.Script()
}
