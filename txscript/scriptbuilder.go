// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/serialization"
)

const (
	// maxDataPushSize is the largest payload a single data push can
	// carry, bounded by the uint32 length operand of OP_PUSHDATA4.
	maxDataPushSize = 1<<32 - 1

	// maxIntegerPushSize is the largest integer operand width in bytes,
	// matching OP_PUSHINT256.
	maxIntegerPushSize = 32
)

var (
	// ErrUnresolvedJump is returned by Script when a jump target was
	// allocated and referenced but never placed with SetJumpTarget.
	ErrUnresolvedJump = errors.New("script contains an unresolved jump")

	// ErrIntegerTooLarge is returned when an integer push operand does
	// not fit the widest push instruction.
	ErrIntegerTooLarge = errors.New("integer exceeds 256 bits")
)

// jumpPlaceholder remembers where a branch instruction was emitted so its
// one byte offset operand can be patched once the target position is
// known.
type jumpPlaceholder struct {
	// opPosition is the offset of the branch opcode itself.  Branch
	// offsets are relative to this position.
	opPosition int

	// target is the index of the jump target the operand refers to.
	target int
}

// ScriptBuilder provides a facility for building custom scripts.  It
// allows you to push opcodes, integers and data while respecting the
// canonical push forms the virtual machine expects.
//
// For example, the following would build a script that pushes the number
// two and doubles it:
//
//	builder := txscript.NewScriptBuilder()
//	builder.AddInt64(2).AddOp(txscript.OP_DUP).AddOp(txscript.OP_ADD)
//	script, err := builder.Script()
//
// Errors are accumulated: the first failure poisons the builder and is
// returned by Script, so intermediate checks are unnecessary.
type ScriptBuilder struct {
	w   *serialization.Writer
	err error

	// jumpTargets holds the resolved script offset of each allocated
	// target, or -1 while unresolved.
	jumpTargets      []int
	jumpPlaceholders []jumpPlaceholder
}

// NewScriptBuilder returns a new instance of a script builder.  See
// ScriptBuilder for details.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{w: serialization.NewWriter()}
}

// Reset resets the script so it has no content, clearing any accumulated
// error and jump bookkeeping.
func (b *ScriptBuilder) Reset() *ScriptBuilder {
	b.w.Reset()
	b.err = nil
	b.jumpTargets = b.jumpTargets[:0]
	b.jumpPlaceholders = b.jumpPlaceholders[:0]
	return b
}

// Len returns the current length of the script in bytes.
func (b *ScriptBuilder) Len() int {
	return b.w.Len()
}

// AddOp pushes the passed opcode to the end of the script.
func (b *ScriptBuilder) AddOp(op OpCode) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.w.WriteUint8(byte(op))
	return b
}

// AddOps pushes the passed opcodes to the end of the script.
func (b *ScriptBuilder) AddOps(ops ...OpCode) *ScriptBuilder {
	for _, op := range ops {
		b.AddOp(op)
	}
	return b
}

// AddData pushes the passed data to the end of the script prefixed with
// the narrowest OP_PUSHDATA form capable of describing its length.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	dataLen := len(data)
	switch {
	case dataLen <= 0xff:
		b.w.WriteUint8(byte(OP_PUSHDATA1))
		b.w.WriteUint8(uint8(dataLen))

	case dataLen <= 0xffff:
		b.w.WriteUint8(byte(OP_PUSHDATA2))
		b.w.WriteUint16(uint16(dataLen))

	case int64(dataLen) <= maxDataPushSize:
		b.w.WriteUint8(byte(OP_PUSHDATA4))
		b.w.WriteUint32(uint32(dataLen))

	default:
		b.err = errors.Errorf("data push of %d bytes exceeds maximum", dataLen)
		return b
	}

	b.w.WriteBytes(data)
	return b
}

// AddString pushes the UTF-8 bytes of s as a data push.
func (b *ScriptBuilder) AddString(s string) *ScriptBuilder {
	return b.AddData([]byte(s))
}

// AddBool pushes a boolean constant.
func (b *ScriptBuilder) AddBool(val bool) *ScriptBuilder {
	if val {
		return b.AddOp(OP_PUSHT)
	}
	return b.AddOp(OP_PUSHF)
}

// AddInt64 pushes the passed integer using the most compact instruction
// available.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	return b.AddBigInt(big.NewInt(val))
}

// AddBigInt pushes the passed integer to the end of the script.
//
// Values from -1 through 16 become single dedicated instructions.  Larger
// values are emitted as little-endian two's complement operands of the
// narrowest OP_PUSHINT instruction that can hold them, sign-extended to
// that instruction's operand width.
func (b *ScriptBuilder) AddBigInt(val *big.Int) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if val.IsInt64() {
		if small := val.Int64(); small >= -1 && small <= 16 {
			if small == -1 {
				return b.AddOp(OP_PUSHM1)
			}
			return b.AddOp(OP_PUSH0 + OpCode(small))
		}
	}

	operand := twosComplementLittleEndian(val)
	var op OpCode
	switch {
	case len(operand) <= 1:
		op = OP_PUSHINT8
	case len(operand) <= 2:
		op = OP_PUSHINT16
	case len(operand) <= 4:
		op = OP_PUSHINT32
	case len(operand) <= 8:
		op = OP_PUSHINT64
	case len(operand) <= 16:
		op = OP_PUSHINT128
	case len(operand) <= maxIntegerPushSize:
		op = OP_PUSHINT256
	default:
		b.err = errors.WithStack(ErrIntegerTooLarge)
		return b
	}

	operand = padSigned(operand, operandWidth(op), val.Sign() < 0)
	b.w.WriteUint8(byte(op))
	b.w.WriteBytes(operand)
	return b
}

// operandWidth returns the operand size in bytes of an OP_PUSHINT
// instruction.
func operandWidth(op OpCode) int {
	switch op {
	case OP_PUSHINT8:
		return 1
	case OP_PUSHINT16:
		return 2
	case OP_PUSHINT32:
		return 4
	case OP_PUSHINT64:
		return 8
	case OP_PUSHINT128:
		return 16
	default:
		return 32
	}
}

// twosComplementLittleEndian returns the minimal little-endian two's
// complement representation of val.
func twosComplementLittleEndian(val *big.Int) []byte {
	if val.Sign() >= 0 {
		bs := reverseBytes(val.Bytes())
		if len(bs) == 0 {
			return []byte{0x00}
		}
		// A leading sign bit would flip the value negative, so grow by
		// one zero byte.
		if bs[len(bs)-1]&0x80 != 0 {
			bs = append(bs, 0x00)
		}
		return bs
	}

	// For negative values the minimal two's complement width is one bit
	// more than the bit length of the complement.  Take the value modulo
	// 2^(8*width) to wrap it into that representation.
	width := new(big.Int).Not(val).BitLen()/8 + 1
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*width))
	wrapped := new(big.Int).Add(mod, val)
	bs := reverseBytes(wrapped.Bytes())
	for len(bs) < width {
		bs = append(bs, 0xff)
	}
	return bs
}

// padSigned sign-extends the little-endian operand bs to width bytes.
func padSigned(bs []byte, width int, negative bool) []byte {
	filler := byte(0x00)
	if negative {
		filler = 0xff
	}
	for len(bs) < width {
		bs = append(bs, filler)
	}
	return bs
}

func reverseBytes(bs []byte) []byte {
	reversed := make([]byte, len(bs))
	for i, b := range bs {
		reversed[len(bs)-1-i] = b
	}
	return reversed
}

// AddSyscall pushes OP_SYSCALL followed by the 4-byte tag of the passed
// interop service.
func (b *ScriptBuilder) AddSyscall(service InteropService) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	tag := service.Tag()
	b.w.WriteUint8(byte(OP_SYSCALL))
	b.w.WriteBytes(tag[:])
	return b
}

// NewJumpTarget allocates a new jump target that may be referenced by
// AddJump before or after the position it eventually resolves to is
// known.
func (b *ScriptBuilder) NewJumpTarget() int {
	b.jumpTargets = append(b.jumpTargets, -1)
	return len(b.jumpTargets) - 1
}

// SetJumpTarget resolves the passed jump target to the current end of the
// script.  Jumps referencing the target land on the instruction emitted
// next.
func (b *ScriptBuilder) SetJumpTarget(target int) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if target < 0 || target >= len(b.jumpTargets) {
		b.err = errors.Errorf("jump target %d was never allocated", target)
		return b
	}
	b.jumpTargets[target] = b.w.Len()
	return b
}

// AddJump pushes the passed branch opcode with a placeholder offset that
// is patched when Script assembles the final byte slice.  Only the short
// branch forms carrying a one byte offset are accepted.
func (b *ScriptBuilder) AddJump(op OpCode, target int) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if op < OP_JMP || op > OP_JMPLE || op%2 != 0 {
		b.err = errors.Errorf("opcode %s is not a short branch", op)
		return b
	}
	if target < 0 || target >= len(b.jumpTargets) {
		b.err = errors.Errorf("jump target %d was never allocated", target)
		return b
	}

	b.jumpPlaceholders = append(b.jumpPlaceholders, jumpPlaceholder{
		opPosition: b.w.Len(),
		target:     target,
	})
	b.w.WriteUint8(byte(op))
	b.w.WriteUint8(0x00)
	return b
}

// Script returns the currently built script with all jump offsets
// resolved.  When any errors occurred while building, the script and the
// first error are returned.
func (b *ScriptBuilder) Script() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}

	script := make([]byte, b.w.Len())
	copy(script, b.w.Bytes())

	for _, placeholder := range b.jumpPlaceholders {
		resolved := b.jumpTargets[placeholder.target]
		if resolved < 0 {
			return nil, errors.Wrapf(ErrUnresolvedJump,
				"jump at offset %d", placeholder.opPosition)
		}

		// Branch offsets are relative to the branch opcode.
		offset := resolved - placeholder.opPosition
		if offset < -128 || offset > 127 {
			return nil, errors.Errorf("jump offset %d at script offset %d "+
				"does not fit a short branch", offset,
				placeholder.opPosition)
		}
		script[placeholder.opPosition+1] = byte(int8(offset))
	}

	return script, nil
}
