// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// OpCode is a single virtual machine instruction.  The value space is
// closed: bytes outside the table below are not instructions and IsValid
// reports false for them.
type OpCode byte

// These constants are the values of the official opcodes used in the
// reference virtual machine implementation and in most if not all other
// software related to handling its scripts.
const (
	OP_PUSHINT8   OpCode = 0x00
	OP_PUSHINT16  OpCode = 0x01
	OP_PUSHINT32  OpCode = 0x02
	OP_PUSHINT64  OpCode = 0x03
	OP_PUSHINT128 OpCode = 0x04
	OP_PUSHINT256 OpCode = 0x05
	OP_PUSHT      OpCode = 0x08
	OP_PUSHF      OpCode = 0x09
	OP_PUSHA      OpCode = 0x0a
	OP_PUSHNULL   OpCode = 0x0b
	OP_PUSHDATA1  OpCode = 0x0c
	OP_PUSHDATA2  OpCode = 0x0d
	OP_PUSHDATA4  OpCode = 0x0e
	OP_PUSHM1     OpCode = 0x0f
	OP_PUSH0      OpCode = 0x10
	OP_PUSH1      OpCode = 0x11
	OP_PUSH2      OpCode = 0x12
	OP_PUSH3      OpCode = 0x13
	OP_PUSH4      OpCode = 0x14
	OP_PUSH5      OpCode = 0x15
	OP_PUSH6      OpCode = 0x16
	OP_PUSH7      OpCode = 0x17
	OP_PUSH8      OpCode = 0x18
	OP_PUSH9      OpCode = 0x19
	OP_PUSH10     OpCode = 0x1a
	OP_PUSH11     OpCode = 0x1b
	OP_PUSH12     OpCode = 0x1c
	OP_PUSH13     OpCode = 0x1d
	OP_PUSH14     OpCode = 0x1e
	OP_PUSH15     OpCode = 0x1f
	OP_PUSH16     OpCode = 0x20

	OP_NOP        OpCode = 0x21
	OP_JMP        OpCode = 0x22
	OP_JMP_L      OpCode = 0x23
	OP_JMPIF      OpCode = 0x24
	OP_JMPIF_L    OpCode = 0x25
	OP_JMPIFNOT   OpCode = 0x26
	OP_JMPIFNOT_L OpCode = 0x27
	OP_JMPEQ      OpCode = 0x28
	OP_JMPEQ_L    OpCode = 0x29
	OP_JMPNE      OpCode = 0x2a
	OP_JMPNE_L    OpCode = 0x2b
	OP_JMPGT      OpCode = 0x2c
	OP_JMPGT_L    OpCode = 0x2d
	OP_JMPGE      OpCode = 0x2e
	OP_JMPGE_L    OpCode = 0x2f
	OP_JMPLT      OpCode = 0x30
	OP_JMPLT_L    OpCode = 0x31
	OP_JMPLE      OpCode = 0x32
	OP_JMPLE_L    OpCode = 0x33
	OP_CALL       OpCode = 0x34
	OP_CALL_L     OpCode = 0x35
	OP_CALLA      OpCode = 0x36
	OP_CALLT      OpCode = 0x37
	OP_ABORT      OpCode = 0x38
	OP_ASSERT     OpCode = 0x39
	OP_THROW      OpCode = 0x3a
	OP_TRY        OpCode = 0x3b
	OP_TRY_L      OpCode = 0x3c
	OP_ENDTRY     OpCode = 0x3d
	OP_ENDTRY_L   OpCode = 0x3e
	OP_ENDFINALLY OpCode = 0x3f
	OP_RET        OpCode = 0x40
	OP_SYSCALL    OpCode = 0x41

	OP_DEPTH    OpCode = 0x43
	OP_DROP     OpCode = 0x45
	OP_NIP      OpCode = 0x46
	OP_XDROP    OpCode = 0x48
	OP_CLEAR    OpCode = 0x49
	OP_DUP      OpCode = 0x4a
	OP_OVER     OpCode = 0x4b
	OP_PICK     OpCode = 0x4d
	OP_TUCK     OpCode = 0x4e
	OP_SWAP     OpCode = 0x50
	OP_ROT      OpCode = 0x51
	OP_ROLL     OpCode = 0x52
	OP_REVERSE3 OpCode = 0x53
	OP_REVERSE4 OpCode = 0x54
	OP_REVERSEN OpCode = 0x55

	OP_INITSSLOT OpCode = 0x56
	OP_INITSLOT  OpCode = 0x57
	OP_LDSFLD0   OpCode = 0x58
	OP_LDSFLD1   OpCode = 0x59
	OP_LDSFLD2   OpCode = 0x5a
	OP_LDSFLD3   OpCode = 0x5b
	OP_LDSFLD4   OpCode = 0x5c
	OP_LDSFLD5   OpCode = 0x5d
	OP_LDSFLD6   OpCode = 0x5e
	OP_LDSFLD    OpCode = 0x5f
	OP_STSFLD0   OpCode = 0x60
	OP_STSFLD1   OpCode = 0x61
	OP_STSFLD2   OpCode = 0x62
	OP_STSFLD3   OpCode = 0x63
	OP_STSFLD4   OpCode = 0x64
	OP_STSFLD5   OpCode = 0x65
	OP_STSFLD6   OpCode = 0x66
	OP_STSFLD    OpCode = 0x67
	OP_LDLOC0    OpCode = 0x68
	OP_LDLOC1    OpCode = 0x69
	OP_LDLOC2    OpCode = 0x6a
	OP_LDLOC3    OpCode = 0x6b
	OP_LDLOC4    OpCode = 0x6c
	OP_LDLOC5    OpCode = 0x6d
	OP_LDLOC6    OpCode = 0x6e
	OP_LDLOC     OpCode = 0x6f
	OP_STLOC0    OpCode = 0x70
	OP_STLOC1    OpCode = 0x71
	OP_STLOC2    OpCode = 0x72
	OP_STLOC3    OpCode = 0x73
	OP_STLOC4    OpCode = 0x74
	OP_STLOC5    OpCode = 0x75
	OP_STLOC6    OpCode = 0x76
	OP_STLOC     OpCode = 0x77
	OP_LDARG0    OpCode = 0x78
	OP_LDARG1    OpCode = 0x79
	OP_LDARG2    OpCode = 0x7a
	OP_LDARG3    OpCode = 0x7b
	OP_LDARG4    OpCode = 0x7c
	OP_LDARG5    OpCode = 0x7d
	OP_LDARG6    OpCode = 0x7e
	OP_LDARG     OpCode = 0x7f
	OP_STARG0    OpCode = 0x80
	OP_STARG1    OpCode = 0x81
	OP_STARG2    OpCode = 0x82
	OP_STARG3    OpCode = 0x83
	OP_STARG4    OpCode = 0x84
	OP_STARG5    OpCode = 0x85
	OP_STARG6    OpCode = 0x86
	OP_STARG     OpCode = 0x87

	OP_NEWBUFFER OpCode = 0x88
	OP_MEMCPY    OpCode = 0x89
	OP_CAT       OpCode = 0x8b
	OP_SUBSTR    OpCode = 0x8c
	OP_LEFT      OpCode = 0x8d
	OP_RIGHT     OpCode = 0x8e

	OP_INVERT   OpCode = 0x90
	OP_AND      OpCode = 0x91
	OP_OR       OpCode = 0x92
	OP_XOR      OpCode = 0x93
	OP_EQUAL    OpCode = 0x97
	OP_NOTEQUAL OpCode = 0x98

	OP_SIGN        OpCode = 0x99
	OP_ABS         OpCode = 0x9a
	OP_NEGATE      OpCode = 0x9b
	OP_INC         OpCode = 0x9c
	OP_DEC         OpCode = 0x9d
	OP_ADD         OpCode = 0x9e
	OP_SUB         OpCode = 0x9f
	OP_MUL         OpCode = 0xa0
	OP_DIV         OpCode = 0xa1
	OP_MOD         OpCode = 0xa2
	OP_POW         OpCode = 0xa3
	OP_SQRT        OpCode = 0xa4
	OP_MODMUL      OpCode = 0xa5
	OP_MODPOW      OpCode = 0xa6
	OP_SHL         OpCode = 0xa8
	OP_SHR         OpCode = 0xa9
	OP_NOT         OpCode = 0xaa
	OP_BOOLAND     OpCode = 0xab
	OP_BOOLOR      OpCode = 0xac
	OP_NZ          OpCode = 0xb1
	OP_NUMEQUAL    OpCode = 0xb3
	OP_NUMNOTEQUAL OpCode = 0xb4
	OP_LT          OpCode = 0xb5
	OP_LE          OpCode = 0xb6
	OP_GT          OpCode = 0xb7
	OP_GE          OpCode = 0xb8
	OP_MIN         OpCode = 0xb9
	OP_MAX         OpCode = 0xba
	OP_WITHIN      OpCode = 0xbb

	OP_PACKMAP      OpCode = 0xbe
	OP_PACKSTRUCT   OpCode = 0xbf
	OP_PACK         OpCode = 0xc0
	OP_UNPACK       OpCode = 0xc1
	OP_NEWARRAY0    OpCode = 0xc2
	OP_NEWARRAY     OpCode = 0xc3
	OP_NEWARRAY_T   OpCode = 0xc4
	OP_NEWSTRUCT0   OpCode = 0xc5
	OP_NEWSTRUCT    OpCode = 0xc6
	OP_NEWMAP       OpCode = 0xc8
	OP_SIZE         OpCode = 0xca
	OP_HASKEY       OpCode = 0xcb
	OP_KEYS         OpCode = 0xcc
	OP_VALUES       OpCode = 0xcd
	OP_PICKITEM     OpCode = 0xce
	OP_APPEND       OpCode = 0xcf
	OP_SETITEM      OpCode = 0xd0
	OP_REVERSEITEMS OpCode = 0xd1
	OP_REMOVE       OpCode = 0xd2
	OP_CLEARITEMS   OpCode = 0xd3
	OP_POPITEM      OpCode = 0xd4

	OP_ISNULL  OpCode = 0xd8
	OP_ISTYPE  OpCode = 0xd9
	OP_CONVERT OpCode = 0xdb

	OP_ABORTMSG  OpCode = 0xe0
	OP_ASSERTMSG OpCode = 0xe1
)

// opCodeNames maps every valid opcode to its canonical human-readable
// name.  Membership in this map is also what defines instruction validity.
var opCodeNames = map[OpCode]string{
	OP_PUSHINT8:   "PUSHINT8",
	OP_PUSHINT16:  "PUSHINT16",
	OP_PUSHINT32:  "PUSHINT32",
	OP_PUSHINT64:  "PUSHINT64",
	OP_PUSHINT128: "PUSHINT128",
	OP_PUSHINT256: "PUSHINT256",
	OP_PUSHT:      "PUSHT",
	OP_PUSHF:      "PUSHF",
	OP_PUSHA:      "PUSHA",
	OP_PUSHNULL:   "PUSHNULL",
	OP_PUSHDATA1:  "PUSHDATA1",
	OP_PUSHDATA2:  "PUSHDATA2",
	OP_PUSHDATA4:  "PUSHDATA4",
	OP_PUSHM1:     "PUSHM1",
	OP_PUSH0:      "PUSH0",
	OP_PUSH1:      "PUSH1",
	OP_PUSH2:      "PUSH2",
	OP_PUSH3:      "PUSH3",
	OP_PUSH4:      "PUSH4",
	OP_PUSH5:      "PUSH5",
	OP_PUSH6:      "PUSH6",
	OP_PUSH7:      "PUSH7",
	OP_PUSH8:      "PUSH8",
	OP_PUSH9:      "PUSH9",
	OP_PUSH10:     "PUSH10",
	OP_PUSH11:     "PUSH11",
	OP_PUSH12:     "PUSH12",
	OP_PUSH13:     "PUSH13",
	OP_PUSH14:     "PUSH14",
	OP_PUSH15:     "PUSH15",
	OP_PUSH16:     "PUSH16",

	OP_NOP:        "NOP",
	OP_JMP:        "JMP",
	OP_JMP_L:      "JMP_L",
	OP_JMPIF:      "JMPIF",
	OP_JMPIF_L:    "JMPIF_L",
	OP_JMPIFNOT:   "JMPIFNOT",
	OP_JMPIFNOT_L: "JMPIFNOT_L",
	OP_JMPEQ:      "JMPEQ",
	OP_JMPEQ_L:    "JMPEQ_L",
	OP_JMPNE:      "JMPNE",
	OP_JMPNE_L:    "JMPNE_L",
	OP_JMPGT:      "JMPGT",
	OP_JMPGT_L:    "JMPGT_L",
	OP_JMPGE:      "JMPGE",
	OP_JMPGE_L:    "JMPGE_L",
	OP_JMPLT:      "JMPLT",
	OP_JMPLT_L:    "JMPLT_L",
	OP_JMPLE:      "JMPLE",
	OP_JMPLE_L:    "JMPLE_L",
	OP_CALL:       "CALL",
	OP_CALL_L:     "CALL_L",
	OP_CALLA:      "CALLA",
	OP_CALLT:      "CALLT",
	OP_ABORT:      "ABORT",
	OP_ASSERT:     "ASSERT",
	OP_THROW:      "THROW",
	OP_TRY:        "TRY",
	OP_TRY_L:      "TRY_L",
	OP_ENDTRY:     "ENDTRY",
	OP_ENDTRY_L:   "ENDTRY_L",
	OP_ENDFINALLY: "ENDFINALLY",
	OP_RET:        "RET",
	OP_SYSCALL:    "SYSCALL",

	OP_DEPTH:    "DEPTH",
	OP_DROP:     "DROP",
	OP_NIP:      "NIP",
	OP_XDROP:    "XDROP",
	OP_CLEAR:    "CLEAR",
	OP_DUP:      "DUP",
	OP_OVER:     "OVER",
	OP_PICK:     "PICK",
	OP_TUCK:     "TUCK",
	OP_SWAP:     "SWAP",
	OP_ROT:      "ROT",
	OP_ROLL:     "ROLL",
	OP_REVERSE3: "REVERSE3",
	OP_REVERSE4: "REVERSE4",
	OP_REVERSEN: "REVERSEN",

	OP_INITSSLOT: "INITSSLOT",
	OP_INITSLOT:  "INITSLOT",
	OP_LDSFLD0:   "LDSFLD0",
	OP_LDSFLD1:   "LDSFLD1",
	OP_LDSFLD2:   "LDSFLD2",
	OP_LDSFLD3:   "LDSFLD3",
	OP_LDSFLD4:   "LDSFLD4",
	OP_LDSFLD5:   "LDSFLD5",
	OP_LDSFLD6:   "LDSFLD6",
	OP_LDSFLD:    "LDSFLD",
	OP_STSFLD0:   "STSFLD0",
	OP_STSFLD1:   "STSFLD1",
	OP_STSFLD2:   "STSFLD2",
	OP_STSFLD3:   "STSFLD3",
	OP_STSFLD4:   "STSFLD4",
	OP_STSFLD5:   "STSFLD5",
	OP_STSFLD6:   "STSFLD6",
	OP_STSFLD:    "STSFLD",
	OP_LDLOC0:    "LDLOC0",
	OP_LDLOC1:    "LDLOC1",
	OP_LDLOC2:    "LDLOC2",
	OP_LDLOC3:    "LDLOC3",
	OP_LDLOC4:    "LDLOC4",
	OP_LDLOC5:    "LDLOC5",
	OP_LDLOC6:    "LDLOC6",
	OP_LDLOC:     "LDLOC",
	OP_STLOC0:    "STLOC0",
	OP_STLOC1:    "STLOC1",
	OP_STLOC2:    "STLOC2",
	OP_STLOC3:    "STLOC3",
	OP_STLOC4:    "STLOC4",
	OP_STLOC5:    "STLOC5",
	OP_STLOC6:    "STLOC6",
	OP_STLOC:     "STLOC",
	OP_LDARG0:    "LDARG0",
	OP_LDARG1:    "LDARG1",
	OP_LDARG2:    "LDARG2",
	OP_LDARG3:    "LDARG3",
	OP_LDARG4:    "LDARG4",
	OP_LDARG5:    "LDARG5",
	OP_LDARG6:    "LDARG6",
	OP_LDARG:     "LDARG",
	OP_STARG0:    "STARG0",
	OP_STARG1:    "STARG1",
	OP_STARG2:    "STARG2",
	OP_STARG3:    "STARG3",
	OP_STARG4:    "STARG4",
	OP_STARG5:    "STARG5",
	OP_STARG6:    "STARG6",
	OP_STARG:     "STARG",

	OP_NEWBUFFER: "NEWBUFFER",
	OP_MEMCPY:    "MEMCPY",
	OP_CAT:       "CAT",
	OP_SUBSTR:    "SUBSTR",
	OP_LEFT:      "LEFT",
	OP_RIGHT:     "RIGHT",

	OP_INVERT:   "INVERT",
	OP_AND:      "AND",
	OP_OR:       "OR",
	OP_XOR:      "XOR",
	OP_EQUAL:    "EQUAL",
	OP_NOTEQUAL: "NOTEQUAL",

	OP_SIGN:        "SIGN",
	OP_ABS:         "ABS",
	OP_NEGATE:      "NEGATE",
	OP_INC:         "INC",
	OP_DEC:         "DEC",
	OP_ADD:         "ADD",
	OP_SUB:         "SUB",
	OP_MUL:         "MUL",
	OP_DIV:         "DIV",
	OP_MOD:         "MOD",
	OP_POW:         "POW",
	OP_SQRT:        "SQRT",
	OP_MODMUL:      "MODMUL",
	OP_MODPOW:      "MODPOW",
	OP_SHL:         "SHL",
	OP_SHR:         "SHR",
	OP_NOT:         "NOT",
	OP_BOOLAND:     "BOOLAND",
	OP_BOOLOR:      "BOOLOR",
	OP_NZ:          "NZ",
	OP_NUMEQUAL:    "NUMEQUAL",
	OP_NUMNOTEQUAL: "NUMNOTEQUAL",
	OP_LT:          "LT",
	OP_LE:          "LE",
	OP_GT:          "GT",
	OP_GE:          "GE",
	OP_MIN:         "MIN",
	OP_MAX:         "MAX",
	OP_WITHIN:      "WITHIN",

	OP_PACKMAP:      "PACKMAP",
	OP_PACKSTRUCT:   "PACKSTRUCT",
	OP_PACK:         "PACK",
	OP_UNPACK:       "UNPACK",
	OP_NEWARRAY0:    "NEWARRAY0",
	OP_NEWARRAY:     "NEWARRAY",
	OP_NEWARRAY_T:   "NEWARRAY_T",
	OP_NEWSTRUCT0:   "NEWSTRUCT0",
	OP_NEWSTRUCT:    "NEWSTRUCT",
	OP_NEWMAP:       "NEWMAP",
	OP_SIZE:         "SIZE",
	OP_HASKEY:       "HASKEY",
	OP_KEYS:         "KEYS",
	OP_VALUES:       "VALUES",
	OP_PICKITEM:     "PICKITEM",
	OP_APPEND:       "APPEND",
	OP_SETITEM:      "SETITEM",
	OP_REVERSEITEMS: "REVERSEITEMS",
	OP_REMOVE:       "REMOVE",
	OP_CLEARITEMS:   "CLEARITEMS",
	OP_POPITEM:      "POPITEM",

	OP_ISNULL:  "ISNULL",
	OP_ISTYPE:  "ISTYPE",
	OP_CONVERT: "CONVERT",

	OP_ABORTMSG:  "ABORTMSG",
	OP_ASSERTMSG: "ASSERTMSG",
}

// IsValid returns whether the byte value is a defined instruction.
func (op OpCode) IsValid() bool {
	_, ok := opCodeNames[op]
	return ok
}

// String returns the canonical name of the opcode, or a hex placeholder
// for byte values outside the instruction table.
func (op OpCode) String() string {
	if name, ok := opCodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OPCODE_0x%02X", byte(op))
}

// Price returns the base execution fee of the opcode in fee units.  The
// script assembly code uses these to estimate the verification cost of
// standard witnesses without invoking a node.
func (op OpCode) Price() uint32 {
	switch op {
	case OP_PUSHINT8, OP_PUSHINT16, OP_PUSHINT32, OP_PUSHINT64,
		OP_PUSHNULL, OP_PUSHM1, OP_PUSH0, OP_PUSH1, OP_PUSH2, OP_PUSH3,
		OP_PUSH4, OP_PUSH5, OP_PUSH6, OP_PUSH7, OP_PUSH8, OP_PUSH9,
		OP_PUSH10, OP_PUSH11, OP_PUSH12, OP_PUSH13, OP_PUSH14, OP_PUSH15,
		OP_PUSH16, OP_NOP, OP_ASSERT:
		return 1

	case OP_PUSHINT128, OP_PUSHINT256, OP_PUSHA, OP_TRY, OP_SIGN, OP_ABS,
		OP_NEGATE, OP_INC, OP_DEC, OP_NOT, OP_NZ, OP_SIZE:
		return 1 << 2

	case OP_PUSHDATA1, OP_AND, OP_OR, OP_XOR, OP_ADD, OP_SUB, OP_MUL,
		OP_DIV, OP_MOD, OP_SHL, OP_SHR, OP_BOOLAND, OP_BOOLOR,
		OP_NUMEQUAL, OP_NUMNOTEQUAL, OP_LT, OP_LE, OP_GT, OP_GE, OP_MIN,
		OP_MAX, OP_WITHIN, OP_NEWMAP:
		return 1 << 3

	case OP_XDROP, OP_CLEAR, OP_ROLL, OP_REVERSEN, OP_INITSSLOT,
		OP_NEWARRAY0, OP_NEWSTRUCT0, OP_KEYS, OP_REMOVE, OP_CLEARITEMS:
		return 1 << 4

	case OP_EQUAL, OP_NOTEQUAL, OP_MODMUL:
		return 1 << 5

	case OP_INITSLOT, OP_POW, OP_HASKEY, OP_PICKITEM:
		return 1 << 6

	case OP_NEWBUFFER:
		return 1 << 8

	case OP_PUSHDATA2, OP_CALL, OP_CALL_L, OP_CALLA, OP_THROW,
		OP_NEWARRAY, OP_NEWARRAY_T, OP_NEWSTRUCT:
		return 1 << 9

	case OP_MEMCPY, OP_CAT, OP_SUBSTR, OP_LEFT, OP_RIGHT, OP_SQRT,
		OP_MODPOW, OP_PACKMAP, OP_PACKSTRUCT, OP_PACK, OP_UNPACK:
		return 1 << 11

	case OP_PUSHDATA4:
		return 1 << 12

	case OP_VALUES, OP_APPEND, OP_SETITEM, OP_REVERSEITEMS, OP_CONVERT:
		return 1 << 13

	case OP_CALLT:
		return 1 << 15

	case OP_ABORT, OP_RET, OP_SYSCALL:
		return 0

	default:
		return 1 << 1
	}
}
