// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/util"
)

// Parameter is a single typed argument of a contract invocation.  The
// dynamic type of Value is fixed by Type:
//
//	AnyType        nil
//	BoolType       bool
//	IntegerType    *big.Int
//	ByteArrayType  []byte
//	StringType     string
//	Hash160Type    util.Uint160
//	Hash256Type    util.Uint256
//	PublicKeyType  []byte (compressed, 33 bytes)
//	SignatureType  []byte (64 bytes)
//	ArrayType      []Parameter
//	MapType        []ParameterPair
//
// Use the typed constructors below rather than filling the struct by
// hand, then the pairing always holds.
type Parameter struct {
	Type  ParamType
	Value interface{}
}

// ParameterPair is a single entry of a map parameter.  Map parameters
// are kept as ordered pairs because entry order is significant for the
// serialized script form.
type ParameterPair struct {
	Key   Parameter
	Value Parameter
}

// AnyParam returns a parameter representing an untyped null argument.
func AnyParam() Parameter {
	return Parameter{Type: AnyType}
}

// BoolParam returns a boolean parameter.
func BoolParam(val bool) Parameter {
	return Parameter{Type: BoolType, Value: val}
}

// IntParam returns an integer parameter from an int64.
func IntParam(val int64) Parameter {
	return Parameter{Type: IntegerType, Value: big.NewInt(val)}
}

// BigIntParam returns an integer parameter from an arbitrary precision
// integer.
func BigIntParam(val *big.Int) Parameter {
	return Parameter{Type: IntegerType, Value: val}
}

// BytesParam returns a byte array parameter.
func BytesParam(val []byte) Parameter {
	return Parameter{Type: ByteArrayType, Value: val}
}

// StringParam returns a string parameter.
func StringParam(val string) Parameter {
	return Parameter{Type: StringType, Value: val}
}

// Hash160Param returns a 160-bit hash parameter, typically an account or
// contract identifier.
func Hash160Param(val util.Uint160) Parameter {
	return Parameter{Type: Hash160Type, Value: val}
}

// Hash256Param returns a 256-bit hash parameter, typically a transaction
// or block hash.
func Hash256Param(val util.Uint256) Parameter {
	return Parameter{Type: Hash256Type, Value: val}
}

// PublicKeyParam returns a public key parameter from a serialized
// compressed key.
func PublicKeyParam(val []byte) Parameter {
	return Parameter{Type: PublicKeyType, Value: val}
}

// SignatureParam returns a signature parameter.
func SignatureParam(val []byte) Parameter {
	return Parameter{Type: SignatureType, Value: val}
}

// ArrayParam returns an array parameter of the passed elements.
func ArrayParam(elems ...Parameter) Parameter {
	return Parameter{Type: ArrayType, Value: elems}
}

// MapParam returns a map parameter of the passed ordered pairs.
func MapParam(pairs ...ParameterPair) Parameter {
	return Parameter{Type: MapType, Value: pairs}
}

// parameterJSON is the wire form of a parameter in json-rpc payloads.
type parameterJSON struct {
	Type  ParamType       `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface using the value
// conventions json-rpc nodes expect: integers as decimal strings, byte
// arrays and signatures as base64, public keys as hex, hashes in prefixed
// big-endian form.
func (p Parameter) MarshalJSON() ([]byte, error) {
	out := parameterJSON{Type: p.Type}

	var (
		value interface{}
		err   error
	)
	switch p.Type {
	case AnyType, VoidType:
		value = nil

	case BoolType:
		val, ok := p.Value.(bool)
		if !ok {
			return nil, typeMismatch(p)
		}
		value = val

	case IntegerType:
		val, ok := p.Value.(*big.Int)
		if !ok {
			return nil, typeMismatch(p)
		}
		value = val.String()

	case ByteArrayType, SignatureType:
		val, ok := p.Value.([]byte)
		if !ok {
			return nil, typeMismatch(p)
		}
		value = base64.StdEncoding.EncodeToString(val)

	case PublicKeyType:
		val, ok := p.Value.([]byte)
		if !ok {
			return nil, typeMismatch(p)
		}
		value = hex.EncodeToString(val)

	case StringType:
		val, ok := p.Value.(string)
		if !ok {
			return nil, typeMismatch(p)
		}
		value = val

	case Hash160Type:
		val, ok := p.Value.(util.Uint160)
		if !ok {
			return nil, typeMismatch(p)
		}
		value = val

	case Hash256Type:
		val, ok := p.Value.(util.Uint256)
		if !ok {
			return nil, typeMismatch(p)
		}
		value = val

	case ArrayType:
		val, ok := p.Value.([]Parameter)
		if !ok {
			return nil, typeMismatch(p)
		}
		value = val

	case MapType:
		val, ok := p.Value.([]ParameterPair)
		if !ok {
			return nil, typeMismatch(p)
		}
		value = val

	default:
		return nil, errors.Errorf("parameter type %s cannot be marshaled",
			p.Type)
	}

	out.Value, err = json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func typeMismatch(p Parameter) error {
	return errors.Errorf("parameter value %T does not match declared "+
		"type %s", p.Value, p.Type)
}

// UnmarshalJSON implements the json.Unmarshaler interface, the inverse of
// MarshalJSON.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	var in parameterJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	p.Type = in.Type
	p.Value = nil
	if len(in.Value) == 0 || string(in.Value) == "null" {
		if in.Type == AnyType || in.Type == VoidType {
			return nil
		}
		return errors.Errorf("parameter of type %s has no value", in.Type)
	}

	switch in.Type {
	case AnyType, VoidType:
		return nil

	case BoolType:
		var val bool
		if err := json.Unmarshal(in.Value, &val); err != nil {
			return err
		}
		p.Value = val

	case IntegerType:
		var val string
		if err := json.Unmarshal(in.Value, &val); err != nil {
			// Tolerate bare json numbers for hand-written payloads.
			var num int64
			if err := json.Unmarshal(in.Value, &num); err != nil {
				return err
			}
			p.Value = big.NewInt(num)
			return nil
		}
		parsed, ok := new(big.Int).SetString(val, 10)
		if !ok {
			return errors.Errorf("invalid integer parameter %q", val)
		}
		p.Value = parsed

	case ByteArrayType, SignatureType:
		var val string
		if err := json.Unmarshal(in.Value, &val); err != nil {
			return err
		}
		decoded, err := base64.StdEncoding.DecodeString(val)
		if err != nil {
			return errors.Wrapf(err, "invalid base64 in %s parameter",
				in.Type)
		}
		p.Value = decoded

	case PublicKeyType:
		var val string
		if err := json.Unmarshal(in.Value, &val); err != nil {
			return err
		}
		decoded, err := hex.DecodeString(val)
		if err != nil {
			return errors.Wrap(err, "invalid hex in public key parameter")
		}
		p.Value = decoded

	case StringType:
		var val string
		if err := json.Unmarshal(in.Value, &val); err != nil {
			return err
		}
		p.Value = val

	case Hash160Type:
		var val util.Uint160
		if err := json.Unmarshal(in.Value, &val); err != nil {
			return err
		}
		p.Value = val

	case Hash256Type:
		var val util.Uint256
		if err := json.Unmarshal(in.Value, &val); err != nil {
			return err
		}
		p.Value = val

	case ArrayType:
		var val []Parameter
		if err := json.Unmarshal(in.Value, &val); err != nil {
			return err
		}
		p.Value = val

	case MapType:
		var val []ParameterPair
		if err := json.Unmarshal(in.Value, &val); err != nil {
			return err
		}
		p.Value = val

	default:
		return errors.Errorf("unknown parameter type %#x", byte(in.Type))
	}

	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (pp ParameterPair) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key   Parameter `json:"key"`
		Value Parameter `json:"value"`
	}{pp.Key, pp.Value})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (pp *ParameterPair) UnmarshalJSON(data []byte) error {
	var in struct {
		Key   Parameter `json:"key"`
		Value Parameter `json:"value"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	pp.Key = in.Key
	pp.Value = in.Value
	return nil
}
