// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ParamType is the declared type of a contract parameter.  The byte
// values appear in contract manifests and ABI metadata; the string names
// appear in json-rpc payloads.
type ParamType byte

// Contract parameter types.
const (
	AnyType              ParamType = 0x00
	BoolType             ParamType = 0x10
	IntegerType          ParamType = 0x11
	ByteArrayType        ParamType = 0x12
	StringType           ParamType = 0x13
	Hash160Type          ParamType = 0x14
	Hash256Type          ParamType = 0x15
	PublicKeyType        ParamType = 0x16
	SignatureType        ParamType = 0x17
	ArrayType            ParamType = 0x20
	MapType              ParamType = 0x22
	InteropInterfaceType ParamType = 0x30
	VoidType             ParamType = 0xff
)

var paramTypeNames = map[ParamType]string{
	AnyType:              "Any",
	BoolType:             "Boolean",
	IntegerType:          "Integer",
	ByteArrayType:        "ByteArray",
	StringType:           "String",
	Hash160Type:          "Hash160",
	Hash256Type:          "Hash256",
	PublicKeyType:        "PublicKey",
	SignatureType:        "Signature",
	ArrayType:            "Array",
	MapType:              "Map",
	InteropInterfaceType: "InteropInterface",
	VoidType:             "Void",
}

// String returns the json-rpc name of the parameter type.
func (pt ParamType) String() string {
	if name, ok := paramTypeNames[pt]; ok {
		return name
	}
	return "Unknown"
}

// IsValid returns whether the byte value names a defined parameter type.
func (pt ParamType) IsValid() bool {
	_, ok := paramTypeNames[pt]
	return ok
}

// ParseParamType maps a json-rpc type name back to its ParamType.
func ParseParamType(name string) (ParamType, error) {
	for pt, ptName := range paramTypeNames {
		if ptName == name {
			return pt, nil
		}
	}
	return 0, errors.Errorf("unknown parameter type %q", name)
}

// MarshalJSON implements the json.Marshaler interface, encoding the type
// as its json-rpc name.
func (pt ParamType) MarshalJSON() ([]byte, error) {
	return json.Marshal(pt.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (pt *ParamType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseParamType(name)
	if err != nil {
		return err
	}
	*pt = parsed
	return nil
}
