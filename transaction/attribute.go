package transaction

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/serialization"
)

// AttributeType identifies a transaction attribute variant on the wire.
type AttributeType byte

// The transaction attribute wire tags.
const (
	AttributeHighPriority   AttributeType = 0x01
	AttributeOracleResponse AttributeType = 0x11
)

// MaxOracleResultSize is the maximum byte length of an oracle response
// result.
const MaxOracleResultSize = 0xffff

// ErrInvalidAttribute is the class of error returned for a malformed
// transaction attribute.
var ErrInvalidAttribute = errors.New("invalid transaction attribute")

// String returns the RPC name of the attribute type.
func (t AttributeType) String() string {
	switch t {
	case AttributeHighPriority:
		return "HighPriority"
	case AttributeOracleResponse:
		return "OracleResponse"
	default:
		return "Unknown"
	}
}

// Attribute is a typed extension record a transaction may carry.  The set
// of implementations is closed and mirrors the wire tags above.
type Attribute interface {
	// Type returns the wire tag of the attribute.
	Type() AttributeType

	// encodeBody writes everything that follows the type byte.
	encodeBody(w *serialization.Writer)
}

// HighPriorityAttribute marks a transaction for priority treatment.  Only
// a transaction carrying a committee signer may use it.
type HighPriorityAttribute struct{}

// Type returns the wire tag of the attribute.
func (a *HighPriorityAttribute) Type() AttributeType { return AttributeHighPriority }

func (a *HighPriorityAttribute) encodeBody(w *serialization.Writer) {}

// OracleResponseCode reports the outcome of an oracle request.
type OracleResponseCode byte

// The oracle response codes.
const (
	Success                 OracleResponseCode = 0x00
	ProtocolNotSupported    OracleResponseCode = 0x10
	ConsensusUnreachable    OracleResponseCode = 0x12
	NotFound                OracleResponseCode = 0x14
	Timeout                 OracleResponseCode = 0x16
	Forbidden               OracleResponseCode = 0x18
	ResponseTooLarge        OracleResponseCode = 0x1a
	InsufficientFunds       OracleResponseCode = 0x1c
	ContentTypeNotSupported OracleResponseCode = 0x1f
	Error                   OracleResponseCode = 0xff
)

var oracleResponseCodeNames = map[OracleResponseCode]string{
	Success:                 "Success",
	ProtocolNotSupported:    "ProtocolNotSupported",
	ConsensusUnreachable:    "ConsensusUnreachable",
	NotFound:                "NotFound",
	Timeout:                 "Timeout",
	Forbidden:               "Forbidden",
	ResponseTooLarge:        "ResponseTooLarge",
	InsufficientFunds:       "InsufficientFunds",
	ContentTypeNotSupported: "ContentTypeNotSupported",
	Error:                   "Error",
}

// IsValid returns whether c is a defined response code.
func (c OracleResponseCode) IsValid() bool {
	_, ok := oracleResponseCodeNames[c]
	return ok
}

// String returns the RPC name of the response code.
func (c OracleResponseCode) String() string {
	if name, ok := oracleResponseCodeNames[c]; ok {
		return name
	}
	return "Unknown"
}

// ParseOracleResponseCode maps an RPC response code name back to its wire
// byte.
func ParseOracleResponseCode(name string) (OracleResponseCode, error) {
	for code, codeName := range oracleResponseCodeNames {
		if codeName == name {
			return code, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidAttribute,
		"unknown oracle response code %q", name)
}

// MarshalJSON implements the json.Marshaler interface.
func (c OracleResponseCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *OracleResponseCode) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(ErrInvalidAttribute, err.Error())
	}
	code, err := ParseOracleResponseCode(raw)
	if err != nil {
		return err
	}
	*c = code
	return nil
}

// OracleResponseAttribute carries the result of an oracle request back
// on-chain.  Client code rarely builds one, but decoding relayed
// transactions requires it.
type OracleResponseAttribute struct {
	// ID is the oracle request this responds to.
	ID uint64

	// Code reports the outcome of the request.
	Code OracleResponseCode

	// Result is the response payload.  It is non-empty only when Code
	// is Success.
	Result []byte
}

// Type returns the wire tag of the attribute.
func (a *OracleResponseAttribute) Type() AttributeType { return AttributeOracleResponse }

func (a *OracleResponseAttribute) encodeBody(w *serialization.Writer) {
	w.WriteUint64(a.ID)
	w.WriteUint8(byte(a.Code))
	w.WriteVarBytes(a.Result)
}

// validateAttribute applies the bounds a decode would, so an attribute
// accepted onto a transaction always round-trips the wire.
func validateAttribute(attr Attribute) error {
	oracle, ok := attr.(*OracleResponseAttribute)
	if !ok {
		return nil
	}
	if !oracle.Code.IsValid() {
		return errors.Wrapf(ErrInvalidAttribute,
			"unknown oracle response code %#x", byte(oracle.Code))
	}
	if len(oracle.Result) > MaxOracleResultSize {
		return errors.Wrapf(ErrInvalidAttribute,
			"oracle result of %d bytes exceeds the maximum of %d",
			len(oracle.Result), MaxOracleResultSize)
	}
	if oracle.Code != Success && len(oracle.Result) > 0 {
		return errors.Wrapf(ErrInvalidAttribute,
			"oracle result must be empty for code %s", oracle.Code)
	}
	return nil
}

// EncodeAttribute writes attr to w, type byte first.
func EncodeAttribute(w *serialization.Writer, attr Attribute) {
	w.WriteUint8(byte(attr.Type()))
	attr.encodeBody(w)
}

// DecodeAttribute reads one transaction attribute from r.
func DecodeAttribute(r *serialization.Reader) (Attribute, error) {
	typeByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}

	switch AttributeType(typeByte) {
	case AttributeHighPriority:
		return &HighPriorityAttribute{}, nil

	case AttributeOracleResponse:
		id, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		codeByte, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		code := OracleResponseCode(codeByte)
		if !code.IsValid() {
			return nil, errors.Wrapf(ErrInvalidAttribute,
				"unknown oracle response code %#x", codeByte)
		}
		result, err := r.ReadVarBytes(MaxOracleResultSize, "oracle result")
		if err != nil {
			return nil, err
		}
		if code != Success && len(result) > 0 {
			return nil, errors.Wrapf(ErrInvalidAttribute,
				"oracle result must be empty for code %s", code)
		}
		return &OracleResponseAttribute{ID: id, Code: code, Result: result}, nil

	default:
		return nil, errors.Wrapf(ErrInvalidAttribute,
			"unknown attribute tag %#x", typeByte)
	}
}

// attributeJSON is the RPC shape shared by both attribute variants.
type attributeJSON struct {
	Type   string              `json:"type"`
	ID     *uint64             `json:"id,omitempty"`
	Code   *OracleResponseCode `json:"code,omitempty"`
	Result []byte              `json:"result,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (a *HighPriorityAttribute) MarshalJSON() ([]byte, error) {
	return json.Marshal(attributeJSON{Type: a.Type().String()})
}

// MarshalJSON implements the json.Marshaler interface.
func (a *OracleResponseAttribute) MarshalJSON() ([]byte, error) {
	return json.Marshal(attributeJSON{
		Type:   a.Type().String(),
		ID:     &a.ID,
		Code:   &a.Code,
		Result: a.Result,
	})
}

// UnmarshalAttributeJSON parses the RPC form of a transaction attribute.
func UnmarshalAttributeJSON(data []byte) (Attribute, error) {
	var aux attributeJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, errors.Wrap(ErrInvalidAttribute, err.Error())
	}

	switch aux.Type {
	case AttributeHighPriority.String():
		return &HighPriorityAttribute{}, nil

	case AttributeOracleResponse.String():
		if aux.ID == nil || aux.Code == nil {
			return nil, errors.Wrap(ErrInvalidAttribute,
				"oracle response without id or code")
		}
		attr := &OracleResponseAttribute{
			ID:     *aux.ID,
			Code:   *aux.Code,
			Result: aux.Result,
		}
		if err := validateAttribute(attr); err != nil {
			return nil, err
		}
		return attr, nil

	default:
		return nil, errors.Wrapf(ErrInvalidAttribute,
			"unknown attribute type %q", aux.Type)
	}
}
