package transaction

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/serialization"
	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
)

// ConditionType identifies a witness condition variant on the wire.
type ConditionType byte

// The witness condition wire tags.
const (
	ConditionBoolean          ConditionType = 0x00
	ConditionNot              ConditionType = 0x01
	ConditionAnd              ConditionType = 0x02
	ConditionOr               ConditionType = 0x03
	ConditionScriptHash       ConditionType = 0x18
	ConditionGroup            ConditionType = 0x19
	ConditionCalledByEntry    ConditionType = 0x20
	ConditionCalledByContract ConditionType = 0x28
	ConditionCalledByGroup    ConditionType = 0x29
)

// MaxConditionSubitems is the maximum number of children a single And or
// Or condition may carry.
const MaxConditionSubitems = 16

var conditionTypeNames = map[ConditionType]string{
	ConditionBoolean:          "Boolean",
	ConditionNot:              "Not",
	ConditionAnd:              "And",
	ConditionOr:               "Or",
	ConditionScriptHash:       "ScriptHash",
	ConditionGroup:            "Group",
	ConditionCalledByEntry:    "CalledByEntry",
	ConditionCalledByContract: "CalledByContract",
	ConditionCalledByGroup:    "CalledByGroup",
}

// ErrInvalidCondition is the class of error returned when a witness
// condition tree is malformed or exceeds the protocol's nesting or size
// bounds.
var ErrInvalidCondition = errors.New("invalid witness condition")

// String returns the RPC name of the condition type.
func (t ConditionType) String() string {
	if name, ok := conditionTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseConditionType maps an RPC condition type name back to its wire tag.
func ParseConditionType(name string) (ConditionType, error) {
	for condType, condName := range conditionTypeNames {
		if condName == name {
			return condType, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidCondition,
		"unknown condition type %q", name)
}

// WitnessCondition is a node of the boolean tree a rule-scoped signer is
// evaluated against.  The set of implementations is closed and mirrors
// the wire tags above.
type WitnessCondition interface {
	// Type returns the wire tag of the condition.
	Type() ConditionType

	// encodeBody writes everything that follows the type byte.
	encodeBody(w *serialization.Writer)
}

// BooleanCondition holds a constant truth value.
type BooleanCondition struct {
	Value bool
}

// NotCondition inverts its child condition.
type NotCondition struct {
	Condition WitnessCondition
}

// AndCondition holds when every child condition holds.
type AndCondition struct {
	Conditions []WitnessCondition
}

// OrCondition holds when at least one child condition holds.
type OrCondition struct {
	Conditions []WitnessCondition
}

// ScriptHashCondition holds when the executing contract's script hash
// matches.
type ScriptHashCondition struct {
	Hash util.Uint160
}

// GroupCondition holds when the executing contract belongs to the
// manifest group identified by the public key.
type GroupCondition struct {
	Group *keys.PublicKey
}

// CalledByEntryCondition holds inside the transaction's entry script and
// inside contracts the entry script calls directly.
type CalledByEntryCondition struct{}

// CalledByContractCondition holds when the calling contract's script hash
// matches.
type CalledByContractCondition struct {
	Hash util.Uint160
}

// CalledByGroupCondition holds when the calling contract belongs to the
// manifest group identified by the public key.
type CalledByGroupCondition struct {
	Group *keys.PublicKey
}

// Type returns the wire tag of the condition.
func (c *BooleanCondition) Type() ConditionType { return ConditionBoolean }

// Type returns the wire tag of the condition.
func (c *NotCondition) Type() ConditionType { return ConditionNot }

// Type returns the wire tag of the condition.
func (c *AndCondition) Type() ConditionType { return ConditionAnd }

// Type returns the wire tag of the condition.
func (c *OrCondition) Type() ConditionType { return ConditionOr }

// Type returns the wire tag of the condition.
func (c *ScriptHashCondition) Type() ConditionType { return ConditionScriptHash }

// Type returns the wire tag of the condition.
func (c *GroupCondition) Type() ConditionType { return ConditionGroup }

// Type returns the wire tag of the condition.
func (c *CalledByEntryCondition) Type() ConditionType { return ConditionCalledByEntry }

// Type returns the wire tag of the condition.
func (c *CalledByContractCondition) Type() ConditionType { return ConditionCalledByContract }

// Type returns the wire tag of the condition.
func (c *CalledByGroupCondition) Type() ConditionType { return ConditionCalledByGroup }

func (c *BooleanCondition) encodeBody(w *serialization.Writer) {
	w.WriteBool(c.Value)
}

func (c *NotCondition) encodeBody(w *serialization.Writer) {
	EncodeCondition(w, c.Condition)
}

func (c *AndCondition) encodeBody(w *serialization.Writer) {
	encodeConditionList(w, c.Conditions)
}

func (c *OrCondition) encodeBody(w *serialization.Writer) {
	encodeConditionList(w, c.Conditions)
}

func (c *ScriptHashCondition) encodeBody(w *serialization.Writer) {
	w.WriteBytes(c.Hash.Bytes())
}

func (c *GroupCondition) encodeBody(w *serialization.Writer) {
	w.WriteBytes(c.Group.Bytes())
}

func (c *CalledByEntryCondition) encodeBody(w *serialization.Writer) {}

func (c *CalledByContractCondition) encodeBody(w *serialization.Writer) {
	w.WriteBytes(c.Hash.Bytes())
}

func (c *CalledByGroupCondition) encodeBody(w *serialization.Writer) {
	w.WriteBytes(c.Group.Bytes())
}

// EncodeCondition writes cond to w, type byte first.  The condition is
// assumed to have passed nesting validation when it was attached to its
// rule; encoding itself never fails.
func EncodeCondition(w *serialization.Writer, cond WitnessCondition) {
	w.WriteUint8(byte(cond.Type()))
	cond.encodeBody(w)
}

func encodeConditionList(w *serialization.Writer, conds []WitnessCondition) {
	w.WriteVarInt(uint64(len(conds)))
	for _, cond := range conds {
		EncodeCondition(w, cond)
	}
}

// DecodeCondition reads one witness condition from r, enforcing the
// protocol's nesting depth and per-level item bounds while parsing.
func DecodeCondition(r *serialization.Reader) (WitnessCondition, error) {
	return decodeCondition(r, netparams.MaxWitnessConditionNesting)
}

func decodeCondition(r *serialization.Reader, remainingDepth int) (WitnessCondition, error) {
	typeByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}

	switch condType := ConditionType(typeByte); condType {
	case ConditionBoolean:
		val, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		return &BooleanCondition{Value: val}, nil

	case ConditionNot:
		inner, err := decodeCondition(r, remainingDepth)
		if err != nil {
			return nil, err
		}
		return &NotCondition{Condition: inner}, nil

	case ConditionAnd, ConditionOr:
		conds, err := decodeConditionList(r, remainingDepth)
		if err != nil {
			return nil, err
		}
		if condType == ConditionAnd {
			return &AndCondition{Conditions: conds}, nil
		}
		return &OrCondition{Conditions: conds}, nil

	case ConditionScriptHash, ConditionCalledByContract:
		raw, err := r.ReadBytes(util.Uint160Size)
		if err != nil {
			return nil, err
		}
		hash, err := util.Uint160FromBytes(raw)
		if err != nil {
			return nil, err
		}
		if condType == ConditionScriptHash {
			return &ScriptHashCondition{Hash: hash}, nil
		}
		return &CalledByContractCondition{Hash: hash}, nil

	case ConditionGroup, ConditionCalledByGroup:
		raw, err := r.ReadBytes(txscript.CompressedPubKeySize)
		if err != nil {
			return nil, err
		}
		group, err := keys.PublicKeyFromBytes(raw)
		if err != nil {
			return nil, err
		}
		if condType == ConditionGroup {
			return &GroupCondition{Group: group}, nil
		}
		return &CalledByGroupCondition{Group: group}, nil

	case ConditionCalledByEntry:
		return &CalledByEntryCondition{}, nil

	default:
		return nil, errors.Wrapf(ErrInvalidCondition,
			"unknown condition tag %#x", typeByte)
	}
}

func decodeConditionList(r *serialization.Reader, remainingDepth int) ([]WitnessCondition, error) {
	if remainingDepth <= 0 {
		return nil, errors.Wrapf(ErrInvalidCondition,
			"conditions nested beyond the maximum depth of %d",
			netparams.MaxWitnessConditionNesting)
	}
	count, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if count == 0 || count > MaxConditionSubitems {
		return nil, errors.Wrapf(ErrInvalidCondition,
			"composite condition carries %d children, want 1 to %d",
			count, MaxConditionSubitems)
	}

	conds := make([]WitnessCondition, count)
	for i := range conds {
		conds[i], err = decodeCondition(r, remainingDepth-1)
		if err != nil {
			return nil, err
		}
	}
	return conds, nil
}

// validateCondition walks the tree depth-first and applies the bounds a
// decode would: And and Or consume one unit of depth per child and carry
// 1 to MaxConditionSubitems children.  It is run before a rule is
// accepted onto a signer, so anything that encodes also decodes.
func validateCondition(cond WitnessCondition, remainingDepth int) error {
	switch c := cond.(type) {
	case *NotCondition:
		if c.Condition == nil {
			return errors.Wrap(ErrInvalidCondition,
				"Not condition without a child")
		}
		return validateCondition(c.Condition, remainingDepth)

	case *AndCondition:
		return validateConditionList(c.Conditions, remainingDepth)

	case *OrCondition:
		return validateConditionList(c.Conditions, remainingDepth)

	case *GroupCondition:
		if c.Group == nil {
			return errors.Wrap(ErrInvalidCondition,
				"Group condition without a key")
		}
		return nil

	case *CalledByGroupCondition:
		if c.Group == nil {
			return errors.Wrap(ErrInvalidCondition,
				"CalledByGroup condition without a key")
		}
		return nil

	default:
		return nil
	}
}

func validateConditionList(conds []WitnessCondition, remainingDepth int) error {
	if remainingDepth <= 0 {
		return errors.Wrapf(ErrInvalidCondition,
			"conditions nested beyond the maximum depth of %d",
			netparams.MaxWitnessConditionNesting)
	}
	if len(conds) == 0 || len(conds) > MaxConditionSubitems {
		return errors.Wrapf(ErrInvalidCondition,
			"composite condition carries %d children, want 1 to %d",
			len(conds), MaxConditionSubitems)
	}
	for _, cond := range conds {
		if cond == nil {
			return errors.Wrap(ErrInvalidCondition,
				"composite condition with a nil child")
		}
		if err := validateCondition(cond, remainingDepth-1); err != nil {
			return err
		}
	}
	return nil
}

// conditionJSON is the RPC shape shared by every condition variant; only
// the fields the variant uses are populated.
type conditionJSON struct {
	Type        string            `json:"type"`
	Expression  json.RawMessage   `json:"expression,omitempty"`
	Expressions []json.RawMessage `json:"expressions,omitempty"`
	Hash        *util.Uint160     `json:"hash,omitempty"`
	Group       *keys.PublicKey   `json:"group,omitempty"`
}

func marshalConditionList(conds []WitnessCondition) ([]json.RawMessage, error) {
	raws := make([]json.RawMessage, len(conds))
	for i, cond := range conds {
		raw, err := json.Marshal(cond)
		if err != nil {
			return nil, err
		}
		raws[i] = raw
	}
	return raws, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (c *BooleanCondition) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(c.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionJSON{Type: c.Type().String(), Expression: raw})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *NotCondition) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(c.Condition)
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionJSON{Type: c.Type().String(), Expression: raw})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *AndCondition) MarshalJSON() ([]byte, error) {
	raws, err := marshalConditionList(c.Conditions)
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionJSON{Type: c.Type().String(), Expressions: raws})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *OrCondition) MarshalJSON() ([]byte, error) {
	raws, err := marshalConditionList(c.Conditions)
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionJSON{Type: c.Type().String(), Expressions: raws})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ScriptHashCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionJSON{Type: c.Type().String(), Hash: &c.Hash})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *GroupCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionJSON{Type: c.Type().String(), Group: c.Group})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *CalledByEntryCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionJSON{Type: c.Type().String()})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *CalledByContractCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionJSON{Type: c.Type().String(), Hash: &c.Hash})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *CalledByGroupCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionJSON{Type: c.Type().String(), Group: c.Group})
}

// UnmarshalConditionJSON parses the RPC form of a witness condition tree,
// applying the same nesting and item bounds as the wire decoder.
func UnmarshalConditionJSON(data []byte) (WitnessCondition, error) {
	cond, err := unmarshalCondition(data)
	if err != nil {
		return nil, err
	}
	if err := validateCondition(cond, netparams.MaxWitnessConditionNesting); err != nil {
		return nil, err
	}
	return cond, nil
}

func unmarshalCondition(data []byte) (WitnessCondition, error) {
	var aux conditionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, errors.Wrap(ErrInvalidCondition, err.Error())
	}
	condType, err := ParseConditionType(aux.Type)
	if err != nil {
		return nil, err
	}

	switch condType {
	case ConditionBoolean:
		var val bool
		if err := json.Unmarshal(aux.Expression, &val); err != nil {
			return nil, errors.Wrap(ErrInvalidCondition, err.Error())
		}
		return &BooleanCondition{Value: val}, nil

	case ConditionNot:
		inner, err := unmarshalCondition(aux.Expression)
		if err != nil {
			return nil, err
		}
		return &NotCondition{Condition: inner}, nil

	case ConditionAnd, ConditionOr:
		conds := make([]WitnessCondition, len(aux.Expressions))
		for i, raw := range aux.Expressions {
			conds[i], err = unmarshalCondition(raw)
			if err != nil {
				return nil, err
			}
		}
		if condType == ConditionAnd {
			return &AndCondition{Conditions: conds}, nil
		}
		return &OrCondition{Conditions: conds}, nil

	case ConditionScriptHash, ConditionCalledByContract:
		if aux.Hash == nil {
			return nil, errors.Wrapf(ErrInvalidCondition,
				"%s condition without a hash", condType)
		}
		if condType == ConditionScriptHash {
			return &ScriptHashCondition{Hash: *aux.Hash}, nil
		}
		return &CalledByContractCondition{Hash: *aux.Hash}, nil

	case ConditionGroup, ConditionCalledByGroup:
		if aux.Group == nil {
			return nil, errors.Wrapf(ErrInvalidCondition,
				"%s condition without a group key", condType)
		}
		if condType == ConditionGroup {
			return &GroupCondition{Group: aux.Group}, nil
		}
		return &CalledByGroupCondition{Group: aux.Group}, nil

	default:
		return &CalledByEntryCondition{}, nil
	}
}
