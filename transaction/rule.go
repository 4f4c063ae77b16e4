package transaction

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/serialization"
)

// WitnessRuleAction is the effect a matched witness rule has.
type WitnessRuleAction byte

const (
	// Deny rejects the witness wherever the rule's condition holds.
	Deny WitnessRuleAction = 0x00

	// Allow admits the witness wherever the rule's condition holds.
	Allow WitnessRuleAction = 0x01
)

// ErrInvalidRule is the class of error returned for a malformed witness
// rule.
var ErrInvalidRule = errors.New("invalid witness rule")

// String returns the RPC name of the action.
func (a WitnessRuleAction) String() string {
	switch a {
	case Deny:
		return "Deny"
	case Allow:
		return "Allow"
	default:
		return "Unknown"
	}
}

// ParseRuleAction maps an RPC action name back to its wire byte.
func ParseRuleAction(name string) (WitnessRuleAction, error) {
	switch name {
	case "Deny":
		return Deny, nil
	case "Allow":
		return Allow, nil
	default:
		return 0, errors.Wrapf(ErrInvalidRule, "unknown action %q", name)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (a WitnessRuleAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *WitnessRuleAction) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(ErrInvalidRule, err.Error())
	}
	action, err := ParseRuleAction(raw)
	if err != nil {
		return err
	}
	*a = action
	return nil
}

// WitnessRule pairs a condition with the action taken wherever the
// condition holds.  A rule-scoped signer carries an ordered list of these
// and the first matching rule decides.
type WitnessRule struct {
	Action    WitnessRuleAction
	Condition WitnessCondition
}

// validate applies the condition bounds a decode would enforce, so a rule
// accepted onto a signer always round-trips the wire.
func (r *WitnessRule) validate() error {
	if r.Action != Deny && r.Action != Allow {
		return errors.Wrapf(ErrInvalidRule, "unknown action byte %#x",
			byte(r.Action))
	}
	if r.Condition == nil {
		return errors.Wrap(ErrInvalidRule, "rule without a condition")
	}
	return validateCondition(r.Condition, netparams.MaxWitnessConditionNesting)
}

func (r *WitnessRule) encode(w *serialization.Writer) {
	w.WriteUint8(byte(r.Action))
	EncodeCondition(w, r.Condition)
}

func decodeRule(r *serialization.Reader) (WitnessRule, error) {
	actionByte, err := r.ReadUint8()
	if err != nil {
		return WitnessRule{}, err
	}
	action := WitnessRuleAction(actionByte)
	if action != Deny && action != Allow {
		return WitnessRule{}, errors.Wrapf(ErrInvalidRule,
			"unknown action byte %#x", actionByte)
	}
	cond, err := DecodeCondition(r)
	if err != nil {
		return WitnessRule{}, err
	}
	return WitnessRule{Action: action, Condition: cond}, nil
}

type ruleJSON struct {
	Action    WitnessRuleAction `json:"action"`
	Condition json.RawMessage   `json:"condition"`
}

// MarshalJSON implements the json.Marshaler interface.
func (r WitnessRule) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(r.Condition)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ruleJSON{Action: r.Action, Condition: raw})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *WitnessRule) UnmarshalJSON(data []byte) error {
	var aux ruleJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return errors.Wrap(ErrInvalidRule, err.Error())
	}
	cond, err := UnmarshalConditionJSON(aux.Condition)
	if err != nil {
		return err
	}
	r.Action = aux.Action
	r.Condition = cond
	return nil
}
