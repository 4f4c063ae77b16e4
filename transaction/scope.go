package transaction

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// WitnessScope is a bit field restricting where a signer's witness is
// valid during execution.  A witness produced for a narrowly scoped signer
// cannot be replayed by an unrelated contract the transaction happens to
// touch.
type WitnessScope byte

const (
	// None admits the witness for fee payment and nothing else.  The
	// signature still authorises the transaction itself, but no contract
	// can observe it as an authorisation.
	None WitnessScope = 0x00

	// CalledByEntry admits the witness inside the transaction's entry
	// script and inside contracts the entry script calls directly.
	CalledByEntry WitnessScope = 0x01

	// CustomContracts admits the witness inside the contracts listed on
	// the signer, wherever in the call tree they execute.
	CustomContracts WitnessScope = 0x10

	// CustomGroups admits the witness inside any contract whose
	// manifest group is listed on the signer.
	CustomGroups WitnessScope = 0x20

	// WitnessRules admits the witness according to the signer's ordered
	// rule list, evaluated against the execution context.
	WitnessRules WitnessScope = 0x40

	// Global admits the witness everywhere.  It cannot be combined with
	// any other scope.
	Global WitnessScope = 0x80
)

var scopeNames = []struct {
	scope WitnessScope
	name  string
}{
	{CalledByEntry, "CalledByEntry"},
	{CustomContracts, "CustomContracts"},
	{CustomGroups, "CustomGroups"},
	{WitnessRules, "WitnessRules"},
	{Global, "Global"},
}

// ErrInvalidScope is the class of error returned when a scope byte or
// scope string does not name a valid combination.
var ErrInvalidScope = errors.New("invalid witness scope")

// Has returns whether every bit of flag is set on s.
func (s WitnessScope) Has(flag WitnessScope) bool {
	return s&flag == flag
}

// IsValid returns whether s is a well-formed combination: only defined
// bits are set, and Global appears alone.
func (s WitnessScope) IsValid() bool {
	var known WitnessScope
	for _, entry := range scopeNames {
		known |= entry.scope
	}
	if s&^known != 0 {
		return false
	}
	if s.Has(Global) && s != Global {
		return false
	}
	return true
}

// String renders the scope the way RPC servers do: the flag names joined
// by comma and space, or "None" for the empty scope.
func (s WitnessScope) String() string {
	if s == None {
		return "None"
	}
	names := make([]string, 0, len(scopeNames))
	for _, entry := range scopeNames {
		if s.Has(entry.scope) {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, ", ")
}

// ParseScope parses a comma separated scope string back into its flags.
// Whitespace around each name is ignored, so both "CalledByEntry,Global"
// and the rendered ", " form parse.  The result is checked for validity.
func ParseScope(s string) (WitnessScope, error) {
	if strings.TrimSpace(s) == "None" {
		return None, nil
	}

	var scope WitnessScope
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		found := false
		for _, entry := range scopeNames {
			if part == entry.name {
				scope |= entry.scope
				found = true
				break
			}
		}
		if !found {
			return None, errors.Wrapf(ErrInvalidScope,
				"unknown scope name %q", part)
		}
	}
	if !scope.IsValid() {
		return None, errors.Wrapf(ErrInvalidScope,
			"scope combination %q", s)
	}
	return scope, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s WitnessScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *WitnessScope) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(ErrInvalidScope, err.Error())
	}
	scope, err := ParseScope(raw)
	if err != nil {
		return err
	}
	*s = scope
	return nil
}
