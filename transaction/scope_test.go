package transaction

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
)

func TestScopeStringRoundTrip(t *testing.T) {
	tests := []struct {
		scope WitnessScope
		want  string
	}{
		{None, "None"},
		{CalledByEntry, "CalledByEntry"},
		{CustomContracts, "CustomContracts"},
		{CustomGroups, "CustomGroups"},
		{WitnessRules, "WitnessRules"},
		{Global, "Global"},
		{CalledByEntry | CustomContracts, "CalledByEntry, CustomContracts"},
		{CalledByEntry | CustomContracts | CustomGroups | WitnessRules,
			"CalledByEntry, CustomContracts, CustomGroups, WitnessRules"},
	}

	for _, test := range tests {
		if got := test.scope.String(); got != test.want {
			t.Errorf("String(%#x): got %q, want %q", byte(test.scope),
				got, test.want)
		}
		parsed, err := ParseScope(test.want)
		if err != nil {
			t.Errorf("ParseScope(%q): unexpected error: %s", test.want, err)
			continue
		}
		if parsed != test.scope {
			t.Errorf("ParseScope(%q): got %#x, want %#x", test.want,
				byte(parsed), byte(test.scope))
		}
	}
}

func TestParseScopeTolerance(t *testing.T) {
	tests := []struct {
		raw  string
		want WitnessScope
	}{
		{"CalledByEntry,CustomContracts", CalledByEntry | CustomContracts},
		{"  CalledByEntry ,  WitnessRules  ", CalledByEntry | WitnessRules},
		{" None ", None},
		{"Global", Global},
	}

	for _, test := range tests {
		got, err := ParseScope(test.raw)
		if err != nil {
			t.Errorf("ParseScope(%q): unexpected error: %s", test.raw, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseScope(%q): got %#x, want %#x", test.raw,
				byte(got), byte(test.want))
		}
	}
}

func TestParseScopeRejects(t *testing.T) {
	tests := []string{
		"",
		"Everything",
		"CalledByEntry, Global",
		"Global, CustomContracts",
		"None, CalledByEntry",
	}

	for _, raw := range tests {
		if _, err := ParseScope(raw); !errors.Is(err, ErrInvalidScope) {
			t.Errorf("ParseScope(%q): got %v, want ErrInvalidScope", raw, err)
		}
	}
}

func TestScopeValidity(t *testing.T) {
	tests := []struct {
		scope WitnessScope
		valid bool
	}{
		{None, true},
		{CalledByEntry, true},
		{Global, true},
		{CalledByEntry | CustomContracts | CustomGroups | WitnessRules, true},
		{Global | CalledByEntry, false},
		{Global | WitnessRules, false},
		{WitnessScope(0x02), false},
		{WitnessScope(0xff), false},
	}

	for _, test := range tests {
		if got := test.scope.IsValid(); got != test.valid {
			t.Errorf("IsValid(%#x): got %t, want %t", byte(test.scope),
				got, test.valid)
		}
	}
}

func TestScopeHas(t *testing.T) {
	scope := CalledByEntry | WitnessRules
	if !scope.Has(CalledByEntry) || !scope.Has(WitnessRules) {
		t.Error("Has: flags reported missing from their own combination")
	}
	if scope.Has(CustomContracts) || scope.Has(Global) {
		t.Error("Has: reported flags that were never set")
	}
	if !scope.Has(None) {
		t.Error("Has(None): the empty flag set must always be present")
	}
}

func TestScopeJSON(t *testing.T) {
	marshaled, err := json.Marshal(CalledByEntry | CustomGroups)
	if err != nil {
		t.Fatalf("Marshal: %s", err)
	}
	if want := `"CalledByEntry, CustomGroups"`; string(marshaled) != want {
		t.Errorf("Marshal: got %s, want %s", marshaled, want)
	}

	var scope WitnessScope
	if err := json.Unmarshal(marshaled, &scope); err != nil {
		t.Fatalf("Unmarshal: %s", err)
	}
	if scope != CalledByEntry|CustomGroups {
		t.Errorf("Unmarshal: got %#x", byte(scope))
	}

	if err := json.Unmarshal([]byte(`"Global, CalledByEntry"`), &scope); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("Unmarshal invalid combination: got %v, want ErrInvalidScope", err)
	}
}
