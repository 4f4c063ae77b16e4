package transaction

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/serialization"
	"github.com/neonetwork/neosdk/txscript"
	"github.com/neonetwork/neosdk/util"
)

func testGroupKeys(t *testing.T, n int) keys.PublicKeys {
	t.Helper()
	groups := make(keys.PublicKeys, n)
	for i := range groups {
		key, err := keys.GeneratePrivateKey()
		if err != nil {
			t.Fatalf("GeneratePrivateKey: %s", err)
		}
		groups[i] = key.PublicKey()
	}
	return groups
}

func TestSignerFactories(t *testing.T) {
	key := testKey(t)

	signer, err := NewAccountSigner(key, CalledByEntry)
	if err != nil {
		t.Fatalf("NewAccountSigner: %s", err)
	}
	verification := key.PublicKey().VerificationScript()
	if signer.Account() != txscript.ScriptHash(verification) {
		t.Error("account signer hash does not match its verification script")
	}
	if signer.IsMultiSig() {
		t.Error("single-signature signer reports multi-sig")
	}
	if !bytes.Equal(signer.VerificationScript(), verification) {
		t.Error("VerificationScript does not match the key's script")
	}
	mutated := signer.VerificationScript()
	mutated[0] ^= 0xff
	if !bytes.Equal(signer.VerificationScript(), verification) {
		t.Error("VerificationScript exposes the signer's internal slice")
	}

	if _, err := NewAccountSigner(nil, CalledByEntry); !errors.Is(err, ErrInvalidSigner) {
		t.Errorf("nil key: got %v, want ErrInvalidSigner", err)
	}
	if _, err := NewAccountSigner(key, WitnessScope(0x02)); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("bad scope: got %v, want ErrInvalidScope", err)
	}

	multiScript, err := txscript.MultiSigScript(1, key.PublicKey().Bytes(), testConditionGroup(t).Bytes())
	if err != nil {
		t.Fatalf("MultiSigScript: %s", err)
	}
	multi, err := NewMultiSigSigner(multiScript, CalledByEntry)
	if err != nil {
		t.Fatalf("NewMultiSigSigner: %s", err)
	}
	if !multi.IsMultiSig() {
		t.Error("multi-sig signer does not report multi-sig")
	}
	if multi.Account() != txscript.ScriptHash(multiScript) {
		t.Error("multi-sig signer hash does not match its verification script")
	}
	if _, err := NewMultiSigSigner(verification, CalledByEntry); !errors.Is(err, ErrInvalidSigner) {
		t.Errorf("single-sig script: got %v, want ErrInvalidSigner", err)
	}

	if _, err := NewTransactionSigner(testConditionHash(t), Global|CalledByEntry); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("Global combined with another scope: got %v, want ErrInvalidScope", err)
	}
}

func TestSignerScopeWidening(t *testing.T) {
	signer, err := NewTransactionSigner(testConditionHash(t), CalledByEntry)
	if err != nil {
		t.Fatalf("NewTransactionSigner: %s", err)
	}

	contracts := []util.Uint160{testConditionHash(t)}
	if err := signer.SetAllowedContracts(contracts); err != nil {
		t.Fatalf("SetAllowedContracts: %s", err)
	}
	if !signer.Scopes().Has(CustomContracts) || !signer.Scopes().Has(CalledByEntry) {
		t.Errorf("scopes after widening: got %s", signer.Scopes())
	}
	if len(signer.AllowedContracts()) != 1 {
		t.Errorf("allow-list length: got %d, want 1", len(signer.AllowedContracts()))
	}

	global, err := NewTransactionSigner(testConditionHash(t), Global)
	if err != nil {
		t.Fatalf("NewTransactionSigner: %s", err)
	}
	if err := global.SetAllowedContracts(contracts); !errors.Is(err, ErrInvalidSigner) {
		t.Errorf("widening a Global signer: got %v, want ErrInvalidSigner", err)
	}
	if global.Scopes() != Global || len(global.AllowedContracts()) != 0 {
		t.Error("failed widening modified the signer")
	}
}

func TestSignerSubitemCap(t *testing.T) {
	signer, err := NewTransactionSigner(testConditionHash(t), CalledByEntry)
	if err != nil {
		t.Fatalf("NewTransactionSigner: %s", err)
	}

	if err := signer.SetAllowedGroups(testGroupKeys(t, netparams.MaxSignerSubitems)); err != nil {
		t.Fatalf("SetAllowedGroups at the cap: %s", err)
	}
	if err := signer.SetAllowedGroups(testGroupKeys(t, 1)); !errors.Is(err, ErrInvalidSigner) {
		t.Errorf("one group over the cap: got %v, want ErrInvalidSigner", err)
	}
	if len(signer.AllowedGroups()) != netparams.MaxSignerSubitems {
		t.Errorf("allow-list length after failed append: got %d, want %d",
			len(signer.AllowedGroups()), netparams.MaxSignerSubitems)
	}

	fresh, err := NewTransactionSigner(testConditionHash(t), CalledByEntry)
	if err != nil {
		t.Fatalf("NewTransactionSigner: %s", err)
	}
	if err := fresh.SetAllowedGroups(testGroupKeys(t, netparams.MaxSignerSubitems+1)); !errors.Is(err, ErrInvalidSigner) {
		t.Errorf("over-long list: got %v, want ErrInvalidSigner", err)
	}
	if fresh.Scopes() != CalledByEntry || len(fresh.AllowedGroups()) != 0 {
		t.Error("failed widening modified the signer")
	}
}

func TestSignerSetRulesValidates(t *testing.T) {
	signer, err := NewTransactionSigner(testConditionHash(t), None)
	if err != nil {
		t.Fatalf("NewTransactionSigner: %s", err)
	}

	overDeep := WitnessRule{
		Action: Allow,
		Condition: &AndCondition{Conditions: []WitnessCondition{
			&OrCondition{Conditions: []WitnessCondition{
				&AndCondition{Conditions: []WitnessCondition{
					&BooleanCondition{Value: true},
				}},
			}},
		}},
	}
	if err := signer.SetRules([]WitnessRule{overDeep}); !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("over-deep rule: got %v, want ErrInvalidCondition", err)
	}
	if signer.Scopes() != None || len(signer.Rules()) != 0 {
		t.Error("failed SetRules modified the signer")
	}

	ok := WitnessRule{Action: Deny, Condition: &CalledByEntryCondition{}}
	if err := signer.SetRules([]WitnessRule{ok}); err != nil {
		t.Fatalf("SetRules: %s", err)
	}
	if !signer.Scopes().Has(WitnessRules) || len(signer.Rules()) != 1 {
		t.Error("SetRules did not apply the rule")
	}
}

func TestSignerWireRoundTrip(t *testing.T) {
	signer, err := NewTransactionSigner(testConditionHash(t), CalledByEntry)
	if err != nil {
		t.Fatalf("NewTransactionSigner: %s", err)
	}
	if err := signer.SetAllowedContracts([]util.Uint160{testConditionHash(t)}); err != nil {
		t.Fatalf("SetAllowedContracts: %s", err)
	}
	if err := signer.SetAllowedGroups(keys.PublicKeys{testConditionGroup(t)}); err != nil {
		t.Fatalf("SetAllowedGroups: %s", err)
	}
	rules := []WitnessRule{
		{Action: Allow, Condition: &CalledByEntryCondition{}},
		{Action: Deny, Condition: &NotCondition{Condition: &GroupCondition{Group: testConditionGroup(t)}}},
	}
	if err := signer.SetRules(rules); err != nil {
		t.Fatalf("SetRules: %s", err)
	}

	w := serialization.NewWriter()
	EncodeSigner(w, signer)

	decoded, err := DecodeSigner(serialization.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeSigner: %s", err)
	}
	if decoded.Account() != signer.Account() {
		t.Error("decoded account differs")
	}
	if decoded.Scopes() != signer.Scopes() {
		t.Errorf("decoded scopes: got %s, want %s", decoded.Scopes(), signer.Scopes())
	}
	if len(decoded.AllowedContracts()) != 1 || decoded.AllowedContracts()[0] != testConditionHash(t) {
		t.Error("decoded contract allow-list differs")
	}
	if len(decoded.AllowedGroups()) != 1 || !decoded.AllowedGroups()[0].Equal(testConditionGroup(t)) {
		t.Error("decoded group allow-list differs")
	}
	if len(decoded.Rules()) != len(rules) {
		t.Fatalf("decoded %d rules, want %d", len(decoded.Rules()), len(rules))
	}
	for i := range rules {
		if decoded.Rules()[i].Action != rules[i].Action ||
			!conditionsEqual(decoded.Rules()[i].Condition, rules[i].Condition) {
			t.Errorf("decoded rule %d differs from the original", i)
		}
	}
}

func TestDecodeSignerRejects(t *testing.T) {
	account := testConditionHash(t)

	encode := func(scope byte, tail []byte) []byte {
		w := serialization.NewWriter()
		w.WriteBytes(account.Bytes())
		w.WriteUint8(scope)
		w.WriteBytes(tail)
		return w.Bytes()
	}

	overCap := serialization.NewWriter()
	overCap.WriteVarInt(netparams.MaxSignerSubitems + 1)

	tests := []struct {
		name string
		raw  []byte
	}{
		{"unknown scope bit", encode(0x02, nil)},
		{"Global with company", encode(0x81, nil)},
		{"over-cap allow-list", encode(byte(CustomContracts), overCap.Bytes())},
		{"truncated account", account.Bytes()[:10]},
	}

	for _, test := range tests {
		if _, err := DecodeSigner(serialization.NewReader(test.raw)); err == nil {
			t.Errorf("%s: DecodeSigner accepted invalid input", test.name)
		}
	}
}

func TestSignerJSON(t *testing.T) {
	signer, err := NewTransactionSigner(testConditionHash(t), CalledByEntry)
	if err != nil {
		t.Fatalf("NewTransactionSigner: %s", err)
	}

	marshaled, err := json.Marshal(signer)
	if err != nil {
		t.Fatalf("Marshal: %s", err)
	}
	want := `{"account":"0x` + testAccountHex + `","scopes":"CalledByEntry"}`
	if string(marshaled) != want {
		t.Errorf("Marshal: got %s, want %s", marshaled, want)
	}

	decoded, err := UnmarshalSignerJSON(marshaled)
	if err != nil {
		t.Fatalf("UnmarshalSignerJSON: %s", err)
	}
	if decoded.Account() != signer.Account() || decoded.Scopes() != signer.Scopes() {
		t.Error("decoded signer differs from the original")
	}

	if err := signer.SetRules([]WitnessRule{{Action: Allow, Condition: &BooleanCondition{Value: false}}}); err != nil {
		t.Fatalf("SetRules: %s", err)
	}
	marshaled, err = json.Marshal(signer)
	if err != nil {
		t.Fatalf("Marshal with rules: %s", err)
	}
	decoded, err = UnmarshalSignerJSON(marshaled)
	if err != nil {
		t.Fatalf("UnmarshalSignerJSON with rules: %s", err)
	}
	if len(decoded.Rules()) != 1 || !decoded.Scopes().Has(WitnessRules) {
		t.Error("rules did not survive the JSON round trip")
	}
}

func TestUnmarshalSignerJSONRejects(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{
			"list without its scope",
			`{"account":"0x` + testAccountHex + `","scopes":"CalledByEntry","allowedcontracts":["0x` + testAccountHex + `"]}`,
		},
		{
			"unknown scope",
			`{"account":"0x` + testAccountHex + `","scopes":"Everything"}`,
		},
		{
			"rules on a Global signer",
			`{"account":"0x` + testAccountHex + `","scopes":"Global","rules":[{"action":"Allow","condition":{"type":"CalledByEntry"}}]}`,
		},
	}

	for _, test := range tests {
		if _, err := UnmarshalSignerJSON([]byte(test.json)); err == nil {
			t.Errorf("%s: UnmarshalSignerJSON accepted invalid input", test.name)
		}
	}
}
