package ldcontext

import (
	"errors"
	"reflect"
	"testing"

	"ldcraft.io/ldcraft/lderr"
)

func personDefinition() Definition {
	return Definition{
		Base:       "https://example.org/people/",
		Vocab:      "https://example.org/vocab/",
		RemoteRefs: []string{"https://schema.org/"},
		Prefixes: map[string]string{
			"schema": "https://schema.org/",
			"xsd":    "http://www.w3.org/2001/XMLSchema#",
		},
		Terms: map[string]Term{
			"name":  {IRI: "schema:name"},
			"email": {IRI: "schema:email", Type: "xsd:string"},
			"age":   {IRI: "schema:age", Type: "xsd:integer"},
		},
	}
}

func productDefinition() Definition {
	return Definition{
		Vocab:      "https://example.org/vocab/",
		RemoteRefs: []string{"https://schema.org/", "https://w3id.org/commerce/"},
		Prefixes: map[string]string{
			"schema": "https://schema.org/",
		},
		Terms: map[string]Term{
			"sku":   {IRI: "schema:sku"},
			"price": {IRI: "schema:price", Type: "xsd:decimal"},
		},
	}
}

func asConflict(t *testing.T, err error) *ConflictError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected conflict error")
	}
	if !lderr.IsKind(err, lderr.KindContextConflict) {
		t.Fatalf("expected KindContextConflict, got %v", err)
	}
	var c *ConflictError
	if !errors.As(err, &c) {
		t.Fatalf("expected *ConflictError in chain, got %T", err)
	}
	return c
}

func TestMerge_Idempotent(t *testing.T) {
	c := personDefinition()
	got, err := Merge([]Definition{c, c})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !got.Equal(c) {
		t.Fatalf("Merge([c,c]) != c:\n got %#v\nwant %#v", got, c)
	}
}

func TestMerge_UnionOfCompatibleDefinitions(t *testing.T) {
	got, err := Merge([]Definition{personDefinition(), productDefinition()})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got.Base != "https://example.org/people/" {
		t.Fatalf("base = %q", got.Base)
	}
	if got.Vocab != "https://example.org/vocab/" {
		t.Fatalf("vocab = %q", got.Vocab)
	}
	wantRefs := []string{"https://schema.org/", "https://w3id.org/commerce/"}
	if !reflect.DeepEqual(got.RemoteRefs, wantRefs) {
		t.Fatalf("remoteRefs = %v, want %v", got.RemoteRefs, wantRefs)
	}
	for _, name := range []string{"name", "email", "age", "sku", "price"} {
		if _, ok := got.Terms[name]; !ok {
			t.Fatalf("merged terms missing %q", name)
		}
	}
	if got.Prefixes["xsd"] != "http://www.w3.org/2001/XMLSchema#" {
		t.Fatalf("prefixes = %v", got.Prefixes)
	}
}

func TestMerge_RemoteRefsFirstSeenOrder(t *testing.T) {
	a := Definition{RemoteRefs: []string{"https://a.example/ctx", "https://shared.example/ctx"}}
	b := Definition{RemoteRefs: []string{"https://shared.example/ctx", "https://b.example/ctx"}}

	ab, err := Merge([]Definition{a, b})
	if err != nil {
		t.Fatalf("Merge(a,b): %v", err)
	}
	want := []string{"https://a.example/ctx", "https://shared.example/ctx", "https://b.example/ctx"}
	if !reflect.DeepEqual(ab.RemoteRefs, want) {
		t.Fatalf("remoteRefs = %v, want %v", ab.RemoteRefs, want)
	}

	// Order follows the input sequence, so the reverse merge differs.
	ba, err := Merge([]Definition{b, a})
	if err != nil {
		t.Fatalf("Merge(b,a): %v", err)
	}
	wantRev := []string{"https://shared.example/ctx", "https://b.example/ctx", "https://a.example/ctx"}
	if !reflect.DeepEqual(ba.RemoteRefs, wantRev) {
		t.Fatalf("remoteRefs = %v, want %v", ba.RemoteRefs, wantRev)
	}
}

func TestMerge_PrefixConflict(t *testing.T) {
	a := Definition{Prefixes: map[string]string{"ex": "https://a.example/"}}
	b := Definition{Prefixes: map[string]string{"ex": "https://b.example/"}}

	_, err := Merge([]Definition{a, b})
	c := asConflict(t, err)
	if c.Name != "ex" {
		t.Fatalf("conflict name = %q, want ex", c.Name)
	}
	if c.Existing != "https://a.example/" || c.Incoming != "https://b.example/" {
		t.Fatalf("conflict values = %v / %v", c.Existing, c.Incoming)
	}
	if lderr.RuleID(err) != "LDC-CTX-021" {
		t.Fatalf("rule = %s", lderr.RuleID(err))
	}

	// Conflict detection is order-independent.
	if _, err := Merge([]Definition{b, a}); err == nil {
		t.Fatalf("reverse order did not conflict")
	}
}

func TestMerge_IdenticalPrefixIsNoOp(t *testing.T) {
	a := Definition{Prefixes: map[string]string{"schema": "https://schema.org/"}}
	b := Definition{Prefixes: map[string]string{"schema": "https://schema.org/"}}
	got, err := Merge([]Definition{a, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got.Prefixes["schema"] != "https://schema.org/" {
		t.Fatalf("prefixes = %v", got.Prefixes)
	}
}

func TestMerge_TermConflictOnAnyFieldDifference(t *testing.T) {
	base := Term{IRI: "schema:name", Type: "xsd:string"}
	variants := []Term{
		{IRI: "schema:givenName", Type: "xsd:string"},
		{IRI: "schema:name", Type: "xsd:token"},
		{IRI: "schema:name", Type: "xsd:string", Container: ContainerSet},
		{IRI: "schema:name", Type: "xsd:string", Language: "en"},
	}
	for i, v := range variants {
		a := Definition{Terms: map[string]Term{"name": base}}
		b := Definition{Terms: map[string]Term{"name": v}}
		_, err := Merge([]Definition{a, b})
		c := asConflict(t, err)
		if c.Name != "name" {
			t.Fatalf("variant %d: conflict name = %q", i, c.Name)
		}
		if lderr.RuleID(err) != "LDC-CTX-022" {
			t.Fatalf("variant %d: rule = %s", i, lderr.RuleID(err))
		}
		existing, ok := c.Existing.(Term)
		if !ok || existing != base {
			t.Fatalf("variant %d: existing = %#v", i, c.Existing)
		}
		incoming, ok := c.Incoming.(Term)
		if !ok || incoming != v {
			t.Fatalf("variant %d: incoming = %#v", i, c.Incoming)
		}
	}
}

func TestMerge_IdenticalTermIsNoOp(t *testing.T) {
	term := Term{IRI: "schema:name", Type: "xsd:string", Language: "en"}
	a := Definition{Terms: map[string]Term{"name": term}}
	b := Definition{Terms: map[string]Term{"name": term}}
	got, err := Merge([]Definition{a, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got.Terms["name"] != term {
		t.Fatalf("terms = %v", got.Terms)
	}
}

func TestMerge_BaseConflict(t *testing.T) {
	a := Definition{Base: "https://a.example/"}
	b := Definition{Base: "https://b.example/"}
	_, err := Merge([]Definition{a, b})
	c := asConflict(t, err)
	if c.Name != KeywordBase {
		t.Fatalf("conflict name = %q", c.Name)
	}
	if lderr.RuleID(err) != "LDC-CTX-023" {
		t.Fatalf("rule = %s", lderr.RuleID(err))
	}
}

func TestMerge_VocabAgreementAndEmptyInputs(t *testing.T) {
	a := Definition{Vocab: "https://v.example/"}
	empty := Definition{}
	b := Definition{Vocab: "https://v.example/"}
	got, err := Merge([]Definition{a, empty, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got.Vocab != "https://v.example/" {
		t.Fatalf("vocab = %q", got.Vocab)
	}

	c := Definition{Vocab: "https://other.example/"}
	if _, err := Merge([]Definition{a, empty, c}); err == nil {
		t.Fatalf("expected vocab conflict")
	}
}

func TestMerge_PrefixAndTermNameCollision(t *testing.T) {
	a := Definition{Prefixes: map[string]string{"schema": "https://schema.org/"}}
	b := Definition{Terms: map[string]Term{"schema": {IRI: "https://example.org/schema"}}}
	_, err := Merge([]Definition{a, b})
	c := asConflict(t, err)
	if c.Name != "schema" {
		t.Fatalf("conflict name = %q", c.Name)
	}
	if lderr.RuleID(err) != "LDC-CTX-025" {
		t.Fatalf("rule = %s", lderr.RuleID(err))
	}
}

func TestMerge_NoPartialResultOnConflict(t *testing.T) {
	a := Definition{Prefixes: map[string]string{"ok": "https://ok.example/"}}
	b := Definition{Prefixes: map[string]string{"ex": "https://a.example/"}}
	c := Definition{Prefixes: map[string]string{"ex": "https://b.example/"}}
	got, err := Merge([]Definition{a, b, c})
	if err == nil {
		t.Fatalf("expected conflict")
	}
	if got.Prefixes != nil || got.Terms != nil || got.RemoteRefs != nil {
		t.Fatalf("expected zero Definition on failure, got %#v", got)
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	a := personDefinition()
	before := a.Clone()
	b := productDefinition()
	if _, err := Merge([]Definition{a, b}); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !a.Equal(before) {
		t.Fatalf("input mutated: %#v", a)
	}
}
