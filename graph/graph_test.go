package graph

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"ldcraft.io/ldcraft/ldcontext"
	"ldcraft.io/ldcraft/lderr"
	"ldcraft.io/ldcraft/model"
)

func personContext() ldcontext.Definition {
	return ldcontext.Definition{
		Vocab:    "https://example.org/vocab/",
		Prefixes: map[string]string{"schema": "https://schema.org/"},
		Terms: map[string]ldcontext.Term{
			"name": {IRI: "schema:name"},
			"age":  {IRI: "schema:age", Type: "xsd:integer"},
		},
	}
}

func productContext() ldcontext.Definition {
	return ldcontext.Definition{
		Vocab:    "https://example.org/vocab/",
		Prefixes: map[string]string{"schema": "https://schema.org/"},
		Terms: map[string]ldcontext.Term{
			"title": {IRI: "schema:name"},
			"price": {IRI: "schema:price", Type: "xsd:double"},
		},
	}
}

func TestExport_SynthesizesIDsInOrder(t *testing.T) {
	instances := []model.Document{
		{"name": "Ada", "age": 36},
		{"name": "Grace", "age": 45},
		{"name": "Edsger", "age": 72},
	}
	g, err := Export(instances, personContext(), Options{TypeName: "Person"})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(g.Graph) != 3 {
		t.Fatalf("graph has %d entries, want 3", len(g.Graph))
	}
	seen := map[string]bool{}
	for i, doc := range g.Graph {
		want := fmt.Sprintf("person-%d", i+1)
		got, _ := doc[model.IDField].(string)
		if got != want {
			t.Fatalf("entry %d id = %q, want %q", i, got, want)
		}
		if seen[got] {
			t.Fatalf("duplicate synthesized id %q", got)
		}
		seen[got] = true
	}
}

func TestExport_KeepsExplicitIDs(t *testing.T) {
	instances := []model.Document{
		{"@id": "urn:people:ada", "name": "Ada"},
		{"name": "Grace"},
	}
	g, err := Export(instances, personContext(), Options{TypeName: "Person"})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if g.Graph[0][model.IDField] != "urn:people:ada" {
		t.Fatalf("explicit id was replaced: %v", g.Graph[0][model.IDField])
	}
	if g.Graph[1][model.IDField] != "person-2" {
		t.Fatalf("synthesized id = %v, want person-2 (graph-wide index)", g.Graph[1][model.IDField])
	}
}

func TestExport_Defaults(t *testing.T) {
	g, err := Export([]model.Document{{"name": "Ada"}}, personContext(), Options{TypeName: "Person"})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if g.ID != "person-graph" {
		t.Fatalf("graph id = %q, want person-graph", g.ID)
	}
	if g.Type != DefaultGraphType {
		t.Fatalf("graph type = %q, want %q", g.Type, DefaultGraphType)
	}
}

func TestExport_DoesNotMutateInstances(t *testing.T) {
	inst := model.Document{"name": "Ada"}
	if _, err := Export([]model.Document{inst}, personContext(), Options{TypeName: "Person"}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, ok := inst[model.IDField]; ok {
		t.Fatalf("Export mutated its input instance")
	}
}

func TestExport_EmptyInstances(t *testing.T) {
	_, err := Export(nil, personContext(), Options{TypeName: "Person"})
	if !lderr.IsKind(err, lderr.KindGraph) {
		t.Fatalf("got %v, want KindGraph", err)
	}
}

func TestExport_RequiresTypeName(t *testing.T) {
	_, err := Export([]model.Document{{"name": "Ada"}}, personContext(), Options{})
	if !lderr.IsKind(err, lderr.KindGraph) {
		t.Fatalf("got %v, want KindGraph", err)
	}
}

func TestExport_RejectsKeywordMetadata(t *testing.T) {
	_, err := Export([]model.Document{{"name": "Ada"}}, personContext(), Options{
		TypeName: "Person",
		Metadata: map[string]any{"@context": "nope"},
	})
	if !lderr.IsKind(err, lderr.KindGraph) {
		t.Fatalf("got %v, want KindGraph", err)
	}
	if lderr.RuleID(err) != "LDC-GRAPH-303" {
		t.Fatalf("rule = %q, want LDC-GRAPH-303", lderr.RuleID(err))
	}
}

func TestExportMixed_MergesContexts(t *testing.T) {
	sources := []Source{
		{Doc: model.Document{"name": "Ada"}, TypeName: "Person", Context: personContext()},
		{Doc: model.Document{"title": "Engine"}, TypeName: "Product", Context: productContext()},
	}
	g, err := ExportMixed(sources, Options{GraphID: "catalog"})
	if err != nil {
		t.Fatalf("ExportMixed: %v", err)
	}
	if g.ID != "catalog" {
		t.Fatalf("graph id = %q", g.ID)
	}
	for _, term := range []string{"name", "age", "title", "price"} {
		if _, ok := g.Context.Terms[term]; !ok {
			t.Fatalf("merged context missing term %q", term)
		}
	}
	if g.Context.Prefixes["schema"] != "https://schema.org/" {
		t.Fatalf("shared prefix lost in merge")
	}
	if g.Graph[0][model.IDField] != "person-1" || g.Graph[1][model.IDField] != "product-2" {
		t.Fatalf("mixed ids = %v, %v", g.Graph[0][model.IDField], g.Graph[1][model.IDField])
	}
}

func TestExportMixed_ConflictPropagates(t *testing.T) {
	a := personContext()
	b := productContext()
	b.Prefixes["schema"] = "https://b.example/"

	_, err := ExportMixed([]Source{
		{Doc: model.Document{"name": "Ada"}, TypeName: "Person", Context: a},
		{Doc: model.Document{"title": "Engine"}, TypeName: "Product", Context: b},
	}, Options{})
	if !lderr.IsKind(err, lderr.KindContextConflict) {
		t.Fatalf("got %v, want KindContextConflict", err)
	}
	var conflict *ldcontext.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("cannot extract ConflictError from %v", err)
	}
	if conflict.Name != "schema" {
		t.Fatalf("conflict name = %q, want schema", conflict.Name)
	}
}

func TestExportMixed_DefaultIDUsesClock(t *testing.T) {
	now := time.Date(2026, 7, 4, 10, 30, 0, 0, time.UTC)
	g, err := ExportMixed([]Source{
		{Doc: model.Document{"name": "Ada"}, TypeName: "Person", Context: personContext()},
	}, Options{Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("ExportMixed: %v", err)
	}
	if g.ID != "mixed-graph-20260704103000" {
		t.Fatalf("default mixed id = %q", g.ID)
	}
}

func TestExportMixed_DeduplicatesIdenticalContexts(t *testing.T) {
	g, err := ExportMixed([]Source{
		{Doc: model.Document{"name": "Ada"}, TypeName: "Person", Context: personContext()},
		{Doc: model.Document{"name": "Grace"}, TypeName: "Person", Context: personContext()},
	}, Options{GraphID: "g"})
	if err != nil {
		t.Fatalf("ExportMixed: %v", err)
	}
	if !g.Context.Equal(personContext()) {
		t.Fatalf("merging one distinct context changed it")
	}
}

func TestAsDocument_Shape(t *testing.T) {
	g, err := Export([]model.Document{{"name": "Ada"}}, personContext(), Options{
		TypeName: "Person",
		Metadata: map[string]any{"created": "2026-07-04", "source": "hr"},
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	doc, err := g.AsDocument()
	if err != nil {
		t.Fatalf("AsDocument: %v", err)
	}
	if _, ok := doc[ldcontext.KeywordContext]; !ok {
		t.Fatalf("artifact missing @context")
	}
	if doc[ldcontext.KeywordID] != "person-graph" || doc[ldcontext.KeywordType] != "Dataset" {
		t.Fatalf("artifact id/type = %v/%v", doc[ldcontext.KeywordID], doc[ldcontext.KeywordType])
	}
	entries, ok := doc[ldcontext.KeywordGraph].([]model.Document)
	if !ok || len(entries) != 1 {
		t.Fatalf("artifact @graph = %T with %d entries", doc[ldcontext.KeywordGraph], len(entries))
	}
	if doc["created"] != "2026-07-04" || doc["source"] != "hr" {
		t.Fatalf("metadata not merged at top level")
	}
}

func TestAsDocument_ArrayContextWithRemoteRefs(t *testing.T) {
	ctx := personContext()
	ctx.RemoteRefs = []string{"https://schema.org/docs/jsonldcontext.jsonld"}
	g, err := Export([]model.Document{{"name": "Ada"}}, ctx, Options{TypeName: "Person"})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	doc, err := g.AsDocument()
	if err != nil {
		t.Fatalf("AsDocument: %v", err)
	}
	arr, ok := doc[ldcontext.KeywordContext].([]any)
	if !ok {
		t.Fatalf("@context with remote refs should be an array, got %T", doc[ldcontext.KeywordContext])
	}
	if arr[0] != "https://schema.org/docs/jsonldcontext.jsonld" {
		t.Fatalf("remote ref not first in @context array")
	}
}
