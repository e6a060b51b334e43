// Package shacl translates record declarations into SHACL validation shapes.
//
// The exported document is a JSON-LD artifact holding one closed sh:NodeShape
// per record type plus one sh:PropertyShape per annotated field, with XSD
// datatypes taken from the field's term type when it is xsd:-prefixed and
// inferred from the declared value kind otherwise.
package shacl

import (
	"strings"

	"ldcraft.io/ldcraft/ldcontext"
	"ldcraft.io/ldcraft/lderr"
	"ldcraft.io/ldcraft/model"
)

// Well-known vocabulary prefixes carried by every exported shape document.
var shapePrefixes = map[string]string{
	"sh":   "http://www.w3.org/ns/shacl#",
	"xsd":  "http://www.w3.org/2001/XMLSchema#",
	"rdf":  "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
}

// Export renders the SHACL shape document for a record type: a closed
// NodeShape targeting the type's class, referencing one PropertyShape per
// field. Shape IRIs hang off the type's base IRI when one is declared and
// fall back to the urn:shapes: namespace otherwise.
func Export(t *model.Type) (model.Document, error) {
	if t == nil {
		return nil, lderr.New(lderr.KindShacl, "LDC-SHACL-440", "shape export needs a record type")
	}
	cfg := t.Config()

	shapeID := shapeIRI(cfg.Base, t.Name()+"Shape")
	node := model.Document{
		"@id":                  shapeID,
		"@type":                "sh:NodeShape",
		"sh:targetClass":       map[string]any{"@id": targetClass(cfg, t.Name())},
		"sh:closed":            true,
		"sh:ignoredProperties": []any{"@id", "@type"},
	}

	fields := t.Fields()
	refs := make([]any, 0, len(fields))
	propShapes := make([]model.Document, 0, len(fields))
	for _, f := range fields {
		ps := propertyShape(cfg.Base, f)
		refs = append(refs, map[string]any{"@id": ps["@id"]})
		propShapes = append(propShapes, ps)
	}
	node["sh:property"] = refs

	graphed := make([]model.Document, 0, 1+len(propShapes))
	graphed = append(graphed, node)
	graphed = append(graphed, propShapes...)

	context := make(map[string]any, len(shapePrefixes)+len(cfg.Prefixes))
	for p, iri := range shapePrefixes {
		context[p] = iri
	}
	for p, iri := range cfg.Prefixes {
		if _, reserved := shapePrefixes[p]; reserved {
			continue
		}
		context[p] = iri
	}

	return model.Document{
		ldcontext.KeywordContext: context,
		ldcontext.KeywordGraph:   graphed,
	}, nil
}

func propertyShape(base string, f model.Field) model.Document {
	ps := model.Document{
		"@id":     shapeIRI(base, f.Name+"PropertyShape"),
		"@type":   "sh:PropertyShape",
		"sh:path": map[string]any{"@id": f.Term.IRI},
	}
	if !f.Optional {
		ps["sh:minCount"] = 1
	}
	switch {
	case f.Term.Type == ldcontext.KeywordID:
		ps["sh:nodeKind"] = map[string]any{"@id": "sh:IRI"}
	case strings.HasPrefix(f.Term.Type, "xsd:"):
		ps["sh:datatype"] = map[string]any{"@id": f.Term.Type}
	default:
		if dt := kindDatatype(f.Kind); dt != "" {
			ps["sh:datatype"] = map[string]any{"@id": dt}
		} else if f.Kind == model.KindIRI {
			ps["sh:nodeKind"] = map[string]any{"@id": "sh:IRI"}
		}
	}
	return ps
}

// kindDatatype maps a declared value kind to its XSD datatype; list kinds
// constrain the element datatype, cardinality stays with the container.
func kindDatatype(k model.FieldKind) string {
	if k.IsList() {
		k = k.Elem()
	}
	switch k {
	case model.KindString:
		return "xsd:string"
	case model.KindInteger:
		return "xsd:integer"
	case model.KindDouble:
		return "xsd:double"
	case model.KindBoolean:
		return "xsd:boolean"
	}
	return ""
}

func shapeIRI(base, name string) string {
	if base != "" {
		return base + "shapes/" + name
	}
	return "urn:shapes:" + name
}

func targetClass(cfg model.Config, name string) string {
	switch {
	case cfg.Base != "":
		return cfg.Base + name
	case cfg.Vocab != "":
		return cfg.Vocab + name
	default:
		return name
	}
}
