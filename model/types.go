package model

import (
	"fmt"
	"sort"
	"strings"

	"ldcraft.io/ldcraft/ldcontext"
	"ldcraft.io/ldcraft/lderr"
)

// FieldKind is the declared value kind of a field. It drives instance
// checking and datatype inference for shapes; KindAny opts a field out of
// both.
type FieldKind int

const (
	KindAny FieldKind = iota
	KindString
	KindInteger
	KindDouble
	KindBoolean
	KindIRI
	KindStringList
	KindIntegerList
	KindDoubleList
	KindBooleanList
)

var fieldKindNames = map[FieldKind]string{
	KindAny:         "any",
	KindString:      "string",
	KindInteger:     "integer",
	KindDouble:      "double",
	KindBoolean:     "boolean",
	KindIRI:         "iri",
	KindStringList:  "list-of-string",
	KindIntegerList: "list-of-integer",
	KindDoubleList:  "list-of-double",
	KindBooleanList: "list-of-boolean",
}

func (k FieldKind) String() string {
	if name, ok := fieldKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// IsList reports whether the kind holds multiple values.
func (k FieldKind) IsList() bool {
	switch k {
	case KindStringList, KindIntegerList, KindDoubleList, KindBooleanList:
		return true
	}
	return false
}

// Elem returns the element kind of a list kind, or KindAny.
func (k FieldKind) Elem() FieldKind {
	switch k {
	case KindStringList:
		return KindString
	case KindIntegerList:
		return KindInteger
	case KindDoubleList:
		return KindDouble
	case KindBooleanList:
		return KindBoolean
	}
	return KindAny
}

// Field declares one record field: its name, the optional emitted-name
// alias, its value kind, and the term descriptor tying it to a vocabulary.
type Field struct {
	Name     string
	Alias    string
	Kind     FieldKind
	Optional bool
	Term     ldcontext.Term
}

// EmittedName is the key under which the field appears in documents and
// context artifacts: the alias when set, the field name otherwise.
func (f Field) EmittedName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// Config carries the per-type context configuration.
type Config struct {
	Base       string
	Vocab      string
	RemoteRefs []string
	Prefixes   map[string]string
}

// Type is an immutable record declaration. Build one with NewType; the
// accessors return copies, never internal state.
type Type struct {
	name    string
	config  Config
	fields  []Field
	indexed map[string]int
}

// NewType validates and freezes a record declaration. The field list and
// config are copied; later changes to the caller's values have no effect.
func NewType(name string, cfg Config, fields ...Field) (*Type, error) {
	if name == "" {
		return nil, lderr.New(lderr.KindModel, "LDC-MODEL-401", "record type needs a name")
	}
	t := &Type{
		name: name,
		config: Config{
			Base:       cfg.Base,
			Vocab:      cfg.Vocab,
			RemoteRefs: append([]string(nil), cfg.RemoteRefs...),
			Prefixes:   make(map[string]string, len(cfg.Prefixes)),
		},
		fields:  make([]Field, 0, len(fields)),
		indexed: make(map[string]int, len(fields)),
	}
	for prefix, iri := range cfg.Prefixes {
		if prefix == "" || iri == "" {
			return nil, lderr.New(lderr.KindModel, "LDC-MODEL-408",
				fmt.Sprintf("%s: prefix mapping %q -> %q has an empty side", name, prefix, iri))
		}
		t.config.Prefixes[prefix] = iri
	}

	seenNames := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, lderr.New(lderr.KindModel, "LDC-MODEL-402",
				fmt.Sprintf("%s: field with empty name", name))
		}
		if seenNames[f.Name] {
			return nil, lderr.New(lderr.KindModel, "LDC-MODEL-407",
				fmt.Sprintf("%s: duplicate field %q", name, f.Name))
		}
		seenNames[f.Name] = true
		if f.Term.IRI == "" {
			return nil, lderr.New(lderr.KindModel, "LDC-MODEL-404",
				fmt.Sprintf("%s: field %q has no term IRI", name, f.Name))
		}
		if strings.HasPrefix(f.Alias, "@") && f.Alias != IDField {
			return nil, lderr.New(lderr.KindModel, "LDC-MODEL-406",
				fmt.Sprintf("%s: field %q alias %q: only @id may be aliased", name, f.Name, f.Alias))
		}
		switch f.Term.Container {
		case ldcontext.ContainerNone:
		case ldcontext.ContainerSet, ldcontext.ContainerList:
			if !f.Kind.IsList() && f.Kind != KindAny {
				return nil, lderr.New(lderr.KindModel, "LDC-MODEL-405",
					fmt.Sprintf("%s: field %q declares container %s on non-list kind %s",
						name, f.Name, f.Term.Container, f.Kind))
			}
		default:
			return nil, lderr.New(lderr.KindModel, "LDC-MODEL-409",
				fmt.Sprintf("%s: field %q has invalid container %q", name, f.Name, f.Term.Container))
		}
		emitted := f.EmittedName()
		if _, dup := t.indexed[emitted]; dup {
			return nil, lderr.New(lderr.KindModel, "LDC-MODEL-403",
				fmt.Sprintf("%s: two fields emit the same name %q", name, emitted))
		}
		if _, clash := t.config.Prefixes[emitted]; clash {
			return nil, lderr.New(lderr.KindModel, "LDC-MODEL-403",
				fmt.Sprintf("%s: field %q collides with prefix %q", name, f.Name, emitted))
		}
		t.indexed[emitted] = len(t.fields)
		t.fields = append(t.fields, f)
	}
	return t, nil
}

// Name returns the record type's name.
func (t *Type) Name() string { return t.name }

// Config returns a copy of the type's context configuration.
func (t *Type) Config() Config {
	cfg := Config{
		Base:       t.config.Base,
		Vocab:      t.config.Vocab,
		RemoteRefs: append([]string(nil), t.config.RemoteRefs...),
		Prefixes:   make(map[string]string, len(t.config.Prefixes)),
	}
	for prefix, iri := range t.config.Prefixes {
		cfg.Prefixes[prefix] = iri
	}
	return cfg
}

// Fields returns a copy of the declared fields, in declaration order.
func (t *Type) Fields() []Field {
	return append([]Field(nil), t.fields...)
}

// Context produces the type's context definition: config plus one term per
// field, keyed by emitted name.
func (t *Type) Context() ldcontext.Definition {
	def := ldcontext.Definition{
		Base:       t.config.Base,
		Vocab:      t.config.Vocab,
		RemoteRefs: append([]string(nil), t.config.RemoteRefs...),
		Prefixes:   make(map[string]string, len(t.config.Prefixes)),
		Terms:      make(map[string]ldcontext.Term, len(t.fields)),
	}
	for prefix, iri := range t.config.Prefixes {
		def.Prefixes[prefix] = iri
	}
	for _, f := range t.fields {
		def.Terms[f.EmittedName()] = f.Term
	}
	return def
}

// ContextDocument renders the boundary {"@context": ...} artifact for the
// type.
func (t *Type) ContextDocument() (Document, error) {
	return ldcontext.BuildContextDocument(t.Context())
}

// Describe renders a multi-line human-readable summary of the declaration:
// config first, then one line per field in declaration order.
func (t *Type) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "model %s\n", t.name)
	if t.config.Base != "" {
		fmt.Fprintf(&b, "  base  %s\n", t.config.Base)
	}
	if t.config.Vocab != "" {
		fmt.Fprintf(&b, "  vocab %s\n", t.config.Vocab)
	}
	for _, ref := range t.config.RemoteRefs {
		fmt.Fprintf(&b, "  remote %s\n", ref)
	}
	for _, name := range sortedPrefixNames(t.config.Prefixes) {
		fmt.Fprintf(&b, "  prefix %s -> %s\n", name, t.config.Prefixes[name])
	}
	for _, f := range t.fields {
		fmt.Fprintf(&b, "  field %s -> %s kind=%s", f.EmittedName(), f.Term.IRI, f.Kind)
		if f.Term.Type != "" {
			fmt.Fprintf(&b, " type=%s", f.Term.Type)
		}
		if f.Term.Container != ldcontext.ContainerNone {
			fmt.Fprintf(&b, " container=%s", f.Term.Container)
		}
		if f.Term.Language != "" {
			fmt.Fprintf(&b, " language=%s", f.Term.Language)
		}
		if f.Optional {
			b.WriteString(" optional")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func sortedPrefixNames(prefixes map[string]string) []string {
	names := make([]string, 0, len(prefixes))
	for name := range prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
