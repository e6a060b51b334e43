// Package manifest parses modelfiles: a strict line-based declaration format
// the CLI uses to build record types without compiling Go.
//
// A modelfile holds one or more model blocks:
//
//	model Person
//	base https://example.org/people/
//	vocab https://example.org/vocab/
//	remote https://schema.org/
//	prefix schema https://schema.org/
//	field name schema:name kind=string
//	field id schema:identifier alias=@id type=@id kind=string
//	field age schema:age type=xsd:integer kind=integer optional
//	field keywords schema:keywords kind=list-of-string container=@set
//	end
//
// The format is deliberately unforgiving: UTF-8 only, no BOM, no carriage
// returns, no trailing whitespace, tokens separated by exactly one space.
// Lines whose first character is '#' are comments; blank lines separate
// blocks. Every parse error names the offending line.
package manifest

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"ldcraft.io/ldcraft/ldcontext"
	"ldcraft.io/ldcraft/lderr"
	"ldcraft.io/ldcraft/model"
)

var fieldKinds = map[string]model.FieldKind{
	"any":             model.KindAny,
	"string":          model.KindString,
	"integer":         model.KindInteger,
	"double":          model.KindDouble,
	"boolean":         model.KindBoolean,
	"iri":             model.KindIRI,
	"list-of-string":  model.KindStringList,
	"list-of-integer": model.KindIntegerList,
	"list-of-double":  model.KindDoubleList,
	"list-of-boolean": model.KindBooleanList,
}

// ParseFile reads and parses a modelfile from disk.
func ParseFile(path string) ([]*model.Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lderr.Wrap(lderr.KindManifest, "LDC-MANIFEST-510",
			fmt.Sprintf("read %s", path), err)
	}
	return Parse(data)
}

// Parse parses modelfile bytes into record types, in declaration order.
func Parse(data []byte) ([]*model.Type, error) {
	if !utf8.Valid(data) {
		return nil, lderr.New(lderr.KindManifest, "LDC-MANIFEST-500", "modelfile is not valid UTF-8")
	}
	if strings.HasPrefix(string(data), "\uFEFF") {
		return nil, lderr.New(lderr.KindManifest, "LDC-MANIFEST-500", "modelfile starts with a BOM")
	}
	if strings.ContainsRune(string(data), '\r') {
		return nil, lderr.New(lderr.KindManifest, "LDC-MANIFEST-501", "modelfile contains carriage returns; LF line endings only")
	}

	p := &parser{seen: map[string]bool{}}
	for i, line := range strings.Split(string(data), "\n") {
		if err := p.line(i+1, line); err != nil {
			return nil, err
		}
	}
	if p.open != nil {
		return nil, errLine(p.openLine, "506", fmt.Sprintf("model %q is never closed with end", p.open.name))
	}
	if len(p.types) == 0 {
		return nil, lderr.New(lderr.KindManifest, "LDC-MANIFEST-507", "modelfile declares no models")
	}
	return p.types, nil
}

type block struct {
	name     string
	cfg      model.Config
	fields   []model.Field
	hasBase  bool
	hasVocab bool
}

type parser struct {
	types    []*model.Type
	seen     map[string]bool
	open     *block
	openLine int
}

func errLine(n int, rule, msg string) error {
	return lderr.New(lderr.KindManifest, "LDC-MANIFEST-"+rule, fmt.Sprintf("line %d: %s", n, msg))
}

func (p *parser) line(n int, line string) error {
	if line == "" {
		return nil
	}
	if strings.TrimRight(line, " \t") != line {
		return errLine(n, "502", "trailing whitespace")
	}
	if line[0] == '#' {
		return nil
	}

	tokens := strings.Split(line, " ")
	for _, tok := range tokens {
		if tok == "" {
			return errLine(n, "502", "tokens must be separated by exactly one space")
		}
		if strings.ContainsRune(tok, '\t') {
			return errLine(n, "502", "tabs are not allowed between tokens")
		}
	}

	switch tokens[0] {
	case "model":
		if p.open != nil {
			return errLine(n, "503", fmt.Sprintf("model %q is still open; close it with end first", p.open.name))
		}
		if len(tokens) != 2 {
			return errLine(n, "504", "usage: model <Name>")
		}
		name := tokens[1]
		if p.seen[name] {
			return errLine(n, "505", fmt.Sprintf("duplicate model %q", name))
		}
		p.seen[name] = true
		p.open = &block{name: name, cfg: model.Config{Prefixes: map[string]string{}}}
		p.openLine = n
		return nil
	case "end":
		if p.open == nil {
			return errLine(n, "503", "end without an open model")
		}
		if len(tokens) != 1 {
			return errLine(n, "504", "end takes no arguments")
		}
		t, err := model.NewType(p.open.name, p.open.cfg, p.open.fields...)
		if err != nil {
			return lderr.Wrap(lderr.KindManifest, "LDC-MANIFEST-508",
				fmt.Sprintf("line %d: model %q is invalid", n, p.open.name), err)
		}
		p.types = append(p.types, t)
		p.open = nil
		return nil
	}

	if p.open == nil {
		return errLine(n, "503", fmt.Sprintf("%q outside a model block", tokens[0]))
	}

	switch tokens[0] {
	case "base":
		if len(tokens) != 2 {
			return errLine(n, "504", "usage: base <iri>")
		}
		if p.open.hasBase {
			return errLine(n, "505", "base declared twice")
		}
		p.open.hasBase = true
		p.open.cfg.Base = tokens[1]
	case "vocab":
		if len(tokens) != 2 {
			return errLine(n, "504", "usage: vocab <iri>")
		}
		if p.open.hasVocab {
			return errLine(n, "505", "vocab declared twice")
		}
		p.open.hasVocab = true
		p.open.cfg.Vocab = tokens[1]
	case "remote":
		if len(tokens) != 2 {
			return errLine(n, "504", "usage: remote <iri>")
		}
		p.open.cfg.RemoteRefs = append(p.open.cfg.RemoteRefs, tokens[1])
	case "prefix":
		if len(tokens) != 3 {
			return errLine(n, "504", "usage: prefix <name> <iri>")
		}
		if existing, dup := p.open.cfg.Prefixes[tokens[1]]; dup && existing != tokens[2] {
			return errLine(n, "505", fmt.Sprintf("prefix %q redeclared differently", tokens[1]))
		}
		p.open.cfg.Prefixes[tokens[1]] = tokens[2]
	case "field":
		f, err := parseField(n, tokens[1:])
		if err != nil {
			return err
		}
		p.open.fields = append(p.open.fields, f)
	default:
		return errLine(n, "503", fmt.Sprintf("unknown directive %q", tokens[0]))
	}
	return nil
}

func parseField(n int, tokens []string) (model.Field, error) {
	if len(tokens) < 2 {
		return model.Field{}, errLine(n, "504", "usage: field <name> <iri> [options]")
	}
	f := model.Field{
		Name: tokens[0],
		Term: ldcontext.Term{IRI: tokens[1]},
	}
	for _, opt := range tokens[2:] {
		if opt == "optional" {
			f.Optional = true
			continue
		}
		key, value, ok := strings.Cut(opt, "=")
		if !ok || value == "" {
			return model.Field{}, errLine(n, "509", fmt.Sprintf("malformed field option %q", opt))
		}
		switch key {
		case "kind":
			k, known := fieldKinds[value]
			if !known {
				return model.Field{}, errLine(n, "509", fmt.Sprintf("unknown kind %q", value))
			}
			f.Kind = k
		case "alias":
			f.Alias = value
		case "type":
			f.Term.Type = value
		case "language":
			f.Term.Language = value
		case "container":
			switch value {
			case string(ldcontext.ContainerSet):
				f.Term.Container = ldcontext.ContainerSet
			case string(ldcontext.ContainerList):
				f.Term.Container = ldcontext.ContainerList
			default:
				return model.Field{}, errLine(n, "509", fmt.Sprintf("container must be @set or @list, got %q", value))
			}
		default:
			return model.Field{}, errLine(n, "509", fmt.Sprintf("unknown field option %q", key))
		}
	}
	return f, nil
}
