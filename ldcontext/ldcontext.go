// Package ldcontext models JSON-LD context definitions and merges them
// without silent collisions.
//
// A Definition is the resolved, in-memory form of one record type's term
// mappings (or of a merge over several). Definitions are plain values;
// nothing in this package mutates its inputs or holds state across calls.
package ldcontext

import "sort"

// JSON-LD keywords admitted in boundary artifacts. Anything else
// @-prefixed is rejected at the boundary.
const (
	KeywordID        = "@id"
	KeywordType      = "@type"
	KeywordLanguage  = "@language"
	KeywordContainer = "@container"
	KeywordReverse   = "@reverse"
	KeywordContext   = "@context"
	KeywordBase      = "@base"
	KeywordVocab     = "@vocab"
	KeywordVersion   = "@version"
	KeywordGraph     = "@graph"
	KeywordSet       = "@set"
	KeywordList      = "@list"
)

// Container selects how multi-valued terms are interpreted.
type Container string

const (
	// ContainerNone leaves multi-value semantics to the processor.
	ContainerNone Container = ""
	// ContainerSet marks an unordered multi-value term.
	ContainerSet Container = "@set"
	// ContainerList marks an order-significant multi-value term.
	ContainerList Container = "@list"
)

// Term maps one emitted name to a vocabulary IRI, optionally typed.
//
// Two terms are compatible only if every field matches exactly; structural
// equality is plain ==.
type Term struct {
	IRI       string
	Type      string
	Container Container
	Language  string
}

// Definition is one resolved context: remote references, prefix mappings,
// and term mappings. Term keys are the emitted names (a field alias, when
// declared, replaces the field name before the term enters a Definition).
type Definition struct {
	RemoteRefs []string
	Base       string
	Vocab      string
	Prefixes   map[string]string
	Terms      map[string]Term
}

// Equal reports structural equality, including RemoteRefs order.
func (d Definition) Equal(o Definition) bool {
	if d.Base != o.Base || d.Vocab != o.Vocab {
		return false
	}
	if len(d.RemoteRefs) != len(o.RemoteRefs) {
		return false
	}
	for i, ref := range d.RemoteRefs {
		if o.RemoteRefs[i] != ref {
			return false
		}
	}
	if len(d.Prefixes) != len(o.Prefixes) || len(d.Terms) != len(o.Terms) {
		return false
	}
	for name, iri := range d.Prefixes {
		if other, ok := o.Prefixes[name]; !ok || other != iri {
			return false
		}
	}
	for name, term := range d.Terms {
		if other, ok := o.Terms[name]; !ok || other != term {
			return false
		}
	}
	return true
}

// Clone returns a deep copy sharing no maps or slices with d.
func (d Definition) Clone() Definition {
	out := Definition{Base: d.Base, Vocab: d.Vocab}
	if d.RemoteRefs != nil {
		out.RemoteRefs = append([]string(nil), d.RemoteRefs...)
	}
	out.Prefixes = make(map[string]string, len(d.Prefixes))
	for name, iri := range d.Prefixes {
		out.Prefixes[name] = iri
	}
	out.Terms = make(map[string]Term, len(d.Terms))
	for name, term := range d.Terms {
		out.Terms[name] = term
	}
	return out
}

// sortedKeys returns map keys in byte order, for deterministic walks.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
