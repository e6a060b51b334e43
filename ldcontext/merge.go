package ldcontext

import (
	"fmt"

	"ldcraft.io/ldcraft/lderr"
)

// ConflictError reports an incompatible redefinition found while merging.
// Existing and Incoming hold the two clashing values: strings for prefixes
// and @base/@vocab, Term values for terms. Extract it with errors.As; the
// wrapping error carries Kind KindContextConflict.
type ConflictError struct {
	Name     string
	Existing any
	Incoming any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("context conflict on %q: %v vs %v", e.Name, e.Existing, e.Incoming)
}

func conflict(ruleID, name string, existing, incoming any) error {
	c := &ConflictError{Name: name, Existing: existing, Incoming: incoming}
	return lderr.Wrap(lderr.KindContextConflict, ruleID, c.Error(), c)
}

// Merge combines definitions in order into one, failing closed on any
// ambiguity. RemoteRefs accumulate in first-seen order with duplicates
// dropped. A prefix or term may be re-declared identically (no-op) but never
// differently. @base and @vocab may each be declared by any number of
// inputs as long as every non-empty declaration agrees.
//
// Merge never returns a partial result: on conflict the returned Definition
// is zero. Inputs are not mutated. Merge([c, c]) equals c; conflict
// detection is order-independent, RemoteRefs order intentionally is not.
func Merge(defs []Definition) (Definition, error) {
	out := Definition{
		Prefixes: make(map[string]string),
		Terms:    make(map[string]Term),
	}
	seenRefs := make(map[string]bool)

	for _, def := range defs {
		for _, ref := range def.RemoteRefs {
			if seenRefs[ref] {
				continue
			}
			seenRefs[ref] = true
			out.RemoteRefs = append(out.RemoteRefs, ref)
		}

		if def.Base != "" {
			if out.Base != "" && out.Base != def.Base {
				return Definition{}, conflict("LDC-CTX-023", KeywordBase, out.Base, def.Base)
			}
			out.Base = def.Base
		}
		if def.Vocab != "" {
			if out.Vocab != "" && out.Vocab != def.Vocab {
				return Definition{}, conflict("LDC-CTX-024", KeywordVocab, out.Vocab, def.Vocab)
			}
			out.Vocab = def.Vocab
		}

		// Sorted walks keep the reported conflict stable when one input
		// carries several clashing names.
		for _, name := range sortedKeys(def.Prefixes) {
			iri := def.Prefixes[name]
			if term, taken := out.Terms[name]; taken {
				return Definition{}, conflict("LDC-CTX-025", name, term, iri)
			}
			if existing, ok := out.Prefixes[name]; ok {
				if existing != iri {
					return Definition{}, conflict("LDC-CTX-021", name, existing, iri)
				}
				continue
			}
			out.Prefixes[name] = iri
		}

		for _, name := range sortedKeys(def.Terms) {
			term := def.Terms[name]
			if iri, taken := out.Prefixes[name]; taken {
				return Definition{}, conflict("LDC-CTX-025", name, iri, term)
			}
			if existing, ok := out.Terms[name]; ok {
				if existing != term {
					return Definition{}, conflict("LDC-CTX-022", name, existing, term)
				}
				continue
			}
			out.Terms[name] = term
		}
	}
	return out, nil
}
