package ldcontext

import (
	"fmt"

	"ldcraft.io/ldcraft/lderr"
)

// BuildContextDocument renders a definition as the boundary artifact
// {"@context": ...}. With no remote references the context is a single map;
// otherwise it is an array of the remote IRIs, in order, followed by the
// local map. Term entries always use the expanded {"@id": ...} form.
func BuildContextDocument(def Definition) (map[string]any, error) {
	local := make(map[string]any, len(def.Prefixes)+len(def.Terms)+2)
	if def.Base != "" {
		local[KeywordBase] = def.Base
	}
	if def.Vocab != "" {
		local[KeywordVocab] = def.Vocab
	}
	for name, iri := range def.Prefixes {
		if name == "" {
			return nil, lderr.New(lderr.KindContextInvalid, "LDC-CTX-120", "empty prefix name")
		}
		local[name] = iri
	}
	for name, term := range def.Terms {
		if name == "" {
			return nil, lderr.New(lderr.KindContextInvalid, "LDC-CTX-121", "empty term name")
		}
		if term.IRI == "" {
			return nil, lderr.New(lderr.KindContextInvalid, "LDC-CTX-122",
				fmt.Sprintf("term %q has no IRI", name))
		}
		if _, taken := def.Prefixes[name]; taken {
			return nil, conflict("LDC-CTX-025", name, def.Prefixes[name], term)
		}
		local[name] = termEntry(term)
	}

	if len(def.RemoteRefs) == 0 {
		return map[string]any{KeywordContext: local}, nil
	}
	ctx := make([]any, 0, len(def.RemoteRefs)+1)
	for _, ref := range def.RemoteRefs {
		ctx = append(ctx, ref)
	}
	ctx = append(ctx, local)
	return map[string]any{KeywordContext: ctx}, nil
}

func termEntry(term Term) map[string]any {
	entry := map[string]any{KeywordID: term.IRI}
	if term.Type != "" {
		entry[KeywordType] = term.Type
	}
	if term.Container != ContainerNone {
		entry[KeywordContainer] = string(term.Container)
	}
	if term.Language != "" {
		entry[KeywordLanguage] = term.Language
	}
	return entry
}
