package ldcontext

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"ldcraft.io/ldcraft/lderr"
)

// artifactKeywords is the full set of @-prefixed keys admitted anywhere in a
// boundary artifact.
var artifactKeywords = map[string]bool{
	KeywordID:        true,
	KeywordType:      true,
	KeywordLanguage:  true,
	KeywordContainer: true,
	KeywordReverse:   true,
	KeywordContext:   true,
	KeywordBase:      true,
	KeywordVocab:     true,
	KeywordVersion:   true,
	KeywordGraph:     true,
	KeywordSet:       true,
	KeywordList:      true,
}

// termKeywords are the keys admitted inside an expanded term definition.
var termKeywords = map[string]bool{
	KeywordID:        true,
	KeywordType:      true,
	KeywordLanguage:  true,
	KeywordContainer: true,
	KeywordReverse:   true,
}

// containerValues are the values admitted for @container, singly or in an
// array.
var containerValues = map[string]bool{
	KeywordSet:      true,
	KeywordList:     true,
	KeywordLanguage: true,
	KeywordID:       true,
	KeywordType:     true,
	KeywordGraph:    true,
}

// ValidateContextDocument checks a {"@context": ...} artifact syntactically:
// keyword whitelist, keyword value shapes, and remote-reference form. It
// does not interpret RDF semantics; that is the external processor's job.
func ValidateContextDocument(doc map[string]any) error {
	ctx, ok := doc[KeywordContext]
	if !ok {
		return lderr.New(lderr.KindContextInvalid, "LDC-CTX-101",
			"document has no @context")
	}
	for key := range doc {
		if strings.HasPrefix(key, "@") && !artifactKeywords[key] {
			return lderr.New(lderr.KindContextInvalid, "LDC-CTX-113",
				fmt.Sprintf("unknown JSON-LD keyword %q", key))
		}
	}
	return validateContextValue(ctx)
}

func validateContextValue(ctx any) error {
	switch v := ctx.(type) {
	case map[string]any:
		return validateLocalContext(v)
	case []any:
		for i, item := range v {
			switch entry := item.(type) {
			case string:
				if !isRemoteRef(entry) {
					return lderr.New(lderr.KindContextInvalid, "LDC-CTX-103",
						fmt.Sprintf("@context[%d]: %q must be an absolute http(s) URL", i, entry))
				}
			case map[string]any:
				if err := validateLocalContext(entry); err != nil {
					return err
				}
			default:
				return lderr.New(lderr.KindContextInvalid, "LDC-CTX-102",
					fmt.Sprintf("@context[%d]: entry must be string or map, got %T", i, item))
			}
		}
		return nil
	default:
		return lderr.New(lderr.KindContextInvalid, "LDC-CTX-102",
			fmt.Sprintf("@context must be a map or array, got %T", ctx))
	}
}

func validateLocalContext(local map[string]any) error {
	for key, value := range local {
		if strings.HasPrefix(key, "@") && !artifactKeywords[key] {
			return lderr.New(lderr.KindContextInvalid, "LDC-CTX-104",
				fmt.Sprintf("unknown JSON-LD keyword %q", key))
		}
		switch key {
		case KeywordVersion:
			if !isVersion11(value) {
				return lderr.New(lderr.KindContextInvalid, "LDC-CTX-105",
					"@version must be 1.1")
			}
		case KeywordBase, KeywordVocab, KeywordLanguage:
			if _, ok := value.(string); !ok {
				return lderr.New(lderr.KindContextInvalid, "LDC-CTX-106",
					fmt.Sprintf("%s must be a string", key))
			}
		default:
			switch entry := value.(type) {
			case string:
				// Prefix or simple term mapping.
			case map[string]any:
				if err := validateTermDefinition(key, entry); err != nil {
					return err
				}
			default:
				return lderr.New(lderr.KindContextInvalid, "LDC-CTX-107",
					fmt.Sprintf("term %q must be string or map, got %T", key, value))
			}
		}
	}
	return nil
}

func validateTermDefinition(name string, def map[string]any) error {
	for key := range def {
		if !termKeywords[key] {
			return lderr.New(lderr.KindContextInvalid, "LDC-CTX-109",
				fmt.Sprintf("term %q: unknown keyword %q in definition", name, key))
		}
	}
	id, ok := def[KeywordID]
	if !ok {
		return lderr.New(lderr.KindContextInvalid, "LDC-CTX-108",
			fmt.Sprintf("term %q: definition must have @id", name))
	}
	if _, isStr := id.(string); !isStr {
		return lderr.New(lderr.KindContextInvalid, "LDC-CTX-108",
			fmt.Sprintf("term %q: @id must be a string", name))
	}
	if t, present := def[KeywordType]; present {
		if _, isStr := t.(string); !isStr {
			return lderr.New(lderr.KindContextInvalid, "LDC-CTX-110",
				fmt.Sprintf("term %q: @type must be a string", name))
		}
	}
	if c, present := def[KeywordContainer]; present {
		if err := validateContainer(name, c); err != nil {
			return err
		}
	}
	if l, present := def[KeywordLanguage]; present {
		if _, isStr := l.(string); !isStr {
			return lderr.New(lderr.KindContextInvalid, "LDC-CTX-112",
				fmt.Sprintf("term %q: @language must be a string", name))
		}
	}
	if r, present := def[KeywordReverse]; present {
		if _, isStr := r.(string); !isStr {
			return lderr.New(lderr.KindContextInvalid, "LDC-CTX-114",
				fmt.Sprintf("term %q: @reverse must be a string", name))
		}
	}
	return nil
}

func validateContainer(name string, value any) error {
	switch v := value.(type) {
	case string:
		if !containerValues[v] {
			return lderr.New(lderr.KindContextInvalid, "LDC-CTX-111",
				fmt.Sprintf("term %q: invalid @container value %q", name, v))
		}
		return nil
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok || !containerValues[s] {
				return lderr.New(lderr.KindContextInvalid, "LDC-CTX-111",
					fmt.Sprintf("term %q: invalid @container value %v", name, item))
			}
		}
		return nil
	default:
		return lderr.New(lderr.KindContextInvalid, "LDC-CTX-111",
			fmt.Sprintf("term %q: @container must be string or array", name))
	}
}

func isRemoteRef(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isVersion11(v any) bool {
	switch n := v.(type) {
	case float64:
		return n == 1.1
	case json.Number:
		return n.String() == "1.1"
	default:
		return false
	}
}
