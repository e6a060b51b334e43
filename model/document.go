package model

// Document is one record instance as an open field-name→value mapping,
// optionally carrying "@id" and "proof" entries. It aliases map[string]any
// so decoded JSON needs no conversion.
type Document = map[string]any

// ProofField is the reserved sibling key carrying a document's proof.
const ProofField = "proof"

// IDField is the reserved key carrying a document's identifier.
const IDField = "@id"

// CloneDocument returns a deep copy: nested maps and slices are copied,
// scalars shared. The copy can be mutated without touching the original.
func CloneDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	return copyMap(doc)
}

// WithoutProof returns a deep copy of doc with the proof field removed.
func WithoutProof(doc Document) Document {
	out := CloneDocument(doc)
	delete(out, ProofField)
	return out
}

// HasProof reports whether doc carries a proof entry.
func HasProof(doc Document) bool {
	_, ok := doc[ProofField]
	return ok
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = copyValue(elem)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(val))
		for i, elem := range val {
			out[i] = copyMap(elem)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case []int:
		return append([]int(nil), val...)
	case []float64:
		return append([]float64(nil), val...)
	case []bool:
		return append([]bool(nil), val...)
	default:
		return v
	}
}
