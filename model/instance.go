package model

import (
	"encoding/json"
	"fmt"
	"math"

	"ldcraft.io/ldcraft/lderr"
)

// NewInstance builds an instance document from field values keyed by field
// name. Unknown names are rejected, required fields must be present, and
// values are checked against each field's declared kind. Keys in the result
// use emitted names; nil and absent optional values are omitted entirely.
// The values map is deep-copied, never retained.
func (t *Type) NewInstance(values map[string]any) (Document, error) {
	for name := range values {
		found := false
		for _, f := range t.fields {
			if f.Name == name {
				found = true
				break
			}
		}
		if !found {
			return nil, lderr.New(lderr.KindModel, "LDC-MODEL-420",
				fmt.Sprintf("%s: unknown field %q", t.name, name))
		}
	}

	doc := make(Document, len(values))
	for _, f := range t.fields {
		value, present := values[f.Name]
		if !present || value == nil {
			if !f.Optional {
				return nil, lderr.New(lderr.KindModel, "LDC-MODEL-421",
					fmt.Sprintf("%s: required field %q missing", t.name, f.Name))
			}
			continue
		}
		if err := checkKind(t.name, f, value); err != nil {
			return nil, err
		}
		doc[f.EmittedName()] = copyValue(value)
	}
	return doc, nil
}

func checkKind(typeName string, f Field, value any) error {
	if f.Kind == KindAny {
		return nil
	}
	if f.Kind.IsList() {
		elems, ok := listElems(value)
		if !ok {
			return kindError(typeName, f, value)
		}
		elem := f.Kind.Elem()
		for _, e := range elems {
			if !scalarMatches(elem, e) {
				return kindError(typeName, f, e)
			}
		}
		return nil
	}
	if !scalarMatches(f.Kind, value) {
		return kindError(typeName, f, value)
	}
	return nil
}

func kindError(typeName string, f Field, value any) error {
	return lderr.New(lderr.KindModel, "LDC-MODEL-422",
		fmt.Sprintf("%s: field %q wants %s, got %T", typeName, f.Name, f.Kind, value))
}

func listElems(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	case []float64:
		out := make([]any, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out, true
	case []bool:
		out := make([]any, len(v))
		for i, b := range v {
			out[i] = b
		}
		return out, true
	default:
		return nil, false
	}
}

func scalarMatches(kind FieldKind, value any) bool {
	switch kind {
	case KindString, KindIRI:
		_, ok := value.(string)
		return ok
	case KindBoolean:
		_, ok := value.(bool)
		return ok
	case KindInteger:
		return isInteger(value)
	case KindDouble:
		return isNumeric(value)
	case KindAny:
		return true
	}
	return false
}

func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		// Decoded JSON delivers integers as float64.
		return !math.IsInf(v, 0) && v == math.Trunc(v)
	case json.Number:
		_, err := v.Int64()
		return err == nil
	}
	return false
}

func isNumeric(value any) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	}
	return false
}
