// Package canon produces canonical JSON bytes: a total, reproducible
// serialization in which structurally equal values always yield identical
// bytes regardless of construction order.
package canon

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"ldcraft.io/ldcraft/lderr"
)

// Marshal serializes v into canonical bytes.
//
// Object keys are NFC-normalized and sorted by byte-wise comparison of their
// UTF-8 encoding. Array order is preserved: array position is semantically
// meaningful (an @list container, a @graph sequence). Strings are
// NFC-normalized. Numbers use a single canonical textual form. Values with no
// canonical form (NaN, infinities, unsupported types, invalid UTF-8) fail
// with a KindSerialization error; nothing is ever silently coerced.
func Marshal(v any) ([]byte, error) {
	return appendValue(nil, v, "$")
}

func appendValue(dst []byte, v any, path string) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return append(dst, "null"...), nil
	case bool:
		if val {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case string:
		return appendString(dst, val, path)
	case int:
		return strconv.AppendInt(dst, int64(val), 10), nil
	case int8:
		return strconv.AppendInt(dst, int64(val), 10), nil
	case int16:
		return strconv.AppendInt(dst, int64(val), 10), nil
	case int32:
		return strconv.AppendInt(dst, int64(val), 10), nil
	case int64:
		return strconv.AppendInt(dst, val, 10), nil
	case uint:
		return strconv.AppendUint(dst, uint64(val), 10), nil
	case uint8:
		return strconv.AppendUint(dst, uint64(val), 10), nil
	case uint16:
		return strconv.AppendUint(dst, uint64(val), 10), nil
	case uint32:
		return strconv.AppendUint(dst, uint64(val), 10), nil
	case uint64:
		return strconv.AppendUint(dst, val, 10), nil
	case float32:
		return appendFloat(dst, float64(val), path)
	case float64:
		return appendFloat(dst, val, path)
	case json.Number:
		return appendNumber(dst, val, path)
	case []any:
		return appendArray(dst, val, path)
	case []string:
		arr := make([]any, len(val))
		for i, s := range val {
			arr[i] = s
		}
		return appendArray(dst, arr, path)
	case []int:
		arr := make([]any, len(val))
		for i, n := range val {
			arr[i] = n
		}
		return appendArray(dst, arr, path)
	case []float64:
		arr := make([]any, len(val))
		for i, f := range val {
			arr[i] = f
		}
		return appendArray(dst, arr, path)
	case []bool:
		arr := make([]any, len(val))
		for i, b := range val {
			arr[i] = b
		}
		return appendArray(dst, arr, path)
	case []map[string]any:
		arr := make([]any, len(val))
		for i, m := range val {
			arr[i] = m
		}
		return appendArray(dst, arr, path)
	case map[string]any:
		return appendObject(dst, val, path)
	case map[string]string:
		m := make(map[string]any, len(val))
		for k, s := range val {
			m[k] = s
		}
		return appendObject(dst, m, path)
	default:
		return nil, lderr.New(lderr.KindSerialization, "LDC-CANON-001",
			fmt.Sprintf("%s: type %T has no canonical form", path, v))
	}
}

func appendArray(dst []byte, arr []any, path string) ([]byte, error) {
	dst = append(dst, '[')
	for i, elem := range arr {
		if i > 0 {
			dst = append(dst, ',')
		}
		var err error
		dst, err = appendValue(dst, elem, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
	}
	return append(dst, ']'), nil
}

func appendObject(dst []byte, obj map[string]any, path string) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	byNorm := make(map[string]string, len(obj))
	for k := range obj {
		if !utf8.ValidString(k) {
			return nil, lderr.New(lderr.KindSerialization, "LDC-CANON-002",
				fmt.Sprintf("%s: key is not valid UTF-8", path))
		}
		nk := norm.NFC.String(k)
		if prev, dup := byNorm[nk]; dup {
			return nil, lderr.New(lderr.KindSerialization, "LDC-CANON-004",
				fmt.Sprintf("%s: keys %q and %q normalize to the same form", path, prev, k))
		}
		byNorm[nk] = k
		keys = append(keys, nk)
	}
	// Go string comparison is byte-wise, which is exactly the required
	// UTF-8 byte ordering.
	sort.Strings(keys)

	dst = append(dst, '{')
	for i, nk := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		var err error
		dst, err = appendString(dst, nk, path)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ':')
		dst, err = appendValue(dst, obj[byNorm[nk]], path+"."+nk)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}

func appendString(dst []byte, s string, path string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, lderr.New(lderr.KindSerialization, "LDC-CANON-002",
			fmt.Sprintf("%s: string is not valid UTF-8", path))
	}
	s = norm.NFC.String(s)

	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c >= 0x20:
			// Non-ASCII continuation bytes pass through untouched: the
			// canonical form keeps literal UTF-8, never \u escapes above
			// the control range.
			dst = append(dst, c)
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		default:
			const hex = "0123456789abcdef"
			dst = append(dst, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
		}
	}
	return append(dst, '"'), nil
}

// appendFloat emits the canonical number form: integral values in plain
// decimal, everything else as the shortest round-trip decimal, with exponent
// notation only outside [1e-6, 1e21).
func appendFloat(dst []byte, f float64, path string) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, lderr.New(lderr.KindSerialization, "LDC-CANON-003",
			fmt.Sprintf("%s: non-finite float has no canonical form", path))
	}
	if f == 0 {
		// Covers -0: the canonical form of both zeros is "0".
		return append(dst, '0'), nil
	}
	abs := math.Abs(f)
	if f == math.Trunc(f) && abs < 1<<53 {
		return strconv.AppendFloat(dst, f, 'f', -1, 64), nil
	}
	if abs >= 1e21 || abs < 1e-6 {
		return appendExponent(dst, f), nil
	}
	return strconv.AppendFloat(dst, f, 'f', -1, 64), nil
}

// appendExponent renders f in exponent form with a shortest mantissa, an
// explicit exponent sign, and no leading zeros in the exponent digits.
func appendExponent(dst []byte, f float64) []byte {
	raw := strconv.AppendFloat(nil, f, 'e', -1, 64)
	i := 0
	for i < len(raw) && raw[i] != 'e' {
		i++
	}
	dst = append(dst, raw[:i+1]...)
	exp := raw[i+1:]
	j := 0
	if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
		dst = append(dst, exp[0])
		j = 1
	}
	for j < len(exp)-1 && exp[j] == '0' {
		j++
	}
	return append(dst, exp[j:]...)
}

func appendNumber(dst []byte, n json.Number, path string) ([]byte, error) {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.AppendInt(dst, i, 10), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, lderr.Wrap(lderr.KindSerialization, "LDC-CANON-005",
			fmt.Sprintf("%s: number %q has no canonical form", path, s), err)
	}
	return appendFloat(dst, f, path)
}
