package fingerprint

import (
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"github.com/iancoleman/orderedmap"
)

// Hash reduces a record to its identifier: the canonical JSON form folded
// through Sum. Key insertion order of r does not affect the result.
//
// The identifier is for best-effort device recognition only. It is 32 bits
// wide, so unrelated devices can collide, and any drift in an included signal
// (a new screen resolution, a browser update) produces a new identifier.
func Hash(r *Record) string {
	data, err := Canonical(r)
	if err != nil {
		data, _ = Canonical(stringified(r))
	}
	return Sum(string(data))
}

// CoreHash hashes only CoreKeys, trading precision for stability across
// normal and private browsing sessions.
func CoreHash(r *Record) string {
	if r == nil {
		return Hash(nil)
	}
	return Hash(r.Project(CoreKeys...))
}

// Validate reports whether stored is the identifier of r.
func Validate(r *Record, stored string) bool {
	if stored == "" {
		return false
	}
	return Hash(r) == stored
}

// Sum is the rolling hash h = h*31 + c over the UTF-16 code units of s with
// 32-bit signed wraparound, returned as the lowercase hex magnitude.
// Browsers computing the same loop over a JS string get the same value.
func Sum(s string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return strconv.FormatInt(n, 16)
}

// Canonical serialises r with keys in CanonicalKeys order, followed by any
// other keys sorted lexicographically. A nil record serialises as {}.
func Canonical(r *Record) ([]byte, error) {
	out := NewRecord()
	if r == nil {
		return out.MarshalJSON()
	}
	for _, k := range orderKeys(r.Keys(), canonicalIndex) {
		v, _ := r.Get(k)
		out.Set(k, canonicalValue(v))
	}
	return out.MarshalJSON()
}

// orderKeys puts keys listed in index first, in index order, and sorts the
// rest lexicographically.
func orderKeys(keys []string, index map[string]int) []string {
	ordered := slices.Clone(keys)
	slices.SortStableFunc(ordered, func(a, b string) int {
		ia, aok := index[a]
		ib, bok := index[b]
		switch {
		case aok && bok:
			return ia - ib
		case aok:
			return -1
		case bok:
			return 1
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
	return ordered
}

// canonicalValue rebuilds nested objects in NestedKeys order without HTML
// escaping; other values encode as-is.
func canonicalValue(v any) any {
	switch t := v.(type) {
	case orderedmap.OrderedMap:
		return canonicalMap(&t)
	case *orderedmap.OrderedMap:
		if t == nil {
			return nil
		}
		return canonicalMap(t)
	case map[string]any:
		if t == nil {
			return nil
		}
		m := orderedmap.New()
		for k, item := range t {
			m.Set(k, item)
		}
		return canonicalMap(m)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = canonicalValue(item)
		}
		return out
	default:
		return v
	}
}

func canonicalMap(m *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	out := orderedmap.New()
	out.SetEscapeHTML(false)
	for _, k := range orderKeys(m.Keys(), nestedIndex) {
		v, _ := m.Get(k)
		out.Set(k, canonicalValue(v))
	}
	return out
}

// stringified replaces every value with its fmt representation. It is the
// fallback for records holding values JSON cannot encode.
func stringified(r *Record) *Record {
	out := NewRecord()
	for _, k := range r.Keys() {
		v, _ := r.Get(k)
		out.Set(k, fmt.Sprintf("%v", v))
	}
	return out
}
