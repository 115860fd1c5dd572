package fingerprint

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/iancoleman/orderedmap"
)

// Record is an insertion-ordered mapping of signal keys to values.
// The zero value is not usable; create records with NewRecord or Collect.
type Record struct {
	m *orderedmap.OrderedMap
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return &Record{m: m}
}

// Set stores v under key. Re-setting an existing key keeps its position.
func (r *Record) Set(key string, v any) {
	r.m.Set(key, v)
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	return r.m.Get(key)
}

// Delete removes key from the record.
func (r *Record) Delete(key string) {
	r.m.Delete(key)
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	keys := r.m.Keys()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Len returns the number of signals in the record.
func (r *Record) Len() int {
	return len(r.m.Keys())
}

// String returns the value under key if it is a string.
func (r *Record) String(key string) (string, bool) {
	v, ok := r.m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Project returns a new record holding only the given keys that are present,
// in the order they are listed.
func (r *Record) Project(keys ...string) *Record {
	out := NewRecord()
	for _, k := range keys {
		if v, ok := r.m.Get(k); ok {
			out.Set(k, v)
		}
	}
	return out
}

// MarshalJSON encodes the record in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.m.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object keeping the key order of the input.
// Numbers decode as float64, nested objects as ordered maps.
func (r *Record) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return errors.New("fingerprint: record must be a JSON object")
	}
	m := orderedmap.New()
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	m.SetEscapeHTML(false)
	r.m = m
	return nil
}
