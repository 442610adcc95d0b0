package domain

import (
	"bytes"
	"encoding/json"
	"slices"
)

// RootFormsMap maps a normalized root to its surface forms. Keys keep the
// order of their first insertion, which is also the order of the JSON object.
type RootFormsMap struct {
	keys  []string
	forms map[string][]string
}

// NewRootFormsMap creates an empty map.
func NewRootFormsMap() *RootFormsMap {
	return &RootFormsMap{forms: make(map[string][]string)}
}

// Len returns the number of roots.
func (m *RootFormsMap) Len() int { return len(m.keys) }

// Keys returns the roots in insertion order.
func (m *RootFormsMap) Keys() []string { return slices.Clone(m.keys) }

// Has reports whether root is a key.
func (m *RootFormsMap) Has(root string) bool {
	_, ok := m.forms[root]
	return ok
}

// Forms returns the forms stored under root.
func (m *RootFormsMap) Forms(root string) ([]string, bool) {
	f, ok := m.forms[root]
	return f, ok
}

// Set stores forms under root. Overwriting an existing root replaces its
// value and keeps its position. Reports whether root was already present.
func (m *RootFormsMap) Set(root string, forms []string) (replaced bool) {
	if _, ok := m.forms[root]; ok {
		replaced = true
	} else {
		m.keys = append(m.keys, root)
	}
	m.forms[root] = forms
	return replaced
}

// Append adds form to the end of root's forms without re-sorting.
// It is a no-op when root is absent.
func (m *RootFormsMap) Append(root, form string) {
	if f, ok := m.forms[root]; ok {
		m.forms[root] = append(f, form)
	}
}

// MarshalJSON writes the map as an object with keys in insertion order.
func (m *RootFormsMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		forms := m.forms[k]
		if forms == nil {
			forms = []string{}
		}
		val, err := marshalNoEscape(forms)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape is json.Marshal without HTML escaping of <, > and &.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
