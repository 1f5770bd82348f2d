// Package schema holds the schema documents embedded into the connector at
// build time.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Bundle is an immutable key → schema text store. Keys have the form
// "<identifier>_input" and "<identifier>_output".
type Bundle struct {
	docs map[string]string
}

// Parse reconstructs a bundle from its serialized payload.
func Parse(payload string) (*Bundle, error) {
	docs := make(map[string]string)
	if err := json.Unmarshal([]byte(payload), &docs); err != nil {
		return nil, fmt.Errorf("decoding schema bundle: %w", err)
	}
	return &Bundle{docs: docs}, nil
}

// MustParse is Parse for package-level initialization of generated code.
func MustParse(payload string) *Bundle {
	b, err := Parse(payload)
	if err != nil {
		panic(err)
	}
	return b
}

// Key builds the bundle key for an identifier and direction ("input" or "output").
func Key(identifier, direction string) string {
	return identifier + "_" + direction
}

// Lookup returns the raw schema text stored under key.
func (b *Bundle) Lookup(key string) (string, bool) {
	if b == nil {
		return "", false
	}
	doc, ok := b.docs[key]
	return doc, ok
}

// Keys returns all keys in lexical order.
func (b *Bundle) Keys() []string {
	if b == nil {
		return nil
	}
	keys := make([]string, 0, len(b.docs))
	for k := range b.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of embedded documents.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.docs)
}
