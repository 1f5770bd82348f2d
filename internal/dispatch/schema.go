package dispatch

import (
	"context"
	"encoding/json"

	"connector/internal/schema"
	"connector/internal/types"
)

// OverrideFunc computes a schema at call time. base is the embedded document
// for the same key, or nil when no schema file was present.
type OverrideFunc[C any] func(ctx context.Context, c C, base json.RawMessage) (json.RawMessage, error)

// StaticSchema serves the embedded document stored under key.
func StaticSchema[C any](b *schema.Bundle, key string) SchemaFunc[C] {
	return func(context.Context, C) (json.RawMessage, error) {
		doc, ok := b.Lookup(key)
		if !ok {
			return nil, types.Errorf(types.ErrNotFound, "schema %q not found", key)
		}
		return json.RawMessage(doc), nil
	}
}

// OverrideSchema lets a handler unit rewrite or replace its embedded schema.
func OverrideSchema[C any](b *schema.Bundle, key string, fn OverrideFunc[C]) SchemaFunc[C] {
	return func(ctx context.Context, c C) (json.RawMessage, error) {
		var base json.RawMessage
		if doc, ok := b.Lookup(key); ok {
			base = json.RawMessage(doc)
		}
		return fn(ctx, c, base)
	}
}
