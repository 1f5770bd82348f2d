// Package dispatch routes handler identifiers to the compiled handler units.
//
// Tables are built once, at package initialization of the generated code,
// and never change afterwards. They are safe for concurrent use without
// locking.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"connector/internal/types"
)

// Kind is a handler category.
type Kind string

const (
	KindAction  Kind = "action"
	KindTrigger Kind = "trigger"
)

// RunFunc is a handler unit's entry point.
type RunFunc[C, R any] func(ctx context.Context, c C) (R, error)

// SchemaFunc returns one of a handler unit's schema documents.
type SchemaFunc[C any] func(ctx context.Context, c C) (json.RawMessage, error)

// Handler is the capability set a handler unit exposes.
type Handler[C, R any] struct {
	Name         string
	Run          RunFunc[C, R]
	InputSchema  SchemaFunc[C]
	OutputSchema SchemaFunc[C]
}

// Table is an immutable identifier → handler mapping for one kind.
type Table[C, R any] struct {
	kind     Kind
	names    []string
	handlers map[string]Handler[C, R]
}

// NewTable builds a table from the declared identifiers and their handlers.
// The identifiers must be strictly sorted and name exactly the given handlers.
func NewTable[C, R any](kind Kind, identifiers []string, handlers []Handler[C, R]) (*Table[C, R], error) {
	t := &Table[C, R]{
		kind:     kind,
		names:    append([]string{}, identifiers...),
		handlers: make(map[string]Handler[C, R], len(handlers)),
	}

	for _, h := range handlers {
		if h.Name == "" {
			return nil, fmt.Errorf("%s handler with empty name", kind)
		}
		if h.Run == nil {
			return nil, fmt.Errorf("%s %q has no entry function", kind, h.Name)
		}
		if _, exists := t.handlers[h.Name]; exists {
			return nil, fmt.Errorf("%s %q registered twice", kind, h.Name)
		}
		if h.InputSchema == nil {
			h.InputSchema = missingSchema[C](kind, h.Name, "input")
		}
		if h.OutputSchema == nil {
			h.OutputSchema = missingSchema[C](kind, h.Name, "output")
		}
		t.handlers[h.Name] = h
	}

	for i, name := range t.names {
		if i > 0 && t.names[i-1] >= name {
			return nil, fmt.Errorf("%s identifiers not strictly sorted at %q", kind, name)
		}
		if _, ok := t.handlers[name]; !ok {
			return nil, fmt.Errorf("%s %q declared without a handler", kind, name)
		}
	}
	if len(t.names) != len(t.handlers) {
		return nil, fmt.Errorf("%s table declares %d identifiers for %d handlers", kind, len(t.names), len(t.handlers))
	}

	return t, nil
}

// MustNewTable is NewTable for generated package-level variables.
func MustNewTable[C, R any](kind Kind, identifiers []string, handlers []Handler[C, R]) *Table[C, R] {
	t, err := NewTable(kind, identifiers, handlers)
	if err != nil {
		panic(err)
	}
	return t
}

// Kind returns the handler kind the table routes.
func (t *Table[C, R]) Kind() Kind { return t.kind }

// Names returns the routed identifiers in lexical order.
func (t *Table[C, R]) Names() []string {
	return append([]string{}, t.names...)
}

// Has reports whether name is routed.
func (t *Table[C, R]) Has(name string) bool {
	_, ok := t.handlers[name]
	return ok
}

// Lookup resolves name. Unknown identifiers yield a not_found AppError.
func (t *Table[C, R]) Lookup(name string) (Handler[C, R], error) {
	h, ok := t.handlers[name]
	if !ok {
		return Handler[C, R]{}, types.Errorf(types.ErrNotFound, "unknown %s %q", t.kind, name)
	}
	return h, nil
}

// Run invokes the entry function of name.
func (t *Table[C, R]) Run(ctx context.Context, name string, c C) (R, error) {
	h, err := t.Lookup(name)
	if err != nil {
		var zero R
		return zero, err
	}
	return h.Run(ctx, c)
}

// InputSchema returns the input schema of name.
func (t *Table[C, R]) InputSchema(ctx context.Context, name string, c C) (json.RawMessage, error) {
	h, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	return h.InputSchema(ctx, c)
}

// OutputSchema returns the output schema of name.
func (t *Table[C, R]) OutputSchema(ctx context.Context, name string, c C) (json.RawMessage, error) {
	h, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	return h.OutputSchema(ctx, c)
}

func missingSchema[C any](kind Kind, name, direction string) SchemaFunc[C] {
	return func(context.Context, C) (json.RawMessage, error) {
		return nil, types.Errorf(types.ErrNotFound, "%s %q has no %s schema", kind, name, direction)
	}
}
