package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connector/internal/schema"
	"connector/internal/types"
)

type call struct {
	ID      string
	Payload string
}

func sortedNames[C, R any](handlers []Handler[C, R]) []string {
	names := make([]string, 0, len(handlers))
	for _, h := range handlers {
		names = append(names, h.Name)
	}
	sort.Strings(names)
	return names
}

func echo(_ context.Context, c *call) (string, error) {
	return c.ID + ":" + c.Payload, nil
}

func testHandlers(b *schema.Bundle) []Handler[*call, string] {
	return []Handler[*call, string]{
		{
			Name:         "list_items",
			Run:          echo,
			InputSchema:  StaticSchema[*call](b, "list_items_input"),
			OutputSchema: StaticSchema[*call](b, "list_items_output"),
		},
		{
			Name:         "create_item",
			Run:          echo,
			InputSchema:  StaticSchema[*call](b, "create_item_input"),
			OutputSchema: StaticSchema[*call](b, "create_item_output"),
		},
	}
}

func testBundle() *schema.Bundle {
	return schema.MustParse(`{"create_item_input":"{\"type\":\"object\"}","create_item_output":"{}","list_items_output":"{\"type\":\"array\"}"}`)
}

func TestTableRoutes(t *testing.T) {
	handlers := testHandlers(testBundle())
	table, err := NewTable(KindAction, sortedNames(handlers), handlers)
	require.NoError(t, err)

	assert.Equal(t, KindAction, table.Kind())
	assert.Equal(t, []string{"create_item", "list_items"}, table.Names())
	assert.True(t, table.Has("create_item"))

	out, err := table.Run(context.Background(), "create_item", &call{ID: "create_item", Payload: "a"})
	require.NoError(t, err)
	assert.Equal(t, "create_item:a", out)

	doc, err := table.InputSchema(context.Background(), "create_item", &call{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object"}`, string(doc))

	doc, err = table.OutputSchema(context.Background(), "list_items", &call{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"array"}`, string(doc))
}

func TestTableNamesIsACopy(t *testing.T) {
	handlers := testHandlers(testBundle())
	table := MustNewTable(KindAction, sortedNames(handlers), handlers)

	names := table.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"create_item", "list_items"}, table.Names())
}

func TestTableUnknownIdentifier(t *testing.T) {
	handlers := testHandlers(testBundle())
	tables := map[string]*Table[*call, string]{
		"empty":     MustNewTable[*call, string](KindTrigger, nil, nil),
		"non-empty": MustNewTable(KindAction, sortedNames(handlers), handlers),
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := table.Run(ctx, "missing", &call{})
			assert.Equal(t, types.ErrNotFound, types.CodeOf(err))

			_, err = table.InputSchema(ctx, "missing", &call{})
			assert.Equal(t, types.ErrNotFound, types.CodeOf(err))

			_, err = table.OutputSchema(ctx, "missing", &call{})
			assert.Equal(t, types.ErrNotFound, types.CodeOf(err))
		})
	}

	assert.NotNil(t, tables["empty"].Names())
	assert.Empty(t, tables["empty"].Names())
}

func TestTableMissingSchema(t *testing.T) {
	handlers := testHandlers(testBundle())
	table := MustNewTable(KindAction, sortedNames(handlers), handlers)

	// list_items has no input schema file.
	_, err := table.InputSchema(context.Background(), "list_items", &call{})
	assert.Equal(t, types.ErrNotFound, types.CodeOf(err))

	bare := MustNewTable(KindTrigger, []string{"poll"}, []Handler[*call, string]{{Name: "poll", Run: echo}})
	_, err = bare.OutputSchema(context.Background(), "poll", &call{})
	assert.Equal(t, types.ErrNotFound, types.CodeOf(err))
}

func TestNewTableRejectsInconsistentDeclarations(t *testing.T) {
	handlers := testHandlers(testBundle())

	tests := []struct {
		name        string
		identifiers []string
		handlers    []Handler[*call, string]
	}{
		{"unsorted", []string{"list_items", "create_item"}, handlers},
		{"duplicate identifier", []string{"create_item", "create_item"}, handlers[1:]},
		{"identifier without handler", []string{"create_item", "delete_item"}, handlers[1:]},
		{"handler without identifier", []string{"create_item"}, handlers},
		{"duplicate handler", []string{"list_items"}, []Handler[*call, string]{handlers[0], handlers[0]}},
		{"nil entry", []string{"x"}, []Handler[*call, string]{{Name: "x"}}},
		{"empty name", nil, []Handler[*call, string]{{Run: echo}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(KindAction, tt.identifiers, tt.handlers)
			assert.Error(t, err)
		})
	}

	assert.Panics(t, func() {
		MustNewTable(KindAction, []string{"b", "a"}, handlers)
	})
}

func TestOverrideSchema(t *testing.T) {
	b := testBundle()
	var seen json.RawMessage
	fn := OverrideSchema[*call](b, "create_item_input", func(_ context.Context, c *call, base json.RawMessage) (json.RawMessage, error) {
		seen = base
		if c.Payload == "fail" {
			return nil, errors.New("lookup failed")
		}
		return json.RawMessage(`{"type":"object","title":"` + c.Payload + `"}`), nil
	})

	doc, err := fn(context.Background(), &call{Payload: "dynamic"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","title":"dynamic"}`, string(doc))
	assert.JSONEq(t, `{"type":"object"}`, string(seen))

	_, err = fn(context.Background(), &call{Payload: "fail"})
	assert.EqualError(t, err, "lookup failed")

	absent := OverrideSchema[*call](b, "nothing_input", func(_ context.Context, _ *call, base json.RawMessage) (json.RawMessage, error) {
		assert.Nil(t, base)
		return json.RawMessage(`{}`), nil
	})
	_, err = absent(context.Background(), &call{})
	require.NoError(t, err)
}
