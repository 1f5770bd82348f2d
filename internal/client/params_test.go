package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connector/internal/types"
)

func TestPathParam(t *testing.T) {
	got, err := PathParam(map[string]any{"item_id": "a/b c"}, "item_id")
	require.NoError(t, err)
	assert.Equal(t, "a%2Fb%20c", got)

	got, err = PathParam(map[string]any{"item_id": float64(42)}, "item_id")
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	for _, input := range []map[string]any{
		{},
		{"item_id": ""},
		{"item_id": true},
	} {
		_, err := PathParam(input, "item_id")
		assert.Equal(t, types.ErrOther, types.CodeOf(err))
	}
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "", Query(nil))
	assert.Equal(t, "", Query(map[string]any{"cursor": "", "tags": []any{"x"}}))
	assert.Equal(t, "?cursor=abc&limit=10", Query(map[string]any{
		"limit":  float64(10),
		"cursor": "abc",
		"empty":  nil,
	}))
}
