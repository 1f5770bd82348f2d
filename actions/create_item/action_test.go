package create_item

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connector/internal/types"
)

func TestExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/items" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"7","echo":` + string(body) + `}`))
	}))
	defer srv.Close()

	got, err := Execute(context.Background(), &types.ActionContext{
		ActionID:        "create_item",
		Connection:      types.Connection{SerializedData: `{"base_url":"` + srv.URL + `","headers":{"Authorization":"Bearer x"}}`},
		SerializedInput: `{"name":"widget","description":"","tags":[]}`,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"id":   "7",
		"echo": map[string]any{"name": "widget"},
	}, got)
}

func TestExecuteMisconfigured(t *testing.T) {
	_, err := Execute(context.Background(), &types.ActionContext{
		Connection:      types.Connection{SerializedData: `{"headers":{}}`},
		SerializedInput: `{"name":"widget"}`,
	})
	assert.Equal(t, types.ErrMisconfigured, types.CodeOf(err))
}

func TestInputSchema(t *testing.T) {
	base := json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"}}}`)

	got, err := InputSchema(context.Background(), &types.ActionContext{}, base)
	require.NoError(t, err)
	assert.JSONEq(t, string(base), string(got))

	got, err = InputSchema(context.Background(), &types.ActionContext{
		Connection: types.Connection{SerializedData: `{"custom_fields":["color","name",""]}`},
	}, base)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{"name":{"type":"string"},"color":{"type":"string"}}}`, string(got))

	_, err = InputSchema(context.Background(), &types.ActionContext{}, nil)
	assert.Equal(t, types.ErrNotFound, types.CodeOf(err))
}
