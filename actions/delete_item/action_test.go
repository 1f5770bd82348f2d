package delete_item

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connector/internal/types"
)

func actionContext(baseURL, input string) *types.ActionContext {
	return &types.ActionContext{
		ActionID:        "delete_item",
		Connection:      types.Connection{SerializedData: `{"base_url":"` + baseURL + `","headers":{},"max_retries":0}`},
		SerializedInput: input,
	}
}

func TestExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/items/42":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	got, err := Execute(context.Background(), actionContext(srv.URL, `{"item_id":"42"}`))
	require.NoError(t, err)
	assert.Equal(t, result{ItemID: "42", Deleted: true}, got)

	_, err = Execute(context.Background(), actionContext(srv.URL, `{"item_id":"43"}`))
	assert.Equal(t, types.ErrNotFound, types.CodeOf(err))

	_, err = Execute(context.Background(), actionContext(srv.URL, `{}`))
	assert.Equal(t, types.ErrOther, types.CodeOf(err))
}
