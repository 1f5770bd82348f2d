package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connector/internal/types"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		outputFormat = "table"
		actionExecuteFlags = invocationFlags{}
		triggerFetchFlags = invocationFlags{}
	})

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "items-connector 0.1.0\n", out)
}

func TestActionsList(t *testing.T) {
	out, err := run(t, "", "actions", "list", "-o", "json")
	require.NoError(t, err)

	var ids []string
	require.NoError(t, json.Unmarshal([]byte(out), &ids))
	assert.Equal(t, []string{"create_item", "delete_item", "get_item", "list_items", "update_item"}, ids)

	out, err = run(t, "", "triggers", "list")
	require.NoError(t, err)
	assert.Equal(t, "TRIGGER\nnew_items\n", out)
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "", "describe")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:     items-connector")
	assert.Contains(t, out, "Triggers: new_items")
}

func TestInputSchema(t *testing.T) {
	out, err := run(t, "", "actions", "input-schema", "get_item")
	require.NoError(t, err)
	assert.Contains(t, out, `"item_id"`)

	_, err = run(t, "", "actions", "input-schema", "nope")
	assert.Equal(t, types.ErrNotFound, types.CodeOf(err))
}

func TestExecuteAction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items/42" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"id":"42","name":"widget"}`))
	}))
	defer srv.Close()

	conn := `{"base_url":"` + srv.URL + `","headers":{}}`
	out, err := run(t, "", "actions", "execute", "get_item", "-o", "json",
		"--connection", conn, "--input", `{"item_id":"42"}`)
	require.NoError(t, err)

	var resp types.ActionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.JSONEq(t, `{"id":"42","name":"widget"}`, resp.SerializedOutput)
}

func TestFetchEventsFromContextFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","created_at":"2026-01-01T00:00:00Z"}]`))
	}))
	defer srv.Close()

	ctxFile := filepath.Join(t.TempDir(), "context.json")
	content := `{"connection":{"id":"c1","serialized_data":"{\"base_url\":\"` + srv.URL + `\",\"headers\":{}}"},"store":""}`
	require.NoError(t, os.WriteFile(ctxFile, []byte(content), 0644))

	out, err := run(t, "", "triggers", "fetch-events", "new_items", "--context", ctxFile, "-o", "json")
	require.NoError(t, err)

	var resp types.TriggerResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "1", resp.Events[0].ID)
	assert.JSONEq(t, `{"created_after":"2026-01-01T00:00:00Z"}`, resp.Store)
}

func TestServe(t *testing.T) {
	out, err := run(t, `{"jsonrpc":"2.0","id":1,"method":"triggers.ids"}`+"\n", "serve")
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":["new_items"]}`, out)
}
