package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connector/internal/types"
)

func connection(t *testing.T, data map[string]any) types.Connection {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return types.Connection{ID: "conn-1", Name: "test", SerializedData: string(raw)}
}

func newTestClient(t *testing.T, baseURL string) *APIClient {
	t.Helper()
	c, err := New(context.Background(), connection(t, map[string]any{
		"base_url":    baseURL,
		"headers":     map[string]any{"Authorization": "Bearer token", "X-Ignored": 42},
		"max_retries": 0,
	}))
	require.NoError(t, err)
	return c
}

func TestNewMisconfigured(t *testing.T) {
	tests := []struct {
		name string
		conn types.Connection
	}{
		{"empty data", types.Connection{}},
		{"not json", types.Connection{SerializedData: "nope"}},
		{"missing base_url", connection(t, map[string]any{"headers": map[string]any{}})},
		{"missing headers", connection(t, map[string]any{"base_url": "http://example.com"})},
		{"headers not an object", connection(t, map[string]any{"base_url": "http://example.com", "headers": "x"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.conn)
			require.Error(t, err)
			assert.Equal(t, types.ErrMisconfigured, types.CodeOf(err))
		})
	}
}

type seenRequest struct {
	Method      string
	Path        string
	Auth        string
	ContentType string
	Body        map[string]any
}

func TestRequests(t *testing.T) {
	var mu sync.Mutex
	var last seenRequest
	seen := func() seenRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := seenRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Auth:        r.Header.Get("Authorization"),
			ContentType: r.Header.Get("Content-Type"),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			json.Unmarshal(data, &req.Body)
		}
		mu.Lock()
		last = req
		mu.Unlock()

		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"42"}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Write([]byte(`{"id":"42","name":"widget"}`))
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	got, err := c.Get(ctx, "/items/42")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "42", "name": "widget"}, got)
	assert.Equal(t, seenRequest{Method: http.MethodGet, Path: "/items/42", Auth: "Bearer token"}, seen())

	got, err = c.Post(ctx, "/items", map[string]any{"name": "widget"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "42"}, got)
	assert.Equal(t, seenRequest{
		Method:      http.MethodPost,
		Path:        "/items",
		Auth:        "Bearer token",
		ContentType: "application/json",
		Body:        map[string]any{"name": "widget"},
	}, seen())

	_, err = c.Patch(ctx, "/items/42", map[string]any{"name": "gadget"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, seen().Method)

	_, err = c.Put(ctx, "/items/42", map[string]any{"name": "gadget"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, seen().Method)

	got, err = c.Delete(ctx, "/items/42")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, http.MethodDelete, seen().Method)
}

func TestGetRequires200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.Get(context.Background(), "/items")
	assert.Equal(t, types.ErrOther, types.CodeOf(err))

	_, err = c.Post(context.Background(), "/items", map[string]any{})
	assert.NoError(t, err)
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   types.ErrorCode
	}{
		{http.StatusUnauthorized, types.ErrUnauthenticated},
		{http.StatusForbidden, types.ErrForbidden},
		{http.StatusNotFound, types.ErrNotFound},
		{http.StatusTooManyRequests, types.ErrRateLimit},
		{http.StatusInternalServerError, types.ErrUnavailable},
		{http.StatusBadGateway, types.ErrUnavailable},
		{http.StatusBadRequest, types.ErrOther},
		{http.StatusConflict, types.ErrOther},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error":"nope"}`))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).Get(context.Background(), "/items")
			require.Error(t, err)
			assert.Equal(t, tt.want, types.CodeOf(err))
			assert.Contains(t, err.Error(), `{"error":"nope"}`)
		})
	}
}

func TestMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Get(context.Background(), "/items")
	assert.Equal(t, types.ErrMalformedResponse, types.CodeOf(err))
}

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(t, srv.URL).Get(ctx, "/slow")
	assert.Equal(t, types.ErrTimeout, types.CodeOf(err))
}

func TestRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), connection(t, map[string]any{
		"base_url":    srv.URL,
		"headers":     map[string]any{},
		"max_retries": 1,
	}))
	require.NoError(t, err)

	got, err := c.Get(context.Background(), "/items")
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)
	assert.Equal(t, int32(2), calls.Load())
}
