// Package client is the outbound HTTP client shared by the handler units.
//
// A client is built per call from the connection data; nothing is cached
// between invocations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"connector/internal/logging"
	"connector/internal/types"
)

// Defaults applied when the connection data does not override them.
const (
	DefaultMaxRetries = 3
	DefaultTimeout    = 30 * time.Second
)

// APIClient talks JSON to the API described by a connection.
type APIClient struct {
	baseURL string
	headers map[string]string
	http    *retryablehttp.Client
}

// New builds a client from the connection data. base_url and headers are
// required; max_retries is optional.
func New(ctx context.Context, conn types.Connection) (*APIClient, error) {
	data, err := conn.Data()
	if err != nil {
		return nil, err
	}

	baseURL, _ := data["base_url"].(string)
	if baseURL == "" {
		return nil, types.Errorf(types.ErrMisconfigured, "base_url not found in connection data")
	}

	rawHeaders, ok := data["headers"].(map[string]any)
	if !ok {
		return nil, types.Errorf(types.ErrMisconfigured, "headers not found in connection data")
	}
	headers := make(map[string]string, len(rawHeaders))
	for k, v := range rawHeaders {
		if s, ok := v.(string); ok {
			headers[k] = s
		}
	}

	maxRetries := DefaultMaxRetries
	if n, ok := data["max_retries"].(float64); ok && n >= 0 {
		maxRetries = int(n)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = maxRetries
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = DefaultTimeout
	rc.Logger = logging.FromContext(ctx).With("component", "client")
	// Hand the final response back instead of a generic "giving up" error so
	// the status can be classified.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &APIClient{baseURL: baseURL, headers: headers, http: rc}, nil
}

// Get requires a 200 response.
func (c *APIClient) Get(ctx context.Context, endpoint string) (any, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *APIClient) Post(ctx context.Context, endpoint string, body any) (any, error) {
	return c.do(ctx, http.MethodPost, endpoint, body)
}

func (c *APIClient) Put(ctx context.Context, endpoint string, body any) (any, error) {
	return c.do(ctx, http.MethodPut, endpoint, body)
}

func (c *APIClient) Patch(ctx context.Context, endpoint string, body any) (any, error) {
	return c.do(ctx, http.MethodPatch, endpoint, body)
}

func (c *APIClient) Delete(ctx context.Context, endpoint string) (any, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

func (c *APIClient) do(ctx context.Context, method, endpoint string, body any) (any, error) {
	url := c.baseURL + endpoint

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, types.Errorf(types.ErrOther, "failed to serialize JSON body: %v", err)
		}
		payload = data
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, types.Errorf(types.ErrOther, "creating request: %v", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request to %s: %w", url, ctx.Err())
		}
		return nil, types.Errorf(types.ErrUnavailable, "request to %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.Errorf(types.ErrUnavailable, "reading response from %s: %v", url, err)
	}

	if !accepted(method, resp.StatusCode) {
		return nil, types.Errorf(StatusCode(resp.StatusCode),
			"API request failed with status: %d - URL: %s - Response: %s", resp.StatusCode, url, respBody)
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}
	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, types.Errorf(types.ErrMalformedResponse, "invalid API response format: %v", err)
	}
	return result, nil
}

func accepted(method string, status int) bool {
	if method == http.MethodGet {
		return status == http.StatusOK
	}
	return status >= 200 && status < 300
}

// StatusCode classifies an unexpected HTTP status.
func StatusCode(status int) types.ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return types.ErrUnauthenticated
	case status == http.StatusForbidden:
		return types.ErrForbidden
	case status == http.StatusNotFound:
		return types.ErrNotFound
	case status == http.StatusTooManyRequests:
		return types.ErrRateLimit
	case status >= 500:
		return types.ErrUnavailable
	default:
		return types.ErrOther
	}
}
