package client

import (
	"fmt"
	"net/url"
	"strconv"

	"connector/internal/types"
)

// PathParam returns input[key] escaped for use as a URL path segment.
// Numbers are accepted as well as strings.
func PathParam(input map[string]any, key string) (string, error) {
	var s string
	switch v := input[key].(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if s == "" {
		return "", types.Errorf(types.ErrOther, "%s is required", key)
	}
	return url.PathEscape(s), nil
}

// Query encodes the non-empty scalar values of params as a query string,
// including the leading "?". It returns "" when nothing is left.
func Query(params map[string]any) string {
	q := url.Values{}
	for k, v := range params {
		switch val := CleanEmptyValues(v).(type) {
		case nil, []any, map[string]any:
		case string:
			q.Set(k, val)
		default:
			q.Set(k, fmt.Sprint(val))
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
