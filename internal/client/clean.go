package client

import "slices"

// CleanEmptyValues recursively drops nulls, empty strings, empty arrays and
// empty objects. A value that ends up empty is reported as nil.
func CleanEmptyValues(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return val
	case []any:
		cleaned := make([]any, 0, len(val))
		for _, item := range val {
			if c := CleanEmptyValues(item); c != nil {
				cleaned = append(cleaned, c)
			}
		}
		if len(cleaned) == 0 {
			return nil
		}
		return cleaned
	case map[string]any:
		cleaned := make(map[string]any, len(val))
		for k, item := range val {
			if c := CleanEmptyValues(item); c != nil {
				cleaned[k] = c
			}
		}
		if len(cleaned) == 0 {
			return nil
		}
		return cleaned
	default:
		return val
	}
}

// RequestBody builds a request body from decoded action input: path
// parameters are left out and the remaining fields are cleaned of empty
// values. Input that is not an object yields an empty body.
func RequestBody(input any, pathParams ...string) map[string]any {
	body := make(map[string]any)
	obj, _ := input.(map[string]any)
	for k, v := range obj {
		if slices.Contains(pathParams, k) {
			continue
		}
		if c := CleanEmptyValues(v); c != nil {
			body[k] = c
		}
	}
	return body
}
