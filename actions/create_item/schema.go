package create_item

import (
	"context"
	"encoding/json"

	"connector/internal/types"
)

// InputSchema extends the embedded schema with the custom fields declared in
// the connection data, each accepted as a string property.
func InputSchema(ctx context.Context, c *types.ActionContext, base json.RawMessage) (json.RawMessage, error) {
	if base == nil {
		return nil, types.Errorf(types.ErrNotFound, "create_item has no base input schema")
	}

	var schema map[string]any
	if err := json.Unmarshal(base, &schema); err != nil {
		return nil, err
	}

	fields := customFields(c.Connection)
	if len(fields) == 0 {
		return base, nil
	}

	props, _ := schema["properties"].(map[string]any)
	if props == nil {
		props = make(map[string]any)
		schema["properties"] = props
	}
	for _, f := range fields {
		if _, exists := props[f]; !exists {
			props[f] = map[string]any{"type": "string"}
		}
	}
	return json.Marshal(schema)
}

func customFields(conn types.Connection) []string {
	data, err := conn.Data()
	if err != nil {
		return nil
	}
	raw, _ := data["custom_fields"].([]any)
	var fields []string
	for _, f := range raw {
		if s, ok := f.(string); ok && s != "" {
			fields = append(fields, s)
		}
	}
	return fields
}
