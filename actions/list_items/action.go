// Package list_items lists items, optionally paginated.
package list_items

import (
	"context"

	"connector/internal/client"
	"connector/internal/types"
)

// Execute accepts optional "limit" and "cursor" inputs, passed through as
// query parameters.
func Execute(ctx context.Context, c *types.ActionContext) (any, error) {
	var input map[string]any
	if err := c.DecodeInput(&input); err != nil {
		return nil, err
	}

	api, err := client.New(ctx, c.Connection)
	if err != nil {
		return nil, err
	}
	return api.Get(ctx, "/items"+client.Query(map[string]any{
		"limit":  input["limit"],
		"cursor": input["cursor"],
	}))
}
