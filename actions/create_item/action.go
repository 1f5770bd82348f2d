// Package create_item creates an item from the action input.
package create_item

import (
	"context"

	"connector/internal/client"
	"connector/internal/types"
)

func Execute(ctx context.Context, c *types.ActionContext) (any, error) {
	var input map[string]any
	if err := c.DecodeInput(&input); err != nil {
		return nil, err
	}

	api, err := client.New(ctx, c.Connection)
	if err != nil {
		return nil, err
	}
	return api.Post(ctx, "/items", client.RequestBody(input))
}
