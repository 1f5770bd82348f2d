// Package get_item fetches a single item by id.
package get_item

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
	id, err := client.PathParam(input, "item_id")
	if err != nil {
		return nil, err
	}

	api, err := client.New(ctx, c.Connection)
	if err != nil {
		return nil, err
	}
	return api.Get(ctx, "/items/"+id)
}
