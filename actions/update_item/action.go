// Package update_item applies a partial update to an item.
package update_item

import (
	"context"

	"connector/internal/client"
	"connector/internal/types"
)

// Execute sends every non-empty input field except item_id as a PATCH body.
func Execute(ctx context.Context, c *types.ActionContext) (any, error) {
	var input map[string]any
	if err := c.DecodeInput(&input); err != nil {
		return nil, err
	}
	id, err := client.PathParam(input, "item_id")
	if err != nil {
		return nil, err
	}

	body := client.RequestBody(input, "item_id")
	if len(body) == 0 {
		return nil, types.Errorf(types.ErrOther, "nothing to update")
	}

	api, err := client.New(ctx, c.Connection)
	if err != nil {
		return nil, err
	}
	return api.Patch(ctx, "/items/"+id, body)
}
