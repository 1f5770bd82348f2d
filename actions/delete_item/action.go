// Package delete_item deletes an item.
package delete_item

import (
	"context"
	"fmt"

	"connector/internal/client"
	"connector/internal/types"
)

type result struct {
	ItemID  string `json:"item_id"`
	Deleted bool   `json:"deleted"`
}

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
	body, err := api.Delete(ctx, "/items/"+id)
	if err != nil {
		return nil, err
	}
	// 204 No Content.
	if body == nil {
		return result{ItemID: fmt.Sprint(input["item_id"]), Deleted: true}, nil
	}
	return body, nil
}
