// Package new_items polls for items created since the previous poll.
package new_items

import (
	"context"
	"encoding/json"
	"fmt"

	"connector/internal/client"
	"connector/internal/logging"
	"connector/internal/types"
)

// cursor is the trigger store, carried between polls by the host.
type cursor struct {
	CreatedAfter string `json:"created_after,omitempty"`
}

func FetchEvents(ctx context.Context, c *types.TriggerContext) (*types.TriggerResponse, error) {
	var input struct {
		Limit float64 `json:"limit"`
	}
	if err := c.DecodeInput(&input); err != nil {
		return nil, err
	}

	var cur cursor
	if c.Store != "" {
		if err := json.Unmarshal([]byte(c.Store), &cur); err != nil {
			return nil, types.Errorf(types.ErrOther, "invalid trigger store: %v", err)
		}
	}

	api, err := client.New(ctx, c.Connection)
	if err != nil {
		return nil, err
	}

	params := map[string]any{"created_after": cur.CreatedAfter}
	if input.Limit > 0 {
		params["limit"] = input.Limit
	}
	body, err := api.Get(ctx, "/items"+client.Query(params))
	if err != nil {
		return nil, err
	}

	items, err := itemsOf(body)
	if err != nil {
		return nil, err
	}

	resp := &types.TriggerResponse{Events: make([]types.TriggerEvent, 0, len(items))}
	next := cur
	for _, item := range items {
		id, ok := item["id"]
		if !ok || id == nil {
			return nil, types.Errorf(types.ErrMalformedResponse, "item without id")
		}
		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		resp.Events = append(resp.Events, types.TriggerEvent{
			ID:             fmt.Sprint(id),
			SerializedData: string(data),
		})

		// RFC 3339 timestamps in one zone sort lexically.
		if created, _ := item["created_at"].(string); created > next.CreatedAfter {
			next.CreatedAfter = created
		}
	}

	store, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	resp.Store = string(store)

	logging.FromContext(ctx).Debug("Polled new items", "events", len(resp.Events), "cursor", next.CreatedAfter)
	return resp, nil
}

// itemsOf accepts either a bare array or an {"items": [...]} envelope.
func itemsOf(body any) ([]map[string]any, error) {
	if env, ok := body.(map[string]any); ok {
		body = env["items"]
	}
	list, ok := body.([]any)
	if !ok {
		return nil, types.Errorf(types.ErrMalformedResponse, "expected a list of items")
	}

	items := make([]map[string]any, 0, len(list))
	for _, v := range list {
		item, ok := v.(map[string]any)
		if !ok {
			return nil, types.Errorf(types.ErrMalformedResponse, "expected an item object, got %T", v)
		}
		items = append(items, item)
	}
	return items, nil
}
