package types

import (
	"encoding/json"
	"fmt"
)

// Connection carries the host-side connection a call is made with.
type Connection struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SerializedData string `json:"serialized_data"`
}

// Data decodes the connection's serialized data into a generic JSON object.
func (c Connection) Data() (map[string]any, error) {
	if c.SerializedData == "" {
		return nil, &AppError{Code: ErrMisconfigured, Message: "connection data is empty"}
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(c.SerializedData), &data); err != nil {
		return nil, &AppError{Code: ErrMisconfigured, Message: fmt.Sprintf("connection data is not a JSON object: %v", err)}
	}
	return data, nil
}

// ActionContext is the per-call payload of an action invocation.
type ActionContext struct {
	ActionID        string     `json:"action_id"`
	Connection      Connection `json:"connection"`
	SerializedInput string     `json:"serialized_input"`
}

// DecodeInput unmarshals the serialized action input into v.
func (c *ActionContext) DecodeInput(v any) error {
	return decodeInput(c.SerializedInput, v)
}

// ActionResponse is the result of a successful action execution.
type ActionResponse struct {
	SerializedOutput string `json:"serialized_output"`
}

// TriggerContext is the per-call payload of a trigger poll.
type TriggerContext struct {
	TriggerID       string     `json:"trigger_id"`
	Connection      Connection `json:"connection"`
	Store           string     `json:"store"`
	SerializedInput string     `json:"serialized_input"`
}

// DecodeInput unmarshals the serialized trigger input into v.
func (c *TriggerContext) DecodeInput(v any) error {
	return decodeInput(c.SerializedInput, v)
}

// TriggerEvent is a single event produced by a trigger poll.
type TriggerEvent struct {
	ID             string `json:"id"`
	SerializedData string `json:"serialized_data"`
}

// TriggerResponse carries the events of one poll and the cursor for the next one.
type TriggerResponse struct {
	Store  string         `json:"store"`
	Events []TriggerEvent `json:"events"`
}

func decodeInput(raw string, v any) error {
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &AppError{Code: ErrOther, Message: fmt.Sprintf("invalid input: %v", err)}
	}
	return nil
}
