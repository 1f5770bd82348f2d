// Package bridge is the runtime boundary between the host and the compiled
// handler tables. It resolves identifiers, serializes results and translates
// every failure into a *types.AppError.
//
// A bridge holds no mutable state; any number of calls may run at once.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"connector/internal/dispatch"
	"connector/internal/logging"
	"connector/internal/types"
)

type (
	ActionTable  = dispatch.Table[*types.ActionContext, any]
	TriggerTable = dispatch.Table[*types.TriggerContext, *types.TriggerResponse]
)

// Actions exposes the action table to the host.
type Actions struct {
	table *ActionTable
}

func NewActions(table *ActionTable) *Actions {
	return &Actions{table: table}
}

// IDs returns every action identifier, sorted.
func (a *Actions) IDs() []string {
	return a.table.Names()
}

// InputSchema returns the action's input schema as indented JSON.
func (a *Actions) InputSchema(ctx context.Context, c *types.ActionContext) (string, error) {
	if c == nil {
		return "", missingContext(dispatch.KindAction)
	}
	return schemaCall(ctx, dispatch.KindAction, c.ActionID, "input_schema", func(ctx context.Context) (json.RawMessage, error) {
		return a.table.InputSchema(ctx, c.ActionID, c)
	})
}

// OutputSchema returns the action's output schema as indented JSON.
func (a *Actions) OutputSchema(ctx context.Context, c *types.ActionContext) (string, error) {
	if c == nil {
		return "", missingContext(dispatch.KindAction)
	}
	return schemaCall(ctx, dispatch.KindAction, c.ActionID, "output_schema", func(ctx context.Context) (json.RawMessage, error) {
		return a.table.OutputSchema(ctx, c.ActionID, c)
	})
}

// Messages returned to the host when a result cannot be encoded. The
// encoder's error is only logged.
const (
	msgSerializeResponse = "failed to serialize response"
	msgSerializeSchema   = "failed to serialize schema"
)

// Execute runs the action and serializes whatever it returns.
func (a *Actions) Execute(ctx context.Context, c *types.ActionContext) (*types.ActionResponse, error) {
	if c == nil {
		return nil, missingContext(dispatch.KindAction)
	}

	var resp *types.ActionResponse
	err := invoke(ctx, dispatch.KindAction, c.ActionID, "execute", func(ctx context.Context) error {
		out, err := a.table.Run(ctx, c.ActionID, c)
		if err != nil {
			return err
		}
		data, err := json.Marshal(out)
		if err != nil {
			logging.FromContext(ctx).Error("Failed to serialize response", "error", err)
			return types.Errorf(types.ErrOther, msgSerializeResponse)
		}
		resp = &types.ActionResponse{SerializedOutput: string(data)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Triggers exposes the trigger table to the host.
type Triggers struct {
	table *TriggerTable
}

func NewTriggers(table *TriggerTable) *Triggers {
	return &Triggers{table: table}
}

// IDs returns every trigger identifier, sorted.
func (t *Triggers) IDs() []string {
	return t.table.Names()
}

// InputSchema returns the trigger's input schema as indented JSON.
func (t *Triggers) InputSchema(ctx context.Context, c *types.TriggerContext) (string, error) {
	if c == nil {
		return "", missingContext(dispatch.KindTrigger)
	}
	return schemaCall(ctx, dispatch.KindTrigger, c.TriggerID, "input_schema", func(ctx context.Context) (json.RawMessage, error) {
		return t.table.InputSchema(ctx, c.TriggerID, c)
	})
}

// OutputSchema returns the trigger's output schema as indented JSON.
func (t *Triggers) OutputSchema(ctx context.Context, c *types.TriggerContext) (string, error) {
	if c == nil {
		return "", missingContext(dispatch.KindTrigger)
	}
	return schemaCall(ctx, dispatch.KindTrigger, c.TriggerID, "output_schema", func(ctx context.Context) (json.RawMessage, error) {
		return t.table.OutputSchema(ctx, c.TriggerID, c)
	})
}

// FetchEvents polls the trigger. The handler's response is returned as is,
// except that a nil response or event list becomes an empty one.
func (t *Triggers) FetchEvents(ctx context.Context, c *types.TriggerContext) (*types.TriggerResponse, error) {
	if c == nil {
		return nil, missingContext(dispatch.KindTrigger)
	}

	var resp *types.TriggerResponse
	err := invoke(ctx, dispatch.KindTrigger, c.TriggerID, "fetch_events", func(ctx context.Context) error {
		out, err := t.table.Run(ctx, c.TriggerID, c)
		if err != nil {
			return err
		}
		if out == nil {
			out = &types.TriggerResponse{}
		}
		if out.Events == nil {
			out.Events = []types.TriggerEvent{}
		}
		resp = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Connector groups both tables with the connector identity.
type Connector struct {
	Name     string
	Version  string
	Actions  *Actions
	Triggers *Triggers
}

func New(name, version string, actions *ActionTable, triggers *TriggerTable) *Connector {
	return &Connector{
		Name:     name,
		Version:  version,
		Actions:  NewActions(actions),
		Triggers: NewTriggers(triggers),
	}
}

// Description is the static summary returned by describe.
type Description struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Actions  []string `json:"actions"`
	Triggers []string `json:"triggers"`
}

func (c *Connector) Describe() Description {
	return Description{
		Name:     c.Name,
		Version:  c.Version,
		Actions:  c.Actions.IDs(),
		Triggers: c.Triggers.IDs(),
	}
}

func schemaCall(ctx context.Context, kind dispatch.Kind, id, op string, get func(context.Context) (json.RawMessage, error)) (string, error) {
	var out string
	err := invoke(ctx, kind, id, op, func(ctx context.Context) error {
		doc, err := get(ctx)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, doc, "", "  "); err != nil {
			logging.FromContext(ctx).Error("Failed to serialize schema", "error", err)
			return types.Errorf(types.ErrOther, msgSerializeSchema)
		}
		out = strings.TrimRight(buf.String(), " \t\r\n")
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// invoke runs one handler call with its own logger and invocation id. A
// panic in the handler is reported as internal_error; every other failure
// goes through types.Normalize.
func invoke(ctx context.Context, kind dispatch.Kind, id, op string, fn func(context.Context) error) (err error) {
	logger := logging.FromContext(ctx).With(
		"invocation_id", uuid.NewString(),
		"kind", string(kind),
		"id", id,
		"op", op,
	)
	ctx = logging.WithLogger(ctx, logger)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Handler panicked", "panic", r, "stack", string(debug.Stack()))
			err = types.Errorf(types.ErrInternal, "%s %q panicked: %v", kind, id, r)
		}
		if err != nil {
			appErr := types.Normalize(err)
			logger.Debug("Handler call failed", "code", string(appErr.Code), "error", appErr.Message, "duration", time.Since(start))
			err = appErr
			return
		}
		logger.Debug("Handler call finished", "duration", time.Since(start))
	}()

	logger.Debug("Dispatching handler call")
	return fn(ctx)
}

func missingContext(kind dispatch.Kind) error {
	return types.Errorf(types.ErrOther, "missing %s context", kind)
}
