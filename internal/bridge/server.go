package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"connector/internal/logging"
	"connector/internal/types"
)

// DefaultConcurrency bounds in-flight calls when none is configured.
const DefaultConcurrency = 8

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	// codeHandlerError carries an AppError in the error data.
	codeHandlerError = -32000
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    *types.AppError `json:"data,omitempty"`
}

var nullID = json.RawMessage("null")

// Server exposes a Connector to a host process as line-delimited JSON-RPC
// 2.0. Each request line is handled on its own goroutine; responses are
// written one per line in completion order.
type Server struct {
	connector   *Connector
	concurrency int
	logger      *slog.Logger
}

func NewServer(c *Connector, concurrency int, logger *slog.Logger) *Server {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{connector: c, concurrency: concurrency, logger: logger}
}

// Serve reads requests from r until EOF and writes responses to w. It waits
// for in-flight calls before returning.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	var mu sync.Mutex
	encoder := json.NewEncoder(w)
	write := func(resp *rpcResponse) error {
		mu.Lock()
		defer mu.Unlock()
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
		return nil
	}

	s.logger.Info("Serving connector", "name", s.connector.Name, "version", s.connector.Version, "concurrency", s.concurrency)

	reader := bufio.NewReader(r)
	for ctx.Err() == nil {
		line, err := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			var req rpcRequest
			if jsonErr := json.Unmarshal(line, &req); jsonErr != nil {
				if werr := write(errorResponse(nullID, codeParseError, "parse error: "+jsonErr.Error(), nil)); werr != nil {
					return errors.Join(werr, g.Wait())
				}
			} else {
				g.Go(func() error {
					resp := s.handle(ctx, req)
					if resp == nil {
						return nil
					}
					return write(resp)
				})
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Join(fmt.Errorf("reading request: %w", err), g.Wait())
		}
	}

	return g.Wait()
}

// handle answers one request. Notifications (no id) get no response.
func (s *Server) handle(ctx context.Context, req rpcRequest) *rpcResponse {
	notification := len(req.ID) == 0
	id := req.ID
	if notification {
		id = nullID
	}

	logger := s.logger.With("method", req.Method, "rpc_id", string(id))
	ctx = logging.WithLogger(ctx, logger)

	if req.JSONRPC != "2.0" {
		if notification {
			return nil
		}
		return errorResponse(id, codeInvalidRequest, "jsonrpc must be \"2.0\"", nil)
	}

	result, err := s.call(ctx, req)
	if notification {
		return nil
	}
	if err != nil {
		var rpcErr *rpcError
		if errors.As(err, &rpcErr) {
			return &rpcResponse{JSONRPC: "2.0", ID: id, Error: rpcErr}
		}
		appErr := types.Normalize(err)
		logger.Debug("Call failed", "code", string(appErr.Code), "error", appErr.Message)
		return errorResponse(id, codeHandlerError, appErr.Message, appErr)
	}
	return &rpcResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func (s *Server) call(ctx context.Context, req rpcRequest) (any, error) {
	c := s.connector
	switch req.Method {
	case "describe":
		return c.Describe(), nil

	case "actions.ids":
		return c.Actions.IDs(), nil
	case "actions.input_schema":
		return withParams(req, func(p *types.ActionContext) (any, error) { return c.Actions.InputSchema(ctx, p) })
	case "actions.output_schema":
		return withParams(req, func(p *types.ActionContext) (any, error) { return c.Actions.OutputSchema(ctx, p) })
	case "actions.execute":
		return withParams(req, func(p *types.ActionContext) (any, error) { return c.Actions.Execute(ctx, p) })

	case "triggers.ids":
		return c.Triggers.IDs(), nil
	case "triggers.input_schema":
		return withParams(req, func(p *types.TriggerContext) (any, error) { return c.Triggers.InputSchema(ctx, p) })
	case "triggers.output_schema":
		return withParams(req, func(p *types.TriggerContext) (any, error) { return c.Triggers.OutputSchema(ctx, p) })
	case "triggers.fetch_events":
		return withParams(req, func(p *types.TriggerContext) (any, error) { return c.Triggers.FetchEvents(ctx, p) })

	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}
	}
}

func withParams[P any](req rpcRequest, fn func(*P) (any, error)) (any, error) {
	p := new(P)
	if len(req.Params) == 0 {
		return nil, &rpcError{Code: codeInvalidParams, Message: "invalid params: missing"}
	}
	if err := json.Unmarshal(req.Params, p); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "invalid params: " + err.Error()}
	}
	return fn(p)
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("json-rpc error %d: %s", e.Code, e.Message)
}

func errorResponse(id json.RawMessage, code int, message string, data *types.AppError) *rpcResponse {
	return &rpcResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message, Data: data},
	}
}
