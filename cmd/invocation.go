package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"connector/internal/types"
)

// invocationFlags build the per-call context of the handler commands.
type invocationFlags struct {
	contextFile  string
	connection   string
	connectionID string
	input        string
	store        string
}

func (f *invocationFlags) register(cmd *cobra.Command, withStore bool) {
	cmd.Flags().StringVar(&f.contextFile, "context", "", "JSON file holding the full call context, or - for stdin")
	cmd.Flags().StringVar(&f.connection, "connection", "", "connection data as JSON, e.g. {\"base_url\":...,\"headers\":{}}")
	cmd.Flags().StringVar(&f.connectionID, "connection-id", "", "connection id passed to the handler")
	cmd.Flags().StringVar(&f.input, "input", "", "handler input as JSON")
	if withStore {
		cmd.Flags().StringVar(&f.store, "store", "", "trigger store from the previous poll")
	}
}

// decode fills v from --context, then applies the individual flags on top.
func (f *invocationFlags) decode(stdin io.Reader, v any) error {
	if f.contextFile == "" {
		return nil
	}

	var data []byte
	var err error
	if f.contextFile == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(f.contextFile)
	}
	if err != nil {
		return fmt.Errorf("reading context: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing context %s: %w", f.contextFile, err)
	}
	return nil
}

func (f *invocationFlags) applyConnection(conn *types.Connection) error {
	if f.connection != "" {
		if !json.Valid([]byte(f.connection)) {
			return fmt.Errorf("--connection is not valid JSON")
		}
		conn.SerializedData = f.connection
	}
	if f.connectionID != "" {
		conn.ID = f.connectionID
	}
	return nil
}

func (f *invocationFlags) actionContext(cmd *cobra.Command, id string) (*types.ActionContext, error) {
	c := &types.ActionContext{}
	if err := f.decode(cmd.InOrStdin(), c); err != nil {
		return nil, err
	}
	c.ActionID = id
	if err := f.applyConnection(&c.Connection); err != nil {
		return nil, err
	}
	if f.input != "" {
		c.SerializedInput = f.input
	}
	return c, nil
}

func (f *invocationFlags) triggerContext(cmd *cobra.Command, id string) (*types.TriggerContext, error) {
	c := &types.TriggerContext{}
	if err := f.decode(cmd.InOrStdin(), c); err != nil {
		return nil, err
	}
	c.TriggerID = id
	if err := f.applyConnection(&c.Connection); err != nil {
		return nil, err
	}
	if f.input != "" {
		c.SerializedInput = f.input
	}
	if f.store != "" {
		c.Store = f.store
	}
	return c, nil
}
