// Package mcptools exposes registry reads as MCP tools so agents inside an MCP instance can
// query their own registry data over stdio.
package mcptools

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "mcpregistry"

// Tool names.
const (
	ToolGetValue     = "get_value"
	ToolGetAllValues = "get_all_values"
)

// Reader is the part of the registry client the tools need.
type Reader interface {
	GetValue(ctx context.Context, key string) (any, bool, error)
	GetAllValues(ctx context.Context) (map[string]any, error)
}

// GetValueInput is the argument object of get_value.
type GetValueInput struct {
	Key string `json:"key" jsonschema:"the registry key to read"`
}

// GetValueOutput is the structured result of get_value.
type GetValueOutput struct {
	Key   string `json:"key"`
	Found bool   `json:"found"`
	Value any    `json:"value,omitempty"`
}

// GetAllValuesInput is the (empty) argument object of get_all_values.
type GetAllValuesInput struct{}

// GetAllValuesOutput is the structured result of get_all_values.
type GetAllValuesOutput struct {
	Values map[string]any `json:"values"`
}

// NewServer builds an MCP server with the registry tools registered. Registry failures are
// returned as tool errors, so the calling agent sees the message instead of a protocol error.
func NewServer(reader Reader, version string) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolGetValue,
		Description: "Read a single value from this instance's data registry",
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, in GetValueInput) (*mcpsdk.CallToolResult, GetValueOutput, error) {
		if in.Key == "" {
			return nil, GetValueOutput{}, fmt.Errorf("key must not be empty")
		}

		value, found, err := reader.GetValue(ctx, in.Key)
		if err != nil {
			return nil, GetValueOutput{}, err
		}
		return nil, GetValueOutput{Key: in.Key, Found: found, Value: value}, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolGetAllValues,
		Description: "Read every key/value pair stored in this instance's data registry",
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, _ GetAllValuesInput) (*mcpsdk.CallToolResult, GetAllValuesOutput, error) {
		values, err := reader.GetAllValues(ctx)
		if err != nil {
			return nil, GetAllValuesOutput{}, err
		}
		return nil, GetAllValuesOutput{Values: values}, nil
	})

	return server
}

// Serve runs the server on stdin/stdout until the client disconnects or ctx is canceled.
func Serve(ctx context.Context, server *mcpsdk.Server) error {
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}
