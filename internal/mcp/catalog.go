// Package mcp exposes the tool registry as an MCP catalog for
// discovery. Tool execution is handled by the dispatcher service, not
// this portal, so call handlers only point callers there.
package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/toolgate/toolgate/internal/models"
)

// BuildMCPTool converts a registered tool into an mcp.Tool with the
// registry's input schema.
func BuildMCPTool(t models.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}

	names := make([]string, 0, len(t.InputSchema.Properties))
	for name := range t.InputSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		opts = append(opts, buildParamOption(name, t.InputSchema.Properties[name], t.InputSchema.RequiredContains(name)))
	}

	return mcp.NewTool(t.Name, opts...)
}

// buildParamOption maps one schema property to the appropriate mcp-go
// tool option.
func buildParamOption(name string, p models.Property, required bool) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if required {
		opts = append(opts, mcp.Required())
	}
	if len(p.Enum) > 0 {
		values := make([]string, 0, len(p.Enum))
		for _, v := range p.Enum {
			values = append(values, fmt.Sprint(v))
		}
		opts = append(opts, mcp.Enum(values...))
	}

	switch p.Type {
	case "number", "integer":
		return mcp.WithNumber(name, opts...)
	case "boolean":
		return mcp.WithBoolean(name, opts...)
	case "array":
		opts = append([]mcp.PropertyOption{mcp.WithStringItems()}, opts...)
		return mcp.WithArray(name, opts...)
	default:
		// string, object, or unknown — all passed as string
		return mcp.WithString(name, opts...)
	}
}

// discoveryToolHandler answers every call with a pointer to the
// dispatcher. This portal registers and catalogs tools; it does not
// invoke them.
func discoveryToolHandler(t models.Tool) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		msg := fmt.Sprintf("tool %q (%s %s) is served by the dispatcher, not this portal", t.Name, t.RequestType, t.URL)
		return mcp.NewToolResultError(msg), nil
	}
}
