package mcp

import (
	"context"
	"net/http"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/toolgate/toolgate/internal/common"
	"github.com/toolgate/toolgate/internal/config"
	"github.com/toolgate/toolgate/internal/interfaces"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	server     *mcpserver.MCPServer
	streamable *mcpserver.StreamableHTTPServer
	registry   interfaces.ToolStorage
	logger     *common.Logger

	mu         sync.Mutex
	registered []string
}

// NewHandler creates an MCP handler whose tool list mirrors the
// registry. The initial load failure is non-fatal; Refresh picks the
// tools up later.
func NewHandler(registry interfaces.ToolStorage, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"toolgate",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	h := &Handler{
		server:   mcpSrv,
		registry: registry,
		logger:   logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.Refresh(ctx); err != nil {
		logger.Warn().Str("error", err.Error()).Msg("failed to load tool catalog, starting with 0 tools")
	}

	h.streamable = mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().Int("tools", len(h.registered)).Msg("MCP handler initialized")
	return h
}

// Refresh rebuilds the MCP tool list from the registry. Called after
// every import and delete so discovery stays in sync.
func (h *Handler) Refresh(ctx context.Context) error {
	tools, err := h.registry.List(ctx)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.registered) > 0 {
		h.server.DeleteTools(h.registered...)
	}

	names := make([]string, 0, len(tools))
	for _, t := range tools {
		h.server.AddTool(BuildMCPTool(t), discoveryToolHandler(t))
		names = append(names, t.Name)
	}
	h.registered = names

	h.logger.Debug().Int("tools", len(names)).Msg("MCP catalog refreshed")
	return nil
}

// ToolCount returns the number of tools currently in the catalog.
func (h *Handler) ToolCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.registered)
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
