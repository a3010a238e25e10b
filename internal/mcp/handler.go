// Package mcp exposes the idea feed as MCP tools over streamable HTTP.
package mcp

import (
	"net/http"

	"github.com/allmba/ideas-portal/internal/common"
	"github.com/allmba/ideas-portal/internal/config"
	"github.com/allmba/ideas-portal/internal/feed"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates the MCP handler with the idea feed tools registered.
func NewHandler(svc *feed.Service, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"ideas-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	toolCount := RegisterTools(mcpSrv, svc)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", toolCount).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
