// ABOUTME: MCP server setup for the swim roster.
// ABOUTME: Wraps the MCP server around a loaded roster and serializes tool calls.
package mcp

import (
	"context"
	"sync"

	"github.com/harperreed/swim/internal/roster"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with roster access.
type Server struct {
	mcpServer *mcp.Server
	roster    *roster.Roster
	version   string

	// mu guards roster; the roster itself takes no locks.
	mu sync.Mutex
}

// NewServer creates a new MCP server over an already loaded roster.
func NewServer(r *roster.Roster, version string) (*Server, error) {
	if version == "" {
		version = "dev"
	}
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "swim",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		roster:    r,
		version:   version,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
