// Package mcp exposes capture, search, and agenda over the Model Context
// Protocol so agents can use the second brain as a tool.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ewchang/synapse/internal/brain"
	"github.com/ewchang/synapse/internal/gateway"
)

const serverVersion = "0.1.0"

// Server wraps the MCP stdio server with its backing state and gateway.
type Server struct {
	mcpServer *server.MCPServer
	brain     *brain.Brain
	gateway   gateway.Gateway
}

// NewServer builds the MCP server and registers all tools. gw may be nil; in
// that case the gateway-backed tools report a configuration error instead of
// failing at startup, so read-only tools keep working without an API key.
func NewServer(b *brain.Brain, gw gateway.Gateway) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"Synapse MCP Server",
			serverVersion,
			server.WithLogging(),
			server.WithRecovery(),
		),
		brain:   b,
		gateway: gw,
	}
	s.registerTools()
	return s
}

// Start runs the stdio event loop.
func (s *Server) Start() error {
	return server.ServeStdio(s.mcpServer)
}
