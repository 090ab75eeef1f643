package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes field inspection and the live
// mapping document to agents.
type Server struct {
	store *mapping.Store
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server over store.
func NewServer(store *mapping.Store) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"jsonmapper",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listFieldsTool, s.handleListFields)
	s.mcp.AddTool(inferTypeTool, s.handleInferType)
	s.mcp.AddTool(getMappingTool, s.handleGetMapping)
	s.mcp.AddTool(transformRecordTool, s.handleTransformRecord)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
