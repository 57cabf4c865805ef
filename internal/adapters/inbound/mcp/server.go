package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewPhalanxMCPServer creates a new MCP server with all Phalanx tools and
// resources registered. The projectPath is the root directory of the PHP
// project to scan.
func NewPhalanxMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"phalanx",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
