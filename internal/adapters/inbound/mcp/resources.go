package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerResources registers all Phalanx MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// phalanx://report - fresh combined scan report for the project
	s.AddResource(
		mcplib.NewResource(
			"phalanx://report",
			"Scan Report",
			mcplib.WithResourceDescription("Combined normalized findings report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		svc, err := newScanService(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("scan setup failed: %w", err)
		}

		rep, err := svc.ScanProject(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "phalanx://report",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
