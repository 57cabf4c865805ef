package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/config"
	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/docker"
	"github.com/phalanx-sec/phalanx/internal/application"
	"github.com/phalanx-sec/phalanx/internal/domain"
	"github.com/phalanx-sec/phalanx/internal/logging"
)

// registerTools registers all Phalanx MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. phalanx_scan
	s.AddTool(
		mcplib.NewTool("phalanx_scan",
			mcplib.WithDescription("Run all PHP security scanners against the project and return the combined report as JSON"),
		),
		handleScan(projectPath),
	)

	// 2. phalanx_normalize
	s.AddTool(
		mcplib.NewTool("phalanx_normalize",
			mcplib.WithDescription("Normalize one tool's raw JSON output into the unified finding schema without running any containers"),
			mcplib.WithString("tool",
				mcplib.Required(),
				mcplib.Description("Tool that produced the output: psalm, parse or progpilot"),
			),
			mcplib.WithString("raw",
				mcplib.Required(),
				mcplib.Description("The tool's raw JSON output"),
			),
		),
		handleNormalize(),
	)

	// 3. phalanx_severity_map
	s.AddTool(
		mcplib.NewTool("phalanx_severity_map",
			mcplib.WithDescription("Returns the fixed mapping from native tool severities to the unified low/medium/high/critical scale"),
		),
		handleSeverityMap(),
	)
}

// newScanService wires the docker runner and config loader for projectPath.
func newScanService(ctx context.Context, projectPath string) (*application.ScanService, error) {
	loader := config.New()
	cfg, err := loader.Load(projectPath)
	if err != nil {
		return nil, err
	}
	runner := docker.New(cfg, logging.Nop())
	if !runner.Available(ctx) {
		return nil, fmt.Errorf("container runtime %q not found", runner.RuntimeBin())
	}
	return application.NewScanService(runner, loader, logging.Nop()), nil
}

func handleScan(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc, err := newScanService(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("scan setup failed: %v", err)), nil
		}
		rep, err := svc.ScanProject(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(rep)
	}
}

func handleNormalize() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		toolName, err := request.RequireString("tool")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		raw, err := request.RequireString("raw")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc := application.NewScanService(nil, config.New(), logging.Nop())
		findings, err := svc.NormalizeRaw(domain.Tool(toolName), []byte(raw))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(findings)
	}
}

func handleSeverityMap() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw := []string{"info", "notice", "warning", "error", "critical"}
		mapping := make(map[string]domain.Severity, len(raw))
		for _, r := range raw {
			mapping[r] = domain.NormalizeSeverity(r)
		}
		return jsonResult(map[string]any{
			"mapping": mapping,
			"default": domain.SeverityMedium,
		})
	}
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error tool result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
