package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/tui"
	"github.com/phalanx-sec/phalanx/internal/domain"
)

func reportWith(findings ...domain.Finding) *domain.Report {
	return domain.Aggregate(findings)
}

func TestRenderReport_Empty(t *testing.T) {
	out := tui.RenderReport(reportWith())

	assert.Contains(t, out, "phalanx")
	assert.Contains(t, out, "0 findings")
	assert.Contains(t, out, "No issues found.")
}

func TestRenderReport_ListsFindings(t *testing.T) {
	out := tui.RenderReport(reportWith(
		domain.Finding{
			Tool:     domain.ToolPsalm,
			Title:    "SQL injection sink",
			File:     "src/db.php",
			Line:     42,
			Severity: domain.SeverityCritical,
			Metadata: map[string]string{"type": "TaintedSql"},
		},
		domain.Finding{
			Tool:     domain.ToolParse,
			Title:    "eval usage",
			File:     "src/run.php",
			Line:     7,
			Severity: domain.SeverityMedium,
			Metadata: map[string]string{"rule": "no-eval"},
		},
	))

	assert.Contains(t, out, "2 findings")
	assert.Contains(t, out, "SQL injection sink")
	assert.Contains(t, out, "src/db.php:42")
	assert.Contains(t, out, "Tainted Sql", "psalm type tags are humanized")
	assert.Contains(t, out, "no-eval")
	assert.Contains(t, out, "By Severity")
	assert.Contains(t, out, "By Tool")
}

func TestRenderReport_CapsListedFindings(t *testing.T) {
	var findings []domain.Finding
	for i := 0; i < 30; i++ {
		findings = append(findings, domain.Finding{
			Tool:     domain.ToolProgpilot,
			Title:    "tainted sink",
			Severity: domain.SeverityLow,
			Metadata: map[string]string{},
		})
	}

	out := tui.RenderReport(reportWith(findings...))
	assert.Contains(t, out, "more in the JSON report")
}

func TestRenderHistory_Empty(t *testing.T) {
	out := tui.RenderHistory(nil)
	assert.Contains(t, out, "No scan history found.")
}

func TestRenderHistory_ShowsTrend(t *testing.T) {
	out := tui.RenderHistory([]domain.ScanEntry{
		{Timestamp: "2026-08-29T10:00:00Z", CommitHash: "0123456789abcdef", TotalFindings: 5, Critical: 1},
		{Timestamp: "2026-08-30T10:00:00Z", TotalFindings: 2},
	})

	assert.Contains(t, out, "Scan History")
	assert.Contains(t, out, "2026-08-29")
	assert.Contains(t, out, "0123456", "commit hash is shortened")
	assert.Contains(t, out, "5 findings")
	assert.Contains(t, out, "↓3")
}
