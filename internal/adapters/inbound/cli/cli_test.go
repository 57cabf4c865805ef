package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phalanx-sec/phalanx/internal/adapters/inbound/cli"
	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/report"
	"github.com/phalanx-sec/phalanx/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "phalanx")
	assert.Contains(t, out, "0.1.0")
}

func TestScanCmd_InvalidTarget(t *testing.T) {
	_, err := execute(t, "scan", "/nonexistent/php/project")
	assert.Error(t, err)
}

func TestScanCmd_UnknownTool(t *testing.T) {
	_, err := execute(t, "scan", t.TempDir(), "--tools", "semgrep")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "semgrep")
}

func TestScanCmd_HistoryOnFreshProject(t *testing.T) {
	out, err := execute(t, "scan", t.TempDir(), "--history")
	require.NoError(t, err)
	assert.Contains(t, out, "No scan history found.")
}

func TestRenderCmd(t *testing.T) {
	rep := domain.Aggregate([]domain.Finding{
		{
			Tool:     domain.ToolPsalm,
			Title:    "SQL injection",
			File:     "a.php",
			Line:     10,
			Severity: domain.SeverityHigh,
			Metadata: map[string]string{"type": "TaintedSql"},
		},
	})
	path := filepath.Join(t.TempDir(), "report.json")
	_, err := report.Write(path, rep)
	require.NoError(t, err)

	out, err := execute(t, "render", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 findings")
	assert.Contains(t, out, "SQL injection")
}

func TestRenderCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "render", "/nonexistent/report.json")
	assert.Error(t, err)
}
