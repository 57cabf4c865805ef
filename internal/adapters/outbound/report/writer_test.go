package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/report"
	"github.com/phalanx-sec/phalanx/internal/domain"
)

func sampleReport() *domain.Report {
	return domain.Aggregate([]domain.Finding{
		{
			Tool:     domain.ToolPsalm,
			Title:    "SQL injection",
			File:     "a.php",
			Line:     10,
			Severity: domain.SeverityHigh,
			Code:     "$x",
			Metadata: map[string]string{"type": "TaintedSql", "link": ""},
		},
	})
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	written, err := report.Write(path, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, path, written)

	loaded, err := report.Load(written)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Summary.TotalFindings)
	require.Len(t, loaded.Findings, 1)
	assert.Equal(t, "SQL injection", loaded.Findings[0].Title)
	assert.Equal(t, domain.SeverityHigh, loaded.Findings[0].Severity)
}

func TestWrite_AppendsJSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	written, err := report.Write(path, sampleReport())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(written, "out.txt.json"))
}

func TestWrite_DefaultTimestampedName(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd) //nolint:errcheck

	written, err := report.Write("", sampleReport())
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(written), "phalanx-report-")
	assert.True(t, strings.HasSuffix(written, ".json"))
}

func TestWrite_MissingOutputDir(t *testing.T) {
	_, err := report.Write("/nonexistent/dir/out.json", sampleReport())
	assert.Error(t, err)
}

func TestWrite_TopLevelShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	_, err := report.Write(path, sampleReport())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"summary"`)
	assert.Contains(t, string(data), `"findings"`)
	assert.Contains(t, string(data), `"by_severity"`)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := report.Load(path)
	assert.Error(t, err)
}
