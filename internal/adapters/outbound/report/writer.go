// Package report persists and reloads the aggregated JSON report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phalanx-sec/phalanx/internal/domain"
)

// Write serializes the report as indented JSON. An empty path gets a
// timestamped default name in the current directory; a path without a .json
// extension gets one appended. Returns the path actually written.
func Write(path string, rep *domain.Report) (string, error) {
	if path == "" {
		path = fmt.Sprintf("phalanx-report-%s.json", time.Now().Format("20060102_150405"))
	}
	if !strings.HasSuffix(path, ".json") {
		path += ".json"
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Dir(abs)); err != nil {
		return "", fmt.Errorf("output directory: %w", err)
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return abs, nil
}

// Load reads a previously written report back.
func Load(path string) (*domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rep domain.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &rep, nil
}
