// Package normalize converts the raw, differently-shaped JSON of each PHP
// scanner into the unified Finding schema. One generic pass is driven by a
// per-tool ToolSpec; the shape differences live in data, not code.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phalanx-sec/phalanx/internal/domain"
)

// Decode parses one tool's raw stdout into a generic JSON object. Empty
// input, invalid JSON, or a non-object top level all decode to an empty
// object: a single broken payload costs that tool its findings, never the
// pipeline.
func Decode(raw []byte) map[string]any {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return map[string]any{}
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil || payload == nil {
		return map[string]any{}
	}
	return payload
}

// Run normalizes one tool's decoded payload into findings, preserving raw
// input order. Entries that are not JSON objects are skipped; the returned
// slice of messages describes each skip so the caller can log them.
func Run(spec ToolSpec, payload map[string]any) ([]domain.Finding, []string) {
	items, ok := payload[spec.ListKey].([]any)
	if !ok {
		return nil, nil
	}

	var findings []domain.Finding
	var skipped []string
	for i, item := range items {
		issue, ok := item.(map[string]any)
		if !ok {
			skipped = append(skipped, fmt.Sprintf("%s: entry %d is %T, not an object", spec.Tool, i, item))
			continue
		}
		findings = append(findings, normalizeIssue(spec, issue))
	}
	return findings, skipped
}

func normalizeIssue(spec ToolSpec, issue map[string]any) domain.Finding {
	rawSev := spec.SeverityDefault
	if v, present := issue[spec.SeverityKey]; present {
		rawSev = stringField(v, 0)
	}

	meta := make(map[string]string, len(spec.Metadata))
	for _, m := range spec.Metadata {
		meta[m.Key] = stringField(issue[m.Source], m.MaxLen)
	}

	return domain.Finding{
		Tool:     spec.Tool,
		Title:    firstNonEmpty(issue, spec.TitleKeys, maxTitleLen),
		File:     stringField(issue[spec.FileKey], maxFileLen),
		Line:     intField(issue[spec.LineKey]),
		Severity: domain.NormalizeSeverity(rawSev),
		Code:     truncate(strings.TrimSpace(stringField(issue[spec.CodeKey], 0)), maxCodeLen),
		Metadata: meta,
	}
}
