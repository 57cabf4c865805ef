package domain

import "strings"

// sevMap maps each tool's native severity vocabulary onto the unified scale.
var sevMap = map[string]Severity{
	"info":     SeverityLow,
	"notice":   SeverityLow,
	"warning":  SeverityMedium,
	"error":    SeverityHigh,
	"critical": SeverityCritical,
}

// NormalizeSeverity maps a raw tool severity string to the unified scale.
// Lookup is case-insensitive. Unknown or empty input resolves to medium:
// a finding is never dropped for carrying a vocabulary we don't recognize,
// and medium neither buries it nor inflates it.
func NormalizeSeverity(raw string) Severity {
	if s, ok := sevMap[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return SeverityMedium
}
