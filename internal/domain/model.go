package domain

// Tool identifies one of the orchestrated PHP scanners.
type Tool string

const (
	ToolPsalm     Tool = "psalm"
	ToolParse     Tool = "parse"
	ToolProgpilot Tool = "progpilot"
)

// Tools returns all known tools in report order. Findings are always
// aggregated psalm first, then parse, then progpilot.
func Tools() []Tool {
	return []Tool{ToolPsalm, ToolParse, ToolProgpilot}
}

// KnownTool reports whether name is one of the orchestrated scanners.
func KnownTool(name string) bool {
	switch Tool(name) {
	case ToolPsalm, ToolParse, ToolProgpilot:
		return true
	}
	return false
}

// Severity is the unified four-level risk scale.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities returns the four levels from least to most severe.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Finding is one normalized security issue from a single tool.
type Finding struct {
	Tool     Tool              `json:"tool"`
	Title    string            `json:"title"`
	File     string            `json:"file"`
	Line     int               `json:"line"`
	Severity Severity          `json:"severity"`
	Code     string            `json:"code"`
	Metadata map[string]string `json:"metadata"`
}

// Summary holds aggregate counts over a batch of findings.
type Summary struct {
	TotalFindings int              `json:"total_findings"`
	ByTool        map[Tool]int     `json:"by_tool"`
	BySeverity    map[Severity]int `json:"by_severity"`
	ScanTimestamp string           `json:"scan_timestamp"`
	Version       string           `json:"version"`
	CommitHash    string           `json:"commit_hash,omitempty"`
}

// Report is the final aggregated structure. It is built once per scan and
// not mutated afterwards.
type Report struct {
	Summary  Summary   `json:"summary"`
	Findings []Finding `json:"findings"`
}

// ScanEntry is one line of a project's scan history.
type ScanEntry struct {
	Timestamp     string `json:"timestamp"`
	CommitHash    string `json:"commit_hash,omitempty"`
	TotalFindings int    `json:"total_findings"`
	Critical      int    `json:"critical"`
	High          int    `json:"high"`
}
