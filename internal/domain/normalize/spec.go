package normalize

import "github.com/phalanx-sec/phalanx/internal/domain"

// Field length bounds shared by all tools.
const (
	maxTitleLen = 500
	maxFileLen  = 1000
	maxCodeLen  = 1000
)

// MetaField maps one tool-specific auxiliary field into Finding.Metadata.
type MetaField struct {
	Key    string // key in Finding.Metadata
	Source string // key in the raw issue object
	MaxLen int
}

// ToolSpec describes how one tool's raw JSON maps onto the unified Finding
// shape. Adding a scanner is a new ToolSpec, not new code.
type ToolSpec struct {
	Tool domain.Tool
	// ListKey is the top-level key holding the issue list.
	ListKey string
	// TitleKeys are candidate title fields, first non-empty wins.
	TitleKeys   []string
	FileKey     string
	LineKey     string
	SeverityKey string
	// SeverityDefault is used when the severity field is absent. An empty
	// default still resolves to medium through NormalizeSeverity.
	SeverityDefault string
	CodeKey         string
	Metadata        []MetaField
}

var (
	// PsalmSpec matches `psalm --output-format=json`.
	PsalmSpec = ToolSpec{
		Tool:        domain.ToolPsalm,
		ListKey:     "issues",
		TitleKeys:   []string{"message"},
		FileKey:     "file_name",
		LineKey:     "line_from",
		SeverityKey: "severity",
		CodeKey:     "snippet",
		Metadata: []MetaField{
			{Key: "type", Source: "type", MaxLen: 100},
			{Key: "link", Source: "link", MaxLen: 500},
		},
	}

	// ParseSpec matches `parse scan --format json` (psecio/parse).
	ParseSpec = ToolSpec{
		Tool:            domain.ToolParse,
		ListKey:         "findings",
		TitleKeys:       []string{"title", "message"},
		FileKey:         "file",
		LineKey:         "line",
		SeverityKey:     "severity",
		SeverityDefault: "warning",
		CodeKey:         "code",
		Metadata: []MetaField{
			{Key: "rule", Source: "rule", MaxLen: 100},
		},
	}

	// ProgpilotSpec matches ProgPilot's --output=json.
	ProgpilotSpec = ToolSpec{
		Tool:            domain.ToolProgpilot,
		ListKey:         "results",
		TitleKeys:       []string{"description", "message"},
		FileKey:         "file",
		LineKey:         "line",
		SeverityKey:     "severity",
		SeverityDefault: "medium",
		CodeKey:         "code",
		Metadata: []MetaField{
			{Key: "rule", Source: "rule_name", MaxLen: 100},
		},
	}
)

// SpecFor returns the ToolSpec for a tool.
func SpecFor(tool domain.Tool) (ToolSpec, bool) {
	switch tool {
	case domain.ToolPsalm:
		return PsalmSpec, true
	case domain.ToolParse:
		return ParseSpec, true
	case domain.ToolProgpilot:
		return ProgpilotSpec, true
	}
	return ToolSpec{}, false
}
