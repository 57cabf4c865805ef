package domain

import "time"

// Version is the pipeline version stamped into every report summary.
const Version = "0.1.0"

// Aggregate concatenates per-tool finding groups, in the order given, into a
// single Report with summary counts. Callers pass groups in fixed tool order
// (psalm, parse, progpilot); within a group the insertion order of the raw
// tool output is preserved.
//
// Invariant: TotalFindings == sum(ByTool) == sum(BySeverity). BySeverity
// always carries all four levels, ByTool only tools that contributed at
// least one finding.
func Aggregate(groups ...[]Finding) *Report {
	var all []Finding
	for _, g := range groups {
		all = append(all, g...)
	}
	if all == nil {
		all = []Finding{}
	}

	byTool := make(map[Tool]int)
	bySeverity := make(map[Severity]int, len(Severities()))
	for _, sev := range Severities() {
		bySeverity[sev] = 0
	}
	for _, f := range all {
		byTool[f.Tool]++
		bySeverity[f.Severity]++
	}

	return &Report{
		Summary: Summary{
			TotalFindings: len(all),
			ByTool:        byTool,
			BySeverity:    bySeverity,
			ScanTimestamp: time.Now().UTC().Format(time.RFC3339),
			Version:       Version,
		},
		Findings: all,
	}
}
