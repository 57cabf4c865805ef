package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/gitinfo"
	"github.com/phalanx-sec/phalanx/internal/domain"
)

// ── Warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	softRed = lipgloss.Color("#FB923C") // orange
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	severityStyles = map[domain.Severity]lipgloss.Style{
		domain.SeverityCritical: lipgloss.NewStyle().Foreground(danger).Bold(true),
		domain.SeverityHigh:     lipgloss.NewStyle().Foreground(softRed).Bold(true),
		domain.SeverityMedium:   lipgloss.NewStyle().Foreground(warning),
		domain.SeverityLow:      lipgloss.NewStyle().Foreground(dim),
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// maxListed bounds how many findings the terminal summary prints; the full
// list is always in the JSON report.
const maxListed = 15

// RenderReport formats the aggregated report for terminal output.
func RenderReport(rep *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("phalanx")
	subtitle := dimStyle.Render("PHP Security Analysis")
	total := fmt.Sprintf("%d findings", rep.Summary.TotalFindings)
	totalStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(totalColor(rep.Summary)).
		Render(total)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + totalStyled))
	b.WriteString("\n\n")

	// ── Severity counts ──
	b.WriteString("  " + titleStyle.Render("By Severity") + "\n")
	for i := len(domain.Severities()) - 1; i >= 0; i-- {
		sev := domain.Severities()[i]
		count := rep.Summary.BySeverity[sev]
		line := fmt.Sprintf("  %s %d", severityStyles[sev].Render(fmt.Sprintf("%-8s", sev)), count)
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	// ── Tool counts ──
	b.WriteString("  " + titleStyle.Render("By Tool") + "\n")
	for _, tool := range domain.Tools() {
		count, ok := rep.Summary.ByTool[tool]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %d\n", dimStyle.Render(fmt.Sprintf("%-9s", tool)), count))
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Findings ──
	if len(rep.Findings) == 0 {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
		return b.String()
	}

	listed := rep.Findings
	if len(listed) > maxListed {
		listed = listed[:maxListed]
	}
	for _, f := range listed {
		renderFinding(&b, f)
	}
	if rest := len(rep.Findings) - len(listed); rest > 0 {
		b.WriteString("  " + dimStyle.Render(fmt.Sprintf("… and %d more in the JSON report", rest)) + "\n")
	}

	return b.String()
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	tag := severityStyles[f.Severity].Render(fmt.Sprintf("[%s]", f.Severity))
	loc := f.File
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.File, f.Line)
	}

	b.WriteString(fmt.Sprintf("  %s %s\n", tag, f.Title))
	detail := fmt.Sprintf("%s · %s", f.Tool, loc)
	if rule := ruleLabel(f); rule != "" {
		detail += " · " + rule
	}
	b.WriteString("       " + fileStyle.Render(detail) + "\n")
}

// ruleLabel humanizes the tool-specific rule tag, e.g. psalm's
// "TaintedSql" becomes "Tainted Sql".
func ruleLabel(f domain.Finding) string {
	raw := f.Metadata["type"]
	if raw == "" {
		raw = f.Metadata["rule"]
	}
	if raw == "" {
		return ""
	}
	if strings.ContainsAny(raw, " .-_") {
		return raw
	}
	return strings.Join(camelcase.Split(raw), " ")
}

func totalColor(s domain.Summary) lipgloss.Color {
	switch {
	case s.BySeverity[domain.SeverityCritical] > 0:
		return danger
	case s.BySeverity[domain.SeverityHigh] > 0:
		return softRed
	case s.TotalFindings > 0:
		return warning
	default:
		return success
	}
}

// RenderHistory formats scan history for terminal output.
func RenderHistory(entries []domain.ScanEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No scan history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Scan History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := gitinfo.ShortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}

		day := e.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}

		countStyled := lipgloss.NewStyle().
			Foreground(historyColor(e)).
			Render(fmt.Sprintf("%d findings", e.TotalFindings))

		line := fmt.Sprintf("  %s  %s  %s",
			dimStyle.Render(day),
			faintStyle.Render(hash),
			countStyled,
		)
		if e.Critical > 0 {
			line += "  " + severityStyles[domain.SeverityCritical].Render(fmt.Sprintf("%d critical", e.Critical))
		}

		if i > 0 {
			diff := e.TotalFindings - entries[i-1].TotalFindings
			if diff > 0 {
				line += "  " + severityStyles[domain.SeverityHigh].Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	return b.String()
}

func historyColor(e domain.ScanEntry) lipgloss.Color {
	switch {
	case e.Critical > 0:
		return danger
	case e.High > 0:
		return softRed
	case e.TotalFindings > 0:
		return warning
	default:
		return success
	}
}
