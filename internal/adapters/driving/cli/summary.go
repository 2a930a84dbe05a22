package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kwscan/internal/core/ports/driving"
)

// Colour palette for terminal output.
var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colourPrimary)
	labelStyle   = lipgloss.NewStyle().Foreground(colourMuted).Width(18)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(colourSuccess)
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(colourWarning)
)

// renderSummary prints the outcome of a scan.
func renderSummary(w io.Writer, result *driving.ScanResult, logPath string) {
	report := result.Report

	var b strings.Builder
	b.WriteString(titleStyle.Render("Scan complete"))
	b.WriteString("\n\n")

	row := func(label string, value string) {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Files processed", valueStyle.Render(fmt.Sprint(len(report.Processed))))
	row("Matched", successStyle.Render(fmt.Sprint(len(report.Matched))))
	row("Unmatched", valueStyle.Render(fmt.Sprint(len(report.Unmatched))))
	if n := len(report.Failures); n > 0 {
		row("Without text", warningStyle.Render(fmt.Sprint(n)))
	}
	row("Keywords", valueStyle.Render(fmt.Sprint(len(report.Keywords))))
	if !report.StartedAt.IsZero() && !report.FinishedAt.IsZero() {
		row("Duration", valueStyle.Render(report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond).String()))
	}

	b.WriteString("\n")
	row("Results table", result.Artifacts.TablePath)
	row("Summary", result.Artifacts.SummaryPath)
	row("Log", logPath)

	fmt.Fprint(w, b.String())
}
