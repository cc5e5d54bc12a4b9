// Package report renders cleaning results for humans.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cleanpath/internal/model"
)

// Styles used by the report. Plain() swaps them for unstyled ones.
type Styles struct {
	Header  lipgloss.Style
	Kept    lipgloss.Style
	Dropped lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles colors kept entries green and dropped ones red.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#64b5f6")),
		Kept:    lipgloss.NewStyle().Foreground(lipgloss.Color("#66bb6a")),
		Dropped: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef5350")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

// PlainStyles renders without any escape codes.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Header: plain, Kept: plain, Dropped: plain, Muted: plain}
}

// GenerateReport describes every result. With verbose set, kept entries are
// listed too, not only dropped ones.
func GenerateReport(results []model.AnalysisResult, verbose bool, st Styles) string {
	var b strings.Builder

	b.WriteString(st.Header.Render(fmt.Sprintf("cleanpath %s report", model.Version)))
	b.WriteString("\n")

	for _, res := range results {
		b.WriteString("\n")
		writeResult(&b, res, verbose, st)
	}
	return b.String()
}

func writeResult(b *strings.Builder, res model.AnalysisResult, verbose bool, st Styles) {
	b.WriteString(st.Header.Render(res.Name))
	b.WriteString("\n")

	if res.WasUnset {
		b.WriteString(st.Muted.Render("  (unset)"))
		b.WriteString("\n")
		return
	}

	status := "unchanged"
	if res.Changed() {
		status = fmt.Sprintf("%d of %d entries removed", res.Dropped(), len(res.PathEntries))
	}
	fmt.Fprintf(b, "  %s\n", st.Muted.Render(status))

	for _, e := range res.PathEntries {
		if e.Kept && !verbose {
			continue
		}
		label := e.Value
		if label == "" {
			label = "(empty)"
		}
		line := fmt.Sprintf("  %2d. %s %s", e.Index+1, e.Reason.Icon(), label)
		if e.Kept {
			b.WriteString(st.Kept.Render(line))
		} else {
			b.WriteString(st.Dropped.Render(line))
			b.WriteString(st.Muted.Render("  " + e.Describe()))
		}
		b.WriteString("\n")
	}

	if verbose {
		fmt.Fprintf(b, "  old: %s\n", res.Original)
		fmt.Fprintf(b, "  new: %s\n", res.Cleaned)
	}
}
