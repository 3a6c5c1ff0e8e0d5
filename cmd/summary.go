package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/confkeep/confkeep/lib/merge"
)

// Styles for the post-session summary. Styling stays on whole lines and the
// content remains plain strings, so piped output is still greppable.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#25A065"))

	changeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#17A2B8"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// renderSummary formats one merge report for the terminal.
func renderSummary(r *merge.Report) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("confkeep summary"))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s merged, %s copied, %s unchanged\n",
		countStyle.Render(fmt.Sprintf("%d", r.Merged)),
		countStyle.Render(fmt.Sprintf("%d", r.Copied)),
		mutedStyle.Render(fmt.Sprintf("%d", r.Unchanged)),
	))

	if !r.StartedAt.IsZero() && !r.FinishedAt.IsZero() {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("session length: %s",
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second))))
		b.WriteString("\n")
	}
	if r.AppExitCode != 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("application exit code: %d", r.AppExitCode)))
		b.WriteString("\n")
	}

	for _, line := range r.ChangeLines() {
		b.WriteString(changeStyle.Render("  " + line))
		b.WriteString("\n")
	}
	if r.TotalChanges == 0 && r.Copied == 0 {
		b.WriteString(mutedStyle.Render("nothing to merge"))
		b.WriteString("\n")
	}

	for _, f := range r.Files {
		if f.Diff == "" {
			continue
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf("diff %s", f.RelPath)))
		b.WriteString("\n")
		b.WriteString(f.Diff)
		if !strings.HasSuffix(f.Diff, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String()
}
