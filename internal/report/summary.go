// Package report renders the post-load summary block.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vvka-141/imdbload/pkg/imdbload"
)

// Color palette - keeping it minimal and accessible.
var (
	colorPrimary = lipgloss.Color("39")  // Blue
	colorSuccess = lipgloss.Color("34")  // Green
	colorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	checkStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 2)
)

// ShouldRender reports whether the summary block belongs on w.
//
// Returns false if:
//   - NO_COLOR is set (accessibility/automation indicator)
//   - CI is set (common CI/CD convention)
//   - w is not a terminal (piped output, redirects)
func ShouldRender(w *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(w.Fd()))
}

// Render lays out one line per loaded table plus a totals footer.
// Returns the empty string when there is nothing to summarize.
func Render(schemaName string, results []imdbload.CopyResult) string {
	if len(results) == 0 {
		return ""
	}

	nameWidth := 0
	for _, r := range results {
		if n := len(schemaName) + 1 + len(r.Table); n > nameWidth {
			nameWidth = n
		}
	}

	var (
		rows          []string
		totalCopied   int64
		totalDuration time.Duration
	)
	for _, r := range results {
		rows = append(rows, fmt.Sprintf("%s %-*s  %12s rows  %s",
			checkStyle.Render("✓"),
			nameWidth, schemaName+"."+r.Table,
			imdbload.FormatCount(r.TotalRows),
			mutedStyle.Render(r.Duration.Round(time.Millisecond).String()),
		))
		totalCopied += r.RowsCopied
		totalDuration += r.Duration
	}

	footer := fmt.Sprintf("%s rows copied in %s",
		imdbload.FormatCount(totalCopied), totalDuration.Round(time.Millisecond))

	body := strings.Join([]string{
		titleStyle.Render("Load summary"),
		strings.Join(rows, "\n"),
		mutedStyle.Render(footer),
	}, "\n")

	return boxStyle.Render(body)
}

// Print writes the rendered summary to w when w wants it.
func Print(w *os.File, schemaName string, results []imdbload.CopyResult) {
	if !ShouldRender(w) {
		return
	}
	fmt.Fprintln(w, Render(schemaName, results))
}
