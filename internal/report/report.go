// Package report renders run results for the terminal and exports them
// as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

// fallbackWidth is used when stdout is not a terminal.
const fallbackWidth = 80

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("105"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	timeoutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Width returns the terminal width, or a fallback when stdout is not a
// terminal.
func Width() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallbackWidth
}

// RenderRun formats a run result as a styled terminal report.
func RenderRun(run *domain.RunResult) string {
	width := Width()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Run %s", run.ID)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("corpus %q", run.CorpusName)))
	if run.Profile != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" profile %q", run.Profile)))
	}
	b.WriteString("\n")
	if run.Fingerprint != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("input %s (%d bytes, %d chars)",
			shortChecksum(run.Fingerprint.Checksum), run.Fingerprint.ByteSize, run.Fingerprint.CharCount)))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("elapsed %s", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))))
	b.WriteString("\n\n")

	for _, name := range run.Modules {
		res := run.Results[name]
		if res == nil {
			continue
		}
		b.WriteString(renderModule(res, width))
		b.WriteString("\n")
	}

	b.WriteString(renderFooter(run))
	return b.String()
}

func renderModule(res *domain.ModuleResult, width int) string {
	var b strings.Builder

	b.WriteString(headingStyle.Render(res.ModuleName))
	b.WriteString("  ")
	b.WriteString(statusBadge(res.Status))
	b.WriteString("\n")

	switch res.Status {
	case domain.StatusOK:
		b.WriteString(renderSummary(res.Output, width))
	default:
		msg := res.ErrorMessage
		if msg == "" {
			msg = res.ErrorKind
		}
		b.WriteString("  " + failStyle.Render(truncate(msg, width-2)) + "\n")
	}
	return b.String()
}

// renderSummary prints the scalar metrics of one module output, sorted
// by key for stable display.
func renderSummary(out *domain.AnalysisOutput, width int) string {
	if out == nil || len(out.Summary) == 0 {
		return ""
	}

	keys := make([]string, 0, len(out.Summary))
	for k := range out.Summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		line := fmt.Sprintf("  %-24s %.4g", k, out.Summary[k])
		b.WriteString(truncate(line, width) + "\n")
	}
	return b.String()
}

func renderFooter(run *domain.RunResult) string {
	succeeded := run.Succeeded()
	total := len(run.Modules)
	line := fmt.Sprintf("%d/%d modules succeeded", succeeded, total)
	if succeeded == total {
		return okStyle.Render(line)
	}
	return timeoutStyle.Render(line)
}

func statusBadge(status domain.ModuleStatus) string {
	switch status {
	case domain.StatusOK:
		return okStyle.Render("ok")
	case domain.StatusTimeout:
		return timeoutStyle.Render("timeout")
	default:
		return failStyle.Render("failed")
	}
}

// WriteJSON writes the run as indented JSON.
func WriteJSON(w io.Writer, run *domain.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// WriteJSONFile writes the run as indented JSON to a file.
func WriteJSONFile(path string, run *domain.RunResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := WriteJSON(f, run); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
