package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoosis/suitecmp/pkg/compare"
)

// DefaultWarnPercent is the spread above which a suite is highlighted.
const DefaultWarnPercent = 10

// Terminal renders the report as an aligned, styled table with a totals
// footer. Numbers carry thousands separators.
type Terminal struct {
	theme       Theme
	warnPercent int64
	printer     *message.Printer
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme) *Terminal {
	return &Terminal{
		theme:       theme,
		warnPercent: DefaultWarnPercent,
		printer:     message.NewPrinter(language.English),
	}
}

// WithWarnPercent sets the highlight threshold. Negative values are ignored.
func (t *Terminal) WithWarnPercent(pct int64) *Terminal {
	if pct >= 0 {
		t.warnPercent = pct
	}
	return t
}

const (
	suiteHeader   = "Test Suite"
	percentHeader = "Spread %"
	totalLabel    = "total"
)

// Render formats rep for terminal display.
func (t *Terminal) Render(rep *compare.Report) string {
	rows := rep.Rows()
	if len(rows) == 0 {
		return t.theme.Muted.Render(fmt.Sprintf("no suite timings found in %d run(s)", len(rep.Runs))) + "\n"
	}

	// Column widths are measured on unstyled text.
	nameWidth := max(runewidth.StringWidth(suiteHeader), runewidth.StringWidth(totalLabel), rep.Width())
	colWidths := make([]int, len(rep.Runs))
	for i, run := range rep.Runs {
		w := max(runewidth.StringWidth(run.Name), len(t.millis(rep.Totals[i])))
		for _, row := range rows {
			w = max(w, len(t.millis(row.Durations[i])))
		}
		colWidths[i] = w
	}
	pctWidth := runewidth.StringWidth(percentHeader)
	for _, row := range rows {
		pctWidth = max(pctWidth, len(t.percent(row.SuiteStats)))
	}

	var sb strings.Builder

	header := []string{padRight(suiteHeader, nameWidth)}
	for i, run := range rep.Runs {
		header = append(header, padLeft(run.Name, colWidths[i]))
	}
	header = append(header, padLeft(percentHeader, pctWidth))
	sb.WriteString(t.theme.Header.Render(strings.Join(header, "  ")))
	sb.WriteString("\n")

	for _, row := range rows {
		sb.WriteString(t.theme.Suite.Render(padRight(row.Suite, nameWidth)))
		for i, d := range row.Durations {
			sb.WriteString("  ")
			cell := padLeft(t.millis(d), colWidths[i])
			if d == 0 {
				sb.WriteString(t.theme.Muted.Render(cell))
			} else {
				sb.WriteString(t.theme.Number.Render(cell))
			}
		}
		sb.WriteString("  ")
		sb.WriteString(t.percentStyle(row.SuiteStats).Render(padLeft(t.percent(row.SuiteStats), pctWidth)))
		sb.WriteString("\n")
	}

	footer := []string{padRight(totalLabel, nameWidth)}
	for i, total := range rep.Totals {
		footer = append(footer, padLeft(t.millis(total), colWidths[i]))
	}
	sb.WriteString(t.theme.Muted.Render(strings.Join(footer, "  ")))
	sb.WriteString("\n")
	sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%d suites across %d runs (ms)", len(rows), len(rep.Runs))))
	sb.WriteString("\n")
	return sb.String()
}

func (t *Terminal) millis(d int64) string {
	return t.printer.Sprintf("%d", d)
}

func (t *Terminal) percent(st compare.SuiteStats) string {
	if !st.Defined {
		return undefinedPercent
	}
	return t.printer.Sprintf("%d%%", st.Percent)
}

func (t *Terminal) percentStyle(st compare.SuiteStats) lipgloss.Style {
	if !st.Defined || st.Percent > t.warnPercent {
		return t.theme.Slower
	}
	return t.theme.Steady
}

func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
