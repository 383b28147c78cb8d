package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/suitecmp/pkg/compare"
)

// Table renders the plain tab-separated comparison table:
//
//	"Test Suite"	"run 1"	"run 2"	"Speedup Percent / Variation"
//	  SuiteAlpha           120           150            25
//
// The suite column is right-justified to the longest suite name and every
// numeric column to 12 characters. Missing timings print as 0.
type Table struct{}

// NewTable creates a Table renderer.
func NewTable() *Table {
	return &Table{}
}

// Render formats rep as a plain table.
func (t *Table) Render(rep *compare.Report) string {
	var sb strings.Builder
	width := rep.Width()

	fmt.Fprintf(&sb, "%*s", width, `"Test Suite"`)
	for _, run := range rep.Runs {
		sb.WriteString("\t\"" + run.Name + "\"")
	}
	sb.WriteString("\t\"Speedup Percent / Variation\"\n")

	for _, row := range rep.Rows() {
		fmt.Fprintf(&sb, "%*s", width, row.Suite)
		for _, d := range row.Durations {
			fmt.Fprintf(&sb, "  %12d", d)
		}
		fmt.Fprintf(&sb, "  %12s\n", percentText(row.SuiteStats))
	}
	return sb.String()
}
