// Package render formats a cross-run comparison report for output.
package render

import (
	"strconv"

	"github.com/dkoosis/suitecmp/pkg/compare"
)

// Renderer converts a comparison report to formatted output.
type Renderer interface {
	Render(rep *compare.Report) string
}

// Format names an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatTerminal Format = "terminal"
	FormatJSON     Format = "json"
	FormatAuto     Format = "auto"
)

// Formats lists every accepted format name.
var Formats = []Format{FormatTable, FormatTerminal, FormatJSON, FormatAuto}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

const undefinedPercent = "inf"

func percentText(st compare.SuiteStats) string {
	if !st.Defined {
		return undefinedPercent
	}
	return strconv.FormatInt(st.Percent, 10)
}
