package render

import (
	"encoding/json"

	"github.com/dkoosis/suitecmp/internal/version"
	"github.com/dkoosis/suitecmp/pkg/compare"
)

// JSON renders the report as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonOutput struct {
	Version string      `json:"version"`
	Runs    []jsonRun   `json:"runs"`
	Suites  []jsonSuite `json:"suites"`
}

type jsonRun struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Suites  int    `json:"suites"`
	Matches int    `json:"matches"`
	TotalMS int64  `json:"total_ms"`
}

type jsonSuite struct {
	Suite     string  `json:"suite"`
	MinMS     int64   `json:"min_ms"`
	MaxMS     int64   `json:"max_ms"`
	Percent   *int64  `json:"percent"` // null when the fastest run took 0 ms
	Durations []int64 `json:"durations_ms"`
}

// Render formats rep as indented JSON.
func (j *JSON) Render(rep *compare.Report) string {
	out := jsonOutput{
		Version: version.Version,
		Runs:    make([]jsonRun, 0, len(rep.Runs)),
		Suites:  []jsonSuite{},
	}

	for i, run := range rep.Runs {
		res := rep.PerRun[i]
		out.Runs = append(out.Runs, jsonRun{
			Name:    run.Name,
			Path:    run.Path,
			Suites:  res.Len(),
			Matches: res.Matches,
			TotalMS: rep.Totals[i],
		})
	}

	for _, row := range rep.Rows() {
		js := jsonSuite{
			Suite:     row.Suite,
			MinMS:     row.Min,
			MaxMS:     row.Max,
			Durations: row.Durations,
		}
		if row.Defined {
			pct := row.Percent
			js.Percent = &pct
		}
		out.Suites = append(out.Suites, js)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
