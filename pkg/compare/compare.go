// Package compare folds per-run suite timings into cross-run statistics.
package compare

import (
	"cmp"
	"math"
	"slices"

	"github.com/dkoosis/suitecmp/pkg/gtestlog"
)

// SuiteStats summarizes one suite across every run folded so far.
type SuiteStats struct {
	Suite string
	Min   int64
	Max   int64
	// Percent is trunc(Max*100/Min - 100): how much slower the slowest run
	// was than the fastest. Only meaningful when Defined is true.
	Percent int64
	// Defined is false when Min is zero and Max is not.
	Defined bool
}

// Row is one line of the comparison table.
type Row struct {
	SuiteStats
	Durations []int64 // one per run, in Report.Runs order; 0 when absent
}

// Report is the result of folding a set of runs.
type Report struct {
	Runs    []gtestlog.Run
	PerRun  []*gtestlog.RunResult          // in Runs order, collisions included
	Results map[string]*gtestlog.RunResult // keyed by run display name
	Totals  []int64                        // per run, in Runs order
	Suites  map[string]*SuiteStats

	// LongestSuite is the longest suite name seen; its length sets the
	// width of the first column.
	LongestSuite string

	policy gtestlog.DuplicatePolicy
}

// New returns an empty report whose run-name lookups follow policy.
func New(policy gtestlog.DuplicatePolicy) *Report {
	return &Report{
		Results: make(map[string]*gtestlog.RunResult),
		Suites:  make(map[string]*SuiteStats),
		policy:  policy,
	}
}

// Fold builds a report from runs in order.
func Fold(runs []*gtestlog.RunResult, policy gtestlog.DuplicatePolicy) *Report {
	rep := New(policy)
	for _, r := range runs {
		rep.Add(r)
	}
	return rep
}

// Add folds one run into the report. Statistics always include the run's
// timings; whether its results replace an earlier run with the same display
// name is decided by the report's duplicate policy. Add reports whether the
// display name collided with an earlier run.
func (rep *Report) Add(run *gtestlog.RunResult) (collided bool) {
	rep.Runs = append(rep.Runs, run.Run)
	rep.PerRun = append(rep.PerRun, run)
	rep.Totals = append(rep.Totals, run.Total)

	if _, exists := rep.Results[run.Run.Name]; exists {
		collided = true
		if rep.policy == gtestlog.KeepLast {
			rep.Results[run.Run.Name] = run
		}
	} else {
		rep.Results[run.Run.Name] = run
	}

	for _, suite := range run.Order {
		if len(suite) > len(rep.LongestSuite) {
			rep.LongestSuite = suite
		}
		rep.observe(suite, run.Durations[suite])
	}
	return collided
}

func (rep *Report) observe(suite string, d int64) {
	st, ok := rep.Suites[suite]
	if !ok {
		st = &SuiteStats{Suite: suite, Min: math.MaxInt64}
		rep.Suites[suite] = st
	}
	st.Min = min(st.Min, d)
	st.Max = max(st.Max, d)
	st.Percent, st.Defined = Percent(st.Min, st.Max)
}

// Percent returns trunc(hi*100/lo - 100). The conversion truncates toward
// zero. When lo is zero the spread is undefined unless hi is zero too.
func Percent(lo, hi int64) (int64, bool) {
	if lo == 0 {
		if hi == 0 {
			return 0, true
		}
		return 0, false
	}
	pct := float64(hi)*100.0/float64(lo) - 100.0
	if pct >= math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(pct), true
}

// Duration returns the time recorded for suite in the run displayed as
// runName, or 0 when either is unknown.
func (rep *Report) Duration(runName, suite string) int64 {
	r, ok := rep.Results[runName]
	if !ok {
		return 0
	}
	d, _ := r.Duration(suite)
	return d
}

// Rows returns one row per suite, slowest maximum first. Suites with equal
// maxima are ordered by name.
func (rep *Report) Rows() []Row {
	rows := make([]Row, 0, len(rep.Suites))
	for _, st := range rep.Suites {
		row := Row{SuiteStats: *st, Durations: make([]int64, len(rep.Runs))}
		for i, run := range rep.Runs {
			row.Durations[i] = rep.Duration(run.Name, st.Suite)
		}
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(b.Max, a.Max); c != 0 {
			return c
		}
		return cmp.Compare(a.Suite, b.Suite)
	})
	return rows
}

// Width returns the width of the suite-name column.
func (rep *Report) Width() int { return len(rep.LongestSuite) }
