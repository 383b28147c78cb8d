// Package gtestlog extracts per-suite timings from googletest console logs.
package gtestlog

import (
	"fmt"
	"strings"
)

// Run names one log file and the title it is reported under.
type Run struct {
	Name string // display name; defaults to Path
	Path string
}

// NewRun returns a Run for path, titled title when non-empty.
func NewRun(path, title string) Run {
	if title == "" {
		title = path
	}
	return Run{Name: title, Path: path}
}

// SuiteResult is a single suite timing extracted from one log line.
type SuiteResult struct {
	Suite  string
	Millis int64
	// Saturated is set when the duration digits overflowed int64 and
	// Millis was clamped to math.MaxInt64.
	Saturated bool
}

// DuplicatePolicy decides which value is kept when a key repeats.
type DuplicatePolicy int

const (
	// KeepLast lets a later occurrence overwrite an earlier one.
	KeepLast DuplicatePolicy = iota
	// KeepFirst ignores every occurrence after the first.
	KeepFirst
)

func (p DuplicatePolicy) String() string {
	switch p {
	case KeepFirst:
		return "first"
	default:
		return "last"
	}
}

// ParseDuplicatePolicy accepts "first" or "last" (case-insensitive).
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "last", "":
		return KeepLast, nil
	case "first":
		return KeepFirst, nil
	default:
		return KeepLast, fmt.Errorf("unknown duplicate policy %q (expected first or last)", s)
	}
}

// RunResult holds every suite timing found in one run's log.
type RunResult struct {
	Run       Run
	Durations map[string]int64
	Order     []string // suites in first-seen order
	Matches   int      // matching lines, duplicates included
	Total     int64    // sum of the kept durations, saturating
}

func newRunResult(run Run) *RunResult {
	return &RunResult{Run: run, Durations: make(map[string]int64)}
}

// Duration returns the recorded duration for suite and whether one exists.
func (r *RunResult) Duration(suite string) (int64, bool) {
	d, ok := r.Durations[suite]
	return d, ok
}

// Len returns the number of distinct suites in the run.
func (r *RunResult) Len() int { return len(r.Order) }

// record applies policy to a newly extracted result.
func (r *RunResult) record(res SuiteResult, policy DuplicatePolicy) (replaced bool) {
	r.Matches++

	prev, exists := r.Durations[res.Suite]
	if !exists {
		r.Durations[res.Suite] = res.Millis
		r.Order = append(r.Order, res.Suite)
		r.Total = SaturatingAdd(r.Total, res.Millis)
		return false
	}
	if policy == KeepFirst || prev == res.Millis {
		return false
	}
	r.Durations[res.Suite] = res.Millis
	// Saturated sums cannot be undone by subtracting prev.
	r.Total = 0
	for _, suite := range r.Order {
		r.Total = SaturatingAdd(r.Total, r.Durations[suite])
	}
	return true
}
