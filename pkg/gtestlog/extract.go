package gtestlog

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

// suiteTimeRe matches googletest's suite footer, e.g.
//
//	[----------] 1 test from FooTest (12 ms total)
//
// Suite names stop at the first non-letter.
var suiteTimeRe = regexp.MustCompile(`\] [0-9]+ test from ([a-zA-Z]+).*\(([0-9]+) ms total\)`)

// Extract searches line for a suite footer. ok is false when the line does
// not contain one, which is the common case.
func Extract(line string) (res SuiteResult, ok bool) {
	m := suiteTimeRe.FindStringSubmatch(line)
	if m == nil {
		return SuiteResult{}, false
	}
	millis, saturated := parseMillis(m[2])
	return SuiteResult{Suite: m[1], Millis: millis, Saturated: saturated}, true
}

// parseMillis parses a run of decimal digits, clamping on overflow.
func parseMillis(digits string) (int64, bool) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return math.MaxInt64, true
		}
		// The pattern only captures digits, so only ErrRange is reachable.
		return 0, false
	}
	return n, false
}

// SaturatingAdd returns a+b for non-negative operands, clamped to math.MaxInt64.
func SaturatingAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
