package gtestlog_test

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/suitecmp/pkg/gtestlog"
	"github.com/dkoosis/suitecmp/pkg/linesource"
)

func parseString(t *testing.T, input string, policy gtestlog.DuplicatePolicy) *gtestlog.RunResult {
	t.Helper()
	res, err := gtestlog.ParseRun(gtestlog.NewRun("mem", ""), linesource.New(strings.NewReader(input)),
		gtestlog.ParseOptions{Duplicates: policy})
	require.NoError(t, err)
	return res
}

func TestParseFile_Fixture(t *testing.T) {
	t.Parallel()

	res, err := gtestlog.ParseFile(gtestlog.NewRun(filepath.Join("testdata", "run_a.log"), "baseline"), gtestlog.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, "baseline", res.Run.Name)
	assert.Equal(t, []string{"SuiteAlpha", "SuiteBeta"}, res.Order)
	assert.Equal(t, map[string]int64{"SuiteAlpha": 120, "SuiteBeta": 40}, res.Durations)
	assert.Equal(t, 2, res.Matches)
	assert.Equal(t, int64(160), res.Total)
}

func TestParseFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := gtestlog.ParseFile(gtestlog.NewRun(filepath.Join(t.TempDir(), "nope.log"), ""), gtestlog.ParseOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseRun_DuplicatePolicy(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"] 1 test from Repeat (10 ms total)",
		"] 1 test from Other (5 ms total)",
		"] 1 test from Repeat (30 ms total)",
	}, "\n")

	last := parseString(t, input, gtestlog.KeepLast)
	d, ok := last.Duration("Repeat")
	require.True(t, ok)
	assert.Equal(t, int64(30), d)

	first := parseString(t, input, gtestlog.KeepFirst)
	d, ok = first.Duration("Repeat")
	require.True(t, ok)
	assert.Equal(t, int64(10), d)

	for _, res := range []*gtestlog.RunResult{first, last} {
		assert.Equal(t, []string{"Repeat", "Other"}, res.Order)
		assert.Equal(t, 3, res.Matches)
	}
	assert.Equal(t, int64(35), last.Total, "total sums kept durations")
	assert.Equal(t, int64(15), first.Total, "total sums kept durations")
}

func TestParseRun_NoMatches(t *testing.T) {
	t.Parallel()

	res := parseString(t, "nothing to see\nhere\n", gtestlog.KeepLast)
	assert.Zero(t, res.Len())
	assert.Zero(t, res.Total)
	_, ok := res.Duration("anything")
	assert.False(t, ok)
}

func TestParseRun_LogsSaturation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf)

	_, err := gtestlog.ParseRun(gtestlog.NewRun("big", ""),
		linesource.New(strings.NewReader("] 1 test from Huge (99999999999999999999999 ms total)\n")),
		gtestlog.ParseOptions{Logger: logger})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "clamped")
}

func TestParseRun_SkipsOverlongLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf)

	input := strings.Repeat("x", 2*1024*1024) + "\n[----------] 1 test from FooTest (12 ms total)\n"
	res, err := gtestlog.ParseRun(gtestlog.NewRun("long", ""), linesource.New(strings.NewReader(input)),
		gtestlog.ParseOptions{Logger: logger})
	require.NoError(t, err)

	d, ok := res.Duration("FooTest")
	require.True(t, ok)
	assert.Equal(t, int64(12), d)
	assert.Contains(t, buf.String(), "line exceeds max length, skipped")
	assert.Contains(t, buf.String(), "line=1")
}

func TestParseRun_ReadError(t *testing.T) {
	t.Parallel()

	r := linesource.New(iotest.ErrReader(errors.New("device unplugged")))
	_, err := gtestlog.ParseRun(gtestlog.NewRun("broken", ""), r, gtestlog.ParseOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parsing run "broken"`)
	assert.Contains(t, err.Error(), "device unplugged")
}

func TestParseDuplicatePolicy(t *testing.T) {
	t.Parallel()

	p, err := gtestlog.ParseDuplicatePolicy("FIRST")
	require.NoError(t, err)
	assert.Equal(t, gtestlog.KeepFirst, p)

	p, err = gtestlog.ParseDuplicatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, gtestlog.KeepLast, p)
	assert.Equal(t, "last", p.String())

	_, err = gtestlog.ParseDuplicatePolicy("newest")
	assert.Error(t, err)
}

func TestNewRun_DefaultsNameToPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gtestlog.Run{Name: "a.log", Path: "a.log"}, gtestlog.NewRun("a.log", ""))
	assert.Equal(t, gtestlog.Run{Name: "fast", Path: "a.log"}, gtestlog.NewRun("a.log", "fast"))
}
