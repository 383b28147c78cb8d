package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- End-to-end tests ---
// These exercise the full pipeline: args → parse logs → fold → render → stdout

const (
	baselineLog  = "testdata/baseline.log"
	candidateLog = "testdata/candidate.log"
)

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_CompareTwoRuns(t *testing.T) {
	code, stdout, stderr := runCLI(baselineLog, "--as", "before", candidateLog, "--as", "after")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr: %s", code, stderr)
	}

	want := `"Test Suite"` + "\t\"before\"\t\"after\"\t\"Speedup Percent / Variation\"\n" +
		"   NetTest           400           400             0\n" +
		"ParserTest           250           200            25\n" +
		" CacheTest           100           150            50\n" +
		"LegacyTest            30             0             0\n"
	if stdout != want {
		t.Errorf("unexpected report:\ngot:\n%s\nwant:\n%s", stdout, want)
	}
	if stderr != "" {
		t.Errorf("expected empty stderr, got %q", stderr)
	}
}

func TestRun_DisplayNameDefaultsToPath(t *testing.T) {
	code, stdout, _ := runCLI(baselineLog, candidateLog, "--as", "after")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	header := strings.SplitN(stdout, "\n", 2)[0]
	want := `"Test Suite"` + "\t\"" + baselineLog + "\"\t\"after\"\t\"Speedup Percent / Variation\""
	if header != want {
		t.Errorf("header = %q, want %q", header, want)
	}
}

func TestRun_Deterministic(t *testing.T) {
	args := []string{baselineLog, candidateLog, baselineLog, "--as", "again"}
	_, first, _ := runCLI(args...)
	for i := 0; i < 5; i++ {
		_, again, _ := runCLI(args...)
		if again != first {
			t.Fatalf("output differs between invocations:\n%s\n---\n%s", first, again)
		}
	}
}

func TestRun_NoArguments(t *testing.T) {
	code, stdout, stderr := runCLI()
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if stdout != "" {
		t.Errorf("expected no report on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "at least one file") {
		t.Errorf("missing error message; stderr: %s", stderr)
	}
	if !strings.Contains(stderr, "usage: suitecmp") {
		t.Errorf("missing usage synopsis; stderr: %s", stderr)
	}
}

func TestRun_AsWithoutTitle(t *testing.T) {
	code, stdout, stderr := runCLI(baselineLog, "--as")
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if stdout != "" {
		t.Errorf("expected no report on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "expected optional name after reading --as") {
		t.Errorf("missing descriptive error; stderr: %s", stderr)
	}
	if !strings.Contains(stderr, "usage: suitecmp") {
		t.Errorf("missing usage synopsis; stderr: %s", stderr)
	}
}

func TestRun_MissingFileIsFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.log")
	code, stdout, stderr := runCLI(baselineLog, missing)
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if stdout != "" {
		t.Errorf("expected no partial report, got %q", stdout)
	}
	if !strings.Contains(stderr, missing) {
		t.Errorf("error should name the file; stderr: %s", stderr)
	}
	if strings.Contains(stderr, "usage:") {
		t.Errorf("file errors are not usage errors; stderr: %s", stderr)
	}
}

func TestRun_OverlongLineIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	content := strings.Repeat("x", 2*1024*1024) + "\n[----------] 1 test from FooTest (12 ms total)\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCLI(path, "--as", "big")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr: %s", code, stderr)
	}
	want := `"Test Suite"` + "\t\"big\"\t\"Speedup Percent / Variation\"\n" +
		"FooTest            12             0\n"
	if stdout != want {
		t.Errorf("unexpected report:\ngot:\n%s\nwant:\n%s", stdout, want)
	}
	if !strings.Contains(stderr, "line exceeds max length, skipped") {
		t.Errorf("expected skipped-line warning; stderr: %s", stderr)
	}
}

func TestRun_JSONFormat(t *testing.T) {
	code, stdout, stderr := runCLI("--format", "json", baselineLog, "--as", "before", candidateLog, "--as", "after")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr: %s", code, stderr)
	}

	var doc struct {
		Runs []struct {
			Name    string `json:"name"`
			TotalMS int64  `json:"total_ms"`
		} `json:"runs"`
		Suites []struct {
			Suite   string `json:"suite"`
			Percent *int64 `json:"percent"`
		} `json:"suites"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(doc.Runs) != 2 || doc.Runs[0].TotalMS != 780 || doc.Runs[1].TotalMS != 750 {
		t.Errorf("unexpected runs: %+v", doc.Runs)
	}
	if len(doc.Suites) != 4 || doc.Suites[0].Suite != "NetTest" {
		t.Errorf("unexpected suites: %+v", doc.Suites)
	}
	if doc.Suites[2].Percent == nil || *doc.Suites[2].Percent != 50 {
		t.Errorf("expected CacheTest spread of 50, got %+v", doc.Suites[2])
	}
}

func TestRun_TerminalFormatFromConfig(t *testing.T) {
	code, stdout, stderr := runCLI("--config", "testdata/terminal.yaml", baselineLog, "--as", "before", candidateLog, "--as", "after")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Test Suite  before  after  Spread %") {
		t.Errorf("missing terminal header; got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "total          780    750") {
		t.Errorf("missing totals footer; got:\n%s", stdout)
	}
	if strings.Contains(stdout, "\033[") {
		t.Error("mono theme output contains ANSI escape codes")
	}
}

func TestRun_FlagOverridesConfig(t *testing.T) {
	code, stdout, _ := runCLI("--config", "testdata/terminal.yaml", "--format", "table", baselineLog)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.HasPrefix(stdout, `"Test Suite"`) {
		t.Errorf("expected table output; got:\n%s", stdout)
	}
}

func TestRun_InvalidFormat(t *testing.T) {
	code, stdout, stderr := runCLI("--format", "xml", baselineLog)
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
	if !strings.Contains(stderr, `unknown format "xml"`) {
		t.Errorf("missing format error; stderr: %s", stderr)
	}
}

func TestRun_DuplicateRunNamesWarn(t *testing.T) {
	code, stdout, stderr := runCLI("--duplicates", "first", baselineLog, "--as", "same", candidateLog, "--as", "same")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stderr, "run name used more than once") {
		t.Errorf("expected collision warning; stderr: %s", stderr)
	}
	// With "first", both columns read the baseline's timings.
	if !strings.Contains(stdout, "ParserTest           250           250            25\n") {
		t.Errorf("expected first run's timings in both columns; got:\n%s", stdout)
	}
}

func TestRun_Verbose(t *testing.T) {
	code, _, stderr := runCLI("-v", baselineLog)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stderr, "parsed run") {
		t.Errorf("expected debug log; stderr: %s", stderr)
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI("--version")
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.HasPrefix(stdout, "suitecmp ") {
		t.Errorf("unexpected version output %q", stdout)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, stderr := runCLI("--bogus", baselineLog)
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "usage: suitecmp") {
		t.Errorf("missing usage; stderr: %s", stderr)
	}
}

func TestResolveFormat_AutoOnNonTTY(t *testing.T) {
	var buf bytes.Buffer
	if got := resolveFormat("auto", &buf); got != "table" {
		t.Errorf("resolveFormat(auto, buffer) = %q, want table", got)
	}
	if got := resolveFormat("json", &buf); got != "json" {
		t.Errorf("resolveFormat(json, buffer) = %q, want json", got)
	}
}
