package gtestlog

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/dkoosis/suitecmp/pkg/linesource"
)

// ParseOptions controls how a run's log is read.
type ParseOptions struct {
	Duplicates    DuplicatePolicy
	MaxLineLength int         // 0 keeps linesource.DefaultMaxLineLength
	Logger        *log.Logger // nil disables logging
}

func (o ParseOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// ParseFile opens run.Path and collects its suite timings.
func ParseFile(run Run, opts ParseOptions) (*RunResult, error) {
	r, err := linesource.Open(run.Path, linesource.WithMaxLineLength(opts.MaxLineLength))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ParseRun(run, r, opts)
}

// ParseRun reads every line from r and collects the suite timings it finds.
// Lines that do not carry a suite footer are ignored, as are lines the
// reader skipped for exceeding its maximum length.
func ParseRun(run Run, r *linesource.Reader, opts ParseOptions) (*RunResult, error) {
	logger := opts.logger()
	result := newRunResult(run)

	lines := 0
	for r.HasLine() {
		line, err := r.Line()
		if err != nil {
			return nil, err
		}
		lines++
		lineNo := r.LineNumber()

		res, ok := Extract(line)
		if !ok {
			continue
		}
		if res.Saturated {
			logger.Warn("duration overflows int64, clamped", "run", run.Name, "line", lineNo, "suite", res.Suite)
		}
		if replaced := result.record(res, opts.Duplicates); replaced {
			logger.Debug("suite repeated in run, keeping later value", "run", run.Name, "suite", res.Suite, "line", lineNo)
		}
	}
	for _, n := range r.Skipped() {
		logger.Warn("line exceeds max length, skipped", "run", run.Name, "line", n)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("parsing run %q: %w", run.Name, err)
	}

	logger.Debug("parsed run", "run", run.Name, "lines", lines, "skipped", len(r.Skipped()), "suites", result.Len(), "matches", result.Matches, "total_ms", result.Total)
	return result, nil
}
