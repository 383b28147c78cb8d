package main

import (
	"errors"

	"github.com/dkoosis/suitecmp/pkg/gtestlog"
)

const asFlag = "--as"

var (
	errNoFiles      = errors.New("please provide at least one file containing googletest output")
	errMissingTitle = errors.New("expected optional name after reading --as")
)

// usageError marks problems with the command line itself.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// parseRuns turns "file [--as title] file [--as title] ..." into runs.
// A file may be followed by --as and a title, which then names that run.
func parseRuns(args []string) ([]gtestlog.Run, error) {
	var runs []gtestlog.Run
	for i := 0; i < len(args); i++ {
		path, title := args[i], ""
		if i+1 < len(args) && args[i+1] == asFlag {
			if i+2 >= len(args) {
				return nil, &usageError{err: errMissingTitle}
			}
			title = args[i+2]
			i += 2
		}
		runs = append(runs, gtestlog.NewRun(path, title))
	}
	if len(runs) == 0 {
		return nil, &usageError{err: errNoFiles}
	}
	return runs, nil
}
