// suitecmp compares googletest suite timings across several runs.
//
// Usage:
//
//	suitecmp [flags] log-file-1 [--as "named run 1"] log-file-2 [--as "named run 2"] ...
//
// Each log is scanned for suite footers such as
//
//	[----------] 1 test from FooTest (12 ms total)
//
// and a table is printed with one row per suite, slowest first, one column
// per run and the spread between the fastest and slowest run in percent.
//
// Output formats:
//
//	table     tab-separated plain table (default)
//	terminal  aligned, colored table with totals
//	json      structured JSON for automation
//	auto      terminal when stdout is a TTY, table otherwise
//
// Flags must come before the first log file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/dkoosis/suitecmp/internal/config"
	"github.com/dkoosis/suitecmp/internal/version"
	"github.com/dkoosis/suitecmp/pkg/compare"
	"github.com/dkoosis/suitecmp/pkg/gtestlog"
	"github.com/dkoosis/suitecmp/pkg/render"
)

const (
	exitOK    = 0
	exitUsage = 1
	exitError = 1
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("suitecmp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(stderr)
		fmt.Fprintln(stderr, "\nflags:")
		fs.PrintDefaults()
	}

	var flags config.CliFlags
	fs.StringVar(&flags.Format, "format", config.DefaultFormat, "Output format: table, terminal, json, auto")
	fs.StringVar(&flags.Theme, "theme", config.DefaultTheme, "Theme for terminal output: default, orca, mono")
	fs.StringVar(&flags.Duplicates, "duplicates", config.DefaultDuplicates, "Which timing to keep when a suite or run name repeats: last, first")
	fs.StringVar(&flags.ConfigPath, "config", "", "YAML config file")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Log parsing details to stderr")
	fs.BoolVar(&flags.Verbose, "v", false, "Shorthand for --verbose")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return exitOK
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			flags.FormatSet = true
		case "theme":
			flags.ThemeSet = true
		case "duplicates":
			flags.DuplicatesSet = true
		case "verbose", "v":
			flags.VerboseSet = true
		}
	})

	runs, err := parseRuns(fs.Args())
	if err != nil {
		return reportError(stderr, err)
	}

	cfg, err := config.ResolveConfig(flags, os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "suitecmp: %v\n", err)
		return exitUsage
	}
	logger := newLogger(stderr, cfg.Verbose)
	logger.Debug("resolved config", "format", cfg.Format, "format_source", cfg.FormatSource,
		"theme", cfg.Theme.Name, "theme_source", cfg.ThemeSource, "duplicates", cfg.Duplicates)

	rep, err := compareRuns(runs, cfg, logger)
	if err != nil {
		return reportError(stderr, err)
	}

	fmt.Fprint(stdout, selectRenderer(cfg, stdout).Render(rep))
	return exitOK
}

// reportError prints err and returns the exit code for it. Usage errors are
// followed by the usage synopsis.
func reportError(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "suitecmp: %v\n", err)
	var uerr *usageError
	if errors.As(err, &uerr) {
		printUsage(stderr)
		return exitUsage
	}
	return exitError
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `usage: suitecmp [flags] log-file-1 [--as "named run 1"] log-file-2 [--as "named run 2"] etc.`)
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "suitecmp",
		Level:  level,
	})
}

// compareRuns parses every run in order and folds the results. The first
// unreadable log aborts the whole comparison.
func compareRuns(runs []gtestlog.Run, cfg *config.ResolvedConfig, logger *log.Logger) (*compare.Report, error) {
	opts := gtestlog.ParseOptions{
		Duplicates:    cfg.Duplicates,
		MaxLineLength: cfg.MaxLineLength,
		Logger:        logger,
	}
	rep := compare.New(cfg.Duplicates)
	for _, run := range runs {
		res, err := gtestlog.ParseFile(run, opts)
		if err != nil {
			return nil, err
		}
		if rep.Add(res) {
			logger.Warn("run name used more than once", "run", run.Name, "path", run.Path, "keeping", cfg.Duplicates)
		}
	}
	return rep, nil
}

func selectRenderer(cfg *config.ResolvedConfig, w io.Writer) render.Renderer {
	switch resolveFormat(cfg.Format, w) {
	case render.FormatJSON:
		return render.NewJSON()
	case render.FormatTerminal:
		return render.NewTerminal(cfg.Theme).WithWarnPercent(cfg.WarnPercent)
	default:
		return render.NewTable()
	}
}

func resolveFormat(format render.Format, w io.Writer) render.Format {
	if format != render.FormatAuto {
		return format
	}
	if isTTYWriter(w) {
		return render.FormatTerminal
	}
	return render.FormatTable
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
