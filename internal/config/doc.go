// Package config handles configuration loading and resolution for suitecmp.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--format, --theme, --duplicates, --verbose)
//  2. YAML config file, only when one is named with --config
//  3. Hardcoded defaults
//
// No config file is searched for implicitly: a bare invocation reads nothing
// but the log files it is given.
//
// # Keys
//
//   - format: table (default), terminal, json or auto
//   - theme: default, orca or mono (terminal format only)
//   - duplicates: last (default) or first; applies to suites repeated within
//     a run and to runs sharing a display name
//   - warn_percent: spread above which the terminal format highlights a suite
//   - max_line_length: longest log line accepted, in bytes
//   - verbose: debug logging on stderr
//
// # Environment Variables
//
// NO_COLOR (any non-empty value) forces the mono theme. It has no effect on
// the table or json formats.
package config
