package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/suitecmp/pkg/gtestlog"
	"github.com/dkoosis/suitecmp/pkg/linesource"
	"github.com/dkoosis/suitecmp/pkg/render"
)

// AppConfig represents the contents of a suitecmp YAML config file.
type AppConfig struct {
	Format        string `yaml:"format"`
	Theme         string `yaml:"theme"`
	Duplicates    string `yaml:"duplicates"`
	WarnPercent   *int64 `yaml:"warn_percent"`
	MaxLineLength int    `yaml:"max_line_length"` // In bytes
	Verbose       bool   `yaml:"verbose"`
}

// Constants for default values.
const (
	DefaultFormat     = string(render.FormatTable)
	DefaultTheme      = "default"
	DefaultDuplicates = "last"
)

// Defaults returns the hardcoded configuration.
func Defaults() *AppConfig {
	warn := int64(render.DefaultWarnPercent)
	return &AppConfig{
		Format:        DefaultFormat,
		Theme:         DefaultTheme,
		Duplicates:    DefaultDuplicates,
		WarnPercent:   &warn,
		MaxLineLength: linesource.DefaultMaxLineLength,
	}
}

// LoadConfig reads the YAML file at path and merges it over Defaults.
// An empty path returns Defaults unchanged.
func LoadConfig(path string) (*AppConfig, error) {
	appCfg := Defaults()
	if path == "" {
		return appCfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from --config
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fileCfg AppConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fileCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fileCfg.Format != "" {
		appCfg.Format = fileCfg.Format
	}
	if fileCfg.Theme != "" {
		appCfg.Theme = fileCfg.Theme
	}
	if fileCfg.Duplicates != "" {
		appCfg.Duplicates = fileCfg.Duplicates
	}
	if fileCfg.WarnPercent != nil {
		appCfg.WarnPercent = fileCfg.WarnPercent
	}
	if fileCfg.MaxLineLength > 0 {
		appCfg.MaxLineLength = fileCfg.MaxLineLength
	}
	appCfg.Verbose = fileCfg.Verbose

	if err := appCfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return appCfg, nil
}

// Validate checks that every value names something suitecmp understands.
func (c *AppConfig) Validate() error {
	var errs []error
	if !render.Format(c.Format).Valid() {
		errs = append(errs, fmt.Errorf("unknown format %q (expected table, terminal, json or auto)", c.Format))
	}
	if !validTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("unknown theme %q (expected %s)", c.Theme, strings.Join(render.ThemeNames, ", ")))
	}
	if _, err := gtestlog.ParseDuplicatePolicy(c.Duplicates); err != nil {
		errs = append(errs, err)
	}
	if c.WarnPercent != nil && *c.WarnPercent < 0 {
		errs = append(errs, fmt.Errorf("warn_percent must not be negative, got %d", *c.WarnPercent))
	}
	if c.MaxLineLength < 0 {
		errs = append(errs, fmt.Errorf("max_line_length must not be negative, got %d", c.MaxLineLength))
	}
	return errors.Join(errs...)
}

func validTheme(name string) bool {
	for _, known := range render.ThemeNames {
		if name == known {
			return true
		}
	}
	return false
}
