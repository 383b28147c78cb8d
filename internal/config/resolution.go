package config

import (
	"github.com/dkoosis/suitecmp/pkg/gtestlog"
	"github.com/dkoosis/suitecmp/pkg/render"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	ConfigPath string
	Format     string
	Theme      string
	Duplicates string
	Verbose    bool

	// Flags to track if they were explicitly set by the user
	FormatSet     bool
	ThemeSet      bool
	DuplicatesSet bool
	VerboseSet    bool
}

// ResolvedConfig holds the final configuration after applying priority rules.
type ResolvedConfig struct {
	Format        render.Format
	Theme         render.Theme
	Duplicates    gtestlog.DuplicatePolicy
	WarnPercent   int64
	MaxLineLength int
	Verbose       bool

	// Resolution metadata (for debugging)
	FormatSource string // "cli", "file", "default"
	ThemeSource  string // "cli", "env", "file", "default"
}

// ResolveConfig applies CLI flags over the config file over defaults.
// getenv is consulted for NO_COLOR; pass os.Getenv in production.
func ResolveConfig(flags CliFlags, getenv func(string) string) (*ResolvedConfig, error) {
	appCfg, err := LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	fileSource := "default"
	if flags.ConfigPath != "" {
		fileSource = "file"
	}

	formatSource, themeSource := fileSource, fileSource
	if flags.FormatSet {
		appCfg.Format = flags.Format
		formatSource = "cli"
	}
	if flags.ThemeSet {
		appCfg.Theme = flags.Theme
		themeSource = "cli"
	}
	if flags.DuplicatesSet {
		appCfg.Duplicates = flags.Duplicates
	}
	if flags.VerboseSet {
		appCfg.Verbose = flags.Verbose
	}
	if err := appCfg.Validate(); err != nil {
		return nil, err
	}

	policy, _ := gtestlog.ParseDuplicatePolicy(appCfg.Duplicates) // validated above
	resolved := &ResolvedConfig{
		Format:        render.Format(appCfg.Format),
		Theme:         render.ThemeByName(appCfg.Theme),
		Duplicates:    policy,
		MaxLineLength: appCfg.MaxLineLength,
		Verbose:       appCfg.Verbose,
		FormatSource:  formatSource,
		ThemeSource:   themeSource,
	}
	if appCfg.WarnPercent != nil {
		resolved.WarnPercent = *appCfg.WarnPercent
	}

	// NO_COLOR beats every theme choice, including an explicit flag.
	if getenv != nil && getenv("NO_COLOR") != "" {
		resolved.Theme = render.MonoTheme()
		resolved.ThemeSource = "env"
	}
	return resolved, nil
}
