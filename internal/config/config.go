package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/mxtools/mxexport/internal/model"
)

// Default values for the scalar settings. Paths are relative to the
// working directory the batch is launched from.
const (
	// DefaultOutput is the workbook path used when no output is
	// configured.
	DefaultOutput = "export/model-metadata.xlsx"

	// DefaultTokenFile is the plain-text file holding the repository
	// access token.
	DefaultTokenFile = "token.txt"
)

// envPrefix namespaces the environment variables the loader reads, e.g.
// MXEXPORT_OUTPUT, MXEXPORT_TOKEN_FILE, MXEXPORT_BASE_URL.
const envPrefix = "MXEXPORT_"

// configFileNames are the config file candidates probed in the working
// directory, in priority order, when no explicit --config is given.
var configFileNames = []string{"mxexport.yaml", "mxexport.yml", "mxexport.jsonc"}

// Config is the fully resolved run configuration.
type Config struct {
	// Output is the path of the workbook to write.
	Output string `koanf:"output"`

	// TokenFile is the path of the plain-text access token file.
	TokenFile string `koanf:"token_file"`

	// BaseURL is the model repository's API base URL.
	BaseURL string `koanf:"base_url"`

	// Verbose enables debug-level diagnostics.
	Verbose bool `koanf:"verbose"`

	// Applications is the manifest: the applications to export, in
	// declaration order. A duplicate name overwrites the earlier entry
	// in place.
	Applications []model.AppConfig `koanf:"applications"`
}

// findConfigFile returns the config file to use: the explicit path when
// given, otherwise the first existing candidate in the working directory,
// otherwise "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds the run configuration.
//
// Precedence (highest to lowest): explicitly-set flags > environment
// variables > config file > defaults. An explicit cfgFile that does not
// exist is an error; an absent implicit config file is not — the manifest
// may then come from flags/env only, though an empty application list is
// rejected by callers that need one.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"output":     DefaultOutput,
		"token_file": DefaultTokenFile,
		"base_url":   "",
		"verbose":    false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (YAML or JSONC), when present.
	if path := findConfigFile(cfgFile); path != "" {
		if err := loadConfigFile(k, path); err != nil {
			return nil, err
		}
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}

	// 3. Environment variables: MXEXPORT_TOKEN_FILE -> token_file.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// 4. Flags, highest priority. Only flags the user actually set are
	// loaded, so defaults declared on the flag set don't mask the file
	// and env layers.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// Kebab-case flag names map to snake_case config keys
			// (--token-file -> token_file).
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	apps, err := normalizeApplications(cfg.Applications)
	if err != nil {
		return nil, err
	}
	cfg.Applications = apps

	return &cfg, nil
}
