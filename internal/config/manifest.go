package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/tidwall/jsonc"

	"github.com/mxtools/mxexport/internal/model"
)

// loadConfigFile loads one config file into the koanf instance, picking
// the parser by extension. ".jsonc" and ".json" go through the JSONC
// route (comments and trailing commas stripped before standard JSON
// parsing); everything else is treated as YAML.
func loadConfigFile(k *koanf.Koanf, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonc", ".json":
		return loadJSONCFile(k, path)
	default:
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
		return nil
	}
}

// loadJSONCFile reads a JSONC config file, strips comments, and loads the
// resulting document into koanf via the confmap provider.
func loadJSONCFile(k *koanf.Koanf, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	// jsonc.ToJSON replaces // and /* */ comments and trailing commas
	// with whitespace, yielding a standard JSON document of identical
	// length.
	clean := jsonc.ToJSON(data)

	var doc map[string]interface{}
	if err := json.Unmarshal(clean, &doc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := k.Load(confmap.Provider(doc, "."), nil); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return nil
}

// normalizeApplications validates every manifest entry and resolves
// duplicate names.
//
// Duplicate handling preserves the manifest's map-overwrite semantics: a
// later entry with an already-seen name replaces the earlier entry's
// values while keeping the earlier entry's position, so worksheet
// allocation still follows first-come declaration order.
func normalizeApplications(apps []model.AppConfig) ([]model.AppConfig, error) {
	result := make([]model.AppConfig, 0, len(apps))
	index := make(map[string]int, len(apps))

	for i := range apps {
		app := apps[i]
		if err := app.Validate(); err != nil {
			return nil, fmt.Errorf("invalid application manifest entry %d: %w", i+1, err)
		}

		if pos, seen := index[app.Name]; seen {
			result[pos] = app
			continue
		}
		index[app.Name] = len(result)
		result = append(result, app)
	}

	return result, nil
}
