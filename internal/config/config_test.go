package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxtools/mxexport/internal/model"
)

// chdir switches the working directory to dir for the duration of the
// test, restoring the original directory on cleanup. It stands in for
// t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(orig))
	})
}

// writeFile drops content into dir under name and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleYAML = `
output: reports/meta.xlsx
token_file: secrets/pat.txt
base_url: https://repo.example.com
applications:
  - name: Alpha
    app_id: app-1
    branch: main
  - name: Beta
    app_id: app-2
`

// TestLoadDefaults verifies the configuration with no file, env, or flags.
func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultTokenFile, cfg.TokenFile)
	assert.Empty(t, cfg.BaseURL)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Applications)
}

// TestLoadYAMLFile verifies an explicit YAML config file, including branch
// defaulting for manifest entries that omit it.
func TestLoadYAMLFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mxexport.yaml", sampleYAML)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "reports/meta.xlsx", cfg.Output)
	assert.Equal(t, "secrets/pat.txt", cfg.TokenFile)
	assert.Equal(t, "https://repo.example.com", cfg.BaseURL)

	require.Len(t, cfg.Applications, 2)
	assert.Equal(t, model.AppConfig{Name: "Alpha", AppID: "app-1", Branch: "main"}, cfg.Applications[0])
	assert.Equal(t, model.DefaultBranch, cfg.Applications[1].Branch, "omitted branch defaults")
}

// TestLoadExplicitFileMissing: a --config path that does not exist is an
// error, unlike the absent implicit candidates.
func TestLoadExplicitFileMissing(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(filepath.Join("nope", "mxexport.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

// TestLoadImplicitDiscovery verifies the working-directory probe order.
func TestLoadImplicitDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mxexport.yaml", "output: from-yaml.xlsx\n")
	writeFile(t, dir, "mxexport.jsonc", `{"output": "from-jsonc.xlsx"}`)
	chdir(t, dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml.xlsx", cfg.Output, "mxexport.yaml wins over mxexport.jsonc")
}

// TestLoadEnvOverridesFile verifies that environment variables take
// precedence over config file values.
func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mxexport.yaml", sampleYAML)
	t.Setenv("MXEXPORT_OUTPUT", "env-output.xlsx")
	t.Setenv("MXEXPORT_TOKEN_FILE", "env-token.txt")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "env-output.xlsx", cfg.Output)
	assert.Equal(t, "env-token.txt", cfg.TokenFile)
	assert.Equal(t, "https://repo.example.com", cfg.BaseURL, "untouched keys keep file values")
}

// TestLoadFlagsOverrideEverything verifies that explicitly-set flags beat
// both the environment and the file, while unset flags don't mask lower
// layers with their declared defaults.
func TestLoadFlagsOverrideEverything(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mxexport.yaml", sampleYAML)
	t.Setenv("MXEXPORT_OUTPUT", "env-output.xlsx")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", DefaultOutput, "")
	flags.String("token-file", DefaultTokenFile, "")
	flags.String("base-url", "", "")
	require.NoError(t, flags.Parse([]string{"--output=flag-output.xlsx"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "flag-output.xlsx", cfg.Output, "changed flag wins over env and file")
	assert.Equal(t, "secrets/pat.txt", cfg.TokenFile, "unchanged flag default does not mask the file")
	assert.Equal(t, "https://repo.example.com", cfg.BaseURL)
}

// TestLoadRejectsInvalidManifestEntry: entries without required fields
// abort loading with the entry's position in the message.
func TestLoadRejectsInvalidManifestEntry(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mxexport.yaml", `
applications:
  - name: Alpha
    app_id: app-1
  - name: Broken
`)

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 2")
}
