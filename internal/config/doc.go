// Package config loads the run configuration for mxexport.
//
// Configuration is layered with koanf, lowest to highest precedence:
// built-in defaults, a config file (YAML or JSONC), MXEXPORT_-prefixed
// environment variables, and explicitly-set CLI flags. The config file
// carries the application manifest — the ordered list of applications to
// export — plus the output path, token file path, and repository URL.
//
// JSONC manifests are supported because model manifests are frequently
// annotated with review comments; comments are stripped with
// github.com/tidwall/jsonc before standard JSON parsing.
//
// The package also reads the repository access token from its plain-text
// token file (token.go). Token problems abort the run before any network
// contact is attempted.
package config
