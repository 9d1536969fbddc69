// Package cli — apps.go implements the "mxexport apps" command.
//
// The apps command lists the applications resolved from the manifest —
// the exact set and order the export command would process — as a table
// or as YAML for machine consumption.
package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mxtools/mxexport/internal/config"
	"github.com/mxtools/mxexport/internal/model"
)

// appsFlags holds the flag values for the apps command.
type appsFlags struct {
	// format selects the output rendering: "table" (default) or "yaml".
	format string
}

// NewAppsCommand creates the "apps" cobra command.
func NewAppsCommand() *cobra.Command {
	flags := &appsFlags{}

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List the configured applications",
		Long: `List the applications resolved from the manifest, in the order the
export command would process them. Duplicate names in the manifest are
already collapsed (the last entry wins).

Examples:
  mxexport apps
  mxexport apps --format yaml`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runApps(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "table", "Output format: table, yaml")

	return cmd
}

// runApps is the main logic function for the apps command.
func runApps(cmd *cobra.Command, flags *appsFlags) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError, "invalid configuration", err)
	}

	switch flags.format {
	case "table":
		renderAppsTable(cmd.OutOrStdout(), cfg.Applications)
		return nil
	case "yaml":
		return renderAppsYAML(cmd.OutOrStdout(), cfg.Applications)
	default:
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid format %q: valid values are table, yaml", flags.format))
	}
}

// renderAppsTable writes the application list as an aligned text table.
func renderAppsTable(w io.Writer, apps []model.AppConfig) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications configured.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"NAME", "APP ID", "BRANCH"})
	for _, app := range apps {
		t.AppendRow(table.Row{app.Name, app.AppID, app.Branch})
	}
	t.Render()
}

// renderAppsYAML writes the application list as a YAML document.
func renderAppsYAML(w io.Writer, apps []model.AppConfig) error {
	doc := struct {
		Applications []model.AppConfig `yaml:"applications"`
	}{
		// An empty slice renders as "applications: []" instead of null.
		Applications: make([]model.AppConfig, 0, len(apps)),
	}
	doc.Applications = append(doc.Applications, apps...)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to render applications as YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// renderFailureSummary writes the end-of-run failure table naming every
// application whose extraction failed. Written to stderr by the export
// command so stdout stays clean.
func renderFailureSummary(w io.Writer, failedApps []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Failed applications")
	t.AppendHeader(table.Row{"#", "NAME"})
	for i, name := range failedApps {
		t.AppendRow(table.Row{i + 1, name})
	}
	t.Render()
}
