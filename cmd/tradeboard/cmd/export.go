package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradeboard/config"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a snapshot of the normalized trades",
	Long: `Fetch and normalize the journal, then write every closed trade to CSV
or SQLite. Defaults come from the export section of the config; filters do
not apply to snapshots.

Examples:
  tradeboard export
  tradeboard export --type sqlite --path snapshots.db`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportType string
	exportPath string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportType, "type", "", "csv or sqlite (overrides config)")
	exportCmd.Flags().StringVar(&exportPath, "path", "", "output path (overrides config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, true, func(cfg *config.Config) {
		if exportType != "" {
			cfg.Export.Type = exportType
		}
		if exportPath != "" {
			cfg.Export.Path = exportPath
		}
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.Export.Type == "" || a.cfg.Export.Type == "none" {
		return fmt.Errorf("nothing to export to: set --type and --path")
	}

	records, snap, err := a.pipeline.Load(cmd.Context())
	if err != nil {
		return err
	}
	if snap == "" {
		return fmt.Errorf("export to %s failed, see log", a.cfg.Export.Path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades to %s (%s)\n", len(records), a.cfg.Export.Path, a.cfg.Export.Type)
	fmt.Fprintf(cmd.OutOrStdout(), "  Snapshot: %s\n", snap)
	return nil
}
