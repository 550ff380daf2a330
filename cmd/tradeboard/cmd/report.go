package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rustyeddy/tradeboard/board"
	"github.com/rustyeddy/tradeboard/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write an org-mode performance report",
	Long: `Write the summary, insights and daily net P&L as an org-mode document.

With --charts the equity and daily charts are rendered into that directory
and linked from the report. With --journal every trade gets its own entry.

Examples:
  tradeboard report --out journal.org
  tradeboard report --out journal.org --charts charts --journal`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var (
	reportOut     string
	reportTitle   string
	reportCharts  string
	reportJournal bool
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output .org file (default stdout)")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "report title")
	reportCmd.Flags().StringVar(&reportCharts, "charts", "", "directory to render PNG charts into")
	reportCmd.Flags().BoolVar(&reportJournal, "journal", false, "append one org entry per trade")
}

func runReport(cmd *cobra.Command, args []string) error {
	v, a, err := view(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	r := report.OrgReport{
		Title:      reportTitle,
		SnapshotID: v.SnapshotID,
		Source:     a.pipeline.Source(),
		Created:    time.Now(),
		Summary:    v.Summary,
		Insights:   v.Insights,
		Daily:      v.Daily,
		Records:    v.Records,
		Journal:    reportJournal,
	}

	if reportCharts != "" {
		if err := os.MkdirAll(reportCharts, 0o755); err != nil {
			return fmt.Errorf("charts dir: %w", err)
		}
		r.EquityPNG = reportChart(a.log, v, "equity")
		r.DailyPNG = reportChart(a.log, v, "daily")
	}

	var w io.Writer = cmd.OutOrStdout()
	if reportOut != "" {
		f, err := os.Create(reportOut)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := report.WriteOrgReport(w, r); err != nil {
		return err
	}
	if reportOut != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report: %s\n", reportOut)
	}
	return nil
}

// reportChart renders one chart into the charts dir and returns the link for
// the report, relative to the report when possible. Failures drop the link.
func reportChart(log *zap.Logger, v *board.View, kind string) string {
	path := filepath.Join(reportCharts, kind+".png")
	if err := writeChart(path, kind, v, board.DefaultBins); err != nil {
		if !errors.Is(err, report.ErrNoData) {
			log.Warn("render chart", zap.String("kind", kind), zap.Error(err))
		}
		return ""
	}
	if reportOut == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	base, err := filepath.Abs(filepath.Dir(reportOut))
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(base, abs); err == nil {
		return rel
	}
	return abs
}
