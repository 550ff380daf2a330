package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rustyeddy/tradeboard/board"
	"github.com/rustyeddy/tradeboard/metrics"
	"github.com/rustyeddy/tradeboard/report"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a PNG chart",
	Long: `Render the equity curve, the daily net P&L bars or the trade P&L
histogram as a PNG file.

Examples:
  tradeboard chart --kind equity --out equity.png
  tradeboard chart --kind histogram --bins 20 --out pnl.png`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

var (
	chartKind string
	chartOut  string
	chartBins int
)

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVar(&chartKind, "kind", "equity", "equity, daily or histogram")
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "", "output PNG path (default <kind>.png)")
	chartCmd.Flags().IntVar(&chartBins, "bins", board.DefaultBins, "histogram bins")
}

func renderChart(w io.Writer, kind string, v *board.View, bins int) error {
	switch kind {
	case "equity":
		return report.EquityChart(w, v.Equity, v.Summary.StartCapital)
	case "daily":
		return report.DailyChart(w, v.Daily)
	case "histogram":
		if bins != board.DefaultBins {
			return report.HistogramChart(w, metrics.Histogram(v.Records, bins))
		}
		return report.HistogramChart(w, v.Histogram)
	}
	return fmt.Errorf("unknown chart kind %q", kind)
}

func runChart(cmd *cobra.Command, args []string) error {
	switch chartKind {
	case "equity", "daily", "histogram":
	default:
		return fmt.Errorf("unknown chart kind %q (want equity, daily or histogram)", chartKind)
	}
	if chartBins < 1 {
		return fmt.Errorf("--bins must be positive")
	}

	v, a, err := view(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := chartOut
	if out == "" {
		out = chartKind + ".png"
	}
	if err := writeChart(out, chartKind, v, chartBins); err != nil {
		if errors.Is(err, report.ErrNoData) {
			fmt.Fprintln(cmd.OutOrStdout(), "No closed trades to chart.")
			return nil
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s chart: %s\n", chartKind, out)
	return nil
}

// writeChart renders into a temp file beside path so an empty chart leaves
// nothing behind.
func writeChart(path, kind string, v *board.View, bins int) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".chart-*.png")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := renderChart(f, kind, v, bins); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
