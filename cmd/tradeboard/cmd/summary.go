package cmd

import (
	"github.com/rustyeddy/tradeboard/report"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the summary indicators",
	Long: `Fetch the journal and print gain, loss, fees, net delta, hit ratio and
average gain/loss.

Examples:
  tradeboard summary
  tradeboard summary --instrument BTC --side LONG`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Print the insight cards",
	Args:  cobra.NoArgs,
	RunE:  runInsights,
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print daily net P&L with the running equity",
	Args:  cobra.NoArgs,
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(dailyCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	v, a, err := view(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	report.PrintSummary(cmd.OutOrStdout(), v.Summary)
	return nil
}

func runInsights(cmd *cobra.Command, args []string) error {
	v, a, err := view(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	report.PrintInsights(cmd.OutOrStdout(), v.Insights)
	return nil
}

func runDaily(cmd *cobra.Command, args []string) error {
	v, a, err := view(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	report.PrintDaily(cmd.OutOrStdout(), v.Daily, v.Equity)
	return nil
}
