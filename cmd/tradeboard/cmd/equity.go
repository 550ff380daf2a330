package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Print the cumulative equity curve",
	Long: `Print one line per trading day with the equity after that day,
starting from portfolio.start_capital.`,
	Args: cobra.NoArgs,
	RunE: runEquity,
}

func init() {
	rootCmd.AddCommand(equityCmd)
}

func runEquity(cmd *cobra.Command, args []string) error {
	v, a, err := view(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-12s %14.2f\n", "start", v.Summary.StartCapital)
	for _, p := range v.Equity {
		fmt.Fprintf(out, "%-12s %14.2f\n", p.Day, p.Value)
	}
	return nil
}
