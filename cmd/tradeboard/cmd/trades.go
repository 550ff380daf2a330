package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradeboard/journal"
	"github.com/rustyeddy/tradeboard/report"
	"github.com/spf13/cobra"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List the normalized closed trades",
	Long: `List every closed trade after normalization, oldest entry first.

With --org each trade is printed as an org-mode journal entry.

Examples:
  tradeboard trades --side SHORT
  tradeboard trades --instrument ETH --org > eth.org`,
	Args: cobra.NoArgs,
	RunE: runTrades,
}

var tradesOrg bool

func init() {
	rootCmd.AddCommand(tradesCmd)
	tradesCmd.Flags().BoolVar(&tradesOrg, "org", false, "print org-mode entries")
}

func runTrades(cmd *cobra.Command, args []string) error {
	v, a, err := view(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if tradesOrg {
		fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(v.Records))
		return nil
	}
	report.PrintTrades(cmd.OutOrStdout(), v.Records)
	return nil
}
