package cmd

import (
	"fmt"

	"github.com/shunichi-ikebuchi/wallet/pkg/ledger"
	"github.com/spf13/cobra"
)

var (
	historyAccount string
	historyLimit   int
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded operations",
	Long: `List the most recent operations recorded in the history database,
newest first.

Example:
  wallet history
  wallet history -a checking --limit 50`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyAccount, "account", "a", "", "Only show this account")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of operations")
}

func runHistory(cmd *cobra.Command, args []string) {
	conn, history, err := openHistory()
	exitOnError(err, "failed to open history")
	defer conn.Close()

	records, err := history.Recent(historyAccount, historyLimit)
	exitOnError(err, "failed to read history")

	if len(records) == 0 {
		fmt.Println("No operations recorded")
		return
	}

	for _, r := range records {
		fmt.Printf("%s  %-10s %-8s %10s  -> %10s  %s\n",
			r.RecordedAt.Local().Format("2006-01-02 15:04"),
			r.Account,
			r.Operation,
			ledger.FormatAmount(r.Amount),
			ledger.FormatAmount(r.BalanceAfter),
			r.Description,
		)
	}
}
