package cmd

import (
	"fmt"
	"os"

	"github.com/shunichi-ikebuchi/wallet/pkg/manager"
	"github.com/shunichi-ikebuchi/wallet/pkg/report"
	"github.com/spf13/cobra"
)

var (
	showAccount string
	showFormat  string
)

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show balances or the transactions of one account",
	Long: `Without --account, print every account's balance and the overall
balance. With --account, print that account's transactions.

Recurring transactions are caught up before anything is shown.

Example:
  wallet show
  wallet show -a checking
  wallet show -a checking --format yaml`,
	Args: cobra.NoArgs,
	Run:  runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showAccount, "account", "a", "", "Account name")
	showCmd.Flags().StringVar(&showFormat, "format", "text", "Output format (text, yaml)")
}

func runShow(cmd *cobra.Command, args []string) {
	if showFormat != "text" && showFormat != "yaml" {
		exitOnError(fmt.Errorf("unknown format %q", showFormat), "invalid arguments")
	}

	w, err := openWallet()
	exitOnError(err, "failed to open wallet")
	defer w.Close()

	result, err := w.manager.Dispatch(manager.Command{
		Kind:    manager.KindShow,
		Account: showAccount,
	})
	exitOnError(err, "failed to show accounts")

	if result.Unknown != "" {
		out := os.Stdout
		if showFormat == "yaml" {
			out = os.Stderr
		}
		fmt.Fprintln(out, "Unknown account, printing overview.")
	}

	if showFormat == "yaml" {
		if result.Account != nil {
			err = report.ExportYAML(os.Stdout, report.NewAccountDocument(result.Account))
		} else {
			err = report.ExportYAML(os.Stdout, report.NewOverviewDocument(*result.Overview))
		}
		exitOnError(err, "failed to export")
		return
	}

	if result.Account != nil {
		err = report.PrintAccount(os.Stdout, result.Account)
	} else {
		err = report.PrintOverview(os.Stdout, *result.Overview)
	}
	exitOnError(err, "failed to print")
}
