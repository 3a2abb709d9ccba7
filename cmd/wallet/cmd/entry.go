package cmd

import (
	"fmt"

	"github.com/shunichi-ikebuchi/wallet/pkg/ledger"
	"github.com/shunichi-ikebuchi/wallet/pkg/manager"
	"github.com/spf13/cobra"
)

// entryFlags holds the flags shared by spent, got and set.
type entryFlags struct {
	account     string
	description string
	every       string
}

var (
	spentCmd = newEntryCmd(manager.KindSpent, "Record an expense", `Record an expense against an account.

The amount is stored as a negative transaction. Accounts that cannot be
overdrawn reject expenses larger than their balance. With --every the
expense becomes a recurring template.

Example:
  wallet spent 12.50 -a cash -d Lunch
  wallet spent 850 -a checking -d Rent --every Monthly`)

	gotCmd = newEntryCmd(manager.KindGot, "Record income", `Record income on an account.

With --every the income becomes a recurring template.

Example:
  wallet got 1200 -a checking -d Salary --every Biweekly`)

	setCmd = newEntryCmd(manager.KindSet, "Set an account's balance", `Set an account's balance to an exact value.

The difference to the current balance is recorded as an adjustment
transaction.

Example:
  wallet set 310.25 -a checking -d "Bank statement"`)
)

func newEntryCmd(kind manager.Kind, short, long string) *cobra.Command {
	flags := &entryFlags{}

	cmd := &cobra.Command{
		Use:   kind.String() + " AMOUNT",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runEntry(kind, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.account, "account", "a", "", "Account name")
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "Transaction description")
	if kind != manager.KindSet {
		cmd.Flags().StringVar(&flags.every, "every", "", "Repeat interval (Daily, Weekly, Biweekly, Monthly)")
	}

	return cmd
}

func runEntry(kind manager.Kind, flags *entryFlags, args []string) {
	amount, err := parseAmount(args)
	exitOnError(err, "invalid arguments")

	var every ledger.Interval
	if flags.every != "" {
		every, err = ledger.ParseInterval(flags.every)
		exitOnError(err, "invalid arguments")
	}

	w, err := openWallet()
	exitOnError(err, "failed to open wallet")
	defer w.Close()

	result, err := w.manager.Dispatch(manager.Command{
		Kind:        kind,
		Account:     flags.account,
		Amount:      amount,
		Description: flags.description,
		Every:       every,
	})
	exitOnError(err, fmt.Sprintf("%s failed", kind))

	fmt.Printf("%s: %s\n", result.Account.Name, ledger.FormatAmount(result.Account.Balance()))
}
