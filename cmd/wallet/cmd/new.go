package cmd

import (
	"fmt"

	"github.com/shunichi-ikebuchi/wallet/pkg/manager"
	"github.com/spf13/cobra"
)

var (
	newAccount     string
	newDescription string
	newOverdraw    bool
)

// newCmd represents the new command.
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new account",
	Long: `Create a new, empty account and register it in the account index.

Accounts cannot be overdrawn unless --overdraw is given.

Example:
  wallet new -a checking -d "Everyday spending"
  wallet new -a credit-card --overdraw`,
	Args: cobra.NoArgs,
	Run:  runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newAccount, "account", "a", "", "Account name")
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Account description")
	newCmd.Flags().BoolVarP(&newOverdraw, "overdraw", "o", false, "Allow the balance to go below zero")
}

func runNew(cmd *cobra.Command, args []string) {
	w, err := openWallet()
	exitOnError(err, "failed to open wallet")
	defer w.Close()

	result, err := w.manager.Dispatch(manager.Command{
		Kind:        manager.KindNew,
		Account:     newAccount,
		Description: newDescription,
		CanOverdraw: newOverdraw,
	})
	exitOnError(err, "failed to create account")

	fmt.Printf("Created account %s\n", result.Account.Name)
}
