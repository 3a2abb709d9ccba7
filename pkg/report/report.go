// Package report renders accounts for the terminal and exports them as YAML.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shunichi-ikebuchi/wallet/pkg/ledger"
	"github.com/shunichi-ikebuchi/wallet/pkg/manager"
)

const rule = "====================================================="

// FormatOverview formats one line per account followed by the overall balance.
func FormatOverview(overview manager.Overview) string {
	var sb strings.Builder

	for _, a := range overview.Accounts {
		sb.WriteString(fmt.Sprintf("%s: %s (%s)\n", a.Name, ledger.FormatAmount(a.Balance), a.Description))
	}
	sb.WriteString(rule)
	sb.WriteString("\n")
	sb.WriteString(ledger.FormatAmount(overview.Total))
	sb.WriteString("\n")

	return sb.String()
}

// FormatAccount formats every transaction of an account, oldest first.
// Recurring templates are marked with their interval.
func FormatAccount(account *ledger.Account) string {
	var sb strings.Builder

	for _, txn := range account.Transactions() {
		sb.WriteString(txn.String())
		if txn.IsRecurring() {
			sb.WriteString(fmt.Sprintf(" [every %s]", txn.Interval.Code()))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// PrintOverview writes FormatOverview to w.
func PrintOverview(w io.Writer, overview manager.Overview) error {
	_, err := io.WriteString(w, FormatOverview(overview))
	return err
}

// PrintAccount writes FormatAccount to w.
func PrintAccount(w io.Writer, account *ledger.Account) error {
	_, err := io.WriteString(w, FormatAccount(account))
	return err
}
