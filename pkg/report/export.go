package report

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/wallet/pkg/ledger"
	"github.com/shunichi-ikebuchi/wallet/pkg/manager"
)

// AccountDocument is the YAML form of an account.
type AccountDocument struct {
	Name         string                `yaml:"name"`
	Description  string                `yaml:"description"`
	CanOverdraw  bool                  `yaml:"can_overdraw"`
	Balance      string                `yaml:"balance"`
	Transactions []TransactionDocument `yaml:"transactions,omitempty"`
}

// TransactionDocument is the YAML form of a transaction.
type TransactionDocument struct {
	Date           string `yaml:"date"`
	Amount         string `yaml:"amount"`
	Description    string `yaml:"description"`
	Every          string `yaml:"every,omitempty"`
	LastOccurrence string `yaml:"last_occurrence,omitempty"`
}

// OverviewDocument is the YAML form of the overview.
type OverviewDocument struct {
	Accounts []AccountDocument `yaml:"accounts"`
	Total    string            `yaml:"total"`
}

// NewAccountDocument converts an account with all its transactions.
func NewAccountDocument(account *ledger.Account) AccountDocument {
	doc := AccountDocument{
		Name:        account.Name,
		Description: account.Description,
		CanOverdraw: account.CanOverdraw,
		Balance:     ledger.FormatAmount(account.Balance()),
	}

	for _, txn := range account.Transactions() {
		t := TransactionDocument{
			Date:        txn.Date.Format(time.DateOnly),
			Amount:      ledger.FormatAmount(txn.Amount),
			Description: txn.Description,
		}
		if txn.IsRecurring() {
			t.Every = txn.Interval.Code()
			t.LastOccurrence = txn.MaterializedThrough().Format(time.DateOnly)
		}
		doc.Transactions = append(doc.Transactions, t)
	}

	return doc
}

// NewOverviewDocument converts an overview. Transactions are not included.
func NewOverviewDocument(overview manager.Overview) OverviewDocument {
	doc := OverviewDocument{
		Accounts: make([]AccountDocument, 0, len(overview.Accounts)),
		Total:    ledger.FormatAmount(overview.Total),
	}
	for _, a := range overview.Accounts {
		doc.Accounts = append(doc.Accounts, AccountDocument{
			Name:        a.Name,
			Description: a.Description,
			CanOverdraw: a.CanOverdraw,
			Balance:     ledger.FormatAmount(a.Balance),
		})
	}
	return doc
}

// ExportYAML encodes doc as YAML to w.
func ExportYAML(w io.Writer, doc any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
