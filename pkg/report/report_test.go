package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/wallet/pkg/ledger"
	"github.com/shunichi-ikebuchi/wallet/pkg/manager"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func sampleAccount(t *testing.T) *ledger.Account {
	t.Helper()
	account := ledger.New("cash", "Pocket money", true, ledger.WithClock(func() time.Time { return now }))
	require.NoError(t, account.Got(100, "Salary"))
	require.NoError(t, account.Spent(12.5, "Phone", ledger.Every(ledger.Monthly)))
	return account
}

func TestFormatOverview(t *testing.T) {
	overview := manager.Overview{
		Accounts: []manager.AccountSummary{
			{Name: "cash", Description: "Pocket money", Balance: 87.5},
			{Name: "savings", Description: "No description", Balance: -0.125},
		},
		Total: 87.375,
	}

	expected := "cash: 87.50 (Pocket money)\n" +
		"savings: -0.13 (No description)\n" +
		rule + "\n" +
		"87.38\n"
	assert.Equal(t, expected, FormatOverview(overview))
}

func TestFormatOverviewEmpty(t *testing.T) {
	assert.Equal(t, rule+"\n0.00\n", FormatOverview(manager.Overview{}))
}

func TestFormatAccount(t *testing.T) {
	expected := "100.00 @ 2026-10-15: Salary\n" +
		"-12.50 @ 2026-10-15: Phone [every Monthly]\n"
	assert.Equal(t, expected, FormatAccount(sampleAccount(t)))
}

func TestPrintAccount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintAccount(&buf, sampleAccount(t)))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestExportAccountYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportYAML(&buf, NewAccountDocument(sampleAccount(t))))

	var doc AccountDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "cash", doc.Name)
	assert.True(t, doc.CanOverdraw)
	assert.Equal(t, "87.50", doc.Balance)
	require.Len(t, doc.Transactions, 2)
	assert.Equal(t, "100.00", doc.Transactions[0].Amount)
	assert.Empty(t, doc.Transactions[0].Every)
	assert.Equal(t, "-12.50", doc.Transactions[1].Amount)
	assert.Equal(t, "Monthly", doc.Transactions[1].Every)
	assert.Equal(t, "2026-10-15", doc.Transactions[1].LastOccurrence)
}

func TestExportOverviewYAML(t *testing.T) {
	overview := manager.Overview{
		Accounts: []manager.AccountSummary{{Name: "cash", Description: "x", Balance: 3}},
		Total:    3,
	}

	var buf bytes.Buffer
	require.NoError(t, ExportYAML(&buf, NewOverviewDocument(overview)))

	var doc OverviewDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "3.00", doc.Total)
	require.Len(t, doc.Accounts, 1)
	assert.Empty(t, doc.Accounts[0].Transactions)
	assert.NotContains(t, buf.String(), "transactions")
}
