// Package manager operates on the collection of accounts listed in the
// index: loading, lookup, overview totals, and command dispatch.
package manager

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shunichi-ikebuchi/wallet/pkg/db"
	"github.com/shunichi-ikebuchi/wallet/pkg/ledger"
	"github.com/shunichi-ikebuchi/wallet/pkg/storage"
)

// ErrUnknownAccount is returned when no loaded account has the requested name.
var ErrUnknownAccount = errors.New("unknown account")

// Recorder receives every committed operation. *db.History implements it.
type Recorder interface {
	Record(record db.Record) error
}

// Entry is a loaded account together with the file it was loaded from.
type Entry struct {
	Path    string
	Account *ledger.Account
}

// Manager holds every account listed in the index. Within one run it is
// the only writer of those files: load happens first, then mutations,
// then saves.
type Manager struct {
	repo     storage.Repository
	recorder Recorder
	options  []ledger.Option

	entries []*Entry
	loaded  bool
}

// New creates a Manager. recorder may be nil to disable history. The
// options are applied to accounts created through the manager.
func New(repo storage.Repository, recorder Recorder, options ...ledger.Option) *Manager {
	return &Manager{
		repo:     repo,
		recorder: recorder,
		options:  options,
	}
}

// LoadAll loads every account listed in the index. The first failure
// aborts the load.
func (m *Manager) LoadAll() error {
	paths, err := m.repo.Paths()
	if err != nil {
		return fmt.Errorf("failed to read account index: %w", err)
	}

	entries := make([]*Entry, 0, len(paths))
	for _, path := range paths {
		account, err := m.repo.Load(path)
		if err != nil {
			return err
		}
		entries = append(entries, &Entry{Path: path, Account: account})
	}

	m.entries = entries
	m.loaded = true
	slog.Debug("Loaded accounts", "count", len(entries))
	return nil
}

// Accounts returns the loaded accounts in index order.
func (m *Manager) Accounts() []*ledger.Account {
	accounts := make([]*ledger.Account, 0, len(m.entries))
	for _, e := range m.entries {
		accounts = append(accounts, e.Account)
	}
	return accounts
}

// Find returns the loaded account with the given name.
func (m *Manager) Find(name string) (*Entry, error) {
	for _, e := range m.entries {
		if e.Account.Name == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, name)
}

// Create makes a new, empty account and registers it in the index.
func (m *Manager) Create(name, description string, canOverdraw bool) (*ledger.Account, error) {
	if err := m.ensureLoaded(); err != nil {
		return nil, err
	}
	if _, err := m.Find(name); err == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrAccountExists, name)
	}

	account := ledger.New(name, description, canOverdraw, m.options...)
	path, err := m.repo.Create(account)
	if err != nil {
		return nil, err
	}

	m.entries = append(m.entries, &Entry{Path: path, Account: account})
	m.record(db.Record{
		Account:     name,
		Operation:   db.OperationNew,
		Description: account.Description,
	})
	return account, nil
}

// AccountSummary is one line of the overview.
type AccountSummary struct {
	Name        string
	Description string
	CanOverdraw bool
	Balance     float64
}

// Overview lists every account's balance and their sum.
type Overview struct {
	Accounts []AccountSummary
	Total    float64
}

// Overview summarizes the loaded accounts.
func (m *Manager) Overview() Overview {
	overview := Overview{Accounts: make([]AccountSummary, 0, len(m.entries))}
	for _, e := range m.entries {
		overview.Accounts = append(overview.Accounts, AccountSummary{
			Name:        e.Account.Name,
			Description: e.Account.Description,
			CanOverdraw: e.Account.CanOverdraw,
			Balance:     e.Account.Balance(),
		})
		overview.Total += e.Account.Balance()
	}
	return overview
}

// commit saves an account after a mutation and records the operation,
// preceded by a catch-up record when loading materialized occurrences.
func (m *Manager) commit(e *Entry, operation db.Operation, description string) error {
	if err := m.repo.Save(e.Path, e.Account); err != nil {
		return err
	}

	account := e.Account
	txns := account.Transactions()
	if n := account.Synthesized(); n > 0 {
		m.record(db.Record{
			Account:      account.Name,
			Operation:    db.OperationCatchUp,
			Amount:       float64(n),
			BalanceAfter: account.Balance() - txns[len(txns)-1].Amount,
			Description:  fmt.Sprintf("%d recurring occurrences", n),
		})
	}
	m.record(db.Record{
		Account:      account.Name,
		Operation:    operation,
		Amount:       txns[len(txns)-1].Amount,
		BalanceAfter: account.Balance(),
		Description:  description,
	})
	return nil
}

// record writes to the history. The account file is the source of truth,
// so a history failure is logged and not returned.
func (m *Manager) record(record db.Record) {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Record(record); err != nil {
		slog.Warn("Failed to record operation", "account", record.Account, "operation", record.Operation, "error", err)
	}
}

func (m *Manager) ensureLoaded() error {
	if m.loaded {
		return nil
	}
	return m.LoadAll()
}
