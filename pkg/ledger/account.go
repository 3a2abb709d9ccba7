package ledger

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// tolerance absorbs float rounding when checking a balance against zero.
const tolerance = 1e-9

// Account is a named ledger. Its balance is always the sum of its
// transactions; it is never stored separately.
//
// An Account is not safe for concurrent use.
type Account struct {
	Name        string
	Description string
	CanOverdraw bool

	balance      float64
	transactions []Transaction
	synthesized  int
	clock        func() time.Time
}

// Option configures an Account.
type Option func(*Account)

// WithClock sets the clock used to date new transactions and to decide
// which recurring occurrences are due.
func WithClock(clock func() time.Time) Option {
	return func(a *Account) {
		a.clock = clock
	}
}

// EntryOption configures a transaction recorded through Spent or Got.
type EntryOption func(*Transaction)

// Every makes the recorded transaction a recurring template anchored at
// its own date.
func Every(interval Interval) EntryOption {
	return func(t *Transaction) {
		t.Interval = interval
		t.LastOccurrence = t.Date
	}
}

// New creates an empty account.
func New(name, description string, canOverdraw bool, opts ...Option) *Account {
	description = strings.TrimSpace(singleLine(description))
	if description == "" {
		description = DefaultDescription
	}
	a := &Account{
		Name:        name,
		Description: description,
		CanOverdraw: canOverdraw,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Balance returns the sum of all transactions.
func (a *Account) Balance() float64 {
	return a.balance
}

// Transactions returns a copy of the ledger in entry order.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Synthesized returns how many occurrences were materialized by catch-up
// since the account was loaded.
func (a *Account) Synthesized() int {
	return a.synthesized
}

// Spent records an expense dated now. The amount is always stored as
// negative. Unless the account may be overdrawn, an expense that would
// take the balance below zero fails with ErrOverdrawDenied and leaves the
// ledger unchanged.
func (a *Account) Spent(amount float64, description string, opts ...EntryOption) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	amount = -math.Abs(amount)
	if err := a.checkOverdraw(amount); err != nil {
		return err
	}
	a.record(amount, description, opts)
	return nil
}

// Got records income dated now. The amount is always stored as positive.
func (a *Account) Got(amount float64, description string, opts ...EntryOption) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	a.record(math.Abs(amount), description, opts)
	return nil
}

// Set records one adjusting transaction so that the balance becomes
// amount. A negative target on an account that may not be overdrawn
// fails with ErrOverdrawDenied.
func (a *Account) Set(amount float64, description string) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	adjustment := amount - a.balance
	if adjustment < 0 {
		if err := a.checkOverdraw(adjustment); err != nil {
			return err
		}
	}
	a.record(adjustment, description, nil)
	a.balance = amount
	return nil
}

// CatchUp materializes the due occurrences of every recurring template in
// the ledger and returns how many were added. They are appended in date
// order after the existing entries.
func (a *Account) CatchUp() int {
	now := a.clock()
	var added []Transaction
	for i := range a.transactions {
		added = append(added, CatchUp(&a.transactions[i], now)...)
	}
	slices.SortStableFunc(added, func(x, y Transaction) int {
		return x.Date.Compare(y.Date)
	})
	for _, t := range added {
		a.append(t)
	}
	a.synthesized += len(added)
	return len(added)
}

func (a *Account) checkOverdraw(amount float64) error {
	if a.CanOverdraw || a.balance+amount >= -tolerance {
		return nil
	}
	return fmt.Errorf("%w: account %q cannot be overdrawn (balance %s, change %s)",
		ErrOverdrawDenied, a.Name, FormatAmount(a.balance), FormatAmount(amount))
}

func (a *Account) record(amount float64, description string, opts []EntryOption) {
	t := NewTransaction(a.clock(), amount, description, 0, time.Time{})
	for _, opt := range opts {
		opt(&t)
	}
	a.append(t)
}

func (a *Account) append(t Transaction) {
	a.transactions = append(a.transactions, t)
	a.balance += t.Amount
}
