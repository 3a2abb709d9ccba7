package manager

import (
	"errors"
	"fmt"

	"github.com/shunichi-ikebuchi/wallet/pkg/db"
	"github.com/shunichi-ikebuchi/wallet/pkg/ledger"
)

// ErrMissingOption is returned when a command lacks a required account or amount.
var ErrMissingOption = errors.New("missing option")

// Kind selects what a Command does.
type Kind int

const (
	KindNew Kind = iota + 1
	KindSpent
	KindGot
	KindSet
	KindShow
)

func (k Kind) String() string {
	switch k {
	case KindNew:
		return "new"
	case KindSpent:
		return "spent"
	case KindGot:
		return "got"
	case KindSet:
		return "set"
	case KindShow:
		return "show"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is one user request. Amount is nil when none was given; Every
// is zero for one-off transactions.
type Command struct {
	Kind        Kind
	Account     string
	Amount      *float64
	Description string
	CanOverdraw bool
	Every       ledger.Interval
}

// Result is what a command produced. Show without an account, or with an
// unknown one, yields an Overview; Unknown names the account that was not
// found.
type Result struct {
	Account  *ledger.Account
	Overview *Overview
	Unknown  string
}

// Dispatch runs a command. Mutations are saved before Dispatch returns;
// a rejected mutation leaves the account and its file untouched.
func (m *Manager) Dispatch(cmd Command) (*Result, error) {
	if err := m.ensureLoaded(); err != nil {
		return nil, err
	}

	switch cmd.Kind {
	case KindNew:
		if cmd.Account == "" {
			return nil, fmt.Errorf("%w: You need to specify an account name", ErrMissingOption)
		}
		account, err := m.Create(cmd.Account, cmd.Description, cmd.CanOverdraw)
		if err != nil {
			return nil, err
		}
		return &Result{Account: account}, nil

	case KindSpent, KindGot, KindSet:
		return m.mutate(cmd)

	case KindShow:
		if cmd.Account == "" {
			overview := m.Overview()
			return &Result{Overview: &overview}, nil
		}
		e, err := m.Find(cmd.Account)
		if err != nil {
			overview := m.Overview()
			return &Result{Overview: &overview, Unknown: cmd.Account}, nil
		}
		return &Result{Account: e.Account}, nil

	default:
		return nil, fmt.Errorf("unsupported command %s", cmd.Kind)
	}
}

func (m *Manager) mutate(cmd Command) (*Result, error) {
	if cmd.Amount == nil {
		return nil, fmt.Errorf("%w: You need to specify an amount", ErrMissingOption)
	}
	if cmd.Account == "" {
		return nil, fmt.Errorf("%w: You need to specify an account", ErrMissingOption)
	}

	e, err := m.Find(cmd.Account)
	if err != nil {
		return nil, err
	}

	var opts []ledger.EntryOption
	if cmd.Every != 0 {
		opts = append(opts, ledger.Every(cmd.Every))
	}

	var operation db.Operation
	switch cmd.Kind {
	case KindSpent:
		operation = db.OperationSpent
		err = e.Account.Spent(*cmd.Amount, cmd.Description, opts...)
	case KindGot:
		operation = db.OperationGot
		err = e.Account.Got(*cmd.Amount, cmd.Description, opts...)
	case KindSet:
		if cmd.Every != 0 {
			return nil, fmt.Errorf("set cannot recur")
		}
		operation = db.OperationSet
		err = e.Account.Set(*cmd.Amount, cmd.Description)
	}
	if err != nil {
		return nil, err
	}

	if err := m.commit(e, operation, cmd.Description); err != nil {
		return nil, err
	}
	return &Result{Account: e.Account}, nil
}
