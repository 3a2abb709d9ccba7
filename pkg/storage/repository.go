// Package storage persists accounts as line-oriented text files and keeps
// the index file that lists them.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shunichi-ikebuchi/wallet/pkg/ledger"
	"github.com/shunichi-ikebuchi/wallet/pkg/pathutil"
)

// ErrAccountExists is returned when creating an account whose file or index
// entry already exists.
var ErrAccountExists = errors.New("account already exists")

// Repository defines the interface for account file operations.
type Repository interface {
	// Load reads the account stored at path, catching up recurring transactions
	Load(path string) (*ledger.Account, error)

	// Save replaces the file at path with the account's current ledger
	Save(path string, account *ledger.Account) error

	// Create writes a new account file and registers it in the index
	Create(account *ledger.Account) (string, error)

	// Paths lists the account files registered in the index
	Paths() ([]string, error)
}

// FileSystemRepository is a file system implementation of Repository.
// It assumes a single writer: concurrent processes saving the same account
// race and the last save wins.
type FileSystemRepository struct {
	pathResolver *pathutil.PathResolver
	index        *Index
	options      []ledger.Option
}

var _ Repository = (*FileSystemRepository)(nil)

// NewFileSystemRepository creates a new FileSystemRepository. The options
// are applied to every loaded account.
func NewFileSystemRepository(pathResolver *pathutil.PathResolver, options ...ledger.Option) *FileSystemRepository {
	return &FileSystemRepository{
		pathResolver: pathResolver,
		index:        NewIndex(pathResolver.GetIndexPath()),
		options:      options,
	}
}

// Load reads the account stored at path.
func (r *FileSystemRepository) Load(path string) (*ledger.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open account file: %w", ledger.ErrStorageFailure, err)
	}
	defer f.Close()

	account, err := ledger.Decode(f, r.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load account file %s: %w", path, err)
	}

	slog.Debug("Loaded account",
		"account", account.Name,
		"path", path,
		"transactions", len(account.Transactions()),
		"synthesized", account.Synthesized(),
	)
	return account, nil
}

// Save replaces the file at path with the account's ledger. The new content
// is written to a temporary file in the same directory and renamed over the
// old one, so a failed save leaves the previous file in place.
func (r *FileSystemRepository) Save(path string, account *ledger.Account) error {
	if err := r.pathResolver.EnsureParentDir(path); err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrStorageFailure, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temporary file: %w", ledger.ErrStorageFailure, err)
	}
	tmpPath := tmp.Name()

	if err := writeAndClose(tmp, account); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: failed to replace account file: %w", ledger.ErrStorageFailure, err)
	}

	slog.Debug("Saved account", "account", account.Name, "path", path, "transactions", len(account.Transactions()))
	return nil
}

// Create writes a new, empty account file and appends its path to the
// index. The account exists once both writes have reached the disk.
func (r *FileSystemRepository) Create(account *ledger.Account) (string, error) {
	path, err := r.pathResolver.GetAccountFilePath(account.Name)
	if err != nil {
		return "", err
	}

	registered, err := r.index.Contains(path)
	if err != nil {
		return "", err
	}
	if registered || r.pathResolver.FileExists(path) {
		return "", fmt.Errorf("%w: %s", ErrAccountExists, account.Name)
	}

	if err := r.Save(path, account); err != nil {
		return "", err
	}

	if err := r.index.Append(path); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	slog.Info("Created account", "account", account.Name, "path", path)
	return path, nil
}

// Paths lists the account files registered in the index.
func (r *FileSystemRepository) Paths() ([]string, error) {
	return r.index.Paths()
}

func writeAndClose(f *os.File, account *ledger.Account) error {
	if err := account.Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: failed to sync account file: %w", ledger.ErrStorageFailure, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close account file: %w", ledger.ErrStorageFailure, err)
	}
	return nil
}
