// Package pathutil provides centralized path management for account files,
// the account index, and the history database.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AccountFileExt is the extension of account files.
const AccountFileExt = ".finance"

// PathResolver manages paths for account files, the index, and the database.
type PathResolver struct {
	root         string
	indexPath    string
	databasePath string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// Root is the directory holding account files (e.g., ~/.wallet)
	Root string
	// IndexPath is the file listing every known account file, one per line
	IndexPath string
	// DatabasePath is the path to the SQLite database file for operation history
	DatabasePath string
}

// New creates a new PathResolver with the given configuration.
// If IndexPath is empty, it defaults to {Root}/accounts
// If DatabasePath is empty, it defaults to {Root}/.history/history.db
func New(config Config) *PathResolver {
	indexPath := config.IndexPath
	if indexPath == "" {
		indexPath = filepath.Join(config.Root, "accounts")
	}

	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.Root, ".history", "history.db")
	}

	return &PathResolver{
		root:         config.Root,
		indexPath:    indexPath,
		databasePath: dbPath,
	}
}

// GetRoot returns the root directory.
func (p *PathResolver) GetRoot() string {
	return p.root
}

// GetIndexPath returns the account index file path.
func (p *PathResolver) GetIndexPath() string {
	return p.indexPath
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetAccountFilePath returns the file path for an account.
// Example: ~/.wallet/checking.finance
func (p *PathResolver) GetAccountFilePath(name string) (string, error) {
	if err := ValidateAccountName(name); err != nil {
		return "", err
	}
	return filepath.Join(p.root, name+AccountFileExt), nil
}

// ValidateAccountName checks that a name can be used both as a file name
// and in an account header.
func ValidateAccountName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("account name must not be empty")
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("account name %q must not start or end with spaces", name)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\;`+"\n\r") {
		return fmt.Errorf("invalid account name %q", name)
	}
	return nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
