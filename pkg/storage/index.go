package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shunichi-ikebuchi/wallet/pkg/ledger"
)

// Index is the file listing every known account file, one path per line.
type Index struct {
	path string
}

// NewIndex creates an Index backed by the file at path.
func NewIndex(path string) *Index {
	return &Index{path: path}
}

// Paths returns the registered account file paths in index order.
// A missing index file means no accounts exist yet.
func (i *Index) Paths() ([]string, error) {
	f, err := os.Open(i.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open index: %w", ledger.ErrStorageFailure, err)
	}
	defer f.Close()

	paths := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read index: %w", ledger.ErrStorageFailure, err)
	}

	return paths, nil
}

// Contains reports whether path is registered.
func (i *Index) Contains(path string) (bool, error) {
	paths, err := i.Paths()
	if err != nil {
		return false, err
	}
	for _, p := range paths {
		if p == path {
			return true, nil
		}
	}
	return false, nil
}

// Append registers path and syncs the index to disk.
func (i *Index) Append(path string) error {
	if err := os.MkdirAll(filepath.Dir(i.path), 0755); err != nil {
		return fmt.Errorf("%w: failed to create index directory: %w", ledger.ErrStorageFailure, err)
	}

	f, err := os.OpenFile(i.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: failed to open index for appending: %w", ledger.ErrStorageFailure, err)
	}
	defer f.Close()

	if _, err := f.WriteString(path + "\n"); err != nil {
		return fmt.Errorf("%w: failed to write index: %w", ledger.ErrStorageFailure, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: failed to sync index: %w", ledger.ErrStorageFailure, err)
	}

	return nil
}
