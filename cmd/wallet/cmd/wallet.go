package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shunichi-ikebuchi/wallet/pkg/config"
	"github.com/shunichi-ikebuchi/wallet/pkg/db"
	"github.com/shunichi-ikebuchi/wallet/pkg/manager"
	"github.com/shunichi-ikebuchi/wallet/pkg/pathutil"
	"github.com/shunichi-ikebuchi/wallet/pkg/storage"
)

// wallet bundles what a command needs to run against the account files.
type wallet struct {
	manager *manager.Manager
	history *db.History
	conn    *db.Connection
}

func (w *wallet) Close() {
	if w.conn != nil {
		w.conn.Close()
	}
}

// loadConfig loads and validates configuration, honoring DEBUG from the environment.
func loadConfig() (*config.Config, *pathutil.PathResolver, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate([]string{"wallet", "root"}); err != nil {
		return nil, nil, err
	}
	if cfg.Debug && !debug {
		setupLogging(true)
	}

	pathResolver := pathutil.New(pathutil.Config{
		Root:         cfg.Wallet.Root,
		IndexPath:    cfg.Wallet.IndexPath,
		DatabasePath: cfg.History.DBPath,
	})
	slog.Debug("Using wallet", "root", pathResolver.GetRoot(), "index", pathResolver.GetIndexPath())
	return cfg, pathResolver, nil
}

// openWallet wires configuration, storage, history and the manager.
func openWallet() (*wallet, error) {
	cfg, pathResolver, err := loadConfig()
	if err != nil {
		return nil, err
	}

	w := &wallet{}
	var recorder manager.Recorder
	if cfg.History.Enabled {
		dbPath := pathResolver.GetDatabasePath()
		slog.Debug("Opening database", "path", dbPath)
		conn, err := db.Open(dbPath)
		if err != nil {
			return nil, err
		}
		w.conn = conn
		w.history = db.NewHistory(conn)
		recorder = w.history
		slog.Debug("Recording operations", "run_id", w.history.RunID())
	}

	repo := storage.NewFileSystemRepository(pathResolver)
	w.manager = manager.New(repo, recorder)
	return w, nil
}

// openHistory opens the history database on its own.
func openHistory() (*db.Connection, *db.History, error) {
	cfg, pathResolver, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil, fmt.Errorf("operation history is disabled (WALLET_HISTORY=false)")
	}

	conn, err := db.Open(pathResolver.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return conn, db.NewHistory(conn), nil
}

// parseAmount reads the optional AMOUNT argument. No argument yields nil.
func parseAmount(args []string) (*float64, error) {
	if len(args) == 0 {
		return nil, nil
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", args[0])
	}
	return &amount, nil
}
