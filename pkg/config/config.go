// Package config provides configuration management for the wallet CLI.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Wallet  WalletConfig
	History HistoryConfig
	Debug   bool
}

// WalletConfig represents where accounts are stored.
type WalletConfig struct {
	Root      string
	IndexPath string
}

// HistoryConfig represents the operation history database.
type HistoryConfig struct {
	Enabled bool
	DBPath  string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	historyEnabled, err := parseBoolEnv("WALLET_HISTORY", true)
	if err != nil {
		return nil, err
	}

	debug, err := parseBoolEnv("DEBUG", false)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Wallet: WalletConfig{
			Root:      getEnvOrDefault("WALLET_ROOT", defaultRoot()),
			IndexPath: os.Getenv("WALLET_INDEX"),
		},
		History: HistoryConfig{
			Enabled: historyEnabled,
			DBPath:  os.Getenv("WALLET_DB_PATH"),
		},
		Debug: debug,
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "wallet":
			switch path[1] {
			case "root":
				value = c.Wallet.Root
			case "indexPath":
				value = c.Wallet.IndexPath
			}
		case "history":
			switch path[1] {
			case "dbPath":
				value = c.History.DBPath
			}
		}

		if value == "" {
			missing = append(missing, joinPath(path))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// defaultRoot returns ~/.wallet, or .wallet when there is no home directory.
func defaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wallet"
	}
	return filepath.Join(home, ".wallet")
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBoolEnv parses a boolean from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}

	return parsed, nil
}

// joinPath joins a path slice into a dot-separated string.
func joinPath(path []string) string {
	result := ""
	for i, p := range path {
		if i > 0 {
			result += "."
		}
		result += p
	}
	return result
}
