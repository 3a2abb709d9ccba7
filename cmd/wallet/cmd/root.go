// Package cmd provides CLI commands for wallet.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Track personal account balances from the command line",
	Long: `wallet keeps one plain-text ledger file per account and tracks
income, expenses and balances.

It supports:
- Accounts that may or may not be overdrawn
- Recurring transactions (Daily, Weekly, Biweekly, Monthly) that are
  caught up automatically whenever an account is loaded
- An overview of all balances
- An operation history in SQLite

Example:
  wallet new -a checking -d "Everyday spending"
  wallet got 1200 -a checking -d Salary
  wallet spent 45.90 -a checking -d Rent --every Monthly
  wallet show`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(debug)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(spentCmd)
	rootCmd.AddCommand(gotCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
}

func setupLogging(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
