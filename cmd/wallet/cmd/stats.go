package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/shunichi-ikebuchi/wallet/pkg/db"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display operation statistics",
	Long: `Display statistics about recorded operations.

Shows:
- Total number of recorded operations
- Number of operations per kind
- Last operation timestamp

Example:
  wallet stats`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	conn, history, err := openHistory()
	exitOnError(err, "failed to open history")
	defer conn.Close()

	// Get statistics
	stats, err := history.GetStats()
	exitOnError(err, "failed to get statistics")

	// Display statistics
	fmt.Println("\n=== Operation Statistics ===")
	fmt.Printf("Total operations: %d\n", stats.Total)

	operations := make([]string, 0, len(stats.ByOperation))
	for op := range stats.ByOperation {
		operations = append(operations, string(op))
	}
	sort.Strings(operations)
	for _, op := range operations {
		fmt.Printf("  %-10s %d\n", op+":", stats.ByOperation[db.Operation(op)])
	}

	if stats.LastRecorded.Valid {
		fmt.Printf("Last operation:   %s\n", stats.LastRecorded.String)
	} else {
		fmt.Printf("Last operation:   (never)\n")
	}

	fmt.Println()

	slog.Debug("Statistics displayed")
}
