package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Operation names a kind of history record.
type Operation string

const (
	OperationNew     Operation = "new"
	OperationSpent   Operation = "spent"
	OperationGot     Operation = "got"
	OperationSet     Operation = "set"
	OperationCatchUp Operation = "catch_up"
)

// Record represents one operation history row.
type Record struct {
	ID           int64
	RunID        string
	Account      string
	Operation    Operation
	Amount       float64
	BalanceAfter float64
	Description  string
	RecordedAt   time.Time
}

// History records account operations. All records written through one
// History share a run ID.
type History struct {
	conn  *Connection
	runID string
	now   func() time.Time
}

// NewHistory creates a new History instance with a fresh run ID.
func NewHistory(conn *Connection) *History {
	return &History{
		conn:  conn,
		runID: uuid.NewString(),
		now:   time.Now,
	}
}

// RunID returns the identifier stamped on every record of this run.
func (h *History) RunID() string {
	return h.runID
}

// Record stores an operation. RunID and RecordedAt are filled in when empty.
func (h *History) Record(record Record) error {
	if record.RunID == "" {
		record.RunID = h.runID
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = h.now()
	}

	query := `
		INSERT INTO operation_history (run_id, account, operation, amount, balance_after, description, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := h.conn.Exec(query,
		record.RunID,
		record.Account,
		string(record.Operation),
		record.Amount,
		record.BalanceAfter,
		record.Description,
		record.RecordedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record operation: %w", err)
	}

	return nil
}

// Recent returns up to limit records, newest first. An empty account
// returns records of every account.
func (h *History) Recent(account string, limit int) ([]Record, error) {
	query := `
		SELECT id, run_id, account, operation, amount, balance_after, description, recorded_at
		FROM operation_history
		WHERE (? = '' OR account = ?)
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := h.conn.Query(query, account, account, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent operations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var operation string

		if err := rows.Scan(
			&record.ID,
			&record.RunID,
			&record.Account,
			&operation,
			&record.Amount,
			&record.BalanceAfter,
			&record.Description,
			&record.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}

		record.Operation = Operation(operation)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read operations: %w", err)
	}

	return records, nil
}

// Stats represents operation history statistics.
type Stats struct {
	Total        int
	ByOperation  map[Operation]int
	LastRecorded sql.NullString
}

// GetStats retrieves operation counts.
func (h *History) GetStats() (*Stats, error) {
	stats := Stats{ByOperation: make(map[Operation]int)}

	rows, err := h.conn.Query(`SELECT operation, COUNT(*) FROM operation_history GROUP BY operation`)
	if err != nil {
		return nil, fmt.Errorf("failed to count operations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var operation string
		var count int
		if err := rows.Scan(&operation, &count); err != nil {
			return nil, fmt.Errorf("failed to scan operation count: %w", err)
		}
		stats.ByOperation[Operation(operation)] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read operation counts: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MAX(recorded_at) FROM operation_history`).Scan(&stats.LastRecorded)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last operation time: %w", err)
	}

	return &stats, nil
}
