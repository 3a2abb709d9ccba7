package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDescription is used for transactions and accounts without a description.
const DefaultDescription = "No description"

// dateLayouts are tried in order when parsing a stored date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Transaction is a single ledger entry. Negative amounts are expenses,
// positive amounts income.
//
// A transaction with a non-zero Interval is a recurring template. Its
// LastOccurrence is the anchor. A recorded or loaded template is anchored at
// the latest date through which the series has been materialized; CatchUp
// moves the anchor on to the first occurrence not before today and keeps
// the materialized date, which is what Serialize stores. Interval and
// LastOccurrence are set together or not at all.
type Transaction struct {
	Date           time.Time
	Amount         float64
	Description    string
	Interval       Interval
	LastOccurrence time.Time

	// latest materialized occurrence once CatchUp has run, zero before
	materialized time.Time
}

// NewTransaction builds a transaction. It normalizes the dates to UTC and
// the description to the single trimmed field it is stored as, filling in
// the default description; callers keep Interval and LastOccurrence paired.
func NewTransaction(date time.Time, amount float64, description string, interval Interval, lastOccurrence time.Time) Transaction {
	description = strings.TrimSpace(sanitize(description))
	if description == "" {
		description = DefaultDescription
	}
	t := Transaction{
		Date:        date.UTC(),
		Amount:      amount,
		Description: description,
		Interval:    interval,
	}
	if !lastOccurrence.IsZero() {
		t.LastOccurrence = lastOccurrence.UTC()
	}
	return t
}

// IsRecurring reports whether the transaction is a recurring template.
func (t Transaction) IsRecurring() bool {
	return t.Interval != 0 && !t.LastOccurrence.IsZero()
}

// MaterializedThrough returns the date of the latest occurrence of a
// recurring template that is already part of the ledger. It is zero for
// ordinary transactions.
func (t Transaction) MaterializedThrough() time.Time {
	if !t.materialized.IsZero() {
		return t.materialized
	}
	return t.LastOccurrence
}

// String formats the transaction as "<amount> @ <YYYY-MM-DD>: <description>".
func (t Transaction) String() string {
	return fmt.Sprintf("%s @ %s: %s", FormatAmount(t.Amount), t.Date.UTC().Format("2006-01-02"), t.Description)
}

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// ParseTransaction parses a stored transaction line:
//
//	<date>;<amount>;<description>[;<interval code>[;<anchor>]]
//
// Lines written by older versions may carry the interval code as a
// ":<code>" suffix of the description instead of a fourth field.
// A template without a stored anchor is anchored at its own date.
func ParseTransaction(line string) (Transaction, error) {
	fields := strings.Split(line, ";")
	if len(fields) < 3 {
		return Transaction{}, fmt.Errorf("%w: transaction needs at least 3 fields, got %d", ErrMalformedRecord, len(fields))
	}

	date, err := parseDate(fields[0])
	if err != nil {
		return Transaction{}, err
	}

	amount, err := parseAmount(fields[1])
	if err != nil {
		return Transaction{}, err
	}

	description := strings.TrimSpace(fields[2])

	var interval Interval
	anchor := date
	switch {
	case len(fields) > 3 && strings.TrimSpace(fields[3]) != "":
		interval, err = ParseInterval(strings.TrimSpace(fields[3]))
		if err != nil {
			return Transaction{}, err
		}
		if len(fields) > 4 && strings.TrimSpace(fields[4]) != "" {
			anchor, err = parseDate(fields[4])
			if err != nil {
				return Transaction{}, err
			}
		}
	case len(fields) == 3:
		if legacy, rest, ok := legacyInterval(description); ok {
			interval = legacy
			description = rest
		}
	}

	if interval == 0 {
		anchor = time.Time{}
	}
	return NewTransaction(date, amount, description, interval, anchor), nil
}

// Serialize renders the transaction in the form read by ParseTransaction.
func (t Transaction) Serialize() string {
	var sb strings.Builder
	sb.WriteString(t.Date.UTC().Format(time.RFC3339Nano))
	sb.WriteString(";")
	sb.WriteString(strconv.FormatFloat(t.Amount, 'g', -1, 64))
	sb.WriteString(";")
	sb.WriteString(sanitize(t.Description))
	if t.IsRecurring() {
		sb.WriteString(";")
		sb.WriteString(t.Interval.Code())
		sb.WriteString(";")
		sb.WriteString(t.MaterializedThrough().UTC().Format(time.RFC3339Nano))
	} else if _, _, ok := legacyInterval(t.Description); ok {
		// an empty fourth field stops the suffix being read as an interval
		sb.WriteString(";")
	}
	return sb.String()
}

// legacyInterval splits a ":<code>" interval suffix off a description.
func legacyInterval(description string) (Interval, string, bool) {
	i := strings.LastIndex(description, ":")
	if i < 0 {
		return 0, description, false
	}
	interval, err := ParseInterval(description[i+1:])
	if err != nil {
		return 0, description, false
	}
	return interval, strings.TrimSpace(description[:i]), true
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}

func checkAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return nil
}

// sanitize keeps free text on a single field of a single line.
func sanitize(s string) string {
	return strings.ReplaceAll(singleLine(s), ";", ",")
}

// singleLine keeps free text on a single line.
func singleLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
