package ledger

import "fmt"

// Interval is the period of a recurring transaction.
type Interval int

const (
	Daily Interval = iota + 1
	Weekly
	Biweekly
	Monthly
)

var intervalCodes = map[Interval]string{
	Daily:    "Daily",
	Weekly:   "Weekly",
	Biweekly: "Biweekly",
	Monthly:  "Monthly",
}

// Code returns the persisted form of the interval.
func (i Interval) Code() string {
	if code, ok := intervalCodes[i]; ok {
		return code
	}
	return fmt.Sprintf("Interval(%d)", int(i))
}

// String implements fmt.Stringer.
func (i Interval) String() string {
	return i.Code()
}

// ParseInterval parses an interval code. Matching is exact and case-sensitive.
func ParseInterval(code string) (Interval, error) {
	for interval, c := range intervalCodes {
		if c == code {
			return interval, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidIntervalCode, code)
}
