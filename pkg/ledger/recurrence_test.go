package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func template(every Interval, anchor time.Time) Transaction {
	return NewTransaction(anchor, -1, "Test recurrence", every, anchor)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestCatchUp(t *testing.T) {
	tests := []struct {
		name     string
		every    Interval
		anchor   time.Time
		expected int
		anchorTo time.Time
	}{
		{"daily a day ago", Daily, now.AddDate(0, 0, -1), 0, now},
		{"daily a week ago", Daily, now.AddDate(0, 0, -7), 6, now},
		{"weekly a week ago", Weekly, now.AddDate(0, 0, -7), 0, now},
		{"weekly three weeks ago", Weekly, now.AddDate(0, 0, -21), 2, now},
		{"biweekly a week ago", Biweekly, now.AddDate(0, 0, -7), 0, now.AddDate(0, 0, 7)},
		{"biweekly thirty days ago", Biweekly, now.AddDate(0, 0, -30), 2, now.AddDate(0, 0, 12)},
		{"daily earlier today", Daily, now.Add(-6 * time.Hour), 0, now.Add(-6 * time.Hour)},
		{"anchor in the future", Weekly, now.AddDate(0, 0, 3), 0, now.AddDate(0, 0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := template(tt.every, tt.anchor)

			occurrences := CatchUp(&txn, now)

			assert.Len(t, occurrences, tt.expected)
			assert.Equal(t, tt.anchorTo, txn.LastOccurrence)
			assert.Equal(t, tt.anchor, txn.Date, "template date must not move")
		})
	}
}

func TestCatchUpDailyOccurrenceDates(t *testing.T) {
	txn := template(Daily, now.AddDate(0, 0, -7))

	occurrences := CatchUp(&txn, now)
	require.Len(t, occurrences, 6)

	for i, o := range occurrences {
		assert.Equal(t, now.AddDate(0, 0, i-6), o.Date)
		assert.InDelta(t, -1.0, o.Amount, 1e-9)
		assert.Equal(t, "Test recurrence", o.Description)
		assert.False(t, o.IsRecurring(), "occurrences are ordinary entries")
	}
}

func TestCatchUpIsIdempotentWithinADay(t *testing.T) {
	txn := template(Daily, now.AddDate(0, 0, -4))

	first := CatchUp(&txn, now)
	anchor := txn.LastOccurrence
	second := CatchUp(&txn, now.Add(11*time.Hour))

	assert.Len(t, first, 3)
	assert.Empty(t, second)
	assert.Equal(t, anchor, txn.LastOccurrence)
}

func TestCatchUpContinuesOnALaterDay(t *testing.T) {
	txn := template(Daily, now.AddDate(0, 0, -4))

	first := CatchUp(&txn, now)
	later := CatchUp(&txn, now.AddDate(0, 0, 3))

	assert.Len(t, first, 3)
	require.Len(t, later, 3)
	assert.Equal(t, now, later[0].Date, "the occurrence due on the first day is not skipped")
	assert.Equal(t, now.AddDate(0, 0, 1), later[1].Date)
	assert.Equal(t, now.AddDate(0, 0, 2), later[2].Date)
	assert.Equal(t, now.AddDate(0, 0, 3), txn.LastOccurrence)
	assert.Equal(t, now.AddDate(0, 0, 2), txn.MaterializedThrough())
}

func TestCatchUpTracksMaterializedOccurrence(t *testing.T) {
	tests := []struct {
		name         string
		every        Interval
		anchor       time.Time
		materialized time.Time
	}{
		{"nothing due keeps the anchor", Daily, now.AddDate(0, 0, -1), now.AddDate(0, 0, -1)},
		{"daily catch-up", Daily, now.AddDate(0, 0, -7), now.AddDate(0, 0, -1)},
		{"weekly catch-up", Weekly, now.AddDate(0, 0, -21), now.AddDate(0, 0, -7)},
		{"monthly catch-up", Monthly, day(2026, time.July, 31).Add(12 * time.Hour), day(2026, time.September, 30).Add(12 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := template(tt.every, tt.anchor)
			assert.Equal(t, tt.anchor, txn.MaterializedThrough())

			CatchUp(&txn, now)

			assert.Equal(t, tt.materialized, txn.MaterializedThrough())
			assert.False(t, txn.LastOccurrence.Before(civil(now)))
		})
	}
}

func TestCatchUpMonthlyResumesOnALaterDay(t *testing.T) {
	txn := template(Monthly, day(2025, time.January, 31))

	first := CatchUp(&txn, day(2025, time.March, 31).Add(9*time.Hour))
	later := CatchUp(&txn, day(2025, time.May, 1).Add(9*time.Hour))

	require.Len(t, first, 1)
	assert.Equal(t, day(2025, time.February, 28), first[0].Date)
	require.Len(t, later, 2)
	assert.Equal(t, day(2025, time.March, 31), later[0].Date)
	assert.Equal(t, day(2025, time.April, 30), later[1].Date)
}

func TestMaterializedThroughOfOrdinaryTransaction(t *testing.T) {
	txn := NewTransaction(now, -5, "One-off", 0, time.Time{})

	assert.True(t, txn.MaterializedThrough().IsZero())
}

func TestCatchUpLargeGap(t *testing.T) {
	anchor := now.AddDate(-5, 0, 0)
	txn := template(Daily, anchor)

	occurrences := CatchUp(&txn, now)

	days := int(civil(now).Sub(civil(anchor)).Hours() / 24)
	assert.Len(t, occurrences, days-1)
	assert.Equal(t, now, txn.LastOccurrence)
}

func TestCatchUpIgnoresOrdinaryTransactions(t *testing.T) {
	txn := NewTransaction(now.AddDate(-1, 0, 0), -5, "One-off", 0, time.Time{})

	assert.Nil(t, CatchUp(&txn, now))
	assert.True(t, txn.LastOccurrence.IsZero())
}

func TestCatchUpMonthly(t *testing.T) {
	tests := []struct {
		name     string
		anchor   time.Time
		today    time.Time
		expected []time.Time
		anchorTo time.Time
	}{
		{
			name:     "same day next month",
			anchor:   day(2025, time.January, 15),
			today:    day(2025, time.April, 1),
			expected: []time.Time{day(2025, time.February, 15), day(2025, time.March, 15)},
			anchorTo: day(2025, time.April, 15),
		},
		{
			name:     "end of month clamps to end of February",
			anchor:   day(2025, time.January, 31),
			today:    day(2025, time.March, 1),
			expected: []time.Time{day(2025, time.February, 28)},
			anchorTo: day(2025, time.March, 31),
		},
		{
			name:     "leap year February",
			anchor:   day(2024, time.January, 31),
			today:    day(2024, time.March, 1),
			expected: []time.Time{day(2024, time.February, 29)},
			anchorTo: day(2024, time.March, 31),
		},
		{
			name:     "day missing from next month",
			anchor:   day(2025, time.January, 30),
			today:    day(2025, time.March, 1),
			expected: []time.Time{day(2025, time.February, 28)},
			anchorTo: day(2025, time.March, 31),
		},
		{
			name:     "end of thirty day month",
			anchor:   day(2025, time.April, 30),
			today:    day(2025, time.June, 1),
			expected: []time.Time{day(2025, time.May, 31)},
			anchorTo: day(2025, time.June, 30),
		},
		{
			name:     "year rolls over",
			anchor:   day(2025, time.November, 10),
			today:    day(2026, time.January, 20),
			expected: []time.Time{day(2025, time.December, 10), day(2026, time.January, 10)},
			anchorTo: day(2026, time.February, 10),
		},
		{
			name:     "next occurrence is today",
			anchor:   day(2026, time.September, 15),
			today:    day(2026, time.October, 15),
			expected: nil,
			anchorTo: day(2026, time.October, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := template(Monthly, tt.anchor)

			occurrences := CatchUp(&txn, tt.today.Add(9*time.Hour))

			var dates []time.Time
			for _, o := range occurrences {
				dates = append(dates, o.Date)
			}
			assert.Equal(t, tt.expected, dates)
			assert.Equal(t, tt.anchorTo, txn.LastOccurrence)
		})
	}
}

func TestUntilNextMonthKeepsTimeOfDay(t *testing.T) {
	from := time.Date(2026, 3, 10, 17, 5, 0, 0, time.UTC)

	assert.Equal(t, 31*24*time.Hour, untilNextMonth(from))
}
