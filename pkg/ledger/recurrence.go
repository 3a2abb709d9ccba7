package ledger

import "time"

// CatchUp materializes every occurrence of a recurring template that falls
// on a calendar day strictly between its anchor and now, oldest first.
// The template's anchor is advanced to the first occurrence that is not
// before today; the series resumes from the latest materialized
// occurrence, so an occurrence that was due today is emitted on a later
// day. Dates are compared as UTC calendar days.
//
// Calling CatchUp again on the same day returns nothing; on a later day it
// returns the occurrences that became due in between.
func CatchUp(t *Transaction, now time.Time) []Transaction {
	if !t.IsRecurring() {
		return nil
	}

	today := civil(now)
	if !civil(t.LastOccurrence).Before(today) {
		return nil
	}

	var occurrences []Transaction
	last := t.MaterializedThrough()
	next := last.Add(step(last, t.Interval))
	for civil(next).Before(today) {
		occurrences = append(occurrences, NewTransaction(next, t.Amount, t.Description, 0, time.Time{}))
		last = next
		next = last.Add(step(last, t.Interval))
	}

	t.materialized = last
	t.LastOccurrence = next
	return occurrences
}

// step is the distance from an occurrence at from to the one after it.
func step(from time.Time, every Interval) time.Duration {
	switch every {
	case Daily:
		return 24 * time.Hour
	case Weekly:
		return 7 * 24 * time.Hour
	case Biweekly:
		return 14 * 24 * time.Hour
	case Monthly:
		return untilNextMonth(from)
	default:
		// the catch-up loop needs a positive step
		return 24 * time.Hour
	}
}

// untilNextMonth returns the time until the same day of the following
// month. An anchor on the last day of its month moves to the last day of
// the next month, and days the next month does not have are clamped to
// its last day. Month lengths follow the calendar, leap Februaries included.
func untilNextMonth(from time.Time) time.Duration {
	from = from.UTC()
	year, month, day := from.Date()

	nextYear, nextMonth := year, month+1
	if nextMonth > time.December {
		nextMonth = time.January
		nextYear++
	}

	lastDay := daysIn(nextYear, nextMonth)
	if day == daysIn(year, month) || day > lastDay {
		day = lastDay
	}

	next := time.Date(nextYear, nextMonth, day,
		from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), time.UTC)
	return next.Sub(from)
}

// daysIn returns the number of days in the given month. February has 29
// days in leap years.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// civil truncates t to midnight of its UTC calendar day.
func civil(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
