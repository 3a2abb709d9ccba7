package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func sum(txns []Transaction) float64 {
	total := 0.0
	for _, t := range txns {
		total += t.Amount
	}
	return total
}

func TestNewAccount(t *testing.T) {
	a := New("Checking", "", false)

	assert.Equal(t, "Checking", a.Name)
	assert.Equal(t, DefaultDescription, a.Description)
	assert.Zero(t, a.Balance())
	assert.Empty(t, a.Transactions())
}

func TestSpentDeniesOverdraw(t *testing.T) {
	a := New("Checking", "Main account", false, fixedClock(now))

	err := a.Spent(10.0, "x")

	require.ErrorIs(t, err, ErrOverdrawDenied)
	assert.Contains(t, err.Error(), `"Checking"`)
	assert.Empty(t, a.Transactions())
	assert.Zero(t, a.Balance())
}

func TestSpentAllowsOverdrawWhenPermitted(t *testing.T) {
	a := New("Credit", "Card", true, fixedClock(now))

	require.NoError(t, a.Spent(10.0, "x"))

	assert.InDelta(t, -10.0, a.Balance(), 1e-9)
	require.Len(t, a.Transactions(), 1)
	txn := a.Transactions()[0]
	assert.Equal(t, now, txn.Date)
	assert.False(t, txn.IsRecurring())
}

func TestSpentStoresNegativeAmounts(t *testing.T) {
	a := New("Cash", "", true, fixedClock(now))

	require.NoError(t, a.Spent(4, "positive input"))
	require.NoError(t, a.Spent(-6, "negative input"))

	txns := a.Transactions()
	assert.InDelta(t, -4.0, txns[0].Amount, 1e-9)
	assert.InDelta(t, -6.0, txns[1].Amount, 1e-9)
	assert.InDelta(t, -10.0, a.Balance(), 1e-9)
}

func TestSpentDownToZero(t *testing.T) {
	a := New("Cash", "", false, fixedClock(now))
	require.NoError(t, a.Got(0.3, "a"))
	require.NoError(t, a.Spent(0.1, "b"))

	// 0.3 - 0.1 - 0.2 is slightly below zero in binary floating point
	require.NoError(t, a.Spent(0.2, "exact"))
	assert.InDelta(t, 0.0, a.Balance(), 1e-9)

	assert.ErrorIs(t, a.Spent(0.01, "one cent too many"), ErrOverdrawDenied)
	assert.Len(t, a.Transactions(), 3)
}

func TestGotStoresPositiveAmounts(t *testing.T) {
	a := New("Savings", "", false, fixedClock(now))

	require.NoError(t, a.Got(100, "salary"))
	require.NoError(t, a.Got(-25, "refund"))

	assert.InDelta(t, 125.0, a.Balance(), 1e-9)
	assert.InDelta(t, 25.0, a.Transactions()[1].Amount, 1e-9)
}

func TestInvalidAmountsAreRejected(t *testing.T) {
	a := New("Savings", "", true, fixedClock(now))

	assert.ErrorIs(t, a.Got(math.NaN(), "x"), ErrInvalidAmount)
	assert.ErrorIs(t, a.Spent(math.Inf(1), "x"), ErrInvalidAmount)
	assert.ErrorIs(t, a.Set(math.NaN(), "x"), ErrInvalidAmount)
	assert.Empty(t, a.Transactions())
}

func TestSet(t *testing.T) {
	tests := []struct {
		name        string
		canOverdraw bool
		start       float64
		target      float64
		adjustment  float64
	}{
		{"raise", false, 20, 75.5, 55.5},
		{"lower", false, 20, 5, -15},
		{"to zero", false, 20, 0, -20},
		{"unchanged", false, 20, 20, 0},
		{"negative with overdraw", true, 20, -30, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New("Checking", "", tt.canOverdraw, fixedClock(now))
			require.NoError(t, a.Got(tt.start, "opening"))

			require.NoError(t, a.Set(tt.target, "reconcile"))

			assert.Equal(t, tt.target, a.Balance())
			txns := a.Transactions()
			require.Len(t, txns, 2)
			assert.InDelta(t, tt.adjustment, txns[1].Amount, 1e-9)
			assert.InDelta(t, sum(txns), a.Balance(), 1e-9)
		})
	}
}

func TestSetDeniesNegativeTargetWithoutOverdraw(t *testing.T) {
	a := New("Checking", "", false, fixedClock(now))
	require.NoError(t, a.Got(20, "opening"))

	err := a.Set(-1, "too far")

	assert.ErrorIs(t, err, ErrOverdrawDenied)
	assert.Len(t, a.Transactions(), 1)
	assert.InDelta(t, 20.0, a.Balance(), 1e-9)
}

func TestEveryRecordsTemplate(t *testing.T) {
	a := New("Checking", "", false, fixedClock(now))

	require.NoError(t, a.Got(2000, "Salary", Every(Monthly)))

	txn := a.Transactions()[0]
	assert.True(t, txn.IsRecurring())
	assert.Equal(t, Monthly, txn.Interval)
	assert.Equal(t, now, txn.LastOccurrence)
}

func TestAccountCatchUp(t *testing.T) {
	clock := now
	a := New("Checking", "", true, WithClock(func() time.Time { return clock }))
	require.NoError(t, a.Spent(3, "Bus", Every(Daily)))

	assert.Zero(t, a.CatchUp())

	clock = now.AddDate(0, 0, 4)
	assert.Equal(t, 3, a.CatchUp())
	assert.Equal(t, 3, a.Synthesized())
	assert.Len(t, a.Transactions(), 4)
	assert.InDelta(t, -12.0, a.Balance(), 1e-9)
	assert.InDelta(t, sum(a.Transactions()), a.Balance(), 1e-9)

	assert.Zero(t, a.CatchUp(), "same day catch-up adds nothing")

	clock = now.AddDate(0, 0, 6)
	assert.Equal(t, 2, a.CatchUp())
	dates := make([]time.Time, 0, 2)
	for _, txn := range a.Transactions()[4:] {
		dates = append(dates, txn.Date)
	}
	assert.Equal(t, []time.Time{now.AddDate(0, 0, 4), now.AddDate(0, 0, 5)}, dates)
}

func TestNewAccountNormalizesDescription(t *testing.T) {
	a := New("Joint", "  Shared; household\n", true)

	assert.Equal(t, "Shared; household", a.Description)
}

func TestTransactionsReturnsCopy(t *testing.T) {
	a := New("Checking", "", true, fixedClock(now))
	require.NoError(t, a.Got(1, "x"))

	txns := a.Transactions()
	txns[0].Amount = 1000

	assert.InDelta(t, 1.0, a.Transactions()[0].Amount, 1e-9)
}
