package house

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHouse() House {
	return House{
		ID:            "h1",
		Name:          "Main street",
		TotalCost:     300000,
		DownPayment:   60000,
		InterestRate:  4,
		LoanTermYears: 30,
		CreatedAt:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculateProgress(t *testing.T) {
	t.Run("no payments", func(t *testing.T) {
		p := CalculateProgress(sampleHouse(), nil)

		assert.Equal(t, 240000.0, p.LoanAmount)
		assert.Equal(t, 9600.0, p.InterestAmount)
		assert.Equal(t, 249600.0, p.TotalPayable)
		assert.Equal(t, 0.0, p.TotalPaid)
		assert.Equal(t, 249600.0, p.Remaining)
		assert.Equal(t, 0.0, p.ProgressPct)
	})

	t.Run("single payment", func(t *testing.T) {
		payments := []Payment{
			{ID: "p1", HouseID: "h1", Amount: 24960, PaidAt: time.Now()},
		}
		p := CalculateProgress(sampleHouse(), payments)

		assert.Equal(t, 24960.0, p.TotalPaid)
		assert.InDelta(t, 10.0, p.ProgressPct, 1e-9)
	})

	t.Run("payments of other houses ignored", func(t *testing.T) {
		payments := []Payment{
			{ID: "p1", HouseID: "h1", Amount: 1000},
			{ID: "p2", HouseID: "h2", Amount: 5000},
		}
		p := CalculateProgress(sampleHouse(), payments)

		assert.Equal(t, 1000.0, p.TotalPaid)
	})

	t.Run("zero payable never yields NaN", func(t *testing.T) {
		h := House{ID: "h2", TotalCost: 100000, DownPayment: 100000}
		p := CalculateProgress(h, []Payment{{ID: "p1", HouseID: "h2", Amount: 50}})

		assert.Equal(t, 0.0, p.TotalPayable)
		assert.Equal(t, 0.0, p.ProgressPct)
	})

	t.Run("pct stays within bounds while paid below payable", func(t *testing.T) {
		h := sampleHouse()
		for _, amount := range []float64{0, 1, 124800, 249599.99, 249600} {
			p := CalculateProgress(h, []Payment{{ID: "p", HouseID: h.ID, Amount: amount}})
			assert.GreaterOrEqual(t, p.ProgressPct, 0.0)
			assert.LessOrEqual(t, p.ProgressPct, 100.0)
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty snapshot", func(t *testing.T) {
		s := Summarize(nil, nil)
		assert.Equal(t, Summary{}, s)
	})

	t.Run("two houses", func(t *testing.T) {
		houses := []House{
			sampleHouse(),
			{ID: "h2", TotalCost: 100000, DownPayment: 20000, InterestRate: 5},
		}
		payments := []Payment{
			{ID: "p1", HouseID: "h1", Amount: 24960},
			{ID: "p2", HouseID: "h2", Amount: 8400},
			{ID: "p3", HouseID: "gone", Amount: 999999},
		}

		s := Summarize(houses, payments)

		require.Equal(t, 2, s.Houses)
		// The orphaned p3 must not be counted.
		require.Equal(t, 2, s.Payments)
		assert.Equal(t, 249600.0+84000.0, s.TotalPayable)
		assert.Equal(t, 33360.0, s.TotalPaid)
		assert.Equal(t, s.TotalPayable-s.TotalPaid, s.Remaining)
	})
}

func TestSortPayments(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	payments := []Payment{
		{ID: "b", HouseID: "h1", PaidAt: ts},
		{ID: "a", HouseID: "h1", PaidAt: ts},
		{ID: "c", HouseID: "h1", PaidAt: ts.Add(time.Hour)},
		{ID: "d", HouseID: "h1", PaidAt: ts.Add(-time.Hour)},
	}

	SortPayments(payments)

	// Newest first; equal timestamps tie-break on ID so the order is
	// reproducible on every device.
	ids := []string{payments[0].ID, payments[1].ID, payments[2].ID, payments[3].ID}
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids)
}

func TestLivePayments(t *testing.T) {
	houses := []House{{ID: "h1", TotalCost: 1}}
	payments := []Payment{
		{ID: "p1", HouseID: "h1"},
		{ID: "p2", HouseID: "deleted"},
	}

	live := LivePayments(payments, houses)

	require.Len(t, live, 1)
	assert.Equal(t, "p1", live[0].ID)
}

func TestHouseValidate(t *testing.T) {
	tests := []struct {
		name    string
		house   House
		wantErr error
	}{
		{"valid", sampleHouse(), nil},
		{"missing id", House{TotalCost: 1}, ErrEmptyID},
		{"zero cost", House{ID: "h", TotalCost: 0}, ErrInvalidCost},
		{"negative rate", House{ID: "h", TotalCost: 1, InterestRate: -1}, ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.house.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
