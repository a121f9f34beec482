package house

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrEmptyID      = errors.New("house: empty id")
	ErrNotFound     = errors.New("house: not found")
	ErrInvalidCost  = errors.New("house: total cost must be positive")
	ErrInvalidRate  = errors.New("house: interest rate must not be negative")
	ErrUnknownHouse = errors.New("payment: unknown house id")

	ErrPaymentNotFound = errors.New("payment: not found")
)

// House is a tracked property together with its financing terms.
// The ID is generated by the caller and is stable for the lifetime
// of the house on both the client and the server.
type House struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TotalCost     float64   `json:"total_cost"`
	DownPayment   float64   `json:"down_payment"`
	InterestRate  float64   `json:"interest_rate"`
	LoanTermYears int       `json:"loan_term_years"`
	CreatedAt     time.Time `json:"created_at"`
}

// Validate checks the invariants a house must satisfy before it is
// written to the local store or sent to the server.
func (h House) Validate() error {
	if h.ID == "" {
		return ErrEmptyID
	}
	if h.TotalCost <= 0 {
		return ErrInvalidCost
	}
	if h.InterestRate < 0 {
		return ErrInvalidRate
	}
	return nil
}

// Payment is a record owned by exactly one house. Payments carry a
// stable UUID assigned at creation; every edit and delete addresses a
// payment by that ID. The descending-date order is derived for display
// only and never used for addressing.
type Payment struct {
	ID      string    `json:"id"`
	HouseID string    `json:"house_id"`
	Amount  float64   `json:"amount"`
	Note    string    `json:"note"`
	Method  string    `json:"method"`
	PaidAt  time.Time `json:"paid_at"`
}

// Profile holds the per-identity user profile. One per identity,
// cleared on logout.
type Profile struct {
	Name string `json:"name"`
}

// SortPayments orders payments for display: newest first, ties broken
// by ascending ID so the order is deterministic for equal timestamps.
func SortPayments(payments []Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if payments[i].PaidAt.Equal(payments[j].PaidAt) {
			return payments[i].ID < payments[j].ID
		}
		return payments[i].PaidAt.After(payments[j].PaidAt)
	})
}

// PaymentsFor returns the payments referencing the given house,
// preserving the input order.
func PaymentsFor(payments []Payment, houseID string) []Payment {
	var out []Payment
	for _, p := range payments {
		if p.HouseID == houseID {
			out = append(out, p)
		}
	}
	return out
}

// LivePayments filters out payments whose owning house no longer
// exists. After a cascading house delete no orphaned payment survives.
func LivePayments(payments []Payment, houses []House) []Payment {
	live := make(map[string]bool, len(houses))
	for _, h := range houses {
		live[h.ID] = true
	}
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if live[p.HouseID] {
			out = append(out, p)
		}
	}
	return out
}
