package house

// Progress is the derived repayment view of a single house. All fields
// are computed from the current local snapshot; nothing here touches
// the network or the store.
type Progress struct {
	LoanAmount     float64 `json:"loan_amount"`
	InterestAmount float64 `json:"interest_amount"`
	TotalPayable   float64 `json:"total_payable"`
	TotalPaid      float64 `json:"total_paid"`
	Remaining      float64 `json:"remaining"`
	ProgressPct    float64 `json:"progress_pct"`
}

// Summary aggregates progress across all houses.
type Summary struct {
	Houses         int     `json:"houses"`
	Payments       int     `json:"payments"`
	LoanAmount     float64 `json:"loan_amount"`
	InterestAmount float64 `json:"interest_amount"`
	TotalPayable   float64 `json:"total_payable"`
	TotalPaid      float64 `json:"total_paid"`
	Remaining      float64 `json:"remaining"`
	ProgressPct    float64 `json:"progress_pct"`
}

// CalculateProgress computes the repayment progress of one house from
// the payments referencing it. Payments for other houses are ignored.
// A fully financed house (total payable of zero) reports 0%, never NaN.
func CalculateProgress(h House, payments []Payment) Progress {
	loan := h.TotalCost - h.DownPayment
	interest := loan * h.InterestRate / 100
	payable := loan + interest

	var paid float64
	for _, p := range payments {
		if p.HouseID == h.ID {
			paid += p.Amount
		}
	}

	pct := 0.0
	if payable != 0 {
		pct = paid / payable * 100
	}

	return Progress{
		LoanAmount:     loan,
		InterestAmount: interest,
		TotalPayable:   payable,
		TotalPaid:      paid,
		Remaining:      payable - paid,
		ProgressPct:    pct,
	}
}

// Summarize folds per-house progress into one aggregate view. Payments
// not referencing any listed house are excluded from the totals, so the
// summary stays consistent after cascading deletes. Safe to call with
// zero houses.
func Summarize(houses []House, payments []Payment) Summary {
	var s Summary
	s.Houses = len(houses)

	for _, h := range houses {
		own := PaymentsFor(payments, h.ID)
		p := CalculateProgress(h, own)
		s.Payments += len(own)
		s.LoanAmount += p.LoanAmount
		s.InterestAmount += p.InterestAmount
		s.TotalPayable += p.TotalPayable
		s.TotalPaid += p.TotalPaid
		s.Remaining += p.Remaining
	}

	if s.TotalPayable != 0 {
		s.ProgressPct = s.TotalPaid / s.TotalPayable * 100
	}

	return s
}
