package house

import (
	"time"

	domain "homekeeper/internal/domain/house"
)

// HouseBody - дом в серверном формате, отметки времени в миллисекундах
// Unix.
type HouseBody struct {
	ID            string  `json:"id" minLength:"1" doc:"Идентификатор дома"`
	Name          string  `json:"name" minLength:"1" doc:"Название дома"`
	TotalCost     float64 `json:"total_cost" doc:"Полная стоимость"`
	DownPayment   float64 `json:"down_payment" doc:"Первоначальный взнос"`
	InterestRate  float64 `json:"interest_rate" doc:"Процентная ставка"`
	LoanTermYears int     `json:"loan_term_years,omitempty" doc:"Срок кредита в годах"`
	CreatedAtMs   int64   `json:"created_at_ms" doc:"Время создания, мс Unix"`
}

type upsertInput struct {
	Body HouseBody
}

type statusOutput struct {
	Body houseStatusResponse
}

type houseStatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Houses []HouseBody `json:"houses"`
}

type deleteInput struct {
	ID string `path:"id" doc:"Идентификатор дома"`
}

func ToDomain(b HouseBody) domain.House {
	return domain.House{
		ID:            b.ID,
		Name:          b.Name,
		TotalCost:     b.TotalCost,
		DownPayment:   b.DownPayment,
		InterestRate:  b.InterestRate,
		LoanTermYears: b.LoanTermYears,
		CreatedAt:     time.UnixMilli(b.CreatedAtMs).UTC(),
	}
}

func FromDomain(h domain.House) HouseBody {
	return HouseBody{
		ID:            h.ID,
		Name:          h.Name,
		TotalCost:     h.TotalCost,
		DownPayment:   h.DownPayment,
		InterestRate:  h.InterestRate,
		LoanTermYears: h.LoanTermYears,
		CreatedAtMs:   h.CreatedAt.UnixMilli(),
	}
}
