package payment

import (
	"time"

	domain "homekeeper/internal/domain/house"
)

// PaymentBody - платеж в серверном формате, отметки времени в
// миллисекундах Unix.
type PaymentBody struct {
	ID       string  `json:"id" minLength:"1" doc:"Идентификатор платежа"`
	HouseID  string  `json:"house_id" minLength:"1" doc:"Идентификатор дома"`
	Amount   float64 `json:"amount" doc:"Сумма платежа"`
	Note     string  `json:"note,omitempty" doc:"Комментарий"`
	Method   string  `json:"method,omitempty" doc:"Способ оплаты"`
	PaidAtMs int64   `json:"paid_at_ms" doc:"Дата платежа, мс Unix"`
}

type createInput struct {
	Body PaymentBody
}

type updateInput struct {
	ID   string `path:"id" doc:"Идентификатор платежа"`
	Body PaymentBody
}

type deleteInput struct {
	ID string `path:"id" doc:"Идентификатор платежа"`
}

type statusOutput struct {
	Body paymentStatusResponse
}

type paymentStatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func ToDomain(b PaymentBody) domain.Payment {
	return domain.Payment{
		ID:      b.ID,
		HouseID: b.HouseID,
		Amount:  b.Amount,
		Note:    b.Note,
		Method:  b.Method,
		PaidAt:  time.UnixMilli(b.PaidAtMs).UTC(),
	}
}
