package payment

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "payments-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/payments",
		Summary:     "Создать платеж",
		Tags:        []string{"payments"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "payments-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/payments/{id}",
		Summary:     "Изменить платеж",
		Tags:        []string{"payments"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "payments-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/payments/{id}",
		Summary:     "Удалить платеж",
		Tags:        []string{"payments"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
