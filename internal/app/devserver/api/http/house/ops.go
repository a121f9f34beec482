package house

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) upsertOp() huma.Operation {
	return huma.Operation{
		OperationID: "houses-upsert",
		Method:      http.MethodPut,
		Path:        "/api/v1/houses",
		Summary:     "Создать или заменить дом",
		Tags:        []string{"houses"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "houses-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/houses",
		Summary:     "Список домов пользователя",
		Tags:        []string{"houses"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "houses-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/houses/{id}",
		Summary:     "Удалить дом и его платежи",
		Tags:        []string{"houses"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
