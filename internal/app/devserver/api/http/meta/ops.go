package meta

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) bootstrapOp() huma.Operation {
	return huma.Operation{
		OperationID: "bootstrap",
		Method:      http.MethodGet,
		Path:        "/api/v1/bootstrap",
		Summary:     "Полный срез данных пользователя",
		Tags:        []string{"meta"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) versionOp() huma.Operation {
	return huma.Operation{
		OperationID: "version",
		Method:      http.MethodGet,
		Path:        "/api/v1/version",
		Summary:     "Актуальная версия клиента",
		Tags:        []string{"meta"},
		Middlewares: h.public,
	}
}

func (h *Handler) versionCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "version-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/version/check",
		Summary:     "Проверка актуальности версии клиента",
		Tags:        []string{"meta"},
		Middlewares: h.public,
	}
}
