package profile

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) saveOp() huma.Operation {
	return huma.Operation{
		OperationID: "profile-save",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile",
		Summary:     "Сохранить профиль пользователя",
		Tags:        []string{"profile"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
