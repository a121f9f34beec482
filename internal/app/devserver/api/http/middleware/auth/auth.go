package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/exp/slog"

	"github.com/danielgtaylor/huma/v2"
)

// Auth извлекает учетную запись из bearer-токена. Дев-сервер не ведет
// сессий: сам токен и есть идентификатор пользователя.
type Auth struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Auth {
	return &Auth{
		log: log.With("component", "auth_middleware"),
	}
}

type contextKey string

const UserIDKey contextKey = "userID"

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := ctx.Header("Authorization")

		if len(token) < 8 || token[:7] != "Bearer " {
			a.log.Warn("Запрос без bearer-токена")
			ctx.SetStatus(http.StatusUnauthorized)
			ctx.SetHeader("Content-Type", "application/json")

			w := ctx.BodyWriter()
			if err := json.NewEncoder(w).Encode(map[string]string{
				"error": "Unauthorized",
			}); err != nil {
				a.log.Error("Ошибка записи ответа", "error", err)
			}
			return
		}

		next(huma.WithContext(ctx, context.WithValue(ctx.Context(), UserIDKey, token[7:])))
	}
}

// GetUserID достает идентификатор пользователя из контекста запроса.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}
