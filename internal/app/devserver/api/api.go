//GET    /api/v1/health        # Проверка доступности (публичный)
//PUT    /api/v1/houses        # Создать или заменить дом (auth)
//GET    /api/v1/houses        # Список домов (auth)
//DELETE /api/v1/houses/{id}   # Удалить дом с платежами (auth)
//POST   /api/v1/payments      # Создать платеж (auth)
//PUT    /api/v1/payments/{id} # Изменить платеж (auth)
//DELETE /api/v1/payments/{id} # Удалить платеж (auth)
//PUT    /api/v1/profile       # Сохранить профиль (auth)
//GET    /api/v1/bootstrap     # Полный срез данных (auth)
//GET    /api/v1/version       # Актуальная версия клиента (публичный)
//GET    /api/v1/version/check # Проверка версии (публичный)

package api

import (
	healthAPI "homekeeper/internal/app/devserver/api/http/health"
	houseAPI "homekeeper/internal/app/devserver/api/http/house"
	metaAPI "homekeeper/internal/app/devserver/api/http/meta"
	"homekeeper/internal/app/devserver/api/http/middleware"
	"homekeeper/internal/app/devserver/api/http/middleware/auth"
	"homekeeper/internal/app/devserver/api/http/middleware/logger"
	paymentAPI "homekeeper/internal/app/devserver/api/http/payment"
	profileAPI "homekeeper/internal/app/devserver/api/http/profile"
	"homekeeper/internal/app/devserver/storage/memory"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health  *healthAPI.Handler
	House   *houseAPI.Handler
	Payment *paymentAPI.Handler
	Profile *profileAPI.Handler
	Meta    *metaAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(store *memory.Store, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("HomeKeeper API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(store, log)
	h.Health.SetupRoutes(API)
	h.House.SetupRoutes(API)
	h.Payment.SetupRoutes(API)
	h.Profile.SetupRoutes(API)
	h.Meta.SetupRoutes(API)

	return mux
}

func handlers(store *memory.Store, log *slog.Logger) *Handlers {
	authMW := auth.New(log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	houseHandler := houseAPI.NewHandler(store, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	paymentHandler := paymentAPI.NewHandler(store, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	profileHandler := profileAPI.NewHandler(store, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	authedMeta := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	metaHandler := metaAPI.NewHandler(store, log, authedMeta, middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		House:   houseHandler,
		Payment: paymentHandler,
		Profile: profileHandler,
		Meta:    metaHandler,
	}
}
