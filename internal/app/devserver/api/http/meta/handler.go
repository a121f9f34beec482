package meta

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	houseAPI "homekeeper/internal/app/devserver/api/http/house"
	"homekeeper/internal/app/devserver/api/http/middleware/auth"
	"homekeeper/internal/app/devserver/storage/memory"
	"homekeeper/internal/domain/house"
)

// currentVersion - версия клиента, которую сервер считает актуальной.
const currentVersion = "1.0.0"

type Handler struct {
	store      *memory.Store
	log        *slog.Logger
	middleware huma.Middlewares
	public     huma.Middlewares
}

// NewHandler принимает два набора мидлварей: bootstrap требует
// авторизации, эндпоинты версии публичные.
func NewHandler(store *memory.Store, log *slog.Logger, mws, public huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		log:        log,
		middleware: mws,
		public:     public,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.bootstrapOp(), h.bootstrap)
	huma.Register(api, h.versionOp(), h.version)
	huma.Register(api, h.versionCheckOp(), h.versionCheck)
}

// bootstrap отдает полный срез пользователя: профиль, дома с
// прогрессом погашения и сводку.
func (h *Handler) bootstrap(ctx context.Context, _ *struct{}) (*bootstrapOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	houses := h.store.Houses(userID)
	payments := h.store.Payments(userID)

	views := make([]houseWithView, 0, len(houses))
	for _, hs := range houses {
		views = append(views, houseWithView{
			House:    houseAPI.FromDomain(hs),
			Progress: house.CalculateProgress(hs, payments),
		})
	}

	return &bootstrapOutput{
		Body: bootstrapResponse{
			Profile: h.store.Profile(userID),
			Houses:  views,
			Summary: house.Summarize(houses, payments),
		},
	}, nil
}

func (h *Handler) version(_ context.Context, _ *struct{}) (*versionOutput, error) {
	return &versionOutput{
		Body: versionResponse{Version: currentVersion},
	}, nil
}

func (h *Handler) versionCheck(_ context.Context, input *versionCheckInput) (*versionCheckOutput, error) {
	return &versionCheckOutput{
		Body: versionCheckResponse{
			UpdateAvailable: input.Client != "" && input.Client != currentVersion,
		},
	}, nil
}
