package profile

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"homekeeper/internal/app/devserver/api/http/middleware/auth"
	"homekeeper/internal/app/devserver/storage/memory"
	"homekeeper/internal/domain/house"
)

type Handler struct {
	store      *memory.Store
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(store *memory.Store, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.saveOp(), h.save)
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	h.store.SaveProfile(userID, house.Profile{Name: input.Body.Name})
	h.log.Debug("profile saved", "user", userID)

	return &statusOutput{
		Body: profileStatusResponse{Status: "Ok"},
	}, nil
}
