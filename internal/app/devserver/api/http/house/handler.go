package house

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"homekeeper/internal/app/devserver/api/http/middleware/auth"
	"homekeeper/internal/app/devserver/storage/memory"
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
	huma.Register(api, h.upsertOp(), h.upsert)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.deleteOp(), h.delete)
}

// upsert создает или заменяет дом. Повторная доставка той же мутации
// безопасна.
func (h *Handler) upsert(ctx context.Context, input *upsertInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	hs := ToDomain(input.Body)
	if err := hs.Validate(); err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	h.store.UpsertHouse(userID, hs)
	h.log.Debug("house upserted", "user", userID, "house", hs.ID)

	return &statusOutput{
		Body: houseStatusResponse{Status: "Ok"},
	}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	houses := h.store.Houses(userID)

	out := make([]HouseBody, 0, len(houses))
	for _, hs := range houses {
		out = append(out, FromDomain(hs))
	}

	return &listOutput{
		Body: listResponse{Houses: out},
	}, nil
}

// delete удаляет дом вместе с платежами. Удаление отсутствующего дома
// не ошибка: очередь клиента может доставить операцию повторно.
func (h *Handler) delete(ctx context.Context, input *deleteInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	h.store.DeleteHouse(userID, input.ID)
	h.log.Debug("house deleted", "user", userID, "house", input.ID)

	return &statusOutput{
		Body: houseStatusResponse{Status: "Ok"},
	}, nil
}
