package payment

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"homekeeper/internal/app/devserver/api/http/middleware/auth"
	"homekeeper/internal/app/devserver/storage/memory"
	domain "homekeeper/internal/domain/house"
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
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*statusOutput, error) {
	return h.upsert(ctx, input.Body)
}

// update заменяет платеж целиком; идентификатор в пути имеет приоритет
// над идентификатором в теле.
func (h *Handler) update(ctx context.Context, input *updateInput) (*statusOutput, error) {
	body := input.Body
	body.ID = input.ID
	return h.upsert(ctx, body)
}

func (h *Handler) upsert(ctx context.Context, body PaymentBody) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	p := ToDomain(body)
	if p.Amount <= 0 {
		return nil, huma.Error422UnprocessableEntity("payment amount must be positive")
	}

	if err := h.store.UpsertPayment(userID, p); err != nil {
		if errors.Is(err, domain.ErrUnknownHouse) {
			return nil, huma.Error422UnprocessableEntity("house not found: " + p.HouseID)
		}
		return nil, err
	}

	h.log.Debug("payment upserted", "user", userID, "payment", p.ID)

	return &statusOutput{
		Body: paymentStatusResponse{Status: "Ok"},
	}, nil
}

// delete удаляет платеж, повторная доставка операции безопасна.
func (h *Handler) delete(ctx context.Context, input *deleteInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	h.store.DeletePayment(userID, input.ID)
	h.log.Debug("payment deleted", "user", userID, "payment", input.ID)

	return &statusOutput{
		Body: paymentStatusResponse{Status: "Ok"},
	}, nil
}
