package payment

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"homekeeper/internal/app/devserver/api/http/middleware/auth"
	"homekeeper/internal/app/devserver/storage/memory"
	domain "homekeeper/internal/domain/house"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	log := slog.Default()
	store := memory.NewStore(log)
	store.UpsertHouse("u1", domain.House{
		ID:        "h1",
		Name:      "Дача",
		TotalCost: 300000,
		CreatedAt: time.Now().UTC(),
	})

	return NewHandler(store, log, huma.Middlewares{})
}

func authedCtx(userID string) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestHandler_create(t *testing.T) {
	tests := []struct {
		name    string
		body    PaymentBody
		wantErr bool
	}{
		{
			name: "valid payment is stored",
			body: PaymentBody{
				ID:       "p1",
				HouseID:  "h1",
				Amount:   500,
				PaidAtMs: time.Now().UnixMilli(),
			},
		},
		{
			name: "zero amount is rejected",
			body: PaymentBody{
				ID:      "p2",
				HouseID: "h1",
			},
			wantErr: true,
		},
		{
			name: "payment for unknown house is rejected",
			body: PaymentBody{
				ID:      "p3",
				HouseID: "ghost",
				Amount:  500,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler := newTestHandler(t)
			ctx := authedCtx("u1")

			// Act
			output, err := handler.create(ctx, &createInput{Body: tt.body})

			// Assert
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, handler.store.Payments("u1"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ok", output.Body.Status)
			assert.Len(t, handler.store.Payments("u1"), 1)
		})
	}
}

func TestHandler_update_pathIDWins(t *testing.T) {
	// Arrange
	handler := newTestHandler(t)
	ctx := authedCtx("u1")
	_, err := handler.create(ctx, &createInput{Body: PaymentBody{
		ID:      "p1",
		HouseID: "h1",
		Amount:  500,
	}})
	require.NoError(t, err)

	// Act: тело присылает другой идентификатор, путь важнее.
	_, err = handler.update(ctx, &updateInput{
		ID: "p1",
		Body: PaymentBody{
			ID:      "stale",
			HouseID: "h1",
			Amount:  750,
		},
	})

	// Assert
	require.NoError(t, err)
	payments := handler.store.Payments("u1")
	require.Len(t, payments, 1)
	assert.Equal(t, "p1", payments[0].ID)
	assert.Equal(t, 750.0, payments[0].Amount)
}

func TestHandler_delete_isReplaySafe(t *testing.T) {
	// Arrange
	handler := newTestHandler(t)
	ctx := authedCtx("u1")
	_, err := handler.create(ctx, &createInput{Body: PaymentBody{
		ID:      "p1",
		HouseID: "h1",
		Amount:  500,
	}})
	require.NoError(t, err)

	// Act: удаление доставлено дважды.
	_, err = handler.delete(ctx, &deleteInput{ID: "p1"})
	require.NoError(t, err)
	output, err := handler.delete(ctx, &deleteInput{ID: "p1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ok", output.Body.Status)
	assert.Empty(t, handler.store.Payments("u1"))
}

func TestHandler_unauthorized(t *testing.T) {
	// Arrange
	handler := newTestHandler(t)

	// Act
	_, err := handler.create(context.Background(), &createInput{Body: PaymentBody{
		ID:      "p1",
		HouseID: "h1",
		Amount:  500,
	}})

	// Assert
	assert.Error(t, err)
}
