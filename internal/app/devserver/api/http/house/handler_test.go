package house

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

func newTestHandler() *Handler {
	log := slog.Default()
	store := memory.NewStore(log)
	return NewHandler(store, log, huma.Middlewares{})
}

func authedCtx(userID string) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func validBody(id string) HouseBody {
	return HouseBody{
		ID:           id,
		Name:         "Дача",
		TotalCost:    300000,
		DownPayment:  60000,
		InterestRate: 4,
		CreatedAtMs:  time.Now().UnixMilli(),
	}
}

func TestHandler_upsert(t *testing.T) {
	tests := []struct {
		name    string
		body    HouseBody
		wantErr bool
	}{
		{
			name: "valid house is stored",
			body: validBody("h1"),
		},
		{
			name: "zero total cost is rejected",
			body: HouseBody{
				ID:   "h2",
				Name: "Дача",
			},
			wantErr: true,
		},
		{
			name: "negative interest rate is rejected",
			body: HouseBody{
				ID:           "h3",
				Name:         "Дача",
				TotalCost:    100,
				InterestRate: -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler := newTestHandler()
			ctx := authedCtx("u1")

			// Act
			output, err := handler.upsert(ctx, &upsertInput{Body: tt.body})

			// Assert
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, handler.store.Houses("u1"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ok", output.Body.Status)
			assert.Len(t, handler.store.Houses("u1"), 1)
		})
	}
}

func TestHandler_upsert_idempotent(t *testing.T) {
	// Arrange
	handler := newTestHandler()
	ctx := authedCtx("u1")

	// Act: та же мутация доставлена дважды.
	_, err := handler.upsert(ctx, &upsertInput{Body: validBody("h1")})
	require.NoError(t, err)
	_, err = handler.upsert(ctx, &upsertInput{Body: validBody("h1")})
	require.NoError(t, err)

	// Assert
	assert.Len(t, handler.store.Houses("u1"), 1)
}

func TestHandler_list_scopedByUser(t *testing.T) {
	// Arrange
	handler := newTestHandler()
	_, err := handler.upsert(authedCtx("u1"), &upsertInput{Body: validBody("h1")})
	require.NoError(t, err)

	// Act
	mine, err := handler.list(authedCtx("u1"), nil)
	require.NoError(t, err)
	theirs, err := handler.list(authedCtx("u2"), nil)
	require.NoError(t, err)

	// Assert
	assert.Len(t, mine.Body.Houses, 1)
	assert.Equal(t, "h1", mine.Body.Houses[0].ID)
	assert.Empty(t, theirs.Body.Houses)
}

func TestHandler_delete_cascadesPayments(t *testing.T) {
	// Arrange
	handler := newTestHandler()
	ctx := authedCtx("u1")
	_, err := handler.upsert(ctx, &upsertInput{Body: validBody("h1")})
	require.NoError(t, err)
	require.NoError(t, handler.store.UpsertPayment("u1", domain.Payment{
		ID:      "p1",
		HouseID: "h1",
		Amount:  500,
		PaidAt:  time.Now().UTC(),
	}))

	// Act
	output, err := handler.delete(ctx, &deleteInput{ID: "h1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ok", output.Body.Status)
	assert.Empty(t, handler.store.Houses("u1"))
	assert.Empty(t, handler.store.Payments("u1"))
}

func TestHandler_delete_missingHouseIsNoop(t *testing.T) {
	// Arrange
	handler := newTestHandler()

	// Act: повторная доставка удаления уже удаленного дома.
	output, err := handler.delete(authedCtx("u1"), &deleteInput{ID: "ghost"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ok", output.Body.Status)
}

func TestHandler_unauthorized(t *testing.T) {
	// Arrange
	handler := newTestHandler()
	ctx := context.Background()

	// Act
	_, err := handler.upsert(ctx, &upsertInput{Body: validBody("h1")})

	// Assert
	assert.Error(t, err)
}
