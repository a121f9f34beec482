package meta

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
	"homekeeper/internal/domain/house"
)

func newTestHandler() *Handler {
	log := slog.Default()
	return NewHandler(memory.NewStore(log), log, huma.Middlewares{}, huma.Middlewares{})
}

func authedCtx(userID string) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestHandler_bootstrap(t *testing.T) {
	// Arrange
	handler := newTestHandler()
	handler.store.UpsertHouse("u1", house.House{
		ID:           "h1",
		Name:         "Дача",
		TotalCost:    300000,
		DownPayment:  60000,
		InterestRate: 4,
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, handler.store.UpsertPayment("u1", house.Payment{
		ID:      "p1",
		HouseID: "h1",
		Amount:  24960,
		PaidAt:  time.Now().UTC(),
	}))
	handler.store.SaveProfile("u1", house.Profile{Name: "Тестер"})

	// Act
	output, err := handler.bootstrap(authedCtx("u1"), nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Тестер", output.Body.Profile.Name)
	require.Len(t, output.Body.Houses, 1)
	assert.Equal(t, "h1", output.Body.Houses[0].House.ID)
	assert.InDelta(t, 24960, output.Body.Houses[0].Progress.TotalPaid, 0.01)
	assert.Equal(t, 1, output.Body.Summary.Houses)
	assert.Equal(t, 1, output.Body.Summary.Payments)
}

func TestHandler_bootstrap_emptyUser(t *testing.T) {
	// Arrange
	handler := newTestHandler()

	// Act
	output, err := handler.bootstrap(authedCtx("nobody"), nil)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, output.Body.Houses)
	assert.Empty(t, output.Body.Profile.Name)
}

func TestHandler_version(t *testing.T) {
	// Arrange
	handler := newTestHandler()

	// Act
	output, err := handler.version(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, currentVersion, output.Body.Version)
}

func TestHandler_versionCheck(t *testing.T) {
	tests := []struct {
		name     string
		client   string
		expected bool
	}{
		{
			name:     "same version needs no update",
			client:   currentVersion,
			expected: false,
		},
		{
			name:     "older version needs update",
			client:   "0.9.0",
			expected: true,
		},
		{
			name:     "empty version is ignored",
			client:   "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler := newTestHandler()

			// Act
			output, err := handler.versionCheck(context.Background(), &versionCheckInput{Client: tt.client})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, output.Body.UpdateAvailable)
		})
	}
}
