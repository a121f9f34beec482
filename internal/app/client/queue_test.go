package client

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestQueue(t *testing.T) (*MutationQueue, LocalStore) {
	t.Helper()
	store := NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMutationQueue(store, log), store
}

func TestQueuePreservesOrder(t *testing.T) {
	q, _ := newTestQueue(t)

	_, err := q.Enqueue(OpAddHouse, "h1", map[string]string{"id": "h1"})
	require.NoError(t, err)
	_, err = q.Enqueue(OpAddPayment, "p1", map[string]string{"id": "p1"})
	require.NoError(t, err)
	_, err = q.Enqueue(OpDeleteHouse, "h2", deletePayload{ID: "h2"})
	require.NoError(t, err)

	items := q.Items()
	require.Len(t, items, 3)
	assert.Equal(t, OpAddHouse, items[0].Type)
	assert.Equal(t, OpAddPayment, items[1].Type)
	assert.Equal(t, OpDeleteHouse, items[2].Type)
}

func TestQueueDedupKeepsPositionAndLatestPayload(t *testing.T) {
	q, _ := newTestQueue(t)

	_, err := q.Enqueue(OpEditPayment, "p1", map[string]float64{"amount": 100})
	require.NoError(t, err)
	_, err = q.Enqueue(OpAddHouse, "h1", map[string]string{"id": "h1"})
	require.NoError(t, err)

	first := q.Items()[0]
	q.IncrementRetry(first.ID)

	// Повторная правка того же платежа схлопывается в существующий
	// элемент: позиция прежняя, нагрузка последняя, счетчик сброшен.
	_, err = q.Enqueue(OpEditPayment, "p1", map[string]float64{"amount": 250})
	require.NoError(t, err)

	items := q.Items()
	require.Len(t, items, 2)
	assert.Equal(t, OpEditPayment, items[0].Type)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, 0, items[0].RetryCount)

	var payload map[string]float64
	require.NoError(t, json.Unmarshal(items[0].Payload, &payload))
	assert.Equal(t, 250.0, payload["amount"])
}

func TestQueueDedupDistinguishesTypeAndTarget(t *testing.T) {
	q, _ := newTestQueue(t)

	_, _ = q.Enqueue(OpAddHouse, "h1", struct{}{})
	_, _ = q.Enqueue(OpUpdateHouse, "h1", struct{}{})
	_, _ = q.Enqueue(OpUpdateHouse, "h2", struct{}{})

	// Разные типы по одному ключу и одинаковые типы по разным ключам
	// не схлопываются.
	assert.Equal(t, 3, q.Len())
}

func TestQueueRemoveAndRetry(t *testing.T) {
	q, _ := newTestQueue(t)

	m, err := q.Enqueue(OpSaveProfile, "profile", struct{}{})
	require.NoError(t, err)

	assert.Equal(t, 1, q.IncrementRetry(m.ID))
	assert.Equal(t, 2, q.IncrementRetry(m.ID))
	assert.Equal(t, 0, q.IncrementRetry("ghost"))

	q.Remove(m.ID)
	assert.Equal(t, 0, q.Len())

	// Удаление отсутствующего элемента безопасно.
	q.Remove(m.ID)
}

func TestQueueSurvivesReload(t *testing.T) {
	q, store := newTestQueue(t)

	_, err := q.Enqueue(OpAddHouse, "h1", struct{}{})
	require.NoError(t, err)
	_, err = q.Enqueue(OpAddPayment, "p1", struct{}{})
	require.NoError(t, err)

	// Новая очередь поверх того же хранилища видит те же элементы в
	// том же порядке.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	restored := NewMutationQueue(store, log)

	items := restored.Items()
	require.Len(t, items, 2)
	assert.Equal(t, OpAddHouse, items[0].Type)
	assert.Equal(t, OpAddPayment, items[1].Type)
}
