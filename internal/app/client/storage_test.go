package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homekeeper/internal/domain/house"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	saved := []house.House{{ID: "h1", Name: "x", TotalCost: 100}}
	require.NoError(t, store.Save(colHouses, saved))

	var loaded []house.House
	require.NoError(t, store.Load(colHouses, &loaded))
	require.Len(t, loaded, 1)
	assert.Equal(t, "h1", loaded[0].ID)
}

func TestMemoryStoreMissLeavesZeroValue(t *testing.T) {
	store := NewMemoryStore()

	loaded := []house.House{{ID: "preset"}}
	require.NoError(t, store.Load("missing", &loaded))

	// Отсутствие ключа не ошибка и не трогает целевое значение.
	require.Len(t, loaded, 1)
	assert.Equal(t, "preset", loaded[0].ID)
}

func TestMemoryStoreUserScoping(t *testing.T) {
	store := NewMemoryStore()

	store.SetUserID("alice")
	require.NoError(t, store.Save(colProfile, house.Profile{Name: "Алиса"}))

	store.SetUserID("bob")
	var p house.Profile
	require.NoError(t, store.Load(colProfile, &p))
	assert.Empty(t, p.Name, "чужое пространство имен недоступно")

	store.SetUserID("alice")
	require.NoError(t, store.Load(colProfile, &p))
	assert.Equal(t, "Алиса", p.Name)
}

func TestMemoryStoreGlobalNamespace(t *testing.T) {
	store := NewMemoryStore()

	// Маркер активной учетной записи живет вне пользовательских
	// пространств имен.
	require.NoError(t, store.Save(colActiveUser, "alice"))

	store.SetUserID("alice")
	var marker string
	require.NoError(t, store.Load(colActiveUser, &marker))
	assert.Empty(t, marker, "внутри пространства пользователя маркера нет")

	store.SetUserID("")
	require.NoError(t, store.Load(colActiveUser, &marker))
	assert.Equal(t, "alice", marker)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	store.SetUserID("alice")

	require.NoError(t, store.Save(colProfile, house.Profile{Name: "x"}))
	require.NoError(t, store.Delete(colProfile))

	var p house.Profile
	require.NoError(t, store.Load(colProfile, &p))
	assert.Empty(t, p.Name)

	// Повторное удаление безопасно.
	require.NoError(t, store.Delete(colProfile))
}

func TestSaveIsIdempotent(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(colHouses, []house.House{{ID: "h1", TotalCost: 1}}))
	}

	var loaded []house.House
	require.NoError(t, store.Load(colHouses, &loaded))
	assert.Len(t, loaded, 1)
}
