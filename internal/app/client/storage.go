package client

import (
	"encoding/json"
	"fmt"
	"sync"
)

// LocalStore - локальное key-value хранилище с JSON-значениями.
// Ключи скоупятся активной учетной записью: после SetUserID("alice")
// коллекция "houses" читается и пишется как "houses::alice". Пустая
// учетная запись означает глобальное пространство имен.
//
// Load при отсутствии ключа оставляет значение нулевым и не возвращает
// ошибку. Ошибки записи на диск поглощаются реализацией: значение
// остается доступным в памяти, вызывающий код продолжает работать.
type LocalStore interface {
	Save(collection string, v any) error
	Load(collection string, v any) error
	Delete(collection string) error
	SetUserID(id string)
	UserID() string
	Close() error
}

func storageKey(collection, userID string) string {
	if userID == "" {
		return collection
	}
	return collection + "::" + userID
}

// MemoryStore - хранилище в памяти. Используется в тестах и как
// запасной вариант, когда SQLite недоступен.
type MemoryStore struct {
	mu     sync.RWMutex
	userID string
	data   map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) SetUserID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = id
}

func (m *MemoryStore) UserID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userID
}

func (m *MemoryStore) Save(collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ошибка сериализации значения %q: %w", collection, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[storageKey(collection, m.userID)] = data
	return nil
}

func (m *MemoryStore) Load(collection string, v any) error {
	m.mu.RLock()
	data, ok := m.data[storageKey(collection, m.userID)]
	m.mu.RUnlock()

	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ошибка разбора значения %q: %w", collection, err)
	}
	return nil
}

func (m *MemoryStore) Delete(collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, storageKey(collection, m.userID))
	return nil
}

func (m *MemoryStore) Close() error { return nil }
