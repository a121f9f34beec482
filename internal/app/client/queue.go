package client

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// MutationQueue - долговременная очередь операций, еще не
// подтвержденных сервером. Порядок строго соответствует порядку
// постановки; очередь сохраняется через LocalStore и переживает
// перезапуск процесса.
//
// Повторная мутация того же типа по тому же целевому ключу схлопывает
// существующий элемент: полезная нагрузка заменяется последней версией,
// позиция в очереди сохраняется, счетчик повторов сбрасывается.
type MutationQueue struct {
	mu    sync.Mutex
	store LocalStore
	log   *slog.Logger
	items []Mutation
}

func NewMutationQueue(store LocalStore, log *slog.Logger) *MutationQueue {
	q := &MutationQueue{store: store, log: log}
	q.Reload()
	return q
}

// Reload перечитывает очередь из хранилища. Вызывается при создании и
// после смены активной учетной записи.
func (q *MutationQueue) Reload() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = nil
	if err := q.store.Load(colQueue, &q.items); err != nil {
		q.log.Error("Не удалось загрузить очередь мутаций", "error", err)
		q.items = nil
	}
}

// Enqueue ставит операцию в очередь, присваивая ей идентификатор,
// отметку времени и нулевой счетчик повторов.
func (q *MutationQueue) Enqueue(typ OpType, targetKey string, payload any) (Mutation, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Mutation{}, fmt.Errorf("ошибка сериализации операции %s: %w", typ, err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if targetKey != "" {
		for i := range q.items {
			if q.items[i].Type == typ && q.items[i].TargetKey == targetKey {
				// Последняя версия намерения побеждает; позиция
				// элемента в очереди не меняется.
				q.items[i].Payload = data
				q.items[i].EnqueuedAt = time.Now().UTC()
				q.items[i].RetryCount = 0
				q.persist()
				return q.items[i], nil
			}
		}
	}

	m := Mutation{
		ID:         uuid.NewString(),
		Type:       typ,
		TargetKey:  targetKey,
		Payload:    data,
		EnqueuedAt: time.Now().UTC(),
	}
	q.items = append(q.items, m)
	q.persist()

	q.log.Debug("Операция поставлена в очередь", "type", typ, "target", targetKey)
	return m, nil
}

// Remove удаляет элемент по идентификатору. Порядок остальных
// элементов не меняется.
func (q *MutationQueue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, m := range q.items {
		if m.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			q.persist()
			return
		}
	}
}

// IncrementRetry увеличивает счетчик повторов элемента и возвращает
// новое значение. Для неизвестного идентификатора возвращает 0.
func (q *MutationQueue) IncrementRetry(id string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.items {
		if q.items[i].ID == id {
			q.items[i].RetryCount++
			q.persist()
			return q.items[i].RetryCount
		}
	}
	return 0
}

// Items возвращает копию очереди в порядке постановки.
func (q *MutationQueue) Items() []Mutation {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Mutation, len(q.items))
	copy(out, q.items)
	return out
}

func (q *MutationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// persist вызывается под мьютексом.
func (q *MutationQueue) persist() {
	if err := q.store.Save(colQueue, q.items); err != nil {
		q.log.Error("Не удалось сохранить очередь мутаций", "error", err)
	}
}
