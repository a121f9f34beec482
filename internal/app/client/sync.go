package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"homekeeper/internal/domain/house"
)

const (
	// Пауза между триггером и началом слива: подряд идущие события
	// схлопываются в один проход.
	drainDebounce = time.Second

	// Не чаще одной попытки слива раз в две секунды.
	minDrainInterval = 2 * time.Second

	// Периодический слив, пока сессия готова и сеть есть.
	periodicDrain = 30 * time.Second

	// После стольких неудач элемент очереди отбрасывается навсегда.
	dropThreshold = 3
)

var (
	ErrSyncInProgress  = errors.New("синхронизация уже выполняется")
	ErrSessionNotReady = errors.New("сессия с сервером не готова")
	errDrainThrottled  = errors.New("слишком частые попытки синхронизации")
)

// SyncResult - итог одного прохода слива очереди.
type SyncResult struct {
	Synced    int           `json:"synced"`
	Failed    int           `json:"failed"`
	Dropped   int           `json:"dropped"`
	Notices   []string      `json:"notices"`
	Message   string        `json:"message"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// SyncService сливает очередь мутаций на сервер, когда это позволяют
// сессия и сеть, и держит локальный кэш согласованным с подтвержденным
// серверным состоянием.
type SyncService struct {
	app *App
	log *slog.Logger

	mu          sync.Mutex
	isSyncing   bool
	lastAttempt time.Time

	// Интервалы вынесены в поля, чтобы тесты не ждали настоящих пауз.
	debounce    time.Duration
	minInterval time.Duration
	periodic    time.Duration
	dropAfter   int

	kick chan struct{}
}

func NewSyncService(app *App) *SyncService {
	return &SyncService{
		app:         app,
		log:         app.log,
		debounce:    drainDebounce,
		minInterval: minDrainInterval,
		periodic:    periodicDrain,
		dropAfter:   dropThreshold,
		kick:        make(chan struct{}, 1),
	}
}

// Kick просит оркестратор выполнить слив вне расписания.
func (s *SyncService) Kick() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Run обслуживает триггеры слива до отмены контекста: готовность
// сессии, возврат сети, периодический таймер и ручные запросы.
func (s *SyncService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.periodic)
	defer ticker.Stop()

	for {
		var trigger string
		select {
		case <-ctx.Done():
			return
		case <-s.app.session.Ready():
			trigger = "session_ready"
		case <-s.app.monitor.Changes():
			if !s.app.monitor.ConsumeOnlineEdge() {
				continue
			}
			trigger = "online_edge"
		case <-ticker.C:
			if !s.app.session.IsReady() || !s.app.monitor.IsOnline() {
				continue
			}
			trigger = "periodic"
		case <-s.kick:
			trigger = "manual"
		}

		if s.app.queue.Len() == 0 && trigger != "periodic" {
			continue
		}

		// Дебаунс: даем подряд идущим событиям схлопнуться.
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.debounce):
		}

		if _, err := s.Drain(ctx); err != nil &&
			!errors.Is(err, errDrainThrottled) && !errors.Is(err, ErrSyncInProgress) {
			s.log.Warn("Слив очереди не удался", "trigger", trigger, "error", err)
		}
	}
}

// Drain выполняет один проход по очереди. Одновременно работает не
// больше одного прохода; слишком частые попытки отбрасываются.
func (s *SyncService) Drain(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	if time.Since(s.lastAttempt) < s.minInterval {
		s.mu.Unlock()
		return nil, errDrainThrottled
	}
	s.isSyncing = true
	s.lastAttempt = time.Now()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	if !s.app.session.IsReady() {
		return nil, ErrSessionNotReady
	}

	result := &SyncResult{StartTime: time.Now()}
	items := s.app.queue.Items()
	s.log.Info("Начало слива очереди", "pending", len(items))

	for _, item := range items {
		err := s.dispatch(ctx, item)
		if err == nil {
			s.app.queue.Remove(item.ID)
			result.Synced++
			continue
		}

		s.log.Warn("Операция не прошла",
			"type", item.Type, "target", item.TargetKey, "error", err)

		retries := s.app.queue.IncrementRetry(item.ID)
		if retries >= s.dropAfter {
			// Элемент исчерпал попытки: убираем навсегда и говорим
			// об этом пользователю.
			s.app.queue.Remove(item.ID)
			result.Dropped++
			result.Notices = append(result.Notices,
				fmt.Sprintf("Операция %s не синхронизирована после %d попыток и отброшена", item.Type, retries))
		} else {
			result.Failed++
		}
	}

	if result.Synced > 0 {
		s.app.recordLastSync(time.Now().UTC())
		if err := s.app.refreshCaches(ctx); err != nil {
			s.log.Warn("Не удалось обновить кэш после синхронизации", "error", err)
		}
	}

	switch {
	case result.Failed+result.Dropped > 0:
		result.Message = fmt.Sprintf("Failed to sync %d changes, will retry later", result.Failed+result.Dropped)
	case result.Synced > 0:
		result.Message = fmt.Sprintf("Successfully synced %d changes", result.Synced)
	}

	result.Duration = time.Since(result.StartTime)
	s.log.Info("Слив очереди завершен",
		"synced", result.Synced, "failed", result.Failed, "dropped", result.Dropped)

	return result, nil
}

// dispatch восстанавливает полезную нагрузку элемента в форму
// серверного вызова и выполняет его.
func (s *SyncService) dispatch(ctx context.Context, m Mutation) error {
	switch m.Type {
	case OpAddHouse, OpUpdateHouse:
		var h house.House
		if err := json.Unmarshal(m.Payload, &h); err != nil {
			return fmt.Errorf("ошибка разбора операции %s: %w", m.Type, err)
		}
		return s.app.httpClient.AddOrUpdateHouse(ctx, h)

	case OpDeleteHouse:
		var p deletePayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("ошибка разбора операции %s: %w", m.Type, err)
		}
		return s.app.httpClient.DeleteHouse(ctx, p.ID)

	case OpAddPayment:
		var p house.Payment
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("ошибка разбора операции %s: %w", m.Type, err)
		}
		return s.app.httpClient.AddPayment(ctx, p)

	case OpEditPayment:
		var p house.Payment
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("ошибка разбора операции %s: %w", m.Type, err)
		}
		return s.app.httpClient.EditPayment(ctx, p)

	case OpDeletePayment:
		var p deletePayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("ошибка разбора операции %s: %w", m.Type, err)
		}
		return s.app.httpClient.DeletePayment(ctx, p.ID)

	case OpSaveProfile:
		var p house.Profile
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("ошибка разбора операции %s: %w", m.Type, err)
		}
		return s.app.httpClient.SaveProfile(ctx, p)
	}

	return fmt.Errorf("неизвестный тип операции: %s", m.Type)
}
