package client

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// SessionState - состояние сессии с сервером.
type SessionState int

const (
	SessionAbsent SessionState = iota
	SessionConnecting
	SessionReady
	SessionDegraded
)

func (s SessionState) String() string {
	switch s {
	case SessionAbsent:
		return "absent"
	case SessionConnecting:
		return "connecting"
	case SessionReady:
		return "ready"
	case SessionDegraded:
		return "degraded"
	}
	return "unknown"
}

const (
	// Время, после которого подключение без прогресса считается
	// деградировавшим, и окно тишины перед переходом.
	sessionTimeout = 12 * time.Second
	progressGrace  = 5 * time.Second

	// Пауза перед автоматическим повтором из деградировавшего
	// состояния; ручной повтор доступен в любой момент.
	degradedRetryWait = 30 * time.Second

	maxSessionAttempts = 5
	probeTimeout       = 5 * time.Second
)

// Границы оценки номера попытки по прошедшему времени. Оценка нужна
// только для отображения хода подключения и не участвует ни в одном
// решении о корректности.
var attemptBoundaries = [...]time.Duration{
	1 * time.Second,
	3 * time.Second,
	7 * time.Second,
	11 * time.Second,
	15 * time.Second,
}

// SessionManager управляет жизненным циклом сессии с сервером:
// {Absent, Connecting, Ready, Degraded}. Пробой сессии служит
// health-проверка сервера; пока сессия не готова, клиент работает
// только с локальным кэшем.
type SessionManager struct {
	log   *slog.Logger
	probe func(ctx context.Context) error
	now   func() time.Time

	mu             sync.Mutex
	state          SessionState
	connectStarted time.Time
	lastProgress   time.Time
	degradedSince  time.Time
	attemptsMade   int
	lastErr        error
	ready          chan struct{}
}

func NewSessionManager(probe func(ctx context.Context) error, log *slog.Logger) *SessionManager {
	return &SessionManager{
		log:   log,
		probe: probe,
		now:   time.Now,
		state: SessionAbsent,
		ready: make(chan struct{}, 1),
	}
}

// Begin начинает установление сессии (например, когда стала известна
// учетная запись). Повторный вызов во время подключения - no-op.
func (s *SessionManager) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SessionConnecting {
		return
	}
	s.toConnecting()
}

// Invalidate сбрасывает готовую сессию (смена учетной записи) и
// запускает переподключение.
func (s *SessionManager) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SessionReady {
		s.toConnecting()
	}
}

// Reset возвращает сессию в исходное состояние (выход из учетной
// записи).
func (s *SessionManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = SessionAbsent
	s.lastErr = nil
}

// ManualRetry - ручной повтор из деградировавшего состояния.
func (s *SessionManager) ManualRetry() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SessionDegraded {
		s.toConnecting()
	}
}

// MarkProgress фиксирует признак жизни транспорта во время
// подключения и отодвигает переход в деградировавшее состояние.
func (s *SessionManager) MarkProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SessionConnecting {
		s.lastProgress = s.now()
	}
}

// вызывается под мьютексом
func (s *SessionManager) toConnecting() {
	t := s.now()
	s.state = SessionConnecting
	s.connectStarted = t
	s.lastProgress = t
	s.attemptsMade = 0
	s.lastErr = nil
	s.log.Debug("Сессия переходит в состояние подключения")
}

func (s *SessionManager) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SessionManager) IsReady() bool      { return s.State() == SessionReady }
func (s *SessionManager) IsConnecting() bool { return s.State() == SessionConnecting }

// HasError - есть ли проблема, требующая внимания пользователя.
func (s *SessionManager) HasError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == SessionDegraded || s.lastErr != nil
}

// AttemptNumber - оценка номера попытки подключения по прошедшему
// времени. Только для отображения.
func (s *SessionManager) AttemptNumber() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionConnecting {
		return 0
	}
	return s.attemptEstimateLocked()
}

func (s *SessionManager) attemptEstimateLocked() int {
	elapsed := s.now().Sub(s.connectStarted)
	n := 0
	for _, b := range attemptBoundaries {
		if elapsed >= b {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	if n > maxSessionAttempts {
		n = maxSessionAttempts
	}
	return n
}

func (s *SessionManager) MaxAttempts() int { return maxSessionAttempts }

// Ready - канал, в который отправляется сигнал при достижении
// готовности. Используется оркестратором как триггер слива очереди.
func (s *SessionManager) Ready() <-chan struct{} {
	return s.ready
}

// evaluate продвигает машину состояний по времени: Connecting без
// прогресса деградирует, деградировавшая сессия по расписанию
// возвращается к подключению.
func (s *SessionManager) evaluate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now()
	switch s.state {
	case SessionConnecting:
		if t.Sub(s.connectStarted) >= sessionTimeout && t.Sub(s.lastProgress) >= progressGrace {
			s.state = SessionDegraded
			s.degradedSince = t
			s.log.Warn("Сессия деградировала: нет прогресса подключения",
				"elapsed", t.Sub(s.connectStarted))
		}
	case SessionDegraded:
		if t.Sub(s.degradedSince) >= degradedRetryWait {
			s.toConnecting()
		}
	}
}

// TryConnect выполняет одну пробу сессии. При успехе сессия становится
// готовой и сигнализирует оркестратору.
func (s *SessionManager) TryConnect(ctx context.Context) {
	s.mu.Lock()
	if s.state != SessionConnecting {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	err := s.probe(probeCtx)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionConnecting {
		return
	}
	if err != nil {
		s.lastErr = err
		s.log.Debug("Проба сессии не удалась", "error", err)
		return
	}

	s.state = SessionReady
	s.lastErr = nil
	s.log.Info("Сессия готова")
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Run крутит переподключение по расписанию оценок попыток до отмены
// контекста.
func (s *SessionManager) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evaluate()

			s.mu.Lock()
			due := s.state == SessionConnecting &&
				s.attemptsMade < maxSessionAttempts &&
				s.attemptEstimateLocked() > s.attemptsMade
			if due {
				s.attemptsMade++
			}
			s.mu.Unlock()

			if due {
				s.TryConnect(ctx)
			}
		}
	}
}
