package client

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// newTestSession возвращает менеджер с управляемыми часами и пробой.
func newTestSession(probe func(ctx context.Context) error) (*SessionManager, *time.Time) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewSessionManager(probe, log)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := newTestSession(func(ctx context.Context) error { return nil })

	assert.Equal(t, SessionAbsent, s.State())

	s.Begin()
	assert.Equal(t, SessionConnecting, s.State())

	s.TryConnect(context.Background())
	assert.Equal(t, SessionReady, s.State())
	assert.True(t, s.IsReady())
	assert.False(t, s.HasError())

	// Сигнал готовности доставлен оркестратору.
	select {
	case <-s.Ready():
	default:
		t.Fatal("ожидался сигнал готовности")
	}

	s.Invalidate()
	assert.Equal(t, SessionConnecting, s.State())

	s.Reset()
	assert.Equal(t, SessionAbsent, s.State())
}

func TestSessionProbeFailureKeepsConnecting(t *testing.T) {
	probeErr := errors.New("connection refused")
	s, _ := newTestSession(func(ctx context.Context) error { return probeErr })

	s.Begin()
	s.TryConnect(context.Background())

	assert.Equal(t, SessionConnecting, s.State())
	assert.True(t, s.HasError())
}

func TestSessionDegradesAfterSilence(t *testing.T) {
	s, now := newTestSession(func(ctx context.Context) error { return errors.New("down") })

	s.Begin()

	// До таймаута деградации нет.
	*now = now.Add(11 * time.Second)
	s.evaluate()
	assert.Equal(t, SessionConnecting, s.State())

	*now = now.Add(2 * time.Second)
	s.evaluate()
	assert.Equal(t, SessionDegraded, s.State())
	assert.True(t, s.HasError())
}

func TestSessionProgressDefersDegradation(t *testing.T) {
	s, now := newTestSession(func(ctx context.Context) error { return errors.New("down") })

	s.Begin()

	*now = now.Add(10 * time.Second)
	s.MarkProgress()

	// Таймаут прошел, но тишины не было: остаемся в подключении.
	*now = now.Add(3 * time.Second)
	s.evaluate()
	assert.Equal(t, SessionConnecting, s.State())

	// После окна тишины деградация наступает.
	*now = now.Add(5 * time.Second)
	s.evaluate()
	assert.Equal(t, SessionDegraded, s.State())
}

func TestSessionDegradedAutoRetry(t *testing.T) {
	s, now := newTestSession(func(ctx context.Context) error { return errors.New("down") })

	s.Begin()
	*now = now.Add(13 * time.Second)
	s.evaluate()
	require.Equal(t, SessionDegraded, s.State())

	// Автоповтор наступает только после паузы.
	*now = now.Add(29 * time.Second)
	s.evaluate()
	assert.Equal(t, SessionDegraded, s.State())

	*now = now.Add(time.Second)
	s.evaluate()
	assert.Equal(t, SessionConnecting, s.State())
}

func TestSessionManualRetry(t *testing.T) {
	s, now := newTestSession(func(ctx context.Context) error { return errors.New("down") })

	s.Begin()
	*now = now.Add(13 * time.Second)
	s.evaluate()
	require.Equal(t, SessionDegraded, s.State())

	// Ручной повтор не ждет паузу автоповтора.
	s.ManualRetry()
	assert.Equal(t, SessionConnecting, s.State())
}

func TestSessionAttemptEstimate(t *testing.T) {
	s, now := newTestSession(func(ctx context.Context) error { return errors.New("down") })

	assert.Equal(t, 0, s.AttemptNumber(), "вне подключения номер попытки нулевой")

	s.Begin()
	assert.Equal(t, 1, s.AttemptNumber(), "оценка никогда не меньше единицы")

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{1 * time.Second, 1},
		{3 * time.Second, 2},
		{7 * time.Second, 3},
		{11 * time.Second, 4},
		{15 * time.Second, 5},
		{60 * time.Second, 5},
	}

	start := *now
	for _, tt := range tests {
		*now = start.Add(tt.elapsed)
		assert.Equal(t, tt.want, s.AttemptNumber(), "elapsed=%v", tt.elapsed)
	}

	assert.Equal(t, maxSessionAttempts, s.MaxAttempts())
}

func TestSessionTryConnectOutsideConnectingIsNoop(t *testing.T) {
	called := false
	s, _ := newTestSession(func(ctx context.Context) error {
		called = true
		return nil
	})

	s.TryConnect(context.Background())
	assert.False(t, called, "проба не выполняется вне состояния подключения")
	assert.Equal(t, SessionAbsent, s.State())
}
