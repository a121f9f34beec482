package client

import (
	"context"
	"net"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// ConnectivityMonitor - машина из двух состояний {Online, Offline},
// питаемая сигналом присутствия сети. Монитор доверяет только
// локальному сетевому интерфейсу и ничего не знает о доступности
// самого сервера.
type ConnectivityMonitor struct {
	mu      sync.Mutex
	log     *slog.Logger
	online  bool
	edge    bool
	changes chan struct{}
}

func NewConnectivityMonitor(log *slog.Logger) *ConnectivityMonitor {
	return &ConnectivityMonitor{
		log:     log,
		changes: make(chan struct{}, 1),
	}
}

// SetOnline фиксирует переход состояния. Переход offline→online
// взводит одноразовый флаг, который забирает оркестратор.
func (m *ConnectivityMonitor) SetOnline(online bool) {
	m.mu.Lock()
	changed := online != m.online
	if online && !m.online {
		m.edge = true
	}
	m.online = online
	m.mu.Unlock()

	if changed {
		m.log.Debug("Состояние сети изменилось", "online", online)
		select {
		case m.changes <- struct{}{}:
		default:
		}
	}
}

func (m *ConnectivityMonitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// ConsumeOnlineEdge возвращает и сбрасывает флаг «были офлайн, стали
// онлайн». Повторный вызов без нового перехода вернет false.
func (m *ConnectivityMonitor) ConsumeOnlineEdge() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	edge := m.edge
	m.edge = false
	return edge
}

// Changes - канал уведомлений о смене состояния для оркестратора.
func (m *ConnectivityMonitor) Changes() <-chan struct{} {
	return m.changes
}

// Watch периодически опрашивает локальные интерфейсы и обновляет
// состояние. Блокируется до отмены контекста.
func (m *ConnectivityMonitor) Watch(ctx context.Context, interval time.Duration) {
	m.SetOnline(hasNetwork())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SetOnline(hasNetwork())
		}
	}
}

// hasNetwork - есть ли поднятый не-loopback интерфейс с адресом.
func hasNetwork() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}
