package client

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func newTestMonitor() *ConnectivityMonitor {
	return NewConnectivityMonitor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestConnectivityStartsOffline(t *testing.T) {
	m := newTestMonitor()
	assert.False(t, m.IsOnline())
	assert.False(t, m.ConsumeOnlineEdge())
}

func TestConnectivityOnlineEdgeIsOneShot(t *testing.T) {
	m := newTestMonitor()

	m.SetOnline(true)
	assert.True(t, m.IsOnline())
	assert.True(t, m.ConsumeOnlineEdge())
	assert.False(t, m.ConsumeOnlineEdge(), "флаг перехода одноразовый")

	// Повторный онлайн без промежуточного офлайна перехода не дает.
	m.SetOnline(true)
	assert.False(t, m.ConsumeOnlineEdge())

	m.SetOnline(false)
	m.SetOnline(true)
	assert.True(t, m.ConsumeOnlineEdge())
}

func TestConnectivityChangeNotification(t *testing.T) {
	m := newTestMonitor()

	m.SetOnline(true)
	select {
	case <-m.Changes():
	default:
		t.Fatal("ожидалось уведомление о смене состояния")
	}

	// Без смены состояния уведомления нет.
	m.SetOnline(true)
	select {
	case <-m.Changes():
		t.Fatal("уведомление без смены состояния")
	default:
	}
}
