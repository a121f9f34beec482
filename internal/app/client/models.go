package client

import (
	"encoding/json"
	"time"

	"homekeeper/internal/domain/house"
)

// Имена коллекций локального хранилища. Все значения сериализуются в
// JSON и скоупятся активной учетной записью, кроме маркера активной
// учетной записи - он хранится в глобальном пространстве имен.
const (
	colHouses     = "houses"
	colPayments   = "payments"
	colProfile    = "profile"
	colQueue      = "sync_queue"
	colLastSync   = "last_sync"
	colActiveUser = "active_user"
)

// OpType - тип отложенной операции в очереди мутаций.
type OpType string

const (
	OpAddHouse      OpType = "add_house"
	OpUpdateHouse   OpType = "update_house"
	OpDeleteHouse   OpType = "delete_house"
	OpAddPayment    OpType = "add_payment"
	OpEditPayment   OpType = "edit_payment"
	OpDeletePayment OpType = "delete_payment"
	OpSaveProfile   OpType = "save_profile"
)

// Mutation - элемент очереди: операция, не подтвержденная сервером.
// RetryCount монотонно растет до удаления элемента из очереди.
type Mutation struct {
	ID         string          `json:"id"`
	Type       OpType          `json:"type"`
	TargetKey  string          `json:"target_key"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	RetryCount int             `json:"retry_count"`
}

// deletePayload - полезная нагрузка операций удаления.
type deletePayload struct {
	ID string `json:"id"`
}

// HouseWithProgress - дом вместе с вычисленным прогрессом погашения,
// как его отдает bootstrap-срез сервера.
type HouseWithProgress struct {
	House    house.House    `json:"house"`
	Progress house.Progress `json:"progress"`
}

// BootstrapSnapshot - полный срез данных пользователя за один вызов.
type BootstrapSnapshot struct {
	Profile house.Profile       `json:"profile"`
	Houses  []HouseWithProgress `json:"houses"`
	Summary house.Summary       `json:"summary"`
}

// VersionInfo - ответ проверки версии клиента.
type VersionInfo struct {
	CurrentVersion  string `json:"current_version"`
	UpdateAvailable bool   `json:"update_available"`
}
