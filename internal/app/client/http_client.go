package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/exp/slog"

	"homekeeper/internal/app/client/config"
	"homekeeper/internal/domain/house"
)

// Серверный протокол передает отметки времени в миллисекундах Unix,
// локальная модель хранит time.Time. Преобразование происходит только
// здесь, на границе с сервером.

type houseWire struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TotalCost     float64 `json:"total_cost"`
	DownPayment   float64 `json:"down_payment"`
	InterestRate  float64 `json:"interest_rate"`
	LoanTermYears int     `json:"loan_term_years"`
	CreatedAtMs   int64   `json:"created_at_ms"`
}

type paymentWire struct {
	ID       string  `json:"id"`
	HouseID  string  `json:"house_id"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
	Method   string  `json:"method"`
	PaidAtMs int64   `json:"paid_at_ms"`
}

type bootstrapWire struct {
	Profile house.Profile `json:"profile"`
	Houses  []struct {
		House    houseWire      `json:"house"`
		Progress house.Progress `json:"progress"`
	} `json:"houses"`
	Summary house.Summary `json:"summary"`
}

func houseToWire(h house.House) houseWire {
	return houseWire{
		ID:            h.ID,
		Name:          h.Name,
		TotalCost:     h.TotalCost,
		DownPayment:   h.DownPayment,
		InterestRate:  h.InterestRate,
		LoanTermYears: h.LoanTermYears,
		CreatedAtMs:   h.CreatedAt.UnixMilli(),
	}
}

func houseFromWire(w houseWire) house.House {
	return house.House{
		ID:            w.ID,
		Name:          w.Name,
		TotalCost:     w.TotalCost,
		DownPayment:   w.DownPayment,
		InterestRate:  w.InterestRate,
		LoanTermYears: w.LoanTermYears,
		CreatedAt:     time.UnixMilli(w.CreatedAtMs).UTC(),
	}
}

func paymentToWire(p house.Payment) paymentWire {
	return paymentWire{
		ID:       p.ID,
		HouseID:  p.HouseID,
		Amount:   p.Amount,
		Note:     p.Note,
		Method:   p.Method,
		PaidAtMs: p.PaidAt.UnixMilli(),
	}
}

// httpClient - клиент серверного API. Все вызовы проходят через
// circuit breaker: когда сервер лежит, оставшиеся элементы очереди
// получают отказ сразу, без ожидания таймаута на каждом.
type httpClient struct {
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
	log       *slog.Logger
	baseURL   string
	userAgent string

	mu       sync.RWMutex
	identity string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "homekeeper-api",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Переключение circuit breaker", "from", from.String(), "to", to.String())
		},
	})

	return &httpClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		breaker:   breaker,
		log:       log,
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "HomeKeeper-Client/" + ClientVersion,
	}
}

// SetIdentity устанавливает активную учетную запись; значение уходит
// на сервер как bearer-токен.
func (h *httpClient) SetIdentity(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.identity = id
}

// HealthCheck проверяет доступность сервера. Служит пробой сессии.
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	return h.parseResponse(resp, nil)
}

// AddOrUpdateHouse создает или обновляет дом на сервере.
func (h *httpClient) AddOrUpdateHouse(ctx context.Context, hs house.House) error {
	resp, err := h.doRequest(ctx, http.MethodPut, "/api/v1/houses", houseToWire(hs))
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// DeleteHouse удаляет дом и каскадно все его платежи на сервере.
func (h *httpClient) DeleteHouse(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/v1/houses/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// GetAllHouses возвращает все дома пользователя.
func (h *httpClient) GetAllHouses(ctx context.Context) ([]house.House, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/houses", nil)
	if err != nil {
		return nil, err
	}

	var wires struct {
		Houses []houseWire `json:"houses"`
	}
	if err := h.parseResponse(resp, &wires); err != nil {
		return nil, err
	}

	houses := make([]house.House, 0, len(wires.Houses))
	for _, w := range wires.Houses {
		houses = append(houses, houseFromWire(w))
	}
	return houses, nil
}

// AddPayment создает платеж на сервере.
func (h *httpClient) AddPayment(ctx context.Context, p house.Payment) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/payments", paymentToWire(p))
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// EditPayment обновляет платеж, адресуя его стабильным идентификатором.
func (h *httpClient) EditPayment(ctx context.Context, p house.Payment) error {
	resp, err := h.doRequest(ctx, http.MethodPut, "/api/v1/payments/"+url.PathEscape(p.ID), paymentToWire(p))
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// DeletePayment удаляет платеж по идентификатору.
func (h *httpClient) DeletePayment(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/v1/payments/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// SaveProfile сохраняет профиль пользователя.
func (h *httpClient) SaveProfile(ctx context.Context, p house.Profile) error {
	resp, err := h.doRequest(ctx, http.MethodPut, "/api/v1/profile", p)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// GetBootstrap возвращает профиль, дома с прогрессом и сводку одним
// вызовом.
func (h *httpClient) GetBootstrap(ctx context.Context) (*BootstrapSnapshot, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/bootstrap", nil)
	if err != nil {
		return nil, err
	}

	var wire bootstrapWire
	if err := h.parseResponse(resp, &wire); err != nil {
		return nil, err
	}

	snap := &BootstrapSnapshot{Profile: wire.Profile, Summary: wire.Summary}
	for _, hw := range wire.Houses {
		snap.Houses = append(snap.Houses, HouseWithProgress{
			House:    houseFromWire(hw.House),
			Progress: hw.Progress,
		})
	}
	return snap, nil
}

// GetCurrentVersion возвращает актуальную версию клиента по мнению
// сервера.
func (h *httpClient) GetCurrentVersion(ctx context.Context) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/version", nil)
	if err != nil {
		return "", err
	}

	var out struct {
		Version string `json:"version"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return "", err
	}
	return out.Version, nil
}

// IsUpdateAvailable спрашивает сервер, устарела ли версия клиента.
func (h *httpClient) IsUpdateAvailable(ctx context.Context, clientVersion string) (bool, error) {
	resp, err := h.doRequest(ctx, http.MethodGet,
		"/api/v1/version/check?client="+url.QueryEscape(clientVersion), nil)
	if err != nil {
		return false, err
	}

	var out struct {
		UpdateAvailable bool `json:"update_available"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return false, err
	}
	return out.UpdateAvailable, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка сериализации тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	h.mu.RLock()
	if h.identity != "" {
		req.Header.Set("Authorization", "Bearer "+h.identity)
	}
	h.mu.RUnlock()

	h.log.Debug("Отправка запроса", "method", method, "url", req.URL.String())

	result, err := h.breaker.Execute(func() (interface{}, error) {
		return h.client.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return result.(*http.Response), nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode >= 400 {
		// Сервер отвечает либо {"error": ...}, либо RFC 7807 с полем
		// detail.
		var errResp struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Error != "" {
				return fmt.Errorf("ошибка сервера: %s", errResp.Error)
			}
			if errResp.Detail != "" {
				return fmt.Errorf("ошибка сервера: %s", errResp.Detail)
			}
		}
		return fmt.Errorf("ошибка сервера: статус %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка разбора ответа: %w", err)
		}
	}

	return nil
}
