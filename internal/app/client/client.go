package client

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"homekeeper/internal/app/client/config"
	"homekeeper/internal/domain/house"
)

// ClientVersion - версия клиента, отправляемая серверу при проверке
// обновлений.
const ClientVersion = "1.0.0"

// App связывает локальное хранилище, очередь мутаций, монитор сети,
// менеджер сессии и оркестратор синхронизации. Все сервисы создаются
// явно и передаются через конструктор; глобального состояния нет.
//
// Каждая мутация сначала применяется к локальному кэшу (оптимистичная
// запись), затем либо подтверждается сервером, либо встает в очередь.
type App struct {
	config     *config.Config
	log        *slog.Logger
	store      LocalStore
	queue      *MutationQueue
	monitor    *ConnectivityMonitor
	session    *SessionManager
	httpClient *httpClient
	sync       *SyncService

	mu gosync.RWMutex
	wg gosync.WaitGroup
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	// Локальное хранилище: SQLite, при сбое инициализации - память.
	var store LocalStore
	sqliteStore, err := NewSQLiteStore(cfg.DataPath, log)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		store = NewMemoryStore()
	} else {
		store = sqliteStore
	}

	httpCl := NewHTTPClient(cfg, log)

	app := &App{
		config:     cfg,
		log:        log,
		store:      store,
		httpClient: httpCl,
		monitor:    NewConnectivityMonitor(log),
		session:    NewSessionManager(httpCl.HealthCheck, log),
	}

	// Восстанавливаем активную учетную запись: маркер живет в
	// глобальном пространстве имен хранилища.
	var userID string
	if err := store.Load(colActiveUser, &userID); err != nil {
		log.Warn("Не удалось прочитать активную учетную запись", "error", err)
	}
	if userID != "" {
		store.SetUserID(userID)
		httpCl.SetIdentity(userID)
		app.session.Begin()
	}

	app.queue = NewMutationQueue(store, log)
	app.sync = NewSyncService(app)

	return app, nil
}

// Run запускает фоновые контуры: наблюдение за сетью, подключение
// сессии и оркестратор синхронизации. Блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) {
	a.wg.Add(3)
	go func() {
		defer a.wg.Done()
		a.monitor.Watch(ctx, 5*time.Second)
	}()
	go func() {
		defer a.wg.Done()
		a.session.Run(ctx)
	}()
	go func() {
		defer a.wg.Done()
		a.sync.Run(ctx)
	}()

	a.log.Info("Клиент запущен", "server", a.config.ServerAddress)
	a.wg.Wait()
}

// SetIdentity делает учетную запись активной: скоупит хранилище,
// перечитывает очередь и запускает установление сессии.
func (a *App) SetIdentity(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	prev := a.store.UserID()

	a.store.SetUserID("")
	if err := a.store.Save(colActiveUser, id); err != nil {
		a.log.Warn("Не удалось сохранить маркер учетной записи", "error", err)
	}
	a.store.SetUserID(id)

	a.httpClient.SetIdentity(id)
	a.queue.Reload()

	if prev != "" && prev != id {
		a.session.Invalidate()
	}
	a.session.Begin()

	a.log.Info("Активная учетная запись изменена", "user", id)
}

// Identity возвращает активную учетную запись.
func (a *App) Identity() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.store.UserID()
}

// Logout очищает профиль и маркер активной учетной записи. Локальные
// данные учетной записи остаются в своем пространстве имен.
func (a *App) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.store.Delete(colProfile)
	a.store.SetUserID("")
	a.store.Delete(colActiveUser)

	a.httpClient.SetIdentity("")
	a.session.Reset()
	a.queue.Reload()

	a.log.Info("Выход из учетной записи выполнен")
}

// ==================== Мутации ====================

// AddHouse добавляет дом: сразу в локальный кэш, затем на сервер или в
// очередь.
func (a *App) AddHouse(ctx context.Context, h house.House) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}

	a.mu.Lock()
	houses := a.loadHouses()
	replaced := false
	for i := range houses {
		if houses[i].ID == h.ID {
			houses[i] = h
			replaced = true
			break
		}
	}
	if !replaced {
		houses = append(houses, h)
	}
	a.saveHouses(houses)
	a.mu.Unlock()

	return a.mutateRemote(ctx, OpAddHouse, h.ID, h, func(ctx context.Context) error {
		return a.httpClient.AddOrUpdateHouse(ctx, h)
	})
}

// UpdateHouse обновляет существующий дом.
func (a *App) UpdateHouse(ctx context.Context, h house.House) error {
	if err := h.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	houses := a.loadHouses()
	found := false
	for i := range houses {
		if houses[i].ID == h.ID {
			if h.CreatedAt.IsZero() {
				h.CreatedAt = houses[i].CreatedAt
			}
			houses[i] = h
			found = true
			break
		}
	}
	if !found {
		a.mu.Unlock()
		return house.ErrNotFound
	}
	a.saveHouses(houses)
	a.mu.Unlock()

	return a.mutateRemote(ctx, OpUpdateHouse, h.ID, h, func(ctx context.Context) error {
		return a.httpClient.AddOrUpdateHouse(ctx, h)
	})
}

// DeleteHouse удаляет дом и каскадно все его платежи одной локальной
// операцией. В очередь встает единственный элемент delete_house -
// каскад на сервере выполняет сам сервер.
func (a *App) DeleteHouse(ctx context.Context, id string) error {
	a.mu.Lock()
	houses := a.loadHouses()
	found := false
	kept := houses[:0]
	for _, h := range houses {
		if h.ID == id {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	if !found {
		a.mu.Unlock()
		return house.ErrNotFound
	}

	payments := a.loadPayments()
	keptPayments := payments[:0]
	for _, p := range payments {
		if p.HouseID != id {
			keptPayments = append(keptPayments, p)
		}
	}

	a.saveHouses(kept)
	a.savePayments(keptPayments)
	a.mu.Unlock()

	return a.mutateRemote(ctx, OpDeleteHouse, id, deletePayload{ID: id}, func(ctx context.Context) error {
		return a.httpClient.DeleteHouse(ctx, id)
	})
}

// AddPayment добавляет платеж. Платеж получает стабильный UUID в
// момент создания; все дальнейшие правки адресуются этим
// идентификатором.
func (a *App) AddPayment(ctx context.Context, p house.Payment) error {
	if p.Amount <= 0 {
		return fmt.Errorf("сумма платежа должна быть положительной")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now().UTC()
	}

	a.mu.Lock()
	if !a.houseExists(p.HouseID) {
		a.mu.Unlock()
		return house.ErrUnknownHouse
	}
	payments := append(a.loadPayments(), p)
	a.savePayments(payments)
	a.mu.Unlock()

	return a.mutateRemote(ctx, OpAddPayment, p.ID, p, func(ctx context.Context) error {
		return a.httpClient.AddPayment(ctx, p)
	})
}

// EditPayment заменяет платеж с тем же идентификатором.
func (a *App) EditPayment(ctx context.Context, p house.Payment) error {
	if p.ID == "" {
		return house.ErrPaymentNotFound
	}

	a.mu.Lock()
	payments := a.loadPayments()
	found := false
	for i := range payments {
		if payments[i].ID == p.ID {
			if p.HouseID == "" {
				p.HouseID = payments[i].HouseID
			}
			if p.PaidAt.IsZero() {
				p.PaidAt = payments[i].PaidAt
			}
			payments[i] = p
			found = true
			break
		}
	}
	if !found {
		a.mu.Unlock()
		return house.ErrPaymentNotFound
	}
	a.savePayments(payments)
	a.mu.Unlock()

	return a.mutateRemote(ctx, OpEditPayment, p.ID, p, func(ctx context.Context) error {
		return a.httpClient.EditPayment(ctx, p)
	})
}

// DeletePayment удаляет платеж по идентификатору.
func (a *App) DeletePayment(ctx context.Context, id string) error {
	a.mu.Lock()
	payments := a.loadPayments()
	found := false
	kept := payments[:0]
	for _, p := range payments {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		a.mu.Unlock()
		return house.ErrPaymentNotFound
	}
	a.savePayments(kept)
	a.mu.Unlock()

	return a.mutateRemote(ctx, OpDeletePayment, id, deletePayload{ID: id}, func(ctx context.Context) error {
		return a.httpClient.DeletePayment(ctx, id)
	})
}

// SaveProfile сохраняет профиль активной учетной записи.
func (a *App) SaveProfile(ctx context.Context, p house.Profile) error {
	a.mu.Lock()
	if err := a.store.Save(colProfile, p); err != nil {
		a.log.Warn("Не удалось сохранить профиль", "error", err)
	}
	a.mu.Unlock()

	return a.mutateRemote(ctx, OpSaveProfile, "profile", p, func(ctx context.Context) error {
		return a.httpClient.SaveProfile(ctx, p)
	})
}

// mutateRemote пытается подтвердить мутацию сервером. Если сессия не
// готова или сети нет - операция молча встает в очередь. Если сервер
// ответил ошибкой - операция встает в очередь, а вызывающий получает
// описательную ошибку о том, что данные сохранены локально.
func (a *App) mutateRemote(ctx context.Context, typ OpType, target string, payload any, call func(context.Context) error) error {
	if a.session.IsReady() && a.monitor.IsOnline() {
		err := call(ctx)
		if err == nil {
			return nil
		}
		if _, qErr := a.queue.Enqueue(typ, target, payload); qErr != nil {
			a.log.Error("Не удалось поставить операцию в очередь", "type", typ, "error", qErr)
		}
		return fmt.Errorf("операция %s не подтверждена сервером, данные сохранены локально и будут синхронизированы позже: %w", typ, err)
	}

	if _, err := a.queue.Enqueue(typ, target, payload); err != nil {
		return err
	}
	return nil
}

// ==================== Чтение локального среза ====================

func (a *App) Houses() []house.House {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loadHouses()
}

func (a *App) Payments() []house.Payment {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loadPayments()
}

// PaymentsForHouse возвращает платежи дома в отображаемом порядке:
// новые сверху.
func (a *App) PaymentsForHouse(houseID string) []house.Payment {
	a.mu.RLock()
	payments := house.PaymentsFor(a.loadPayments(), houseID)
	a.mu.RUnlock()

	house.SortPayments(payments)
	return payments
}

func (a *App) Profile() house.Profile {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var p house.Profile
	if err := a.store.Load(colProfile, &p); err != nil {
		a.log.Warn("Не удалось прочитать профиль", "error", err)
	}
	return p
}

// HouseProgress вычисляет прогресс погашения по локальному срезу.
func (a *App) HouseProgress(houseID string) (house.Progress, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, h := range a.loadHouses() {
		if h.ID == houseID {
			return house.CalculateProgress(h, a.loadPayments()), nil
		}
	}
	return house.Progress{}, house.ErrNotFound
}

// Summary агрегирует прогресс по всем домам локального среза.
func (a *App) Summary() house.Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return house.Summarize(a.loadHouses(), a.loadPayments())
}

// LastSyncedAt - когда очередь последний раз успешно сливалась.
func (a *App) LastSyncedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var t time.Time
	if err := a.store.Load(colLastSync, &t); err != nil {
		a.log.Warn("Не удалось прочитать отметку синхронизации", "error", err)
	}
	return t
}

// PendingCount - сколько операций ждет подтверждения сервером.
func (a *App) PendingCount() int {
	return a.queue.Len()
}

// Session и Connectivity открывают состояние фоновых сервисов для
// оболочки.
func (a *App) Session() *SessionManager           { return a.session }
func (a *App) Connectivity() *ConnectivityMonitor { return a.monitor }

// ==================== Серверные операции ====================

// Sync выполняет ручной слив очереди.
func (a *App) Sync(ctx context.Context) (*SyncResult, error) {
	return a.sync.Drain(ctx)
}

// Bootstrap забирает полный срез с сервера и кладет его в локальный
// кэш. Используется после входа и при первом подключении.
func (a *App) Bootstrap(ctx context.Context) (*BootstrapSnapshot, error) {
	snap, err := a.httpClient.GetBootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки среза: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	houses := make([]house.House, 0, len(snap.Houses))
	for _, hw := range snap.Houses {
		houses = append(houses, hw.House)
	}
	a.saveHouses(houses)

	if err := a.store.Save(colProfile, snap.Profile); err != nil {
		a.log.Warn("Не удалось сохранить профиль", "error", err)
	}

	return snap, nil
}

// CheckForUpdate спрашивает сервер про актуальность версии клиента.
func (a *App) CheckForUpdate(ctx context.Context) (VersionInfo, error) {
	version, err := a.httpClient.GetCurrentVersion(ctx)
	if err != nil {
		return VersionInfo{}, err
	}

	available, err := a.httpClient.IsUpdateAvailable(ctx, ClientVersion)
	if err != nil {
		return VersionInfo{}, err
	}

	return VersionInfo{CurrentVersion: version, UpdateAvailable: available}, nil
}

// recordLastSync вызывается оркестратором после успешного прохода.
func (a *App) recordLastSync(t time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Save(colLastSync, t); err != nil {
		a.log.Warn("Не удалось сохранить отметку синхронизации", "error", err)
	}
}

// refreshCaches перечитывает подтвержденное серверное состояние и
// выбрасывает платежи удаленных домов.
func (a *App) refreshCaches(ctx context.Context) error {
	houses, err := a.httpClient.GetAllHouses(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.saveHouses(houses)
	a.savePayments(house.LivePayments(a.loadPayments(), houses))
	return nil
}

// ==================== Внутренние помощники ====================

// Помощники ниже вызываются под мьютексом App.

func (a *App) loadHouses() []house.House {
	var houses []house.House
	if err := a.store.Load(colHouses, &houses); err != nil {
		a.log.Warn("Не удалось прочитать список домов", "error", err)
	}
	return houses
}

func (a *App) saveHouses(houses []house.House) {
	if err := a.store.Save(colHouses, houses); err != nil {
		a.log.Warn("Не удалось сохранить список домов", "error", err)
	}
}

func (a *App) loadPayments() []house.Payment {
	var payments []house.Payment
	if err := a.store.Load(colPayments, &payments); err != nil {
		a.log.Warn("Не удалось прочитать список платежей", "error", err)
	}
	return payments
}

func (a *App) savePayments(payments []house.Payment) {
	if err := a.store.Save(colPayments, payments); err != nil {
		a.log.Warn("Не удалось сохранить список платежей", "error", err)
	}
}

// houseExists вызывается под мьютексом.
func (a *App) houseExists(id string) bool {
	for _, h := range a.loadHouses() {
		if h.ID == id {
			return true
		}
	}
	return false
}

// Close освобождает ресурсы локального хранилища.
func (a *App) Close() error {
	return a.store.Close()
}
