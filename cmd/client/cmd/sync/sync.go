package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"

	"github.com/spf13/cobra"
)

var syncStatus bool

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Синхронизация с сервером",
	Long: `Отправляет накопленные изменения на сервер.

Изменения отправляются в порядке их появления. Операции, которые
сервер отверг несколько раз подряд, отбрасываются с предупреждением.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if syncStatus {
			return showSyncStatus(app)
		}

		return runSync(cmd.Context(), app)
	},
}

func runSync(ctx context.Context, app *client.App) error {
	fmt.Println("=== Синхронизация данных ===")

	if app.Identity() == "" {
		return fmt.Errorf("требуется вход. Выполните: homekeeper auth login")
	}

	if app.PendingCount() == 0 {
		fmt.Println("Все изменения уже синхронизированы")
		return nil
	}

	// Команда живет один запуск, поэтому сессию устанавливаем
	// синхронно перед сливом очереди.
	if !app.Session().IsReady() {
		fmt.Println("Подключение к серверу...")
		// Деградировавшая сессия возвращается к подключению вручную,
		// не дожидаясь автоповтора.
		app.Session().ManualRetry()
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		app.Session().TryConnect(connectCtx)
		cancel()
	}

	fmt.Println("Отправка изменений...")

	result, err := app.Sync(ctx)
	if err != nil {
		if errors.Is(err, client.ErrSessionNotReady) {
			return fmt.Errorf("сервер недоступен, изменения сохранены локально")
		}
		if errors.Is(err, client.ErrSyncInProgress) {
			return fmt.Errorf("синхронизация уже выполняется")
		}
		return fmt.Errorf("ошибка синхронизации: %w", err)
	}

	fmt.Println()
	fmt.Println(result.Message)
	fmt.Printf("Время выполнения: %v\n", result.Duration.Round(time.Millisecond))

	for _, notice := range result.Notices {
		fmt.Printf("⚠️  %s\n", notice)
	}

	if remaining := app.PendingCount(); remaining > 0 {
		fmt.Printf("В очереди осталось: %d изменений\n", remaining)
	}

	return nil
}

func showSyncStatus(app *client.App) error {
	fmt.Println("=== Статус синхронизации ===")

	fmt.Printf("Изменений в очереди: %d\n", app.PendingCount())

	if last := app.LastSyncedAt(); !last.IsZero() {
		fmt.Printf("Последняя успешная: %s\n", last.Local().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Последняя успешная: никогда")
	}

	fmt.Printf("Сессия: %s\n", app.Session().State())

	if app.Connectivity().IsOnline() {
		fmt.Println("Сеть: ✅ OK")
	} else {
		fmt.Println("Сеть: ❌ недоступна")
	}

	return nil
}

func init() {
	SyncCmd.Flags().BoolVar(&syncStatus, "status", false, "показать статус синхронизации")
}
