// cmd/client/cmd/auth/status.go
package auth

import (
	"fmt"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Состояние подключения к серверу",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		fmt.Println("=== Состояние подключения ===")

		if app.Identity() == "" {
			fmt.Println("Активной учетной записи нет. Выполните: homekeeper auth login")
			return nil
		}

		session := app.Session()

		fmt.Printf("Сессия: %s\n", formatSessionState(app))

		// Оценка номера попытки по прошедшему времени, только для
		// отображения.
		if session.IsConnecting() {
			fmt.Printf("Попытка подключения: %d из %d\n", session.AttemptNumber(), session.MaxAttempts())
		}

		if app.Connectivity().IsOnline() {
			fmt.Println("Сеть: ✅ есть")
		} else {
			fmt.Println("Сеть: ❌ нет")
		}

		fmt.Printf("Изменений в очереди: %d\n", app.PendingCount())

		if last := app.LastSyncedAt(); !last.IsZero() {
			fmt.Printf("Последняя синхронизация: %s\n", last.Local().Format("2006-01-02 15:04:05"))
		} else {
			fmt.Println("Последняя синхронизация: никогда")
		}

		return nil
	},
}

func formatSessionState(app *client.App) string {
	switch app.Session().State() {
	case client.SessionReady:
		return color.GreenString("установлена")
	case client.SessionConnecting:
		return color.YellowString("подключение")
	case client.SessionDegraded:
		return color.RedString("недоступна, повтор через 30 секунд")
	default:
		return "отсутствует"
	}
}
