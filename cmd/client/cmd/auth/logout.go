// cmd/client/cmd/auth/logout.go
package auth

import (
	"fmt"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"

	"github.com/spf13/cobra"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из учетной записи",
	Long: `Сбрасывает активную учетную запись и очищает профиль.

Локальные данные учетной записи не удаляются и станут доступны
при следующем входе под тем же ключом.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if app.Identity() == "" {
			fmt.Println("Активной учетной записи нет")
			return nil
		}

		if pending := app.PendingCount(); pending > 0 {
			fmt.Printf("⚠️  В очереди %d несинхронизированных изменений, они будут отправлены при следующем входе\n", pending)
		}

		app.Logout()
		fmt.Println("✅ Выход выполнен")

		return nil
	},
}
