// cmd/client/cmd/version.go
package cmd

import (
	"fmt"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"

	"github.com/spf13/cobra"
)

var checkUpdate bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Версия клиента",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Printf("HomeKeeper клиент %s\n", client.ClientVersion)

		if !checkUpdate {
			return nil
		}

		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		info, err := app.CheckForUpdate(cmd.Context())
		if err != nil {
			return fmt.Errorf("не удалось проверить обновления: %w", err)
		}

		fmt.Printf("Актуальная версия: %s\n", info.CurrentVersion)
		if info.UpdateAvailable {
			fmt.Println("⚠️  Доступно обновление")
		} else {
			fmt.Println("✓ У вас последняя версия")
		}

		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&checkUpdate, "check", false, "проверить наличие обновлений на сервере")
	rootCmd.AddCommand(versionCmd)
}
