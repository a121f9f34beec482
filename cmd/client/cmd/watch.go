// cmd/client/cmd/watch.go
package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Фоновый режим с автоматической синхронизацией",
	Long: `Запускает клиент в резидентном режиме: наблюдение за сетью,
поддержание сессии и автоматическая отправка накопленных изменений.

Завершается по Ctrl+C.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if app.Identity() == "" {
			return fmt.Errorf("требуется вход. Выполните: homekeeper auth login")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Println("Фоновый режим запущен, Ctrl+C для выхода")
		app.Run(ctx)

		fmt.Println("Фоновый режим остановлен")
		return app.Close()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
