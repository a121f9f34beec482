// cmd/client/cmd/summary.go
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Сводка по всем домам",
	Long: `Агрегированный прогресс погашения по всем домам: суммы кредитов,
проценты, оплачено и осталось. Строится по локальной копии данных.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		summary := app.Summary()

		if jsonOutput {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(summary)
		}

		fmt.Println("=== Сводка ===")
		fmt.Printf("Домов: %d\n", summary.Houses)
		fmt.Printf("Платежей: %d\n", summary.Payments)
		fmt.Printf("Сумма кредитов: %.2f\n", summary.LoanAmount)
		fmt.Printf("Проценты: %.2f\n", summary.InterestAmount)
		fmt.Printf("К выплате всего: %.2f\n", summary.TotalPayable)
		fmt.Printf("Оплачено: %.2f\n", summary.TotalPaid)
		fmt.Printf("Осталось: %.2f\n", summary.Remaining)
		fmt.Printf("Прогресс: %.1f%%\n", summary.ProgressPct)

		if pending := app.PendingCount(); pending > 0 {
			fmt.Printf("\nВ очереди на синхронизацию: %d изменений\n", pending)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
