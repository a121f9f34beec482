// cmd/client/cmd/house/add.go
package house

import (
	"fmt"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"
	domain "homekeeper/internal/domain/house"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	addName         string
	addTotalCost    float64
	addDownPayment  float64
	addInterestRate float64
	addTermYears    int
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить дом",
	Long: `Добавляет дом с параметрами кредита.

Дом сразу появляется в локальном списке. Если сервер недоступен,
изменение встает в очередь и будет отправлено при появлении связи.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		h := domain.House{
			ID:            uuid.NewString(),
			Name:          addName,
			TotalCost:     addTotalCost,
			DownPayment:   addDownPayment,
			InterestRate:  addInterestRate,
			LoanTermYears: addTermYears,
		}

		if err := app.AddHouse(cmd.Context(), h); err != nil {
			return fmt.Errorf("ошибка добавления дома: %w", err)
		}

		fmt.Printf("✅ Дом %q добавлен (ID: %s)\n", h.Name, h.ID)

		if progress, err := app.HouseProgress(h.ID); err == nil {
			fmt.Printf("Сумма кредита: %.2f, к выплате с процентами: %.2f\n",
				progress.LoanAmount, progress.TotalPayable)
		}

		if pending := app.PendingCount(); pending > 0 {
			fmt.Printf("В очереди на синхронизацию: %d изменений\n", pending)
		}

		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addName, "name", "n", "", "название дома")
	AddCmd.Flags().Float64Var(&addTotalCost, "cost", 0, "полная стоимость")
	AddCmd.Flags().Float64Var(&addDownPayment, "down", 0, "первоначальный взнос")
	AddCmd.Flags().Float64Var(&addInterestRate, "rate", 0, "процентная ставка, %")
	AddCmd.Flags().IntVar(&addTermYears, "term", 0, "срок кредита в годах")

	_ = AddCmd.MarkFlagRequired("name")
	_ = AddCmd.MarkFlagRequired("cost")
}
