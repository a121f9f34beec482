// cmd/client/cmd/house/update.go
package house

import (
	"errors"
	"fmt"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"
	domain "homekeeper/internal/domain/house"

	"github.com/spf13/cobra"
)

var (
	updateName         string
	updateTotalCost    float64
	updateDownPayment  float64
	updateInterestRate float64
	updateTermYears    int
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить дом",
	Long: `Изменяет параметры дома. Непереданные флаги сохраняют прежние
значения. Прогресс погашения пересчитывается сразу после изменения.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		id := args[0]

		var current domain.House
		found := false
		for _, h := range app.Houses() {
			if h.ID == id {
				current = h
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("дом %s не найден", id)
		}

		if cmd.Flags().Changed("name") {
			current.Name = updateName
		}
		if cmd.Flags().Changed("cost") {
			current.TotalCost = updateTotalCost
		}
		if cmd.Flags().Changed("down") {
			current.DownPayment = updateDownPayment
		}
		if cmd.Flags().Changed("rate") {
			current.InterestRate = updateInterestRate
		}
		if cmd.Flags().Changed("term") {
			current.LoanTermYears = updateTermYears
		}

		if err := app.UpdateHouse(cmd.Context(), current); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("дом %s не найден", id)
			}
			return fmt.Errorf("ошибка изменения дома: %w", err)
		}

		fmt.Printf("✅ Дом %q изменен\n", current.Name)

		if progress, err := app.HouseProgress(id); err == nil {
			fmt.Printf("К выплате: %.2f | Оплачено: %.2f | Прогресс: %.1f%%\n",
				progress.TotalPayable, progress.TotalPaid, progress.ProgressPct)
		}

		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateName, "name", "n", "", "название дома")
	UpdateCmd.Flags().Float64Var(&updateTotalCost, "cost", 0, "полная стоимость")
	UpdateCmd.Flags().Float64Var(&updateDownPayment, "down", 0, "первоначальный взнос")
	UpdateCmd.Flags().Float64Var(&updateInterestRate, "rate", 0, "процентная ставка, %")
	UpdateCmd.Flags().IntVar(&updateTermYears, "term", 0, "срок кредита в годах")
}
