// cmd/client/cmd/payment/add.go
package payment

import (
	"errors"
	"fmt"
	"time"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"
	domain "homekeeper/internal/domain/house"

	"github.com/spf13/cobra"
)

var (
	addHouseID string
	addAmount  float64
	addNote    string
	addMethod  string
	addDate    string
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить платеж",
	Long: `Добавляет платеж по кредиту указанного дома.

Платеж получает постоянный идентификатор, по которому его можно
изменить или удалить позже.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		p := domain.Payment{
			HouseID: addHouseID,
			Amount:  addAmount,
			Note:    addNote,
			Method:  addMethod,
		}

		if addDate != "" {
			paidAt, err := time.Parse("2006-01-02", addDate)
			if err != nil {
				return fmt.Errorf("неверный формат даты, ожидается ГГГГ-ММ-ДД: %w", err)
			}
			p.PaidAt = paidAt
		}

		if err := app.AddPayment(cmd.Context(), p); err != nil {
			if errors.Is(err, domain.ErrUnknownHouse) {
				return fmt.Errorf("дом %s не найден", addHouseID)
			}
			return fmt.Errorf("ошибка добавления платежа: %w", err)
		}

		fmt.Printf("✅ Платеж %.2f добавлен\n", p.Amount)

		if progress, err := app.HouseProgress(addHouseID); err == nil {
			fmt.Printf("Оплачено: %.2f из %.2f (%.1f%%)\n",
				progress.TotalPaid, progress.TotalPayable, progress.ProgressPct)
		}

		return nil
	},
}

func init() {
	AddCmd.Flags().StringVar(&addHouseID, "house", "", "идентификатор дома")
	AddCmd.Flags().Float64Var(&addAmount, "amount", 0, "сумма платежа")
	AddCmd.Flags().StringVar(&addNote, "note", "", "комментарий")
	AddCmd.Flags().StringVar(&addMethod, "method", "", "способ оплаты")
	AddCmd.Flags().StringVar(&addDate, "date", "", "дата платежа (ГГГГ-ММ-ДД, по умолчанию сегодня)")

	_ = AddCmd.MarkFlagRequired("house")
	_ = AddCmd.MarkFlagRequired("amount")
}
