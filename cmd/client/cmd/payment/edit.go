// cmd/client/cmd/payment/edit.go
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
	editAmount float64
	editNote   string
	editMethod string
	editDate   string
)

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Изменить платеж",
	Long: `Изменяет платеж по его идентификатору. Непереданные флаги
сохраняют прежние значения.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		id := args[0]

		var current domain.Payment
		found := false
		for _, p := range app.Payments() {
			if p.ID == id {
				current = p
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("платеж %s не найден", id)
		}

		if cmd.Flags().Changed("amount") {
			current.Amount = editAmount
		}
		if cmd.Flags().Changed("note") {
			current.Note = editNote
		}
		if cmd.Flags().Changed("method") {
			current.Method = editMethod
		}
		if editDate != "" {
			paidAt, err := time.Parse("2006-01-02", editDate)
			if err != nil {
				return fmt.Errorf("неверный формат даты, ожидается ГГГГ-ММ-ДД: %w", err)
			}
			current.PaidAt = paidAt
		}

		if err := app.EditPayment(cmd.Context(), current); err != nil {
			if errors.Is(err, domain.ErrPaymentNotFound) {
				return fmt.Errorf("платеж %s не найден", id)
			}
			return fmt.Errorf("ошибка изменения платежа: %w", err)
		}

		fmt.Printf("✅ Платеж %s изменен\n", shortID(id))

		if progress, err := app.HouseProgress(current.HouseID); err == nil {
			fmt.Printf("Оплачено: %.2f из %.2f (%.1f%%)\n",
				progress.TotalPaid, progress.TotalPayable, progress.ProgressPct)
		}

		return nil
	},
}

func init() {
	EditCmd.Flags().Float64Var(&editAmount, "amount", 0, "сумма платежа")
	EditCmd.Flags().StringVar(&editNote, "note", "", "комментарий")
	EditCmd.Flags().StringVar(&editMethod, "method", "", "способ оплаты")
	EditCmd.Flags().StringVar(&editDate, "date", "", "дата платежа (ГГГГ-ММ-ДД)")
}
