// cmd/client/cmd/payment/delete.go
package payment

import (
	"errors"
	"fmt"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"
	domain "homekeeper/internal/domain/house"

	"github.com/spf13/cobra"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить платеж",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		id := args[0]

		if err := app.DeletePayment(cmd.Context(), id); err != nil {
			if errors.Is(err, domain.ErrPaymentNotFound) {
				return fmt.Errorf("платеж %s не найден", id)
			}
			return fmt.Errorf("ошибка удаления платежа: %w", err)
		}

		fmt.Printf("✅ Платеж %s удален\n", shortID(id))
		return nil
	},
}
