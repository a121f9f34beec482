package payment

import (
	"github.com/spf13/cobra"
)

// PaymentCmd - родительская команда для всех операций с платежами
var PaymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Управление платежами",
	Long:  `Добавление, просмотр, изменение и удаление платежей по кредиту.`,
}
