// cmd/client/cmd/house/delete.go
package house

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"
	domain "homekeeper/internal/domain/house"

	"github.com/spf13/cobra"
)

var deleteForce bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить дом",
	Long: `Удаляет дом и все его платежи.

Платежи удаляются вместе с домом одной операцией, по отдельности
их удалять не нужно.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		id := args[0]
		payments := app.PaymentsForHouse(id)

		if !deleteForce {
			fmt.Printf("Будет удален дом %s и %d его платежей. Продолжить? [y/N]: ", id, len(payments))
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Отменено")
				return nil
			}
		}

		if err := app.DeleteHouse(cmd.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("дом %s не найден", id)
			}
			return fmt.Errorf("ошибка удаления дома: %w", err)
		}

		fmt.Printf("✅ Дом удален вместе с %d платежами\n", len(payments))
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "не запрашивать подтверждение")
}
