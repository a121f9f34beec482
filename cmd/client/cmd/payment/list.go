// cmd/client/cmd/payment/list.go
package payment

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"
	domain "homekeeper/internal/domain/house"

	"github.com/spf13/cobra"
)

var (
	listHouseID string
	listFormat  string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список платежей",
	Long: `Просмотр платежей дома, новые сверху.

Список строится по локальной копии данных и работает без сети.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		payments := app.PaymentsForHouse(listHouseID)

		switch listFormat {
		case "json":
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(payments)
		case "table":
			return printPaymentsTable(payments)
		default:
			return printPaymentsSimple(payments)
		}
	},
}

func printPaymentsSimple(payments []domain.Payment) error {
	if len(payments) == 0 {
		fmt.Println("Платежи не найдены")
		return nil
	}

	fmt.Printf("Найдено платежей: %d\n\n", len(payments))

	var total float64
	for i, p := range payments {
		fmt.Printf("%d. %.2f - %s\n", i+1, p.Amount, p.PaidAt.Format("2006-01-02"))
		fmt.Printf("   ID: %s\n", p.ID)
		if p.Note != "" {
			fmt.Printf("   Комментарий: %s\n", p.Note)
		}
		if p.Method != "" {
			fmt.Printf("   Способ: %s\n", p.Method)
		}
		fmt.Println()
		total += p.Amount
	}

	fmt.Printf("Итого: %.2f\n", total)
	return nil
}

func printPaymentsTable(payments []domain.Payment) error {
	if len(payments) == 0 {
		fmt.Println("Платежи не найдены")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tСумма\tДата\tСпособ\tКомментарий\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")

	var total float64
	for _, p := range payments {
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\t%s\t\n",
			shortID(p.ID),
			p.Amount,
			p.PaidAt.Format("2006-01-02"),
			p.Method,
			truncate(p.Note, 40),
		)
		total += p.Amount
	}

	w.Flush()
	fmt.Printf("\nВсего платежей: %d на сумму %.2f\n", len(payments), total)
	return nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func init() {
	ListCmd.Flags().StringVar(&listHouseID, "house", "", "идентификатор дома")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "формат вывода (simple, table, json)")

	_ = ListCmd.MarkFlagRequired("house")
}
