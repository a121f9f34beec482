// cmd/client/cmd/house/list.go
package house

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"
	domain "homekeeper/internal/domain/house"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список домов",
	Long: `Просмотр всех домов с прогрессом погашения кредита.

Список строится по локальной копии данных и работает без сети.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		houses := app.Houses()

		switch listFormat {
		case "json":
			return printHousesJSON(app, houses)
		case "table":
			return printHousesTable(app, houses)
		default:
			return printHousesSimple(app, houses)
		}
	},
}

func printHousesSimple(app *client.App, houses []domain.House) error {
	if len(houses) == 0 {
		fmt.Println("Дома не найдены")
		return nil
	}

	fmt.Printf("Найдено домов: %d\n\n", len(houses))

	for i, h := range houses {
		progress, err := app.HouseProgress(h.ID)
		if err != nil {
			continue
		}

		fmt.Printf("%d. %s\n", i+1, color.CyanString(h.Name))
		fmt.Printf("   ID: %s\n", h.ID)
		fmt.Printf("   Стоимость: %.2f | Взнос: %.2f | Ставка: %.2f%%\n",
			h.TotalCost, h.DownPayment, h.InterestRate)
		fmt.Printf("   К выплате: %.2f | Оплачено: %.2f | Осталось: %.2f\n",
			progress.TotalPayable, progress.TotalPaid, progress.Remaining)
		fmt.Printf("   Прогресс: %s\n", formatPct(progress.ProgressPct))
		fmt.Println()
	}

	return nil
}

func printHousesTable(app *client.App, houses []domain.House) error {
	if len(houses) == 0 {
		fmt.Println("Дома не найдены")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tНазвание\tСтоимость\tК выплате\tОплачено\tПрогресс\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t---\t\n")

	for _, h := range houses {
		progress, err := app.HouseProgress(h.ID)
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.1f%%\t\n",
			shortID(h.ID),
			truncate(h.Name, 30),
			h.TotalCost,
			progress.TotalPayable,
			progress.TotalPaid,
			progress.ProgressPct,
		)
	}

	w.Flush()
	fmt.Printf("\nВсего домов: %d\n", len(houses))
	return nil
}

func printHousesJSON(app *client.App, houses []domain.House) error {
	type houseWithProgress struct {
		domain.House
		Progress domain.Progress `json:"progress"`
	}

	out := make([]houseWithProgress, 0, len(houses))
	for _, h := range houses {
		progress, err := app.HouseProgress(h.ID)
		if err != nil {
			continue
		}
		out = append(out, houseWithProgress{House: h, Progress: progress})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func formatPct(pct float64) string {
	s := fmt.Sprintf("%.1f%%", pct)
	switch {
	case pct >= 100:
		return color.GreenString(s)
	case pct >= 50:
		return color.YellowString(s)
	default:
		return s
	}
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
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "формат вывода (simple, table, json)")
}
