// cmd/client/cmd/profile.go
package cmd

import (
	"fmt"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"
	"homekeeper/internal/domain/house"

	"github.com/spf13/cobra"
)

var profileName string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Профиль учетной записи",
	Long: `Без флагов показывает профиль активной учетной записи.
С флагом --name сохраняет новое имя.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if app.Identity() == "" {
			return fmt.Errorf("требуется вход. Выполните: homekeeper auth login")
		}

		if cmd.Flags().Changed("name") {
			if err := app.SaveProfile(cmd.Context(), house.Profile{Name: profileName}); err != nil {
				return fmt.Errorf("ошибка сохранения профиля: %w", err)
			}
			fmt.Println("✅ Профиль сохранен")
			return nil
		}

		profile := app.Profile()
		if profile.Name == "" {
			fmt.Println("Профиль не заполнен. Задайте имя: homekeeper profile --name <имя>")
			return nil
		}

		fmt.Printf("Имя: %s\n", profile.Name)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "имя пользователя")
	rootCmd.AddCommand(profileCmd)
}
