// cmd/client/cmd/auth/login.go
package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"homekeeper/cmd/client/cmd/types"
	"homekeeper/internal/app/client"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var skipBootstrap bool

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в учетную запись HomeKeeper",
	Long: `Делает учетную запись активной и устанавливает сессию с сервером.

Ключ доступа сохраняется локально и используется для всех последующих
запросов. При недоступном сервере вход выполняется в офлайн-режиме.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		fmt.Println("=== Вход в учетную запись ===")
		fmt.Println()

		// Запрашиваем ключ доступа
		fmt.Print("Ключ доступа: ")
		key, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения ключа: %w", err)
		}
		fmt.Println()

		if len(key) == 0 {
			return fmt.Errorf("ключ доступа не может быть пустым")
		}

		app.SetIdentity(string(key))

		// Пробуем установить сессию
		fmt.Println("Подключение к серверу...")
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		app.Session().TryConnect(ctx)
		if !app.Session().IsReady() {
			fmt.Println("⚠️  Сервер недоступен, работаем в офлайн-режиме")
			fmt.Println("Изменения будут синхронизированы при появлении соединения")
			return nil
		}

		fmt.Println("✓ Сессия установлена")

		if skipBootstrap {
			return nil
		}

		// Забираем актуальный срез с сервера
		fmt.Println("Загрузка данных...")
		snap, err := app.Bootstrap(ctx)
		if err != nil {
			fmt.Printf("⚠️  Предупреждение: не удалось загрузить данные: %v\n", err)
			fmt.Println("Вы можете продолжить работу с локальной копией")
			return nil
		}

		fmt.Println()
		fmt.Println("✅ Вход выполнен успешно!")
		fmt.Printf("Домов: %d, оплачено всего: %.2f\n", len(snap.Houses), snap.Summary.TotalPaid)

		return nil
	},
}

func init() {
	LoginCmd.Flags().BoolVar(&skipBootstrap, "no-bootstrap", false, "не загружать данные с сервера после входа")
}
