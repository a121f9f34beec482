// cmd/client/cmd/init.go
package cmd

import (
	"homekeeper/cmd/client/cmd/auth"
	"homekeeper/cmd/client/cmd/house"
	"homekeeper/cmd/client/cmd/payment"
	"homekeeper/cmd/client/cmd/sync"
)

func init() {
	// Добавляем команды аутентификации
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.StatusCmd)

	// Добавляем команды работы с домами
	rootCmd.AddCommand(house.HouseCmd)
	house.HouseCmd.AddCommand(house.AddCmd)
	house.HouseCmd.AddCommand(house.ListCmd)
	house.HouseCmd.AddCommand(house.UpdateCmd)
	house.HouseCmd.AddCommand(house.DeleteCmd)

	// Добавляем команды работы с платежами
	rootCmd.AddCommand(payment.PaymentCmd)
	payment.PaymentCmd.AddCommand(payment.AddCmd)
	payment.PaymentCmd.AddCommand(payment.ListCmd)
	payment.PaymentCmd.AddCommand(payment.EditCmd)
	payment.PaymentCmd.AddCommand(payment.DeleteCmd)

	rootCmd.AddCommand(sync.SyncCmd)
}
