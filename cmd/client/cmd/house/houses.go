package house

import (
	"github.com/spf13/cobra"
)

// HouseCmd - родительская команда для всех операций с домами
var HouseCmd = &cobra.Command{
	Use:   "house",
	Short: "Управление домами",
	Long:  `Добавление, просмотр, изменение и удаление домов.`,
}
