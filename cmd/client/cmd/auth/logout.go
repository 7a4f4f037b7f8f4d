package auth

import (
	"fmt"

	"organizer/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long:  `Удаляет сохраненный токен. Локальный кэш записей остается на месте.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		if err := app.Logout(); err != nil {
			return err
		}

		fmt.Println("Вы вышли из системы")
		return nil
	},
}
