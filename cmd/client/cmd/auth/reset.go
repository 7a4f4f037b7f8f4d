package auth

import (
	"context"
	"fmt"
	"time"

	"organizer/cmd/client/cmd/types"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetToken string

var ResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Сбросить пароль",
	Long: `Без флага --token отправляет письмо со ссылкой для сброса пароля.
С флагом --token задает новый пароль по токену из письма.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if resetToken == "" {
			email := readLine("Email: ")
			if err := app.RequestPasswordReset(ctx, email); err != nil {
				return fmt.Errorf("ошибка запроса сброса пароля: %w", err)
			}
			fmt.Println("Если такой пользователь существует, на почту придет письмо со ссылкой.")
			return nil
		}

		password, err := readNewPassword()
		if err != nil {
			return err
		}

		if err := app.ResetPassword(ctx, resetToken, password); err != nil {
			return fmt.Errorf("ошибка сброса пароля: %w", err)
		}

		color.Green("✅ Пароль изменен, войдите заново: organizer auth login")
		return nil
	},
}

func init() {
	ResetCmd.Flags().StringVar(&resetToken, "token", "", "токен из письма")
}
