// cmd/client/cmd/auth/register.go
package auth

import (
	"context"
	"fmt"
	"time"

	"organizer/cmd/client/cmd/types"
	"organizer/internal/domain/user"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя на сервере Organizer.

На указанный email придет письмо со ссылкой для подтверждения адреса.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Регистрация нового пользователя ===")
		fmt.Println()

		email := readLine("Email: ")
		password, err := readNewPassword()
		if err != nil {
			return err
		}

		fmt.Println("Регистрация...")
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Register(ctx, user.Credentials{Email: email, Password: password}); err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Println()
		color.Green("✅ Регистрация успешно завершена!")
		fmt.Println("Проверьте почту и подтвердите адрес: organizer auth verify <токен>")
		fmt.Println("Затем войдите в систему: organizer auth login")

		return nil
	},
}
