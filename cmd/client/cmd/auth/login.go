// cmd/client/cmd/auth/login.go
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

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Аутентификация на сервере Organizer.

После входа токен сохраняется локально для последующих операций,
а счетчик наград загружается с сервера.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Вход в систему ===")
		fmt.Println()

		email := readLine("Email: ")
		password, err := readPassword("Пароль: ")
		if err != nil {
			return err
		}

		fmt.Println("Аутентификация...")
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Login(ctx, user.Credentials{Email: email, Password: password}); err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		fmt.Println()
		color.Green("✅ Вход выполнен успешно!")

		state := app.Ledger().Load(ctx)
		fmt.Printf("Монеты: %d | Опыт: %d | Уровень: %d\n", state.Ledger.Coins, state.Ledger.XP, state.Ledger.Level)
		if state.DailyBonus {
			color.Yellow("🎁 Начислен ежедневный бонус")
		}

		return nil
	},
}
