package auth

import (
	"context"
	"fmt"
	"time"

	"organizer/cmd/client/cmd/types"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var VerifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Подтвердить email",
	Long:  `Подтверждение email токеном из письма, отправленного при регистрации.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Verify(ctx, args[0]); err != nil {
			return fmt.Errorf("ошибка подтверждения: %w", err)
		}

		color.Green("✅ Email подтвержден")
		return nil
	},
}
