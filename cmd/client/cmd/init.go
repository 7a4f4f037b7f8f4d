// cmd/client/cmd/init.go
package cmd

import (
	"context"
	"fmt"
	"time"

	"organizer/cmd/client/cmd/auth"
	"organizer/cmd/client/cmd/ledger"
	"organizer/cmd/client/cmd/record"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Проверить настройки клиента",
	Long: `Команда init показывает, где лежат конфигурация и локальный кэш,
и проверяет соединение с сервером.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Println("=== Organizer ===")
		fmt.Println()
		fmt.Printf("Директория: %s\n", cfg.ConfigDir)
		fmt.Printf("Кэш:        %s\n", cfg.CachePath)

		if !app.RemoteEnabled() {
			color.Yellow("Демо-режим: сервер не используется, данные хранятся только локально")
			return nil
		}

		fmt.Printf("Сервер:     %s\n", cfg.BaseURL())

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		if err := app.CheckConnection(ctx); err != nil {
			color.Yellow("⚠️  Не удалось подключиться к серверу: %v", err)
			fmt.Println("Вы можете работать офлайн, записи сохранятся в локальный кэш.")
		} else {
			color.Green("✓ Соединение с сервером установлено")
		}

		if s := app.Session(); s.Token != "" {
			fmt.Printf("Вы вошли как %s\n", s.Email)
		} else {
			fmt.Println()
			fmt.Println("Что дальше:")
			fmt.Println("1. Зарегистрируйтесь: organizer auth register")
			fmt.Println("2. Войдите в систему: organizer auth login")
			fmt.Println("3. Создайте первую запись: organizer record save --kind note --scope FAMILY --title \"...\"")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.VerifyCmd)
	auth.AuthCmd.AddCommand(auth.ResetCmd)

	rootCmd.AddCommand(record.RecordCmd)
	record.RecordCmd.AddCommand(record.ListCmd)
	record.RecordCmd.AddCommand(record.SaveCmd)
	record.RecordCmd.AddCommand(record.DeleteCmd)

	rootCmd.AddCommand(ledger.LedgerCmd)
	ledger.LedgerCmd.AddCommand(ledger.ShowCmd)
	ledger.LedgerCmd.AddCommand(ledger.EarnCmd)
	ledger.LedgerCmd.AddCommand(ledger.SpendCmd)
}
