package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// AuthCmd - родительская команда для всех операций с авторизацией пользователя
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление пользователем",
	Long:  `Регистрация, вход, подтверждение email и сброс пароля.`,
}

func readLine(prompt string) string {
	fmt.Print(prompt)
	var s string
	_, _ = fmt.Scanln(&s)
	return strings.TrimSpace(s)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(password), nil
}

// readNewPassword запрашивает пароль дважды
func readNewPassword() (string, error) {
	password, err := readPassword("Пароль: ")
	if err != nil {
		return "", err
	}
	confirm, err := readPassword("Повторите пароль: ")
	if err != nil {
		return "", err
	}

	if password != confirm {
		return "", fmt.Errorf("пароли не совпадают")
	}
	if len(password) < 8 {
		return "", fmt.Errorf("пароль должен содержать минимум 8 символов")
	}
	return password, nil
}
