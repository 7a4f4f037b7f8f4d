package types

import (
	"fmt"

	"organizer/internal/app/client"

	"github.com/spf13/cobra"
)

type contextKey string

// ClientAppKey - ключ *client.App в контексте команды
const ClientAppKey contextKey = "app"

// AppFrom достает приложение из контекста команды
func AppFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}
