// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"organizer/cmd/client/cmd/types"
	"organizer/internal/app/client"
	"organizer/internal/app/client/config"
	"organizer/internal/utils/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configDir string
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	debug     bool
	demo      bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "organizer",
	Short: "Organizer - личный органайзер с наградами",
	Long: `Organizer - клиент для заметок, задач, целей, покупок, событий и привычек,
разложенных по пространствам (FAMILY, WORK, ...).

Записи сохраняются на сервере и всегда дублируются в локальный кэш,
поэтому клиент продолжает работать без сети. За действия начисляются
монеты и опыт.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	// Флаги переопределяют переменные окружения
	if configDir != "" {
		viper.Set("CONFIG_DIR", configDir)
	}
	if demo {
		viper.Set("DEMO_MODE", true)
	}
	if debug {
		viper.Set("LOG_LEVEL", "debug")
	}

	cfg = config.MustLoad()
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log = logger.NewCLI(cfg.LogLevel)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "директория конфигурации и локального кэша")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&demo, "demo", false, "демо-режим: работать только с локальным кэшем")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера Organizer (host:port)")
}
