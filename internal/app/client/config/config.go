package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress  = "localhost:8080"
	defaultLogLevel       = "info"
	defaultEnv            = "local"
	defaultConfigDir      = ".organizer"
	defaultRequestTimeout = 10
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	ServerAddress  string        `mapstructure:"server_address"`
	LogLevel       string        `mapstructure:"log_level"`
	ConfigDir      string        `mapstructure:"config_dir"`
	TokenPath      string        `mapstructure:"token_path"`
	CachePath      string        `mapstructure:"cache_path"`
	EnableTLS      bool          `mapstructure:"enable_tls"`
	DemoMode       bool          `mapstructure:"demo_mode"`
	RequestTimeout time.Duration `mapstructure:"request_timeout_seconds"`
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("ENABLE_TLS", false)
	viper.SetDefault("DEMO_MODE", false)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)

	config := Load(viper.GetString("CONFIG_DIR"))

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	return config
}

// Load собирает конфигурацию из viper для каталога configDir
func Load(configDir string) *Config {
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("Ошибка создания директории конфигурации: %v\n", err)
	}

	return &Config{
		Env:            viper.GetString("APP_ENV"),
		ServerAddress:  viper.GetString("SERVER_ADDRESS"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		TokenPath:      filepath.Join(configDir, "token"),
		CachePath:      filepath.Join(configDir, "cache.db"),
		EnableTLS:      viper.GetBool("ENABLE_TLS"),
		DemoMode:       viper.GetBool("DEMO_MODE"),
		RequestTimeout: time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
	}
}

func (c *Config) validate() error {
	if c.ServerAddress == "" && !c.DemoMode {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть положительным")
	}
	return nil
}

// BaseURL возвращает адрес сервера со схемой
func (c *Config) BaseURL() string {
	scheme := "http"
	if c.EnableTLS {
		scheme = "https"
	}
	return scheme + "://" + c.ServerAddress
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
