package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress      = ":8080"
	defaultMigrations      = "migrations"
	defaultRedisAddr       = "localhost:6379"
	defaultSMTPPort        = 587
	defaultPublicURL       = "http://localhost:8080"
	defaultLedgerTimezone  = "UTC"
	defaultDailyBonusCoins = 10
)

type Config struct {
	Env    string
	DB     DB
	Redis  Redis
	SMTP   SMTP
	Server Server
	Ledger Ledger
	Logger Logger
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
}

type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

type Server struct {
	RunAddress string `env:"RUN_ADDRESS"`
	PublicURL  string `env:"PUBLIC_URL"`
}

// Ledger - параметры начисления наград
type Ledger struct {
	Location        *time.Location
	DailyBonusCoins int
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// MustLoad загружает конфигурацию сервера, паникует при невалидных значениях
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("RUN_ADDRESS", defaultRunAddress)
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrations)
	viper.SetDefault("REDIS_ADDR", defaultRedisAddr)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SMTP_PORT", defaultSMTPPort)
	viper.SetDefault("PUBLIC_URL", defaultPublicURL)
	viper.SetDefault("LEDGER_TIMEZONE", defaultLedgerTimezone)
	viper.SetDefault("DAILY_BONUS_COINS", defaultDailyBonusCoins)
	viper.SetDefault("LOG_LEVEL", "info")

	loc, err := time.LoadLocation(viper.GetString("LEDGER_TIMEZONE"))
	if err != nil {
		panic(fmt.Sprintf("invalid LEDGER_TIMEZONE: %v", err))
	}

	cfg := &Config{
		Env: viper.GetString("APP_ENV"),
		DB: DB{
			DatabaseURI: viper.GetString("DATABASE_URI"),
			Migrations:  viper.GetString("MIGRATIONS_PATH"),
		},
		Redis: Redis{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		SMTP: SMTP{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
		Server: Server{
			RunAddress: viper.GetString("RUN_ADDRESS"),
			PublicURL:  viper.GetString("PUBLIC_URL"),
		},
		Ledger: Ledger{
			Location:        loc,
			DailyBonusCoins: viper.GetInt("DAILY_BONUS_COINS"),
		},
		Logger: Logger{LogLevel: viper.GetString("LOG_LEVEL")},
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("config error: %v", err))
	}

	return cfg
}

func (c *Config) validate() error {
	if c.DB.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI is required")
	}
	if c.Ledger.DailyBonusCoins < 0 {
		return fmt.Errorf("DAILY_BONUS_COINS must not be negative")
	}
	return nil
}
