package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Payments PaymentsConfig
	Email    EmailConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// PaymentsConfig holds credentials for the external payment processor.
// SecretKey authenticates API calls, WebhookSecret verifies inbound events.
type PaymentsConfig struct {
	BaseURL        string
	SecretKey      string
	WebhookSecret  string
	Currency       string
	TimeoutSeconds int
	MinChargeCents int64
}

type EmailConfig struct {
	BaseURL string
	APIKey  string
	From    string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PAYMENTS_CURRENCY", "usd")
	viper.SetDefault("PAYMENTS_TIMEOUT_SECONDS", 15)
	viper.SetDefault("PAYMENTS_MIN_CHARGE_CENTS", 50)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Payments: PaymentsConfig{
			BaseURL:        viper.GetString("PAYMENTS_BASE_URL"),
			SecretKey:      viper.GetString("PAYMENTS_SECRET_KEY"),
			WebhookSecret:  viper.GetString("PAYMENTS_WEBHOOK_SECRET"),
			Currency:       viper.GetString("PAYMENTS_CURRENCY"),
			TimeoutSeconds: viper.GetInt("PAYMENTS_TIMEOUT_SECONDS"),
			MinChargeCents: viper.GetInt64("PAYMENTS_MIN_CHARGE_CENTS"),
		},
		Email: EmailConfig{
			BaseURL: viper.GetString("EMAIL_BASE_URL"),
			APIKey:  viper.GetString("EMAIL_API_KEY"),
			From:    viper.GetString("EMAIL_FROM"),
		},
	}

	return config, nil
}
