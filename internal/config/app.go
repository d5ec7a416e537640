package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type CountriesAPI struct {
	BaseURL string `mapstructure:"base_url"`
}

type ExchangeRateAPI struct {
	BaseURL  string `mapstructure:"base_url"`
	BaseCode string `mapstructure:"base_code"`
}

type Refresh struct {
	Strategy   string `mapstructure:"strategy"`
	BatchLimit int    `mapstructure:"batch_limit"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type Scheduler struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalMinutes int  `mapstructure:"interval_minutes"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	DbServer        DbServer        `mapstructure:"db_server"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	CountriesAPI    CountriesAPI    `mapstructure:"countries_api"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	Refresh         Refresh         `mapstructure:"refresh"`
	Cache           Cache           `mapstructure:"cache"`
	Scheduler       Scheduler       `mapstructure:"scheduler"`
	Logging         Logging         `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional outside local development.
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("db_server.max_conns", 10)
	viper.SetDefault("http_client.timeout_seconds", 30)
	viper.SetDefault("countries_api.base_url", "https://restcountries.com/v3.1")
	viper.SetDefault("exchange_rate_api.base_url", "https://open.er-api.com/v6")
	viper.SetDefault("exchange_rate_api.base_code", "USD")
	viper.SetDefault("refresh.strategy", "upsert")
	viper.SetDefault("refresh.batch_limit", 50)
	viper.SetDefault("cache.max_items", 1024)
	viper.SetDefault("scheduler.enabled", false)
	viper.SetDefault("scheduler.interval_minutes", 60)
	viper.SetDefault("logging.level", "info")

	// http server env vars
	_ = viper.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = viper.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// upstream provider env vars
	_ = viper.BindEnv("countries_api.base_url", "COUNTRIES_API_BASE_URL")
	_ = viper.BindEnv("exchange_rate_api.base_url", "EXCHANGE_RATE_API_BASE_URL")
	_ = viper.BindEnv("exchange_rate_api.base_code", "EXCHANGE_RATE_API_BASE_CODE")

	// refresh pipeline env vars
	_ = viper.BindEnv("refresh.strategy", "REFRESH_STRATEGY")
	_ = viper.BindEnv("refresh.batch_limit", "REFRESH_BATCH_LIMIT")

	// cache and scheduler env vars
	_ = viper.BindEnv("cache.max_items", "CACHE_MAX_ITEMS")
	_ = viper.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	_ = viper.BindEnv("scheduler.interval_minutes", "SCHEDULER_INTERVAL_MINUTES")

	// logging env vars
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
