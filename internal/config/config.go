package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type LedgerConfig struct {
	DepositCapRatio    float64
	BestClientsDefault int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Ledger      LedgerConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			Driver:          v.GetString("DB_DRIVER"),
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Ledger: LedgerConfig{
			DepositCapRatio:    v.GetFloat64("DEPOSIT_CAP_RATIO"),
			BestClientsDefault: v.GetInt("BEST_CLIENTS_DEFAULT_LIMIT"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7091
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = "postgres"
	}
	if cfg.Ledger.DepositCapRatio == 0 {
		cfg.Ledger.DepositCapRatio = 0.25
	}
	if cfg.Ledger.BestClientsDefault == 0 {
		cfg.Ledger.BestClientsDefault = 2
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "sqlite" {
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Ledger.DepositCapRatio <= 0 || cfg.Ledger.DepositCapRatio > 1 {
		return fmt.Errorf("DEPOSIT_CAP_RATIO must be in (0, 1]")
	}
	if cfg.Ledger.BestClientsDefault < 1 {
		return fmt.Errorf("BEST_CLIENTS_DEFAULT_LIMIT must be positive")
	}
	return nil
}
