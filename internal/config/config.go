package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	API      API      `mapstructure:"api"`
	Database Database `mapstructure:"database"`
	Webhook  Webhook  `mapstructure:"webhook"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Database struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Path     string `mapstructure:"path"`
}

type Webhook struct {
	Secret string `mapstructure:"secret"`
}

// Load reads config/config.yml when present and overlays environment
// variables. A missing file or missing secret is not an error here:
// the readiness probe reports unusable configuration instead of the
// process refusing to start.
func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetDefault("api.port", ":8080")
	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.path", "messages.db")

	_ = viper.BindEnv("api.port", "API_PORT")
	_ = viper.BindEnv("database.driver", "DB_DRIVER")
	_ = viper.BindEnv("database.host", "DB_HOST")
	_ = viper.BindEnv("database.port", "DB_PORT")
	_ = viper.BindEnv("database.user", "DB_USER")
	_ = viper.BindEnv("database.password", "DB_PASSWORD")
	_ = viper.BindEnv("database.name", "DB_NAME")
	_ = viper.BindEnv("database.path", "DB_PATH")
	_ = viper.BindEnv("webhook.secret", "WEBHOOK_SECRET")

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
