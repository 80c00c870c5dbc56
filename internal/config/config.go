// Package config loads the CLI configuration file (roster.yaml).
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the application configuration for the roster CLI.
type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// DataConfig locates the source files and controls classification.
type DataConfig struct {
	Dir          string `mapstructure:"dir"`           // directory of YYYY-MM.csv files
	OffsetsFile  string `mapstructure:"offsets_file"`  // initial saved-rest-days JSON, optional
	DatabasePath string `mapstructure:"database_path"` // SQLite path, empty disables persistence
	TableVersion string `mapstructure:"table_version"` // "current" or "legacy"
	OutputDir    string `mapstructure:"output_dir"`    // where convert writes its files
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. An empty path falls back to the
// standard search locations.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("roster")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.roster-engine")
	}

	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.table_version", "current")
	v.SetDefault("data.output_dir", "./out")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Defaults alone are a valid configuration.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	switch c.Data.TableVersion {
	case "current", "legacy":
	default:
		return fmt.Errorf("data.table_version must be %q or %q", "current", "legacy")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535")
	}
	return nil
}
