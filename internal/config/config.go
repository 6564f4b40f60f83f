// Package config loads tool configuration from file, environment and
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/hadirapp-com/support-template/internal/store"
)

// Config is the resolved runtime configuration.
type Config struct {
	// DataDir holds the store files.
	DataDir string `mapstructure:"data_dir"`

	Storage struct {
		// Backend selects the store implementation: bolt, sqlite or memory.
		Backend string `mapstructure:"backend"`
	} `mapstructure:"storage"`

	Log struct {
		// Level is a zerolog level name: debug, info, warn, error.
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Load reads config.yaml from the user config directory, applies HADIR_*
// environment overrides and fills defaults. A missing config file is fine.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "hadir"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("HADIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("storage.backend", store.BackendBolt)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "hadir")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "hadir")
	}
	return ".hadir"
}
