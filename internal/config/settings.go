// Package config loads tool settings from the user's config file and
// environment. Flags override settings; settings override defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds the analyzer's user-tunable defaults.
type Settings struct {
	Compact  bool   `json:"compact" mapstructure:"compact"`
	Output   string `json:"output" mapstructure:"output"` // "" writes to stdout
	LogLevel string `json:"log_level" mapstructure:"log_level"`
}

// DefaultSettings returns the built-in defaults: pretty JSON on stdout,
// info-level logging.
func DefaultSettings() Settings {
	return Settings{
		Compact:  false,
		Output:   "",
		LogLevel: "info",
	}
}

// Load reads settings from ~/.config/synclog/settings.json and SYNCLOG_*
// environment variables. A missing or unreadable config file falls back to
// defaults; settings never make a run fail.
func Load() Settings {
	v := viper.New()
	v.SetConfigName("settings")
	v.SetConfigType("json")
	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("SYNCLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("compact", defaults.Compact)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("log_level", defaults.LogLevel)

	_ = v.ReadInConfig()

	settings := defaults
	if err := v.Unmarshal(&settings); err != nil {
		return defaults
	}
	return settings
}

func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "synclog")
}
