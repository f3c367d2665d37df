// Package config manages application configuration from files and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Template struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"template"`
	Output struct {
		Format string `mapstructure:"format"`
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`
	Watch struct {
		DebounceMs int  `mapstructure:"debounce_ms"`
		Recursive  bool `mapstructure:"recursive"`
	} `mapstructure:"watch"`
}

// Load reads the configuration from ~/.formkit/config.yaml and
// environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	// Defaults
	viper.SetDefault("template.dir", filepath.Join(configDir(), "templates"))
	viper.SetDefault("output.format", "text")
	viper.SetDefault("output.color", true)
	viper.SetDefault("watch.debounce_ms", 500)
	viper.SetDefault("watch.recursive", false)

	// Environment variable overrides
	viper.SetEnvPrefix("FORMKIT")
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigPath returns the path of the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Set stores a single key in the config file.
func Set(key, value string) error {
	viper.Set(key, value)
	return SaveConfig()
}

// Get returns a single config value as a string.
func Get(key string) string {
	return viper.GetString(key)
}

// SaveConfig writes the current settings to the config file.
func SaveConfig() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create %s: %w", dir, err)
	}
	return viper.WriteConfigAs(ConfigPath())
}

// ShowConfig renders every setting as "key: value" lines, sorted.
func ShowConfig() string {
	keys := viper.AllKeys()
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += fmt.Sprintf("%s: %v\n", k, viper.Get(k))
	}
	return out
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".formkit"
	}
	return filepath.Join(home, ".formkit")
}
