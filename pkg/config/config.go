package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	xdgAppName  = "studyboard"
	configFile  = "config.json"
	importsFile = "imports.yaml"
	envPrefix   = "STUDYBOARD"

	DefaultCalendar     = "Tasks"
	DefaultUpcomingDays = 7
)

type Config struct {
	// Calendar is the Google calendar that mirrors the task list.
	Calendar string `json:"calendar" mapstructure:"calendar"`
	// SeedFile replaces the bundled sample data when set.
	SeedFile string `json:"seed_file,omitempty" mapstructure:"seed_file"`
	// UpcomingDays is the look-ahead window of the dashboard.
	UpcomingDays int `json:"upcoming_days" mapstructure:"upcoming_days"`
	// ImportsFile keeps imported tasks between runs.
	ImportsFile string `json:"imports_file,omitempty" mapstructure:"imports_file"`
}

// ImportsPath returns where imported tasks are kept, defaulting to the
// config directory.
func (c *Config) ImportsPath() (string, error) {
	if c.ImportsFile != "" {
		return c.ImportsFile, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, importsFile), nil
}

func GetConfigDir() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("calendar", DefaultCalendar)
	v.SetDefault("seed_file", "")
	v.SetDefault("upcoming_days", DefaultUpcomingDays)
	v.SetDefault("imports_file", "")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the user config. A missing file yields the defaults;
// STUDYBOARD_* environment variables override both.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Calendar == "" {
		cfg.Calendar = DefaultCalendar
	}
	if cfg.UpcomingDays <= 0 {
		cfg.UpcomingDays = DefaultUpcomingDays
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
