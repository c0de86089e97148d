package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the user-editable tool configuration, stored as TOML under
// ~/.relplan/config.toml. Missing file means defaults.
type Config struct {
	DatabasePath   string `toml:"database_path"`
	DefaultCountry string `toml:"default_country"`
	LogUseCases    bool   `toml:"log_use_cases"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultCountry: "US",
	}
}

func RelplanDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".relplan"), nil
}

func ConfigPath() (string, error) {
	dir, err := RelplanDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func defaultDatabasePath() (string, error) {
	dir, err := RelplanDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "relplan.db"), nil
}

func EnsureDirectories() error {
	dir, err := RelplanDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// Load reads the config file, falling back to defaults when it is absent.
// The RELPLAN_DB environment variable overrides the database path either way.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, err
		}
	}

	if envDB := os.Getenv("RELPLAN_DB"); envDB != "" {
		cfg.DatabasePath = envDB
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath, err = defaultDatabasePath()
		if err != nil {
			return nil, err
		}
	}
	cfg.DatabasePath = expandPath(cfg.DatabasePath)

	return cfg, nil
}

// Save writes the config back as TOML, creating ~/.relplan if needed.
func Save(cfg *Config) error {
	if err := EnsureDirectories(); err != nil {
		return err
	}
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
