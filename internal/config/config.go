package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the only persisted config file schema.
type Config struct {
	URL      string `toml:"url"`
	Token    string `toml:"token"`
	PageSize int    `toml:"page_size"`
	Source   string `toml:"-"`
}

func Default() Config {
	return Config{PageSize: 10}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scenyx", "config.toml")
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = Default().PageSize
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv("SCENYX_BASE_URL")); env != "" {
		cfg.URL = env
	}
	if env := strings.TrimSpace(os.Getenv("SCENYX_AUTH_TOKEN")); env != "" {
		cfg.Token = env
	}
	return cfg
}
