package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/penwyp/go-eld-log/internal/core/constants"
)

type Config struct {
	Timezone string         `toml:"timezone"`
	Data     DataConfig     `toml:"data"`
	Database DatabaseConfig `toml:"database"`
	Output   OutputConfig   `toml:"output"`
	Server   ServerConfig   `toml:"server"`
	Watch    WatchConfig    `toml:"watch"`
	Log      LogConfig      `toml:"log"`
}

type DataConfig struct {
	Dir         string `toml:"dir"`
	Concurrency int    `toml:"concurrency"`
}

type DatabaseConfig struct {
	DSN    string `toml:"dsn"` // postgres URL or sqlite path
	TripID int64  `toml:"trip_id"`
}

type OutputConfig struct {
	Format       string   `toml:"format"`
	Width        int      `toml:"width"` // 0 detects the terminal
	Color        bool     `toml:"color"`
	StrictTotals bool     `toml:"strict_totals"`
	RemarkKinds  []string `toml:"remark_kinds"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type WatchConfig struct {
	DebounceMillis int `toml:"debounce_ms"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"` // text or json
}

func DefaultConfig() Config {
	return Config{
		Timezone: "Local",
		Data: DataConfig{
			Dir: ".",
		},
		Output: OutputConfig{
			Format:      "table",
			Color:       true,
			RemarkKinds: []string{"fuel", "rest"},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Watch: WatchConfig{
			DebounceMillis: int(constants.DefaultWatchDebounce / time.Millisecond),
		},
		Log: LogConfig{
			Level:  "info",
			File:   "~/.go-eld-log/logs/app.log",
			Format: "text",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "go-eld-log"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads path, or the default config path when path is empty. A
// missing file yields the defaults. Environment overrides apply last.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ELD_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("ELD_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("ELD_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("ELD_TRIP_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ELD_TRIP_ID %q: %w", v, err)
		}
		cfg.Database.TripID = id
	}
	if v := os.Getenv("ELD_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ELD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}
