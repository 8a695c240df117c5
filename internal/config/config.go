// Package config loads the pdsextract application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file settings.
const (
	EnvMapping = "PDSEXTRACT_MAPPING"
	EnvDataDir = "PDSEXTRACT_DATA_DIR"
	EnvPort    = "PDSEXTRACT_PORT"
)

// AppConfig is the application configuration.
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Mapping MappingConfig `toml:"mapping"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig configures the upload server.
type ServerConfig struct {
	Port        int   `toml:"port"`
	DevMode     bool  `toml:"dev_mode"`
	MaxUploadMB int64 `toml:"max_upload_mb"`
}

// DataConfig locates uploads and the extraction history.
type DataConfig struct {
	DataDir   string `toml:"data_dir"`
	HistoryDB string `toml:"history_db"`
}

// MappingConfig selects the mapping schema. An empty Path uses the
// built-in CS Form 212 mapping.
type MappingConfig struct {
	Path         string `toml:"path"`
	DefaultSheet string `toml:"default_sheet"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20612,
			MaxUploadMB: 10,
		},
		Data: DataConfig{
			DataDir:   "data",
			HistoryDB: "history.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error. Environment overrides are applied last.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv(EnvMapping); v != "" {
		cfg.Mapping.Path = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Data.DataDir = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Server.Port = port
	}
	return nil
}

// Save writes cfg to path as TOML.
func Save(cfg *AppConfig, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir creates the data directory and its uploads subdirectory,
// returning the data directory path.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := cfg.Data.DataDir
	if err := os.MkdirAll(filepath.Join(dataDir, "uploads"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// UploadDir returns the directory uploads are staged in.
func (c *AppConfig) UploadDir() string {
	return filepath.Join(c.Data.DataDir, "uploads")
}

// HistoryPath returns the extraction history database path.
func (c *AppConfig) HistoryPath() string {
	if filepath.IsAbs(c.Data.HistoryDB) {
		return c.Data.HistoryDB
	}
	return filepath.Join(c.Data.DataDir, c.Data.HistoryDB)
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *AppConfig) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}
