package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	AppName    = "tscat"
	AppVersion = "1.0.0"
)

type Config struct {
	Addr       string `env:"TSCAT_ADDR" envDefault:":8080"`
	DataDir    string `env:"TSCAT_DATA_DIR" envDefault:"./data"`
	DBPath     string `env:"TSCAT_DB_PATH"`
	CatalogDir string `env:"TSCAT_CATALOG_DIR"`
	// SyncInterval of zero disables periodic directory sync.
	SyncInterval time.Duration `env:"TSCAT_SYNC_INTERVAL" envDefault:"0s"`
	SyncWorkers  int           `env:"TSCAT_SYNC_WORKERS" envDefault:"4"`
	LogLevel     string        `env:"TSCAT_LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"TSCAT_LOG_FORMAT" envDefault:"text"`
	CacheSize    int           `env:"TSCAT_CACHE_SIZE" envDefault:"32"`
	CacheTTL     time.Duration `env:"TSCAT_CACHE_TTL" envDefault:"10m"`
	// TranslateQPS limits /api/translate per client IP. Zero disables the limit.
	TranslateQPS float64 `env:"TSCAT_TRANSLATE_QPS" envDefault:"50"`
	NodeID       int64   `env:"TSCAT_NODE_ID" envDefault:"1"`
}

// Load parses the environment. DBPath defaults to tscat.db inside DataDir.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "tscat.db")
	}
	cfg.DBPath = filepath.Clean(cfg.DBPath)
	cfg.DataDir = filepath.Clean(cfg.DataDir)
	if cfg.CatalogDir != "" {
		cfg.CatalogDir = filepath.Clean(cfg.CatalogDir)
	}
	if cfg.NodeID < 0 || cfg.NodeID > 1023 {
		return Config{}, fmt.Errorf("TSCAT_NODE_ID must be between 0 and 1023, got %d", cfg.NodeID)
	}
	if cfg.SyncWorkers < 1 {
		cfg.SyncWorkers = 1
	}
	return cfg, nil
}
