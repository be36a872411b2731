package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Config holds runtime settings for the platekeeper CLI.
//
// Units: RetryDelay and MemoryCacheTTL are time.Durations; MaxImageBytes is
// a byte count; MaxImageDimension is in pixels.
type Config struct {
	// DataDir is the root of all local state: the catalog database and the
	// images/ cache directory live under it.
	DataDir string

	// Object store settings. The endpoint is a full URL so self-hosted
	// S3-compatible backends (MinIO and friends) work out of the box.
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	// RetryAttempts is the total number of tries for one cloud call,
	// including the first.
	RetryAttempts int
	RetryDelay    time.Duration

	MaxImageDimension int
	MaxImageBytes     int64

	MemoryCacheTTL time.Duration
}

// LoadDefaults populates c with sensible defaults. The data directory
// follows the XDG base directory spec (~/.local/share/platekeeper on most
// Linux setups); the S3 values match a stock local MinIO.
func (c *Config) LoadDefaults() {
	c.DataDir = filepath.Join(xdg.DataHome, "platekeeper")

	c.S3Endpoint = "http://localhost:9000"
	c.S3Region = "us-east-1"
	c.S3Bucket = "platekeeper"
	c.S3AccessKey = "minioadmin"
	c.S3SecretKey = "minioadmin"

	c.RetryAttempts = 3
	c.RetryDelay = 2 * time.Second

	c.MaxImageDimension = 2048
	c.MaxImageBytes = 10 << 20

	c.MemoryCacheTTL = 5 * time.Minute
}

// DatabasePath returns the absolute path of the catalog database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}

// ImagesDir returns the directory holding original and cached image files.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.DataDir, "images")
}

// Load constructs a Config by applying defaults and then overlaying values
// from the JSON file at path, if one was given. Flag overrides (data dir)
// are applied by the command layer on the returned value, so precedence ends
// up defaults < JSON < flags.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
