package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/platekeeper/platekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "2s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	DataDir           string         `json:"data_dir"`
	S3Endpoint        string         `json:"s3_endpoint"`
	S3Region          string         `json:"s3_region"`
	S3Bucket          string         `json:"s3_bucket"`
	S3AccessKey       string         `json:"s3_access_key"`
	S3SecretKey       string         `json:"s3_secret_key"`
	RetryAttempts     int            `json:"retry_attempts"`
	RetryDelay        timex.Duration `json:"retry_delay"`
	MaxImageDimension int            `json:"max_image_dimension"`
	MaxImageBytes     int64          `json:"max_image_bytes"`
	MemoryCacheTTL    timex.Duration `json:"memory_cache_ttl"`
}

// parseJson overlays cfg with values loaded from the JSON file at path.
// An empty path means no file was configured and is not an error. Only keys
// present in the file override the existing values, so a partial file keeps
// the defaults for everything it does not mention.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.S3Endpoint != "" {
		cfg.S3Endpoint = jc.S3Endpoint
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.RetryAttempts > 0 {
		cfg.RetryAttempts = jc.RetryAttempts
	}
	if jc.RetryDelay.Duration > 0 {
		cfg.RetryDelay = time.Duration(jc.RetryDelay.Duration)
	}
	if jc.MaxImageDimension > 0 {
		cfg.MaxImageDimension = jc.MaxImageDimension
	}
	if jc.MaxImageBytes > 0 {
		cfg.MaxImageBytes = jc.MaxImageBytes
	}
	if jc.MemoryCacheTTL.Duration > 0 {
		cfg.MemoryCacheTTL = time.Duration(jc.MemoryCacheTTL.Duration)
	}

	return nil
}
