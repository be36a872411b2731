package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("empty path leaves config untouched", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg

		require.NoError(t, parseJson(cfg, ""))
		assert.Empty(t, cmp.Diff(want, *cfg))
	})

	t.Run("full file overrides every field", func(t *testing.T) {
		path := writeTempJSON(t, "full.json", `{
			"data_dir": "/srv/pk",
			"s3_endpoint": "https://s3.example:9000",
			"s3_region": "eu-west-1",
			"s3_bucket": "plates",
			"s3_access_key": "ak",
			"s3_secret_key": "sk",
			"retry_attempts": 5,
			"retry_delay": "500ms",
			"max_image_dimension": 1024,
			"max_image_bytes": 1048576,
			"memory_cache_ttl": "90s"
		}`)

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, path))

		want := Config{
			DataDir:           "/srv/pk",
			S3Endpoint:        "https://s3.example:9000",
			S3Region:          "eu-west-1",
			S3Bucket:          "plates",
			S3AccessKey:       "ak",
			S3SecretKey:       "sk",
			RetryAttempts:     5,
			RetryDelay:        500 * time.Millisecond,
			MaxImageDimension: 1024,
			MaxImageBytes:     1 << 20,
			MemoryCacheTTL:    90 * time.Second,
		}
		assert.Empty(t, cmp.Diff(want, *cfg))
	})

	t.Run("partial file keeps defaults for missing keys", func(t *testing.T) {
		path := writeTempJSON(t, "partial.json", `{"s3_bucket": "other", "retry_delay": 1000000000}`)

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "other", cfg.S3Bucket)
		assert.Equal(t, time.Second, cfg.RetryDelay)
		assert.Equal(t, 3, cfg.RetryAttempts)
		assert.Equal(t, "http://localhost:9000", cfg.S3Endpoint)
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		path := writeTempJSON(t, "bad.json", `{ this is not valid json`)

		cfg := &Config{}
		cfg.LoadDefaults()
		require.Error(t, parseJson(cfg, path))
	})

	t.Run("missing file fails", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.Error(t, parseJson(cfg, filepath.Join(t.TempDir(), "absent.json")))
	})
}
