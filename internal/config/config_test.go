package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "platekeeper", filepath.Base(c.DataDir))
	assert.True(t, filepath.IsAbs(c.DataDir))

	assert.Equal(t, "http://localhost:9000", c.S3Endpoint)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "platekeeper", c.S3Bucket)
	assert.Equal(t, "minioadmin", c.S3AccessKey)
	assert.Equal(t, "minioadmin", c.S3SecretKey)

	assert.Equal(t, 3, c.RetryAttempts)
	assert.Equal(t, 2*time.Second, c.RetryDelay)

	assert.Equal(t, 2048, c.MaxImageDimension)
	assert.Equal(t, int64(10<<20), c.MaxImageBytes)

	assert.Equal(t, 5*time.Minute, c.MemoryCacheTTL)
}

func TestConfig_Paths(t *testing.T) {
	c := Config{DataDir: "/data/pk"}

	assert.Equal(t, filepath.Join("/data/pk", "catalog.db"), c.DatabasePath())
	assert.Equal(t, filepath.Join("/data/pk", "images"), c.ImagesDir())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, "http://localhost:9000", cfg.S3Endpoint)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
