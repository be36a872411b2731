// Package blobcache stores image files under a single flat directory.
// Canonical originals and cloud-fetched cache copies share the same layout;
// which role a file plays is decided by the catalog pointer referencing it.
package blobcache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/platekeeper/platekeeper/internal/filex"
)

// ErrMiss is returned by Read when the file is absent or unreadable.
// Callers treat it as a cache miss and fall through to the next tier.
var ErrMiss = errors.New("blob not in cache")

type Cache struct {
	dir string
}

// New ensures dir exists and returns a cache rooted there.
func New(dir string) (*Cache, error) {
	if _, err := filex.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to prepare blob dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the directory the cache writes into.
func (c *Cache) Dir() string {
	return c.dir
}

// Write stores data under a fresh timestamped name and returns the absolute
// path. The write goes through a temp file and rename, so a crash never
// leaves a half-written blob behind.
func (c *Cache) Write(data []byte) (string, error) {
	name := time.Now().UTC().Format("20060102150405") + "_" + uuid.NewString() + ".jpg"
	path := filepath.Join(c.dir, name)

	if err := filex.AtomicWrite(path, data); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return path, nil
}

// Read returns the file contents, or ErrMiss when path is empty, absent, or
// unreadable.
func (c *Cache) Read(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrMiss
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blob %s: %v: %w", filepath.Base(path), err, ErrMiss)
	}
	return data, nil
}

// Remove deletes the file at path. An already-missing file is not an error;
// an empty path is a no-op.
func (c *Cache) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove blob: %w", err)
	}
	return nil
}

// Usage scans the cache directory and returns the file count and total size
// in bytes.
func (c *Cache) Usage() (int, int64, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to scan blob dir: %w", err)
	}

	var files int
	var bytes int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // deleted mid-scan
		}
		files++
		bytes += info.Size()
	}
	return files, bytes, nil
}
