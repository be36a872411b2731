package keeper

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/platekeeper/platekeeper/internal/common"
	"github.com/platekeeper/platekeeper/internal/models"
)

// LoadImage returns the image bytes for a record, trying the memory cache,
// the canonical local file, the cache file and finally the cloud copy.
// Local misses are swallowed and only logged; when every tier fails the
// caller gets common.ErrImageUnavailable, which is recoverable (the next
// load may succeed once the cloud is back).
func (k *Keeper) LoadImage(ctx context.Context, id string) ([]byte, error) {
	if v, ok := k.memcache.Get(id); ok {
		return v.([]byte), nil
	}

	rec, err := k.catalog.Record(ctx, id)
	if err != nil {
		return nil, err
	}

	if rec.LocalPath != "" {
		data, err := k.blobs.Read(rec.LocalPath)
		if err == nil {
			k.memcache.Set(id, data, cache.DefaultExpiration)
			return data, nil
		}
		k.logger.Debug(ctx, "canonical image file miss", "record_id", id, "path", rec.LocalPath)
	}

	if rec.CachePath != "" {
		data, err := k.blobs.Read(rec.CachePath)
		if err == nil {
			k.memcache.Set(id, data, cache.DefaultExpiration)
			return data, nil
		}
		k.logger.Debug(ctx, "cache image file miss", "record_id", id, "path", rec.CachePath)
	}

	if rec.CloudKey != "" && !k.status.Degraded() {
		v, err, _ := k.loads.Do(id, func() (any, error) {
			return k.fetchFromCloud(ctx, rec)
		})
		if err == nil {
			return v.([]byte), nil
		}
		k.logger.Warn(ctx, "cloud image fetch failed", "record_id", id, "error", err)
	}

	return nil, fmt.Errorf("record %s: %w", id, common.ErrImageUnavailable)
}

// fetchFromCloud downloads the object, stores a fresh cache file and posts
// the pointer write-back to the mutation queue. The returned bytes do not
// depend on the write-back outcome.
func (k *Keeper) fetchFromCloud(ctx context.Context, rec *models.PlateRecord) ([]byte, error) {
	data, err := k.cloud.Download(ctx, rec.CloudKey)
	if err != nil {
		return nil, err
	}

	path, werr := k.blobs.Write(data)
	if werr != nil {
		k.logger.Warn(ctx, "could not cache cloud image locally", "record_id", rec.ID, "error", werr)
	} else {
		id := rec.ID
		k.post("persist cache pointer", func(taskCtx context.Context) {
			cur, err := k.catalog.Record(taskCtx, id)
			if err != nil {
				// Record gone in the meantime; drop the orphan file.
				_ = k.blobs.Remove(path)
				return
			}
			old := cur.CachePath
			cur.CachePath = path
			if err := k.catalog.UpsertRecord(taskCtx, cur); err != nil {
				k.logger.Warn(taskCtx, "cache pointer write-back failed", "record_id", id, "error", err)
				return
			}
			if old != "" && old != path {
				_ = k.blobs.Remove(old)
			}
		})
	}

	k.memcache.Set(rec.ID, data, cache.DefaultExpiration)
	return data, nil
}
