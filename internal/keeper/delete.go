package keeper

import (
	"context"
)

// DeleteRecord removes the record's local files, schedules a best-effort
// cloud delete and drops the catalog entry together with its view
// transform. The cloud delete gets one bounded attempt in the background;
// if it fails the object is orphaned and only logged.
func (k *Keeper) DeleteRecord(ctx context.Context, id string) error {
	err := k.do(ctx, "delete record", func(ctx context.Context) error {
		rec, err := k.catalog.Record(ctx, id)
		if err != nil {
			return err
		}

		if err := k.blobs.Remove(rec.LocalPath); err != nil {
			k.logger.Warn(ctx, "could not remove local image file", "record_id", id, "error", err)
		}
		if err := k.blobs.Remove(rec.CachePath); err != nil {
			k.logger.Warn(ctx, "could not remove cache image file", "record_id", id, "error", err)
		}

		if rec.CloudKey != "" {
			k.asyncCloudDelete(rec.ID, rec.CloudKey)
		}

		return k.catalog.DeleteRecord(ctx, id)
	})
	if err != nil {
		return err
	}

	k.memcache.Delete(id)
	k.logger.Info(ctx, "record deleted", "record_id", id)
	return nil
}

// asyncCloudDelete releases the cloud object without blocking the caller.
// Close waits for these to finish; each holds its own timeout so shutdown
// stays bounded even with the cloud unreachable.
func (k *Keeper) asyncCloudDelete(id, key string) {
	k.deletes.Add(1)
	go func() {
		defer k.deletes.Done()

		ctx, cancel := context.WithTimeout(context.Background(), cloudDeleteTimeout)
		defer cancel()

		if err := k.cloud.Delete(ctx, key); err != nil {
			k.logger.Warn(ctx, "cloud delete failed, object orphaned",
				"record_id", id, "key", key, "error", err)
		}
	}()
}
