package keeper

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/platekeeper/platekeeper/internal/common"
	"github.com/platekeeper/platekeeper/internal/models"
)

// CreateInput carries everything needed to create a record. Filename is the
// user-facing name of the picked file; it survives only as cloud object
// metadata.
type CreateInput struct {
	Title    string
	Plate    string
	Category models.Category
	Filename string
	Image    []byte
}

// CreateRecord validates the input, normalizes the image, stores it locally
// and best-effort uploads a cloud copy. The record is only persisted once
// the local file exists; a cloud failure downgrades the save to local-only
// but never fails it.
func (k *Keeper) CreateRecord(ctx context.Context, in CreateInput) (*models.PlateRecord, error) {
	rec, err := models.NewPlateRecord(in.Title, in.Plate, in.Category)
	if err != nil {
		return nil, err
	}
	if len(in.Image) == 0 {
		return nil, fmt.Errorf("%w: image is required", common.ErrValidation)
	}

	res, err := k.optimizer.Normalize(in.Image)
	if err != nil {
		return nil, err
	}
	if res.SizeExceeded {
		k.logger.Warn(ctx, "image still over the size bound at lowest quality, keeping it",
			"record_id", rec.ID, "bytes", len(res.Data))
	}

	path, err := k.blobs.Write(res.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store image locally: %w", err)
	}
	rec.LocalPath = path

	if !k.status.Degraded() {
		key, err := k.cloud.Upload(ctx, in.Filename, res.Data)
		if err != nil {
			k.logger.Warn(ctx, "cloud upload failed, record stays local-only",
				"record_id", rec.ID, "error", err)
		} else {
			rec.CloudKey = key
		}
	}

	if err := k.do(ctx, "create record", func(ctx context.Context) error {
		return k.catalog.UpsertRecord(ctx, rec)
	}); err != nil {
		_ = k.blobs.Remove(path)
		if rec.CloudKey != "" {
			k.asyncCloudDelete(rec.ID, rec.CloudKey)
		}
		return nil, fmt.Errorf("failed to persist record: %w", err)
	}

	k.memcache.Set(rec.ID, res.Data, cache.DefaultExpiration)
	k.logger.Info(ctx, "record created",
		"record_id", rec.ID, "category", string(rec.Category), "cloud", rec.CloudKey != "")
	return rec, nil
}
