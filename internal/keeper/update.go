package keeper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/platekeeper/platekeeper/internal/common"
	"github.com/platekeeper/platekeeper/internal/models"
)

// UpdateInput holds metadata edits. Empty fields keep the current value;
// the image is never touched by an edit.
type UpdateInput struct {
	Title    string
	Plate    string
	Category models.Category
}

// UpdateMetadata applies the non-empty fields of in to the record and bumps
// UpdatedAt.
func (k *Keeper) UpdateMetadata(ctx context.Context, id string, in UpdateInput) (*models.PlateRecord, error) {
	var updated *models.PlateRecord
	err := k.do(ctx, "update metadata", func(ctx context.Context) error {
		rec, err := k.catalog.Record(ctx, id)
		if err != nil {
			return err
		}

		if t := strings.TrimSpace(in.Title); t != "" {
			rec.Title = t
		}
		if p := strings.TrimSpace(in.Plate); p != "" {
			rec.Plate = p
		}
		if in.Category != "" {
			if !in.Category.Valid() {
				return fmt.Errorf("%w: unknown category %q", common.ErrValidation, string(in.Category))
			}
			rec.Category = in.Category
		}
		rec.UpdatedAt = time.Now().UTC()

		if err := k.catalog.UpsertRecord(ctx, rec); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkViewed increments the record's view counter. Viewing is not an edit,
// so UpdatedAt stays put.
func (k *Keeper) MarkViewed(ctx context.Context, id string) (*models.PlateRecord, error) {
	var viewed *models.PlateRecord
	err := k.do(ctx, "mark viewed", func(ctx context.Context) error {
		rec, err := k.catalog.Record(ctx, id)
		if err != nil {
			return err
		}
		rec.ViewCount++
		if err := k.catalog.UpsertRecord(ctx, rec); err != nil {
			return err
		}
		viewed = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return viewed, nil
}

// Record returns a single catalog record.
func (k *Keeper) Record(ctx context.Context, id string) (*models.PlateRecord, error) {
	return k.catalog.Record(ctx, id)
}

// Records lists the catalog in creation order.
func (k *Keeper) Records(ctx context.Context) ([]models.PlateRecord, error) {
	return k.catalog.Records(ctx)
}

// Transform returns the record's stored view transform, or the identity
// default when none was saved yet. Unknown ids yield common.ErrNotFound.
func (k *Keeper) Transform(ctx context.Context, id string) (*models.ViewTransform, error) {
	if _, err := k.catalog.Record(ctx, id); err != nil {
		return nil, err
	}
	t, err := k.catalog.Transform(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		def := models.DefaultTransform()
		return &def, nil
	}
	return t, nil
}

// SetTransform clamps t against the viewport and persists it. The clamped
// value is returned so callers can reflect what was actually stored.
func (k *Keeper) SetTransform(ctx context.Context, id string, t models.ViewTransform, vp models.Viewport) (*models.ViewTransform, error) {
	clamped := t.Clamp(vp)
	err := k.do(ctx, "set transform", func(ctx context.Context) error {
		if _, err := k.catalog.Record(ctx, id); err != nil {
			return err
		}
		return k.catalog.SetTransform(ctx, id, clamped)
	})
	if err != nil {
		return nil, err
	}
	return &clamped, nil
}
