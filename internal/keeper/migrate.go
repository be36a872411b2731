package keeper

import (
	"context"
	"path/filepath"
)

// MigrationReport summarizes one MigrateLocalOnly run. Scanned counts the
// candidate records (local image, no cloud copy); Uploaded and Failed
// partition them. AlreadyCompleted and Unreachable mark the two short
// outcomes where no uploads were attempted.
type MigrationReport struct {
	AlreadyCompleted bool
	Unreachable      bool
	Scanned          int
	Uploaded         int
	Failed           int
}

// MigrateLocalOnly uploads a cloud copy for every record that predates
// cloud support. It runs effectively once: the completion flag is persisted
// whether the cloud was reachable or not, so a catalog only ever goes
// through this scan a single time. Per-record failures are skipped, not
// retried later.
func (k *Keeper) MigrateLocalOnly(ctx context.Context) (*MigrationReport, error) {
	report := &MigrationReport{}

	done, err := k.catalog.MigrationCompleted(ctx)
	if err != nil {
		return nil, err
	}
	if done {
		report.AlreadyCompleted = true
		return report, nil
	}

	if err := k.cloud.Probe(ctx); err != nil {
		report.Unreachable = true
		k.logger.Warn(ctx, "cloud unreachable, migration skipped for good", "error", err)
		if err := k.completeMigration(ctx); err != nil {
			return nil, err
		}
		return report, nil
	}

	recs, err := k.catalog.Records(ctx)
	if err != nil {
		return nil, err
	}

	for i := range recs {
		rec := &recs[i]
		if rec.LocalPath == "" || rec.CloudKey != "" {
			continue
		}
		report.Scanned++

		data, err := k.blobs.Read(rec.LocalPath)
		if err != nil {
			report.Failed++
			k.logger.Warn(ctx, "migration: local image unreadable", "record_id", rec.ID, "error", err)
			continue
		}

		key, err := k.cloud.Upload(ctx, filepath.Base(rec.LocalPath), data)
		if err != nil {
			report.Failed++
			k.logger.Warn(ctx, "migration: upload failed", "record_id", rec.ID, "error", err)
			continue
		}

		id := rec.ID
		if err := k.do(ctx, "persist cloud pointer", func(ctx context.Context) error {
			cur, err := k.catalog.Record(ctx, id)
			if err != nil {
				return err
			}
			cur.CloudKey = key
			return k.catalog.UpsertRecord(ctx, cur)
		}); err != nil {
			report.Failed++
			k.logger.Warn(ctx, "migration: pointer persist failed", "record_id", id, "error", err)
			continue
		}
		report.Uploaded++
	}

	if err := k.completeMigration(ctx); err != nil {
		return nil, err
	}

	k.logger.Info(ctx, "cloud migration finished",
		"scanned", report.Scanned, "uploaded", report.Uploaded, "failed", report.Failed)
	return report, nil
}

func (k *Keeper) completeMigration(ctx context.Context) error {
	return k.do(ctx, "complete migration", func(ctx context.Context) error {
		return k.catalog.SetMigrationCompleted(ctx)
	})
}
