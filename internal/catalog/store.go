package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/platekeeper/platekeeper/internal/common"
	"github.com/platekeeper/platekeeper/internal/dbx"
	"github.com/platekeeper/platekeeper/internal/models"
)

// Fixed keys the typed catalog lives under. The whole catalog is a handful
// of blobs; records stay a single JSON list in creation order.
const (
	keyRecords            = "plate_records"
	keyTransforms         = "view_transforms"
	keyMigrationCompleted = "cloud_migration_completed"
)

// Store is the typed catalog API over the key-value table. Read-modify-write
// operations run inside a transaction; the persistence coordinator is the
// single writer, so the transactions guard against partial writes rather
// than against each other.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Records returns all plate records in creation order.
func (s *Store) Records(ctx context.Context) ([]models.PlateRecord, error) {
	return loadRecords(ctx, NewSQLiteRepository(s.db))
}

// Record returns the record with the given id, or common.ErrNotFound.
func (s *Store) Record(ctx context.Context, id string) (*models.PlateRecord, error) {
	recs, err := loadRecords(ctx, NewSQLiteRepository(s.db))
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].ID == id {
			rec := recs[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("record %s: %w", id, common.ErrNotFound)
}

// UpsertRecord replaces the stored record with the same id, or appends rec
// if it is new.
func (s *Store) UpsertRecord(ctx context.Context, rec *models.PlateRecord) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := NewSQLiteRepository(tx)
		recs, err := loadRecords(ctx, kv)
		if err != nil {
			return err
		}

		replaced := false
		for i := range recs {
			if recs[i].ID == rec.ID {
				recs[i] = *rec
				replaced = true
				break
			}
		}
		if !replaced {
			recs = append(recs, *rec)
		}

		return saveRecords(ctx, kv, recs)
	})
}

// DeleteRecord removes the record and its view transform in one
// transaction. Deleting an unknown id returns common.ErrNotFound.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := NewSQLiteRepository(tx)
		recs, err := loadRecords(ctx, kv)
		if err != nil {
			return err
		}

		idx := -1
		for i := range recs {
			if recs[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("record %s: %w", id, common.ErrNotFound)
		}
		recs = append(recs[:idx], recs[idx+1:]...)

		if err := saveRecords(ctx, kv, recs); err != nil {
			return err
		}
		return deleteTransform(ctx, kv, id)
	})
}

// Transform returns the stored view transform for the record id, or
// (nil, nil) when none was saved yet.
func (s *Store) Transform(ctx context.Context, id string) (*models.ViewTransform, error) {
	ts, err := loadTransforms(ctx, NewSQLiteRepository(s.db))
	if err != nil {
		return nil, err
	}
	t, ok := ts[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// SetTransform stores the view transform for the record id.
func (s *Store) SetTransform(ctx context.Context, id string, t models.ViewTransform) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := NewSQLiteRepository(tx)
		ts, err := loadTransforms(ctx, kv)
		if err != nil {
			return err
		}
		if ts == nil {
			ts = make(map[string]models.ViewTransform)
		}
		ts[id] = t
		return saveTransforms(ctx, kv, ts)
	})
}

// DeleteTransform drops the stored transform for the record id, if any.
func (s *Store) DeleteTransform(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return deleteTransform(ctx, NewSQLiteRepository(tx), id)
	})
}

// MigrationCompleted reports whether the one-time cloud migration already
// ran for this catalog.
func (s *Store) MigrationCompleted(ctx context.Context) (bool, error) {
	raw, err := NewSQLiteRepository(s.db).Get(ctx, keyMigrationCompleted)
	if err != nil {
		return false, err
	}
	return string(raw) == "1", nil
}

// SetMigrationCompleted persists the migration flag. There is no way to
// clear it short of editing the database by hand.
func (s *Store) SetMigrationCompleted(ctx context.Context) error {
	return NewSQLiteRepository(s.db).Set(ctx, keyMigrationCompleted, []byte("1"))
}

func loadRecords(ctx context.Context, kv KV) ([]models.PlateRecord, error) {
	raw, err := kv.Get(ctx, keyRecords)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var recs []models.PlateRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode record list: %w", err)
	}
	return recs, nil
}

func saveRecords(ctx context.Context, kv KV, recs []models.PlateRecord) error {
	raw, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to encode record list: %w", err)
	}
	return kv.Set(ctx, keyRecords, raw)
}

func loadTransforms(ctx context.Context, kv KV) (map[string]models.ViewTransform, error) {
	raw, err := kv.Get(ctx, keyTransforms)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	ts := make(map[string]models.ViewTransform)
	if err := json.Unmarshal(raw, &ts); err != nil {
		return nil, fmt.Errorf("failed to decode transform map: %w", err)
	}
	return ts, nil
}

func saveTransforms(ctx context.Context, kv KV, ts map[string]models.ViewTransform) error {
	raw, err := json.Marshal(ts)
	if err != nil {
		return fmt.Errorf("failed to encode transform map: %w", err)
	}
	return kv.Set(ctx, keyTransforms, raw)
}

func deleteTransform(ctx context.Context, kv KV, id string) error {
	ts, err := loadTransforms(ctx, kv)
	if err != nil {
		return err
	}
	if _, ok := ts[id]; !ok {
		return nil
	}
	delete(ts, id)
	if len(ts) == 0 {
		return kv.Delete(ctx, keyTransforms)
	}
	return saveTransforms(ctx, kv, ts)
}
