package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/platekeeper/platekeeper/internal/common"
	"github.com/platekeeper/platekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := InitDatabase(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func newRecord(t *testing.T, title string) *models.PlateRecord {
	t.Helper()
	rec, err := models.NewPlateRecord(title, "AB-123", models.CategoryCar)
	require.NoError(t, err)
	return rec
}

func TestStore_RecordsEmptyOnFreshCatalog(t *testing.T) {
	s := newStore(t)

	recs, err := s.Records(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStore_UpsertAndGetRecord(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	rec := newRecord(t, "daily driver")
	rec.LocalPath = "/data/images/a.jpg"
	require.NoError(t, s.UpsertRecord(ctx, rec))

	got, err := s.Record(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "daily driver", got.Title)
	assert.Equal(t, "AB-123", got.Plate)
	assert.Equal(t, models.CategoryCar, got.Category)
	assert.Equal(t, "/data/images/a.jpg", got.LocalPath)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
}

func TestStore_RecordUnknownID(t *testing.T) {
	s := newStore(t)

	_, err := s.Record(context.Background(), "no-such-id")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_UpsertKeepsCreationOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	a := newRecord(t, "first")
	b := newRecord(t, "second")
	c := newRecord(t, "third")
	for _, r := range []*models.PlateRecord{a, b, c} {
		require.NoError(t, s.UpsertRecord(ctx, r))
	}

	b.Title = "second (renamed)"
	require.NoError(t, s.UpsertRecord(ctx, b))

	recs, err := s.Records(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, a.ID, recs[0].ID)
	assert.Equal(t, b.ID, recs[1].ID)
	assert.Equal(t, c.ID, recs[2].ID)
	assert.Equal(t, "second (renamed)", recs[1].Title)
}

func TestStore_DeleteRecord(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	keep := newRecord(t, "keep")
	drop := newRecord(t, "drop")
	require.NoError(t, s.UpsertRecord(ctx, keep))
	require.NoError(t, s.UpsertRecord(ctx, drop))

	require.NoError(t, s.DeleteRecord(ctx, drop.ID))

	_, err := s.Record(ctx, drop.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	recs, err := s.Records(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, keep.ID, recs[0].ID)
}

func TestStore_DeleteRecordUnknownID(t *testing.T) {
	s := newStore(t)

	err := s.DeleteRecord(context.Background(), "no-such-id")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_DeleteRecordDropsTransform(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	rec := newRecord(t, "with transform")
	require.NoError(t, s.UpsertRecord(ctx, rec))
	require.NoError(t, s.SetTransform(ctx, rec.ID, models.ViewTransform{Scale: 2, OffsetX: 10}))

	require.NoError(t, s.DeleteRecord(ctx, rec.ID))

	tr, err := s.Transform(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestStore_TransformLifecycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	tr, err := s.Transform(ctx, "id-1")
	require.NoError(t, err)
	require.Nil(t, tr)

	want := models.ViewTransform{Scale: 3, OffsetX: -20, OffsetY: 15}
	require.NoError(t, s.SetTransform(ctx, "id-1", want))

	tr, err = s.Transform(ctx, "id-1")
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, want, *tr)

	// Overwrite sticks.
	want.Scale = 4
	require.NoError(t, s.SetTransform(ctx, "id-1", want))
	tr, err = s.Transform(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, tr.Scale)

	require.NoError(t, s.DeleteTransform(ctx, "id-1"))
	tr, err = s.Transform(ctx, "id-1")
	require.NoError(t, err)
	assert.Nil(t, tr)

	// Deleting again is fine.
	require.NoError(t, s.DeleteTransform(ctx, "id-1"))
}

func TestStore_TransformsAreIndependentPerRecord(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetTransform(ctx, "a", models.ViewTransform{Scale: 2}))
	require.NoError(t, s.SetTransform(ctx, "b", models.ViewTransform{Scale: 5}))

	require.NoError(t, s.DeleteTransform(ctx, "a"))

	tb, err := s.Transform(ctx, "b")
	require.NoError(t, err)
	require.NotNil(t, tb)
	assert.Equal(t, 5.0, tb.Scale)
}

func TestStore_MigrationFlag(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	done, err := s.MigrationCompleted(ctx)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, s.SetMigrationCompleted(ctx))

	done, err = s.MigrationCompleted(ctx)
	require.NoError(t, err)
	assert.True(t, done)

	// Setting twice stays set.
	require.NoError(t, s.SetMigrationCompleted(ctx))
	done, err = s.MigrationCompleted(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}
