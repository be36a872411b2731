package keeper

import (
	"context"
	"io/fs"
	"os"
	"testing"

	"github.com/platekeeper/platekeeper/internal/common"
	"github.com/platekeeper/platekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteRecord(t *testing.T) {
	tk := newTestKeeper(t)
	ctx := context.Background()

	rec, err := tk.CreateRecord(ctx, testInput(pngImage(t, 32, 32)))
	require.NoError(t, err)
	_, err = tk.SetTransform(ctx, rec.ID, models.ViewTransform{Scale: 2}, models.Viewport{Width: 400, Height: 300})
	require.NoError(t, err)

	require.NoError(t, tk.DeleteRecord(ctx, rec.ID))

	_, err = tk.store.Record(ctx, rec.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = os.Stat(rec.LocalPath)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	// Memory copy dropped too: a load now fails at the catalog lookup.
	_, err = tk.LoadImage(ctx, rec.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Transform went with the record.
	tr, err := tk.store.Transform(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, tr)

	// The cloud object is released in the background.
	tk.deletes.Wait()
	assert.Equal(t, []string{rec.CloudKey}, tk.cloud.deletedKeys())
}

func TestDeleteRecord_Unknown(t *testing.T) {
	tk := newTestKeeper(t)

	err := tk.DeleteRecord(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteRecord_CloudFailureOrphansObject(t *testing.T) {
	tk := newTestKeeper(t)
	ctx := context.Background()

	rec, err := tk.CreateRecord(ctx, testInput(pngImage(t, 32, 32)))
	require.NoError(t, err)
	require.NotEmpty(t, rec.CloudKey)

	tk.cloud.setDeleteErr(errTest)

	// A failed cloud delete never fails the local delete.
	require.NoError(t, tk.DeleteRecord(ctx, rec.ID))

	_, err = tk.store.Record(ctx, rec.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	tk.deletes.Wait()
	_, ok := tk.cloud.object(rec.CloudKey)
	assert.True(t, ok, "object should remain orphaned in the cloud")
}

func TestDeleteRecord_LocalOnly(t *testing.T) {
	tk := newTestKeeper(t)
	ctx := context.Background()

	tk.status.MarkDegraded()
	rec, err := tk.CreateRecord(ctx, testInput(pngImage(t, 32, 32)))
	require.NoError(t, err)
	tk.status.Reset()

	require.NoError(t, tk.DeleteRecord(ctx, rec.ID))

	tk.deletes.Wait()
	_, _, deletes, _ := tk.cloud.stats()
	assert.Zero(t, deletes)
}
