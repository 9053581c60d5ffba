package service

import (
	"os"
	"path/filepath"
	"testing"

	"photolog/photo-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDeleterRemovesRowAndFiles(t *testing.T) {
	db := newTestDB(t)
	u := NewUploader(db, filepath.Join(t.TempDir(), "uploads"))
	d := &Deleter{DB: db}

	photo, err := u.Do("Inventory", "2025-01-15", jpegBytes(t, 400, 300), "shelf.jpg")
	require.NoError(t, err)

	require.NoError(t, d.Do(photo.ID))

	var count int64
	require.NoError(t, db.Model(&model.Photo{}).Count(&count).Error)
	assert.Zero(t, count)

	for _, p := range []string{photo.FilePath, photo.ThumbnailPath} {
		_, err := os.Stat(filepath.FromSlash(p))
		assert.True(t, os.IsNotExist(err), p)
	}
}

func TestDeleterUnknownID(t *testing.T) {
	db := newTestDB(t)
	u := NewUploader(db, filepath.Join(t.TempDir(), "uploads"))
	d := &Deleter{DB: db}

	photo, err := u.Do("Inventory", "2025-01-15", jpegBytes(t, 100, 100), "shelf.jpg")
	require.NoError(t, err)

	err = d.Do(photo.ID + 1000)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Store untouched
	var count int64
	require.NoError(t, db.Model(&model.Photo{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, statErr := os.Stat(filepath.FromSlash(photo.FilePath))
	assert.NoError(t, statErr)
}

func TestDeleterSwallowsMissingFiles(t *testing.T) {
	db := newTestDB(t)
	u := NewUploader(db, filepath.Join(t.TempDir(), "uploads"))
	d := &Deleter{DB: db}

	photo, err := u.Do("Inventory", "2025-01-15", jpegBytes(t, 100, 100), "shelf.jpg")
	require.NoError(t, err)

	// Files vanish out of band, the row delete must still go through
	require.NoError(t, os.Remove(filepath.FromSlash(photo.FilePath)))
	require.NoError(t, os.Remove(filepath.FromSlash(photo.ThumbnailPath)))

	require.NoError(t, d.Do(photo.ID))

	var count int64
	require.NoError(t, db.Model(&model.Photo{}).Count(&count).Error)
	assert.Zero(t, count)
}
