package service

import (
	"fmt"
	"os"
	"path/filepath"

	"photolog/photo-api/model"
	"photolog/photo-api/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Uploader runs the whole upload pipeline: derive the date based
// directories, transcode both renditions, write them to disk and insert
// the metadata row. File writes and the row insert are not wrapped in a
// transaction; a crash in between leaves orphan files for the sweep to
// pick up.
type Uploader struct {
	DB         *gorm.DB
	Root       string
	Transcoder *Transcoder
}

func NewUploader(db *gorm.DB, root string) *Uploader {
	return &Uploader{
		DB:         db,
		Root:       root,
		Transcoder: NewTranscoder(),
	}
}

// Do stores one uploaded photo and returns the inserted record. The
// recorded file size is the byte length of raw as received, and the
// recorded dimensions are those of the decoded source, both before any
// transcoding.
func (u *Uploader) Do(category, date string, raw []byte, originalName string) (*model.Photo, error) {
	res, err := u.Transcoder.Transcode(raw)
	if err != nil {
		return nil, err
	}

	paths := DatePath(u.Root, category, date)

	if err := os.MkdirAll(paths.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory, %w", err)
	}

	if err := os.MkdirAll(paths.ThumbDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory, %w", err)
	}

	filename := util.StorageKey(originalName)
	filePath := filepath.Join(paths.Dir, filename)
	thumbPath := filepath.Join(paths.ThumbDir, "thumb-"+filename)

	if err := os.WriteFile(filePath, res.Display, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write display image, %w", err)
	}

	if err := os.WriteFile(thumbPath, res.Thumbnail, 0o644); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to write thumbnail, %w", err)
	}

	photo := &model.Photo{
		Category:         category,
		Date:             date,
		Filename:         filename,
		FilePath:         filepath.ToSlash(filePath),
		ThumbnailPath:    filepath.ToSlash(thumbPath),
		OriginalFilename: originalName,
		FileSize:         int64(len(raw)),
		Dimensions:       fmt.Sprintf("%dx%d", res.Width, res.Height),
	}

	if err := u.DB.Create(photo).Error; err != nil {
		// Clean up both files so a failed insert doesn't leave orphans
		os.Remove(filePath)
		os.Remove(thumbPath)
		return nil, fmt.Errorf("failed to save photo record, %w", err)
	}

	zap.L().Debug("Photo stored",
		zap.Uint("id", photo.ID),
		zap.String("path", photo.FilePath),
		zap.String("dimensions", photo.Dimensions),
	)

	return photo, nil
}
