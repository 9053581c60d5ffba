package service

import (
	"fmt"
	"os"
	"path/filepath"

	"photolog/photo-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deleter removes a photo's files and its metadata row. File removal
// is best effort: a filesystem failure is logged with the orphaned path
// and never blocks the row delete.
type Deleter struct {
	DB *gorm.DB
}

// Do deletes the photo with the given id. Returns
// gorm.ErrRecordNotFound when no such row exists, in which case nothing
// is touched.
func (d *Deleter) Do(id uint) error {
	var photo model.Photo

	if err := d.DB.First(&photo, id).Error; err != nil {
		return err
	}

	for _, p := range []string{photo.FilePath, photo.ThumbnailPath} {
		if err := os.Remove(filepath.FromSlash(p)); err != nil && !os.IsNotExist(err) {
			zap.L().Warn("Failed to remove photo file, leaving an orphan behind",
				zap.Uint("id", photo.ID),
				zap.String("path", p),
				zap.Error(err),
			)
		}
	}

	if err := d.DB.Delete(&model.Photo{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete photo record, %w", err)
	}

	return nil
}
