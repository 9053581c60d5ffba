package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"photolog/photo-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Files younger than this may belong to an upload whose row hasn't been
// inserted yet
const sweepGrace = time.Hour

// OrphanSweep periodically walks the storage root and deletes files no
// photo row references. Crashes between a file write and the row
// insert, and swallowed deletion failures, both leave such orphans
// behind.
func OrphanSweep(t time.Duration, db *gorm.DB, root string) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Orphan sweep attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			n, err := SweepOnce(db, root, sweepGrace)
			if err != nil {
				zap.L().Error("Orphan sweep failed", zap.Error(err))
				continue
			}

			if n > 0 {
				zap.L().Info("Orphan sweep removed files", zap.Int("count", n))
			}
		}
	}()
}

// SweepOnce runs a single reconciliation pass and reports how many
// orphan files it removed. Files modified within grace are skipped.
func SweepOnce(db *gorm.DB, root string, grace time.Duration) (int, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return 0, nil
	}

	var rows []model.Photo

	err := db.
		Model(&model.Photo{}).
		Select("filepath, thumbnail_path").
		Find(&rows).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to query referenced files, %w", err)
	}

	referenced := make(map[string]struct{}, len(rows)*2)
	for _, r := range rows {
		referenced[filepath.Clean(filepath.FromSlash(r.FilePath))] = struct{}{}
		referenced[filepath.Clean(filepath.FromSlash(r.ThumbnailPath))] = struct{}{}
	}

	removed := 0

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if _, ok := referenced[filepath.Clean(p)]; ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// File disappeared mid-walk
			return nil
		}

		if time.Since(info.ModTime()) < grace {
			return nil
		}

		if err := os.Remove(p); err != nil {
			zap.L().Warn("Failed to remove orphan file", zap.String("path", p), zap.Error(err))
			return nil
		}

		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to walk storage root, %w", err)
	}

	return removed, nil
}
