package service

import (
	"fmt"
	"math"

	"photolog/photo-api/model"

	"gorm.io/gorm"
)

// Gallery serves the paginated photo listings.
type Gallery struct {
	DB *gorm.DB
}

// ListResult is the full listing payload, ready to be serialized as-is.
type ListResult struct {
	Photos     []model.PhotoSummary `json:"photos"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
}

// List returns one page of photos, newest first. Category and date
// only filter when both are present; a partial filter behaves like no
// filter at all. Pages past the end come back with an empty slice, not
// an error.
func (g *Gallery) List(category, date string, page, limit int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = 20
	}

	// Count and Find must not share a statement, gorm finishers leave
	// their conditions behind
	base := func() *gorm.DB {
		q := g.DB.Model(&model.Photo{})
		if category != "" && date != "" {
			q = q.Where("category = ? AND date = ?", category, date)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count photos, %w", err)
	}

	photos := []model.PhotoSummary{}

	err := base().
		Select("id, category, date, filename, filepath, thumbnail_path, dimensions, created_at").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&photos).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos, %w", err)
	}

	return &ListResult{
		Photos:     photos,
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
