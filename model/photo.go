// Package model defines database models
package model

import "time"

// Photo is the sole persisted entity. The files behind FilePath and
// ThumbnailPath live under a directory keyed by category/year/month/day
// derived from Date, not from CreatedAt.
type Photo struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Category string `gorm:"not null" json:"category"`

	// Date is the logical grouping key in YYYY-MM-DD form, not a real
	// timestamp
	Date string `gorm:"not null" json:"date"`

	// Filename is server generated: a millisecond upload timestamp, a
	// short random infix and the original file name
	Filename string `gorm:"not null" json:"filename"`

	// Both paths are relative and point at the transcoded renditions,
	// never at the raw upload
	FilePath      string `gorm:"column:filepath;not null" json:"filepath"`
	ThumbnailPath string `gorm:"not null" json:"thumbnail_path"`

	// As supplied by the client, untrusted
	OriginalFilename string `json:"original_filename"`

	// Byte length of the raw upload, not of the transcoded output
	FileSize int64 `json:"file_size"`

	// WxH of the decoded source image before any resizing
	Dimensions string `json:"dimensions"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// PhotoSummary is the slim projection listings return. The original
// file name and the raw size stay internal.
type PhotoSummary struct {
	ID            uint      `json:"id"`
	Category      string    `json:"category"`
	Date          string    `json:"date"`
	Filename      string    `json:"filename"`
	FilePath      string    `gorm:"column:filepath" json:"filepath"`
	ThumbnailPath string    `json:"thumbnail_path"`
	Dimensions    string    `json:"dimensions"`
	CreatedAt     time.Time `json:"created_at"`
}
