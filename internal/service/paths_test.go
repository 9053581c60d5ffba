package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatePath(t *testing.T) {
	cases := []struct {
		name     string
		category string
		date     string
		wantDir  string
	}{
		{"plain", "Inventory", "2025-01-15", "uploads/Inventory/2025/01/15"},
		{"other category", "Shipments", "2024-12-01", "uploads/Shipments/2024/12/01"},
		{"no zero padding added", "Inventory", "2025-1-5", "uploads/Inventory/2025/1/5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DatePath("uploads", tc.category, tc.date)

			assert.Equal(t, filepath.FromSlash(tc.wantDir), p.Dir)
			assert.Equal(t, filepath.Join(p.Dir, "thumbnails"), p.ThumbDir)
		})
	}
}

func TestDatePathShortDate(t *testing.T) {
	// Not splittable into three parts. Callers must have rejected this
	// already, DatePath itself just must not blow up
	p := DatePath("uploads", "Inventory", "2025")

	assert.NotEmpty(t, p.Dir)
	assert.Equal(t, filepath.Join(p.Dir, "thumbnails"), p.ThumbDir)
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-01-15"))
	assert.True(t, ValidDate("2025-1-5"))

	assert.False(t, ValidDate(""))
	assert.False(t, ValidDate("2025"))
	assert.False(t, ValidDate("2025-01"))
	assert.False(t, ValidDate("2025--15"))
	assert.False(t, ValidDate("2025-01-15-16"))
}
