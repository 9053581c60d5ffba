package service

import (
	"path/filepath"
	"strings"
)

// DatePaths holds the two directories a photo's renditions are stored
// under for a given category and date.
type DatePaths struct {
	Dir      string
	ThumbDir string
}

// DatePath maps a category and a YYYY-MM-DD date onto the on disk
// layout root/<category>/<year>/<month>/<day>, with thumbnails in a
// sibling subdirectory. The date is split by its literal dashes, there
// is no calendar validation here. Callers must reject dates that don't
// split into three parts before asking for a path.
func DatePath(root, category, date string) DatePaths {
	parts := strings.SplitN(date, "-", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	dir := filepath.Join(root, category, parts[0], parts[1], parts[2])

	return DatePaths{
		Dir:      dir,
		ThumbDir: filepath.Join(dir, "thumbnails"),
	}
}

// ValidDate reports whether a date string splits into the three
// non-empty components DatePath needs.
func ValidDate(date string) bool {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return false
	}

	return parts[0] != "" && parts[1] != "" && parts[2] != ""
}
