// Package util contains any functions used across the application that don't match
// any other package
package util

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// StorageKey builds the on disk name for an upload: a millisecond
// timestamp prefix, a short random infix and the sanitized original
// name. The infix keeps two uploads of the same file name within the
// same millisecond from colliding.
func StorageKey(originalName string) string {
	id, err := gonanoid.Generate("abcdefghijklmnopqrstuvwxyz0123456789", 6)
	if err != nil {
		// Only happens when the OS random source is broken
		id = "000000"
	}

	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), id, SanitizeFilename(originalName))
}

// SanitizeFilename strips path components and characters that have no
// business in an on disk file name. Empty results fall back to "photo".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	if name == "" || name == "." || name == ".." {
		return "photo"
	}

	return name
}
