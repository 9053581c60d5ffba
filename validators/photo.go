// Package validators holds the request validation logic shared by the
// upload endpoints
package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrNoFile              = errors.New("no file provided")
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileNameTooLong     = errors.New("file name is too long")
	ErrFileTypeUnsupported = errors.New("unsupported file type")
)

var allowedExts = []string{".jpg", ".jpeg", ".png", ".gif"}

const maxFileNameSize = 245 // Takes into account the thumb- prefix

// PhotoValidator checks an uploaded file header before any of its bytes
// are processed: extension allow-list, name length and size cap first,
// then a mimetype sniff of the actual content to catch clients lying
// about the extension. On success the opened file is returned rewound
// to the start.
func PhotoValidator(fh *multipart.FileHeader) (int, multipart.File, error) {
	if fh == nil || fh.Size == 0 {
		return http.StatusBadRequest, nil, ErrNoFile
	}

	ext := strings.ToLower(path.Ext(fh.Filename))
	if !slices.Contains(allowedExts, ext) {
		return http.StatusBadRequest, nil, ErrFileTypeUnsupported
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, ErrFileNameTooLong
	}

	if fh.Size > viper.GetInt64("upload.max_size") {
		return http.StatusRequestEntityTooLarge, nil, ErrFileTooLarge
	}

	// And now check the actual bytes to catch malicious clients
	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	if !strings.HasPrefix(mime.String(), "image/") {
		f.Close()
		return http.StatusBadRequest, nil, ErrFileTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	return 0, f, nil
}
