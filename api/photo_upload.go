package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"photolog/photo-api/internal/service"
	"photolog/photo-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) PhotoUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	form, err := c.MultipartForm()
	if err != nil {
		// A body without a Content-Length header gets past the
		// limiter's fast check and only trips MaxBytesReader here,
		// mid-parse
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":     "Request body size exceeds limit",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	category := c.PostForm("category")
	date := c.PostForm("date")

	if category == "" || date == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Category and date are required",
			"requestID": requestID,
		})
		return
	}

	if !service.ValidDate(date) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Date must be in YYYY-MM-DD form",
			"requestID": requestID,
		})
		return
	}

	files := form.File["photo"]
	if len(files) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file uploaded",
			"requestID": requestID,
		})
		return
	}

	fh := files[0]

	code, f, err := validators.PhotoValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err))

			// That's to set the error into a general one for the users
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read uploaded file", zap.Error(err))
		return
	}

	photo, err := a.Uploader.Do(category, date, raw, fh.Filename)
	if err != nil {
		if errors.Is(err, service.ErrDecode) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "File is not a decodable image",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store photo", zap.Error(err))
		return
	}

	flushListingCache()

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"id":            photo.ID,
		"filename":      photo.Filename,
		"filepath":      photo.FilePath,
		"thumbnailPath": photo.ThumbnailPath,
		"category":      photo.Category,
		"date":          photo.Date,
	})
}
