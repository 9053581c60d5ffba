package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) PhotoDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	idStr := c.Param("id")
	if idStr == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Photo ID is required",
			"requestID": requestID,
		})
		return
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Photo ID must be numeric",
			"requestID": requestID,
		})
		return
	}

	if err := a.Deleter.Do(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Photo not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete photo", zap.Uint64("id", id), zap.Error(err))
		return
	}

	flushListingCache()

	c.JSON(http.StatusOK, gin.H{"success": true})
}
