// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"photolog/photo-api/db"
	"photolog/photo-api/internal/service"
	"photolog/photo-api/pkg/middleware"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Uploader *service.Uploader
	Gallery  *service.Gallery
	Deleter  *service.Deleter
}

func NewRouter() (*API, error) {
	makeLogger()

	a := &API{}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	root := viper.GetString("storage.root")

	a.Uploader = service.NewUploader(db, root)
	a.Gallery = &service.Gallery{DB: db}
	a.Deleter = &service.Deleter{DB: db}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:  viper.GetStringSlice("host.cors_origins"),
			AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 5 << 20

	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// POST /api/upload		-> Receives one photo, stores both renditions
		main.POST("/upload", middleware.BodySizeLimiter(maxUploadSize+1<<20), a.PhotoUpload)

		photos := main.Group("/photos")
		{
			// GET /api/photos		-> Paginated photo listing
			photos.GET("", cacheFor(10), a.PhotoList)

			// DELETE /api/photos/:id	-> Deletes a photo and its files
			photos.DELETE("/:id", a.PhotoDelete)
		}
	}

	// Stored files are reachable directly. The DB keeps paths relative
	// to the process working directory, so with the default root they
	// map onto this prefix one to one
	router.Static("/uploads", root)

	if viper.GetBool("sweep.enabled") {
		service.OrphanSweep(viper.GetDuration("sweep.interval"), db, root)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}

// flushListingCache drops every cached listing page. Upload and delete
// call it after a successful write so a cached page never outlives the
// rows it was built from
func flushListingCache() {
	if err := store.Cache.Purge(); err != nil {
		zap.L().Warn("Failed to flush listing cache", zap.Error(err))
	}
}
