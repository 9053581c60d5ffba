// Package db contains things related to the photo metadata database
package db

import (
	"fmt"
	"os"

	"photolog/photo-api/model"
	"photolog/photo-api/pkg/util"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	driver := viper.GetString("database.driver")
	dsn := viper.GetString("database.dsn")

	var dial gorm.Dialector

	switch driver {
	case "postgres":
		dial = postgres.Open(dsn)
	default:
		// If running in a docker container don't allow the sqlite file to be
		// created. The host should instead mount it using volumes
		if util.IsRunningInDocker() {
			if _, err := os.Stat(dsn); err != nil {
				return nil, fmt.Errorf("SQLite database file not mounted, please use docker volumes to mount it to /app/%s", dsn)
			}
		}

		dial = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dial)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database, %w", driver, err)
	}

	if viper.GetBool("database.reset_on_start") {
		zap.L().Warn("database.reset_on_start is set, dropping the photos table")

		if err := db.Migrator().DropTable(model.Photo{}); err != nil {
			return nil, fmt.Errorf("failed to drop photos table, %w", err)
		}
	}

	if err := db.AutoMigrate(model.Photo{}); err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
