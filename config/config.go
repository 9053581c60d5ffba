// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	resetDB        = pflag.Bool("reset-db", false, "Drops and recreates the photos table on startup")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors_origins")

	v.BindEnv("storage.root", "storage_root")

	v.BindEnv("database.driver", "database_driver")
	v.BindEnv("database.dsn", "database_dsn")
	v.BindEnv("database.reset_on_start", "database_reset_on_start")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("sweep.enabled", "sweep_enabled")
	v.BindEnv("sweep.interval", "sweep_interval")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})

	v.SetDefault("storage.root", "uploads")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "photos.db")
	// Wiping existing photo records on boot is never the default. It
	// has to be asked for explicitly
	v.SetDefault("database.reset_on_start", false)

	v.SetDefault("upload.max_size", 10)

	v.SetDefault("sweep.enabled", false)
	v.SetDefault("sweep.interval", time.Hour)

	if err := v.ReadInConfig(); err != nil {
		// Every key has a usable default so a missing config.toml is fine
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if *resetDB {
		v.Set("database.reset_on_start", true)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("storage.root") == "" {
		return errors.New("storage root can't be empty")
	}

	if !slices.Contains(validDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("database.dsn") == "" {
		return errors.New("database dsn can't be empty")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetBool("sweep.enabled") && v.GetDuration("sweep.interval") <= 0 {
		return errors.New("sweep.interval must be bigger than 0")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
