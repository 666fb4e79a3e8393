package db

import (
	"fmt"
	"time"

	"github.com/ratehub/ratehub-backend/config"
	appLogger "github.com/ratehub/ratehub-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const (
	connectAttempts = 5
	connectBackoff  = 3 * time.Second
)

// Initialize connects to postgres, retrying with backoff so a slow
// database start does not kill the process. Only exhausting all
// attempts is treated as unrecoverable.
func Initialize(cfg *config.DatabaseConfig) error {
	dsn := cfg.DSN()

	appLogger.Info("Connecting to database", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
		"user":     cfg.User,
	})

	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent), // we log queries ourselves
		})
		if err == nil {
			break
		}
		appLogger.Warn("Database connection failed, retrying", map[string]interface{}{
			"attempt": attempt,
			"backoff": connectBackoff.String(),
			"error":   err.Error(),
		})
		time.Sleep(connectBackoff)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	appLogger.Info("Database connection established successfully", map[string]interface{}{
		"max_idle_conns": 10,
		"max_open_conns": 100,
	})
	return nil
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
