package database

import (
	"fmt"
	"time"

	"renovation-crm/internal/config"
	"renovation-crm/internal/logger"
	"renovation-crm/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init connects, migrates and bootstraps the admin account. Any failure is fatal.
func Init(cfg *config.Config) {
	log := logger.L()

	var err error
	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to database", zap.String("driver", cfg.DBDriver), zap.Int("attempt", i))

		DB, err = Open(cfg.DBDriver, cfg.DBDSN)
		if err == nil {
			break
		}

		log.Warn("database connection failed", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("could not connect to database", zap.Int("attempts", maxAttempts), zap.Error(err))
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Error("bootstrap admin failed", zap.Error(err))
		}
	}
}

// Open returns a gorm handle for "postgres" or "sqlite".
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(logger.L()),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// one connection so ":memory:" databases and the pragma are shared by every query
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	return db, nil
}

// Migrate creates or updates every table. Clients and users go first so the
// child tables can reference them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Client{},
		&models.User{},
		&models.Process{},
		&models.Project{},
		&models.Session{},
		&models.Setting{},
	)
}
