// database.go - Handles database connection and setup

package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"attendance-tracker/config"
	"attendance-tracker/models"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured store, creates missing tables and seeds the default admin.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialect(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(log.New(os.Stdout, "\r\n", log.LstdFlags)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "database: open")
	}

	// Auto-migrate the models (create tables if needed)
	if err := db.AutoMigrate(&models.User{}, &models.Attendance{}); err != nil {
		return nil, errors.Wrap(err, "database: migrate")
	}

	if err := createDefaultAdmin(db, cfg); err != nil {
		return nil, err
	}
	return db, nil
}

// newGormLogger reports slow queries and real failures. A missing row is a normal lookup
// result here and is not logged.
func newGormLogger(w gormlogger.Writer) gormlogger.Interface {
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func dialect(cfg *config.Config) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.DBDriver) {
	case "", "sqlite":
		return sqlite.Open(sqliteDSN(cfg.DBPath)), nil
	case "postgres":
		if cfg.DBDSN == "" {
			return nil, errors.New("database: DB_DSN is required for the postgres driver")
		}
		return postgres.Open(cfg.DBDSN), nil
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", cfg.DBDriver)
	}
}

// sqliteDSN turns foreign keys on so ON DELETE CASCADE is honoured.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// createDefaultAdmin creates an admin user when configured and no admin exists yet.
func createDefaultAdmin(db *gorm.DB, cfg *config.Config) error {
	if !cfg.CreateAdmin {
		return nil
	}
	if cfg.AdminPassword == "" {
		return errors.New("database: ADMIN_PASSWORD is required when ADMIN_CREATE is set")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return errors.Wrap(err, "database: count admins")
	}
	if count > 0 {
		return nil
	}

	admin := models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Role:     "admin",
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		return errors.Wrap(err, "database: hash admin password")
	}
	return errors.Wrap(db.Create(&admin).Error, "database: create admin")
}
