package db

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"tailorshop/internal/model"
)

// Models lists every table owned by the service, in drop order.
func Models() []interface{} {
	return []interface{}{
		&model.Booking{},
		&model.Service{},
		&model.User{},
	}
}

// Migrate creates or updates all tables. With reset set, existing tables
// are dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		slog.Warn("RESET_DB=true detected, dropping all tables")
		for _, table := range Models() {
			if err := db.Migrator().DropTable(table); err != nil {
				slog.Warn("drop table failed (may not exist)", "error", err)
			}
		}
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
