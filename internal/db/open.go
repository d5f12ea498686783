package db

import (
	"fmt"

	"gorm.io/gorm"

	"tailorshop/internal/config"
)

// Open connects to the database selected by DB_DRIVER.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "", "mysql":
		return NewMySQL(cfg.MySQLDSN)
	case "postgres":
		return NewPostgres(cfg.PostgresDSN)
	case "sqlite":
		return NewSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
