package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/01moynul/sellergen-golang/internal/config"
	"github.com/01moynul/sellergen-golang/internal/logger"
	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// OpenDB opens the primary connection pool described by the config and makes
// sure the schema exists.
func OpenDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := OpenDBWithDSN(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db, cfg.Driver); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenDBWithDSN creates and configures a connection pool for any driver/DSN pair.
func OpenDBWithDSN(driver, dsn string) (*sql.DB, error) {
	dsn, err := normalizeDSN(driver, dsn)
	if err != nil {
		return nil, err
	}

	// 1. Open a new connection pool.
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	// 2. Configure the connection pool settings.
	if driver == "sqlite3" {
		// SQLite only supports one writer; an in-memory database also lives
		// and dies with its single connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	// 3. Ping the database to verify the connection.
	if err := db.Ping(); err != nil {
		db.Close()
		logger.Logger.Errorf("Error connecting to %s database: %v", driver, err)
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	logger.Logger.Infof("Database connection pool established successfully (%s)", driver)
	return db, nil
}

// normalizeDSN turns on parseTime for MySQL; the store scans DATETIME columns
// into time.Time.
func normalizeDSN(driver, dsn string) (string, error) {
	if driver != "mysql" {
		return dsn, nil
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}
