package database

import (
	"database/sql"
	"fmt"
)

// last_used is a calendar date kept as YYYY-MM-DD text so the daily reset
// compares the same way on every driver.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		user_plan VARCHAR(16) NOT NULL DEFAULT 'free',
		usage_count INT NOT NULL DEFAULT 0,
		last_used CHAR(10) NULL,
		role VARCHAR(16) NULL,
		reset_token VARCHAR(64) NULL,
		reset_token_expiry DATETIME NULL,
		created_at DATETIME NOT NULL,
		UNIQUE KEY uq_users_email (email),
		KEY idx_users_reset_token (reset_token)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS usage_logs (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		action_type VARCHAR(32) NOT NULL,
		input_text TEXT NOT NULL,
		output_text MEDIUMTEXT NOT NULL,
		created_at DATETIME(6) NOT NULL,
		KEY idx_usage_logs_email (email, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id VARCHAR(255) NOT NULL PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		user_plan TEXT NOT NULL DEFAULT 'free',
		usage_count INTEGER NOT NULL DEFAULT 0,
		last_used TEXT NULL,
		role TEXT NULL,
		reset_token TEXT NULL,
		reset_token_expiry DATETIME NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_reset_token ON users (reset_token)`,
	`CREATE TABLE IF NOT EXISTS usage_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL,
		action_type TEXT NOT NULL,
		input_text TEXT NOT NULL,
		output_text TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_usage_logs_email ON usage_logs (email, created_at)`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id TEXT NOT NULL PRIMARY KEY,
		email TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
}

// Migrate creates the tables if they do not exist yet. It is safe to run on every start.
func Migrate(db *sql.DB, driver string) error {
	var statements []string
	switch driver {
	case "mysql":
		statements = mysqlSchema
	case "sqlite3":
		statements = sqliteSchema
	default:
		return fmt.Errorf("no schema for driver %q", driver)
	}

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
