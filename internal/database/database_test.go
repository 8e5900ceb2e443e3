package database

import (
	"testing"

	"github.com/01moynul/sellergen-golang/internal/config"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDBSQLiteMigrates(t *testing.T) {
	db, err := OpenDB(config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    "file:database_test?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, table := range []string{"users", "usage_logs", "payments"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, table, name)
	}

	// A second run must not fail on existing tables.
	assert.NoError(t, Migrate(db, "sqlite3"))
}

func TestMigrateUnknownDriver(t *testing.T) {
	db, err := OpenDBWithDSN("sqlite3", "file:migrate_unknown?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.Error(t, Migrate(db, "postgres"))
}

func TestOpenDBWithDSNUnknownDriver(t *testing.T) {
	_, err := OpenDBWithDSN("oracle", "whatever")
	assert.Error(t, err)
}

func TestNormalizeDSNForcesParseTime(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
	}{
		{"without params", "user:pass@tcp(db:3306)/sellergen"},
		{"other params", "user:pass@tcp(db:3306)/sellergen?charset=utf8mb4"},
		{"explicitly off", "user:pass@tcp(db:3306)/sellergen?parseTime=false"},
		{"already on", "user:pass@tcp(db:3306)/sellergen?parseTime=true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := normalizeDSN("mysql", tt.dsn)
			require.NoError(t, err)

			cfg, err := mysql.ParseDSN(out)
			require.NoError(t, err)
			assert.True(t, cfg.ParseTime)
			assert.Equal(t, "sellergen", cfg.DBName)
			assert.Equal(t, "db:3306", cfg.Addr)
		})
	}

	_, err := normalizeDSN("mysql", "not a dsn")
	assert.Error(t, err)

	out, err := normalizeDSN("sqlite3", "file:x?mode=memory")
	require.NoError(t, err)
	assert.Equal(t, "file:x?mode=memory", out)
}
