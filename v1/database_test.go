package v1

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink-ops/logistics-backend/v1/models"
)

func TestNewDatabaseConfig(t *testing.T) {
	config := NewDatabaseConfig()
	assert.NotNil(t, config)
	assert.Equal(t, DriverPostgres, config.Driver)
	assert.Equal(t, "localhost", config.Host)
	assert.Equal(t, "5432", config.Port)
	assert.Equal(t, "postgres", config.Username)
	assert.Equal(t, "logistics", config.Database)
	assert.Equal(t, "require", config.SSLMode)
	assert.Equal(t, 25, config.MaxOpenConns)
	assert.Equal(t, 5, config.MaxIdleConns)
	assert.Equal(t, time.Hour, config.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, config.ConnMaxIdleTime)
}

func TestNewDatabaseConfig_WithEnvVars(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("LOGISTICS_DB_HOSTNAME", "db.internal")
	t.Setenv("LOGISTICS_DB_PORT", "5433")
	t.Setenv("LOGISTICS_DB_NAME", "ops")
	t.Setenv("DB_SSLMODE", "disable")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")

	config := NewDatabaseConfig()
	assert.Equal(t, DriverSQLite, config.Driver)
	assert.Equal(t, "db.internal", config.Host)
	assert.Equal(t, "5433", config.Port)
	assert.Equal(t, "ops", config.Database)
	assert.Equal(t, "disable", config.SSLMode)
	assert.Equal(t, 4, config.MaxOpenConns)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	config := &DatabaseConfig{Driver: DriverPostgres, Host: "h", Port: "1", Username: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", config.DSN())

	config = &DatabaseConfig{Driver: DriverSQLite, SQLitePath: "/tmp/x.db"}
	assert.Equal(t, "/tmp/x.db", config.DSN())
}

func TestConnectGormDB_UnsupportedDriver(t *testing.T) {
	_, err := ConnectGormDB(&DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestConnectGormDB_InvalidConnection(t *testing.T) {
	config := &DatabaseConfig{
		Driver:          DriverPostgres,
		Host:            "invalid-host-that-does-not-exist",
		Port:            "5432",
		Username:        "invalid",
		Password:        "invalid",
		Database:        "invalid",
		SSLMode:         "disable",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	}

	db, err := ConnectGormDB(config)
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestConnectGormDB_SQLiteWithMigration(t *testing.T) {
	t.Setenv("RUN_MIGRATION", "true")
	config := &DatabaseConfig{
		Driver:          DriverSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "logistics.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	}

	db, err := ConnectGormDB(config)
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	}()

	for _, m := range models.AllModels() {
		assert.True(t, db.Migrator().HasTable(m), "expected table for %T", m)
	}
}
