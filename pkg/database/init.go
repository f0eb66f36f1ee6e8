package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"

	"github.com/Alijeyrad/hospital_records/config"
)

// InitializeDatabase creates the application database if it doesn't exist.
// For postgres and mysql it connects to the server's maintenance database to
// issue CREATE DATABASE. SQLite files are created on first open.
func InitializeDatabase(cfg *config.Config) error {
	dbCfg := FromCentralConfig(cfg.Database)
	if dbCfg.DBName == "" && dbCfg.Dialect() != dialect.SQLite {
		return fmt.Errorf("no database name provided")
	}

	switch dbCfg.Dialect() {
	case dialect.SQLite:
		conn, err := openSQLDB(dbCfg)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return conn.Close()

	case dialect.MySQL:
		admin := dbCfg
		admin.DBName = ""
		conn, err := openSQLDB(admin)
		if err != nil {
			return fmt.Errorf("failed to connect to mysql server: %w", err)
		}
		defer conn.Close()
		return createMySQLDatabase(conn, dbCfg.DBName)

	default:
		admin := dbCfg
		admin.DBName = "postgres"
		conn, err := openSQLDB(admin)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres database: %w", err)
		}
		defer conn.Close()
		if err := createDatabaseIfNotExists(conn, dbCfg.DBName); err != nil {
			return fmt.Errorf("failed to create database %q: %w", dbCfg.DBName, err)
		}
		return nil
	}
}

// createDatabaseIfNotExists creates a postgres database if it doesn't already exist
func createDatabaseIfNotExists(conn *sql.DB, dbName string) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	err := conn.QueryRowContext(context.Background(), query, dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := conn.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	return nil
}

func createMySQLDatabase(conn *sql.DB, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := conn.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)); err != nil {
		return fmt.Errorf("failed to create database %q: %w", dbName, err)
	}
	return nil
}
