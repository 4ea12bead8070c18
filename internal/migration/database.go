package migration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"pmtest/internal/config"
)

// DatabaseManager manages the run-history database
type DatabaseManager struct {
	config *config.Config
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg}
}

// serverConfig builds the connection settings without a database selected.
// database.dsn wins; otherwise DB_* variables (also read from .env) are used.
func (dm *DatabaseManager) serverConfig() (*mysql.Config, error) {
	if dsn := dm.config.Database.DSN; dsn != "" {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse database dsn: %w", err)
		}
		cfg.DBName = ""
		cfg.ParseTime = true
		return cfg, nil
	}

	// .env might not exist, that's okay - use environment variables
	_ = godotenv.Load()

	cfg := mysql.NewConfig()
	cfg.User = envOr("DB_USERNAME", "root")
	cfg.Passwd = os.Getenv("DB_PASSWORD")
	cfg.Net = "tcp"
	cfg.Addr = envOr("DB_HOST", "127.0.0.1") + ":" + envOr("DB_PORT", "3306")
	cfg.ParseTime = true
	return cfg, nil
}

// DSN returns the connection string for the history database.
func (dm *DatabaseManager) DSN() (string, error) {
	cfg, err := dm.serverConfig()
	if err != nil {
		return "", err
	}
	cfg.DBName = dm.config.Database.Name
	return cfg.FormatDSN(), nil
}

// Open connects to the history database and checks the connection.
func (dm *DatabaseManager) Open(ctx context.Context) (*sql.DB, error) {
	dsn, err := dm.DSN()
	if err != nil {
		return nil, err
	}
	return openAndPing(ctx, dsn)
}

// EnsureDatabase creates the history database if it does not exist and reports
// whether it had to.
func (dm *DatabaseManager) EnsureDatabase(ctx context.Context) (bool, error) {
	cfg, err := dm.serverConfig()
	if err != nil {
		return false, err
	}
	db, err := openAndPing(ctx, cfg.FormatDSN())
	if err != nil {
		return false, err
	}
	defer db.Close()

	name := dm.config.Database.Name
	exists, err := dm.databaseExists(ctx, db, name)
	if err != nil {
		return false, fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if exists {
		return false, nil
	}
	if err := dm.createDatabase(ctx, db, name); err != nil {
		return false, fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return true, nil
}

func openAndPing(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}
	return db, nil
}

// databaseExists checks if a database exists
func (dm *DatabaseManager) databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (dm *DatabaseManager) createDatabase(ctx context.Context, db *sql.DB, dbName string) error {
	if !isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4", dbName)
	_, err := db.ExecContext(ctx, query)
	return err
}

// isValidDatabaseName allows only letters, digits, underscore and dollar
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '$':
		default:
			return false
		}
	}
	return !strings.HasPrefix(name, "$")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
