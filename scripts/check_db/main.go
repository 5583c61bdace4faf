// Command check_db connects with the DB_* settings used by the API and
// reports the database name and applied schema version.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"storefront/internal/config"

	"github.com/jackc/pgx/v5"
)

func main() {
	port, err := strconv.Atoi(envOr("DB_PORT", "5432"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid DB_PORT: %v\n", err)
		os.Exit(1)
	}

	dbConfig := config.DatabaseConfig{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     port,
		User:     envOr("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: envOr("DB_NAME", "storefront"),
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbConfig.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	err = conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to database: %s\n", dbName)

	var (
		version int64
		dirty   bool
	)
	err = conn.QueryRow(ctx, "SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty)
	if err != nil {
		fmt.Println("Schema migrations have not been applied")
		return
	}
	fmt.Printf("Schema version: %d (dirty: %t)\n", version, dirty)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
