// Command migrate applies or rolls back the SQL migrations in migrations/.
// The API server applies pending migrations on boot as well; this tool
// exists for CI pipelines and manual rollbacks.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
)

const migrationsDir = "migrations"

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last applied migration")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		log.Fatalf("failed to create schema_migrations table: %v", err)
	}

	if *rollback {
		rollbackLast(db)
		return
	}
	applyAll(db)
}

func migrationFiles() []string {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		log.Fatalf("failed to read migrations directory: %v", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) == ".sql" && !strings.Contains(name, "_rollback") {
			files = append(files, name)
		}
	}
	sort.Strings(files)
	return files
}

func applyAll(db *sql.DB) {
	for _, name := range migrationFiles() {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = $1", name).Scan(&count); err != nil {
			log.Fatalf("failed to check migration status: %v", err)
		}
		if count > 0 {
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			log.Fatalf("failed to read migration %s: %v", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			log.Fatalf("failed to start transaction: %v", err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			log.Fatalf("failed to apply migration %s: %v", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", name); err != nil {
			tx.Rollback()
			log.Fatalf("failed to record migration: %v", err)
		}
		if err := tx.Commit(); err != nil {
			log.Fatalf("failed to commit migration: %v", err)
		}

		fmt.Printf("applied %s\n", name)
	}
}

func rollbackLast(db *sql.DB) {
	var last string
	err := db.QueryRow("SELECT version FROM schema_migrations ORDER BY applied_at DESC LIMIT 1").Scan(&last)
	if err == sql.ErrNoRows {
		log.Fatal("no migrations to rollback")
	}
	if err != nil {
		log.Fatalf("failed to get last migration: %v", err)
	}

	rollbackFile := strings.TrimSuffix(last, ".sql") + "_rollback.sql"
	content, err := os.ReadFile(filepath.Join(migrationsDir, rollbackFile))
	if err != nil {
		log.Fatalf("failed to read rollback file %s: %v", rollbackFile, err)
	}

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("failed to start transaction: %v", err)
	}
	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		log.Fatalf("failed to execute rollback: %v", err)
	}
	if _, err := tx.Exec("DELETE FROM schema_migrations WHERE version = $1", last); err != nil {
		tx.Rollback()
		log.Fatalf("failed to remove migration record: %v", err)
	}
	if err := tx.Commit(); err != nil {
		log.Fatalf("failed to commit rollback: %v", err)
	}

	fmt.Printf("rolled back %s\n", last)
}
