// Package db persists sessions, landing positions and best scores in
// PostgreSQL. Everything here is optional: the service runs from memory when
// no DATABASE_URL is configured.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	maxOpenConns    = 10
	connMaxIdleTime = 5 * time.Minute
)

type DB struct {
	conn *sql.DB
}

// Connect opens a pool against dsn and verifies it with a ping.
func Connect(dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetConnMaxIdleTime(connMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	log.Println("[DB] Connected to PostgreSQL")
	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}

// Migrate applies the embedded migrations. ReadDir returns them sorted by
// file name, so files are numbered (001_, 002_, ...) and each must stay safe
// to re-run because every start applies all of them again. A file runs in
// its own transaction so a failing migration leaves no partial schema.
func (d *DB) Migrate() error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		content, err := migrationsFS.ReadFile(path.Join("migrations", name))
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := d.applyMigration(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		log.Printf("[DB] Applied migration: %s\n", name)
	}
	return nil
}

func (d *DB) applyMigration(script string) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(script); err != nil {
		return err
	}
	return tx.Commit()
}
