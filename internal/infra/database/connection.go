package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// NewDBConnection opens the pool and pings it once.
func NewDBConnection(ctx context.Context, connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	id            UUID PRIMARY KEY,
	student_name  TEXT NOT NULL,
	parent_name   TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL,
	email         TEXT NOT NULL,
	age           TEXT NOT NULL DEFAULT '',
	subjects      TEXT[] NOT NULL,
	learning_goal TEXT NOT NULL,
	area          TEXT NOT NULL,
	tutor_gender  TEXT NOT NULL DEFAULT '',
	session_type  TEXT NOT NULL,
	budget        TEXT NOT NULL DEFAULT '',
	experience    TEXT NOT NULL,
	message       TEXT NOT NULL DEFAULT '',
	submitted_at  TIMESTAMPTZ NOT NULL,
	status        TEXT NOT NULL DEFAULT 'new'
);
CREATE INDEX IF NOT EXISTS leads_submitted_at_idx ON leads (submitted_at DESC);
`

// EnsureSchema creates the leads table when it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
