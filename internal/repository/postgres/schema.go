package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements are applied once at process start. Bookings carry no
// foreign key to events on purpose: the referential check is service-level,
// while duplicate prevention relies on the uniq_event_email index.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		overview TEXT NOT NULL,
		image TEXT NOT NULL,
		venue TEXT NOT NULL,
		location TEXT NOT NULL,
		date DATE NOT NULL,
		time TEXT NOT NULL,
		mode TEXT NOT NULL,
		audience TEXT NOT NULL,
		organizer TEXT NOT NULL,
		agenda TEXT[] NOT NULL,
		tags TEXT[] NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_id UUID NOT NULL,
		email TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_event_email ON bookings (event_id, email)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_event_id ON bookings (event_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_email ON bookings (email)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_event_created ON bookings (event_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_events_created_at ON events (created_at DESC)`,
}

// EnsureSchema creates the events and bookings tables and their indexes
// if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
