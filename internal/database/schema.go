package database

import (
	"context"
	"fmt"
)

// schema is applied on every start. Statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS incidents (
		id                  SERIAL PRIMARY KEY,
		district_code       INTEGER NOT NULL,
		tehsil_code         INTEGER NOT NULL,
		disaster_type_id    INTEGER NOT NULL,
		disaster_subtype_id INTEGER,
		damage_type_id      INTEGER,
		damage_subtype_id   INTEGER,
		damage_quantity     DOUBLE PRECISION NOT NULL DEFAULT 0,
		camp_count          INTEGER NOT NULL DEFAULT 0,
		camp_name           TEXT NOT NULL DEFAULT '',
		sheltered_count     INTEGER NOT NULL DEFAULT 0,
		month               SMALLINT NOT NULL CHECK (month BETWEEN 1 AND 12),
		year                SMALLINT NOT NULL,
		is_deleted          BOOLEAN NOT NULL DEFAULT FALSE,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS incidents_year_month_idx ON incidents (year, month) WHERE NOT is_deleted`,
	`CREATE INDEX IF NOT EXISTS incidents_district_idx ON incidents (district_code)`,
	`CREATE TABLE IF NOT EXISTS collections (
		key        TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates the incident and key/value collection tables.
func (db *Database) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
