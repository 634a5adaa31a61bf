package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS slots (
		id           TEXT PRIMARY KEY,
		tid          TEXT NOT NULL,
		connector_id TEXT NOT NULL,
		comment      TEXT,
		category     TEXT,
		teid         TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_slots_tid ON slots(tid)`,
	`CREATE INDEX IF NOT EXISTS idx_slots_teid ON slots(teid)`,

	`CREATE TABLE IF NOT EXISTS chunks (
		id    TEXT PRIMARY KEY,
		sid   TEXT NOT NULL REFERENCES slots(id) ON DELETE CASCADE,
		start TEXT NOT NULL,
		"end" TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_chunks_sid ON chunks(sid)`,
	`CREATE INDEX IF NOT EXISTS idx_chunks_start ON chunks(start)`,
	`CREATE INDEX IF NOT EXISTS idx_chunks_end ON chunks("end")`,

	`CREATE TABLE IF NOT EXISTS aliases (
		tid   TEXT NOT NULL,
		alias TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_aliases_alias ON aliases(alias)`,
	`CREATE INDEX IF NOT EXISTS idx_aliases_tid ON aliases(tid)`,
}
