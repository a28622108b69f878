// Package postgres implements the contact and program repositories against
// PostgreSQL using database/sql. Every create runs in its own transaction;
// unique-constraint violations are translated into the sentinel errors of
// the repository package so callers never see driver errors for expected
// conflicts.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for a unique-constraint hit.
const uniqueViolation = "23505"

// foreignKeyViolation is the code for a missing referenced row.
const foreignKeyViolation = "23503"

func isPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

// Bootstrap creates the base tables and the association table if they do not
// exist yet. The cleaned tables are owned by the ETL pipeline and created
// there on demand.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS contacts (
			id           SERIAL PRIMARY KEY,
			name         VARCHAR(100) NOT NULL,
			email        VARCHAR(150) NOT NULL UNIQUE,
			message      TEXT NOT NULL,
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS programs (
			id          SERIAL PRIMARY KEY,
			name        VARCHAR(100) NOT NULL UNIQUE,
			description TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contact_program (
			contact_id INTEGER NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
			program_id INTEGER NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
			PRIMARY KEY (contact_id, program_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
