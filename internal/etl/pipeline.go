// Package etl implements the batch cleaning pipeline: a linear
// extract → transform → load → backup pass over the contacts and programs
// tables. Results land in contacts_cleaned / programs_cleaned (fully
// replaced on every run) and in timestamped backup artifacts; the source
// tables are never mutated.
//
// Runs are serialized with a distributed lock so two pipelines cannot race
// on the clear-and-append load step. A failure in any step aborts the whole
// run; the load runs in one transaction, so no partial cleaned state is ever
// visible.
package etl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/fitness-api/internal/domain"
	"github.com/ignite/fitness-api/internal/pkg/distlock"
)

// ErrRunInProgress is returned when another pipeline run holds the lock.
var ErrRunInProgress = errors.New("a cleaning run is already in progress")

// lockKey names the distributed lock shared by all pipeline instances.
const lockKey = "fitness:etl:cleaning"

// lockTTL bounds how long a crashed Redis-locked run can block the next one.
const lockTTL = 15 * time.Minute

// ArtifactStore mirrors backup artifacts to remote storage.
type ArtifactStore interface {
	Put(ctx context.Context, key string, body []byte) error
}

// Pipeline executes cleaning runs against one database.
type Pipeline struct {
	db        *sql.DB
	lock      distlock.Lock
	backupDir string
	artifacts ArtifactStore
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLock overrides the run lock (tests use a stub).
func WithLock(l distlock.Lock) Option {
	return func(p *Pipeline) { p.lock = l }
}

// WithRedisLock serializes runs through Redis instead of the default
// PostgreSQL advisory lock. Apply after New has the db in hand.
func WithRedisLock(client *redis.Client) Option {
	return func(p *Pipeline) { p.lock = distlock.New(client, p.db, lockKey, lockTTL) }
}

// WithBackupDir sets the directory receiving CSV and stats artifacts.
func WithBackupDir(dir string) Option {
	return func(p *Pipeline) { p.backupDir = dir }
}

// WithArtifactStore enables mirroring of backup artifacts to remote storage.
func WithArtifactStore(s ArtifactStore) Option {
	return func(p *Pipeline) { p.artifacts = s }
}

// WithClock overrides the run-timestamp source, used by tests for stable
// artifact names.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a Pipeline. By default runs are serialized with a PostgreSQL
// advisory lock on db and artifacts go to ./backups.
func New(db *sql.DB, opts ...Option) *Pipeline {
	p := &Pipeline{
		db:        db,
		backupDir: "backups",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.lock == nil {
		p.lock = distlock.New(nil, db, lockKey, lockTTL)
	}
	return p
}

// Run executes one cleaning pass and returns its statistics. Concurrent
// calls beyond the first fail fast with ErrRunInProgress.
func (p *Pipeline) Run(ctx context.Context) (*domain.CleaningStats, error) {
	ok, err := p.lock.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	defer p.lock.Release(ctx)

	runAt := p.now()
	stats := &domain.CleaningStats{
		RunID:     uuid.New().String(),
		Timestamp: runAt,
	}
	log.Printf("[ETL] Run %s starting", stats.RunID)

	contacts, programs, err := p.extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	log.Printf("[ETL] Extracted %d contacts and %d programs", len(contacts), len(programs))

	cleanContacts, contactStats := transformContacts(contacts)
	stats.Contacts = contactStats

	cleanPrograms, programStats := transformPrograms(programs)
	stats.Programs = programStats
	log.Printf("[ETL] Transformed: contacts %d→%d, programs %d→%d",
		contactStats.Original, contactStats.Cleaned,
		programStats.Original, programStats.Cleaned)

	if err := p.load(ctx, cleanContacts, cleanPrograms); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	log.Printf("[ETL] Loaded cleaned tables")

	files, err := p.backup(ctx, runAt, cleanContacts, cleanPrograms, stats)
	if err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}
	log.Printf("[ETL] Run %s complete, artifacts: %v", stats.RunID, files)

	return stats, nil
}

// extract reads both source tables as of one point in time, in insertion
// (id) order, which is the order de-duplication preserves.
func (p *Pipeline) extract(ctx context.Context) ([]domain.Contact, []domain.Program, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, email, message, submitted_at
		FROM contacts
		ORDER BY id
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("read contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.SubmittedAt); err != nil {
			return nil, nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("read contacts: %w", err)
	}

	progRows, err := p.db.QueryContext(ctx, `
		SELECT id, name, description
		FROM programs
		ORDER BY id
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("read programs: %w", err)
	}
	defer progRows.Close()

	var programs []domain.Program
	for progRows.Next() {
		var pr domain.Program
		if err := progRows.Scan(&pr.ID, &pr.Name, &pr.Description); err != nil {
			return nil, nil, fmt.Errorf("scan program: %w", err)
		}
		programs = append(programs, pr)
	}
	if err := progRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("read programs: %w", err)
	}

	return contacts, programs, nil
}

// load replaces the cleaned tables with the transformed rows. The clear and
// append happen in a single transaction, so a re-run fully replaces the
// prior snapshot and a failed run leaves it untouched.
func (p *Pipeline) load(ctx context.Context, contacts []domain.Contact, programs []domain.Program) error {
	if _, err := p.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS contacts_cleaned (LIKE contacts INCLUDING DEFAULTS)`); err != nil {
		return fmt.Errorf("create contacts_cleaned: %w", err)
	}
	if _, err := p.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS programs_cleaned (LIKE programs INCLUDING DEFAULTS)`); err != nil {
		return fmt.Errorf("create programs_cleaned: %w", err)
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts_cleaned`); err != nil {
		return fmt.Errorf("clear contacts_cleaned: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM programs_cleaned`); err != nil {
		return fmt.Errorf("clear programs_cleaned: %w", err)
	}

	for _, c := range contacts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contacts_cleaned (id, name, email, message, submitted_at)
			VALUES ($1, $2, $3, $4, $5)
		`, c.ID, c.Name, c.Email, c.Message, c.SubmittedAt); err != nil {
			return fmt.Errorf("append contact %d: %w", c.ID, err)
		}
	}
	for _, pr := range programs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO programs_cleaned (id, name, description)
			VALUES ($1, $2, $3)
		`, pr.ID, pr.Name, pr.Description); err != nil {
			return fmt.Errorf("append program %d: %w", pr.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}
