package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/fitness-api/internal/domain"
	"github.com/ignite/fitness-api/internal/repository"
	"github.com/ignite/fitness-api/internal/validate"
)

// ContactRepo provides durable create/read access to contacts.
type ContactRepo struct{ db *sql.DB }

// NewContactRepo creates a Postgres-backed contact repository.
func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

// Create inserts one contact inside a single transaction. The store assigns
// id and submission timestamp. A duplicate email returns
// repository.ErrDuplicateEmail with nothing retained.
func (r *ContactRepo) Create(ctx context.Context, in validate.ContactInput) (*domain.Contact, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create contact: %w", err)
	}
	defer tx.Rollback()

	c := domain.Contact{Name: in.Name, Email: in.Email, Message: in.Message}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO contacts (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, submitted_at
	`, in.Name, in.Email, in.Message).Scan(&c.ID, &c.SubmittedAt)
	if err != nil {
		if isPQCode(err, uniqueViolation) {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert contact: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create contact: %w", err)
	}
	return &c, nil
}

// List returns up to limit contacts starting at offset, ordered by id
// ascending (insertion order). An empty slice, not an error, when none match.
func (r *ContactRepo) List(ctx context.Context, offset, limit int) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, message, submitted_at
		FROM contacts
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	out := []domain.Contact{}
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return out, nil
}

// GetByID returns one contact or repository.ErrContactNotFound.
func (r *ContactRepo) GetByID(ctx context.Context, id int) (*domain.Contact, error) {
	var c domain.Contact
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, message, submitted_at
		FROM contacts
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.SubmittedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact %d: %w", id, err)
	}
	return &c, nil
}

// Link associates a contact with a program. The operation is idempotent:
// linking an existing pair is a no-op. A missing parent on either side
// surfaces as the corresponding not-found sentinel.
func (r *ContactRepo) Link(ctx context.Context, contactID, programID int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contact_program (contact_id, program_id)
		VALUES ($1, $2)
		ON CONFLICT (contact_id, program_id) DO NOTHING
	`, contactID, programID)
	if err != nil {
		if isPQCode(err, foreignKeyViolation) {
			if _, getErr := r.GetByID(ctx, contactID); getErr != nil {
				return repository.ErrContactNotFound
			}
			return repository.ErrProgramNotFound
		}
		return fmt.Errorf("link contact %d to program %d: %w", contactID, programID, err)
	}
	return nil
}
