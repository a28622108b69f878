package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/fitness-api/internal/domain"
	"github.com/ignite/fitness-api/internal/repository"
	"github.com/ignite/fitness-api/internal/validate"
)

// ProgramRepo provides durable create/read access to programs.
type ProgramRepo struct{ db *sql.DB }

// NewProgramRepo creates a Postgres-backed program repository.
func NewProgramRepo(db *sql.DB) *ProgramRepo { return &ProgramRepo{db: db} }

// Create inserts one program inside a single transaction. A duplicate name
// returns repository.ErrDuplicateName with nothing retained.
func (r *ProgramRepo) Create(ctx context.Context, in validate.ProgramInput) (*domain.Program, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create program: %w", err)
	}
	defer tx.Rollback()

	p := domain.Program{Name: in.Name, Description: in.Description}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO programs (name, description)
		VALUES ($1, $2)
		RETURNING id
	`, in.Name, in.Description).Scan(&p.ID)
	if err != nil {
		if isPQCode(err, uniqueViolation) {
			return nil, repository.ErrDuplicateName
		}
		return nil, fmt.Errorf("insert program: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create program: %w", err)
	}
	return &p, nil
}

// List returns all programs ordered by id ascending.
func (r *ProgramRepo) List(ctx context.Context) ([]domain.Program, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description
		FROM programs
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	out := []domain.Program{}
	for rows.Next() {
		var p domain.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return out, nil
}

// GetByID returns one program or repository.ErrProgramNotFound.
func (r *ProgramRepo) GetByID(ctx context.Context, id int) (*domain.Program, error) {
	var p domain.Program
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description
		FROM programs
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description)
	if err == sql.ErrNoRows {
		return nil, repository.ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get program %d: %w", id, err)
	}
	return &p, nil
}
