package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/ignite/fitness-api/internal/repository"
	"github.com/ignite/fitness-api/internal/validate"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestContactRepo_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepo(db)

	submitted := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO contacts").
		WithArgs("Ana Solis", "ana@example.com", "I want to join the strength program").
		WillReturnRows(sqlmock.NewRows([]string{"id", "submitted_at"}).AddRow(1, submitted))
	mock.ExpectCommit()

	c, err := repo.Create(context.Background(), validate.ContactInput{
		Name:    "Ana Solis",
		Email:   "ana@example.com",
		Message: "I want to join the strength program",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if c.ID != 1 {
		t.Errorf("ID = %d, want 1 (store-assigned)", c.ID)
	}
	if !c.SubmittedAt.Equal(submitted) {
		t.Errorf("SubmittedAt = %v, want store-assigned %v", c.SubmittedAt, submitted)
	}
	if c.Name != "Ana Solis" {
		t.Errorf("Name = %q, creation must not change case", c.Name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestContactRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO contacts").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "contacts_email_key"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), validate.ContactInput{
		Name:    "Ana",
		Email:   "a@x.com",
		Message: "a second message with the same email",
	})
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("Create() error = %v, want ErrDuplicateEmail", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("duplicate insert must roll back: %v", err)
	}
}

func TestContactRepo_Create_StoreFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO contacts").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), validate.ContactInput{
		Name: "Ana", Email: "a@x.com", Message: "message long enough",
	})
	if err == nil {
		t.Fatal("expected store failure")
	}
	if errors.Is(err, repository.ErrDuplicateEmail) {
		t.Error("generic failure must not classify as duplicate")
	}
}

func TestContactRepo_List_Pagination(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepo(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "message", "submitted_at"})
	for i := 1; i <= 10; i++ {
		rows.AddRow(i, "Contact", "c@example.com", "some message here", time.Now())
	}
	mock.ExpectQuery("FROM contacts").
		WithArgs(10, 0).
		WillReturnRows(rows)

	out, err := repo.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(out) != 10 {
		t.Errorf("len = %d, want 10", len(out))
	}
	for i, c := range out {
		if c.ID != i+1 {
			t.Fatalf("contacts out of order: index %d has id %d", i, c.ID)
		}
	}
}

func TestContactRepo_List_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepo(db)

	mock.ExpectQuery("FROM contacts").
		WithArgs(10, 100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "message", "submitted_at"}))

	out, err := repo.List(context.Background(), 100, 10)
	if err != nil {
		t.Fatalf("List() past the end must not error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("want empty slice, got %v", out)
	}
}

func TestContactRepo_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepo(db)

	mock.ExpectQuery("FROM contacts").
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, repository.ErrContactNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrContactNotFound", err)
	}
}

func TestContactRepo_Link_Idempotent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepo(db)

	mock.ExpectExec("INSERT INTO contact_program").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Link(context.Background(), 1, 2); err != nil {
		t.Fatalf("Link() error: %v", err)
	}
}

func TestContactRepo_Link_MissingProgram(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepo(db)

	mock.ExpectExec("INSERT INTO contact_program").
		WithArgs(1, 99).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "contact_program_program_id_fkey"})
	// The repo re-checks the contact side to pick the right sentinel.
	mock.ExpectQuery("FROM contacts").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "message", "submitted_at"}).
			AddRow(1, "Ana", "a@x.com", "message long enough", time.Now()))

	err := repo.Link(context.Background(), 1, 99)
	if !errors.Is(err, repository.ErrProgramNotFound) {
		t.Fatalf("Link() error = %v, want ErrProgramNotFound", err)
	}
}
