package distlock

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisLock_MutualExclusion(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()

	first := NewRedisLock(client, "etl-run", time.Minute)
	ok, err := first.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("first Acquire() = %v, %v; want true, nil", ok, err)
	}

	second := NewRedisLock(client, "etl-run", time.Minute)
	ok, err = second.Acquire(ctx)
	if err != nil {
		t.Fatalf("second Acquire() error: %v", err)
	}
	if ok {
		t.Fatal("second Acquire() succeeded while lock is held")
	}

	if err := first.Release(ctx); err != nil {
		t.Fatalf("Release() error: %v", err)
	}

	ok, err = second.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("Acquire() after release = %v, %v; want true, nil", ok, err)
	}
}

func TestRedisLock_ReleaseOnlyOwn(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()

	holder := NewRedisLock(client, "etl-run", time.Minute)
	if ok, _ := holder.Acquire(ctx); !ok {
		t.Fatal("holder could not acquire")
	}

	// A lock that never acquired must not release the holder's key.
	stranger := NewRedisLock(client, "etl-run", time.Minute)
	if err := stranger.Release(ctx); err != nil {
		t.Fatalf("stranger Release() error: %v", err)
	}

	if ok, _ := stranger.Acquire(ctx); ok {
		t.Fatal("lock was released by a non-owner")
	}
}

func TestPGAdvisoryLock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT pg_try_advisory_lock").
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	mock.ExpectExec("SELECT pg_advisory_unlock").
		WillReturnResult(sqlmock.NewResult(0, 0))

	lock := NewPGAdvisoryLock(db, "etl-run")
	ctx := context.Background()

	ok, err := lock.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("Acquire() = %v, %v; want true, nil", ok, err)
	}
	if err := lock.Release(ctx); err != nil {
		t.Fatalf("Release() error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPGAdvisoryLock_Held(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT pg_try_advisory_lock").
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(false))

	lock := NewPGAdvisoryLock(db, "etl-run")
	ok, err := lock.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	if ok {
		t.Fatal("Acquire() = true for a held lock")
	}
	// Release with no acquired connection is a no-op.
	if err := lock.Release(context.Background()); err != nil {
		t.Errorf("Release() error: %v", err)
	}
}
