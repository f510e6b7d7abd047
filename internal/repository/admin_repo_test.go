package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"

	"lms-auth/internal/domain"
)

var adminRowColumns = []string{"id", "full_name", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}

func TestPgAdminRepository_ListNewestFirst(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgAdminRepository(mock)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(adminRowColumns).
		AddRow("adm-2", "Mentor", "men@x.com", "h2", "mentor", true, base.Add(time.Hour), base.Add(time.Hour)).
		AddRow("adm-1", "Root", "root@x.com", "h1", "superadmin", true, base, base)
	mock.ExpectQuery(`(?s)SELECT .+ FROM admins ORDER BY created_at DESC`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "adm-2" || got[1].Role != domain.RoleSuperadmin {
		t.Fatalf("unexpected admins: %+v", got)
	}
}

func TestPgAdminRepository_CreateDuplicate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgAdminRepository(mock)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	admin := domain.Admin{ID: "adm-1", FullName: "Root", Email: "root@x.com", PasswordHash: "h", Role: domain.RoleSuperadmin, IsActive: true, CreatedAt: now, UpdatedAt: now}
	mock.ExpectExec(`(?s)INSERT INTO admins`).
		WithArgs("adm-1", "Root", "root@x.com", "h", "superadmin", true, now, now).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "admins_email_key"})

	if err := repo.Create(context.Background(), admin); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestPgAdminRepository_SaveMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgAdminRepository(mock)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	admin := domain.Admin{ID: "gone", FullName: "Root", Email: "root@x.com", PasswordHash: "h", Role: domain.RoleAdmin, UpdatedAt: now}
	mock.ExpectExec(`(?s)UPDATE admins SET .+ WHERE id = \$1`).
		WithArgs("gone", "Root", "root@x.com", "h", "admin", false, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.Save(context.Background(), admin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPgAdminRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgAdminRepository(mock)

	mock.ExpectExec(`DELETE FROM admins WHERE id = \$1`).
		WithArgs("adm-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM admins WHERE id = \$1`).
		WithArgs("adm-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "adm-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(context.Background(), "adm-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestPgAdminRepository_Count(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgAdminRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM admins`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	n, err := repo.Count(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("expected 2 admins, got %d err=%v", n, err)
	}
}
