package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"lms-auth/internal/domain"
)

// PgAdminRepository implementa AdminRepository sobre un Querier de pgx.
type PgAdminRepository struct {
	db Querier
}

func NewPgAdminRepository(db Querier) *PgAdminRepository {
	return &PgAdminRepository{db: db}
}

const adminColumns = `id, full_name, email, password_hash, role, is_active, created_at, updated_at`

func (r *PgAdminRepository) Create(ctx context.Context, admin domain.Admin) error {
	const query = `
		INSERT INTO admins (id, full_name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		admin.ID,
		admin.FullName,
		admin.Email,
		admin.PasswordHash,
		string(admin.Role),
		admin.IsActive,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	return translatePgError(err)
}

func (r *PgAdminRepository) GetByID(ctx context.Context, id string) (domain.Admin, error) {
	row := r.db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

func (r *PgAdminRepository) GetByEmail(ctx context.Context, email string) (domain.Admin, error) {
	row := r.db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, email)
	return scanAdmin(row)
}

func (r *PgAdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	rows, err := r.db.Query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := make([]domain.Admin, 0)
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

func (r *PgAdminRepository) Save(ctx context.Context, admin domain.Admin) error {
	const query = `
		UPDATE admins SET
			full_name = $2,
			email = $3,
			password_hash = $4,
			role = $5,
			is_active = $6,
			updated_at = $7
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		admin.ID,
		admin.FullName,
		admin.Email,
		admin.PasswordHash,
		string(admin.Role),
		admin.IsActive,
		admin.UpdatedAt,
	)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgAdminRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgAdminRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

func scanAdmin(row pgx.Row) (domain.Admin, error) {
	var (
		a    domain.Admin
		role string
	)
	err := row.Scan(
		&a.ID,
		&a.FullName,
		&a.Email,
		&a.PasswordHash,
		&role,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.Admin{}, translatePgError(err)
	}
	a.Role = domain.AdminRole(role)
	return a, nil
}
