package repository

import (
	"context"

	"lms-auth/internal/domain"
)

// PgUserRepository implementa UserRepository sobre un Querier de pgx.
type PgUserRepository struct {
	db Querier
}

func NewPgUserRepository(db Querier) *PgUserRepository {
	return &PgUserRepository{db: db}
}

const userColumns = `id, full_name, country, email, password_hash, auth_provider,
		COALESCE(provider_user_id, ''), is_email_verified, created_at, updated_at`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, full_name, country, email, password_hash, auth_provider,
			provider_user_id, is_email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Country,
		user.Email,
		user.PasswordHash,
		string(user.AuthProvider),
		user.ProviderUserID,
		user.IsEmailVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return translatePgError(err)
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(ctx, query, email)
}

func (r *PgUserRepository) Save(ctx context.Context, user domain.User) error {
	const query = `
		UPDATE users SET
			full_name = $2,
			country = $3,
			email = $4,
			password_hash = $5,
			auth_provider = $6,
			provider_user_id = NULLIF($7, ''),
			is_email_verified = $8,
			updated_at = $9
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Country,
		user.Email,
		user.PasswordHash,
		string(user.AuthProvider),
		user.ProviderUserID,
		user.IsEmailVerified,
		user.UpdatedAt,
	)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) scanOne(ctx context.Context, query string, arg any) (domain.User, error) {
	var (
		u        domain.User
		provider string
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.FullName,
		&u.Country,
		&u.Email,
		&u.PasswordHash,
		&provider,
		&u.ProviderUserID,
		&u.IsEmailVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, translatePgError(err)
	}
	u.AuthProvider = domain.AuthProvider(provider)
	return u, nil
}
