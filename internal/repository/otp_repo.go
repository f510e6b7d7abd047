package repository

import (
	"context"
	"time"

	"lms-auth/internal/domain"
)

// PgOTPRepository implementa OTPRepository sobre un Querier de pgx.
// Postgres no tiene indices TTL: PurgeExpired se invoca periodicamente.
type PgOTPRepository struct {
	db Querier
}

func NewPgOTPRepository(db Querier) *PgOTPRepository {
	return &PgOTPRepository{db: db}
}

func (r *PgOTPRepository) Create(ctx context.Context, otp domain.OTP) error {
	const query = `
		INSERT INTO otps (id, user_id, email, purpose, code_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.UserID,
		otp.Email,
		string(otp.Purpose),
		otp.CodeHash,
		otp.ExpiresAt,
		otp.CreatedAt,
	)
	return translatePgError(err)
}

func (r *PgOTPRepository) Latest(ctx context.Context, email string, purpose domain.OTPPurpose) (domain.OTP, error) {
	const query = `
		SELECT id, user_id, email, purpose, code_hash, expires_at, created_at
		FROM otps
		WHERE email = $1 AND purpose = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var (
		otp domain.OTP
		p   string
	)
	err := r.db.QueryRow(ctx, query, email, string(purpose)).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Email,
		&p,
		&otp.CodeHash,
		&otp.ExpiresAt,
		&otp.CreatedAt,
	)
	if err != nil {
		return domain.OTP{}, translatePgError(err)
	}
	otp.Purpose = domain.OTPPurpose(p)
	return otp, nil
}

func (r *PgOTPRepository) DeleteByEmailPurpose(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	_, err := r.db.Exec(ctx, `DELETE FROM otps WHERE email = $1 AND purpose = $2`, email, string(purpose))
	return err
}

func (r *PgOTPRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM otps WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
