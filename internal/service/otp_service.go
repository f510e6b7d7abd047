package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lms-auth/internal/apperr"
	"lms-auth/internal/domain"
	"lms-auth/internal/repository"
)

const (
	otpDigits     = 6
	defaultOTPTTL = 10 * time.Minute
)

var otpUpperBound = big.NewInt(1_000_000)

// OTPService emite y consume codigos de un solo uso por (email, purpose).
type OTPService struct {
	logger  *zap.Logger
	otps    repository.OTPRepository
	hasher  Hasher
	locker  IssueLocker
	ttl     time.Duration
	now     func() time.Time
	newCode func() (string, error)
}

func NewOTPService(logger *zap.Logger, otps repository.OTPRepository, hasher Hasher, locker IssueLocker, ttl time.Duration) *OTPService {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	if locker == nil {
		locker = NewLocalIssueLocker()
	}
	return &OTPService{
		logger:  logger,
		otps:    otps,
		hasher:  hasher,
		locker:  locker,
		ttl:     ttl,
		now:     time.Now,
		newCode: generateOTPCode,
	}
}

// TTL devuelve la vigencia configurada de cada codigo.
func (s *OTPService) TTL() time.Duration {
	return s.ttl
}

// Issue invalida los codigos previos del par y devuelve el nuevo en texto plano.
func (s *OTPService) Issue(ctx context.Context, userID, email string, purpose domain.OTPPurpose) (string, error) {
	unlock, err := s.locker.Lock(ctx, issueLockKey(email, purpose))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		// Se emite sin serializar.
		s.logger.Warn("otp issue lock unavailable", zap.Error(err), zap.String("purpose", string(purpose)))
		unlock = func() {}
	}
	defer unlock()

	code, err := s.newCode()
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("generate otp: %w", err))
	}
	codeHash, err := s.hasher.Hash(code)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("hash otp: %w", err))
	}

	if err := s.otps.DeleteByEmailPurpose(ctx, email, purpose); err != nil {
		return "", apperr.Internal(fmt.Errorf("delete previous otps: %w", err))
	}

	now := s.now().UTC()
	otp := domain.OTP{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		Purpose:   purpose,
		CodeHash:  codeHash,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return "", apperr.Internal(fmt.Errorf("create otp: %w", err))
	}
	return code, nil
}

// VerifyAndConsume valida el codigo mas reciente del par. Un codigo
// incorrecto no consume el registro; uno correcto borra todos los del par.
func (s *OTPService) VerifyAndConsume(ctx context.Context, email string, purpose domain.OTPPurpose, code string) error {
	otp, err := s.otps.Latest(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.ErrOTPNotFound
		}
		return apperr.Internal(fmt.Errorf("load otp: %w", err))
	}

	if otp.ExpiredAt(s.now().UTC()) {
		if err := s.otps.DeleteByEmailPurpose(ctx, email, purpose); err != nil {
			return apperr.Internal(fmt.Errorf("delete expired otps: %w", err))
		}
		return apperr.ErrOTPExpired
	}

	if !s.hasher.Verify(code, otp.CodeHash) {
		return apperr.ErrInvalidOTP
	}

	if err := s.otps.DeleteByEmailPurpose(ctx, email, purpose); err != nil {
		return apperr.Internal(fmt.Errorf("consume otp: %w", err))
	}
	return nil
}

// PurgeExpired elimina registros vencidos. Mongo lo resuelve con su
// indice TTL; en Postgres lo ejecuta el janitor de cmd/api.
func (s *OTPService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.otps.PurgeExpired(ctx, s.now().UTC())
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpUpperBound)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

func issueLockKey(email string, purpose domain.OTPPurpose) string {
	return string(purpose) + ":" + email
}
