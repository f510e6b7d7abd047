package repository

import (
	"context"
	"errors"
	"time"

	"lms-auth/internal/domain"
)

var (
	// ErrNotFound se devuelve cuando el registro buscado no existe.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate se devuelve cuando se viola la unicidad del email.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	// Save reemplaza todos los campos mutables del usuario.
	Save(ctx context.Context, user domain.User) error
}

// AdminRepository define el contrato de persistencia para administradores.
type AdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) error
	GetByID(ctx context.Context, id string) (domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (domain.Admin, error)
	// List devuelve los administradores del mas reciente al mas antiguo.
	List(ctx context.Context) ([]domain.Admin, error)
	Save(ctx context.Context, admin domain.Admin) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// OTPRepository persiste codigos OTP hasheados.
type OTPRepository interface {
	Create(ctx context.Context, otp domain.OTP) error
	// Latest devuelve el registro mas reciente para (email, purpose).
	Latest(ctx context.Context, email string, purpose domain.OTPPurpose) (domain.OTP, error)
	DeleteByEmailPurpose(ctx context.Context, email string, purpose domain.OTPPurpose) error
	// PurgeExpired borra los registros vencidos antes de now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
