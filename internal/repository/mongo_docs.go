package repository

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"lms-auth/internal/domain"
)

type userDocument struct {
	ID              string    `bson:"_id"`
	FullName        string    `bson:"full_name"`
	Country         string    `bson:"country"`
	Email           string    `bson:"email"`
	PasswordHash    string    `bson:"password_hash"`
	AuthProvider    string    `bson:"auth_provider"`
	ProviderUserID  string    `bson:"provider_user_id,omitempty"`
	IsEmailVerified bool      `bson:"is_email_verified"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func newUserDocument(u domain.User) userDocument {
	return userDocument{
		ID:              u.ID,
		FullName:        u.FullName,
		Country:         u.Country,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		AuthProvider:    string(u.AuthProvider),
		ProviderUserID:  u.ProviderUserID,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt.UTC(),
		UpdatedAt:       u.UpdatedAt.UTC(),
	}
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:              d.ID,
		FullName:        d.FullName,
		Country:         d.Country,
		Email:           d.Email,
		PasswordHash:    d.PasswordHash,
		AuthProvider:    domain.AuthProvider(d.AuthProvider),
		ProviderUserID:  d.ProviderUserID,
		IsEmailVerified: d.IsEmailVerified,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type adminDocument struct {
	ID           string    `bson:"_id"`
	FullName     string    `bson:"full_name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	IsActive     bool      `bson:"is_active"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func newAdminDocument(a domain.Admin) adminDocument {
	return adminDocument{
		ID:           a.ID,
		FullName:     a.FullName,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt.UTC(),
		UpdatedAt:    a.UpdatedAt.UTC(),
	}
}

func (d adminDocument) toDomain() domain.Admin {
	return domain.Admin{
		ID:           d.ID,
		FullName:     d.FullName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.AdminRole(d.Role),
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type otpDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Email     string    `bson:"email"`
	Purpose   string    `bson:"purpose"`
	CodeHash  string    `bson:"code_hash"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func newOTPDocument(o domain.OTP) otpDocument {
	return otpDocument{
		ID:        o.ID,
		UserID:    o.UserID,
		Email:     o.Email,
		Purpose:   string(o.Purpose),
		CodeHash:  o.CodeHash,
		ExpiresAt: o.ExpiresAt.UTC(),
		CreatedAt: o.CreatedAt.UTC(),
	}
}

func (d otpDocument) toDomain() domain.OTP {
	return domain.OTP{
		ID:        d.ID,
		UserID:    d.UserID,
		Email:     d.Email,
		Purpose:   domain.OTPPurpose(d.Purpose),
		CodeHash:  d.CodeHash,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}

// translateMongoError traduce errores del driver a los errores del paquete.
func translateMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
