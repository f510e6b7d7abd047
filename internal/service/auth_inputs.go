package service

import (
	"strings"

	"lms-auth/internal/domain"
)

type SignupInput struct {
	FullName string `json:"fullName" validate:"required,min=2"`
	Country  string `json:"country" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
}

type VerifyOTPInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,number"`
}

type EmailInput struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
}

// SocialLoginInput es la identidad ya verificada por el proveedor externo.
type SocialLoginInput struct {
	Provider       domain.AuthProvider `json:"provider" validate:"required,oneof=google apple"`
	ProviderUserID string              `json:"providerUserId" validate:"required,min=2"`
	Email          string              `json:"email" validate:"required,email"`
	FullName       string              `json:"fullName" validate:"required,min=2"`
	Country        *string             `json:"country" validate:"omitempty,min=2"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,number"`
	NewPassword string `json:"newPassword" validate:"required,min=6,bcryptmax"`
}

func (in *SignupInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Country = strings.TrimSpace(in.Country)
	in.Email = normalizeEmail(in.Email)
}

func (in *SocialLoginInput) normalize() {
	in.Provider = domain.AuthProvider(strings.ToLower(strings.TrimSpace(string(in.Provider))))
	in.ProviderUserID = strings.TrimSpace(in.ProviderUserID)
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Country != nil {
		country := strings.TrimSpace(*in.Country)
		in.Country = &country
	}
}

// SignupResult responde al alta sin emitir token.
type SignupResult struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// AuthResult acompana el token emitido con la vista publica del usuario.
type AuthResult struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.UserPublic `json:"user"`
}

type MessageResult struct {
	Message string `json:"message"`
}
