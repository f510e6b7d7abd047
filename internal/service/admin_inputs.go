package service

import (
	"strings"

	"lms-auth/internal/domain"
)

type AdminLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
}

type BootstrapSuperadminInput struct {
	FullName string `json:"fullName" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
	IsActive *bool  `json:"isActive"`
}

type CreateAdminInput struct {
	FullName string           `json:"fullName" validate:"required,min=2"`
	Email    string           `json:"email" validate:"required,email"`
	Password string           `json:"password" validate:"required,min=6,bcryptmax"`
	Role     domain.AdminRole `json:"role" validate:"required,oneof=superadmin admin mentor counsilor"`
	IsActive *bool            `json:"isActive"`
}

// UpdateAdminInput es parcial: solo se aplican los campos presentes.
type UpdateAdminInput struct {
	FullName *string           `json:"fullName" validate:"omitempty,min=2"`
	Email    *string           `json:"email" validate:"omitempty,email"`
	Password *string           `json:"password" validate:"omitempty,min=6,bcryptmax"`
	Role     *domain.AdminRole `json:"role" validate:"omitempty,oneof=superadmin admin mentor counsilor"`
	IsActive *bool             `json:"isActive"`
}

func (in UpdateAdminInput) empty() bool {
	return in.FullName == nil && in.Email == nil && in.Password == nil && in.Role == nil && in.IsActive == nil
}

func (in *UpdateAdminInput) normalize() {
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		in.FullName = &name
	}
	if in.Email != nil {
		addr := normalizeEmail(*in.Email)
		in.Email = &addr
	}
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// AdminResult acompana un mensaje con la vista del administrador.
type AdminResult struct {
	Message string       `json:"message,omitempty"`
	Admin   domain.Admin `json:"admin"`
}

type AdminLoginResult struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	Admin   domain.Admin `json:"admin"`
}

type AdminListResult struct {
	Admins []domain.Admin `json:"admins"`
}
