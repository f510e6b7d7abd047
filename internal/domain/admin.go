package domain

import "time"

// AdminRole define el nivel de autorizacion de un administrador.
type AdminRole string

const (
	RoleSuperadmin AdminRole = "superadmin"
	RoleAdmin      AdminRole = "admin"
	RoleMentor     AdminRole = "mentor"
	RoleCounsilor  AdminRole = "counsilor"
)

// AdminRoles lista los roles validos en orden de privilegio.
var AdminRoles = []AdminRole{RoleSuperadmin, RoleAdmin, RoleMentor, RoleCounsilor}

func (r AdminRole) Valid() bool {
	for _, role := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}

type Admin struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         AdminRole `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
