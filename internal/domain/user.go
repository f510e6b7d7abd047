package domain

import "time"

// AuthProvider identifica el origen de la identidad de un usuario.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
	ProviderApple  AuthProvider = "apple"
)

// IsSocial indica si el proveedor es externo (google, apple).
func (p AuthProvider) IsSocial() bool {
	return p == ProviderGoogle || p == ProviderApple
}

func (p AuthProvider) Valid() bool {
	return p == ProviderLocal || p.IsSocial()
}

type User struct {
	ID              string       `json:"id"`
	FullName        string       `json:"fullName"`
	Country         string       `json:"country"`
	Email           string       `json:"email"`
	PasswordHash    string       `json:"-"`
	AuthProvider    AuthProvider `json:"authProvider"`
	ProviderUserID  string       `json:"-"`
	IsEmailVerified bool         `json:"isEmailVerified"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func (u User) IsLocal() bool {
	return u.AuthProvider == ProviderLocal
}

// UserPublic es la vista del usuario que se devuelve en las respuestas.
type UserPublic struct {
	ID           string       `json:"id"`
	FullName     string       `json:"fullName"`
	Country      string       `json:"country"`
	Email        string       `json:"email"`
	AuthProvider AuthProvider `json:"authProvider"`
}

func (u User) Public() UserPublic {
	return UserPublic{
		ID:           u.ID,
		FullName:     u.FullName,
		Country:      u.Country,
		Email:        u.Email,
		AuthProvider: u.AuthProvider,
	}
}
