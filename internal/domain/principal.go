package domain

// PrincipalType discrimina tokens de usuario y de administrador.
type PrincipalType string

const (
	PrincipalUser  PrincipalType = "user"
	PrincipalAdmin PrincipalType = "admin"
)

// Principal es la entidad autenticada detras de un request.
// Role solo aplica a administradores.
type Principal struct {
	Type  PrincipalType
	ID    string
	Email string
	Role  AdminRole
}

func UserPrincipal(u User) Principal {
	return Principal{Type: PrincipalUser, ID: u.ID, Email: u.Email}
}

func AdminPrincipal(a Admin) Principal {
	return Principal{Type: PrincipalAdmin, ID: a.ID, Email: a.Email, Role: a.Role}
}
