package service

import (
	"lms-auth/internal/apperr"
	"lms-auth/internal/domain"
)

// localFlow identifica el flujo que exige una cuenta local.
type localFlow int

const (
	flowSignup localFlow = iota
	flowVerifyOTP
	flowResendOTP
	flowLogin
	flowPasswordReset
)

// checkLocalAccount rechaza cuentas sociales con el error propio de cada flujo.
func checkLocalAccount(user domain.User, flow localFlow) error {
	if user.IsLocal() {
		return nil
	}
	provider := user.AuthProvider
	switch flow {
	case flowSignup:
		return apperr.ErrProviderConflict.WithMessagef("This email is registered with %s. Please use social login.", provider)
	case flowVerifyOTP:
		return apperr.ErrSocialAccountNoOTP
	case flowResendOTP:
		return apperr.ErrSocialAccountNoOTP.WithMessage("Social accounts do not support resend OTP")
	case flowLogin:
		return apperr.ErrProviderLoginRequired.WithMessagef("Use %s login for this account. Email/password login is disabled.", provider)
	default:
		return apperr.ErrPasswordResetUnavailable.WithMessagef("Password reset is unavailable for %s accounts. Use social login.", provider)
	}
}

// checkSocialLink valida que una cuenta existente pueda entrar con la
// identidad social recibida.
func checkSocialLink(user domain.User, provider domain.AuthProvider, providerUserID string) error {
	if user.IsLocal() {
		return apperr.ErrProviderConflict.WithMessage("This email is registered with email/password. Please login using email and password.")
	}
	if user.AuthProvider != provider {
		return apperr.ErrProviderMismatch.WithMessagef("This account is linked with %s. Please continue with %s.", user.AuthProvider, user.AuthProvider)
	}
	if user.ProviderUserID != "" && user.ProviderUserID != providerUserID {
		return apperr.ErrProviderIdentifierMismatch
	}
	return nil
}

// RequireRole exige un principal admin con alguno de los roles dados.
func RequireRole(actor domain.Principal, roles ...domain.AdminRole) error {
	if actor.Type != domain.PrincipalAdmin {
		return apperr.ErrUnknownPrincipal.WithMessage("Unauthorized")
	}
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	return apperr.ErrInsufficientRole
}

func authorizeAdminCreate(actor domain.Principal, role domain.AdminRole) error {
	if actor.Role != domain.RoleSuperadmin && role == domain.RoleSuperadmin {
		return apperr.ErrInsufficientPrivilege.WithMessage("Only superadmin can create another superadmin")
	}
	return nil
}

// authorizeAdminUpdate: solo un superadmin modifica superadmins o promueve a superadmin.
func authorizeAdminUpdate(actor domain.Principal, target domain.Admin, newRole *domain.AdminRole) error {
	if actor.Role == domain.RoleSuperadmin {
		return nil
	}
	if target.Role == domain.RoleSuperadmin {
		return apperr.ErrInsufficientPrivilege.WithMessage("Only superadmin can update superadmin")
	}
	if newRole != nil && *newRole == domain.RoleSuperadmin {
		return apperr.ErrInsufficientPrivilege.WithMessage("Only superadmin can promote to superadmin")
	}
	return nil
}
