// Package apperr define los errores de negocio tipados del servicio.
//
// Cada error lleva un codigo estable, un Kind y el status HTTP sugerido.
// errors.Is compara por codigo, asi que WithMessage conserva la identidad.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind agrupa los errores por categoria.
type Kind string

const (
	KindNotFound     Kind = "NotFound"
	KindConflict     Kind = "Conflict"
	KindUnauthorized Kind = "Unauthorized"
	KindForbidden    Kind = "Forbidden"
	KindBadRequest   Kind = "BadRequest"
	KindInternal     Kind = "Internal"
)

// FieldError describe una validacion fallida sobre un campo del request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Code    string
	Status  int
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is compara por codigo.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithMessage devuelve una copia con un mensaje especifico.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithMessagef es WithMessage con formato.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// WithFields devuelve una copia con errores por campo.
func (e *Error) WithFields(fields []FieldError) *Error {
	cp := *e
	cp.Fields = append([]FieldError(nil), fields...)
	return &cp
}

// Wrap devuelve una copia con la causa adjunta.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

func newError(kind Kind, code string, status int, msg string) *Error {
	return &Error{Kind: kind, Code: code, Status: status, Message: msg}
}

// From extrae un *Error de la cadena. Cualquier otro error se reporta como interno.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return ErrInternal, false
}

// Internal envuelve un error inesperado (storage, hashing) sin exponerlo.
func Internal(cause error) *Error {
	return ErrInternal.Wrap(cause)
}

var (
	ErrInternal     = newError(KindInternal, "INTERNAL", http.StatusInternalServerError, "Internal server error")
	ErrValidation   = newError(KindBadRequest, "VALIDATION_FAILED", http.StatusBadRequest, "Validation failed")
	ErrMailDelivery = newError(KindInternal, "MAIL_DELIVERY_FAILED", http.StatusServiceUnavailable, "Email delivery unavailable")

	// Cuentas
	ErrUserNotFound               = newError(KindNotFound, "USER_NOT_FOUND", http.StatusNotFound, "User not found")
	ErrAdminNotFound              = newError(KindNotFound, "ADMIN_NOT_FOUND", http.StatusNotFound, "Admin not found")
	ErrEmailAlreadyRegistered     = newError(KindConflict, "EMAIL_ALREADY_REGISTERED", http.StatusConflict, "Email already registered")
	ErrEmailExists                = newError(KindConflict, "EMAIL_EXISTS", http.StatusConflict, "Admin email already exists")
	ErrProviderConflict           = newError(KindConflict, "PROVIDER_CONFLICT", http.StatusConflict, "Email is registered with another provider")
	ErrProviderMismatch           = newError(KindForbidden, "PROVIDER_MISMATCH", http.StatusForbidden, "Account is linked with another provider")
	ErrProviderIdentifierMismatch = newError(KindForbidden, "PROVIDER_IDENTIFIER_MISMATCH", http.StatusForbidden, "Invalid social account identifier")
	ErrProviderLoginRequired      = newError(KindForbidden, "PROVIDER_LOGIN_REQUIRED", http.StatusForbidden, "Email/password login is disabled for this account")
	ErrSocialAccountNoOTP         = newError(KindBadRequest, "SOCIAL_ACCOUNT_NO_OTP", http.StatusBadRequest, "Social accounts do not require OTP verification")
	ErrPasswordResetUnavailable   = newError(KindBadRequest, "PASSWORD_RESET_UNAVAILABLE", http.StatusBadRequest, "Password reset is unavailable for social accounts")
	ErrEmailNotVerified           = newError(KindForbidden, "EMAIL_NOT_VERIFIED", http.StatusForbidden, "Please verify your email first")
	ErrInvalidCredentials         = newError(KindUnauthorized, "INVALID_CREDENTIALS", http.StatusUnauthorized, "Invalid email or password")
	ErrAccountInactive            = newError(KindForbidden, "ACCOUNT_INACTIVE", http.StatusForbidden, "Admin account is inactive")
	ErrBootstrapDisabled          = newError(KindForbidden, "BOOTSTRAP_DISABLED", http.StatusForbidden, "Bootstrap disabled. Admin already exists.")
	ErrInsufficientPrivilege      = newError(KindForbidden, "INSUFFICIENT_PRIVILEGE", http.StatusForbidden, "Only superadmin can perform this operation")
	ErrInsufficientRole           = newError(KindForbidden, "INSUFFICIENT_ROLE", http.StatusForbidden, "Insufficient role")
	ErrSelfDeletionForbidden      = newError(KindBadRequest, "SELF_DELETION_FORBIDDEN", http.StatusBadRequest, "You cannot delete your own admin account")

	// OTP
	ErrOTPNotFound = newError(KindNotFound, "OTP_NOT_FOUND", http.StatusBadRequest, "OTP not found. Please request a new OTP.")
	ErrOTPExpired  = newError(KindBadRequest, "OTP_EXPIRED", http.StatusBadRequest, "OTP expired")
	ErrInvalidOTP  = newError(KindBadRequest, "INVALID_OTP", http.StatusBadRequest, "Invalid OTP")

	// Tokens
	ErrMissingToken          = newError(KindUnauthorized, "MISSING_TOKEN", http.StatusUnauthorized, "Authorization token missing or invalid")
	ErrInvalidOrExpiredToken = newError(KindUnauthorized, "INVALID_OR_EXPIRED_TOKEN", http.StatusUnauthorized, "Invalid or expired token")
	ErrWrongPrincipalType    = newError(KindUnauthorized, "WRONG_PRINCIPAL_TYPE", http.StatusUnauthorized, "Invalid token type")
	ErrUnknownPrincipal      = newError(KindUnauthorized, "UNKNOWN_PRINCIPAL", http.StatusUnauthorized, "Invalid token")
)
