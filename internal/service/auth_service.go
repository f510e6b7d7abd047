package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lms-auth/internal/apperr"
	"lms-auth/internal/domain"
	"lms-auth/internal/email"
	"lms-auth/internal/repository"
)

const (
	defaultSocialCountry = "Unknown"
	forgotPasswordReply  = "If the email exists, an OTP has been sent."
)

// AuthService coordina los flujos de autenticacion de usuarios finales.
type AuthService struct {
	logger *zap.Logger
	users  repository.UserRepository
	otps   *OTPService
	hasher Hasher
	tokens *JWTService
	mailer email.Sender
	now    func() time.Time
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, otps *OTPService, hasher Hasher, tokens *JWTService, mailer email.Sender) *AuthService {
	return &AuthService{
		logger: logger,
		users:  users,
		otps:   otps,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		now:    time.Now,
	}
}

// Signup crea o reutiliza una cuenta local sin verificar y envia el OTP.
// Repetir el alta antes de verificar sobrescribe perfil y password.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (SignupResult, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return SignupResult{}, err
	}

	existing, found, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		return SignupResult{}, err
	}
	if found {
		if err := checkLocalAccount(existing, flowSignup); err != nil {
			return SignupResult{}, err
		}
		if existing.IsEmailVerified {
			return SignupResult{}, apperr.ErrEmailAlreadyRegistered
		}
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return SignupResult{}, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	now := s.now().UTC()
	user := existing
	if !found {
		user = domain.User{ID: uuid.NewString(), CreatedAt: now}
	}
	user.FullName = in.FullName
	user.Country = in.Country
	user.Email = in.Email
	user.PasswordHash = passwordHash
	user.AuthProvider = domain.ProviderLocal
	user.ProviderUserID = ""
	user.IsEmailVerified = false
	user.UpdatedAt = now

	if found {
		err = s.users.Save(ctx, user)
	} else {
		err = s.users.Create(ctx, user)
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return SignupResult{}, apperr.ErrEmailAlreadyRegistered
		}
		return SignupResult{}, apperr.Internal(fmt.Errorf("persist user: %w", err))
	}

	if err := s.issueAndSend(ctx, user, domain.PurposeVerifyEmail, email.SubjectVerifyEmail); err != nil {
		return SignupResult{}, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return SignupResult{
		Message: "Signup successful. OTP sent to your email.",
		Email:   user.Email,
	}, nil
}

// VerifyOTP consume el OTP de verificacion, marca el email y emite token.
func (s *AuthService) VerifyOTP(ctx context.Context, in VerifyOTPInput) (AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return AuthResult{}, err
	}

	user, err := s.requireUser(ctx, in.Email)
	if err != nil {
		return AuthResult{}, err
	}
	if err := checkLocalAccount(user, flowVerifyOTP); err != nil {
		return AuthResult{}, err
	}

	if err := s.otps.VerifyAndConsume(ctx, user.Email, domain.PurposeVerifyEmail, in.OTP); err != nil {
		return AuthResult{}, err
	}

	user.IsEmailVerified = true
	user.UpdatedAt = s.now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return AuthResult{}, apperr.Internal(fmt.Errorf("save user: %w", err))
	}

	return s.authResult(user, "Email verified successfully.")
}

// ResendOTP reemite el OTP de verificacion invalidando los anteriores.
func (s *AuthService) ResendOTP(ctx context.Context, in EmailInput) (MessageResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return MessageResult{}, err
	}

	user, err := s.requireUser(ctx, in.Email)
	if err != nil {
		return MessageResult{}, err
	}
	if err := checkLocalAccount(user, flowResendOTP); err != nil {
		return MessageResult{}, err
	}

	if err := s.issueAndSend(ctx, user, domain.PurposeVerifyEmail, email.SubjectResendOTP); err != nil {
		return MessageResult{}, err
	}
	return MessageResult{Message: "New OTP sent successfully."}, nil
}

// Login autentica una cuenta local verificada.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return AuthResult{}, err
	}

	user, found, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		return AuthResult{}, err
	}
	if !found {
		return AuthResult{}, apperr.ErrInvalidCredentials
	}
	if err := checkLocalAccount(user, flowLogin); err != nil {
		return AuthResult{}, err
	}
	if !user.IsEmailVerified {
		return AuthResult{}, apperr.ErrEmailNotVerified
	}
	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return AuthResult{}, apperr.ErrInvalidCredentials
	}

	return s.authResult(user, "Login successful")
}

// SocialLogin acepta una identidad ya verificada por google o apple.
// La autenticidad de la asercion es responsabilidad del llamador.
func (s *AuthService) SocialLogin(ctx context.Context, in SocialLoginInput) (AuthResult, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return AuthResult{}, err
	}

	user, found, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		return AuthResult{}, err
	}

	now := s.now().UTC()
	if !found {
		user, err = s.createSocialUser(ctx, in, now)
		if err != nil {
			return AuthResult{}, err
		}
	} else {
		if err := checkSocialLink(user, in.Provider, in.ProviderUserID); err != nil {
			return AuthResult{}, err
		}
		user.FullName = in.FullName
		if in.Country != nil {
			user.Country = *in.Country
		}
		user.ProviderUserID = in.ProviderUserID
		user.IsEmailVerified = true
		user.UpdatedAt = now
		if err := s.users.Save(ctx, user); err != nil {
			return AuthResult{}, apperr.Internal(fmt.Errorf("save user: %w", err))
		}
	}

	return s.authResult(user, fmt.Sprintf("%s login successful", in.Provider))
}

func (s *AuthService) createSocialUser(ctx context.Context, in SocialLoginInput, now time.Time) (domain.User, error) {
	synthetic, err := syntheticPassword()
	if err != nil {
		return domain.User{}, apperr.Internal(fmt.Errorf("synthetic password: %w", err))
	}
	passwordHash, err := s.hasher.Hash(synthetic)
	if err != nil {
		return domain.User{}, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	country := defaultSocialCountry
	if in.Country != nil {
		country = *in.Country
	}
	user := domain.User{
		ID:              uuid.NewString(),
		FullName:        in.FullName,
		Country:         country,
		Email:           in.Email,
		PasswordHash:    passwordHash,
		AuthProvider:    in.Provider,
		ProviderUserID:  in.ProviderUserID,
		IsEmailVerified: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, apperr.ErrProviderConflict
		}
		return domain.User{}, apperr.Internal(fmt.Errorf("create user: %w", err))
	}
	s.logger.Info("social user created", zap.String("user_id", user.ID), zap.String("provider", string(user.AuthProvider)))
	return user, nil
}

// ForgotPassword responde lo mismo exista o no la cuenta. Las cuentas
// sociales existentes si reciben ErrPasswordResetUnavailable.
func (s *AuthService) ForgotPassword(ctx context.Context, in EmailInput) (MessageResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return MessageResult{}, err
	}

	user, found, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		return MessageResult{}, err
	}
	if !found {
		return MessageResult{Message: forgotPasswordReply}, nil
	}
	if err := checkLocalAccount(user, flowPasswordReset); err != nil {
		return MessageResult{}, err
	}

	if err := s.issueAndSend(ctx, user, domain.PurposeResetPassword, email.SubjectResetPassword); err != nil {
		return MessageResult{}, err
	}
	return MessageResult{Message: forgotPasswordReply}, nil
}

// ResetPassword consume el OTP de reseteo y reemplaza el password.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) (MessageResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return MessageResult{}, err
	}

	user, err := s.requireUser(ctx, in.Email)
	if err != nil {
		return MessageResult{}, err
	}
	if err := checkLocalAccount(user, flowPasswordReset); err != nil {
		return MessageResult{}, err
	}

	if err := s.otps.VerifyAndConsume(ctx, user.Email, domain.PurposeResetPassword, in.OTP); err != nil {
		return MessageResult{}, err
	}

	passwordHash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return MessageResult{}, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = s.now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return MessageResult{}, apperr.Internal(fmt.Errorf("save user: %w", err))
	}

	s.logger.Info("password reset", zap.String("user_id", user.ID))
	return MessageResult{Message: "Password reset successful"}, nil
}

// Profile devuelve la vista publica del usuario autenticado.
func (s *AuthService) Profile(ctx context.Context, actor domain.Principal) (domain.UserPublic, error) {
	user, err := s.loadPrincipal(ctx, actor)
	if err != nil {
		return domain.UserPublic{}, err
	}
	return user.Public(), nil
}

// Authenticate valida un bearer token de usuario y carga la cuenta.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	p, err := s.tokens.Authorize(token, domain.PrincipalUser)
	if err != nil {
		return domain.Principal{}, err
	}
	user, err := s.loadPrincipal(ctx, p)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.UserPrincipal(user), nil
}

func (s *AuthService) loadPrincipal(ctx context.Context, p domain.Principal) (domain.User, error) {
	if p.Type != domain.PrincipalUser {
		return domain.User{}, apperr.ErrWrongPrincipalType.WithMessage("Invalid token type for user")
	}
	user, err := s.users.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, apperr.ErrUnknownPrincipal
		}
		return domain.User{}, apperr.Internal(fmt.Errorf("load user: %w", err))
	}
	return user, nil
}

func (s *AuthService) issueAndSend(ctx context.Context, user domain.User, purpose domain.OTPPurpose, subject string) error {
	code, err := s.otps.Issue(ctx, user.ID, user.Email, purpose)
	if err != nil {
		return err
	}

	body, err := email.RenderOTP(email.OTPMail{
		FullName:         user.FullName,
		Code:             code,
		ExpiresInMinutes: int(s.otps.TTL().Minutes()),
	})
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		s.logger.Warn("send otp email failed",
			zap.Error(err),
			zap.String("user_id", user.ID),
			zap.String("purpose", string(purpose)),
		)
		return apperr.ErrMailDelivery.Wrap(err)
	}
	return nil
}

func (s *AuthService) authResult(user domain.User, message string) (AuthResult, error) {
	token, err := s.tokens.Issue(domain.UserPrincipal(user))
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Message: message, Token: token, User: user.Public()}, nil
}

func (s *AuthService) findByEmail(ctx context.Context, emailAddr string) (domain.User, bool, error) {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, apperr.Internal(fmt.Errorf("find user: %w", err))
	}
	return user, true, nil
}

func (s *AuthService) requireUser(ctx context.Context, emailAddr string) (domain.User, error) {
	user, found, err := s.findByEmail(ctx, emailAddr)
	if err != nil {
		return domain.User{}, err
	}
	if !found {
		return domain.User{}, apperr.ErrUserNotFound
	}
	return user, nil
}

// syntheticPassword genera un secreto que nunca se compara con input del usuario.
func syntheticPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
