package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lms-auth/internal/apperr"
	"lms-auth/internal/domain"
	"lms-auth/internal/repository"
)

// AdminService coordina autenticacion y gestion de administradores.
type AdminService struct {
	logger *zap.Logger
	admins repository.AdminRepository
	hasher Hasher
	tokens *JWTService
	now    func() time.Time
}

func NewAdminService(logger *zap.Logger, admins repository.AdminRepository, hasher Hasher, tokens *JWTService) *AdminService {
	return &AdminService{
		logger: logger,
		admins: admins,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// Login verifica el password antes del estado activo.
func (s *AdminService) Login(ctx context.Context, in AdminLoginInput) (AdminLoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return AdminLoginResult{}, err
	}

	admin, err := s.admins.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AdminLoginResult{}, apperr.ErrInvalidCredentials
		}
		return AdminLoginResult{}, apperr.Internal(fmt.Errorf("find admin: %w", err))
	}
	if !s.hasher.Verify(in.Password, admin.PasswordHash) {
		return AdminLoginResult{}, apperr.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return AdminLoginResult{}, apperr.ErrAccountInactive
	}

	token, err := s.tokens.Issue(domain.AdminPrincipal(admin))
	if err != nil {
		return AdminLoginResult{}, err
	}
	return AdminLoginResult{Message: "Admin login successful", Token: token, Admin: admin}, nil
}

// BootstrapSuperadmin crea el primer superadmin mientras no exista ningun admin.
func (s *AdminService) BootstrapSuperadmin(ctx context.Context, in BootstrapSuperadminInput) (AdminResult, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return AdminResult{}, err
	}

	count, err := s.admins.Count(ctx)
	if err != nil {
		return AdminResult{}, apperr.Internal(fmt.Errorf("count admins: %w", err))
	}
	if count > 0 {
		return AdminResult{}, apperr.ErrBootstrapDisabled
	}

	admin, err := s.createAdmin(ctx, in.FullName, in.Email, in.Password, domain.RoleSuperadmin, boolOrDefault(in.IsActive, true))
	if err != nil {
		return AdminResult{}, err
	}
	s.logger.Info("superadmin bootstrapped", zap.String("admin_id", admin.ID))
	return AdminResult{Message: "Superadmin created successfully", Admin: admin}, nil
}

// Create da de alta un admin. Solo un superadmin puede crear superadmins.
func (s *AdminService) Create(ctx context.Context, actor domain.Principal, in CreateAdminInput) (AdminResult, error) {
	if err := RequireRole(actor, domain.RoleSuperadmin, domain.RoleAdmin); err != nil {
		return AdminResult{}, err
	}
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return AdminResult{}, err
	}
	if err := authorizeAdminCreate(actor, in.Role); err != nil {
		return AdminResult{}, err
	}

	if _, err := s.admins.GetByEmail(ctx, in.Email); err == nil {
		return AdminResult{}, apperr.ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return AdminResult{}, apperr.Internal(fmt.Errorf("find admin: %w", err))
	}

	admin, err := s.createAdmin(ctx, in.FullName, in.Email, in.Password, in.Role, boolOrDefault(in.IsActive, true))
	if err != nil {
		return AdminResult{}, err
	}
	s.logger.Info("admin created",
		zap.String("admin_id", admin.ID),
		zap.String("role", string(admin.Role)),
		zap.String("actor_id", actor.ID),
	)
	return AdminResult{Message: "Admin created successfully", Admin: admin}, nil
}

// List devuelve todos los admins del mas reciente al mas antiguo.
func (s *AdminService) List(ctx context.Context, actor domain.Principal) (AdminListResult, error) {
	if err := RequireRole(actor, domain.RoleSuperadmin, domain.RoleAdmin); err != nil {
		return AdminListResult{}, err
	}
	admins, err := s.admins.List(ctx)
	if err != nil {
		return AdminListResult{}, apperr.Internal(fmt.Errorf("list admins: %w", err))
	}
	return AdminListResult{Admins: admins}, nil
}

func (s *AdminService) Get(ctx context.Context, actor domain.Principal, id string) (AdminResult, error) {
	if err := RequireRole(actor, domain.RoleSuperadmin, domain.RoleAdmin); err != nil {
		return AdminResult{}, err
	}
	admin, err := s.requireAdmin(ctx, id)
	if err != nil {
		return AdminResult{}, err
	}
	return AdminResult{Admin: admin}, nil
}

// Update aplica un cambio parcial. El password se re-hashea antes de persistir.
func (s *AdminService) Update(ctx context.Context, actor domain.Principal, id string, in UpdateAdminInput) (AdminResult, error) {
	if err := RequireRole(actor, domain.RoleSuperadmin, domain.RoleAdmin); err != nil {
		return AdminResult{}, err
	}
	in.normalize()
	if in.empty() {
		return AdminResult{}, apperr.ErrValidation.WithFields([]apperr.FieldError{
			{Field: "", Message: "At least one field must be provided"},
		})
	}
	if err := validateInput(in); err != nil {
		return AdminResult{}, err
	}

	admin, err := s.requireAdmin(ctx, id)
	if err != nil {
		return AdminResult{}, err
	}
	if err := authorizeAdminUpdate(actor, admin, in.Role); err != nil {
		return AdminResult{}, err
	}

	if in.Email != nil && *in.Email != admin.Email {
		if _, err := s.admins.GetByEmail(ctx, *in.Email); err == nil {
			return AdminResult{}, apperr.ErrEmailExists
		} else if !errors.Is(err, repository.ErrNotFound) {
			return AdminResult{}, apperr.Internal(fmt.Errorf("find admin: %w", err))
		}
		admin.Email = *in.Email
	}
	if in.FullName != nil {
		admin.FullName = *in.FullName
	}
	if in.Password != nil {
		passwordHash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return AdminResult{}, apperr.Internal(fmt.Errorf("hash password: %w", err))
		}
		admin.PasswordHash = passwordHash
	}
	if in.Role != nil {
		admin.Role = *in.Role
	}
	if in.IsActive != nil {
		admin.IsActive = *in.IsActive
	}
	admin.UpdatedAt = s.now().UTC()

	if err := s.admins.Save(ctx, admin); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return AdminResult{}, apperr.ErrEmailExists
		case errors.Is(err, repository.ErrNotFound):
			return AdminResult{}, apperr.ErrAdminNotFound
		default:
			return AdminResult{}, apperr.Internal(fmt.Errorf("save admin: %w", err))
		}
	}

	s.logger.Info("admin updated", zap.String("admin_id", admin.ID), zap.String("actor_id", actor.ID))
	return AdminResult{Message: "Admin updated successfully", Admin: admin}, nil
}

// Delete borra un admin. Reservado a superadmin; nadie puede borrarse a si mismo.
func (s *AdminService) Delete(ctx context.Context, actor domain.Principal, id string) (MessageResult, error) {
	if err := RequireRole(actor, domain.RoleSuperadmin); err != nil {
		return MessageResult{}, err
	}
	if id == actor.ID {
		return MessageResult{}, apperr.ErrSelfDeletionForbidden
	}

	if err := s.admins.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return MessageResult{}, apperr.ErrAdminNotFound
		}
		return MessageResult{}, apperr.Internal(fmt.Errorf("delete admin: %w", err))
	}

	s.logger.Info("admin deleted", zap.String("admin_id", id), zap.String("actor_id", actor.ID))
	return MessageResult{Message: "Admin deleted successfully"}, nil
}

// Profile devuelve el admin autenticado.
func (s *AdminService) Profile(ctx context.Context, actor domain.Principal) (domain.Admin, error) {
	return s.loadPrincipal(ctx, actor)
}

// Authenticate valida un bearer token de admin, carga la cuenta y exige que este activa.
func (s *AdminService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	p, err := s.tokens.Authorize(token, domain.PrincipalAdmin)
	if err != nil {
		return domain.Principal{}, err
	}
	admin, err := s.loadPrincipal(ctx, p)
	if err != nil {
		return domain.Principal{}, err
	}
	if !admin.IsActive {
		return domain.Principal{}, apperr.ErrAccountInactive
	}
	// El rol vigente es el de storage, no el embebido en el token.
	return domain.AdminPrincipal(admin), nil
}

// SeedDefault crea el admin configurado o, si ya existe, restablece
// nombre, password, rol y estado activo. Devuelve true si lo creo.
func (s *AdminService) SeedDefault(ctx context.Context, fullName, emailAddr, password string, role domain.AdminRole) (domain.Admin, bool, error) {
	in := CreateAdminInput{
		FullName: strings.TrimSpace(fullName),
		Email:    normalizeEmail(emailAddr),
		Password: password,
		Role:     role,
	}
	if err := validateInput(in); err != nil {
		return domain.Admin{}, false, fmt.Errorf("seed admin: %w", err)
	}
	fullName, emailAddr = in.FullName, in.Email

	existing, err := s.admins.GetByEmail(ctx, emailAddr)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return domain.Admin{}, false, fmt.Errorf("find admin: %w", err)
		}
		admin, err := s.createAdmin(ctx, fullName, emailAddr, password, role, true)
		if err != nil {
			return domain.Admin{}, false, err
		}
		return admin, true, nil
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Admin{}, false, fmt.Errorf("hash password: %w", err)
	}
	existing.FullName = fullName
	existing.PasswordHash = passwordHash
	existing.Role = role
	existing.IsActive = true
	existing.UpdatedAt = s.now().UTC()
	if err := s.admins.Save(ctx, existing); err != nil {
		return domain.Admin{}, false, fmt.Errorf("save admin: %w", err)
	}
	return existing, false, nil
}

func (s *AdminService) createAdmin(ctx context.Context, fullName, emailAddr, password string, role domain.AdminRole, active bool) (domain.Admin, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Admin{}, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}
	now := s.now().UTC()
	admin := domain.Admin{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        emailAddr,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Admin{}, apperr.ErrEmailExists
		}
		return domain.Admin{}, apperr.Internal(fmt.Errorf("create admin: %w", err))
	}
	return admin, nil
}

func (s *AdminService) requireAdmin(ctx context.Context, id string) (domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Admin{}, apperr.ErrAdminNotFound
		}
		return domain.Admin{}, apperr.Internal(fmt.Errorf("load admin: %w", err))
	}
	return admin, nil
}

func (s *AdminService) loadPrincipal(ctx context.Context, p domain.Principal) (domain.Admin, error) {
	if p.Type != domain.PrincipalAdmin {
		return domain.Admin{}, apperr.ErrWrongPrincipalType.WithMessage("Invalid token type for admin")
	}
	admin, err := s.admins.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Admin{}, apperr.ErrUnknownPrincipal
		}
		return domain.Admin{}, apperr.Internal(fmt.Errorf("load admin: %w", err))
	}
	return admin, nil
}
