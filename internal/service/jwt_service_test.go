package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lms-auth/internal/apperr"
	"lms-auth/internal/domain"
)

func TestJWTService_IssueVerifyUser(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "lms-auth")

	token, err := svc.Issue(domain.Principal{Type: domain.PrincipalUser, ID: "u1", Email: "jane@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	p, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.ID != "u1" || p.Email != "jane@x.com" || p.Type != domain.PrincipalUser || p.Role != "" {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestJWTService_AdminTokenCarriesRole(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "lms-auth")

	token, err := svc.Issue(domain.Principal{Type: domain.PrincipalAdmin, ID: "a1", Email: "root@x.com", Role: domain.RoleSuperadmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	p, err := svc.Authorize(token, domain.PrincipalAdmin)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if p.Role != domain.RoleSuperadmin {
		t.Fatalf("expected superadmin role, got %q", p.Role)
	}
}

func TestJWTService_PrincipalTypeIsolation(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "lms-auth")

	userToken, _ := svc.Issue(domain.Principal{Type: domain.PrincipalUser, ID: "u1", Email: "jane@x.com"})
	adminToken, _ := svc.Issue(domain.Principal{Type: domain.PrincipalAdmin, ID: "a1", Email: "root@x.com", Role: domain.RoleAdmin})

	if _, err := svc.Authorize(userToken, domain.PrincipalAdmin); !errors.Is(err, apperr.ErrWrongPrincipalType) {
		t.Fatalf("expected ErrWrongPrincipalType for user token on admin gate, got %v", err)
	}
	if _, err := svc.Authorize(adminToken, domain.PrincipalUser); !errors.Is(err, apperr.ErrWrongPrincipalType) {
		t.Fatalf("expected ErrWrongPrincipalType for admin token on user gate, got %v", err)
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, "lms-auth")
	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(domain.Principal{Type: domain.PrincipalUser, ID: "u1", Email: "jane@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(token); !errors.Is(err, apperr.ErrInvalidOrExpiredToken) {
		t.Fatalf("expected ErrInvalidOrExpiredToken, got %v", err)
	}
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("other-secret", time.Hour, "lms-auth")
	verifier := NewJWTService("secret", time.Hour, "lms-auth")

	token, _ := issuer.Issue(domain.Principal{Type: domain.PrincipalUser, ID: "u1", Email: "jane@x.com"})

	if _, err := verifier.Verify(token); !errors.Is(err, apperr.ErrInvalidOrExpiredToken) {
		t.Fatalf("expected ErrInvalidOrExpiredToken, got %v", err)
	}
	if _, err := verifier.Verify("not-a-jwt"); !errors.Is(err, apperr.ErrInvalidOrExpiredToken) {
		t.Fatalf("expected ErrInvalidOrExpiredToken for garbage, got %v", err)
	}
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "lms-auth")
	now := time.Now().UTC()
	claims := Claims{
		UserID:    "u1",
		Email:     "jane@x.com",
		TokenType: domain.PrincipalUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "other-issuer",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, apperr.ErrInvalidOrExpiredToken) {
		t.Fatalf("expected ErrInvalidOrExpiredToken for wrong issuer, got %v", err)
	}
}

func TestJWTService_RejectsAdminTokenWithoutRole(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "lms-auth")
	now := time.Now().UTC()
	claims := Claims{
		UserID:    "a1",
		Email:     "root@x.com",
		TokenType: domain.PrincipalAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "lms-auth",
			Subject:   "a1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))

	if _, err := svc.Verify(signed); !errors.Is(err, apperr.ErrInvalidOrExpiredToken) {
		t.Fatalf("expected ErrInvalidOrExpiredToken, got %v", err)
	}
}

func TestJWTService_RejectsEmptySecret(t *testing.T) {
	svc := NewJWTService("", time.Hour, "lms-auth")

	if _, err := svc.Issue(domain.Principal{Type: domain.PrincipalUser, ID: "u1"}); err == nil {
		t.Fatalf("expected error on empty secret")
	}
}
