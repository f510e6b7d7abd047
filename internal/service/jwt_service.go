package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lms-auth/internal/apperr"
	"lms-auth/internal/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// JWTService emite y valida tokens de acceso para usuarios y administradores.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type Claims struct {
	UserID    string               `json:"userId"`
	Email     string               `json:"email"`
	TokenType domain.PrincipalType `json:"tokenType"`
	Role      domain.AdminRole     `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue firma un token para el principal. El rol solo se embebe para admins.
func (s *JWTService) Issue(p domain.Principal) (string, error) {
	if len(s.secret) == 0 {
		return "", apperr.Internal(errEmptyJWTSecret)
	}
	now := s.now().UTC()
	claims := Claims{
		UserID:    p.ID,
		Email:     p.Email,
		TokenType: p.Type,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if p.Type == domain.PrincipalAdmin {
		claims.Role = p.Role
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return signed, nil
}

// Verify valida firma, expiracion y estructura. Cualquier falla se
// reporta como ErrInvalidOrExpiredToken.
func (s *JWTService) Verify(tokenString string) (domain.Principal, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return domain.Principal{}, apperr.ErrInvalidOrExpiredToken
	}

	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !s.isValidClaims(claims) {
		return domain.Principal{}, apperr.ErrInvalidOrExpiredToken
	}

	return domain.Principal{
		Type:  claims.TokenType,
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

// Authorize verifica el token y exige el tipo de principal esperado
// antes de cualquier consulta a storage.
func (s *JWTService) Authorize(tokenString string, want domain.PrincipalType) (domain.Principal, error) {
	p, err := s.Verify(tokenString)
	if err != nil {
		return domain.Principal{}, err
	}
	if p.Type != want {
		return domain.Principal{}, apperr.ErrWrongPrincipalType.WithMessagef("Invalid token type for %s", want)
	}
	return p, nil
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.UserID) == "" || claims.Subject != claims.UserID {
		return false
	}
	switch claims.TokenType {
	case domain.PrincipalUser:
		return claims.Role == ""
	case domain.PrincipalAdmin:
		return claims.Role.Valid()
	default:
		return false
	}
}
