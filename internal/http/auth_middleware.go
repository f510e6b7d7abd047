package http

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lms-auth/internal/apperr"
	"lms-auth/internal/domain"
	"lms-auth/internal/service"
)

const principalKey = "auth_principal"

// Authenticator resuelve un bearer token al principal que representa.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

// RequirePrincipal exige un bearer token valido y guarda el principal en el contexto.
func RequirePrincipal(logger *zap.Logger, authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			writeError(c, logger, apperr.ErrMissingToken)
			return
		}

		p, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireRoles corta el request si el admin autenticado no tiene alguno de los roles.
// Debe ir despues de RequirePrincipal.
func RequireRoles(logger *zap.Logger, roles ...domain.AdminRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		if err := service.RequireRole(p, roles...); err != nil {
			writeError(c, logger, err)
			return
		}
		c.Next()
	}
}

// PrincipalFrom obtiene el principal autenticado desde el contexto.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := val.(domain.Principal)
	return p, ok
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}
