package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lms-auth/internal/apperr"
)

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

// writeError traduce un error de servicio a status + {message}.
// Los errores no tipados se loguean y salen como 500 genericos.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	appErr, ok := apperr.From(err)
	if !ok || appErr.Kind == apperr.KindInternal {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
	}
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Message: apperr.ErrInternal.Message})
		return
	}
	c.AbortWithStatusJSON(appErr.Status, errorResponse{Message: appErr.Message, Errors: appErr.Fields})
}

// bindJSON decodifica el body. Un payload ilegible corta el request con 400.
func bindJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.Warn("invalid payload", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Message: "Invalid payload"})
		return false
	}
	return true
}
