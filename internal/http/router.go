package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lms-auth/internal/domain"
)

// NewUserRouter arma el router de la API de clientes.
func NewUserRouter(logger *zap.Logger, userH *UserHandler, authn Authenticator) *gin.Engine {
	r := newEngine(logger)
	r.GET("/health", healthHandler("LMS client backend is healthy"))

	auth := r.Group("/api/v1/auth")
	auth.POST("/signup", userH.Signup)
	auth.POST("/verify-otp", userH.VerifyOTP)
	auth.POST("/resend-otp", userH.ResendOTP)
	auth.POST("/login", userH.Login)
	auth.POST("/social-login", userH.SocialLogin)
	auth.POST("/forgot-password", userH.ForgotPassword)
	auth.POST("/reset-password", userH.ResetPassword)
	auth.GET("/profile", RequirePrincipal(logger, authn), userH.Profile)

	return r
}

// NewAdminRouter arma el router de la API de administracion.
func NewAdminRouter(logger *zap.Logger, adminH *AdminHandler, authn Authenticator) *gin.Engine {
	r := newEngine(logger)
	r.GET("/health", healthHandler("LMS admin backend is healthy"))

	requireAdmin := RequirePrincipal(logger, authn)
	managers := RequireRoles(logger, domain.RoleSuperadmin, domain.RoleAdmin)

	adminAuth := r.Group("/api/v1/admin-auth")
	adminAuth.POST("/bootstrap-superadmin", adminH.BootstrapSuperadmin)
	adminAuth.POST("/login", adminH.Login)
	adminAuth.GET("/profile", requireAdmin, adminH.Profile)

	admins := r.Group("/api/v1/admins", requireAdmin)
	admins.POST("", managers, adminH.Create)
	admins.GET("", managers, adminH.List)
	admins.GET("/:id", managers, adminH.Get)
	admins.PATCH("/:id", managers, adminH.Update)
	admins.DELETE("/:id", RequireRoles(logger, domain.RoleSuperadmin), adminH.Delete)

	return r
}

func newEngine(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())
	return r
}

func healthHandler(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

// zapLoggerMiddleware loguea cada request con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
