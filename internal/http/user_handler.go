package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lms-auth/internal/domain"
	"lms-auth/internal/service"
)

// AuthAPI son las operaciones de usuario que expone el router de clientes.
type AuthAPI interface {
	Authenticator
	Signup(ctx context.Context, in service.SignupInput) (service.SignupResult, error)
	VerifyOTP(ctx context.Context, in service.VerifyOTPInput) (service.AuthResult, error)
	ResendOTP(ctx context.Context, in service.EmailInput) (service.MessageResult, error)
	Login(ctx context.Context, in service.LoginInput) (service.AuthResult, error)
	SocialLogin(ctx context.Context, in service.SocialLoginInput) (service.AuthResult, error)
	ForgotPassword(ctx context.Context, in service.EmailInput) (service.MessageResult, error)
	ResetPassword(ctx context.Context, in service.ResetPasswordInput) (service.MessageResult, error)
	Profile(ctx context.Context, actor domain.Principal) (domain.UserPublic, error)
}

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger *zap.Logger
	auth   AuthAPI
}

func NewUserHandler(logger *zap.Logger, auth AuthAPI) *UserHandler {
	return &UserHandler{logger: logger, auth: auth}
}

// Signup maneja POST /api/v1/auth/signup.
func (h *UserHandler) Signup(c *gin.Context) {
	var req service.SignupInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	res, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// VerifyOTP maneja POST /api/v1/auth/verify-otp.
func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var req service.VerifyOTPInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	res, err := h.auth.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ResendOTP maneja POST /api/v1/auth/resend-otp.
func (h *UserHandler) ResendOTP(c *gin.Context) {
	var req service.EmailInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	res, err := h.auth.ResendOTP(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Login maneja POST /api/v1/auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SocialLogin maneja POST /api/v1/auth/social-login.
func (h *UserHandler) SocialLogin(c *gin.Context) {
	var req service.SocialLoginInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	res, err := h.auth.SocialLogin(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req service.EmailInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	res, err := h.auth.ForgotPassword(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req service.ResetPasswordInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	res, err := h.auth.ResetPassword(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Profile maneja GET /api/v1/auth/profile. Requiere RequirePrincipal.
func (h *UserHandler) Profile(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	user, err := h.auth.Profile(c.Request.Context(), p)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
