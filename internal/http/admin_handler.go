package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lms-auth/internal/domain"
	"lms-auth/internal/service"
)

// AdminAPI son las operaciones que expone el router de administracion.
type AdminAPI interface {
	Authenticator
	Login(ctx context.Context, in service.AdminLoginInput) (service.AdminLoginResult, error)
	BootstrapSuperadmin(ctx context.Context, in service.BootstrapSuperadminInput) (service.AdminResult, error)
	Create(ctx context.Context, actor domain.Principal, in service.CreateAdminInput) (service.AdminResult, error)
	List(ctx context.Context, actor domain.Principal) (service.AdminListResult, error)
	Get(ctx context.Context, actor domain.Principal, id string) (service.AdminResult, error)
	Update(ctx context.Context, actor domain.Principal, id string, in service.UpdateAdminInput) (service.AdminResult, error)
	Delete(ctx context.Context, actor domain.Principal, id string) (service.MessageResult, error)
	Profile(ctx context.Context, actor domain.Principal) (domain.Admin, error)
}

// AdminHandler mantiene dependencias para endpoints de administracion.
type AdminHandler struct {
	logger *zap.Logger
	admins AdminAPI
}

func NewAdminHandler(logger *zap.Logger, admins AdminAPI) *AdminHandler {
	return &AdminHandler{logger: logger, admins: admins}
}

// BootstrapSuperadmin maneja POST /api/v1/admin-auth/bootstrap-superadmin.
func (h *AdminHandler) BootstrapSuperadmin(c *gin.Context) {
	var req service.BootstrapSuperadminInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	res, err := h.admins.BootstrapSuperadmin(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Login maneja POST /api/v1/admin-auth/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req service.AdminLoginInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	res, err := h.admins.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Profile maneja GET /api/v1/admin-auth/profile.
func (h *AdminHandler) Profile(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	admin, err := h.admins.Profile(c.Request.Context(), p)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// Create maneja POST /api/v1/admins.
func (h *AdminHandler) Create(c *gin.Context) {
	var req service.CreateAdminInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	p, _ := PrincipalFrom(c)
	res, err := h.admins.Create(c.Request.Context(), p, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *AdminHandler) List(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	res, err := h.admins.List(c.Request.Context(), p)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) Get(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	res, err := h.admins.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Update maneja PATCH /api/v1/admins/:id.
func (h *AdminHandler) Update(c *gin.Context) {
	var req service.UpdateAdminInput
	if !bindJSON(c, h.logger, &req) {
		return
	}
	p, _ := PrincipalFrom(c)
	res, err := h.admins.Update(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete maneja DELETE /api/v1/admins/:id. Solo superadmin.
func (h *AdminHandler) Delete(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	res, err := h.admins.Delete(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
