package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nareswara/libris/internal/application"
	repo "github.com/nareswara/libris/internal/domain/repository"
	"github.com/nareswara/libris/internal/interface/middleware"
	"github.com/nareswara/libris/pkg/response"
	"github.com/nareswara/libris/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Audit  repo.AuditRepository
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, audit repo.AuditRepository, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Audit: audit, Logger: logger}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// audit records a best-effort entry; a failure never affects the response.
func audit(c *gin.Context, auditRepo repo.AuditRepository, logger *logrus.Logger, userID, email, action string, metadata map[string]any) {
	if auditRepo == nil {
		return
	}
	entry := repo.AuditEntry{
		UserID:    userID,
		Email:     email,
		Action:    action,
		IP:        clientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Metadata:  metadata,
	}
	if err := auditRepo.Record(context.WithoutCancel(c.Request.Context()), entry); err != nil && logger != nil {
		logger.WithError(err).WithField("action", action).Warn("audit record failed")
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrValidation):
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "username, email and password are required", nil))
		case errors.Is(err, application.ErrDuplicateUser):
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "user already exists", nil))
		default:
			response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "registration failed", nil))
		}
		return
	}

	audit(c, h.Audit, h.Logger, u.ID, u.Email, "register", nil)
	response.JSON(c, response.Success[any](c, http.StatusCreated, nil, "user registered successfully", nil))
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}

	token, exp, user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			audit(c, h.Audit, h.Logger, "", application.NormalizeEmail(req.Email), "login_failed", nil)
			response.JSON(c, response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil))
			return
		}
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "login failed", nil))
		return
	}

	audit(c, h.Audit, h.Logger, user.ID, user.Email, "login", nil)
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	}, "login successful", map[string]any{"expires_at": exp}))
}

// Me GET /api/auth/me — echoes the decoded token payload; the store is not hit.
func (h *AuthHandler) Me(c *gin.Context) {
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":   c.GetString(middleware.CtxUserIDKey),
			"role": c.GetString(middleware.CtxUserRoleKey),
		},
	}, "authenticated user", nil))
}
