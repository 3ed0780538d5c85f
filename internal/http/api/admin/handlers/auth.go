package handlers

import (
	"errors"
	"net/http"

	"github.com/brightline-events/siteadmin/internal/auth"
	"github.com/brightline-events/siteadmin/internal/security"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// loginRequest defines the request body for admin login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials without issuing a token; the admin UI re-sends them as Basic auth.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		// An unreadable body is a login without credentials.
		log.WithError(errBind).Debug("admin login: invalid json")
		body = loginRequest{}
	}

	_, err := h.svc.Login(c.Request.Context(), body.Username, body.Password, ClientIP(c))
	if err != nil {
		switch auth.ReasonOf(err) {
		case auth.ReasonInvalidFormat:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		case auth.ReasonInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		default:
			RespondDenial(c, err, false)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// changePasswordRequest defines the request body for a password change.
type changePasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword replaces the password of a database account.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var body changePasswordRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	err := h.svc.ChangePassword(c.Request.Context(), auth.ChangePasswordInput{
		Username:        body.Username,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	}, ClientIP(c))
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
		return
	}

	var weak *security.WeakPasswordError
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, current password, and new password are required"})
	case errors.As(err, &weak):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password does not meet requirements", "details": weak.Violations})
	case errors.Is(err, auth.ErrPasswordUnchanged):
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be different from current password"})
	case errors.Is(err, auth.ErrDatabaseRequired):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Password change requires database setup"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case auth.ReasonOf(err) != "":
		RespondDenial(c, err, false)
	default:
		log.WithError(err).Error("change password failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
	}
}

// setupRequest defines the request body for creating the first admin account.
type setupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Setup creates a database-backed admin account.
func (h *AuthHandler) Setup(c *gin.Context) {
	var body setupRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	account, err := h.svc.Setup(c.Request.Context(), body.Username, body.Password)
	if err == nil {
		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "Admin account created successfully",
			"id":       account.ID,
			"username": account.Username,
		})
		return
	}

	var weak *security.WeakPasswordError
	var badUsername *auth.InvalidUsernameError
	switch {
	case errors.Is(err, auth.ErrDatabaseRequired):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
	case errors.Is(err, auth.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
	case errors.As(err, &badUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": badUsername.Message})
	case errors.As(err, &weak):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password does not meet requirements", "details": weak.Violations})
	case errors.Is(err, auth.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Admin account already exists"})
	default:
		log.WithError(err).Error("admin setup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin account"})
	}
}

// Session returns the principal attached by the Basic-auth middleware.
func (h *AuthHandler) Session(c *gin.Context) {
	username, _ := c.Get(ContextUsernameKey)
	source, _ := c.Get(ContextSourceKey)
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      username,
		"source":        source,
		"databaseAuth":  h.svc.HasStore(),
	})
}

// Context keys set by the Basic-auth middleware.
const (
	ContextUsernameKey = "adminUsername"
	ContextSourceKey   = "adminSource"
)
