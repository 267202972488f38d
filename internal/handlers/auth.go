package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/shift-scheduling-api/internal/constants"
	"github.com/yukikurage/shift-scheduling-api/internal/dto"
	apierrors "github.com/yukikurage/shift-scheduling-api/internal/errors"
	"github.com/yukikurage/shift-scheduling-api/internal/middleware"
	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a staff account pending manager approval.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username   string `json:"username" binding:"required"`
		PIN        string `json:"pin" binding:"required"`
		PINConfirm string `json:"pin_confirm" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.authService.Register(services.RegisterInput{
		Username:   req.Username,
		PIN:        req.PIN,
		PINConfirm: req.PINConfirm,
		Role:       models.RoleStaff,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountDTO(*account))
}

// Login authenticates an account and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		PIN      string `json:"pin" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.authService.Authenticate(req.Username, req.PIN)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyAccountID, account.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentAccount returns the authenticated account.
func (h *AuthHandler) GetCurrentAccount(c *gin.Context) {
	accountID, exists := middleware.GetAccountID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	account, err := h.authService.GetAccount(accountID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// ChangePIN updates the caller's own credential.
func (h *AuthHandler) ChangePIN(c *gin.Context) {
	accountID, exists := middleware.GetAccountID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ChangePINRequest struct {
		CurrentPIN string `json:"current_pin" binding:"required"`
		NewPIN     string `json:"new_pin" binding:"required"`
	}

	var req ChangePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ChangePIN(accountID, req.CurrentPIN, req.NewPIN); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "PIN changed successfully",
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrInvalidPINLength),
		errors.Is(err, services.ErrPINMismatch):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongCurrentPIN):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
