package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/shift-scheduling-api/internal/dto"
	apierrors "github.com/yukikurage/shift-scheduling-api/internal/errors"
	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/services"
)

// AccountHandler coordinates manager-side account administration.
type AccountHandler struct {
	accountService *services.AccountService
	authService    *services.AuthService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *services.AccountService, authService *services.AuthService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		authService:    authService,
	}
}

// List returns all accounts split into pending and approved staff.
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.List()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountListResponse(accounts))
}

// Create registers an account on behalf of the manager. Accounts with
// the manager role are approved immediately; staff accounts still start
// pending.
func (h *AccountHandler) Create(c *gin.Context) {
	type CreateAccountRequest struct {
		Username string             `json:"username" binding:"required"`
		PIN      string             `json:"pin" binding:"required"`
		Role     models.AccountRole `json:"role" binding:"required,oneof=staff manager"`
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.authService.Register(services.RegisterInput{
		Username:   req.Username,
		PIN:        req.PIN,
		PINConfirm: req.PIN,
		Role:       req.Role,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountDTO(*account))
}

// Approve moves a pending account to approved.
func (h *AccountHandler) Approve(c *gin.Context) {
	accountID, ok := parseIDParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.Approve(accountID)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// Reject removes a pending registration.
func (h *AccountHandler) Reject(c *gin.Context) {
	accountID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.accountService.Reject(accountID); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account rejected",
	})
}

// ResetPIN sets an account's credential to the fixed reset value.
func (h *AccountHandler) ResetPIN(c *gin.Context) {
	accountID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.authService.ResetPIN(accountID); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "PIN has been reset",
	})
}

// Delete removes an account and all of its shift data.
func (h *AccountHandler) Delete(c *gin.Context) {
	accountID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.accountService.Delete(accountID); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account and shift data deleted",
	})
}

func respondAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAccountNotPending):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// parseIDParam reads the :id URL parameter; on failure it writes a 400
// response and reports false.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
