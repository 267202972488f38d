package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/shift-scheduling-api/internal/dto"
	apierrors "github.com/yukikurage/shift-scheduling-api/internal/errors"
	"github.com/yukikurage/shift-scheduling-api/internal/middleware"
	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/services"
)

// ShiftHandler coordinates shift submission, derived views, and export.
type ShiftHandler struct {
	shiftService  *services.ShiftService
	exportService *services.ExportService
	authService   *services.AuthService
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(shiftService *services.ShiftService, exportService *services.ExportService, authService *services.AuthService) *ShiftHandler {
	return &ShiftHandler{
		shiftService:  shiftService,
		exportService: exportService,
		authService:   authService,
	}
}

// Grid returns the staff-by-date table of a period. Staff callers can
// pass ?staff=<name> to restrict the grid to one row.
func (h *ShiftHandler) Grid(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	period, grid, err := h.shiftService.Grid(periodID, c.Query("staff"))
	if err != nil {
		respondShiftError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShiftGridResponse{
		Period: dto.ToPeriodDTO(*period),
		Grid:   grid,
	})
}

// SubmitMine replaces the caller's shifts for the period.
func (h *ShiftHandler) SubmitMine(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	account, ok := h.currentAccount(c)
	if !ok {
		return
	}

	type ShiftEntryRequest struct {
		Date      string `json:"date" binding:"required"`
		ShiftType string `json:"shift_type"`
	}
	type SubmitRequest struct {
		Entries []ShiftEntryRequest `json:"entries" binding:"required"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entries := make([]services.ShiftEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = services.ShiftEntry{
			Date:      e.Date,
			ShiftType: models.ShiftType(e.ShiftType),
		}
	}

	if err := h.shiftService.Submit(periodID, account.Username, entries); err != nil {
		respondShiftError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shifts submitted",
	})
}

// MySubmission returns the caller's stored shifts for the period.
func (h *ShiftHandler) MySubmission(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	account, ok := h.currentAccount(c)
	if !ok {
		return
	}

	assignments, err := h.shiftService.MySubmission(periodID, account.Username)
	if err != nil {
		respondShiftError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shifts":    dto.ToShiftAssignmentDTOs(assignments),
		"submitted": len(assignments) > 0,
	})
}

// Delete removes shifts from a period by staff, by date, or one cell
// when both query parameters are present.
func (h *ShiftHandler) Delete(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.shiftService.Delete(periodID, services.DeleteInput{
		StaffName: c.Query("staff"),
		Date:      c.Query("date"),
	})
	if err != nil {
		respondShiftError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

// Submissions reports which approved staff have submitted for a period.
func (h *ShiftHandler) Submissions(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	period, _, err := h.shiftService.Grid(periodID, "")
	if err != nil {
		respondShiftError(c, err)
		return
	}

	stats, err := h.shiftService.SubmissionStats(periodID)
	if err != nil {
		respondShiftError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmissionStatsResponse{
		Period:         dto.ToPeriodDTO(*period),
		Submitted:      stats.Submitted,
		NotSubmitted:   stats.NotSubmitted,
		SubmittedCount: len(stats.Submitted),
		MissingCount:   len(stats.NotSubmitted),
	})
}

// Export streams the period's grid as an Excel workbook.
func (h *ShiftHandler) Export(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportService.ExportExcel(periodID)
	if err != nil {
		respondShiftError(c, err)
		return
	}

	disposition := fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename))
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes(),
	)
}

func (h *ShiftHandler) currentAccount(c *gin.Context) (*models.Account, bool) {
	accountID, exists := middleware.GetAccountID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	account, err := h.authService.GetAccount(accountID)
	if err != nil {
		respondAuthError(c, err)
		return nil, false
	}

	return account, true
}

func respondShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoShiftEntries),
		errors.Is(err, services.ErrDateOutOfRange),
		errors.Is(err, services.ErrUnknownShiftType),
		errors.Is(err, services.ErrDeleteFilterMissing):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPeriodNotCollecting):
		apierrors.InvalidTransition(c, err.Error())
	case errors.Is(err, services.ErrPeriodNotFound),
		errors.Is(err, services.ErrShiftNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
