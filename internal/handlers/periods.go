package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/shift-scheduling-api/internal/dto"
	apierrors "github.com/yukikurage/shift-scheduling-api/internal/errors"
	"github.com/yukikurage/shift-scheduling-api/internal/services"
)

// PeriodHandler coordinates shift period lifecycle handlers.
type PeriodHandler struct {
	periodService *services.PeriodService
}

// NewPeriodHandler creates a new PeriodHandler.
func NewPeriodHandler(periodService *services.PeriodService) *PeriodHandler {
	return &PeriodHandler{
		periodService: periodService,
	}
}

// List returns all periods, newest start date first.
func (h *PeriodHandler) List(c *gin.Context) {
	periods, err := h.periodService.List()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodDTOs(periods))
}

// Current returns the collecting and confirmed periods.
func (h *PeriodHandler) Current(c *gin.Context) {
	current, err := h.periodService.Current()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrentPeriodsDTO(current))
}

// Create creates the initial collecting period.
func (h *PeriodHandler) Create(c *gin.Context) {
	type CreatePeriodRequest struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
	}

	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	period, err := h.periodService.CreateInitial(services.CreateInitialInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondPeriodError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPeriodDTO(*period))
}

// Publish confirms the collecting period and opens the next one.
func (h *PeriodHandler) Publish(c *gin.Context) {
	current, err := h.periodService.Publish()
	if err != nil {
		respondPeriodError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrentPeriodsDTO(current))
}

// Revert undoes the last publish while keeping submitted shifts.
func (h *PeriodHandler) Revert(c *gin.Context) {
	current, err := h.periodService.Revert()
	if err != nil {
		respondPeriodError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrentPeriodsDTO(current))
}

func respondPeriodError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidPeriodRange):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoCollectingPeriod),
		errors.Is(err, services.ErrRevertNotPossible),
		errors.Is(err, services.ErrCollectingExists):
		apierrors.InvalidTransition(c, err.Error())
	case errors.Is(err, services.ErrPeriodNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
