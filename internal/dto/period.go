package dto

import (
	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/services"
)

// PeriodDTO represents a shift period in API responses
type PeriodDTO struct {
	ID          uint64              `json:"id"`
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Status      models.PeriodStatus `json:"status"`
	DisplayName string              `json:"display_name"`
}

// CurrentPeriodsDTO carries the collecting and confirmed periods; either
// may be null.
type CurrentPeriodsDTO struct {
	Collecting *PeriodDTO `json:"collecting"`
	Confirmed  *PeriodDTO `json:"confirmed"`
}

// ToPeriodDTO converts a ShiftPeriod model to PeriodDTO
func ToPeriodDTO(period models.ShiftPeriod) PeriodDTO {
	return PeriodDTO{
		ID:          period.ID,
		StartDate:   period.StartDate,
		EndDate:     period.EndDate,
		Status:      period.Status,
		DisplayName: period.DisplayName,
	}
}

// ToPeriodDTOs converts a slice of periods
func ToPeriodDTOs(periods []models.ShiftPeriod) []PeriodDTO {
	dtos := make([]PeriodDTO, len(periods))
	for i, period := range periods {
		dtos[i] = ToPeriodDTO(period)
	}
	return dtos
}

// ToCurrentPeriodsDTO converts the current-periods query result
func ToCurrentPeriodsDTO(current *services.CurrentPeriods) CurrentPeriodsDTO {
	var dto CurrentPeriodsDTO
	if current.Collecting != nil {
		p := ToPeriodDTO(*current.Collecting)
		dto.Collecting = &p
	}
	if current.Confirmed != nil {
		p := ToPeriodDTO(*current.Confirmed)
		dto.Confirmed = &p
	}
	return dto
}
