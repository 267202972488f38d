package dto

import (
	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/schedule"
)

// ShiftGridResponse is the pivoted table of a period's shifts.
type ShiftGridResponse struct {
	Period PeriodDTO     `json:"period"`
	Grid   schedule.Grid `json:"grid"`
}

// SubmissionStatsResponse reports submission progress for a period.
type SubmissionStatsResponse struct {
	Period         PeriodDTO `json:"period"`
	Submitted      []string  `json:"submitted"`
	NotSubmitted   []string  `json:"not_submitted"`
	SubmittedCount int       `json:"submitted_count"`
	MissingCount   int       `json:"missing_count"`
}

// ShiftAssignmentDTO represents one stored shift in API responses.
type ShiftAssignmentDTO struct {
	ID        uint64           `json:"id"`
	PeriodID  uint64           `json:"period_id"`
	StaffName string           `json:"staff_name"`
	Date      string           `json:"date"`
	ShiftType models.ShiftType `json:"shift_type"`
}

// ToShiftAssignmentDTOs converts stored assignments
func ToShiftAssignmentDTOs(assignments []models.ShiftAssignment) []ShiftAssignmentDTO {
	dtos := make([]ShiftAssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = ShiftAssignmentDTO{
			ID:        a.ID,
			PeriodID:  a.PeriodID,
			StaffName: a.StaffName,
			Date:      a.Date,
			ShiftType: a.ShiftType,
		}
	}
	return dtos
}
